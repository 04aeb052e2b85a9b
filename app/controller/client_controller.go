package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"printshop-crm/models"
	"printshop-crm/repository"
)

// ClientController handles HTTP requests for clients.
type ClientController struct {
	repository repository.ClientRepositoryInterface
}

// NewClientController creates a new ClientController.
func NewClientController(repo repository.ClientRepositoryInterface) *ClientController {
	return &ClientController{repository: repo}
}

// List handles GET /admin/clients.
func (c *ClientController) List(w http.ResponseWriter, r *http.Request) {
	clients, err := c.repository.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// Get handles GET /admin/clients/{id}.
func (c *ClientController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := c.repository.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Create handles POST /admin/clients.
func (c *ClientController) Create(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := c.repository.Create(r.Context(), &client); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// Update handles PUT /admin/clients/{id}.
func (c *ClientController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	client.ID = id

	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := c.repository.Update(r.Context(), &client); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Delete handles DELETE /admin/clients/{id}.
func (c *ClientController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
