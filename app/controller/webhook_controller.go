package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"printshop-crm/models"
	"printshop-crm/repository"
)

// WebhookController manages outbound webhook endpoint configuration.
type WebhookController struct {
	repository repository.WebhookRepositoryInterface
}

// NewWebhookController creates a new WebhookController.
func NewWebhookController(repo repository.WebhookRepositoryInterface) *WebhookController {
	return &WebhookController{repository: repo}
}

// List handles GET /admin/webhooks.
func (c *WebhookController) List(w http.ResponseWriter, r *http.Request) {
	endpoints, err := c.repository.ListActive(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, endpoints)
}

// Create handles POST /admin/webhooks.
func (c *WebhookController) Create(w http.ResponseWriter, r *http.Request) {
	var endpoint models.WebhookEndpoint
	if err := json.NewDecoder(r.Body).Decode(&endpoint); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	parsed, err := url.Parse(endpoint.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		writeError(w, http.StatusBadRequest, "url must be absolute")
		return
	}

	if err := c.repository.Create(r.Context(), &endpoint); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, endpoint)
}

// Delete handles DELETE /admin/webhooks/{id}.
func (c *WebhookController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid webhook id")
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
