package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"printshop-crm/models"
	"printshop-crm/repository"
)

// RuleController handles HTTP requests for calculation rules.
type RuleController struct {
	repository repository.RuleRepositoryInterface
}

// NewRuleController creates a new RuleController.
func NewRuleController(repo repository.RuleRepositoryInterface) *RuleController {
	return &RuleController{repository: repo}
}

// List handles GET /admin/rules.
func (c *RuleController) List(w http.ResponseWriter, r *http.Request) {
	rules, err := c.repository.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

// Get handles GET /admin/rules/{id}.
func (c *RuleController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule id")
		return
	}

	rule, err := c.repository.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// Create handles POST /admin/rules.
func (c *RuleController) Create(w http.ResponseWriter, r *http.Request) {
	var rule models.CalculationRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := rule.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.repository.Create(r.Context(), &rule); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

// Update handles PUT /admin/rules/{id}.
func (c *RuleController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule id")
		return
	}

	var rule models.CalculationRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	rule.ID = id

	if err := rule.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.repository.Update(r.Context(), &rule); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// Delete handles DELETE /admin/rules/{id}.
func (c *RuleController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rule id")
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
