package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"printshop-crm/service"
)

// AssistantController exposes the Gemini quoting assistant. The service is
// nil when no API key is configured; the route then answers 503.
type AssistantController struct {
	assistant *service.AssistantService
	logger    *zap.Logger
}

// NewAssistantController creates a new AssistantController.
func NewAssistantController(assistant *service.AssistantService, logger *zap.Logger) *AssistantController {
	return &AssistantController{assistant: assistant, logger: logger}
}

type quoteRequest struct {
	Question string `json:"question"`
}

type quoteResponse struct {
	Answer string `json:"answer"`
}

// Quote handles POST /admin/assistant/quote.
func (c *AssistantController) Quote(w http.ResponseWriter, r *http.Request) {
	if c.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := c.assistant.Quote(r.Context(), question)
	if err != nil {
		c.logger.Error("assistant quote failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{Answer: answer})
}
