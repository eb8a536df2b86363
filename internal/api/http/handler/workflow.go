package handler

import (
	"encoding/json"
	"net/http"

	"github.com/comfyui-plus/backend/internal/logger"
	"github.com/comfyui-plus/backend/internal/model"
)

// Workflow handles the protected workflow CRUD endpoints. The
// responses are placeholders; real workflow storage is a separate
// concern and these routes exist to exercise the authentication gate.
type Workflow struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewWorkflow creates a new Workflow handler.
func NewWorkflow(contextManager model.ContextManager, logger *logger.Logger) *Workflow {
	return &Workflow{
		contextManager: contextManager,
		logger:         logger,
	}
}

// List handles GET /workflows.
func (h *Workflow) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := h.contextManager.GetIdentityFromContext(r.Context())
	h.logger.Debug("Workflow handler: listing workflows",
		"user_id", identity.UserID)

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "List workflows functionality coming soon",
		"workflows": []any{},
	})
}

// Create handles POST /workflows.
func (h *Workflow) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON payload."})
		return
	}

	identity, _ := h.contextManager.GetIdentityFromContext(r.Context())
	h.logger.Debug("Workflow handler: creating workflow",
		"user_id", identity.UserID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Create workflow functionality coming soon",
		"workflow": map[string]any{
			"id":   1,
			"name": "New Workflow",
		},
	})
}

// Get handles GET /workflows/{id}.
func (h *Workflow) Get(w http.ResponseWriter, r *http.Request) {
	workflowID := r.PathValue("id")
	identity, _ := h.contextManager.GetIdentityFromContext(r.Context())
	h.logger.Debug("Workflow handler: getting workflow",
		"workflow_id", workflowID,
		"user_id", identity.UserID)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Get workflow by ID functionality coming soon",
		"workflow": map[string]any{
			"id":   workflowID,
			"name": "Sample Workflow",
		},
	})
}

// Update handles PUT /workflows/{id}.
func (h *Workflow) Update(w http.ResponseWriter, r *http.Request) {
	workflowID := r.PathValue("id")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON payload."})
		return
	}

	identity, _ := h.contextManager.GetIdentityFromContext(r.Context())
	h.logger.Debug("Workflow handler: updating workflow",
		"workflow_id", workflowID,
		"user_id", identity.UserID)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Update workflow functionality coming soon",
		"workflow": map[string]any{
			"id":   workflowID,
			"name": "Updated Workflow",
		},
	})
}

// Delete handles DELETE /workflows/{id}.
func (h *Workflow) Delete(w http.ResponseWriter, r *http.Request) {
	workflowID := r.PathValue("id")
	identity, _ := h.contextManager.GetIdentityFromContext(r.Context())
	h.logger.Debug("Workflow handler: deleting workflow",
		"workflow_id", workflowID,
		"user_id", identity.UserID)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Workflow deleted successfully.",
		"id":      workflowID,
	})
}
