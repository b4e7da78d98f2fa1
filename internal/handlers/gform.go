package handlers

import (
	"context"
	"net/http"

	"eduaid-backend/internal/models"
	"eduaid-backend/internal/validate"
)

type FormCreator interface {
	CreateForm(ctx context.Context, pairs []models.QAPair, questionType string) (*models.FormResult, error)
}

type FormHandler struct {
	forms FormCreator
}

func NewFormHandler(forms FormCreator) *FormHandler {
	return &FormHandler{forms: forms}
}

func (h *FormHandler) GenerateGForm(w http.ResponseWriter, r *http.Request) {
	var req models.GFormRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, err, "Failed to create form")
		return
	}

	if len(req.QAPairs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("No question data provided"))
		return
	}
	if err := validate.BatchSize(len(req.QAPairs)); err != nil {
		handleServiceError(w, r, err, "Failed to create form")
		return
	}
	if err := validate.QuestionType(req.QuestionType); err != nil {
		handleServiceError(w, r, err, "Failed to create form")
		return
	}

	if h.forms == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Google Forms service not available"))
		return
	}

	result, err := h.forms.CreateForm(r.Context(), req.QAPairs, req.QuestionType)
	if err != nil {
		handleServiceError(w, r, err, "Failed to create form")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
