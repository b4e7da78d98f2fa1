package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"eduaid-backend/internal/models"
	"eduaid-backend/internal/services"
	"eduaid-backend/internal/validate"
)

type QuestionAnswerer interface {
	AnswerQuestion(ctx context.Context, question, contextText string) (string, error)
}

type BooleanPredictor interface {
	PredictBoolean(ctx context.Context, question, contextText string) (bool, error)
}

type AnswerHandler struct {
	qa        QuestionAnswerer
	predictor BooleanPredictor
}

func NewAnswerHandler(qa QuestionAnswerer, predictor BooleanPredictor) *AnswerHandler {
	return &AnswerHandler{qa: qa, predictor: predictor}
}

// GetMCQAnswer answers each question against the passage, then snaps the free
// text answer onto the closest of the provided options. Questions that cannot
// be answered or matched are skipped rather than failing the batch.
func (h *AnswerHandler) GetMCQAnswer(w http.ResponseWriter, r *http.Request) {
	if h.qa == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Answer predictor not available"))
		return
	}

	var req models.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	text, err := validate.Text(req.InputText, 0)
	if err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	if len(req.InputQuestions) == 0 && len(req.InputOptions) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"output": []string{}})
		return
	}

	if err := validate.ListPair(len(req.InputQuestions), len(req.InputOptions)); err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	answers := []string{}
	for i, question := range req.InputQuestions {
		options := req.InputOptions[i]
		if strings.TrimSpace(question) == "" || len(options) == 0 {
			continue
		}

		answer, err := h.qa.AnswerQuestion(r.Context(), question, text)
		if err != nil {
			log.Printf("Failed to answer question %d: %v", i, err)
			continue
		}
		if answer == "" {
			continue
		}

		matched, ok := services.MatchOption(answer, options)
		if !ok {
			continue
		}
		answers = append(answers, matched)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": answers})
}

// GetShortQAnswer answers each question against the passage. Blank questions
// are skipped; a failed item contributes an empty string.
func (h *AnswerHandler) GetShortQAnswer(w http.ResponseWriter, r *http.Request) {
	if h.qa == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Answer predictor not available"))
		return
	}

	var req models.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	text, err := validate.Text(req.InputText, 0)
	if err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	if len(req.InputQuestions) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"output": []string{}})
		return
	}
	if err := validate.BatchSize(len(req.InputQuestions)); err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	answers := make([]string, 0, len(req.InputQuestions))
	for i, question := range req.InputQuestions {
		if strings.TrimSpace(question) == "" {
			continue
		}
		answer, err := h.qa.AnswerQuestion(r.Context(), question, text)
		if err != nil {
			log.Printf("Failed to answer question %d: %v", i, err)
			answers = append(answers, "")
			continue
		}
		answers = append(answers, answer)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": answers})
}

// GetBooleanAnswer returns "True"/"False" per non-blank question; failures
// default to "False".
func (h *AnswerHandler) GetBooleanAnswer(w http.ResponseWriter, r *http.Request) {
	if h.predictor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Boolean answer predictor not available"))
		return
	}

	var req models.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	text, err := validate.Text(req.InputText, 0)
	if err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	if len(req.InputQuestions) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"output": []string{}})
		return
	}
	if err := validate.BatchSize(len(req.InputQuestions)); err != nil {
		handleServiceError(w, r, err, "Failed to predict answers")
		return
	}

	answers := make([]string, 0, len(req.InputQuestions))
	for i, question := range req.InputQuestions {
		if strings.TrimSpace(question) == "" {
			continue
		}
		verdict, err := h.predictor.PredictBoolean(r.Context(), question, text)
		if err != nil {
			log.Printf("Failed to predict answer %d: %v", i, err)
			answers = append(answers, "False")
			continue
		}
		if verdict {
			answers = append(answers, "True")
		} else {
			answers = append(answers, "False")
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": answers})
}
