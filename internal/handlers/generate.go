package handlers

import (
	"context"
	"log"
	"net/http"

	"eduaid-backend/internal/models"
	"eduaid-backend/internal/validate"
)

// Generation backend contracts. Absent backends are nil and degrade their
// endpoints to 503 instead of being dereferenced.

type MCQGenerator interface {
	GenerateMCQ(ctx context.Context, text string, maxQuestions int) ([]models.MCQQuestion, error)
}

type BoolQGenerator interface {
	GenerateBoolQ(ctx context.Context, text string, maxQuestions int) ([]string, error)
}

type ShortQGenerator interface {
	GenerateShortQ(ctx context.Context, text string, maxQuestions int) ([]models.ShortQuestion, error)
}

type StyledGenerator interface {
	Generate(ctx context.Context, text string, count int, style string) ([]models.QuestionItem, error)
}

type QuestionHardener interface {
	HardenQuestion(ctx context.Context, question string) (string, error)
}

type Summarizer interface {
	Summary(ctx context.Context, topic string, sentences int) (string, error)
}

const (
	defaultQuestions     = 4
	wikiSummarySentences = 8
)

type GenerateHandler struct {
	mcq      MCQGenerator
	boolq    BoolQGenerator
	shortq   ShortQGenerator
	styled   StyledGenerator
	hardener QuestionHardener
	wiki     Summarizer
}

func NewGenerateHandler(mcq MCQGenerator, boolq BoolQGenerator, shortq ShortQGenerator, styled StyledGenerator, hardener QuestionHardener, wiki Summarizer) *GenerateHandler {
	return &GenerateHandler{
		mcq:      mcq,
		boolq:    boolq,
		shortq:   shortq,
		styled:   styled,
		hardener: hardener,
		wiki:     wiki,
	}
}

// enrichText optionally replaces the input text with an encyclopedia summary
// of it. Enrichment failure is non-fatal and falls back to the original text.
func (h *GenerateHandler) enrichText(ctx context.Context, text string, useMediawiki int) string {
	if useMediawiki != 1 || h.wiki == nil {
		return text
	}
	summary, err := h.wiki.Summary(ctx, text, wikiSummarySentences)
	if err != nil {
		log.Printf("Wikipedia enrichment failed: %v", err)
		return text
	}
	return summary
}

// resolveCount applies the default for an absent count and bounds-checks an
// explicit one, so a literal 0 in the request is rejected rather than
// silently defaulted.
func resolveCount(n *int) (int, error) {
	if n == nil {
		return defaultQuestions, nil
	}
	return validate.Count(*n, validate.MinQuestions, validate.MaxQuestions)
}

// validateGeneration pulls the common fields out of a generation request.
func (h *GenerateHandler) validateGeneration(r *http.Request, req *models.GenerateRequest) (text string, count int, err error) {
	if err = decodeJSON(r, req); err != nil {
		return "", 0, err
	}
	text, err = validate.Text(req.InputText, 0)
	if err != nil {
		return "", 0, err
	}
	count, err = resolveCount(req.MaxQuestions)
	if err != nil {
		return "", 0, err
	}
	return text, count, nil
}

func (h *GenerateHandler) GetMCQ(w http.ResponseWriter, r *http.Request) {
	if h.mcq == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("MCQ Generator not available"))
		return
	}

	var req models.GenerateRequest
	text, count, err := h.validateGeneration(r, &req)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate MCQ")
		return
	}

	text = h.enrichText(r.Context(), text, req.UseMediawiki)
	questions, err := h.mcq.GenerateMCQ(r.Context(), text, count)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate MCQ")
		return
	}
	if questions == nil {
		questions = []models.MCQQuestion{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": questions})
}

func (h *GenerateHandler) GetBoolQ(w http.ResponseWriter, r *http.Request) {
	if h.boolq == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Boolean Generator not available"))
		return
	}

	var req models.GenerateRequest
	text, count, err := h.validateGeneration(r, &req)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate Boolean questions")
		return
	}

	text = h.enrichText(r.Context(), text, req.UseMediawiki)
	questions, err := h.boolq.GenerateBoolQ(r.Context(), text, count)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate Boolean questions")
		return
	}
	if questions == nil {
		questions = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": questions})
}

func (h *GenerateHandler) GetShortQ(w http.ResponseWriter, r *http.Request) {
	if h.shortq == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Short Answer Generator not available"))
		return
	}

	var req models.GenerateRequest
	text, count, err := h.validateGeneration(r, &req)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate short answer questions")
		return
	}

	text = h.enrichText(r.Context(), text, req.UseMediawiki)
	questions, err := h.shortq.GenerateShortQ(r.Context(), text, count)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate short answer questions")
		return
	}
	if questions == nil {
		questions = []models.ShortQuestion{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": questions})
}

// GetProblems fans out to every generator. Backends fail independently: an
// absent or failing backend contributes its empty result shape and the
// response always carries all three keys.
func (h *GenerateHandler) GetProblems(w http.ResponseWriter, r *http.Request) {
	var req models.ProblemsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, err, "Failed to generate problems")
		return
	}

	text, err := validate.Text(req.InputText, 0)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate problems")
		return
	}

	mcqCount, err := resolveCount(req.MaxQuestionsMCQ)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate problems")
		return
	}
	boolqCount, err := resolveCount(req.MaxQuestionsBoolQ)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate problems")
		return
	}
	shortCount, err := resolveCount(req.MaxQuestionsShort)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate problems")
		return
	}

	text = h.enrichText(r.Context(), text, req.UseMediawiki)

	resp := models.ProblemsResponse{
		OutputMCQ:    models.MCQOutput{Questions: []models.MCQQuestion{}},
		OutputBoolQ:  models.BoolQOutput{Text: text, BooleanQuestions: []string{}},
		OutputShortQ: models.ShortQOutput{Questions: []models.ShortQuestion{}},
	}

	if h.mcq != nil {
		if questions, err := h.mcq.GenerateMCQ(r.Context(), text, mcqCount); err != nil {
			log.Printf("MCQ generation failed: %v", err)
		} else if questions != nil {
			resp.OutputMCQ.Questions = questions
		}
	}

	if h.boolq != nil {
		if questions, err := h.boolq.GenerateBoolQ(r.Context(), text, boolqCount); err != nil {
			log.Printf("Boolean generation failed: %v", err)
		} else if questions != nil {
			resp.OutputBoolQ.BooleanQuestions = questions
		}
	}

	if h.shortq != nil {
		if questions, err := h.shortq.GenerateShortQ(r.Context(), text, shortCount); err != nil {
			log.Printf("Short answer generation failed: %v", err)
		} else if questions != nil {
			resp.OutputShortQ.Questions = questions
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *GenerateHandler) GetShortQHard(w http.ResponseWriter, r *http.Request) {
	h.generateHard(w, r, "sentences", "Failed to generate hard short questions")
}

func (h *GenerateHandler) GetMCQHard(w http.ResponseWriter, r *http.Request) {
	h.generateHard(w, r, "multiple_choice", "Failed to generate hard MCQ questions")
}

func (h *GenerateHandler) generateHard(w http.ResponseWriter, r *http.Request, style, fallback string) {
	if h.styled == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Question Generator not available"))
		return
	}

	var req models.HardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, r, err, fallback)
		return
	}

	text, err := validate.Text(req.InputText, 0)
	if err != nil {
		handleServiceError(w, r, err, fallback)
		return
	}

	count, err := resolveCount(req.InputQuestions)
	if err != nil {
		handleServiceError(w, r, err, fallback)
		return
	}

	text = h.enrichText(r.Context(), text, req.UseMediawiki)

	items, err := h.styled.Generate(r.Context(), text, count, style)
	if err != nil {
		handleServiceError(w, r, err, fallback)
		return
	}
	if items == nil {
		items = []models.QuestionItem{}
	}

	// Rewrite each question harder; a failing item keeps its original form.
	if h.hardener != nil {
		for i := range items {
			harder, err := h.hardener.HardenQuestion(r.Context(), items[i].Question)
			if err != nil {
				log.Printf("Failed to make question harder: %v", err)
				continue
			}
			items[i].Question = harder
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": items})
}

func (h *GenerateHandler) GetBoolQHard(w http.ResponseWriter, r *http.Request) {
	if h.boolq == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("Boolean Generator not available"))
		return
	}

	var req models.GenerateRequest
	text, count, err := h.validateGeneration(r, &req)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate hard boolean questions")
		return
	}

	text = h.enrichText(r.Context(), text, req.UseMediawiki)
	questions, err := h.boolq.GenerateBoolQ(r.Context(), text, count)
	if err != nil {
		handleServiceError(w, r, err, "Failed to generate hard boolean questions")
		return
	}

	harder := make([]string, 0, len(questions))
	for _, q := range questions {
		if h.hardener == nil {
			harder = append(harder, q)
			continue
		}
		hq, err := h.hardener.HardenQuestion(r.Context(), q)
		if err != nil {
			log.Printf("Failed to make question harder: %v", err)
			harder = append(harder, q)
			continue
		}
		harder = append(harder, hq)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"output": harder})
}
