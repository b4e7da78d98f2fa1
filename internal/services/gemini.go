package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"eduaid-backend/internal/models"
)

// GeminiService backs every generation capability: the three question
// generators, the extractive QA model, the boolean answer predictor and the
// harder-question rewriter. Construction failure leaves the corresponding
// endpoints degraded to 503; the handle is never mutated after startup.
type GeminiService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	rateChan chan struct{} // Token bucket bounding concurrent inference
}

func NewGeminiService(apiKey string, concurrentReqs int) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no Gemini API key configured")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-3-flash-preview")
	model.SetTemperature(0.3)
	model.SetTopP(0.95)

	if concurrentReqs < 1 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:   client,
		model:    model,
		rateChan: rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until an inference slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// GenerateMCQ produces up to maxQuestions multiple-choice questions from text.
func (s *GeminiService) GenerateMCQ(ctx context.Context, text string, maxQuestions int) ([]models.MCQQuestion, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	prompt := buildMCQPrompt(text, maxQuestions)
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	var questions []models.MCQQuestion
	if err := decodeJSONArray(extractText(resp), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse MCQ response: %w", err)
	}

	var valid []models.MCQQuestion
	for _, q := range questions {
		if strings.TrimSpace(q.QuestionStatement) == "" || len(q.Options) == 0 {
			continue
		}
		valid = append(valid, q)
		if len(valid) == maxQuestions {
			break
		}
	}
	return valid, nil
}

// GenerateBoolQ produces up to maxQuestions yes/no questions from text.
func (s *GeminiService) GenerateBoolQ(ctx context.Context, text string, maxQuestions int) ([]string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	prompt := buildBoolQPrompt(text, maxQuestions)
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	var questions []string
	if err := decodeJSONArray(extractText(resp), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse boolean question response: %w", err)
	}

	var valid []string
	for _, q := range questions {
		if strings.TrimSpace(q) == "" {
			continue
		}
		valid = append(valid, q)
		if len(valid) == maxQuestions {
			break
		}
	}
	return valid, nil
}

// GenerateShortQ produces up to maxQuestions short-answer questions from text.
func (s *GeminiService) GenerateShortQ(ctx context.Context, text string, maxQuestions int) ([]models.ShortQuestion, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	prompt := buildShortQPrompt(text, maxQuestions)
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	var questions []models.ShortQuestion
	if err := decodeJSONArray(extractText(resp), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse short answer response: %w", err)
	}

	var valid []models.ShortQuestion
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		valid = append(valid, q)
		if len(valid) == maxQuestions {
			break
		}
	}
	return valid, nil
}

// Generate is the normalized backend contract used by the harder-question
// endpoints: count questions in the given answer style ("sentences" or
// "multiple_choice"), each adapted to a QuestionItem.
func (s *GeminiService) Generate(ctx context.Context, text string, count int, style string) ([]models.QuestionItem, error) {
	if style == "multiple_choice" {
		mcqs, err := s.GenerateMCQ(ctx, text, count)
		if err != nil {
			return nil, err
		}
		items := make([]models.QuestionItem, 0, len(mcqs))
		for _, q := range mcqs {
			items = append(items, models.QuestionItem{
				Question: q.QuestionStatement,
				Answer:   q.Answer,
				Options:  q.Options,
			})
		}
		return items, nil
	}

	shorts, err := s.GenerateShortQ(ctx, text, count)
	if err != nil {
		return nil, err
	}
	items := make([]models.QuestionItem, 0, len(shorts))
	for _, q := range shorts {
		items = append(items, models.QuestionItem{Question: q.Question, Answer: q.Answer})
	}
	return items, nil
}

// AnswerQuestion answers a question extractively from the given context text.
func (s *GeminiService) AnswerQuestion(ctx context.Context, question, contextText string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	prompt := fmt.Sprintf(`Answer the question using ONLY the context below. Reply with the shortest span of text from the context that answers the question. Plain text only, no explanations. If the context does not contain the answer, reply with an empty string.

Question: %s

Context:
%s`, question, contextText)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return strings.TrimSpace(extractText(resp)), nil
}

// PredictBoolean answers a yes/no question against the given context text.
func (s *GeminiService) PredictBoolean(ctx context.Context, question, contextText string) (bool, error) {
	if err := s.acquireRate(ctx); err != nil {
		return false, err
	}
	defer s.releaseRate()

	prompt := fmt.Sprintf(`Based ONLY on the context below, answer the question with exactly one word: "true" or "false".

Question: %s

Context:
%s`, question, contextText)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return false, fmt.Errorf("Gemini API error: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(extractText(resp)))
	return strings.HasPrefix(answer, "true") || strings.HasPrefix(answer, "yes"), nil
}

// HardenQuestion rewrites a question to require deeper reasoning while
// keeping the same answer.
func (s *GeminiService) HardenQuestion(ctx context.Context, question string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	prompt := fmt.Sprintf(`Rewrite this question so it requires analysis or inference instead of direct recall, without changing what the correct answer is. Return only the rewritten question as plain text.

Question: %s`, question)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	harder := strings.TrimSpace(extractText(resp))
	if harder == "" {
		return "", fmt.Errorf("rewriter returned empty question")
	}
	return harder, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// decodeJSONArray strips markdown fences from a model response and decodes
// the JSON array into out, falling back to the outermost bracketed slice.
func decodeJSONArray(raw string, out interface{}) error {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		start := strings.Index(raw, "[")
		end := strings.LastIndex(raw, "]")
		if start >= 0 && end > start {
			return json.Unmarshal([]byte(raw[start:end+1]), out)
		}
		return err
	}
	return nil
}

func buildMCQPrompt(text string, maxQuestions int) string {
	var b strings.Builder

	b.WriteString("You are an expert educational assessor. Generate multiple-choice questions from the content below.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")
	b.WriteString(fmt.Sprintf("Generate at most %d questions. Every question must be answerable from the content alone.\n", maxQuestions))
	b.WriteString(`
JSON schema per question:
{"question_statement": "string", "options": ["string"], "answer": "string", "context": "string"}

Rules: exactly 3 distractor options (the correct answer is NOT repeated in options); "context" is the sentence from the content the question was drawn from.
`)
	b.WriteString("\n---CONTENT---\n")
	b.WriteString(text)
	b.WriteString("\n---END---\n")

	return b.String()
}

func buildBoolQPrompt(text string, maxQuestions int) string {
	var b strings.Builder

	b.WriteString("You are an expert educational assessor. Generate yes/no questions from the content below.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array of strings. No preamble, no markdown, no backticks.\n\n")
	b.WriteString(fmt.Sprintf("Generate at most %d questions. Each must be answerable with True or False from the content alone.\n", maxQuestions))
	b.WriteString("\n---CONTENT---\n")
	b.WriteString(text)
	b.WriteString("\n---END---\n")

	return b.String()
}

func buildShortQPrompt(text string, maxQuestions int) string {
	var b strings.Builder

	b.WriteString("You are an expert educational assessor. Generate short-answer questions from the content below.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")
	b.WriteString(fmt.Sprintf("Generate at most %d questions.\n", maxQuestions))
	b.WriteString(`
JSON schema per question:
{"question": "string", "answer": "string"}

Rules: answers must be short spans taken from the content, under 15 words.
`)
	b.WriteString("\n---CONTENT---\n")
	b.WriteString(text)
	b.WriteString("\n---END---\n")

	return b.String()
}
