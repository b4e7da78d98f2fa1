package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"

	"eduaid-backend/internal/models"
)

const (
	maxQuestionTitleLen = 1000
	maxChoiceLen        = 500
	maxChoices          = 10
	maxDistractors      = 3
)

// ErrNoValidItems is reported when every submitted record was skipped; the
// caller must not attempt the downstream batch call.
var ErrNoValidItems = &ValidationError{Message: "No valid questions provided"}

// FormService creates Google Forms from question/answer batches.
type FormService struct {
	svc *forms.Service
}

func NewFormService(ctx context.Context, credentialsFile string) (*FormService, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("forms credentials not found at %s: %w", credentialsFile, err)
	}

	svc, err := forms.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(forms.FormsBodyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create forms service: %w", err)
	}

	return &FormService{svc: svc}, nil
}

// BuildFormRequests converts qa pairs into an ordered batch of createItem
// operations. Each operation targets the record's original index, so skipped
// records leave no gap in intent: the surviving items keep their positions.
// Pure; no network calls.
func BuildFormRequests(pairs []models.QAPair, questionType string) ([]*forms.Request, error) {
	var requests []*forms.Request

	for index, pair := range pairs {
		title := truncate(pair.Question, maxQuestionTitleLen)
		if strings.TrimSpace(title) == "" {
			log.Printf("Skipping qa_pair at index %d: empty question", index)
			continue
		}

		var question *forms.Question

		switch questionType {
		case "get_shortq":
			question = &forms.Question{
				Required:     true,
				TextQuestion: &forms.TextQuestion{},
			}

		case "get_mcq":
			choices := buildChoices(pair.Answer, pair.Options)
			if len(choices) == 0 {
				log.Printf("Skipping qa_pair at index %d: no usable choices", index)
				continue
			}
			question = &forms.Question{
				Required: true,
				ChoiceQuestion: &forms.ChoiceQuestion{
					Type:    "RADIO",
					Options: choices,
				},
			}

		case "get_boolq":
			question = &forms.Question{
				Required: true,
				ChoiceQuestion: &forms.ChoiceQuestion{
					Type: "RADIO",
					Options: []*forms.Option{
						{Value: "True"},
						{Value: "False"},
					},
				},
			}

		default:
			// Unknown or empty type builds nothing; the caller reports
			// ErrNoValidItems below.
			continue
		}

		requests = append(requests, &forms.Request{
			CreateItem: &forms.CreateItemRequest{
				Item: &forms.Item{
					Title:        title,
					QuestionItem: &forms.QuestionItem{Question: question},
				},
				Location: &forms.Location{
					Index:           int64(index),
					ForceSendFields: []string{"Index"},
				},
			},
		})
	}

	if len(requests) == 0 {
		return nil, ErrNoValidItems
	}
	return requests, nil
}

// buildChoices puts the answer first, then up to maxDistractors non-empty
// options, all truncated, capped at maxChoices total.
func buildChoices(answer string, options []string) []*forms.Option {
	var choices []*forms.Option

	if answer != "" {
		choices = append(choices, &forms.Option{Value: truncate(answer, maxChoiceLen)})
	}

	kept := 0
	for _, opt := range options {
		if opt == "" {
			continue
		}
		if kept == maxDistractors {
			break
		}
		choices = append(choices, &forms.Option{Value: truncate(opt, maxChoiceLen)})
		kept++
	}

	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}
	return choices
}

// truncate caps s at max characters, not bytes, so a multibyte rune is never
// split into invalid UTF-8 at the boundary.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// CreateForm builds the request batch, creates the form and applies the batch
// in one update.
func (s *FormService) CreateForm(ctx context.Context, pairs []models.QAPair, questionType string) (*models.FormResult, error) {
	requests, err := BuildFormRequests(pairs, questionType)
	if err != nil {
		return nil, err
	}

	newForm := &forms.Form{
		Info: &forms.Info{
			Title:         "EduAid Form",
			DocumentTitle: "EduAid Assessment",
		},
	}

	created, err := s.svc.Forms.Create(newForm).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}
	if created.FormId == "" {
		return nil, fmt.Errorf("form creation returned no form ID")
	}

	_, err = s.svc.Forms.BatchUpdate(created.FormId, &forms.BatchUpdateFormRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add questions to form %s: %w", created.FormId, err)
	}

	return &models.FormResult{
		FormID:       created.FormId,
		ResponderURI: created.ResponderUri,
		EditURI:      fmt.Sprintf("https://docs.google.com/forms/d/%s/edit", created.FormId),
	}, nil
}
