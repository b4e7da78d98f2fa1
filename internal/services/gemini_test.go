package services

import (
	"strings"
	"testing"

	"eduaid-backend/internal/models"
)

func TestDecodeJSONArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain array", `["a", "b"]`, []string{"a", "b"}},
		{"json fence", "```json\n[\"a\", \"b\"]\n```", []string{"a", "b"}},
		{"bare fence", "```\n[\"a\"]\n```", []string{"a"}},
		{"preamble chatter", `Here are the questions: ["a", "b"] hope that helps`, []string{"a", "b"}},
		{"surrounding whitespace", "  \n[\"a\"]\n  ", []string{"a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			if err := decodeJSONArray(tc.raw, &got); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Expected %d items, got %d", len(tc.want), len(got))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Item %d: expected %q, got %q", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestDecodeJSONArray_Structs(t *testing.T) {
	raw := "```json\n" + `[{"question_statement": "What?", "options": ["a"], "answer": "a"}]` + "\n```"

	var got []models.MCQQuestion
	if err := decodeJSONArray(raw, &got); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].QuestionStatement != "What?" {
		t.Errorf("Expected decoded question, got %+v", got)
	}
}

func TestDecodeJSONArray_Invalid(t *testing.T) {
	var got []string
	if err := decodeJSONArray("no json here at all", &got); err == nil {
		t.Error("Expected error for non-JSON input")
	}
}

func TestBuildPrompts_IncludeContentAndCount(t *testing.T) {
	content := "The water cycle moves water through evaporation and rain."

	for name, prompt := range map[string]string{
		"mcq":    buildMCQPrompt(content, 7),
		"boolq":  buildBoolQPrompt(content, 7),
		"shortq": buildShortQPrompt(content, 7),
	} {
		if !strings.Contains(prompt, content) {
			t.Errorf("%s prompt missing content", name)
		}
		if !strings.Contains(prompt, "7") {
			t.Errorf("%s prompt missing question count", name)
		}
		if !strings.Contains(prompt, "JSON") {
			t.Errorf("%s prompt missing output format instruction", name)
		}
	}
}
