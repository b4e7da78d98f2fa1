package validate

import (
	"strings"
	"testing"

	"eduaid-backend/internal/services"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
		wantErr bool
	}{
		{"valid", "  hello world  ", 0, "hello world", false},
		{"empty", "", 0, "", true},
		{"whitespace only", "   \n\t ", 0, "", true},
		{"at cap", strings.Repeat("a", MaxTextLength), 0, strings.Repeat("a", MaxTextLength), false},
		{"over cap", strings.Repeat("a", MaxTextLength+1), 0, "", true},
		{"custom cap", "abcdef", 5, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Text(tc.input, tc.maxLen)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Text() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
			if err != nil {
				if _, ok := err.(*services.ValidationError); !ok {
					t.Errorf("Expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 50, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"over max", 51, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Count(tc.n, MinQuestions, MaxQuestions)
			if (err != nil) != tc.wantErr {
				t.Errorf("Count(%d) error = %v, wantErr %v", tc.n, err, tc.wantErr)
			}
		})
	}
}

func TestListPair(t *testing.T) {
	if err := ListPair(3, 3); err != nil {
		t.Errorf("Expected matched lengths to pass, got %v", err)
	}
	if err := ListPair(3, 4); err == nil {
		t.Error("Expected mismatch to fail")
	}
	if err := ListPair(MaxBatchItems+1, MaxBatchItems+1); err == nil {
		t.Error("Expected oversize batch to fail")
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"canonical", "dQw4w9WgXcQ", false},
		{"with underscore and dash", "a_b-c_d-e1", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 21), true},
		{"path traversal", "../../etc", true},
		{"shell metachars", "abc;rm -rf", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := VideoID(tc.id)
			if (err != nil) != tc.wantErr {
				t.Errorf("VideoID(%q) error = %v, wantErr %v", tc.id, err, tc.wantErr)
			}
		})
	}
}

func TestQuestionType(t *testing.T) {
	for _, valid := range []string{"get_shortq", "get_mcq", "get_boolq", ""} {
		if err := QuestionType(valid); err != nil {
			t.Errorf("Expected %q to be accepted, got %v", valid, err)
		}
	}
	if err := QuestionType("get_essay"); err == nil {
		t.Error("Expected unknown type to fail")
	}
}
