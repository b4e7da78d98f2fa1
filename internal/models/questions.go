package models

// MCQQuestion is one generated multiple-choice question. Field names follow
// the wire format the web client consumes.
type MCQQuestion struct {
	QuestionStatement string   `json:"question_statement"`
	Options           []string `json:"options"`
	Answer            string   `json:"answer"`
	Context           string   `json:"context,omitempty"`
}

// ShortQuestion is one generated short-answer question.
type ShortQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionItem is the normalized shape every generation backend adapts to,
// used by the harder-question endpoints and the form builder.
type QuestionItem struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// MCQOutput and friends are the per-backend result shapes of /get_problems.
type MCQOutput struct {
	Questions []MCQQuestion `json:"questions"`
}

type BoolQOutput struct {
	Text             string   `json:"Text,omitempty"`
	BooleanQuestions []string `json:"Boolean_Questions"`
}

type ShortQOutput struct {
	Questions []ShortQuestion `json:"questions"`
}

type ProblemsResponse struct {
	OutputMCQ    MCQOutput    `json:"output_mcq"`
	OutputBoolQ  BoolQOutput  `json:"output_boolq"`
	OutputShortQ ShortQOutput `json:"output_shortq"`
}
