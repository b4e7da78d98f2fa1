package models

// GenerateRequest drives the single-backend generation endpoints. The count
// is a pointer so an absent field (defaulted) is distinguishable from an
// explicit out-of-range zero (rejected).
type GenerateRequest struct {
	InputText    string `json:"input_text"`
	MaxQuestions *int   `json:"max_questions"`
	UseMediawiki int    `json:"use_mediawiki"`
}

// ProblemsRequest drives the combined /get_problems fan-out.
type ProblemsRequest struct {
	InputText         string `json:"input_text"`
	MaxQuestionsMCQ   *int   `json:"max_questions_mcq"`
	MaxQuestionsBoolQ *int   `json:"max_questions_boolq"`
	MaxQuestionsShort *int   `json:"max_questions_shortq"`
	UseMediawiki      int    `json:"use_mediawiki"`
}

// AnswerRequest drives the answer-prediction endpoints. InputOptions is only
// used by /get_mcq_answer.
type AnswerRequest struct {
	InputText      string     `json:"input_text"`
	InputQuestions []string   `json:"input_question"`
	InputOptions   [][]string `json:"input_options"`
}

// HardRequest drives the harder-question endpoints.
type HardRequest struct {
	InputText      string `json:"input_text"`
	InputQuestions *int   `json:"input_question"`
	UseMediawiki   int    `json:"use_mediawiki"`
}

// QAPair is one question/answer record submitted to /generate_gform.
type QAPair struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type GFormRequest struct {
	QAPairs      []QAPair `json:"qa_pairs"`
	QuestionType string   `json:"question_type"`
}

type FormResult struct {
	FormID       string `json:"form_id"`
	ResponderURI string `json:"responder_uri"`
	EditURI      string `json:"edit_uri"`
}

type ContentRequest struct {
	DocumentURL string `json:"document_url"`
}

// ErrorResponse is the error wire format: a single human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
}
