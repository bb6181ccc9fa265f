package models

// ── Core Structs ───────────────────────────────────────

// Option is one answer choice in its canonical (unshuffled) form.
// IsCorrect never leaves the server before correction; render payloads use
// QuizOption instead.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"-"`
}

// Question is a fully normalized bank entry. Identity fields are fixed at
// load time; presentation (option order, letters) is derived per render and
// never stored here.
type Question struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`

	Options []Option `json:"options"`

	// AnswerText is the legacy plain-text correct answer, kept only as a
	// fallback when no option carries a trusted correctness flag.
	AnswerText string `json:"answer_text,omitempty"`

	Explanation string `json:"explanation,omitempty"`
	Source      string `json:"source,omitempty"`
	Section     string `json:"section,omitempty"`
	Page        string `json:"page,omitempty"`

	// Theme and Title are opaque grouping keys (numeric id or free text)
	// used by pool filtering.
	Theme string `json:"theme,omitempty"`
	Title string `json:"title,omitempty"`
}

// Theme is a grouping entry surfaced to the selection UI.
type Theme struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
