package models

// ── Request Types ─────────────────────────────────────

type GenerateRequest struct {
	Count int    `json:"count"`
	Title string `json:"titulo,omitempty"`
	Theme string `json:"tema,omitempty"`
}

type AnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	OptionID   string `json:"option_id"`
}

type ReviewToggleRequest struct {
	QuestionID int64 `json:"question_id"`
	Position   int   `json:"position"`
}

// ── Render Types (strip answers for serving) ──────────

// QuizOption is an option as presented to the client: a letter assigned from
// its shuffled position plus the text. Correctness is withheld until the
// Correct transition.
type QuizOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuizQuestion struct {
	ID      int64        `json:"id"`
	Number  int          `json:"number"`
	Text    string       `json:"text"`
	Options []QuizOption `json:"options"`
}

type QuizResponse struct {
	Questions []QuizQuestion `json:"questions"`
	Total     int            `json:"total"`
}

// ── Correction Types ──────────────────────────────────

// ScoreResult is the penalized score of a corrected quiz. GrossPoints and
// Deduction are carried so consumers can render the computation steps from
// this struct alone.
type ScoreResult struct {
	CorrectCount    int     `json:"correct_count"`
	IncorrectCount  int     `json:"incorrect_count"`
	UnansweredCount int     `json:"unanswered_count"`
	GrossPoints     float64 `json:"gross_points"`
	Deduction       float64 `json:"deduction"`
	NetPoints       float64 `json:"net_points"`
	Percentage      float64 `json:"percentage"`
	GradeOutOf10    float64 `json:"grade_out_of_10"`
}

// QuestionResult is the per-question correction detail. CorrectOptionID is
// empty when the question's correct answer could not be resolved from the
// data; such questions are never counted as correct.
type QuestionResult struct {
	QuestionID      int64  `json:"question_id"`
	Number          int    `json:"number"`
	UserOptionID    string `json:"user_option_id,omitempty"`
	CorrectOptionID string `json:"correct_option_id,omitempty"`
	CorrectText     string `json:"correct_text,omitempty"`
	Answered        bool   `json:"answered"`
	Correct         bool   `json:"correct"`
	Explanation     string `json:"explanation,omitempty"`
	Source          string `json:"source,omitempty"`
	Section         string `json:"section,omitempty"`
	Page            string `json:"page,omitempty"`
}

type CorrectResponse struct {
	Score     ScoreResult      `json:"score"`
	Breakdown []QuestionResult `json:"breakdown"`
	Total     int              `json:"total"`
}

// ── Review Types ──────────────────────────────────────

// ReviewState mirrors the two externally persisted values: the flagged-id
// set (in first-seen order) and the 1-based display positions for jump
// navigation. Positions refer to the current render and go stale when the
// subset is regenerated.
type ReviewState struct {
	QuestionIDs []int64 `json:"question_ids"`
	Positions   []int   `json:"positions"`
}
