package bank

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/opostest/backend/internal/models"
)

// Field aliases tried in priority order. The bank files have accumulated
// several generations of key names; new aliases go here and nowhere else.
var (
	promptAliases      = []string{"text", "question"}
	optionTextAliases  = []string{"text", "label"}
	correctFlagAliases = []string{"isCorrect", "is_correct", "correct"}
	answerAliases      = []string{"answer", "correctAnswer"}
	explanationAliases = []string{"explanation", "explain", "reference"}
	sourceAliases      = []string{"source", "referenceSource"}
	sectionAliases     = []string{"epigrafe", "section"}
	pageAliases        = []string{"pagina", "page", "p"}
	themeAliases       = []string{"tema", "theme"}
	titleAliases       = []string{"titulo", "title"}
)

type rawRecord map[string]json.RawMessage

// ValidationError aborts a load on structural failure (non-array payload,
// empty bank). Per-record issues never produce one; they are logged and the
// record is skipped.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bank validation failed: %s", strings.Join(e.Errors, "; "))
}

// Parse decodes a raw bank document and normalizes every record. Structural
// failures abort; anything recoverable is logged per record and skipped so
// one bad entry never takes down the whole bank.
func Parse(data []byte) ([]models.Question, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ValidationError{Errors: []string{"payload is not a JSON array: " + err.Error()}}
	}
	if len(records) == 0 {
		return nil, &ValidationError{Errors: []string{"question bank is empty"}}
	}

	questions := Normalize(records)
	if len(questions) == 0 {
		return nil, &ValidationError{Errors: []string{"no usable questions after normalization"}}
	}
	return questions, nil
}

// Normalize turns heterogeneous raw records into canonical Questions.
// Records without options or with a duplicate id are dropped with a warning.
func Normalize(records []json.RawMessage) []models.Question {
	seen := make(map[int64]bool)
	questions := make([]models.Question, 0, len(records))

	for i, raw := range records {
		var rec rawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Printf("WARN: record %d is not an object, skipping: %v", i+1, err)
			continue
		}

		id, ok := recordID(rec)
		if !ok {
			log.Printf("WARN: record %d has no usable id, skipping", i+1)
			continue
		}
		if seen[id] {
			log.Printf("WARN: duplicate question id %d, skipping later record", id)
			continue
		}

		q, ok := normalizeRecord(id, rec)
		if !ok {
			continue
		}

		seen[id] = true
		questions = append(questions, q)
	}

	return questions
}

func normalizeRecord(id int64, rec rawRecord) (models.Question, bool) {
	q := models.Question{
		ID:          id,
		Text:        firstString(rec, promptAliases),
		AnswerText:  firstString(rec, answerAliases),
		Explanation: firstString(rec, explanationAliases),
		Source:      firstString(rec, sourceAliases),
		Section:     firstString(rec, sectionAliases),
		Page:        firstScalar(rec, pageAliases),
		Theme:       firstScalar(rec, themeAliases),
		Title:       firstScalar(rec, titleAliases),
	}

	opts, ok := normalizeOptions(rec, q.AnswerText)
	if !ok {
		log.Printf("WARN: question id=%d has no options, skipping", id)
		return models.Question{}, false
	}
	q.Options = reconcileCorrectness(id, opts)

	return q, true
}

// normalizeOptions resolves the option list, which may hold plain strings or
// objects. Correctness is true only when a recognized flag is strictly true;
// the legacy answer-text fallback applies only when no flag is strictly true
// anywhere in the set.
func normalizeOptions(rec rawRecord, answerText string) ([]models.Option, bool) {
	raw, ok := rec["options"]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}

	opts := make([]models.Option, 0, len(items))
	anyFlag := false

	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			opts = append(opts, models.Option{Text: text})
			continue
		}

		var obj rawRecord
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		opt := models.Option{Text: firstString(obj, optionTextAliases)}
		for _, alias := range correctFlagAliases {
			if isTrue(obj[alias]) {
				opt.IsCorrect = true
				anyFlag = true
				break
			}
		}
		opts = append(opts, opt)
	}

	if len(opts) == 0 {
		return nil, false
	}

	if !anyFlag && answerText != "" {
		for i := range opts {
			if opts[i].Text == answerText {
				opts[i].IsCorrect = true
			}
		}
	}

	return opts, true
}

// reconcileCorrectness enforces the at-most-one invariant. Two or more
// flagged options means the data cannot be trusted: all flags are cleared
// rather than guessing, and the question stays unresolved until (maybe) the
// render-time text fallback settles it.
func reconcileCorrectness(id int64, opts []models.Option) []models.Option {
	flagged := 0
	for _, o := range opts {
		if o.IsCorrect {
			flagged++
		}
	}

	switch {
	case flagged > 1:
		log.Printf("WARN: question id=%d has %d options flagged correct, clearing all flags", id, flagged)
		for i := range opts {
			opts[i].IsCorrect = false
		}
	case flagged == 0:
		log.Printf("WARN: question id=%d has no resolvable correct option", id)
	}

	return opts
}

func recordID(rec rawRecord) (int64, bool) {
	raw, ok := rec["id"]
	if !ok {
		return 0, false
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}

// firstString returns the first alias whose value is a non-empty JSON string.
func firstString(rec rawRecord, aliases []string) string {
	for _, alias := range aliases {
		raw, ok := rec[alias]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// firstScalar is firstString but also accepts JSON numbers, rendered in
// their literal decimal form so numeric and textual keys compare equal.
func firstScalar(rec rawRecord, aliases []string) string {
	for _, alias := range aliases {
		raw, ok := rec[alias]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil && n.String() != "" {
			return n.String()
		}
	}
	return ""
}

// isTrue reports whether a raw value is strictly JSON true. "true", 1 and
// other truthy encodings do not count.
func isTrue(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var b bool
	return json.Unmarshal(raw, &b) == nil && b
}
