package quiz

import (
	"log"
	"math/rand"

	"github.com/opostest/backend/internal/models"
)

// RenderedOption is an option as it exists in one render pass: the letter
// assigned from its shuffled position plus the canonical correctness flag.
// The letter is presentation-scoped and means nothing outside this render.
type RenderedOption struct {
	ID        string
	Text      string
	IsCorrect bool
}

// ShuffleOptions applies an unbiased Fisher–Yates permutation to a
// question's options and assigns letters by the new order.
func ShuffleOptions(rng *rand.Rand, opts []models.Option) []RenderedOption {
	rendered := make([]RenderedOption, len(opts))
	for i, o := range opts {
		rendered[i] = RenderedOption{Text: o.Text, IsCorrect: o.IsCorrect}
	}
	for i := len(rendered) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		rendered[i], rendered[j] = rendered[j], rendered[i]
	}
	for i := range rendered {
		rendered[i].ID = optionLetter(i)
	}
	return rendered
}

// ResolveCorrect derives the presentation-scoped correct option id from a
// rendered option set. Exactly one flagged option wins; with no flags the
// legacy answer text is matched exactly against the option texts. Anything
// ambiguous resolves to "" — the caller must treat such a question as
// never-correct, not guess.
//
// This is a pure recomputation over the same inputs: running it again on the
// same rendered sequence always yields the same id. It runs at every render
// and again at correction time.
func ResolveCorrect(questionID int64, opts []RenderedOption, answerText string) string {
	var matches []string
	for _, o := range opts {
		if o.IsCorrect {
			matches = append(matches, o.ID)
		}
	}

	if len(matches) > 1 {
		log.Printf("WARN: question id=%d has %d options flagged correct, leaving unresolved", questionID, len(matches))
		return ""
	}
	if len(matches) == 1 {
		return matches[0]
	}

	if answerText == "" {
		return ""
	}
	matches = matches[:0]
	for _, o := range opts {
		if o.Text == answerText {
			matches = append(matches, o.ID)
		}
	}
	if len(matches) == 1 {
		return matches[0]
	}
	return ""
}

func optionLetter(i int) string {
	return string(rune('A' + i))
}
