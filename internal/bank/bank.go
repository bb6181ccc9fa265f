package bank

import (
	"fmt"
	"log"
	"os"

	"github.com/opostest/backend/internal/models"
)

// Bank is the full normalized question collection. It is built once at load
// time and never mutated afterwards; sessions sample from filtered views of
// it.
type Bank struct {
	questions []models.Question
}

func New(questions []models.Question) *Bank {
	return &Bank{questions: questions}
}

// LoadFile reads and normalizes a JSON bank document from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	questions, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load bank file %s: %w", path, err)
	}
	log.Printf("Loaded %d questions from %s", len(questions), path)
	return New(questions), nil
}

func (b *Bank) Questions() []models.Question {
	return b.questions
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// Themes lists the distinct theme/title groupings present in the bank, in
// first-seen order. Questions without grouping metadata contribute nothing;
// a bank with no metadata at all yields an empty list and the pool filter
// degrades to the full bank.
func (b *Bank) Themes() []models.Theme {
	seen := make(map[string]bool)
	var themes []models.Theme
	for _, q := range b.questions {
		if q.Theme == "" && q.Title == "" {
			continue
		}
		key := q.Theme + "\x00" + q.Title
		if seen[key] {
			continue
		}
		seen[key] = true
		themes = append(themes, models.Theme{ID: q.Theme, Title: q.Title})
	}
	return themes
}
