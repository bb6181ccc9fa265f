package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opostest/backend/internal/models"
)

// Store persists the question bank and small key-value application state in
// Postgres. Question ids come from the source document, not the database, so
// an import is repeatable against the same bank.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Question Bank ───────────────────────────────────────

func (s *Store) CountQuestions() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// ImportQuestions replaces any stored copy of each question with the given
// normalized records, options included.
func (s *Store) ImportQuestions(ctx context.Context, questions []models.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, q := range questions {
		_, err := tx.Exec(
			`INSERT INTO questions (id, text, answer_text, explanation, source, section, page, theme, title)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (id) DO UPDATE SET
			     text = $2, answer_text = $3, explanation = $4, source = $5,
			     section = $6, page = $7, theme = $8, title = $9`,
			q.ID, q.Text, q.AnswerText, q.Explanation, q.Source, q.Section, q.Page, q.Theme, q.Title,
		)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}

		if _, err := tx.Exec(`DELETE FROM question_options WHERE question_id = $1`, q.ID); err != nil {
			return fmt.Errorf("clear options for question %d: %w", q.ID, err)
		}
		for i, o := range q.Options {
			_, err := tx.Exec(
				`INSERT INTO question_options (question_id, position, text, is_correct)
				 VALUES ($1, $2, $3, $4)`,
				q.ID, i, o.Text, o.IsCorrect,
			)
			if err != nil {
				return fmt.Errorf("insert option for question %d: %w", q.ID, err)
			}
		}
	}

	return tx.Commit()
}

// LoadQuestions reads the whole bank with options in stored order.
func (s *Store) LoadQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.text, q.answer_text, q.explanation, q.source, q.section, q.page, q.theme, q.title,
		        o.text, o.is_correct
		 FROM questions q
		 JOIN question_options o ON o.question_id = q.id
		 ORDER BY q.id, o.position`,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	questionMap := make(map[int64]*models.Question)
	var questionOrder []int64

	for rows.Next() {
		var q models.Question
		var opt models.Option

		if err := rows.Scan(
			&q.ID, &q.Text, &q.AnswerText, &q.Explanation, &q.Source,
			&q.Section, &q.Page, &q.Theme, &q.Title,
			&opt.Text, &opt.IsCorrect,
		); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}

		if existing, ok := questionMap[q.ID]; ok {
			existing.Options = append(existing.Options, opt)
		} else {
			q.Options = []models.Option{opt}
			questionMap[q.ID] = &q
			questionOrder = append(questionOrder, q.ID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(questionOrder))
	for _, id := range questionOrder {
		questions = append(questions, *questionMap[id])
	}
	return questions, nil
}

// ── Application State ───────────────────────────────────

// GetState returns the stored value for the key, or nil when the key has
// never been written.
func (s *Store) GetState(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get state %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetState(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO app_state (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	return nil
}
