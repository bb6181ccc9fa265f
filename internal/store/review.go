package store

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/opostest/backend/internal/models"
)

// ReviewStore persists review state in the app_state table, one key per
// browser session.
type ReviewStore struct {
	store *Store
}

func NewReviewStore(store *Store) *ReviewStore {
	return &ReviewStore{store: store}
}

func reviewKey(sessionKey string) string {
	return "review:" + sessionKey
}

func (r *ReviewStore) SaveReview(sessionKey string, state models.ReviewState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal review state: %w", err)
	}
	return r.store.SetState(reviewKey(sessionKey), data)
}

// LoadReview returns the persisted review state. A missing key or a value
// that no longer parses yields an empty state; corruption is logged, never
// propagated.
func (r *ReviewStore) LoadReview(sessionKey string) (models.ReviewState, error) {
	data, err := r.store.GetState(reviewKey(sessionKey))
	if err != nil {
		return models.ReviewState{}, err
	}
	if data == nil {
		return models.ReviewState{}, nil
	}

	var state models.ReviewState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("WARN: discarding unreadable review state for session %s: %v", sessionKey, err)
		return models.ReviewState{}, nil
	}
	return state, nil
}
