package quiz

import (
	"log"

	"github.com/opostest/backend/internal/models"
)

// ReviewPersister stores review state outside the session so a reload can
// restore it. Implementations are keyed by session so concurrent sessions do
// not clobber each other.
type ReviewPersister interface {
	SaveReview(sessionKey string, state models.ReviewState) error
	LoadReview(sessionKey string) (models.ReviewState, error)
}

// ReviewTracker holds the set of questions the user flagged for later
// review, in first-seen order, alongside the display position each question
// occupied when it was flagged. It persists after every mutation; a failed
// or corrupt load degrades to an empty set rather than blocking the quiz.
type ReviewTracker struct {
	persister  ReviewPersister
	sessionKey string

	positions map[int64]int
	order     []int64
}

func NewReviewTracker(persister ReviewPersister, sessionKey string) *ReviewTracker {
	t := &ReviewTracker{
		persister:  persister,
		sessionKey: sessionKey,
		positions:  make(map[int64]int),
	}
	if persister == nil {
		return t
	}
	state, err := persister.LoadReview(sessionKey)
	if err != nil {
		log.Printf("WARN: could not load review state for session %s: %v", sessionKey, err)
		return t
	}
	if len(state.QuestionIDs) != len(state.Positions) {
		log.Printf("WARN: review state for session %s is inconsistent, starting empty", sessionKey)
		return t
	}
	for i, id := range state.QuestionIDs {
		t.positions[id] = state.Positions[i]
		t.order = append(t.order, id)
	}
	return t
}

// Toggle flags the question if it is unflagged, or removes the flag if
// present. It reports whether the question is flagged after the call.
func (t *ReviewTracker) Toggle(questionID int64, position int) bool {
	if _, ok := t.positions[questionID]; ok {
		delete(t.positions, questionID)
		for i, id := range t.order {
			if id == questionID {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
		t.persist()
		return false
	}
	t.positions[questionID] = position
	t.order = append(t.order, questionID)
	t.persist()
	return true
}

func (t *ReviewTracker) IsFlagged(questionID int64) bool {
	_, ok := t.positions[questionID]
	return ok
}

// Clear empties the set and persists the empty state, so external stores see
// the reset too.
func (t *ReviewTracker) Clear() {
	t.positions = make(map[int64]int)
	t.order = nil
	t.persist()
}

func (t *ReviewTracker) State() models.ReviewState {
	state := models.ReviewState{
		QuestionIDs: make([]int64, 0, len(t.order)),
		Positions:   make([]int, 0, len(t.order)),
	}
	for _, id := range t.order {
		state.QuestionIDs = append(state.QuestionIDs, id)
		state.Positions = append(state.Positions, t.positions[id])
	}
	return state
}

func (t *ReviewTracker) persist() {
	if t.persister == nil {
		return
	}
	if err := t.persister.SaveReview(t.sessionKey, t.State()); err != nil {
		log.Printf("WARN: could not persist review state for session %s: %v", t.sessionKey, err)
	}
}
