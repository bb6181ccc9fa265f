package quiz

import (
	"errors"
	"fmt"
)

// CapacityError fails a Generate whose requested sample size exceeds the
// filtered pool. It names both counts so the caller can surface the
// shortfall verbatim.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough questions in the pool: requested %d, available %d", e.Requested, e.Available)
}

var (
	ErrNoActiveQuiz      = errors.New("no active quiz")
	ErrQuizActive        = errors.New("a quiz is already active")
	ErrQuizCorrected     = errors.New("quiz has already been corrected")
	ErrQuizNotCorrected  = errors.New("quiz has not been corrected yet")
	ErrQuestionNotInQuiz = errors.New("question is not part of the active quiz")
)
