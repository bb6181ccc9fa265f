package quiz

import (
	"math"

	"github.com/opostest/backend/internal/models"
)

// penaltyPerError is the fraction of a point deducted per wrong answer.
const penaltyPerError = 0.33

// Score computes the penalized result of a corrected quiz. Unanswered
// questions earn and cost nothing but still divide into the total. A zero
// total yields the degenerate zero result; callers must not correct an
// empty session.
func Score(correct, incorrect, total int) models.ScoreResult {
	if total <= 0 {
		return models.ScoreResult{}
	}

	gross := float64(correct)
	deduction := float64(incorrect) * penaltyPerError
	net := gross - deduction

	grade := net / float64(total) * 10
	if grade < 0 {
		grade = 0
	}

	return models.ScoreResult{
		CorrectCount:    correct,
		IncorrectCount:  incorrect,
		UnansweredCount: total - correct - incorrect,
		GrossPoints:     round2(gross),
		Deduction:       round2(deduction),
		NetPoints:       round2(net),
		Percentage:      round2(float64(correct) / float64(total) * 100),
		GradeOutOf10:    round2(grade),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
