package quiz

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/opostest/backend/internal/models"
)

func testQuestions(n int) []models.Question {
	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.Question{
			ID:   int64(i + 1),
			Text: "question",
			Options: []models.Option{
				{Text: "right", IsCorrect: true},
				{Text: "wrong one"},
				{Text: "wrong two"},
			},
		})
	}
	return questions
}

func testSession() *Session {
	return NewSession(rand.New(rand.NewSource(7)), nil, "test")
}

// wrongLetter returns a rendered letter other than the correct one.
func wrongLetter(aq *activeQuestion) string {
	for _, o := range aq.options {
		if o.ID != aq.correctID {
			return o.ID
		}
	}
	return ""
}

func TestGenerateCapacityError(t *testing.T) {
	s := testSession()
	err := s.Generate(testQuestions(5), 20)
	if err == nil {
		t.Fatal("expected capacity error")
	}

	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %T", err)
	}
	if capErr.Requested != 20 || capErr.Available != 5 {
		t.Errorf("CapacityError = %+v, want requested 20 available 5", capErr)
	}
	if s.State() != StateUnstarted {
		t.Errorf("failed generate must leave the session unstarted, got %s", s.State())
	}
}

func TestGenerateSamplesWithoutReplacement(t *testing.T) {
	s := testSession()
	if err := s.Generate(testQuestions(10), 4); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if s.State() != StateInProgress {
		t.Fatalf("state = %s, want in_progress", s.State())
	}

	seen := make(map[int64]bool)
	for _, aq := range s.active {
		if seen[aq.question.ID] {
			t.Errorf("question %d sampled twice", aq.question.ID)
		}
		seen[aq.question.ID] = true
	}
	if len(seen) != 4 {
		t.Errorf("sampled %d questions, want 4", len(seen))
	}

	if err := s.Generate(testQuestions(10), 4); !errors.Is(err, ErrQuizActive) {
		t.Errorf("generate over a live quiz: %v, want ErrQuizActive", err)
	}
}

func TestRenderHidesCorrectness(t *testing.T) {
	s := testSession()
	if err := s.Generate(testQuestions(5), 3); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	resp, err := s.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if resp.Total != 3 || len(resp.Questions) != 3 {
		t.Fatalf("rendered %d questions, want 3", len(resp.Questions))
	}
	for i, q := range resp.Questions {
		if q.Number != i+1 {
			t.Errorf("question %d numbered %d", i, q.Number)
		}
		if len(q.Options) != 3 {
			t.Errorf("question %d has %d options", i, len(q.Options))
		}
		for j, o := range q.Options {
			want := string(rune('A' + j))
			if o.ID != want {
				t.Errorf("option id = %q, want %q", o.ID, want)
			}
		}
	}
}

func TestAnswerValidation(t *testing.T) {
	s := testSession()

	if err := s.Answer(1, "A"); !errors.Is(err, ErrNoActiveQuiz) {
		t.Errorf("answer before generate: %v, want ErrNoActiveQuiz", err)
	}

	if err := s.Generate(testQuestions(3), 3); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := s.Answer(99, "A"); !errors.Is(err, ErrQuestionNotInQuiz) {
		t.Errorf("answer for foreign question: %v, want ErrQuestionNotInQuiz", err)
	}
	if err := s.Answer(1, "A"); err != nil {
		t.Errorf("valid answer failed: %v", err)
	}
	// Changing an answer is allowed until correction.
	if err := s.Answer(1, "B"); err != nil {
		t.Errorf("changing an answer failed: %v", err)
	}
}

func TestCorrectCountsAndBreakdown(t *testing.T) {
	s := testSession()
	if err := s.Generate(testQuestions(4), 4); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Two right, one wrong, one unanswered.
	s.Answer(s.active[0].question.ID, s.active[0].correctID)
	s.Answer(s.active[1].question.ID, s.active[1].correctID)
	s.Answer(s.active[2].question.ID, wrongLetter(&s.active[2]))

	resp, err := s.Correct()
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}

	if resp.Score.CorrectCount != 2 || resp.Score.IncorrectCount != 1 || resp.Score.UnansweredCount != 1 {
		t.Errorf("score counts = %+v", resp.Score)
	}
	if resp.Total != 4 || len(resp.Breakdown) != 4 {
		t.Fatalf("breakdown has %d entries, want 4", len(resp.Breakdown))
	}

	first := resp.Breakdown[0]
	if !first.Correct || !first.Answered {
		t.Errorf("first entry should be answered and correct: %+v", first)
	}
	if first.CorrectText != "right" {
		t.Errorf("CorrectText = %q, want %q", first.CorrectText, "right")
	}
	third := resp.Breakdown[2]
	if third.Correct || !third.Answered {
		t.Errorf("third entry should be answered and wrong: %+v", third)
	}
	fourth := resp.Breakdown[3]
	if fourth.Answered || fourth.Correct {
		t.Errorf("fourth entry should be unanswered: %+v", fourth)
	}

	if s.State() != StateCorrected {
		t.Errorf("state = %s, want corrected", s.State())
	}
	if err := s.Answer(s.active[0].question.ID, "A"); !errors.Is(err, ErrQuizCorrected) {
		t.Errorf("answer after correction: %v, want ErrQuizCorrected", err)
	}
	if _, err := s.Correct(); !errors.Is(err, ErrQuizCorrected) {
		t.Errorf("double correction: %v, want ErrQuizCorrected", err)
	}
}

func TestCorrectUnresolvableNeverCorrect(t *testing.T) {
	s := testSession()
	questions := []models.Question{{
		ID:   1,
		Text: "broken",
		Options: []models.Option{
			{Text: "a"},
			{Text: "b"},
		},
	}}
	if err := s.Generate(questions, 1); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s.Answer(1, "A")
	resp, err := s.Correct()
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	if resp.Score.CorrectCount != 0 || resp.Score.IncorrectCount != 1 {
		t.Errorf("unresolvable question graded as correct: %+v", resp.Score)
	}
	if resp.Breakdown[0].CorrectOptionID != "" {
		t.Errorf("CorrectOptionID = %q, want empty", resp.Breakdown[0].CorrectOptionID)
	}
}

func TestRepeatReusesSubsetAndResets(t *testing.T) {
	s := testSession()
	if err := s.Generate(testQuestions(8), 4); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := s.Repeat(); !errors.Is(err, ErrQuizNotCorrected) {
		t.Errorf("repeat before correction: %v, want ErrQuizNotCorrected", err)
	}

	before := make(map[int64]bool)
	for _, aq := range s.active {
		before[aq.question.ID] = true
	}
	s.Answer(s.active[0].question.ID, s.active[0].correctID)
	if _, err := s.Correct(); err != nil {
		t.Fatalf("Correct failed: %v", err)
	}

	if err := s.Repeat(); err != nil {
		t.Fatalf("Repeat failed: %v", err)
	}
	if s.State() != StateInProgress {
		t.Errorf("state = %s, want in_progress", s.State())
	}
	if len(s.answers) != 0 {
		t.Errorf("answers survived a repeat: %v", s.answers)
	}
	if len(s.active) != 4 {
		t.Fatalf("repeat changed the subset size: %d", len(s.active))
	}
	for _, aq := range s.active {
		if !before[aq.question.ID] {
			t.Errorf("repeat introduced question %d from outside the subset", aq.question.ID)
		}
	}
}

func TestNewDiscardsEverything(t *testing.T) {
	s := testSession()
	if err := s.Generate(testQuestions(3), 3); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	s.ToggleReview(s.active[0].question.ID, 1)

	s.New()
	if s.State() != StateUnstarted {
		t.Errorf("state = %s, want unstarted", s.State())
	}
	if len(s.ReviewState().QuestionIDs) != 0 {
		t.Error("review flags survived a new quiz")
	}
	if _, err := s.Render(); !errors.Is(err, ErrNoActiveQuiz) {
		t.Errorf("render after new: %v, want ErrNoActiveQuiz", err)
	}
}

func TestToggleReviewScoping(t *testing.T) {
	s := testSession()
	if _, err := s.ToggleReview(1, 1); !errors.Is(err, ErrNoActiveQuiz) {
		t.Errorf("toggle before generate: %v, want ErrNoActiveQuiz", err)
	}

	if err := s.Generate(testQuestions(3), 3); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := s.ToggleReview(99, 1); !errors.Is(err, ErrQuestionNotInQuiz) {
		t.Errorf("toggle for foreign question: %v, want ErrQuestionNotInQuiz", err)
	}

	state, err := s.ToggleReview(s.active[1].question.ID, 2)
	if err != nil {
		t.Fatalf("ToggleReview failed: %v", err)
	}
	if len(state.QuestionIDs) != 1 || state.Positions[0] != 2 {
		t.Errorf("review state = %+v", state)
	}
}

func TestCorrectClearsReview(t *testing.T) {
	s := testSession()
	if err := s.Generate(testQuestions(3), 3); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	s.ToggleReview(s.active[0].question.ID, 1)

	if _, err := s.Correct(); err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	if len(s.ReviewState().QuestionIDs) != 0 {
		t.Error("review flags survived correction")
	}
}
