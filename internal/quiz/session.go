package quiz

import (
	"math/rand"
	"time"

	"github.com/opostest/backend/internal/models"
)

// State is the lifecycle phase of a quiz session.
type State string

const (
	StateUnstarted  State = "unstarted"
	StateInProgress State = "in_progress"
	StateCorrected  State = "corrected"
)

// activeQuestion is one question as it currently stands in the session: the
// canonical record plus the rendered option order and the correct letter
// resolved against that order.
type activeQuestion struct {
	question  models.Question
	options   []RenderedOption
	correctID string
}

// Session is one user's quiz from generation through correction. It is not
// safe for concurrent use; the owning service serializes access.
type Session struct {
	rng    *rand.Rand
	state  State
	active []activeQuestion
	// answers maps question id to the selected option letter. Letters are
	// scoped to the current render; the map is discarded on repeat.
	answers map[int64]string
	review  *ReviewTracker
}

func NewSession(rng *rand.Rand, persister ReviewPersister, sessionKey string) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		rng:    rng,
		state:  StateUnstarted,
		review: NewReviewTracker(persister, sessionKey),
	}
}

func (s *Session) State() State {
	return s.state
}

// Generate samples count questions uniformly without replacement from the
// given pool and renders them. A pool smaller than count fails with a
// CapacityError and leaves the session unstarted.
func (s *Session) Generate(pool []models.Question, count int) error {
	if s.state != StateUnstarted {
		return ErrQuizActive
	}
	if len(pool) < count {
		return &CapacityError{Requested: count, Available: len(pool)}
	}

	sample := make([]models.Question, len(pool))
	copy(sample, pool)
	s.rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	sample = sample[:count]

	s.active = make([]activeQuestion, 0, count)
	for _, q := range sample {
		s.active = append(s.active, s.render(q))
	}
	s.answers = make(map[int64]string)
	s.state = StateInProgress
	s.review.Clear()
	return nil
}

// Answer records the selected option letter for a question in the active
// subset. Selections may be changed freely until correction.
func (s *Session) Answer(questionID int64, optionID string) error {
	switch s.state {
	case StateUnstarted:
		return ErrNoActiveQuiz
	case StateCorrected:
		return ErrQuizCorrected
	}
	if s.find(questionID) == nil {
		return ErrQuestionNotInQuiz
	}
	s.answers[questionID] = optionID
	return nil
}

// Correct grades the session against the current render. The correct letter
// for each question is resolved afresh here, so grading always agrees with
// the option order the user actually saw. An unresolvable question counts as
// incorrect when answered and unanswered otherwise — it is never correct.
func (s *Session) Correct() (*models.CorrectResponse, error) {
	switch s.state {
	case StateUnstarted:
		return nil, ErrNoActiveQuiz
	case StateCorrected:
		return nil, ErrQuizCorrected
	}

	var correct, incorrect int
	breakdown := make([]models.QuestionResult, 0, len(s.active))
	for i := range s.active {
		aq := &s.active[i]
		correctID := ResolveCorrect(aq.question.ID, aq.options, aq.question.AnswerText)

		userID, answered := s.answers[aq.question.ID]
		result := models.QuestionResult{
			QuestionID:      aq.question.ID,
			Number:          i + 1,
			UserOptionID:    userID,
			CorrectOptionID: correctID,
			CorrectText:     s.optionText(aq, correctID),
			Answered:        answered,
			Explanation:     aq.question.Explanation,
			Source:          aq.question.Source,
			Section:         aq.question.Section,
			Page:            aq.question.Page,
		}
		if answered {
			if correctID != "" && userID == correctID {
				result.Correct = true
				correct++
			} else {
				incorrect++
			}
		}
		breakdown = append(breakdown, result)
	}

	s.state = StateCorrected
	s.review.Clear()

	return &models.CorrectResponse{
		Score:     Score(correct, incorrect, len(s.active)),
		Breakdown: breakdown,
		Total:     len(s.active),
	}, nil
}

// Repeat re-runs the same question subset: question order is reshuffled,
// every question is rendered afresh, and all answers are discarded.
func (s *Session) Repeat() error {
	if s.state != StateCorrected {
		if s.state == StateUnstarted {
			return ErrNoActiveQuiz
		}
		return ErrQuizNotCorrected
	}

	s.rng.Shuffle(len(s.active), func(i, j int) {
		s.active[i], s.active[j] = s.active[j], s.active[i]
	})
	for i := range s.active {
		s.active[i] = s.render(s.active[i].question)
	}
	s.answers = make(map[int64]string)
	s.state = StateInProgress
	s.review.Clear()
	return nil
}

// New discards the quiz entirely and returns the session to the unstarted
// state.
func (s *Session) New() {
	s.active = nil
	s.answers = nil
	s.state = StateUnstarted
	s.review.Clear()
}

// Render produces the client view of the active quiz. Correctness flags and
// the resolved correct letter never leave the server before correction.
func (s *Session) Render() (*models.QuizResponse, error) {
	if s.state == StateUnstarted {
		return nil, ErrNoActiveQuiz
	}
	questions := make([]models.QuizQuestion, 0, len(s.active))
	for i, aq := range s.active {
		qq := models.QuizQuestion{
			ID:     aq.question.ID,
			Number: i + 1,
			Text:   aq.question.Text,
		}
		for _, o := range aq.options {
			qq.Options = append(qq.Options, models.QuizOption{ID: o.ID, Text: o.Text})
		}
		questions = append(questions, qq)
	}
	return &models.QuizResponse{Questions: questions, Total: len(questions)}, nil
}

// ToggleReview flips the review flag for a question in the active subset.
func (s *Session) ToggleReview(questionID int64, position int) (models.ReviewState, error) {
	if s.state != StateInProgress {
		return models.ReviewState{}, ErrNoActiveQuiz
	}
	if s.find(questionID) == nil {
		return models.ReviewState{}, ErrQuestionNotInQuiz
	}
	s.review.Toggle(questionID, position)
	return s.review.State(), nil
}

func (s *Session) ReviewState() models.ReviewState {
	return s.review.State()
}

func (s *Session) render(q models.Question) activeQuestion {
	options := ShuffleOptions(s.rng, q.Options)
	return activeQuestion{
		question:  q,
		options:   options,
		correctID: ResolveCorrect(q.ID, options, q.AnswerText),
	}
}

func (s *Session) find(questionID int64) *activeQuestion {
	for i := range s.active {
		if s.active[i].question.ID == questionID {
			return &s.active[i]
		}
	}
	return nil
}

func (s *Session) optionText(aq *activeQuestion, optionID string) string {
	for _, o := range aq.options {
		if o.ID == optionID {
			return o.Text
		}
	}
	return ""
}
