package quiz

import (
	"math/rand"
	"sync"
	"time"

	"github.com/opostest/backend/internal/bank"
	"github.com/opostest/backend/internal/models"
)

// Service owns every live quiz session and serializes access to them. Each
// browser session key maps to one Session; sessions share the bank but
// nothing else.
type Service struct {
	bank      *bank.Bank
	persister ReviewPersister

	mu       sync.Mutex
	sessions map[string]*Session
	rng      *rand.Rand
}

func NewService(b *bank.Bank, persister ReviewPersister) *Service {
	return &Service{
		bank:      b,
		persister: persister,
		sessions:  make(map[string]*Session),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) Themes() []models.Theme {
	return s.bank.Themes()
}

// Generate starts a fresh quiz for the session, discarding any previous one.
// The pool is narrowed by title or theme before sampling; a pool smaller
// than the requested count fails with a CapacityError.
func (s *Service) Generate(sessionKey string, req models.GenerateRequest) (*models.QuizResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := bank.Filter(s.bank.Questions(), req.Title, req.Theme)

	sess := s.session(sessionKey)
	sess.New()
	if err := sess.Generate(pool, req.Count); err != nil {
		return nil, err
	}
	return sess.Render()
}

func (s *Service) Answer(sessionKey string, req models.AnswerRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionKey).Answer(req.QuestionID, req.OptionID)
}

func (s *Service) Correct(sessionKey string) (*models.CorrectResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionKey).Correct()
}

func (s *Service) Repeat(sessionKey string) (*models.QuizResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionKey)
	if err := sess.Repeat(); err != nil {
		return nil, err
	}
	return sess.Render()
}

func (s *Service) New(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionKey).New()
}

func (s *Service) ToggleReview(sessionKey string, req models.ReviewToggleRequest) (models.ReviewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionKey).ToggleReview(req.QuestionID, req.Position)
}

func (s *Service) ReviewState(sessionKey string) models.ReviewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionKey).ReviewState()
}

// session returns the live session for the key, creating it on first use.
// Callers must hold s.mu.
func (s *Service) session(key string) *Session {
	sess, ok := s.sessions[key]
	if !ok {
		sess = NewSession(s.rng, s.persister, key)
		s.sessions[key] = sess
	}
	return sess
}
