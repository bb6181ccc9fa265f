package quiz

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/opostest/backend/internal/models"
)

const sessionCookieName = "quiz_session"

type Handler struct {
	service *Service
	cookies *sessions.CookieStore
}

func NewHandler(service *Service, cookieSecret []byte) *Handler {
	return &Handler{
		service: service,
		cookies: sessions.NewCookieStore(cookieSecret),
	}
}

// sessionKey reads the session id from the cookie, minting and saving a new
// one on first contact.
func (h *Handler) sessionKey(w http.ResponseWriter, r *http.Request) string {
	cookie, _ := h.cookies.Get(r, sessionCookieName)
	if sid, ok := cookie.Values["sid"].(string); ok && sid != "" {
		return sid
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Printf("[handler] session id generation failed: %v", err)
	}
	sid := hex.EncodeToString(buf)
	cookie.Values["sid"] = sid
	if err := cookie.Save(r, w); err != nil {
		log.Printf("[handler] could not save session cookie: %v", err)
	}
	return sid
}

func (h *Handler) GetThemes(w http.ResponseWriter, r *http.Request) {
	themes := h.service.Themes()
	if themes == nil {
		themes = []models.Theme{}
	}
	writeJSON(w, http.StatusOK, themes)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Default count
	if req.Count <= 0 {
		req.Count = 10
	}

	resp, err := h.service.Generate(h.sessionKey(w, r), req)
	if err != nil {
		var capErr *CapacityError
		if errors.As(err, &capErr) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: capErr.Error()})
			return
		}
		log.Printf("[handler] Generate error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate quiz"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.OptionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "option_id is required"})
		return
	}

	if err := h.service.Answer(h.sessionKey(w, r), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"question_id": req.QuestionID})
}

func (h *Handler) Correct(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Correct(h.sessionKey(w, r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Repeat(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Repeat(h.sessionKey(w, r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) New(w http.ResponseWriter, r *http.Request) {
	h.service.New(h.sessionKey(w, r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	state, err := h.service.ToggleReview(h.sessionKey(w, r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ReviewState(h.sessionKey(w, r)))
}

// writeError maps session lifecycle errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoActiveQuiz):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No active quiz"})
	case errors.Is(err, ErrQuizCorrected):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Quiz has already been corrected"})
	case errors.Is(err, ErrQuizNotCorrected):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Quiz has not been corrected yet"})
	case errors.Is(err, ErrQuestionNotInQuiz):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question is not part of the active quiz"})
	default:
		log.Printf("[handler] unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
