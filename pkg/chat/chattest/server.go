// Package chattest provides a fake chat endpoint for tests.
package chattest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Mode selects how the fake endpoint answers.
type Mode int

const (
	// ModeEcho replies "echo: <message>" and mints a session on the first request.
	ModeEcho Mode = iota
	// ModeStatusError answers every request with 500.
	ModeStatusError
	// ModeNotJSON answers 200 with an HTML body.
	ModeNotJSON
	// ModeNoReply answers 200 with a JSON object lacking reply.
	ModeNoReply
)

// Recorded is one request body as seen by the server. SessionIDNull is true
// when session_id was explicitly null.
type Recorded struct {
	Message       string
	Language      string
	SessionID     string
	SessionIDNull bool
	ContentType   string
}

// Server is an httptest server that speaks the chat protocol.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	mode     Mode
	session  string
	language string
	requests []Recorded
}

// NewServer starts a fake endpoint at <URL>/chat. It is closed on test cleanup.
func NewServer(t interface{ Cleanup(func()) }) *Server {
	s := &Server{}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/chat", s.handleChat)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// ChatURL returns the full endpoint URL.
func (s *Server) ChatURL() string {
	return s.URL + "/chat"
}

// SetMode switches the answer mode for subsequent requests.
func (s *Server) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// SetSessionID fixes the id returned instead of a minted one.
func (s *Server) SetSessionID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = id
}

// SetLanguage sets the language field returned with each reply.
func (s *Server) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
}

// Requests returns the recorded request bodies in arrival order.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body struct {
		Message   string  `json:"message"`
		Language  string  `json:"language"`
		SessionID *string `json:"session_id"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := Recorded{
		Message:       body.Message,
		Language:      body.Language,
		SessionIDNull: body.SessionID == nil,
		ContentType:   r.Header.Get("Content-Type"),
	}
	if body.SessionID != nil {
		rec.SessionID = *body.SessionID
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	mode := s.mode
	if s.session == "" {
		s.session = uuid.NewString()
	}
	session := s.session
	language := s.language
	s.mu.Unlock()

	switch mode {
	case ModeStatusError:
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		return
	case ModeNotJSON:
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html><body>Bad Gateway</body></html>")
		return
	case ModeNoReply:
		writeJSON(w, map[string]string{"session_id": session})
		return
	}

	resp := map[string]string{
		"reply":      "echo: " + body.Message,
		"session_id": session,
	}
	if language != "" {
		resp["language"] = language
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
