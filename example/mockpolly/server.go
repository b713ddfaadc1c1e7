// Package mockpolly runs an in-memory Polly API server for demos and
// local testing of the SDK and CLI.
//
// The server implements the endpoints the client talks to: /register,
// /login, /polls, /polls/{id}/vote, and /polls/{id}/results. State lives
// in memory and starts with a handful of seeded polls, so a fresh server
// is immediately useful.
package mockpolly

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// timestampLayout is the offset-less ISO-8601 form the real API emits.
const timestampLayout = "2006-01-02T15:04:05.999999"

type user struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`

	password string
}

type pollOption struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	PollID int64  `json:"poll_id"`
}

type poll struct {
	ID        int64        `json:"id"`
	Question  string       `json:"question"`
	CreatedAt string       `json:"created_at"`
	OwnerID   int64        `json:"owner_id"`
	Options   []pollOption `json:"options"`
}

type vote struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	OptionID  int64  `json:"option_id"`
	CreatedAt string `json:"created_at"`
}

type optionResult struct {
	OptionID  int64  `json:"option_id"`
	Text      string `json:"text"`
	VoteCount int64  `json:"vote_count"`
}

type pollResults struct {
	PollID   int64          `json:"poll_id"`
	Question string         `json:"question"`
	Results  []optionResult `json:"results"`
}

// Server is an in-memory Polly API server.
//
// All state is guarded by a single mutex; the dataset is small enough that
// contention is irrelevant. The server is not started until [Server.Start]
// is called.
type Server struct {
	addr   string
	logger *slog.Logger

	httpServer *http.Server
	baseURL    string

	mu         sync.Mutex
	users      map[string]*user // keyed by username
	tokens     map[string]int64 // token -> user ID
	polls      []poll
	votes      []vote
	nextUserID int64
	nextVoteID int64
}

// NewServer creates a mock server that will listen on addr.
//
// Pass "localhost:0" to bind an ephemeral port and read the resulting
// address from [Server.URL] after Start.
func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:       addr,
		logger:     logger,
		users:      make(map[string]*user),
		tokens:     make(map[string]int64),
		nextUserID: 1,
		nextVoteID: 1,
	}
	s.seed()
	return s
}

// seed loads the initial dataset: one admin account and three open polls.
func (s *Server) seed() {
	admin := &user{ID: s.nextUserID, Username: "admin", password: "admin"}
	s.nextUserID++
	s.users[admin.Username] = admin

	created := time.Now().UTC().Format(timestampLayout)
	s.polls = []poll{
		{
			ID: 1, Question: "Favourite season?", CreatedAt: created, OwnerID: admin.ID,
			Options: []pollOption{
				{ID: 1, Text: "Spring", PollID: 1},
				{ID: 2, Text: "Summer", PollID: 1},
				{ID: 3, Text: "Autumn", PollID: 1},
				{ID: 4, Text: "Winter", PollID: 1},
			},
		},
		{
			ID: 2, Question: "Tabs or spaces?", CreatedAt: created, OwnerID: admin.ID,
			Options: []pollOption{
				{ID: 5, Text: "Tabs", PollID: 2},
				{ID: 6, Text: "Spaces", PollID: 2},
			},
		},
		{
			ID: 3, Question: "Best debugging tool?", CreatedAt: created, OwnerID: admin.ID,
			Options: []pollOption{
				{ID: 7, Text: "Print statements", PollID: 3},
				{ID: 8, Text: "A real debugger", PollID: 3},
				{ID: 9, Text: "Staring at the code", PollID: 3},
			},
		},
	}
}

// Start begins serving in a background goroutine.
//
// Start is non-blocking and returns once the listener is bound, so [Server.URL]
// is valid immediately afterwards. The server shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/polls", s.handlePolls)
	mux.HandleFunc("/polls/", s.handlePollPath)

	// create listener first to verify the address synchronously
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.addr, err)
	}
	s.baseURL = "http://" + ln.Addr().String()

	s.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("mock server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("mock server shutdown error", "error", err)
		}
	}()

	return nil
}

// URL returns the server's base URL. Only valid after [Server.Start].
func (s *Server) URL() string {
	return s.baseURL
}

// StartMockPollyServer starts a mock Polly API server on addr and returns
// its base URL. The server shuts down when ctx is cancelled.
func StartMockPollyServer(ctx context.Context, addr string) (string, error) {
	s := NewServer(addr, slog.Default())
	if err := s.Start(ctx); err != nil {
		return "", err
	}
	return s.URL(), nil
}

// writeJSON encodes v as the response body with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// writeError emits the API's standard {"detail": ...} error body.
func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if creds.Username == "" || creds.Password == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[creds.Username]; exists {
		s.writeError(w, http.StatusBadRequest, "Username already registered")
		return
	}

	u := &user{ID: s.nextUserID, Username: creds.Username, password: creds.Password}
	s.nextUserID++
	s.users[u.Username] = u

	s.logger.Info("user registered", "username", u.Username, "id", u.ID)
	s.writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists || u.password != password {
		s.writeError(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token := "tok-" + uuid.NewString()
	s.tokens[token] = u.ID

	s.writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *Server) handlePolls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 10)

	s.mu.Lock()
	defer s.mu.Unlock()

	if skip < 0 {
		skip = 0
	}
	if skip > len(s.polls) {
		skip = len(s.polls)
	}
	end := skip + limit
	if limit < 0 || end > len(s.polls) {
		end = len(s.polls)
	}

	s.writeJSON(w, http.StatusOK, s.polls[skip:end])
}

// handlePollPath routes /polls/{id}/vote and /polls/{id}/results.
func (s *Server) handlePollPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/polls/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		s.writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	pollID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	switch parts[1] {
	case "vote":
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		s.handleVote(w, r, pollID)
	case "results":
		if r.Method != http.MethodGet {
			s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		s.handleResults(w, pollID)
	default:
		s.writeError(w, http.StatusNotFound, "Not Found")
	}
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request, pollID int64) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var body struct {
		OptionID int64 `json:"option_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	p := s.findPoll(pollID)
	if p == nil {
		s.writeError(w, http.StatusNotFound, "Poll not found")
		return
	}

	var valid bool
	for _, opt := range p.Options {
		if opt.ID == body.OptionID {
			valid = true
			break
		}
	}
	if !valid {
		s.writeError(w, http.StatusNotFound, "Option not found")
		return
	}

	v := vote{
		ID:        s.nextVoteID,
		UserID:    userID,
		OptionID:  body.OptionID,
		CreatedAt: time.Now().UTC().Format(timestampLayout),
	}
	s.nextVoteID++
	s.votes = append(s.votes, v)

	s.logger.Info("vote recorded", "poll", pollID, "option", body.OptionID, "user", userID)
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleResults(w http.ResponseWriter, pollID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPoll(pollID)
	if p == nil {
		s.writeError(w, http.StatusNotFound, "Poll not found")
		return
	}

	counts := make(map[int64]int64)
	for _, v := range s.votes {
		counts[v.OptionID]++
	}

	results := pollResults{
		PollID:   p.ID,
		Question: p.Question,
		Results:  make([]optionResult, 0, len(p.Options)),
	}
	for _, opt := range p.Options {
		results.Results = append(results.Results, optionResult{
			OptionID:  opt.ID,
			Text:      opt.Text,
			VoteCount: counts[opt.ID],
		})
	}

	s.writeJSON(w, http.StatusOK, results)
}

// findPoll returns the poll with the given ID. Callers must hold s.mu.
func (s *Server) findPoll(id int64) *poll {
	for i := range s.polls {
		if s.polls[i].ID == id {
			return &s.polls[i]
		}
	}
	return nil
}

// queryInt reads an integer query parameter, falling back to def.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
