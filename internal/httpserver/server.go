// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/artifact".
//   - Solver endpoints: POST /start_problem, POST /guess, /problems/{id}/*.
//   - Optional bearer-token auth on solver endpoints when a secret is configured.
//
// Notes:
//   - Errors are JSON bodies {"error": "..."} with a status chosen from the
//     sentinel error (see statusFor).
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Options configures cross-cutting behaviour of the server.
type Options struct {
	ClientOrigin string        // CORS origin; defaults to http://localhost:5173
	JWTSecret    string        // non-empty enables bearer auth on solver routes
	Timeout      time.Duration // per-request bound; defaults to 30s
}

// Server bundles the router and the session service.
type Server struct {
	r   *chi.Mux
	svc *session.Service
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *session.Service, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	s := &Server{r: chi.NewRouter(), svc: svc}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time; LLM calls live here
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /start_problem","POST /guess","/problems/{id}/turns"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/artifact", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": s.svc.Table().Len()})
	})

	// Solver endpoints; gated only when a secret is configured.
	s.r.Group(func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(requireAuth(opts.JWTSecret))
		}
		r.Post("/start_problem", s.handleStart)
		r.Post("/guess", s.handleGuess)
		s.mountProblems(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// shutdownGrace bounds how long in-flight requests may finish after ctx ends.
const shutdownGrace = 10 * time.Second

// Run serves HTTP on addr until ctx is done, then shuts down gracefully.
// A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler exposes the router (useful for tests and custom listeners).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ SOLVER -------------------------------------

// startReq is the payload for POST /start_problem.
type startReq struct {
	ProblemID      string   `json:"problem_id"`
	CandidateWords []string `json:"candidate_words"`
}

// handleStart creates (or replaces) the session for a problem.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.svc.Start(r.Context(), req.ProblemID, req.CandidateWords); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// guessReq/Res payloads for POST /guess.
type guessReq struct {
	ProblemID      string `json:"problem_id"`
	VerbalFeedback string `json:"verbal_feedback"` // empty/null on the first turn
	Turn           int    `json:"turn"`
}
type guessRes struct {
	Guess string `json:"guess"`
}

// handleGuess feeds the previous turn's feedback (if any) and returns the next guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess, err := s.svc.SubmitFeedback(r.Context(), req.ProblemID, req.VerbalFeedback, req.Turn)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Guess: guess})
}

// ------------------------------- errors ------------------------------------

// statusFor maps service errors to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, session.ErrNoProblemID):
		return http.StatusBadRequest, "problem_id_required"
	case errors.Is(err, solver.ErrUnknownWord):
		return http.StatusBadRequest, "unknown_word"
	case errors.Is(err, solver.ErrEmptyPool):
		return http.StatusBadRequest, "empty_pool"
	case errors.Is(err, session.ErrMissingFeedback):
		return http.StatusConflict, "feedback_required"
	case errors.Is(err, solver.ErrNoGuess):
		return http.StatusConflict, "no_guess_yet"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	if c, ok := ClientID(r.Context()); ok {
		ev = ev.Str("client", c)
	}
	ev.Err(err).Str("path", r.URL.Path).Str("requestId", chimw.GetReqID(r.Context())).Msg("request failed")
	body := map[string]string{"error": code}
	if status < http.StatusInternalServerError {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
