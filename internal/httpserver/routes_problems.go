// internal/httpserver/routes_problems.go
//
// Per-problem inspection routes, mounted under /problems:
//   - GET    /problems/{id}/turns      → recorded turns (history store)
//   - GET    /problems/{id}/candidates → words still consistent with feedback
//   - DELETE /problems/{id}            → drop the session
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountProblems registers all /problems routes.
func (s *Server) mountProblems(r chi.Router) {
	r.Route("/problems/{id}", func(r chi.Router) {
		r.Get("/turns", s.handleTurns)
		r.Get("/candidates", s.handleCandidates)
		r.Delete("/", s.handleEnd)
	})
}

func (s *Server) handleTurns(w http.ResponseWriter, r *http.Request) {
	turns, err := s.svc.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turns)
}

// candidatesRes is returned by GET /problems/{id}/candidates.
type candidatesRes struct {
	Count int      `json:"count"`
	Words []string `json:"words"`
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	left, err := s.svc.Remaining(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidatesRes{Count: len(left), Words: left})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
