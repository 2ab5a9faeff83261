// internal/session/service.go
//
// Session service: the boundary the HTTP layer talks to.
// Responsibilities:
//   - Start a problem: build a solver.Engine over the shared relation table.
//   - Submit feedback: interpret text → letters → prune → choose the next guess.
//   - Record every turn through an optional Recorder.
//
// Notes:
//   - Each Session has its own mutex; one problem's turns are serialized while
//     different problems run fully in parallel.
//   - Unreadable feedback resets the candidate set instead of failing the turn.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/interpret"
	"github.com/robalobadob/wordle/apps/solver/internal/relation"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

var (
	// ErrNotFound: the problem was never started.
	ErrNotFound = errors.New("session: problem not found")
	// ErrMissingFeedback: a turn after the first arrived without feedback.
	ErrMissingFeedback = errors.New("session: feedback required after the first guess")
	// ErrNoProblemID: Start or SubmitFeedback called with an empty id.
	ErrNoProblemID = errors.New("session: problem id required")
)

// Session is the state of one problem.
type Session struct {
	ProblemID string
	StartedAt time.Time

	mu     sync.Mutex // serializes turns of this problem
	engine *solver.Engine
	turns  int
}

// Recorder persists problem history. *history.Store implements it.
type Recorder interface {
	RecordProblem(ctx context.Context, problemID string, candidates int) error
	RecordTurn(ctx context.Context, t history.Turn) error
	Turns(ctx context.Context, problemID string) ([]history.Turn, error)
}

// Service runs problems against a shared relation table.
type Service struct {
	table  *relation.Table
	store  Store
	interp interpret.Interpreter
	rec    Recorder // nil: history is not kept
}

// NewService wires a service. rec may be nil.
func NewService(table *relation.Table, st Store, interp interpret.Interpreter, rec Recorder) *Service {
	return &Service{table: table, store: st, interp: interp, rec: rec}
}

// Table exposes the shared relation (read-only).
func (s *Service) Table() *relation.Table { return s.table }

// Start creates (or replaces) the session for problemID.
// Unknown words are a solver.ErrUnknownWord configuration error.
func (s *Service) Start(ctx context.Context, problemID string, candidates []string) error {
	if problemID == "" {
		return ErrNoProblemID
	}
	eng, err := solver.Start(s.table, candidates)
	if err != nil {
		return err
	}
	sess := &Session{ProblemID: problemID, StartedAt: time.Now(), engine: eng}
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	log.Info().
		Str("problem", problemID).
		Int("candidates", len(eng.Pool())).
		Str("words", strings.Join(eng.Pool(), ",")).
		Msg("problem started")

	if s.rec != nil {
		if err := s.rec.RecordProblem(ctx, problemID, len(eng.Pool())); err != nil {
			log.Warn().Err(err).Str("problem", problemID).Msg("record problem")
		}
	}
	return nil
}

// SubmitFeedback runs one turn. The first call of a problem only chooses a
// guess; later calls read text as feedback on the previous guess first.
func (s *Service) SubmitFeedback(ctx context.Context, problemID, text string, turn int) (string, error) {
	if problemID == "" {
		return "", ErrNoProblemID
	}
	sess, err := s.store.Get(ctx, problemID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	eng := sess.engine
	if turn <= 0 {
		turn = sess.turns + 1
	}
	rec := history.Turn{ProblemID: problemID, Turn: turn}
	resetsBefore := eng.Resets()

	if prev, ok := eng.LastGuess(); ok {
		if strings.TrimSpace(text) == "" {
			return "", ErrMissingFeedback
		}
		rec.Feedback = text
		letters, err := s.readFeedback(ctx, prev, text)
		switch {
		case err == nil:
			rec.Letters = letters.String()
			if err := eng.Prune(feedback.Encode(letters)); err != nil {
				return "", err
			}
		case ctx.Err() != nil:
			return "", ctx.Err()
		default:
			log.Warn().Err(err).Str("problem", problemID).Int("turn", turn).
				Msg("feedback not understood; resetting candidates")
			eng.Reset()
		}
	}

	rec.Remaining = eng.RemainingCount()
	guess := eng.ChooseGuess()
	rec.Guess = guess
	rec.Reset = eng.Resets() > resetsBefore
	sess.turns++

	if rec.Reset {
		log.Warn().Str("problem", problemID).Int("turn", turn).Str("letters", rec.Letters).
			Msg("feedback contradicts every candidate; candidate set reset")
	}
	log.Info().
		Str("problem", problemID).
		Int("turn", turn).
		Str("feedback", text).
		Str("letters", rec.Letters).
		Int("remaining", rec.Remaining).
		Str("guess", guess).
		Msg("turn")

	if s.rec != nil {
		if err := s.rec.RecordTurn(ctx, rec); err != nil {
			log.Warn().Err(err).Str("problem", problemID).Msg("record turn")
		}
	}
	return guess, nil
}

// readFeedback interprets text for guess and parses the letters.
func (s *Service) readFeedback(ctx context.Context, guess, text string) (feedback.Pattern, error) {
	letters, err := s.interp.Interpret(ctx, guess, text)
	if err != nil {
		return feedback.Pattern{}, err
	}
	return feedback.ParseLetters(letters)
}

// History returns the recorded turns of a started problem.
// Without a recorder it returns an empty list.
func (s *Service) History(ctx context.Context, problemID string) ([]history.Turn, error) {
	if _, err := s.store.Get(ctx, problemID); err != nil {
		return nil, err
	}
	if s.rec == nil {
		return []history.Turn{}, nil
	}
	return s.rec.Turns(ctx, problemID)
}

// Remaining lists the candidate words still live for problemID.
func (s *Service) Remaining(ctx context.Context, problemID string) ([]string, error) {
	sess, err := s.store.Get(ctx, problemID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Remaining(), nil
}

// End drops the session of problemID.
func (s *Service) End(ctx context.Context, problemID string) error {
	return s.store.Delete(ctx, problemID)
}
