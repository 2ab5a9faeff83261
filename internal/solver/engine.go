// internal/solver/engine.go
//
// Candidate engine for a single game.
// Responsibilities:
//   - Restrict the shared relation table to the game's word pool.
//   - Pick the guess whose feedback distribution over the remaining
//     secrets has maximal Shannon entropy.
//   - Prune the remaining secrets with observed feedback, resetting to the
//     full pool when feedback contradicts every remaining secret.
//
// Notes:
//   - Guess rows are never pruned; only the secret (column) set shrinks.
//   - An Engine is not safe for concurrent use. Callers serialize the
//     ChooseGuess/Prune cycle per game; distinct engines share nothing mutable.
package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/relation"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	// ErrUnknownWord: a pool word is missing from the master vocabulary.
	ErrUnknownWord = errors.New("solver: word not in vocabulary")
	// ErrEmptyPool: Start was called without words.
	ErrEmptyPool = errors.New("solver: empty word pool")
	// ErrNoGuess: Prune was called before any ChooseGuess.
	ErrNoGuess = errors.New("solver: prune before guess")
)

// tieTolerance absorbs float summation-order noise so equal entropies tie.
const tieTolerance = 1e-12

const noGuess = -1

// Engine holds the restricted matrix and live secret set of one game.
type Engine struct {
	pool      []string        // sorted pool; row/column i is pool[i]
	codes     []feedback.Code // n×n restricted relation, row-major
	remaining []int           // live secret columns, ascending
	all       []int           // default secret set, used on reset
	lastGuess int             // row of the last chosen guess or noGuess
	resets    int
}

// Start builds an engine for pool over the master table.
// The pool is normalized, sorted and de-duplicated; every word must exist in
// the table's vocabulary.
func Start(table *relation.Table, pool []string) (*Engine, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	sorted, err := words.SortedSet(pool)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownWord, err)
	}

	idx := make([]int, len(sorted))
	for i, w := range sorted {
		j, ok := table.Index(w)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
		idx[i] = j
	}

	n := len(sorted)
	codes := make([]feedback.Code, n*n)
	for r, g := range idx {
		row := table.Row(g)
		out := codes[r*n : (r+1)*n]
		for c, s := range idx {
			out[c] = row[s]
		}
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	return &Engine{
		pool:      sorted,
		codes:     codes,
		remaining: append([]int(nil), all...),
		all:       all,
		lastGuess: noGuess,
	}, nil
}

// ChooseGuess returns the pool word maximizing the entropy of the feedback
// over the remaining secrets and records it as the last guess.
// Ties go to the lowest row.
func (e *Engine) ChooseGuess() string {
	if len(e.remaining) == 1 {
		e.lastGuess = e.remaining[0]
		return e.pool[e.lastGuess]
	}

	n := len(e.pool)
	total := float64(len(e.remaining))
	var counts [feedback.NumCodes]int

	best, bestH := 0, math.Inf(-1)
	for g := 0; g < n; g++ {
		row := e.codes[g*n : (g+1)*n]
		counts = [feedback.NumCodes]int{}
		for _, s := range e.remaining {
			counts[row[s]]++
		}
		if h := entropy(&counts, total); h > bestH+tieTolerance {
			best, bestH = g, h
		}
	}
	e.lastGuess = best
	return e.pool[best]
}

// entropy is the Shannon entropy in bits of counts/total.
// Empty bins are skipped explicitly: 0·log(0) counts as 0.
func entropy(counts *[feedback.NumCodes]int, total float64) float64 {
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// Prune keeps the remaining secrets consistent with code for the last guess.
// If none survive, the secret set resets to the whole pool and Resets grows;
// this is not an error.
func (e *Engine) Prune(code feedback.Code) error {
	if e.lastGuess == noGuess {
		return ErrNoGuess
	}
	n := len(e.pool)
	row := e.codes[e.lastGuess*n : (e.lastGuess+1)*n]

	kept := e.remaining[:0:0]
	for _, s := range e.remaining {
		if row[s] == code {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		e.Reset()
		return nil
	}
	e.remaining = kept
	return nil
}

// Reset restores the full secret set. It is what Prune does on contradictory
// feedback; callers use it directly when feedback could not be read at all.
func (e *Engine) Reset() {
	e.remaining = append(e.remaining[:0:0], e.all...)
	e.resets++
}

// Resets counts how many times the secret set was reset.
func (e *Engine) Resets() int { return e.resets }

// Pool returns the sorted pool. Do not modify.
func (e *Engine) Pool() []string { return e.pool }

// RemainingCount is the number of live secrets.
func (e *Engine) RemainingCount() int { return len(e.remaining) }

// RemainingIndices returns a copy of the live secret indices into Pool.
func (e *Engine) RemainingIndices() []int {
	return append([]int(nil), e.remaining...)
}

// Remaining returns the words still consistent with the feedback.
func (e *Engine) Remaining() []string {
	out := make([]string, len(e.remaining))
	for i, s := range e.remaining {
		out[i] = e.pool[s]
	}
	return out
}

// LastGuess returns the most recent guess, if any.
func (e *Engine) LastGuess() (string, bool) {
	if e.lastGuess == noGuess {
		return "", false
	}
	return e.pool[e.lastGuess], true
}

// Code returns the relation entry for guess row g against secret column s.
func (e *Engine) Code(g, s int) feedback.Code {
	return e.codes[g*len(e.pool)+s]
}
