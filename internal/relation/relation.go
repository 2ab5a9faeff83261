// internal/relation/relation.go
//
// The precomputed feedback relation over the master vocabulary.
// Table.At(g, s) is the code produced when word g is guessed against secret s.
//
// Notes:
//   - Rows and columns follow the vocabulary's sorted order; pool words are
//     located by binary search, so the order is part of the artifact contract.
//   - A Table is immutable once built and safe for concurrent readers.
package relation

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrShape reports an artifact whose vocabulary and table disagree or are malformed.
var ErrShape = errors.New("relation: bad artifact shape")

// Table is a dense n×n code table stored row-major.
type Table struct {
	words []string
	codes []feedback.Code
}

// New validates and wraps a vocabulary and its row-major code table.
// The slices are retained; callers must not modify them afterwards.
func New(vocab []string, codes []feedback.Code) (*Table, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrShape)
	}
	for _, w := range vocab {
		if !words.Valid(w) {
			return nil, fmt.Errorf("%w: invalid word %q", ErrShape, w)
		}
	}
	if !words.IsStrictlySorted(vocab) {
		return nil, fmt.Errorf("%w: vocabulary is not sorted and distinct", ErrShape)
	}
	n := len(vocab)
	if len(codes) != n*n {
		return nil, fmt.Errorf("%w: %d words need %d codes, got %d", ErrShape, n, n*n, len(codes))
	}
	for i, c := range codes {
		if int(c) >= feedback.NumCodes {
			return nil, fmt.Errorf("%w: code %d at (%d,%d) out of range", ErrShape, c, i/n, i%n)
		}
	}
	return &Table{words: vocab, codes: codes}, nil
}

// Len is the vocabulary size.
func (t *Table) Len() int { return len(t.words) }

// Words returns the sorted vocabulary. Do not modify.
func (t *Table) Words() []string { return t.words }

// Word returns the vocabulary word at i.
func (t *Table) Word(i int) string { return t.words[i] }

// Index locates w in the vocabulary.
func (t *Table) Index(w string) (int, bool) { return words.Index(t.words, w) }

// At returns the code for guess row g against secret column s.
func (t *Table) At(g, s int) feedback.Code { return t.codes[g*len(t.words)+s] }

// Row returns the codes of guess g against every secret. Do not modify.
func (t *Table) Row(g int) []feedback.Code {
	n := len(t.words)
	return t.codes[g*n : (g+1)*n]
}
