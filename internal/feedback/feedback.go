// internal/feedback/feedback.go
//
// Feedback codec for five-letter guesses.
// Responsibilities:
//   - Mark: per-letter outcome (absent / present / correct).
//   - Pattern <-> Code: base-3 encoding, position i weighted by 3^i.
//   - Letter form used by the feedback interpreter ("b"/"y"/"g").
//   - Score: the two-pass Wordle scoring used to build the relation artifact.
//
// Notes:
//   - The encoding must match the one used to build the relation table.
//   - Everything here is pure; no I/O.
package feedback

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Width is the number of letters in a word and marks in a pattern.
const Width = 5

// NumCodes is the number of distinct patterns (3^Width).
const NumCodes = 243

// AllCorrect is the code of a fully solved guess.
const AllCorrect Code = NumCodes - 1

// Mark is the outcome for a single letter. Its value is the base-3 digit.
type Mark uint8

const (
	Absent  Mark = iota // letter not in the secret
	Present             // letter in the secret, different position
	Correct             // letter in the right position
)

// Letters used by the interpreter output.
const (
	LetterCorrect = 'b'
	LetterPresent = 'y'
	LetterAbsent  = 'g'
)

// ErrMalformed is returned for feedback text that is not five b/y/g letters.
var ErrMalformed = errors.New("feedback: malformed")

// Pattern is the per-position outcome of one guess.
type Pattern [Width]Mark

// Code is a Pattern packed into 0..242.
type Code uint8

// Encode packs p into its integer code.
func Encode(p Pattern) Code {
	var c, w int
	w = 1
	for i := 0; i < Width; i++ {
		c += int(p[i]) * w
		w *= 3
	}
	return Code(c)
}

// Decode is the inverse of Encode. c must be below NumCodes.
func Decode(c Code) Pattern {
	var p Pattern
	n := int(c)
	for i := 0; i < Width; i++ {
		p[i] = Mark(n % 3)
		n /= 3
	}
	return p
}

// Pattern returns the decoded form of c.
func (c Code) Pattern() Pattern { return Decode(c) }

// String renders the code in letter form.
func (c Code) String() string { return Decode(c).String() }

// Solved reports whether every position is correct.
func (p Pattern) Solved() bool { return Encode(p) == AllCorrect }

// String renders p as five lower-case letters, e.g. "bgygg".
func (p Pattern) String() string {
	var b strings.Builder
	for _, m := range p {
		b.WriteRune(m.Letter())
	}
	return b.String()
}

// Letter returns the interpreter letter for m.
func (m Mark) Letter() rune {
	switch m {
	case Correct:
		return LetterCorrect
	case Present:
		return LetterPresent
	default:
		return LetterAbsent
	}
}

// ParseLetters reads interpreter output into a Pattern.
// Case is ignored and whitespace is dropped, so "B Y G G B" parses.
func ParseLetters(s string) (Pattern, error) {
	var p Pattern
	i := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if i == Width {
			return Pattern{}, fmt.Errorf("%w: %q has more than %d letters", ErrMalformed, s, Width)
		}
		switch unicode.ToLower(r) {
		case LetterCorrect:
			p[i] = Correct
		case LetterPresent:
			p[i] = Present
		case LetterAbsent:
			p[i] = Absent
		default:
			return Pattern{}, fmt.Errorf("%w: unexpected letter %q in %q", ErrMalformed, r, s)
		}
		i++
	}
	if i != Width {
		return Pattern{}, fmt.Errorf("%w: %q has %d letters", ErrMalformed, s, i)
	}
	return p, nil
}


// Score evaluates guess against secret with the standard two-pass algorithm.
//
// Pass 1 marks exact matches and counts the secret's unmatched letters.
// Pass 2 marks a guess letter Present while unmatched copies remain.
// Both words must be Width lowercase ASCII letters.
func Score(guess, secret string) Pattern {
	var p Pattern
	var counts [26]int

	for i := 0; i < Width; i++ {
		if guess[i] == secret[i] {
			p[i] = Correct
		} else {
			counts[secret[i]-'a']++
		}
	}
	for i := 0; i < Width; i++ {
		if p[i] == Correct {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			p[i] = Present
			counts[j]--
		}
	}
	return p
}
