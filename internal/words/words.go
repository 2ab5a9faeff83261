// internal/words/words.go
//
// Word list helpers shared by the relation artifact and the solver.
//
// Responsibilities:
//   - Read one-word-per-line files and embedded lists.
//   - Normalize words (trim, lowercase) and validate the 5-letter a–z shape.
//   - Produce the sorted, de-duplicated order the relation table is indexed by.
//
// Constraints:
//   - Words must be 5 alphabetic letters (a–z).
//   - Lists are normalized to lowercase.
package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Length is the fixed word length.
const Length = 5

// ReadFile loads one word per line from path. See Read.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read lowercases and trims each line and keeps only valid 5-letter words.
// Blank lines and lines starting with '#' are skipped.
func Read(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w := Normalize(line); Valid(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// Normalize trims whitespace and lowercases w.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Valid reports whether w is exactly Length lowercase ASCII letters.
func Valid(w string) bool {
	return len(w) == Length && isAlpha(w)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// SortedSet normalizes list, rejects invalid words, and returns the words
// sorted ascending with duplicates removed.
func SortedSet(list []string) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, w := range list {
		n := Normalize(w)
		if !Valid(n) {
			return nil, fmt.Errorf("words: invalid word %q", w)
		}
		out = append(out, n)
	}
	sort.Strings(out)
	return dedupeSorted(out), nil
}

func dedupeSorted(s []string) []string {
	if len(s) < 2 {
		return s
	}
	j := 1
	for i := 1; i < len(s); i++ {
		if s[i] != s[j-1] {
			s[j] = s[i]
			j++
		}
	}
	return s[:j]
}

// IsStrictlySorted reports whether s is ascending with no repeats.
func IsStrictlySorted(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return false
		}
	}
	return true
}

// Index finds w in the strictly sorted list by binary search.
func Index(sorted []string, w string) (int, bool) {
	i := sort.SearchStrings(sorted, w)
	return i, i < len(sorted) && sorted[i] == w
}
