// Package assets embeds the default feedback relation artifact
// (wordlist.txt + table.bin), used when no ARTIFACT_DIR is configured.
package assets

import (
	"embed"

	"github.com/robalobadob/wordle/apps/solver/internal/relation"
)

//go:embed wordlist.txt table.bin
var FS embed.FS

// DefaultTable loads the embedded artifact.
func DefaultTable() (*relation.Table, error) {
	return relation.LoadFS(FS)
}
