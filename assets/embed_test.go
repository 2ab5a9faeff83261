package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
)

func TestDefaultTable(t *testing.T) {
	tab, err := DefaultTable()
	require.NoError(t, err)
	require.Equal(t, 481, tab.Len())

	for _, w := range []string{"crane", "flame", "slate"} {
		i, ok := tab.Index(w)
		require.True(t, ok, w)
		assert.Equal(t, feedback.AllCorrect, tab.At(i, i))
	}

	crane, _ := tab.Index("crane")
	flame, _ := tab.Index("flame")
	assert.Equal(t, feedback.Encode(feedback.Score("flame", "crane")), tab.At(flame, crane))
}
