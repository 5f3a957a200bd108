package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_RightAlignsNumbers(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"SUMMARY", ""},
		[][]string{{"Work days", "5"}, {"Follow-up sessions", "12"}},
		AlignLeft, AlignRight,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Work days            5", lines[2])
	assert.Equal(t, "Follow-up sessions  12", lines[3])
}

func TestRenderTable_DefaultsToLeftAlign(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"long cell", "x"}, {"s", "yy"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "A          B", lines[0])
	assert.Equal(t, "long cell  x", lines[2])
	assert.Equal(t, "s          yy", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
