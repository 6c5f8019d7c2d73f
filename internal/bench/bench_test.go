package bench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optalgo/boxpack/internal/model"
)

func tinyCases() []Case {
	size := model.SizeRange{Min: 1, Max: 3}
	return []Case{
		{Name: "case-10", SideLength: 5, RectCount: 4, Widths: size, Heights: size, Seed: 1},
		{Name: "case-2", SideLength: 5, RectCount: 4, Widths: size, Heights: size, Seed: 2},
	}
}

func TestRunCoversEveryCombination(t *testing.T) {
	results := Run(tinyCases(), 2)

	// 3 neighborhoods x 2 metaheuristics + 2 greedy schemas per case.
	require.Len(t, results, 2*8)

	seen := make(map[string]bool)
	for _, r := range results {
		assert.NotEmpty(t, r.RunID)
		assert.LessOrEqual(t, r.Ticks, 2)
		assert.Greater(t, r.Boxes, 0, "every run keeps at least one box")
		seen[r.Case+"/"+r.Algorithm+"/"+r.Strategy] = true
	}
	assert.Len(t, seen, 2*8, "no combination runs twice")
}

func TestRunSortsByNaturalCaseName(t *testing.T) {
	results := Run(tinyCases(), 1)

	// Natural order puts case-2 before case-10, unlike plain string order.
	require.NotEmpty(t, results)
	assert.Equal(t, "case-2", results[0].Case)
	assert.Equal(t, "case-10", results[len(results)-1].Case)
}

func TestWriteCSV(t *testing.T) {
	results := Run(tinyCases()[:1], 1)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(results)+1)
	assert.Equal(t, "run_id,case,algorithm,strategy,ticks,boxes,valid,elapsed_ms", lines[0])
	for _, line := range lines[1:] {
		assert.Contains(t, line, "case-10")
	}
}
