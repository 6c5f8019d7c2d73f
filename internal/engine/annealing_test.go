package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optalgo/boxpack/internal/model"
)

func TestAnnealingCoolsOnSchedule(t *testing.T) {
	s := twoSingleBoxes(t)
	search := NewSimulatedAnnealing(s, KindGeometric, 1)

	require.Equal(t, annealStartTemp, search.Temperature())

	for i := 0; i < annealTempSteps; i++ {
		require.True(t, search.Tick())
	}
	assert.InDelta(t, annealStartTemp*annealCooling, search.Temperature(), 1e-9)

	for i := 0; i < annealTempSteps; i++ {
		require.True(t, search.Tick())
	}
	assert.InDelta(t, annealStartTemp*annealCooling*annealCooling, search.Temperature(), 1e-9)
}

func TestAnnealingKeepsTheSolutionValid(t *testing.T) {
	p := model.NewProblem(8, 6, model.SizeRange{Min: 1, Max: 4}, model.SizeRange{Min: 1, Max: 4}, 5)
	s := p.Solution()

	search := NewSimulatedAnnealing(s, KindGeometric, 5)
	for i := 0; i < 25; i++ {
		require.True(t, search.Tick())
	}

	assert.True(t, s.IsValid(), "the strict neighborhood only ever applies valid moves")
	assert.Equal(t, 6, s.RectCount())
}

func TestAnnealingSetStrategyRestartsTheSchedule(t *testing.T) {
	s := twoSingleBoxes(t)
	search := NewSimulatedAnnealing(s, KindGeometric, 1)

	for i := 0; i < annealTempSteps; i++ {
		require.True(t, search.Tick())
	}
	require.Less(t, search.Temperature(), annealStartTemp)

	search.SetStrategy(KindGeometric)
	assert.Equal(t, annealStartTemp, search.Temperature())
	assert.True(t, search.Tick())
}

func TestAnnealingWithOverlapRelaxationStartsFullyRelaxed(t *testing.T) {
	s := twoSingleBoxes(t)
	search := NewSimulatedAnnealing(s, KindGeometricOverlap, 3)

	require.True(t, search.Tick())
	assert.Equal(t, 1.0, s.CurrentlyPermissibleOverlap)
}
