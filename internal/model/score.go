package model

import (
	"fmt"
	"math"
)

// Score ranks solutions or candidate moves. Implementations form a closed
// set, one per neighborhood family; comparing scores of different concrete
// types is a programming error and panics. The shared contract: an invalid
// score is beaten by every valid score, and among valid scores the ordering
// is total.
type Score interface {
	// Valid reports whether the scored state satisfies its validity rules.
	Valid() bool
	// Better reports whether this score is strictly preferred over other.
	Better(other Score) bool
	// Equal reports whether the two scores rank identically.
	Equal(other Score) bool
	// Components returns the score as ordered minimization components, most
	// significant first. Simulated annealing derives its acceptance delta
	// from the dominant component.
	Components() []float64
}

// PackScore is the canonical solution score: box count (minimize), box
// entropy as a tie-breaker discouraging uneven packing (minimize), and
// incident edges rewarding tight packing (maximize).
type PackScore struct {
	valid         bool
	BoxCount      int
	BoxEntropy    float64
	IncidentEdges int
}

// NewPackScore builds a valid score from its three criteria.
func NewPackScore(boxCount int, boxEntropy float64, incidentEdges int) PackScore {
	return PackScore{valid: true, BoxCount: boxCount, BoxEntropy: boxEntropy, IncidentEdges: incidentEdges}
}

// InvalidPackScore is the sentinel for an invalid solution.
func InvalidPackScore() PackScore {
	return PackScore{}
}

func (s PackScore) Valid() bool { return s.valid }

func (s PackScore) Better(other Score) bool {
	o := mustPackScore(other)
	if s.valid != o.valid {
		return s.valid
	}
	if !s.valid {
		return false
	}
	if s.BoxCount != o.BoxCount {
		return s.BoxCount < o.BoxCount
	}
	if s.BoxEntropy != o.BoxEntropy {
		return s.BoxEntropy < o.BoxEntropy
	}
	return s.IncidentEdges > o.IncidentEdges
}

func (s PackScore) Equal(other Score) bool {
	o := mustPackScore(other)
	if s.valid != o.valid {
		return false
	}
	if !s.valid {
		return true
	}
	return s.BoxCount == o.BoxCount && s.BoxEntropy == o.BoxEntropy && s.IncidentEdges == o.IncidentEdges
}

func (s PackScore) Components() []float64 {
	if !s.valid {
		return []float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	}
	return []float64{float64(s.BoxCount), s.BoxEntropy, -float64(s.IncidentEdges)}
}

func (s PackScore) String() string {
	if !s.valid {
		return "PackScore(invalid)"
	}
	return fmt.Sprintf("PackScore(boxes=%d, entropy=%.3f, edges=%d)", s.BoxCount, s.BoxEntropy, s.IncidentEdges)
}

func mustPackScore(s Score) PackScore {
	o, ok := s.(PackScore)
	if !ok {
		panic(fmt.Sprintf("model: cannot compare PackScore with %T", s))
	}
	return o
}

// OverlapScore ranks states explored by the overlap-relaxation neighborhood.
// The number of illegally overlapping rectangles is the dominant axis; a
// state is valid once it reaches zero.
type OverlapScore struct {
	BoxCount        int
	IllegalOverlaps int
	IncidentEdges   int
}

func (s OverlapScore) Valid() bool { return s.IllegalOverlaps == 0 }

func (s OverlapScore) Better(other Score) bool {
	o := mustOverlapScore(other)
	if s.IllegalOverlaps != o.IllegalOverlaps {
		return s.IllegalOverlaps < o.IllegalOverlaps
	}
	if s.BoxCount != o.BoxCount {
		return s.BoxCount < o.BoxCount
	}
	return s.IncidentEdges > o.IncidentEdges
}

func (s OverlapScore) Equal(other Score) bool {
	o := mustOverlapScore(other)
	return s == o
}

func (s OverlapScore) Components() []float64 {
	return []float64{float64(s.IllegalOverlaps), float64(s.BoxCount), -float64(s.IncidentEdges)}
}

func (s OverlapScore) String() string {
	return fmt.Sprintf("OverlapScore(illegal=%d, boxes=%d, edges=%d)", s.IllegalOverlaps, s.BoxCount, s.IncidentEdges)
}

func mustOverlapScore(s Score) OverlapScore {
	o, ok := s.(OverlapScore)
	if !ok {
		panic(fmt.Sprintf("model: cannot compare OverlapScore with %T", s))
	}
	return o
}

// PermScore is the cheap local heuristic of the permutation neighborhood.
// Permutation moves are ranked by fit quality instead of the global solution
// score because scoring them globally would require a full reconstruction
// per candidate. Fill moves beat swap moves; among fills a lower target box
// id wins, then a larger size gain; among swaps a larger size difference
// wins.
type PermScore struct {
	SizeDifference int
	IsFill         bool
	FillBoxID      int
}

// NewSwapPermScore scores a compaction swap of two rectangles by their area
// difference, the later and larger one minus the earlier one.
func NewSwapPermScore(earlier, later *Rectangle) PermScore {
	a, b := earlier, later
	if a.BoxID > b.BoxID {
		a, b = b, a
	}
	return PermScore{SizeDifference: b.Area() - a.Area()}
}

// NewFillPermScore scores a fill of targetBoxID with the given rectangle.
func NewFillPermScore(targetBoxID int, moved *Rectangle, sideLength int) PermScore {
	return PermScore{
		SizeDifference: sideLength*sideLength + moved.Area(),
		IsFill:         true,
		FillBoxID:      targetBoxID,
	}
}

// Valid always holds: a permutation move never leaves an invalid layout,
// the decoder re-packs everything from scratch.
func (s PermScore) Valid() bool { return true }

func (s PermScore) Better(other Score) bool {
	o := mustPermScore(other)
	if s.IsFill != o.IsFill {
		return s.IsFill
	}
	if s.IsFill {
		if s.FillBoxID != o.FillBoxID {
			return s.FillBoxID < o.FillBoxID
		}
	}
	return s.SizeDifference > o.SizeDifference
}

func (s PermScore) Equal(other Score) bool {
	o := mustPermScore(other)
	return s == o
}

func (s PermScore) Components() []float64 {
	return []float64{-float64(s.SizeDifference)}
}

func (s PermScore) String() string {
	if s.IsFill {
		return fmt.Sprintf("PermScore(fill box=%d, gain=%d)", s.FillBoxID, s.SizeDifference)
	}
	return fmt.Sprintf("PermScore(swap gain=%d)", s.SizeDifference)
}

func mustPermScore(s Score) PermScore {
	o, ok := s.(PermScore)
	if !ok {
		panic(fmt.Sprintf("model: cannot compare PermScore with %T", s))
	}
	return o
}
