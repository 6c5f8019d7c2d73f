package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Move is a reversible transition between neighboring solutions. Apply
// mutates the solution in place and returns false, fully rolling back its
// own partial mutation, if the result would be infeasible. Undo is the exact
// inverse and is only valid after a successful Apply; calling it otherwise
// is a caller bug and panics.
type Move interface {
	Apply(s *Solution) bool
	Undo(s *Solution)
}

// Solution is one packing of all rectangles into boxes. It is mutated in
// place by every move application; neighbor evaluation relies on the
// apply/score/undo triad instead of copying, and only parallel neighborhood
// workers pay the Clone cost.
type Solution struct {
	sideLength int
	boxes      map[int]*Box

	// CurrentlyPermissibleOverlap is the fraction of combined area two
	// rectangles may share. Only the overlap-relaxation neighborhood moves
	// it away from zero.
	CurrentlyPermissibleOverlap float64

	lastMoved *recencyQueue
}

// NewSolution creates a solution over the given boxes. The recency queue
// used for anti-cycling is sized to half the total rectangle count.
func NewSolution(sideLength int, boxes []*Box) *Solution {
	s := &Solution{
		sideLength: sideLength,
		boxes:      make(map[int]*Box, len(boxes)),
	}
	rectCount := 0
	for _, b := range boxes {
		s.boxes[b.ID] = b
		rectCount += b.Len()
	}
	s.lastMoved = newRecencyQueue(rectCount / 2)
	return s
}

// SideLength returns the fixed box side length of this problem instance.
func (s *Solution) SideLength() int { return s.sideLength }

// Box returns the box with the given id, or nil.
func (s *Solution) Box(id int) *Box { return s.boxes[id] }

// AddBox inserts a box into the solution. Reusing a live id is a caller bug.
func (s *Solution) AddBox(b *Box) {
	if _, ok := s.boxes[b.ID]; ok {
		panic(fmt.Sprintf("model: solution already contains box %d", b.ID))
	}
	s.boxes[b.ID] = b
}

// RemoveBox removes and returns the box with the given id. Removing an
// absent id is a caller bug and panics.
func (s *Solution) RemoveBox(id int) *Box {
	b, ok := s.boxes[id]
	if !ok {
		panic(fmt.Sprintf("model: solution has no box %d to remove", id))
	}
	delete(s.boxes, id)
	return b
}

// ReplaceBoxes swaps the entire box map for a freshly decoded layout.
func (s *Solution) ReplaceBoxes(boxes []*Box) {
	s.boxes = make(map[int]*Box, len(boxes))
	for _, b := range boxes {
		s.boxes[b.ID] = b
	}
}

// BoxCount returns the number of boxes.
func (s *Solution) BoxCount() int { return len(s.boxes) }

// BoxIDs returns all box ids in ascending order.
func (s *Solution) BoxIDs() []int {
	ids := make([]int, 0, len(s.boxes))
	for id := range s.boxes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// MaxBoxID returns the highest box id, or -1 when the solution is empty.
func (s *Solution) MaxBoxID() int {
	max := -1
	for id := range s.boxes {
		if id > max {
			max = id
		}
	}
	return max
}

// OrderedBoxes returns the boxes in ascending id order. This is the display
// contract iteration order.
func (s *Solution) OrderedBoxes() []*Box {
	boxes := make([]*Box, 0, len(s.boxes))
	for _, id := range s.BoxIDs() {
		boxes = append(boxes, s.boxes[id])
	}
	return boxes
}

// RectCount returns the total number of rectangles across all boxes.
func (s *Solution) RectCount() int {
	n := 0
	for _, b := range s.boxes {
		n += b.Len()
	}
	return n
}

// FlattenedRects returns all rectangles, boxes walked in id order and
// rectangles within a box in insertion order. This is the linear encoding
// the permutation neighborhood operates on.
func (s *Solution) FlattenedRects() []*Rectangle {
	rects := make([]*Rectangle, 0, s.RectCount())
	for _, b := range s.OrderedBoxes() {
		rects = append(rects, b.Rects()...)
	}
	return rects
}

// MarkMoved records a rectangle in the bounded recency queue so the
// neighborhoods avoid immediately re-selecting it.
func (s *Solution) MarkMoved(rectID int) {
	s.lastMoved.push(rectID)
}

// UnmarkMoved drops the most recent recency entry. Move undo uses this to
// keep the queue symmetric with apply.
func (s *Solution) UnmarkMoved() {
	s.lastMoved.popLast()
}

// RecentlyMoved reports whether the rectangle id is in the recency queue.
func (s *Solution) RecentlyMoved(rectID int) bool {
	return s.lastMoved.contains(rectID)
}

// IsValid reports whether no rectangle overflows its box and no pair within
// a box overlaps beyond the currently permissible fraction. The pairwise
// check is quadratic per box, which is fine since boxes are small.
func (s *Solution) IsValid() bool {
	for _, b := range s.boxes {
		rects := b.Rects()
		for _, r := range rects {
			if r.X()+r.Width() > s.sideLength || r.Y()+r.Height() > s.sideLength {
				return false
			}
		}
		for i := 0; i < len(rects); i++ {
			for j := i + 1; j < len(rects); j++ {
				if rects[i].Overlaps(rects[j], s.CurrentlyPermissibleOverlap) {
					return false
				}
			}
		}
	}
	return true
}

// Score returns the canonical score of the solution, or the invalid
// sentinel.
func (s *Solution) Score() PackScore {
	if !s.IsValid() {
		return InvalidPackScore()
	}
	return NewPackScore(len(s.boxes), s.BoxEntropy(), s.IncidentEdges())
}

// OverlapAwareScore scores the solution for the overlap-relaxation search,
// where temporarily invalid states must still be comparable.
func (s *Solution) OverlapAwareScore() OverlapScore {
	return OverlapScore{
		BoxCount:        len(s.boxes),
		IllegalOverlaps: s.IllegalOverlapCount(),
		IncidentEdges:   s.IncidentEdges(),
	}
}

// BoxEntropy computes the Shannon entropy of the rectangle-count
// distribution across boxes. Lower means the rectangles concentrate in few
// boxes.
func (s *Solution) BoxEntropy() float64 {
	total := s.RectCount()
	if total == 0 {
		return 0
	}
	entropy := 0.0
	for _, b := range s.boxes {
		if b.Len() == 0 {
			continue
		}
		p := float64(b.Len()) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// IncidentEdges sums the incident edge counts of all boxes.
func (s *Solution) IncidentEdges() int {
	edges := 0
	for _, b := range s.boxes {
		edges += b.IncidentEdgeCount()
	}
	return edges
}

// IllegalOverlapCount returns the number of rectangles overlapping some
// other rectangle in their box beyond the permissible fraction.
func (s *Solution) IllegalOverlapCount() int {
	count := 0
	for _, b := range s.boxes {
		rects := b.Rects()
		for _, r := range rects {
			for _, other := range rects {
				if r.Overlaps(other, s.CurrentlyPermissibleOverlap) {
					count++
					break
				}
			}
		}
	}
	return count
}

// PotentialScore applies the move, scores the resulting solution and undoes
// the move again. The undo runs via defer, so the solution is restored even
// if the scorer panics. This triad is the hottest path of the whole search:
// it runs once per candidate neighbor.
func (s *Solution) PotentialScore(m Move, scorer func(*Solution) Score) Score {
	if !m.Apply(s) {
		return InvalidPackScore()
	}
	defer m.Undo(s)
	return scorer(s)
}

// ToGreedyQueue empties every box and returns the rectangles as a flat,
// ownerless list for greedy construction. The box map is cleared.
func (s *Solution) ToGreedyQueue() []*Rectangle {
	rects := make([]*Rectangle, 0, s.RectCount())
	for _, b := range s.OrderedBoxes() {
		for b.Len() > 0 {
			r := b.RemoveRect(b.Rects()[0].ID)
			r.BoxID = -1
			rects = append(rects, r)
		}
	}
	s.boxes = make(map[int]*Box)
	return rects
}

// Clone returns a deep copy for a parallel worker. Copies share nothing
// with the original.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		sideLength:                  s.sideLength,
		boxes:                       make(map[int]*Box, len(s.boxes)),
		CurrentlyPermissibleOverlap: s.CurrentlyPermissibleOverlap,
		lastMoved:                   s.lastMoved.clone(),
	}
	for id, b := range s.boxes {
		c.boxes[id] = b.Clone()
	}
	return c
}

func (s *Solution) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %v\n", s.Score())
	fmt.Fprintf(&sb, "Allowed overlap: %.2f\n", s.CurrentlyPermissibleOverlap)
	for _, b := range s.OrderedBoxes() {
		sb.WriteString(b.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// recencyQueue is a bounded FIFO of recently moved rectangle ids. Once full,
// pushing evicts the oldest entry.
type recencyQueue struct {
	capacity int
	ids      []int
}

func newRecencyQueue(capacity int) *recencyQueue {
	if capacity < 0 {
		capacity = 0
	}
	return &recencyQueue{capacity: capacity}
}

func (q *recencyQueue) push(id int) {
	if q.capacity == 0 {
		return
	}
	q.ids = append(q.ids, id)
	if len(q.ids) > q.capacity {
		q.ids = q.ids[1:]
	}
}

func (q *recencyQueue) popLast() {
	if len(q.ids) > 0 {
		q.ids = q.ids[:len(q.ids)-1]
	}
}

func (q *recencyQueue) contains(id int) bool {
	for _, v := range q.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (q *recencyQueue) clone() *recencyQueue {
	c := &recencyQueue{capacity: q.capacity, ids: make([]int, len(q.ids))}
	copy(c.ids, q.ids)
	return c
}
