// Package ordering computes gap-based positions for sibling resources
// (columns within a board, cards within a column). The allocator is pure:
// it plans writes from a snapshot of the sibling set and leaves persistence
// to the repositories, which execute the plan inside one transaction.
package ordering

import (
	"bytes"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// DefaultGap is the spacing between freshly assigned positions. A new
// sibling lands at max+gap and a single-step move lands in the middle of an
// existing gap, so renumbering stays the fallback path, not the common case.
const DefaultGap = 1000

// Validation failures for a reorder request. None of these leave partial
// state behind: the plan is rejected before any write is attempted.
var (
	ErrNoAnchor       = errors.New("ordering: at least one anchor is required")
	ErrSelfAnchor     = errors.New("ordering: anchor must differ from the moving sibling")
	ErrSameAnchors    = errors.New("ordering: before and after anchors must differ")
	ErrAnchorOrder    = errors.New("ordering: before anchor must precede after anchor")
	ErrUnknownSibling = errors.New("ordering: moving sibling not found among siblings")
	ErrUnknownAnchor  = errors.New("ordering: anchor not found among siblings")
)

// Sibling is one member of an ordered sibling set.
type Sibling struct {
	ID       uuid.UUID
	Position int
}

// Move assigns a sibling its fresh position during a renumbering pass.
type Move struct {
	ID       uuid.UUID
	Position int
}

// Plan describes the writes needed to realize a reorder.
type Plan struct {
	// Position is the moved sibling's new position on the single-write path.
	Position int
	// Renumbered lists every sibling with its fresh position when the gap
	// was exhausted. Nil on the single-write path.
	Renumbered []Move
	// Unchanged is set when the sibling set has a single member; only the
	// timestamp needs refreshing.
	Unchanged bool
}

// Allocator plans positions with a fixed gap.
type Allocator struct {
	gap int
}

// NewAllocator creates an allocator with the given gap. Gaps below 2 cannot
// host a midpoint and fall back to DefaultGap.
func NewAllocator(gap int) *Allocator {
	if gap < 2 {
		gap = DefaultGap
	}
	return &Allocator{gap: gap}
}

// Gap returns the configured spacing.
func (a *Allocator) Gap() int {
	return a.gap
}

// NextPosition returns the position for a sibling appended to the set:
// one gap past the current maximum.
func (a *Allocator) NextPosition(siblings []Sibling) int {
	max := 0
	for _, s := range siblings {
		if s.Position > max {
			max = s.Position
		}
	}
	return max + a.gap
}

// PlanMove computes the new position for movingID relative to the given
// anchors. Siblings must be the full live sibling set including the mover;
// order of the input slice does not matter.
//
// The mover lands immediately after the before anchor, immediately before
// the after anchor, or between both. The cheap path writes one midpoint (or
// edge) position; when the enclosing gap is exhausted the whole set is
// renumbered to (index+1)*gap.
func (a *Allocator) PlanMove(siblings []Sibling, movingID uuid.UUID, beforeID, afterID *uuid.UUID) (Plan, error) {
	if beforeID == nil && afterID == nil {
		return Plan{}, ErrNoAnchor
	}
	if (beforeID != nil && *beforeID == movingID) || (afterID != nil && *afterID == movingID) {
		return Plan{}, ErrSelfAnchor
	}
	if beforeID != nil && afterID != nil && *beforeID == *afterID {
		return Plan{}, ErrSameAnchors
	}

	ordered := sortSiblings(siblings)

	moverIdx := indexOf(ordered, movingID)
	if moverIdx < 0 {
		return Plan{}, ErrUnknownSibling
	}
	if len(ordered) == 1 {
		return Plan{Unchanged: true}, nil
	}

	beforeIdx, afterIdx := -1, -1
	if beforeID != nil {
		if beforeIdx = indexOf(ordered, *beforeID); beforeIdx < 0 {
			return Plan{}, ErrUnknownAnchor
		}
	}
	if afterID != nil {
		if afterIdx = indexOf(ordered, *afterID); afterIdx < 0 {
			return Plan{}, ErrUnknownAnchor
		}
	}
	if beforeIdx >= 0 && afterIdx >= 0 && beforeIdx >= afterIdx {
		return Plan{}, ErrAnchorOrder
	}

	// Rebuild without the mover and resolve the insertion index: right
	// before the after anchor, or right after the before anchor.
	rest := make([]Sibling, 0, len(ordered)-1)
	insertAt := -1
	for i, s := range ordered {
		if i == moverIdx {
			continue
		}
		if i == afterIdx {
			insertAt = len(rest)
		} else if afterIdx < 0 && i == beforeIdx {
			insertAt = len(rest) + 1
		}
		rest = append(rest, s)
	}

	if position, ok := a.candidate(rest, insertAt); ok {
		return Plan{Position: position}, nil
	}
	return Plan{Renumbered: renumber(rest, insertAt, ordered[moverIdx], a.gap)}, nil
}

// candidate computes the single-write position for a mover slotted at
// insertAt within rest. It reports false when the enclosing gap cannot host
// the mover and a renumbering pass is required.
func (a *Allocator) candidate(rest []Sibling, insertAt int) (int, bool) {
	var prev, next *Sibling
	if insertAt > 0 {
		prev = &rest[insertAt-1]
	}
	if insertAt < len(rest) {
		next = &rest[insertAt]
	}

	var position int
	switch {
	case prev != nil && next != nil:
		if next.Position-prev.Position < 2 {
			return 0, false
		}
		position = (prev.Position + next.Position) / 2
	case next != nil:
		position = next.Position - a.gap
	default:
		position = prev.Position + a.gap
	}

	for _, s := range rest {
		if s.Position == position {
			return 0, false
		}
	}
	return position, true
}

// renumber inserts the mover at insertAt and assigns fresh gap-spaced
// positions to every sibling in the rebuilt list.
func renumber(rest []Sibling, insertAt int, mover Sibling, gap int) []Move {
	rebuilt := make([]Sibling, 0, len(rest)+1)
	rebuilt = append(rebuilt, rest[:insertAt]...)
	rebuilt = append(rebuilt, mover)
	rebuilt = append(rebuilt, rest[insertAt:]...)

	moves := make([]Move, len(rebuilt))
	for i, s := range rebuilt {
		moves[i] = Move{ID: s.ID, Position: (i + 1) * gap}
	}
	return moves
}

// sortSiblings returns a copy ordered by (position, id). The id tie-break
// keeps the order deterministic while a renumbering pass is in flight; ties
// are never persisted.
func sortSiblings(siblings []Sibling) []Sibling {
	ordered := make([]Sibling, len(siblings))
	copy(ordered, siblings)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return bytes.Compare(ordered[i].ID[:], ordered[j].ID[:]) < 0
	})
	return ordered
}

func indexOf(ordered []Sibling, id uuid.UUID) int {
	for i, s := range ordered {
		if s.ID == id {
			return i
		}
	}
	return -1
}
