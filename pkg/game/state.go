// Package game implements the time-reversible game controller: it owns the
// board, the two players, and the undo/redo timeline, and derives the
// terminal-state descriptor after every transition.
package game

import (
	"fmt"

	"github.com/arkwright/corvid/pkg/board"
)

// StateKind is the kind of a game's state descriptor.
type StateKind uint8

const (
	Regular StateKind = iota
	InCheck
	Checkmated
	Stalemated
	AgreedDrawn
)

func (k StateKind) String() string {
	switch k {
	case Regular:
		return "regular"
	case InCheck:
		return "in_check"
	case Checkmated:
		return "checkmated"
	case Stalemated:
		return "stalemated"
	case AgreedDrawn:
		return "agreed_drawn"
	default:
		return "?"
	}
}

// IsConclusive reports whether the state ends the game.
func (k StateKind) IsConclusive() bool {
	return k == Checkmated || k == Stalemated || k == AgreedDrawn
}

// State is the game's state descriptor. Subject is the color to move for
// inconclusive states; for Checkmated, Subject is the color that was just
// checkmated (the loser).
type State struct {
	Kind    StateKind
	Subject board.Color
	Round   int
}

func (s State) String() string {
	return fmt.Sprintf("{%v subject=%v round=%v}", s.Kind, s.Subject, s.Round)
}

// deriveState computes the state descriptor for the color about to move,
// using round as given. Forward steps increment round on a Black->White
// transition before calling it; backward steps do not call it, since they
// restore the Transformation's stored PreState instead.
func deriveState(b *board.Board, toMove board.Color, round int) State {
	switch {
	case b.IsCheckmated(toMove):
		return State{Kind: Checkmated, Subject: toMove, Round: round}
	case b.IsStalemated(toMove):
		return State{Kind: Stalemated, Subject: toMove, Round: round}
	case b.IsInCheck(toMove):
		return State{Kind: InCheck, Subject: toMove, Round: round}
	default:
		return State{Kind: Regular, Subject: toMove, Round: round}
	}
}
