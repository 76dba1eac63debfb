package game

import (
	"time"

	"github.com/arkwright/corvid/pkg/board"
)

// Transformation is a single row of the history/future stacks: the move that
// was executed, when, and the state descriptor that held immediately before
// it was applied (see DESIGN.md for why PreState, not a post-state, is kept:
// it lets backward() restore a state descriptor directly instead of
// recomputing it).
type Transformation struct {
	Timestamp time.Time
	Move      board.Move
	PreState  State
}
