package game

import (
	"context"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/corerr"
)

// HumanPlayer returns a previously-registered PlayerMove and clears the
// buffer. The UI is responsible for calling RegisterMove before the
// controller calls NextMove; calling NextMove with nothing registered is a
// programmer error and returns IllegalOperation rather than panicking.
type HumanPlayer struct {
	BasePlayer

	buffer *PlayerMove
}

func NewHumanPlayer(name string, color board.Color) *HumanPlayer {
	return &HumanPlayer{BasePlayer: NewBasePlayer(name, color)}
}

func (h *HumanPlayer) Kind() PlayerKind {
	return HumanKind
}

// RegisterMove buffers the move the UI collected for this half-move.
func (h *HumanPlayer) RegisterMove(m PlayerMove) {
	mm := m
	h.buffer = &mm
}

func (h *HumanPlayer) NextMove(ctx context.Context, _ *board.Board) (PlayerMove, error) {
	if h.buffer == nil {
		return PlayerMove{}, corerr.New(corerr.IllegalOperation, "no move registered for human player %v", h.Name())
	}
	m := *h.buffer
	h.buffer = nil
	return m, nil
}
