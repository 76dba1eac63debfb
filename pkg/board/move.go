package board

import (
	"fmt"

	"github.com/google/uuid"
)

// MoveKind tags the variant of a Move.
type MoveKind uint8

const (
	RegularMove MoveKind = iota
	TwoSquareAdvance
	Capture
	EnPassantCapture
	Castling
)

func (k MoveKind) String() string {
	switch k {
	case RegularMove:
		return "regular"
	case TwoSquareAdvance:
		return "two_square_advance"
	case Capture:
		return "capture"
	case EnPassantCapture:
		return "en_passant_capture"
	case Castling:
		return "castling"
	default:
		return "?"
	}
}

// Move is a tagged record of every move variant in spec §3. Every field not
// applicable to Kind is left zero-valued. A Move owns copies of positions
// (non-referential) so it can replay against any board that still contains
// the referenced pieces by identifier.
type Move struct {
	Kind              MoveKind
	Color             Color
	PieceID           uuid.UUID
	From, To          Position
	CapturedID        uuid.UUID // set for Capture, EnPassantCapture
	WillCheckOpponent bool

	// Castling-only fields: the rook's own sub-move.
	RookID   uuid.UUID
	RookFrom Position
	RookTo   Position
}

// IsCaptureLike reports whether the move variant removes an enemy piece.
func (m Move) IsCaptureLike() bool {
	return m.Kind == Capture || m.Kind == EnPassantCapture
}

func (m Move) String() string {
	return fmt.Sprintf("%v %v %v->%v", m.Color, m.Kind, m.From, m.To)
}
