package board

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arkwright/corvid/pkg/corerr"
)

// Board is a container of active and captured pieces. It has no game-level
// awareness: no turn, no players. Not safe for concurrent use.
type Board struct {
	active   []*Piece
	captured []*Piece
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board set up for a standard chess game.
func NewStandardBoard() *Board {
	b := NewBoard()

	back := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 1; file <= 8; file++ {
		b.Place(NewPiece(back[file-1], White, NewPosition(file, 1)))
		b.Place(NewPiece(Pawn, White, NewPosition(file, 2)))
		b.Place(NewPiece(Pawn, Black, NewPosition(file, 7)))
		b.Place(NewPiece(back[file-1], Black, NewPosition(file, 8)))
	}
	return b
}

// Copy returns a deep copy: pieces are cloned so neither board can mutate the
// other's state, but identifiers are preserved so moves replay correctly
// against the copy. Used to isolate players/search from the authoritative board.
func (b *Board) Copy() *Board {
	clone := &Board{
		active:   make([]*Piece, len(b.active)),
		captured: make([]*Piece, len(b.captured)),
	}
	for i, p := range b.active {
		cp := *p
		clone.active[i] = &cp
	}
	for i, p := range b.captured {
		cp := *p
		clone.captured[i] = &cp
	}
	return clone
}

// Place inserts a piece into active. If another active piece already
// occupies the target square, that piece is removed (not captured) first.
func (b *Board) Place(p *Piece) {
	b.Vacate(p.Position)
	b.active = append(b.active, p)
}

// Vacate removes an active piece on the given square, if any. Returns true
// iff a piece was removed. Not equivalent to capture.
func (b *Board) Vacate(pos Position) bool {
	for i, p := range b.active {
		if p.Position == pos {
			b.active = append(b.active[:i], b.active[i+1:]...)
			return true
		}
	}
	return false
}

// PieceAt returns the active piece occupying pos, if any.
func (b *Board) PieceAt(pos Position) (*Piece, bool) {
	for _, p := range b.active {
		if p.Position == pos {
			return p, true
		}
	}
	return nil, false
}

// PieceWith returns the piece (active or captured) with the given identifier.
func (b *Board) PieceWith(id uuid.UUID) (*Piece, bool) {
	for _, p := range b.active {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range b.captured {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ActivePieces returns active pieces of the given color.
func (b *Board) ActivePieces(c Color) []*Piece {
	var out []*Piece
	for _, p := range b.active {
		if p.Color == c {
			out = append(out, p)
		}
	}
	return out
}

// Active returns all active pieces.
func (b *Board) Active() []*Piece {
	return append([]*Piece(nil), b.active...)
}

// Captured returns all captured pieces.
func (b *Board) Captured() []*Piece {
	return append([]*Piece(nil), b.captured...)
}

// Capture moves p from active to captured. Fails with NotFound if p is not active.
func (b *Board) Capture(p *Piece) error {
	for i, a := range b.active {
		if a.ID == p.ID {
			b.active = append(b.active[:i], b.active[i+1:]...)
			b.captured = append(b.captured, a)
			return nil
		}
	}
	return corerr.New(corerr.NotFound, "piece %v not active", p.ID)
}

// Uncapture moves p from captured back to active. Fails with NotFound if p is not captured.
func (b *Board) Uncapture(p *Piece) error {
	for i, c := range b.captured {
		if c.ID == p.ID {
			b.captured = append(b.captured[:i], b.captured[i+1:]...)
			b.active = append(b.active, c)
			return nil
		}
	}
	return corerr.New(corerr.NotFound, "piece %v not captured", p.ID)
}

// Execute dispatches to the move variant's implementation and returns the
// score delta: 0 for non-captures, the captured piece's point value for
// Capture/EnPassantCapture, 0 for Castling.
func (b *Board) Execute(m Move) (int, error) {
	piece, ok := b.PieceWith(m.PieceID)
	if !ok {
		return 0, corerr.New(corerr.NotFound, "piece %v not found", m.PieceID)
	}

	switch m.Kind {
	case RegularMove:
		piece.Position = m.To
		piece.MoveCount++
		return 0, nil

	case TwoSquareAdvance:
		piece.Position = m.To
		piece.MoveCount++
		piece.EnPassant = true
		return 0, nil

	case Capture:
		captured, ok := b.PieceWith(m.CapturedID)
		if !ok {
			return 0, corerr.New(corerr.NotFound, "captured piece %v not found", m.CapturedID)
		}
		if err := b.Capture(captured); err != nil {
			return 0, err
		}
		piece.Position = m.To
		piece.MoveCount++
		return captured.Kind.Points(), nil

	case EnPassantCapture:
		captured, ok := b.PieceWith(m.CapturedID)
		if !ok {
			return 0, corerr.New(corerr.NotFound, "captured piece %v not found", m.CapturedID)
		}
		if err := b.Capture(captured); err != nil {
			return 0, err
		}
		piece.Position = m.To
		piece.MoveCount++
		return captured.Kind.Points(), nil

	case Castling:
		king, ok := b.PieceWith(m.PieceID)
		if !ok {
			return 0, corerr.New(corerr.NotFound, "king %v not found", m.PieceID)
		}
		rook, ok := b.PieceWith(m.RookID)
		if !ok {
			return 0, corerr.New(corerr.NotFound, "rook %v not found", m.RookID)
		}
		king.Position = m.To
		king.MoveCount++
		rook.Position = m.RookTo
		rook.MoveCount++
		return 0, nil

	default:
		return 0, corerr.New(corerr.InvalidArgument, "unknown move kind %v", m.Kind)
	}
}

// Undo inverts Execute. For every legal m over board B, Undo(m, Execute(m, B)) == B.
func (b *Board) Undo(m Move) error {
	switch m.Kind {
	case RegularMove:
		piece, ok := b.PieceWith(m.PieceID)
		if !ok {
			return corerr.New(corerr.NotFound, "piece %v not found", m.PieceID)
		}
		piece.Position = m.From
		if piece.MoveCount > 0 {
			piece.MoveCount--
		}
		return nil

	case TwoSquareAdvance:
		piece, ok := b.PieceWith(m.PieceID)
		if !ok {
			return corerr.New(corerr.NotFound, "piece %v not found", m.PieceID)
		}
		piece.EnPassant = false
		piece.Position = m.From
		if piece.MoveCount > 0 {
			piece.MoveCount--
		}
		return nil

	case Capture, EnPassantCapture:
		piece, ok := b.PieceWith(m.PieceID)
		if !ok {
			return corerr.New(corerr.NotFound, "piece %v not found", m.PieceID)
		}
		if piece.MoveCount > 0 {
			piece.MoveCount--
		}
		piece.Position = m.From

		captured, ok := b.PieceWith(m.CapturedID)
		if !ok {
			return corerr.New(corerr.NotFound, "captured piece %v not found", m.CapturedID)
		}
		return b.Uncapture(captured)

	case Castling:
		rook, ok := b.PieceWith(m.RookID)
		if !ok {
			return corerr.New(corerr.NotFound, "rook %v not found", m.RookID)
		}
		king, ok := b.PieceWith(m.PieceID)
		if !ok {
			return corerr.New(corerr.NotFound, "king %v not found", m.PieceID)
		}
		if rook.MoveCount > 0 {
			rook.MoveCount--
		}
		rook.Position = m.RookFrom
		if king.MoveCount > 0 {
			king.MoveCount--
		}
		king.Position = m.From
		return nil

	default:
		return corerr.New(corerr.InvalidArgument, "unknown move kind %v", m.Kind)
	}
}

// IsInCheck reports whether color's king is attacked: true iff some
// opponent's non-king piece has a candidate Capture targeting it. Kings are
// excluded from the generator to avoid mutual recursion between kings' check
// detection.
func (b *Board) IsInCheck(c Color) bool {
	king, ok := findKingPiece(b, c)
	if !ok {
		return false
	}

	for _, p := range b.ActivePieces(c.Opposite()) {
		if p.Kind == King {
			continue
		}
		for _, m := range p.CandidateMoves(b) {
			if m.Kind == Capture && m.CapturedID == king.ID {
				return true
			}
		}
	}
	return false
}

func findKingPiece(b *Board, c Color) (*Piece, bool) {
	for _, p := range b.ActivePieces(c) {
		if p.Kind == King {
			return p, true
		}
	}
	return nil, false
}

// IsSquareAttacked reports whether pos is empty and some opponent non-pawn
// candidate RegularMove targets it. Used for castling-passage safety only;
// pawn attacks on empty squares are deliberately excluded since pawn captures
// are represented as Capture, not RegularMove.
func (b *Board) IsSquareAttacked(pos Position, pov Color) bool {
	if _, occupied := b.PieceAt(pos); occupied {
		return false
	}

	for _, p := range b.ActivePieces(pov.Opposite()) {
		if p.Kind == Pawn {
			continue
		}
		for _, m := range p.CandidateMoves(b) {
			if m.Kind == RegularMove && m.To == pos {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns the legal moves for every active piece of the given color.
func (b *Board) LegalMoves(c Color) []Move {
	var moves []Move
	for _, p := range b.ActivePieces(c) {
		moves = append(moves, LegalMovesForPiece(b, p)...)
	}
	return moves
}

// IsCheckmated reports check-and-no-legal-moves for color.
func (b *Board) IsCheckmated(c Color) bool {
	return b.IsInCheck(c) && len(b.LegalMoves(c)) == 0
}

// IsStalemated reports not-in-check-and-no-legal-moves for color.
func (b *Board) IsStalemated(c Color) bool {
	return !b.IsInCheck(c) && len(b.LegalMoves(c)) == 0
}

// Successor pairs a legal move with the board reached by executing it.
type Successor struct {
	Move  Move
	Board *Board
}

// Successors returns a pull-style lazy iterator over (move, resulting board)
// pairs for every legal move of color. Call the returned function repeatedly
// until ok is false.
func (b *Board) Successors(c Color) func() (Successor, bool) {
	moves := b.LegalMoves(c)
	i := 0
	return func() (Successor, bool) {
		if i >= len(moves) {
			return Successor{}, false
		}
		m := moves[i]
		i++

		child := b.Copy()
		_, _ = child.Execute(m)
		return Successor{Move: m, Board: child}, true
	}
}

func (b *Board) String() string {
	return fmt.Sprintf("board{active=%d captured=%d}", len(b.active), len(b.captured))
}
