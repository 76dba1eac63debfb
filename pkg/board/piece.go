package board

import "github.com/google/uuid"

// Kind represents a chess piece kind, colorless.
type Kind uint8

const (
	Pawn Kind = iota + 1
	Rook
	Knight
	Bishop
	Queen
	King
)

func (k Kind) IsValid() bool {
	return k >= Pawn && k <= King
}

// Points returns the point value used for search utility and capture
// reporting. Pawn 1, Knight 3, Bishop 3, Rook 5, Queen 9, King 0.
func (k Kind) Points() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "?"
	}
}

// Piece is a chess piece with a globally unique identifier, kind, color,
// position, move count and kind-specific extra state (only Pawn uses
// EnPassant today).
type Piece struct {
	ID        uuid.UUID
	Kind      Kind
	Color     Color
	Position  Position
	MoveCount int

	// EnPassant is true iff this pawn just completed a two-square advance
	// and is therefore vulnerable to en-passant capture on the next half-move.
	EnPassant bool
}

// NewPiece constructs a Piece with a freshly assigned identifier.
func NewPiece(kind Kind, color Color, pos Position) *Piece {
	return &Piece{ID: uuid.New(), Kind: kind, Color: color, Position: pos}
}

// Equal reports identity equality: same kind and same identifier.
func (p *Piece) Equal(o *Piece) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Kind == o.Kind && p.ID == o.ID
}

// IsAtPossibleInitialPosition reports whether the piece's current square
// matches any initial square for its kind and color.
func (p *Piece) IsAtPossibleInitialPosition() bool {
	rank := 1
	if p.Color == Black {
		rank = 8
	}

	switch p.Kind {
	case Pawn:
		pawnRank := 2
		if p.Color == Black {
			pawnRank = 7
		}
		return p.Position.Rank == pawnRank
	case Rook:
		return p.Position.Rank == rank && (p.Position.File == 1 || p.Position.File == 8)
	case Knight:
		return p.Position.Rank == rank && (p.Position.File == 2 || p.Position.File == 7)
	case Bishop:
		return p.Position.Rank == rank && (p.Position.File == 3 || p.Position.File == 6)
	case Queen:
		return p.Position.Rank == rank && p.Position.File == 4
	case King:
		return p.Position.Rank == rank && p.Position.File == 5
	default:
		return false
	}
}

func (p *Piece) String() string {
	return p.Color.String() + " " + p.Kind.String() + "@" + p.Position.String()
}

// occupancy is the minimal board query surface candidate-move generation
// needs, kept separate from *Board so piece.go and board.go stay decoupled
// within the package.
type occupancy interface {
	PieceAt(pos Position) (*Piece, bool)
}

// CandidateMoves returns geometrically valid moves for the piece kind, given
// the current board occupancy. Candidates are not yet filtered for own-king
// safety; castlings are added separately by the legality filter.
func (p *Piece) CandidateMoves(b occupancy) []Move {
	switch p.Kind {
	case Rook:
		return p.slidingMoves(b, axialQuadrants)
	case Bishop:
		return p.slidingMoves(b, radialQuadrants)
	case Queen:
		moves := p.slidingMoves(b, axialQuadrants)
		return append(moves, p.slidingMoves(b, radialQuadrants)...)
	case Knight:
		return p.steppingMoves(b, knightOffsets)
	case King:
		return p.kingMoves(b)
	case Pawn:
		return p.pawnMoves(b)
	default:
		return nil
	}
}

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {-1, 2}, {-2, 1},
	{1, -2}, {2, -1}, {-1, -2}, {-2, -1},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

type stepper struct {
	axial bool // true: AxialStep; false: RadialStep
	q     Quadrant
}

var axialQuadrants = []stepper{{true, Q1}, {true, Q2}, {true, Q3}, {true, Q4}}
var radialQuadrants = []stepper{{false, Q1}, {false, Q2}, {false, Q3}, {false, Q4}}

// slidingMoves walks outward from p.Position along each given direction,
// emitting RegularMove on empty squares, Capture (and stopping) on an enemy
// piece, and stopping without emitting on an allied piece.
func (p *Piece) slidingMoves(b occupancy, steppers []stepper) []Move {
	var moves []Move

	for _, s := range steppers {
		for dist := 1; dist <= 7; dist++ {
			var to Position
			var ok bool
			if s.axial {
				to, ok, _ = p.Position.AxialStep(dist, s.q, p.Color)
			} else {
				to, ok, _ = p.Position.RadialStep(dist, dist, s.q, p.Color)
			}
			if !ok {
				break
			}

			occ, found := b.PieceAt(to)
			if !found {
				moves = append(moves, Move{Kind: RegularMove, Color: p.Color, PieceID: p.ID, From: p.Position, To: to})
				continue
			}
			if occ.Color != p.Color {
				moves = append(moves, Move{Kind: Capture, Color: p.Color, PieceID: p.ID, From: p.Position, To: to, CapturedID: occ.ID})
			}
			break
		}
	}
	return moves
}

func (p *Piece) steppingMoves(b occupancy, offsets [8][2]int) []Move {
	var moves []Move
	for _, d := range offsets {
		to, ok := p.Position.Offset(d[0], d[1])
		if !ok {
			continue
		}
		occ, found := b.PieceAt(to)
		if !found {
			moves = append(moves, Move{Kind: RegularMove, Color: p.Color, PieceID: p.ID, From: p.Position, To: to})
		} else if occ.Color != p.Color {
			moves = append(moves, Move{Kind: Capture, Color: p.Color, PieceID: p.ID, From: p.Position, To: to, CapturedID: occ.ID})
		}
	}
	return moves
}

// kingMoves generates the eight surrounding squares, then discards any
// destination adjacent to the opposite-color king (kings may not become
// adjacent).
func (p *Piece) kingMoves(b occupancy) []Move {
	moves := p.steppingMoves(b, kingOffsets)

	oppKing, ok := findKing(b, p.Color.Opposite())
	if !ok {
		return moves
	}

	var filtered []Move
	for _, m := range moves {
		if isAdjacent(m.To, oppKing.Position) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

func isAdjacent(a, b Position) bool {
	df := a.File - b.File
	if df < 0 {
		df = -df
	}
	dr := a.Rank - b.Rank
	if dr < 0 {
		dr = -dr
	}
	return df <= 1 && dr <= 1 && (df != 0 || dr != 0)
}

// findKing is satisfied by anything that can enumerate active pieces; *Board
// implements it. Declared narrowly here to avoid a circular dependency on Board.
type kingFinder interface {
	PieceAt(pos Position) (*Piece, bool)
	ActivePieces(c Color) []*Piece
}

func findKing(b occupancy, c Color) (*Piece, bool) {
	kf, ok := b.(kingFinder)
	if !ok {
		return nil, false
	}
	for _, pc := range kf.ActivePieces(c) {
		if pc.Kind == King {
			return pc, true
		}
	}
	return nil, false
}

func (p *Piece) pawnMoves(b occupancy) []Move {
	var moves []Move

	lastRank := 8
	if p.Color == Black {
		lastRank = 1
	}
	if p.Position.Rank == lastRank {
		return nil // promotion not supported; no moves from the last rank
	}

	oneAhead, ok := p.Position.Forward(1, p.Color)
	if ok {
		if _, occupied := b.PieceAt(oneAhead); !occupied {
			moves = append(moves, Move{Kind: RegularMove, Color: p.Color, PieceID: p.ID, From: p.Position, To: oneAhead})

			if p.MoveCount == 0 {
				twoAhead, ok2 := p.Position.Forward(2, p.Color)
				if ok2 {
					if _, occ2 := b.PieceAt(twoAhead); !occ2 {
						moves = append(moves, Move{Kind: TwoSquareAdvance, Color: p.Color, PieceID: p.ID, From: p.Position, To: twoAhead})
					}
				}
			}
		}
	}

	for _, df := range []int{-1, 1} {
		diag, ok := p.Position.Forward(1, p.Color)
		if !ok {
			continue
		}
		diag, ok = diag.Offset(df, 0)
		if !ok {
			continue
		}

		if occ, found := b.PieceAt(diag); found {
			if occ.Color != p.Color {
				moves = append(moves, Move{Kind: Capture, Color: p.Color, PieceID: p.ID, From: p.Position, To: diag, CapturedID: occ.ID})
			}
			continue
		}

		// En passant: empty diagonal, enemy pawn with EnPassant set beside us.
		beside, ok := p.Position.Offset(df, 0)
		if !ok {
			continue
		}
		if occ, found := b.PieceAt(beside); found && occ.Color != p.Color && occ.Kind == Pawn && occ.EnPassant {
			moves = append(moves, Move{Kind: EnPassantCapture, Color: p.Color, PieceID: p.ID, From: p.Position, To: diag, CapturedID: occ.ID})
		}
	}

	return moves
}
