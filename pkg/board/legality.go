package board

// LegalMovesForPiece turns p's candidate moves into legal moves: each
// candidate is hypothetically executed, discarded if it leaves p's own color
// in check, and tagged WillCheckOpponent if it leaves the opponent in check.
// The board is restored to its exact pre-step state after each trial. Kings
// additionally receive any legal castlings.
func LegalMovesForPiece(b *Board, p *Piece) []Move {
	var legal []Move

	for _, m := range p.CandidateMoves(b) {
		if _, err := b.Execute(m); err != nil {
			continue // invariant violation: treat as illegal rather than panicking
		}

		switch {
		case b.IsInCheck(p.Color):
			// unsafe: leaves own king in check.
		case b.IsInCheck(p.Color.Opposite()):
			m.WillCheckOpponent = true
			legal = append(legal, m)
		default:
			legal = append(legal, m)
		}

		_ = b.Undo(m)
	}

	if p.Kind == King {
		legal = append(legal, legalCastlings(b, p)...)
	}

	return legal
}

// castling side definitions. Unlike pawn/piece movement, king-side and
// queen-side are anchored to absolute files (h-file/a-file) for both colors,
// not to a color-flipped "forward" axis, so these use Position.Offset's
// unflipped df directly rather than AxialStep/Quadrant.
var castlingSides = []struct {
	df   int // +1 toward the h-file rook (king-side), -1 toward the a-file rook (queen-side)
	dist int
}{
	{-1, 4},
	{1, 3},
}

func legalCastlings(b *Board, king *Piece) []Move {
	if king.MoveCount != 0 || b.IsInCheck(king.Color) {
		return nil
	}

	var moves []Move
	for _, side := range castlingSides {
		rookPos, ok := king.Position.Offset(side.df*side.dist, 0)
		if !ok {
			continue
		}
		rook, found := b.PieceAt(rookPos)
		if !found || rook.Kind != Rook || rook.Color != king.Color || rook.MoveCount != 0 {
			continue
		}

		if !pathClearAndSafe(b, king, side.df, side.dist) {
			continue
		}

		kingTo, _ := king.Position.Offset(side.df*2, 0)
		rookTo, _ := king.Position.Offset(side.df*1, 0)

		moves = append(moves, Move{
			Kind:     Castling,
			Color:    king.Color,
			PieceID:  king.ID,
			From:     king.Position,
			To:       kingTo,
			RookID:   rook.ID,
			RookFrom: rook.Position,
			RookTo:   rookTo,
		})
	}
	return moves
}

func pathClearAndSafe(b *Board, king *Piece, df, dist int) bool {
	for d := 1; d < dist; d++ {
		sq, ok := king.Position.Offset(df*d, 0)
		if !ok {
			return false
		}
		if _, occupied := b.PieceAt(sq); occupied {
			return false
		}
		if b.IsSquareAttacked(sq, king.Color) {
			return false
		}
	}
	return true
}
