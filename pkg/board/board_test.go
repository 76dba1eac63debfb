package board_test

import (
	"testing"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play finds and executes the legal move from->to for the mover at fromSq,
// failing the test if no such legal move exists.
func play(t *testing.T, b *board.Board, fromSq, toSq string) board.Move {
	t.Helper()

	from, err := board.ParsePosition(fromSq)
	require.NoError(t, err)
	to, err := board.ParsePosition(toSq)
	require.NoError(t, err)

	piece, ok := b.PieceAt(from)
	require.True(t, ok, "no piece at %v", fromSq)

	for _, m := range board.LegalMovesForPiece(b, piece) {
		if m.To == to {
			_, err := b.Execute(m)
			require.NoError(t, err)
			return m
		}
	}
	t.Fatalf("no legal move %v->%v", fromSq, toSq)
	return board.Move{}
}

func TestExecuteUndoInversion(t *testing.T) {
	// spec §8.1: for every legal move on every reachable board, Undo(Execute(m, B)) == B.
	b := board.NewStandardBoard()
	before := snapshot(b)

	m := play(t, b, "e2", "e4")
	require.NoError(t, b.Undo(m))

	assert.Equal(t, before, snapshot(b))
}

func snapshot(b *board.Board) string {
	var s string
	for _, p := range b.Active() {
		s += p.Kind.String() + p.Color.String() + p.Position.String() + boolStr(p.EnPassant)
	}
	s += "|"
	for _, p := range b.Captured() {
		s += p.Kind.String() + p.Color.String()
	}
	return s
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func TestScholarsMate(t *testing.T) {
	b := board.NewStandardBoard()

	play(t, b, "e2", "e4")
	play(t, b, "e7", "e5")
	play(t, b, "d1", "h5")
	play(t, b, "b8", "c6")
	play(t, b, "f1", "c4")
	play(t, b, "g8", "f6")
	m := play(t, b, "h5", "f7")

	assert.True(t, m.WillCheckOpponent)
	assert.Equal(t, board.Capture, m.Kind)
	assert.True(t, b.IsCheckmated(board.Black))

	_, occupied := b.PieceAt(board.NewPosition(6, 7)) // f7
	require.True(t, occupied)
}

func TestFoolsMate(t *testing.T) {
	b := board.NewStandardBoard()

	play(t, b, "f2", "f3")
	play(t, b, "e7", "e5")
	play(t, b, "g2", "g4")
	play(t, b, "d8", "h4")

	assert.True(t, b.IsCheckmated(board.White))
}

func TestEnPassantSequence(t *testing.T) {
	b := board.NewStandardBoard()

	play(t, b, "e2", "e4")
	play(t, b, "a7", "a6")
	play(t, b, "e4", "e5")
	play(t, b, "d7", "d5")
	m := play(t, b, "e5", "d6")

	require.Equal(t, board.EnPassantCapture, m.Kind)

	d5 := board.NewPosition(4, 5)
	_, occupied := b.PieceAt(d5)
	assert.False(t, occupied, "d5 pawn should have been captured")

	require.NoError(t, b.Undo(m))

	restored, ok := b.PieceAt(d5)
	require.True(t, ok, "d5 pawn should be restored")
	assert.True(t, restored.EnPassant)
}

func TestCastlingBothSides(t *testing.T) {
	b := board.NewBoard()
	king := board.NewPiece(board.King, board.White, board.NewPosition(5, 1))
	rookK := board.NewPiece(board.Rook, board.White, board.NewPosition(8, 1))
	rookQ := board.NewPiece(board.Rook, board.White, board.NewPosition(1, 1))
	oppKing := board.NewPiece(board.King, board.Black, board.NewPosition(5, 8))
	b.Place(king)
	b.Place(rookK)
	b.Place(rookQ)
	b.Place(oppKing)

	legal := board.LegalMovesForPiece(b, king)

	var kingSide, queenSide *board.Move
	for i := range legal {
		if legal[i].Kind != board.Castling {
			continue
		}
		if legal[i].RookID == rookK.ID {
			kingSide = &legal[i]
		}
		if legal[i].RookID == rookQ.ID {
			queenSide = &legal[i]
		}
	}
	require.NotNil(t, kingSide)
	require.NotNil(t, queenSide)

	_, err := b.Execute(*kingSide)
	require.NoError(t, err)
	assert.Equal(t, board.NewPosition(7, 1), king.Position)
	assert.Equal(t, board.NewPosition(6, 1), rookK.Position)

	require.NoError(t, b.Undo(*kingSide))
	assert.Equal(t, board.NewPosition(5, 1), king.Position)
	assert.Equal(t, board.NewPosition(8, 1), rookK.Position)
	assert.Equal(t, 0, king.MoveCount)
	assert.Equal(t, 0, rookK.MoveCount)
}

func TestCastlingBothSidesBlack(t *testing.T) {
	// spec §4.4: king-side/queen-side are anchored to absolute files, not a
	// color-flipped forward axis -- this must hold for Black exactly as it
	// does for White.
	b := board.NewBoard()
	king := board.NewPiece(board.King, board.Black, board.NewPosition(5, 8))
	rookK := board.NewPiece(board.Rook, board.Black, board.NewPosition(8, 8))
	rookQ := board.NewPiece(board.Rook, board.Black, board.NewPosition(1, 8))
	oppKing := board.NewPiece(board.King, board.White, board.NewPosition(5, 1))
	b.Place(king)
	b.Place(rookK)
	b.Place(rookQ)
	b.Place(oppKing)

	legal := board.LegalMovesForPiece(b, king)

	var kingSide, queenSide *board.Move
	for i := range legal {
		if legal[i].Kind != board.Castling {
			continue
		}
		if legal[i].RookID == rookK.ID {
			kingSide = &legal[i]
		}
		if legal[i].RookID == rookQ.ID {
			queenSide = &legal[i]
		}
	}
	require.NotNil(t, kingSide)
	require.NotNil(t, queenSide)

	_, err := b.Execute(*queenSide)
	require.NoError(t, err)
	assert.Equal(t, board.NewPosition(3, 8), king.Position)
	assert.Equal(t, board.NewPosition(4, 8), rookQ.Position)

	require.NoError(t, b.Undo(*queenSide))
	assert.Equal(t, board.NewPosition(5, 8), king.Position)
	assert.Equal(t, board.NewPosition(1, 8), rookQ.Position)
	assert.Equal(t, 0, king.MoveCount)
	assert.Equal(t, 0, rookQ.MoveCount)
}

func TestStalemate(t *testing.T) {
	b := board.NewBoard()
	b.Place(board.NewPiece(board.King, board.White, board.NewPosition(8, 1))) // h1
	b.Place(board.NewPiece(board.King, board.Black, board.NewPosition(6, 2))) // f2
	b.Place(board.NewPiece(board.Queen, board.Black, board.NewPosition(7, 3))) // g3

	assert.True(t, b.IsStalemated(board.White))
	assert.Empty(t, b.LegalMoves(board.White))
}

func TestNoSelfCheck(t *testing.T) {
	// spec §8.6: a pinned rook cannot move off the king's file, exposing check.
	b := board.NewBoard()
	king := board.NewPiece(board.King, board.White, board.NewPosition(5, 1))
	rook := board.NewPiece(board.Rook, board.White, board.NewPosition(5, 2))
	enemyRook := board.NewPiece(board.Rook, board.Black, board.NewPosition(5, 8))
	b.Place(king)
	b.Place(rook)
	b.Place(enemyRook)
	b.Place(board.NewPiece(board.King, board.Black, board.NewPosition(1, 8)))

	for _, m := range board.LegalMovesForPiece(b, rook) {
		assert.Equal(t, 5, m.To.File, "pinned rook may only move along the king's file")
	}
}

func TestKingAdjacencyExcluded(t *testing.T) {
	b := board.NewBoard()
	king := board.NewPiece(board.King, board.White, board.NewPosition(5, 1))
	oppKing := board.NewPiece(board.King, board.Black, board.NewPosition(5, 3))
	b.Place(king)
	b.Place(oppKing)

	for _, m := range king.CandidateMoves(b) {
		assert.NotEqual(t, board.NewPosition(5, 2), m.To, "kings may not become adjacent")
	}
}
