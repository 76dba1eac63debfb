package game_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/game"
)

// scriptedAgent is a non-human Player that replays a fixed sequence of moves,
// used to exercise "smart" undo/redo rewind-count behavior without pulling in
// the search package.
type scriptedAgent struct {
	game.BasePlayer
	moves []game.PlayerMove
	next  int
}

func newScriptedAgent(color board.Color, moves ...game.PlayerMove) *scriptedAgent {
	return &scriptedAgent{BasePlayer: game.NewBasePlayer("scripted", color), moves: moves}
}

func (s *scriptedAgent) Kind() game.PlayerKind { return game.RandomAgentKind }

func (s *scriptedAgent) NextMove(ctx context.Context, _ *board.Board) (game.PlayerMove, error) {
	if s.next >= len(s.moves) {
		return game.PlayerMove{}, context.Canceled
	}
	m := s.moves[s.next]
	s.next++
	return m, nil
}

func humanPair() (*game.HumanPlayer, *game.HumanPlayer) {
	return game.NewHumanPlayer("white", board.White), game.NewHumanPlayer("black", board.Black)
}

func pos(t *testing.T, sq string) board.Position {
	t.Helper()
	p, err := board.ParsePosition(sq)
	require.NoError(t, err)
	return p
}

func TestNextTurnExecutesValidatedMove(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))

	_, ok := g.Board().PieceAt(pos(t, "e4"))
	assert.True(t, ok)
	assert.Equal(t, board.Black, g.State().Subject)
	assert.Equal(t, 1, g.HistoryLen())
}

func TestNextTurnRejectsIllegalMove(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e5"), Color: board.White})
	err := g.NextTurn(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, g.HistoryLen())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))
	before := g.Board()

	require.NoError(t, g.Undo(context.Background()))
	assert.Equal(t, 0, g.HistoryLen())
	assert.Equal(t, 1, g.FutureLen())

	require.NoError(t, g.Redo(context.Background()))
	assert.Equal(t, 1, g.HistoryLen())
	assert.Equal(t, 0, g.FutureLen())

	_, ok := g.Board().PieceAt(pos(t, "e4"))
	assert.True(t, ok)
	assert.Equal(t, before.String(), g.Board().String())
}

func TestSmartUndoSkipsAgentHalfMove(t *testing.T) {
	// spec §8: after white (human) moves and an agent replies, Undo from the
	// human's next turn should rewind both half-moves, landing the human back
	// at their own prior decision point rather than in the middle of the
	// agent's reply.
	white, black := humanPair()
	agentBlack := newScriptedAgent(board.Black, game.PlayerMove{From: pos(t, "e7"), To: pos(t, "e5"), Color: board.Black})
	g := game.New(white, agentBlack)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))
	require.NoError(t, g.NextTurn(context.Background())) // agent replies

	require.Equal(t, 2, g.HistoryLen())
	require.NoError(t, g.Undo(context.Background()))

	assert.Equal(t, 0, g.HistoryLen())
	assert.Equal(t, 2, g.FutureLen())
	assert.Equal(t, board.White, g.State().Subject)
}

func TestBackwardForwardUnconditional(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))
	black.RegisterMove(game.PlayerMove{From: pos(t, "e7"), To: pos(t, "e5"), Color: board.Black})
	require.NoError(t, g.NextTurn(context.Background()))

	require.NoError(t, g.Backward(context.Background(), 2))
	assert.Equal(t, 0, g.HistoryLen())

	require.NoError(t, g.Forward(context.Background(), 2))
	assert.Equal(t, 2, g.HistoryLen())

	err := g.Forward(context.Background(), 1)
	assert.Error(t, err)
}

func TestReadOnlyBlocksNextTurn(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)
	g.SetReadOnly(true)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	err := g.NextTurn(context.Background())
	assert.Error(t, err)
}

func TestPauseTogglesPlaying(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	g.Pause()
	assert.False(t, g.Playing())
	g.Resume()
	assert.True(t, g.Playing())
}

func TestPauseCancelsInFlightTurn(t *testing.T) {
	// spec §5: pausing while an agent is mid-search interrupts it via ctx
	// cancellation rather than letting NextTurn block indefinitely.
	blocker := &blockingPlayer{BasePlayer: game.NewBasePlayer("blocker", board.White), started: make(chan struct{})}
	_, black := humanPair()
	g := game.New(blocker, black)

	done := make(chan error, 1)
	go func() { done <- g.NextTurn(context.Background()) }()

	<-blocker.started
	g.Pause()

	err := <-done
	assert.Error(t, err)
}

type blockingPlayer struct {
	game.BasePlayer
	started chan struct{}
}

func (b *blockingPlayer) Kind() game.PlayerKind { return game.RandomAgentKind }
func (b *blockingPlayer) NextMove(ctx context.Context, _ *board.Board) (game.PlayerMove, error) {
	close(b.started)
	<-ctx.Done()
	return game.PlayerMove{}, ctx.Err()
}

func TestMarkDrawRequiresHumanToMove(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	require.NoError(t, g.MarkDraw(context.Background()))
	assert.Equal(t, game.AgreedDrawn, g.State().Kind)
	assert.True(t, g.State().Kind.IsConclusive())
}

func TestResetReturnsToStart(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))
	black.RegisterMove(game.PlayerMove{From: pos(t, "e7"), To: pos(t, "e5"), Color: board.Black})
	require.NoError(t, g.NextTurn(context.Background()))

	require.NoError(t, g.Reset(context.Background()))
	assert.Equal(t, 0, g.HistoryLen())
	assert.Equal(t, board.NewStandardBoard().String(), g.Board().String())
}

func TestSnapshotRoundTrip(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black, game.WithName("test game"))

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))

	data, err := game.Encode(g)
	require.NoError(t, err)

	decoded, err := game.Decode(data, nil)
	require.NoError(t, err)

	assert.Equal(t, g.Name(), decoded.Name())
	assert.Equal(t, g.State(), decoded.State())
	assert.Equal(t, g.HistoryLen(), decoded.HistoryLen())
	assert.Equal(t, g.Board().String(), decoded.Board().String())
}

func TestDecodeRejectsCapturedPieceOwnedByMover(t *testing.T) {
	white, black := humanPair()
	g := game.New(white, black)

	white.RegisterMove(game.PlayerMove{From: pos(t, "e2"), To: pos(t, "e4"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))
	black.RegisterMove(game.PlayerMove{From: pos(t, "d7"), To: pos(t, "d5"), Color: board.Black})
	require.NoError(t, g.NextTurn(context.Background()))
	white.RegisterMove(game.PlayerMove{From: pos(t, "e4"), To: pos(t, "d5"), Color: board.White})
	require.NoError(t, g.NextTurn(context.Background()))

	data, err := game.Encode(g)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	history := doc["history"].([]any)
	lastMove := history[len(history)-1].(map[string]any)["move"].(map[string]any)

	// Point captured_piece_id at a surviving white (allied-to-mover) piece
	// instead of the black pawn it actually captured.
	var alliedID string
	for _, raw := range doc["board"].(map[string]any)["active"].([]any) {
		pc := raw.(map[string]any)
		if pc["color"] == "white" && pc["id"] != lastMove["piece_id"] {
			alliedID = pc["id"].(string)
			break
		}
	}
	require.NotEmpty(t, alliedID)
	lastMove["captured_piece_id"] = alliedID

	corrupt, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = game.Decode(corrupt, nil)
	assert.Error(t, err)
}
