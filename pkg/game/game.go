package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/corerr"
)

// Option configures a Game at construction time, following the
// functional-options shape of herohde/morlock's engine.Options.
type Option func(*Game)

// WithName sets the game's display name.
func WithName(name string) Option {
	return func(g *Game) {
		g.name = lang.Some(name)
	}
}

// WithBoard overrides the initial board (default: a standard starting position).
func WithBoard(b *board.Board) Option {
	return func(g *Game) {
		g.board = b
	}
}

// Game owns the board, the two players, and the undo/redo timeline.
// Not safe for concurrent use from multiple goroutines except via Cancel and
// Pause, which are explicitly safe to call while NextTurn is suspended waiting
// on a player (see §5 of the specification this implements).
type Game struct {
	mu sync.Mutex

	name  lang.Optional[string]
	board *board.Board
	state State

	white, black Player

	history, future []Transformation

	readOnly bool
	playing  bool

	busy         bool
	activeCancel context.CancelFunc
}

// New constructs a Game with a standard starting board, ready to play.
func New(white, black Player, opts ...Option) *Game {
	g := &Game{
		board:   board.NewStandardBoard(),
		white:   white,
		black:   black,
		playing: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.state = deriveState(g.board, board.White, 1)
	return g
}

func (g *Game) Name() string {
	if v, ok := g.name.V(); ok {
		return v
	}
	return "game"
}
func (g *Game) Board() *board.Board      { return g.board.Copy() }
func (g *Game) State() State             { return g.state }
func (g *Game) ReadOnly() bool           { return g.readOnly }
func (g *Game) Playing() bool            { return g.playing }
func (g *Game) HistoryLen() int          { return len(g.history) }
func (g *Game) FutureLen() int           { return len(g.future) }
func (g *Game) WhitePlayer() Player      { return g.white }
func (g *Game) BlackPlayer() Player      { return g.black }

func (g *Game) hasConcluded() bool {
	return g.state.Kind.IsConclusive()
}

func (g *Game) inspectionOnly() bool {
	return g.readOnly || !g.playing
}

func (g *Game) playerByColor(c board.Color) Player {
	if c == board.White {
		return g.white
	}
	return g.black
}

func (g *Game) currentPlayer() Player {
	return g.playerByColor(g.state.Subject)
}

// NextTurn asks the current player for a move, validates it, executes it on
// the board, and advances the timeline. It is the only operation that may
// suspend for a non-trivial duration (while a human move is collected, or an
// agent searches) -- every other Game method completes without yielding.
func (g *Game) NextTurn(ctx context.Context) error {
	g.mu.Lock()
	if g.inspectionOnly() {
		g.mu.Unlock()
		logw.Errorf(ctx, "NextTurn: game is inspection-only")
		return corerr.New(corerr.IllegalOperation, "game is inspection-only")
	}
	if g.hasConcluded() {
		g.mu.Unlock()
		logw.Errorf(ctx, "NextTurn: game has concluded")
		return corerr.New(corerr.IllegalOperation, "game has concluded")
	}
	if g.busy {
		g.mu.Unlock()
		logw.Errorf(ctx, "NextTurn: a turn is already in progress")
		return corerr.New(corerr.IllegalOperation, "a turn is already in progress")
	}

	mover := g.currentPlayer()
	boardCopy := g.board.Copy()
	subject := g.state.Subject

	turnCtx, cancel := context.WithCancel(ctx)
	g.activeCancel = cancel
	g.busy = true
	g.mu.Unlock()

	pm, err := mover.NextMove(turnCtx, boardCopy)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.activeCancel = nil
	g.busy = false
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logw.Errorf(ctx, "NextTurn %v: cancelled", mover.Name())
			return corerr.New(corerr.IllegalOperation, "turn cancelled")
		}
		logw.Errorf(ctx, "NextTurn %v: failed to produce a move: %v", mover.Name(), err)
		return corerr.Wrap(corerr.IllegalMove, err, "player %v failed to produce a move", mover.Name())
	}

	// The game may have been paused/locked while we were unlocked waiting on
	// the player; re-check before mutating.
	if g.inspectionOnly() || g.hasConcluded() {
		logw.Errorf(ctx, "NextTurn %v: game no longer accepts a turn", mover.Name())
		return corerr.New(corerr.IllegalOperation, "game no longer accepts a turn")
	}

	piece, ok := g.board.PieceAt(pm.From)
	if !ok || piece.Color != pm.Color || pm.Color != subject {
		logw.Errorf(ctx, "NextTurn %v: no %v piece at %v", mover.Name(), pm.Color, pm.From)
		return corerr.New(corerr.IllegalMove, "no %v piece at %v", pm.Color, pm.From)
	}

	var move board.Move
	found := false
	for _, m := range board.LegalMovesForPiece(g.board, piece) {
		if m.To == pm.To {
			move, found = m, true
			break
		}
	}
	if !found {
		logw.Errorf(ctx, "NextTurn %v: no legal move from %v to %v", mover.Name(), pm.From, pm.To)
		return corerr.New(corerr.IllegalMove, "%v has no legal move from %v to %v", pm.Color, pm.From, pm.To)
	}

	delta, err := g.board.Execute(move)
	if err != nil {
		logw.Errorf(ctx, "NextTurn %v: failed to execute %v: %v", mover.Name(), move, err)
		return corerr.Wrap(corerr.IllegalMove, err, "failed to execute %v", move)
	}
	mover.AddScore(delta)

	g.history = append(g.history, Transformation{Timestamp: now(), Move: move, PreState: g.state})
	g.future = nil

	g.advanceTurnState(move)

	logw.Infof(ctx, "NextTurn %v: %v, state=%v", mover.Name(), move, g.state)
	return nil
}

// advanceTurnState recomputes state after a forward move, resets every
// pawn's en-passant flag, and re-sets it on the just-advanced pawn.
func (g *Game) advanceTurnState(move board.Move) {
	g.resetEnPassant()
	if move.Kind == board.TwoSquareAdvance {
		if p, ok := g.board.PieceWith(move.PieceID); ok {
			p.EnPassant = true
		}
	}

	next := g.state.Subject.Opposite()
	round := g.state.Round
	if g.state.Subject == board.Black && next == board.White {
		round++
	}
	g.state = deriveState(g.board, next, round)
}

func (g *Game) resetEnPassant() {
	for _, p := range g.board.Active() {
		if p.Kind == board.Pawn {
			p.EnPassant = false
		}
	}
}

// Cancel halts an in-flight NextTurn's agent/human wait, if any. Idempotent.
func (g *Game) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.activeCancel != nil {
		g.activeCancel()
	}
}

// Undo performs a "smart" backward step: permitted iff not inspection-only
// AND (the current player is human OR the game has concluded) AND enough
// history exists. It rewinds two half-moves if the color to move's opponent
// is a non-human agent (so the human lands back on their own prior turn),
// else one.
func (g *Game) Undo(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inspectionOnly() {
		logw.Errorf(ctx, "Undo: game is inspection-only")
		return corerr.New(corerr.IllegalOperation, "game is inspection-only")
	}
	if g.currentPlayer().Kind() != HumanKind && !g.hasConcluded() {
		logw.Errorf(ctx, "Undo: only a human-to-move or concluded game may undo")
		return corerr.New(corerr.IllegalOperation, "only a human-to-move or concluded game may undo")
	}

	n := 1
	if g.playerByColor(g.state.Subject.Opposite()).Kind() != HumanKind {
		n = 2
	}
	if len(g.history) < n {
		logw.Errorf(ctx, "Undo: not enough history to undo %d half-move(s)", n)
		return corerr.New(corerr.IllegalOperation, "not enough history to undo %d half-move(s)", n)
	}
	if err := g.backwardLocked(n); err != nil {
		logw.Errorf(ctx, "Undo: %v", err)
		return err
	}
	logw.Infof(ctx, "Undo %d half-move(s): state=%v", n, g.state)
	return nil
}

// Redo performs a "smart" forward step, symmetric to Undo.
func (g *Game) Redo(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inspectionOnly() {
		logw.Errorf(ctx, "Redo: game is inspection-only")
		return corerr.New(corerr.IllegalOperation, "game is inspection-only")
	}
	if g.hasConcluded() {
		logw.Errorf(ctx, "Redo: game has concluded")
		return corerr.New(corerr.IllegalOperation, "game has concluded")
	}
	if g.currentPlayer().Kind() != HumanKind {
		logw.Errorf(ctx, "Redo: only a human-to-move game may redo")
		return corerr.New(corerr.IllegalOperation, "only a human-to-move game may redo")
	}

	n := 1
	if g.playerByColor(g.state.Subject.Opposite()).Kind() != HumanKind {
		n = 2
	}
	if len(g.future) < n {
		logw.Errorf(ctx, "Redo: not enough future to redo %d half-move(s)", n)
		return corerr.New(corerr.IllegalOperation, "not enough future to redo %d half-move(s)", n)
	}
	if err := g.forwardLocked(n); err != nil {
		logw.Errorf(ctx, "Redo: %v", err)
		return err
	}
	logw.Infof(ctx, "Redo %d half-move(s): state=%v", n, g.state)
	return nil
}

// Backward unconditionally steps n half-moves back. Fails with
// IllegalOperation if insufficient history exists.
func (g *Game) Backward(ctx context.Context, n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.history) < n {
		logw.Errorf(ctx, "Backward: not enough history to step back %d half-move(s)", n)
		return corerr.New(corerr.IllegalOperation, "not enough history to step back %d half-move(s)", n)
	}
	if err := g.backwardLocked(n); err != nil {
		logw.Errorf(ctx, "Backward: %v", err)
		return err
	}
	logw.Infof(ctx, "Backward %d half-move(s): state=%v", n, g.state)
	return nil
}

// Forward unconditionally steps n half-moves forward. Fails with
// IllegalOperation if insufficient future exists.
func (g *Game) Forward(ctx context.Context, n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.future) < n {
		logw.Errorf(ctx, "Forward: not enough future to step forward %d half-move(s)", n)
		return corerr.New(corerr.IllegalOperation, "not enough future to step forward %d half-move(s)", n)
	}
	if err := g.forwardLocked(n); err != nil {
		logw.Errorf(ctx, "Forward: %v", err)
		return err
	}
	logw.Infof(ctx, "Forward %d half-move(s): state=%v", n, g.state)
	return nil
}

func (g *Game) backwardLocked(n int) error {
	for i := 0; i < n; i++ {
		last := g.history[len(g.history)-1]
		g.history = g.history[:len(g.history)-1]

		if err := g.board.Undo(last.Move); err != nil {
			return err
		}
		g.future = append(g.future, last)
		g.state = last.PreState
	}
	return nil
}

func (g *Game) forwardLocked(n int) error {
	for i := 0; i < n; i++ {
		next := g.future[len(g.future)-1]
		g.future = g.future[:len(g.future)-1]

		if _, err := g.board.Execute(next.Move); err != nil {
			return err
		}
		g.history = append(g.history, next)
		g.advanceTurnState(next.Move)
	}
	return nil
}

// Pause toggles playing off; while paused, Undo/Redo are disabled but
// Backward/Forward remain available. If an agent is mid-search, it is
// interrupted, per §5.
func (g *Game) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.playing = false
	if g.activeCancel != nil {
		g.activeCancel()
	}
}

// Resume toggles playing back on.
func (g *Game) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.playing = true
}

// SetReadOnly locks out all mutating operations except Backward/Forward.
func (g *Game) SetReadOnly(b bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readOnly = b
}

// Reset repeatedly steps backward until history is empty, then clears future.
func (g *Game) Reset(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for len(g.history) > 0 {
		if err := g.backwardLocked(1); err != nil {
			logw.Errorf(ctx, "Reset: %v", err)
			return err
		}
	}
	g.future = nil
	logw.Infof(ctx, "Reset: state=%v", g.state)
	return nil
}

// MarkDraw sets the state to AgreedDrawn. Valid only if the player to move is
// human (per spec §9, this is a one-sided call; see DESIGN.md).
func (g *Game) MarkDraw(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inspectionOnly() {
		logw.Errorf(ctx, "MarkDraw: game is inspection-only")
		return corerr.New(corerr.IllegalOperation, "game is inspection-only")
	}
	if g.currentPlayer().Kind() != HumanKind {
		logw.Errorf(ctx, "MarkDraw: only the player to move may agree to a draw")
		return corerr.New(corerr.IllegalOperation, "only the player to move may agree to a draw")
	}
	g.state = State{Kind: AgreedDrawn, Subject: g.state.Subject, Round: g.state.Round}
	logw.Infof(ctx, "MarkDraw: state=%v", g.state)
	return nil
}

var nowFunc = time.Now

func now() time.Time {
	return nowFunc()
}
