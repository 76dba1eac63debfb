package agent

import (
	"context"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/corerr"
	"github.com/arkwright/corvid/pkg/game"
)

const defaultDepth = 4

// Terminal-node bonuses, signed relative to the searching agent's own color
// (self.color): a path's utility is the sum of captured piece values along
// it -- positive when self.color is the capturer, negative otherwise -- plus
// one of these bonuses if the path ends in checkmate or stalemate.
const (
	checkmateBonus         = 1000
	selfStalemateBonus     = -5000
	opponentStalemateBonus = 500
)

const (
	negInf = -1 << 30
	posInf = 1 << 30
)

// MinimaxAgent selects a move by fixed-depth alpha-beta search over
// board.Successors, following the maximizingPlayer/minimizingPlayer
// pseudocode documented (though not, in its negamax production code,
// literally implemented) in pkg/search/alphabeta.go. The maximiser is
// self.color; utility accumulates along the path rather than being read off
// a static position, so no separate leaf-evaluation type is needed.
type MinimaxAgent struct {
	game.BasePlayer

	depth int
	nodes uint64
}

// NewMinimaxAgent constructs a MinimaxAgent searching to the given depth
// (WithDepth), or defaultDepth (4 half-moves) if unset.
func NewMinimaxAgent(name string, color board.Color, opts ...Option) *MinimaxAgent {
	o := resolveOptions(opts)
	depth := defaultDepth
	if d, ok := o.Depth.V(); ok {
		depth = d
	}
	return &MinimaxAgent{BasePlayer: game.NewBasePlayer(name, color), depth: depth}
}

func (m *MinimaxAgent) Kind() game.PlayerKind {
	return game.MinimaxAgentKind
}

// Nodes reports the number of nodes expanded by the most recent NextMove
// call, for diagnostics.
func (m *MinimaxAgent) Nodes() uint64 {
	return m.nodes
}

func (m *MinimaxAgent) NextMove(ctx context.Context, b *board.Board) (game.PlayerMove, error) {
	m.nodes = 0

	var best board.Move
	haveBest := false
	bestValue := negInf
	alpha, beta := negInf, posInf

	next := b.Successors(m.Color())
	for {
		s, ok := next()
		if !ok {
			break
		}
		if contextx.IsCancelled(ctx) {
			return game.PlayerMove{}, corerr.Wrap(corerr.IllegalOperation, ctx.Err(), "search cancelled")
		}
		m.nodes++

		acc := capturedValue(s.Board, s.Move, m.Color())
		value := m.search(ctx, s.Board, m.depth-1, acc, alpha, beta, s.Move.Color.Opposite())

		if !haveBest || value > bestValue {
			bestValue, best, haveBest = value, s.Move, true
		}
		if bestValue > alpha {
			alpha = bestValue
		}
		if alpha >= beta {
			break
		}
	}

	if !haveBest {
		return game.PlayerMove{}, corerr.New(corerr.IllegalOperation, "no legal moves for %v", m.Color())
	}
	return game.PlayerMove{From: best.From, To: best.To, Color: best.Color}, nil
}

// search returns the utility of the best path reachable from b with toMove
// to move, given the accumulated capture value acc so far along this path.
func (m *MinimaxAgent) search(ctx context.Context, b *board.Board, depth int, acc int, alpha, beta int, toMove board.Color) int {
	m.nodes++
	if contextx.IsCancelled(ctx) {
		return acc
	}

	if b.IsCheckmated(toMove) {
		if toMove == m.Color() {
			return acc - checkmateBonus
		}
		return acc + checkmateBonus
	}
	if b.IsStalemated(toMove) {
		if toMove == m.Color() {
			return acc + selfStalemateBonus
		}
		return acc + opponentStalemateBonus
	}
	if depth == 0 {
		return acc
	}

	maximizing := toMove == m.Color()
	value := negInf
	if !maximizing {
		value = posInf
	}

	next := b.Successors(toMove)
	for {
		s, ok := next()
		if !ok {
			break
		}
		if contextx.IsCancelled(ctx) {
			break
		}

		childAcc := acc + capturedValue(s.Board, s.Move, m.Color())
		v := m.search(ctx, s.Board, depth-1, childAcc, alpha, beta, toMove.Opposite())

		if maximizing {
			if v > value {
				value = v
			}
			if value > alpha {
				alpha = value
			}
		} else {
			if v < value {
				value = v
			}
			if value < beta {
				beta = value
			}
		}
		if alpha >= beta {
			break
		}
	}

	return value
}

// capturedValue returns the point value of the piece m captured, signed
// positive if the capturing color is self, negative otherwise, zero for
// non-captures. b is the board reached after executing m, so the captured
// piece -- moved into b's captured set -- is still resolvable by identifier.
func capturedValue(b *board.Board, m board.Move, self board.Color) int {
	if !m.IsCaptureLike() {
		return 0
	}
	captured, ok := b.PieceWith(m.CapturedID)
	if !ok {
		return 0
	}
	if m.Color == self {
		return captured.Kind.Points()
	}
	return -captured.Kind.Points()
}
