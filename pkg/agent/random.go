package agent

import (
	"context"
	"math/rand"
	"time"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/corerr"
	"github.com/arkwright/corvid/pkg/game"
)

// RandomAgent picks uniformly among the legal moves available to its color.
// It never mutates the board it is handed.
type RandomAgent struct {
	game.BasePlayer

	rng *rand.Rand
}

// NewRandomAgent constructs a RandomAgent. Without WithSeed, the PRNG is
// seeded from the wall clock, so successive games are not move-for-move
// identical.
func NewRandomAgent(name string, color board.Color, opts ...Option) *RandomAgent {
	o := resolveOptions(opts)
	seed, ok := o.Seed.V()
	if !ok {
		seed = time.Now().UnixNano()
	}
	return &RandomAgent{
		BasePlayer: game.NewBasePlayer(name, color),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomAgent) Kind() game.PlayerKind {
	return game.RandomAgentKind
}

func (r *RandomAgent) NextMove(ctx context.Context, b *board.Board) (game.PlayerMove, error) {
	moves := b.LegalMoves(r.Color())
	if len(moves) == 0 {
		return game.PlayerMove{}, corerr.New(corerr.IllegalOperation, "no legal moves for %v", r.Color())
	}

	m := moves[r.rng.Intn(len(moves))]
	return game.PlayerMove{From: m.From, To: m.To, Color: m.Color}, nil
}
