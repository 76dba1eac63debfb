// corvid-selfplay is a non-interactive smoke-test driver: it plays a game to
// conclusion between two agents and prints the final snapshot. It is not a
// UI -- no rendering, dialogs or input loop, just a flag-driven CLI entry
// point, in the shape of cmd/perft.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/seekerror/logw"

	"github.com/arkwright/corvid/pkg/agent"
	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/corvid"
	"github.com/arkwright/corvid/pkg/game"
)

var (
	depth    = flag.Int("depth", 4, "Minimax search depth")
	seed     = flag.Int64("seed", 0, "Random agent PRNG seed (0 picks one from the clock)")
	maxMoves = flag.Int("max_moves", 200, "Half-move cap before the driver gives up and reports a draw-by-cap")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "%v %v: random vs minimax (depth %v)", corvid.Name, corvid.Version, *depth)

	white := agent.NewRandomAgent("random-white", board.White, seedOption()...)
	black := agent.NewMinimaxAgent("minimax-black", board.Black, agent.WithDepth(*depth))

	g := game.New(white, black, game.WithName("selfplay"))

	for i := 0; i < *maxMoves && !g.State().Kind.IsConclusive(); i++ {
		if err := g.NextTurn(ctx); err != nil {
			logw.Exitf(ctx, "turn %v failed: %v", i, err)
		}
		logw.Infof(ctx, "move %v: %v", i+1, g.State())
	}
	if !g.State().Kind.IsConclusive() {
		logw.Infof(ctx, "half-move cap %v reached: draw by cap", *maxMoves)
	}

	data, err := game.Encode(g)
	if err != nil {
		logw.Exitf(ctx, "failed to encode final snapshot: %v", err)
	}

	fmt.Println(string(data))
}

func seedOption() []agent.Option {
	if *seed == 0 {
		return nil
	}
	return []agent.Option{agent.WithSeed(*seed)}
}
