package game

import (
	"context"

	"github.com/arkwright/corvid/pkg/board"
)

// PlayerKind identifies a player's implementation, for snapshot encoding.
type PlayerKind uint8

const (
	HumanKind PlayerKind = iota
	RandomAgentKind
	MinimaxAgentKind
)

func (k PlayerKind) String() string {
	switch k {
	case HumanKind:
		return "human"
	case RandomAgentKind:
		return "random_agent"
	case MinimaxAgentKind:
		return "minimax_agent"
	default:
		return "?"
	}
}

// PlayerMove is a raw move request: positions plus the color making it. It is
// validated against the board's legal moves by the Game controller before
// being translated into an internal board.Move.
type PlayerMove struct {
	From, To board.Position
	Color    board.Color
}

// Player is a uniform interface yielding a raw move request. The controller
// passes a copy of the board so a Player cannot interfere with the
// authoritative board; an Agent implementation MUST NOT mutate shared state.
type Player interface {
	Name() string
	Color() board.Color
	Kind() PlayerKind
	Score() int
	AddScore(delta int)

	// NextMove computes the player's move from a private copy of the board.
	// Implementations MUST respect ctx cancellation at cooperative checkpoints.
	NextMove(ctx context.Context, b *board.Board) (PlayerMove, error)
}

// BasePlayer implements the name/color/score bookkeeping shared by every
// Player implementation.
type BasePlayer struct {
	name  string
	color board.Color
	score int
}

func NewBasePlayer(name string, color board.Color) BasePlayer {
	return BasePlayer{name: name, color: color}
}

func (p *BasePlayer) Name() string         { return p.name }
func (p *BasePlayer) Color() board.Color   { return p.color }
func (p *BasePlayer) Score() int           { return p.score }
func (p *BasePlayer) AddScore(delta int) {
	p.score += delta
	if p.score < 0 {
		p.score = 0
	}
}
