package game

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/arkwright/corvid/pkg/board"
	"github.com/arkwright/corvid/pkg/corerr"
)

// The wire DTOs below follow the logical snapshot structure of spec §6.
// Encoding uses encoding/json; decoding maps a Kind string back to its enum
// value (board.MoveKind, board.Kind, StateKind, PlayerKind) by matching it
// against each value's String() name (spec §9 design note), mirroring the teacher's fen.go parsePiece/printPiece
// symmetric encode/decode pair.

type snapshotDTO struct {
	Name        string             `json:"name"`
	State       stateDTO           `json:"state"`
	Board       boardDTO           `json:"board"`
	WhitePlayer playerDTO          `json:"white_player"`
	BlackPlayer playerDTO          `json:"black_player"`
	History     []transformationDTO `json:"history"`
	Future      []transformationDTO `json:"future"`
	ReadOnly    bool               `json:"read_only"`
}

type stateDTO struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Round   int    `json:"round"`
}

type boardDTO struct {
	Active   []pieceDTO `json:"active"`
	Captured []pieceDTO `json:"captured"`
}

type pieceDTO struct {
	Color     string `json:"color"`
	Kind      string `json:"kind"`
	Position  string `json:"position"`
	ID        string `json:"id"`
	MoveCount int    `json:"move_count"`
	EnPassant *bool  `json:"en_passant,omitempty"`
}

type rookSubMoveDTO struct {
	RookID string `json:"rook_id"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type moveDTO struct {
	Color             string          `json:"color"`
	Kind              string          `json:"kind"`
	From              string          `json:"from"`
	To                string          `json:"to"`
	PieceID           string          `json:"piece_id"`
	WillCheckOpponent bool            `json:"will_check_opponent"`
	CapturedPieceID   string          `json:"captured_piece_id,omitempty"`
	RookSubMove       *rookSubMoveDTO `json:"rook_sub_move,omitempty"`
}

type transformationDTO struct {
	Timestamp int64   `json:"timestamp"`
	Move      moveDTO `json:"move"`
	StateKind string  `json:"state_kind"`
	Subject   string  `json:"subject"`
	Round     int     `json:"round"`
}

type playerDTO struct {
	Color string `json:"color"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Encode produces the logical snapshot for g.
func Encode(g *Game) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dto := snapshotDTO{
		Name:        g.Name(),
		State:       encodeState(g.state),
		Board:       encodeBoard(g.board),
		WhitePlayer: encodePlayer(g.white),
		BlackPlayer: encodePlayer(g.black),
		History:     encodeTransformations(g.history),
		Future:      encodeTransformations(g.future),
		ReadOnly:    g.readOnly,
	}
	return json.Marshal(dto)
}

func encodeState(s State) stateDTO {
	return stateDTO{Kind: s.Kind.String(), Subject: s.Subject.String(), Round: s.Round}
}

func encodeBoard(b *board.Board) boardDTO {
	return boardDTO{Active: encodePieces(b.Active()), Captured: encodePieces(b.Captured())}
}

func encodePieces(pieces []*board.Piece) []pieceDTO {
	out := make([]pieceDTO, 0, len(pieces))
	for _, p := range pieces {
		dto := pieceDTO{
			Color:     p.Color.String(),
			Kind:      p.Kind.String(),
			Position:  p.Position.String(),
			ID:        p.ID.String(),
			MoveCount: p.MoveCount,
		}
		if p.Kind == board.Pawn {
			ep := p.EnPassant
			dto.EnPassant = &ep
		}
		out = append(out, dto)
	}
	return out
}

func encodePlayer(p Player) playerDTO {
	return playerDTO{Color: p.Color().String(), Kind: p.Kind().String(), Name: p.Name(), Score: p.Score()}
}

func encodeTransformations(ts []Transformation) []transformationDTO {
	out := make([]transformationDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, transformationDTO{
			Timestamp: t.Timestamp.UnixMilli(),
			Move:      encodeMove(t.Move),
			StateKind: t.PreState.Kind.String(),
			Subject:   t.PreState.Subject.String(),
			Round:     t.PreState.Round,
		})
	}
	return out
}

func encodeMove(m board.Move) moveDTO {
	dto := moveDTO{
		Color:             m.Color.String(),
		Kind:              m.Kind.String(),
		From:              m.From.String(),
		To:                m.To.String(),
		PieceID:           m.PieceID.String(),
		WillCheckOpponent: m.WillCheckOpponent,
	}
	if m.IsCaptureLike() {
		dto.CapturedPieceID = m.CapturedID.String()
	}
	if m.Kind == board.Castling {
		dto.RookSubMove = &rookSubMoveDTO{RookID: m.RookID.String(), From: m.RookFrom.String(), To: m.RookTo.String()}
	}
	return dto
}

// PlayerFactory constructs a non-human Player during Decode; the game
// package itself only knows how to reconstruct HumanPlayer.
type PlayerFactory func(kind PlayerKind, name string, color board.Color) (Player, error)

// Decode reconstructs a Game from a logical snapshot, preserving piece
// identifiers so that every Transformation's references resolve against the
// decoded board.
func Decode(data []byte, factory PlayerFactory) (*Game, error) {
	var dto snapshotDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, corerr.Wrap(corerr.Format, err, "invalid snapshot JSON")
	}

	b, err := decodeBoard(dto.Board)
	if err != nil {
		return nil, err
	}

	white, err := decodePlayer(dto.WhitePlayer, board.White, factory)
	if err != nil {
		return nil, err
	}
	black, err := decodePlayer(dto.BlackPlayer, board.Black, factory)
	if err != nil {
		return nil, err
	}

	state, err := decodeState(dto.State)
	if err != nil {
		return nil, err
	}

	history, err := decodeTransformations(b, dto.History)
	if err != nil {
		return nil, err
	}
	future, err := decodeTransformations(b, dto.Future)
	if err != nil {
		return nil, err
	}

	g := &Game{
		name:     lang.Some(dto.Name),
		board:    b,
		state:    state,
		white:    white,
		black:    black,
		history:  history,
		future:   future,
		readOnly: dto.ReadOnly,
		playing:  true,
	}
	return g, nil
}

func decodeState(dto stateDTO) (State, error) {
	kind, err := parseStateKind(dto.Kind)
	if err != nil {
		return State{}, err
	}
	subject, err := parseColor(dto.Subject)
	if err != nil {
		return State{}, err
	}
	return State{Kind: kind, Subject: subject, Round: dto.Round}, nil
}

func decodeBoard(dto boardDTO) (*board.Board, error) {
	b := board.NewBoard()
	// Captured pieces are placed (and immediately captured) before the active
	// ones: Place vacates the target square, and a captured piece keeps the
	// square it was taken on, which an active piece may now occupy.
	for _, pd := range dto.Captured {
		p, err := decodePiece(pd)
		if err != nil {
			return nil, err
		}
		b.Place(p)
		if err := b.Capture(p); err != nil {
			return nil, corerr.Wrap(corerr.Format, err, "invalid captured piece %v", pd.ID)
		}
	}
	for _, pd := range dto.Active {
		p, err := decodePiece(pd)
		if err != nil {
			return nil, err
		}
		b.Place(p)
	}
	return b, nil
}

func decodePiece(dto pieceDTO) (*board.Piece, error) {
	color, err := parseColor(dto.Color)
	if err != nil {
		return nil, err
	}
	kind, err := parseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	pos, err := board.ParsePosition(dto.Position)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, corerr.Wrap(corerr.Format, err, "invalid piece id %v", dto.ID)
	}

	p := &board.Piece{ID: id, Kind: kind, Color: color, Position: pos, MoveCount: dto.MoveCount}
	if dto.EnPassant != nil {
		p.EnPassant = *dto.EnPassant
	}
	return p, nil
}

func decodePlayer(dto playerDTO, expected board.Color, factory PlayerFactory) (Player, error) {
	color, err := parseColor(dto.Color)
	if err != nil {
		return nil, err
	}
	if color != expected {
		return nil, corerr.New(corerr.Format, "player color %v does not match slot %v", color, expected)
	}

	switch dto.Kind {
	case HumanKind.String():
		p := NewHumanPlayer(dto.Name, color)
		p.AddScore(dto.Score)
		return p, nil
	default:
		kind, err := parsePlayerKind(dto.Kind)
		if err != nil {
			return nil, err
		}
		if factory == nil {
			return nil, corerr.New(corerr.Format, "no factory supplied for player kind %v", dto.Kind)
		}
		p, err := factory(kind, dto.Name, color)
		if err != nil {
			return nil, corerr.Wrap(corerr.Format, err, "player factory failed")
		}
		p.AddScore(dto.Score)
		return p, nil
	}
}

func decodeTransformations(b *board.Board, dtos []transformationDTO) ([]Transformation, error) {
	out := make([]Transformation, 0, len(dtos))
	for _, td := range dtos {
		move, err := decodeMove(b, td.Move)
		if err != nil {
			return nil, err
		}
		kind, err := parseStateKind(td.StateKind)
		if err != nil {
			return nil, err
		}
		subject, err := parseColor(td.Subject)
		if err != nil {
			return nil, err
		}
		out = append(out, Transformation{
			Timestamp: time.UnixMilli(td.Timestamp),
			Move:      move,
			PreState:  State{Kind: kind, Subject: subject, Round: td.Round},
		})
	}
	return out, nil
}

func decodeMove(b *board.Board, dto moveDTO) (board.Move, error) {
	color, err := parseColor(dto.Color)
	if err != nil {
		return board.Move{}, err
	}
	kind, err := parseMoveKind(dto.Kind)
	if err != nil {
		return board.Move{}, err
	}
	from, err := board.ParsePosition(dto.From)
	if err != nil {
		return board.Move{}, err
	}
	to, err := board.ParsePosition(dto.To)
	if err != nil {
		return board.Move{}, err
	}
	pieceID, err := uuid.Parse(dto.PieceID)
	if err != nil {
		return board.Move{}, corerr.Wrap(corerr.Format, err, "invalid piece id %v", dto.PieceID)
	}

	if mover, ok := b.PieceWith(pieceID); ok && mover.Color != color {
		return board.Move{}, corerr.New(corerr.Format, "move piece %v belongs to the opponent", pieceID)
	}

	m := board.Move{Kind: kind, Color: color, PieceID: pieceID, From: from, To: to, WillCheckOpponent: dto.WillCheckOpponent}

	if m.IsCaptureLike() {
		capturedID, err := uuid.Parse(dto.CapturedPieceID)
		if err != nil {
			return board.Move{}, corerr.Wrap(corerr.Format, err, "invalid captured piece id %v", dto.CapturedPieceID)
		}
		if captured, ok := b.PieceWith(capturedID); ok && captured.Color == color {
			return board.Move{}, corerr.New(corerr.Format, "captured piece %v is allied to the mover", capturedID)
		}
		m.CapturedID = capturedID
	}

	if kind == board.Castling {
		if dto.RookSubMove == nil {
			return board.Move{}, corerr.New(corerr.Format, "castling move missing rook_sub_move")
		}
		rookID, err := uuid.Parse(dto.RookSubMove.RookID)
		if err != nil {
			return board.Move{}, corerr.Wrap(corerr.Format, err, "invalid rook id %v", dto.RookSubMove.RookID)
		}
		rookFrom, err := board.ParsePosition(dto.RookSubMove.From)
		if err != nil {
			return board.Move{}, err
		}
		rookTo, err := board.ParsePosition(dto.RookSubMove.To)
		if err != nil {
			return board.Move{}, err
		}
		m.RookID, m.RookFrom, m.RookTo = rookID, rookFrom, rookTo
	}

	return m, nil
}

func parseColor(s string) (board.Color, error) {
	switch s {
	case board.White.String():
		return board.White, nil
	case board.Black.String():
		return board.Black, nil
	default:
		return 0, corerr.New(corerr.Format, "invalid color %q", s)
	}
}

func parseKind(s string) (board.Kind, error) {
	for k := board.Pawn; k <= board.King; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, corerr.New(corerr.Format, "invalid piece kind %q", s)
}

func parseMoveKind(s string) (board.MoveKind, error) {
	for k := board.RegularMove; k <= board.Castling; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, corerr.New(corerr.Format, "invalid move kind %q", s)
}

func parseStateKind(s string) (StateKind, error) {
	for k := Regular; k <= AgreedDrawn; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, corerr.New(corerr.Format, "invalid state kind %q", s)
}

func parsePlayerKind(s string) (PlayerKind, error) {
	for k := HumanKind; k <= MinimaxAgentKind; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, corerr.New(corerr.Format, "invalid player kind %q", s)
}
