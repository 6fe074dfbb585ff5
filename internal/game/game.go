// FILE: internal/game/game.go

// Package game orchestrates a single chess game: one board, turn
// sequencing and terminal-condition detection. A Game is the sole entry
// point front-ends use; it assumes a single caller and defines no
// locking of its own.
package game

import (
	"fmt"

	"chess/internal/board"
	"chess/internal/core"
	"chess/internal/rules"
)

// Snapshot records a position in the game history.
type Snapshot struct {
	FEN          string `json:"fen"`
	PreviousMove string `json:"previousMove"` // move that created this position, empty for initial
}

// Game owns the single live board of a game.
type Game struct {
	board      *board.Board
	status     core.Status
	snapshots  []Snapshot
	lastResult *core.MoveInfo
}

// New starts a standard game: initial placement, White to move.
func New() *Game {
	g, err := NewFromFEN(board.StartingFEN)
	if err != nil {
		panic(fmt.Sprintf("starting position rejected: %v", err))
	}
	return g
}

// NewFromFEN starts a game from an arbitrary position. The initial
// status is derived immediately, so resuming a mate or stalemate
// position yields a terminal game.
func NewFromFEN(fen string) (*Game, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if _, err := b.KingSquare(core.White); err != nil {
		return nil, err
	}
	if _, err := b.KingSquare(core.Black); err != nil {
		return nil, err
	}

	return &Game{
		board:     b,
		status:    deriveStatus(b),
		snapshots: []Snapshot{{FEN: b.FEN()}},
	}, nil
}

// AttemptMove validates and applies a move, then recomputes the game
// status. On any rejection the board and status are unchanged.
func (g *Game) AttemptMove(from, to core.Square, promotion core.PieceKind) (core.Status, error) {
	if g.status.Terminal() {
		return g.status, core.ErrGameOver
	}

	mover := g.board.SideToMove()
	mv, err := rules.Validate(g.board, core.Move{From: from, To: to, Promotion: promotion})
	if err != nil {
		return g.status, err
	}

	rules.Apply(g.board, mv)
	g.status = deriveStatus(g.board)
	g.snapshots = append(g.snapshots, Snapshot{FEN: g.board.FEN(), PreviousMove: mv.String()})
	g.lastResult = &core.MoveInfo{Move: mv.String(), PlayerColor: mover.String()}

	return g.status, nil
}

// AttemptMoveStr parses coordinate notation ("e2e4", "e2 e4", "e7e8q")
// and attempts the move.
func (g *Game) AttemptMoveStr(move string) (core.Status, error) {
	mv, err := core.ParseMove(move)
	if err != nil {
		return g.status, fmt.Errorf("%w: %v", core.ErrNotLegal, err)
	}
	return g.AttemptMove(mv.From, mv.To, mv.Promotion)
}

// deriveStatus recomputes the status for the side to move. Zero legal
// moves means checkmate (the other color wins) when in check, else
// stalemate.
func deriveStatus(b *board.Board) core.Status {
	side := b.SideToMove()
	inCheck := rules.InCheck(b, side)

	if len(rules.LegalMoves(b)) == 0 {
		if inCheck {
			return core.Status{Kind: core.StatusCheckmate, Color: side.Other()}
		}
		return core.Status{Kind: core.StatusStalemate}
	}
	if inCheck {
		return core.Status{Kind: core.StatusCheck, Color: side}
	}
	return core.Status{Kind: core.StatusInProgress}
}

// Board returns an independent copy for rendering. Callers cannot
// mutate game state through it.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

// Status returns the current derived status.
func (g *Game) Status() core.Status {
	return g.status
}

// Turn returns the color to move.
func (g *Game) Turn() core.Color {
	return g.board.SideToMove()
}

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string {
	return g.board.FEN()
}

// InitialFEN returns the position the game started from.
func (g *Game) InitialFEN() string {
	return g.snapshots[0].FEN
}

// Moves returns the moves applied so far in coordinate notation.
func (g *Game) Moves() []string {
	moves := []string{}
	for i := 1; i < len(g.snapshots); i++ {
		moves = append(moves, g.snapshots[i].PreviousMove)
	}
	return moves
}

// LastResult returns info about the most recently applied move, or nil.
func (g *Game) LastResult() *core.MoveInfo {
	return g.lastResult
}

// Undo reverts the last count moves by restoring the snapshot history.
func (g *Game) Undo(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}

	available := len(g.snapshots) - 1
	if available < count {
		return fmt.Errorf("cannot undo %d moves: only %d moves available", count, available)
	}

	g.snapshots = g.snapshots[:len(g.snapshots)-count]
	b, err := board.ParseFEN(g.snapshots[len(g.snapshots)-1].FEN)
	if err != nil {
		return fmt.Errorf("corrupt snapshot: %w", err)
	}
	g.board = b
	g.status = deriveStatus(b)
	g.lastResult = nil
	return nil
}

// Reset discards the game and starts a fresh standard one.
func (g *Game) Reset() {
	fresh := New()
	*g = *fresh
}
