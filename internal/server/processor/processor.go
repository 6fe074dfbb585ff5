// FILE: internal/server/processor/processor.go

package processor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"chess/internal/core"
	"chess/internal/game"
	"chess/internal/server/service"
)

// Processor executes commands against the service layer and translates
// rule errors into API error codes.
type Processor struct {
	svc *service.Service
}

// New creates a processor on top of the given service
func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) Response {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdUndoMove:
		return p.handleUndoMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrCodeInvalidRequest)
	}
}

// isFENSafe rejects control characters before the FEN reaches the parser
func (p *Processor) isFENSafe(fen string) bool {
	for _, r := range fen {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func (p *Processor) isMoveSafe(move string) bool {
	for _, r := range move {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// handleCreateGame creates a new game, from the standard position or a
// caller-supplied FEN
func (p *Processor) handleCreateGame(cmd Command) Response {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	fen := strings.TrimSpace(args.FEN)
	if fen != "" && !p.isFENSafe(fen) {
		return p.errorResponse("invalid FEN characters", core.ErrCodeInvalidFEN)
	}

	gameID := p.svc.GenerateGameID()

	g, err := p.svc.CreateGame(gameID, fen)
	if err != nil {
		if fen != "" {
			return p.errorResponse(fmt.Sprintf("invalid FEN: %v", err), core.ErrCodeInvalidFEN)
		}
		return p.errorResponse(fmt.Sprintf("failed to create game: %v", err), core.ErrCodeInternalError)
	}

	return Response{
		Success: true,
		Data:    p.buildGameResponse(gameID, g),
	}
}

// handleGetGame retrieves current game state
func (p *Processor) handleGetGame(cmd Command) Response {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return Response{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

// handleMakeMove validates and applies a move
func (p *Processor) handleMakeMove(cmd Command) Response {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	move := strings.ToLower(strings.TrimSpace(args.Move))
	if !p.isMoveSafe(move) {
		return p.errorResponse("invalid move format", core.ErrCodeInvalidMove)
	}

	_, err := p.svc.Move(cmd.GameID, move)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrGameOver):
			return p.errorResponse("game is over", core.ErrCodeGameOver)
		case errors.Is(err, core.ErrNoPieceOrWrongColor),
			errors.Is(err, core.ErrNotLegal),
			errors.Is(err, core.ErrInvalidPromotion):
			return p.errorResponse(err.Error(), core.ErrCodeInvalidMove)
		case strings.Contains(err.Error(), "not found"):
			return p.errorResponse("game not found", core.ErrCodeGameNotFound)
		default:
			return p.errorResponse(err.Error(), core.ErrCodeInternalError)
		}
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return Response{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

// handleUndoMove reverts game state
func (p *Processor) handleUndoMove(cmd Command) Response {
	args := core.UndoRequest{Count: 1}
	if cmd.Args != nil {
		if req, ok := cmd.Args.(core.UndoRequest); ok {
			args = req
		}
	}

	if err := p.svc.Undo(cmd.GameID, args.Count); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return p.errorResponse("game not found", core.ErrCodeGameNotFound)
		}
		return p.errorResponse(err.Error(), core.ErrCodeInvalidRequest)
	}

	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return Response{
		Success: true,
		Data:    p.buildGameResponse(cmd.GameID, g),
	}
}

// handleDeleteGame removes a game
func (p *Processor) handleDeleteGame(cmd Command) Response {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return Response{
		Success: true,
	}
}

// handleGetBoard returns board visualization
func (p *Processor) handleGetBoard(cmd Command) Response {
	g, err := p.svc.GetGame(cmd.GameID)
	if err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return Response{
		Success: true,
		Data: core.BoardResponse{
			FEN:   g.FEN(),
			Board: g.Board().ToASCII(),
		},
	}
}

// buildGameResponse constructs standard game response
func (p *Processor) buildGameResponse(gameID string, g *game.Game) core.GameResponse {
	resp := core.GameResponse{
		GameID: gameID,
		FEN:    g.FEN(),
		Turn:   g.Turn().String(),
		Status: g.Status().String(),
		Moves:  g.Moves(),
	}

	if result := g.LastResult(); result != nil {
		info := *result
		resp.LastMove = &info
	}

	return resp
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) Response {
	return Response{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
