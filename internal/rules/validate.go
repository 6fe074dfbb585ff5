// FILE: internal/rules/validate.go
package rules

import (
	"chess/internal/board"
	"chess/internal/core"
)

// Validate decides whether mv is legal on b. On success it returns the
// move with the promotion choice resolved (absent defaults to Queen on
// a promoting move). b is never mutated; validation fully precedes
// application.
func Validate(b *board.Board, mv core.Move) (core.Move, error) {
	p := b.PieceAt(mv.From)
	if p.IsEmpty() || p.Color != b.SideToMove() {
		return core.Move{}, core.ErrNoPieceOrWrongColor
	}

	promoting := p.Kind == core.Pawn && isPromotionRank(mv.To.Rank, p.Color)
	if promoting {
		switch {
		case mv.Promotion == core.NoKind:
			mv.Promotion = core.Queen
		case !mv.Promotion.Promotable():
			return core.Move{}, core.ErrInvalidPromotion
		}
	}

	for _, legal := range LegalMoves(b) {
		if legal == mv {
			return mv, nil
		}
	}
	return core.Move{}, core.ErrNotLegal
}

// Apply commits a validated move: raw move, promotion replacement, then
// turn flip. It must only be called with the move Validate returned.
func Apply(b *board.Board, mv core.Move) {
	mover := b.SideToMove()
	b.MoveRaw(mv.From, mv.To)
	if mv.Promotion != core.NoKind {
		b.SetPiece(mv.To, core.Piece{Kind: mv.Promotion, Color: mover})
	}
	b.SetSideToMove(mover.Other())
}
