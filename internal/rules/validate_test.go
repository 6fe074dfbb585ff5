// FILE: internal/rules/validate_test.go
package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess/internal/board"
	"chess/internal/core"
)

func TestValidateRejectsEmptyOrWrongColorSource(t *testing.T) {
	b := board.New()

	// Empty square
	_, err := Validate(b, core.Move{From: mustSquare(t, "e4"), To: mustSquare(t, "e5")})
	require.ErrorIs(t, err, core.ErrNoPieceOrWrongColor)

	// Opponent's piece while White is to move
	_, err = Validate(b, core.Move{From: mustSquare(t, "e7"), To: mustSquare(t, "e5")})
	require.ErrorIs(t, err, core.ErrNoPieceOrWrongColor)
}

func TestValidateRejectsIllegalPattern(t *testing.T) {
	// Given: the starting position
	b := board.New()
	before := b.FEN()

	// When: attempting the illegal pawn jump e2e5
	_, err := Validate(b, core.Move{From: mustSquare(t, "e2"), To: mustSquare(t, "e5")})

	// Then: the move is rejected and the board is untouched
	require.ErrorIs(t, err, core.ErrNotLegal)
	assert.Equal(t, before, b.FEN())
}

func TestValidateDefaultsPromotionToQueen(t *testing.T) {
	b := mustBoard(t, "k7/4P3/8/8/8/8/8/K7 w - - 0 1")

	mv, err := Validate(b, core.Move{From: mustSquare(t, "e7"), To: mustSquare(t, "e8")})

	require.NoError(t, err)
	assert.Equal(t, core.Queen, mv.Promotion)
}

func TestValidatePromotionChoices(t *testing.T) {
	b := mustBoard(t, "k7/4P3/8/8/8/8/8/K7 w - - 0 1")

	t.Run("underpromotion to knight is accepted", func(t *testing.T) {
		mv, err := Validate(b, core.Move{From: mustSquare(t, "e7"), To: mustSquare(t, "e8"), Promotion: core.Knight})
		require.NoError(t, err)
		assert.Equal(t, core.Knight, mv.Promotion)
	})

	t.Run("king is not a promotion target", func(t *testing.T) {
		_, err := Validate(b, core.Move{From: mustSquare(t, "e7"), To: mustSquare(t, "e8"), Promotion: core.King})
		require.ErrorIs(t, err, core.ErrInvalidPromotion)
	})

	t.Run("pawn is not a promotion target", func(t *testing.T) {
		_, err := Validate(b, core.Move{From: mustSquare(t, "e7"), To: mustSquare(t, "e8"), Promotion: core.Pawn})
		require.ErrorIs(t, err, core.ErrInvalidPromotion)
	})
}

func TestValidateRejectsPromotionOnOrdinaryMove(t *testing.T) {
	b := board.New()

	_, err := Validate(b, core.Move{From: mustSquare(t, "e2"), To: mustSquare(t, "e4"), Promotion: core.Queen})

	require.ErrorIs(t, err, core.ErrNotLegal)
}

func TestApplyCommitsMoveAndFlipsTurn(t *testing.T) {
	b := board.New()

	mv, err := Validate(b, core.Move{From: mustSquare(t, "g1"), To: mustSquare(t, "f3")})
	require.NoError(t, err)
	Apply(b, mv)

	assert.Equal(t, core.Piece{Kind: core.Knight, Color: core.White}, b.PieceAt(mustSquare(t, "f3")))
	assert.True(t, b.PieceAt(mustSquare(t, "g1")).IsEmpty())
	assert.Equal(t, core.Black, b.SideToMove())
}

func TestApplyReplacesPromotedPawn(t *testing.T) {
	b := mustBoard(t, "k7/4P3/8/8/8/8/8/K7 w - - 0 1")

	mv, err := Validate(b, core.Move{From: mustSquare(t, "e7"), To: mustSquare(t, "e8"), Promotion: core.Rook})
	require.NoError(t, err)
	Apply(b, mv)

	assert.Equal(t, core.Piece{Kind: core.Rook, Color: core.White}, b.PieceAt(mustSquare(t, "e8")))
	assert.True(t, b.PieceAt(mustSquare(t, "e7")).IsEmpty())
}

func TestApplyCaptureOverwritesOccupant(t *testing.T) {
	// Given: a white rook facing a black pawn
	b := mustBoard(t, "k7/8/8/3p4/8/8/3R4/K7 w - - 0 1")

	mv, err := Validate(b, core.Move{From: mustSquare(t, "d2"), To: mustSquare(t, "d5")})
	require.NoError(t, err)
	Apply(b, mv)

	assert.Equal(t, core.Piece{Kind: core.Rook, Color: core.White}, b.PieceAt(mustSquare(t, "d5")))
}
