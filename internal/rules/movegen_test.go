// FILE: internal/rules/movegen_test.go
package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess/internal/board"
	"chess/internal/core"
)

func mustSquare(t *testing.T, s string) core.Square {
	t.Helper()
	sq, err := core.ParseSquare(s)
	require.NoError(t, err)
	return sq
}

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	require.NoError(t, err)
	return b
}

func TestStartingPositionHasTwentyLegalMoves(t *testing.T) {
	// Given: the standard starting position
	b := board.New()

	// When: generating legal moves for White
	moves := LegalMoves(b)

	// Then: 16 pawn moves plus 4 knight moves
	require.Len(t, moves, 20)
}

func TestLegalMovesNeverLeaveOwnKingAttacked(t *testing.T) {
	positions := []string{
		board.StartingFEN,
		"4r3/8/8/8/8/8/4R3/4K2k w - - 0 1",          // rook pinned on the e-file
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1", // queen check
		"k7/8/8/3q4/8/8/3P4/3K4 w - - 0 1",
	}

	for _, fen := range positions {
		b := mustBoard(t, fen)
		us := b.SideToMove()

		for _, mv := range LegalMoves(b) {
			scratch := b.Clone()
			scratch.MoveRaw(mv.From, mv.To)
			assert.False(t, InCheck(scratch, us), "move %s on %q leaves own king attacked", mv, fen)
		}
	}
}

func TestPinnedRookCannotLeaveFile(t *testing.T) {
	// Given: a white rook on e2 pinned against the king on e1 by a rook on e8
	b := mustBoard(t, "4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")

	// When: generating legal moves for the pinned rook
	moves := LegalMovesFrom(b, mustSquare(t, "e2"))

	// Then: every destination stays on the e-file
	require.NotEmpty(t, moves)
	for _, mv := range moves {
		assert.Equal(t, 4, mv.To.File, "pinned rook escaped the file with %s", mv)
	}
}

func TestPawnPseudoMoves(t *testing.T) {
	t.Run("single and double push from start rank", func(t *testing.T) {
		b := board.New()
		moves := PseudoMoves(b, mustSquare(t, "e2"))
		assert.ElementsMatch(t, []core.Square{mustSquare(t, "e3"), mustSquare(t, "e4")}, moves)
	})

	t.Run("double push blocked by intermediate piece", func(t *testing.T) {
		b := mustBoard(t, "k7/8/8/8/8/4n3/4P3/K7 w - - 0 1")
		moves := PseudoMoves(b, mustSquare(t, "e2"))
		assert.Empty(t, moves)
	})

	t.Run("diagonal capture only onto enemy pieces", func(t *testing.T) {
		b := mustBoard(t, "k7/8/8/8/3p1N2/4P3/8/K7 w - - 0 1")
		moves := PseudoMoves(b, mustSquare(t, "e3"))
		// forward push plus capture of the d4 pawn; f4 holds our own knight
		assert.ElementsMatch(t, []core.Square{mustSquare(t, "e4"), mustSquare(t, "d4")}, moves)
	})

	t.Run("no double push off the start rank", func(t *testing.T) {
		b := mustBoard(t, "k7/8/8/8/8/4P3/8/K7 w - - 0 1")
		moves := PseudoMoves(b, mustSquare(t, "e3"))
		assert.ElementsMatch(t, []core.Square{mustSquare(t, "e4")}, moves)
	})
}

func TestKnightJumps(t *testing.T) {
	// Given: a knight in the corner with one target blocked by its own pawn
	b := mustBoard(t, "k7/8/8/8/8/1P6/8/N6K w - - 0 1")

	// When: generating pseudo moves from a1
	moves := PseudoMoves(b, mustSquare(t, "a1"))

	// Then: only c2 remains, b3 holds its own pawn
	assert.ElementsMatch(t, []core.Square{mustSquare(t, "c2")}, moves)
}

func TestSliderStopsAtBlockers(t *testing.T) {
	// Given: a rook with an enemy piece north and an own piece east
	b := mustBoard(t, "k7/8/3p4/8/3R1N2/8/8/K7 w - - 0 1")

	moves := PseudoMoves(b, mustSquare(t, "d4"))

	// Then: north ray includes the capture on d6 but not d7+
	assert.Contains(t, moves, mustSquare(t, "d6"))
	assert.NotContains(t, moves, mustSquare(t, "d7"))
	// east ray stops before the own knight on f4
	assert.Contains(t, moves, mustSquare(t, "e4"))
	assert.NotContains(t, moves, mustSquare(t, "f4"))
}

func TestIsSquareAttacked(t *testing.T) {
	b := mustBoard(t, "k7/8/8/8/8/8/4P3/K6N w - - 0 1")

	// Pawn attacks diagonally, not forward
	assert.True(t, IsSquareAttacked(b, mustSquare(t, "d3"), core.White))
	assert.True(t, IsSquareAttacked(b, mustSquare(t, "f3"), core.White))
	assert.False(t, IsSquareAttacked(b, mustSquare(t, "e3"), core.White))

	// Knight from h1
	assert.True(t, IsSquareAttacked(b, mustSquare(t, "g3"), core.White))
	assert.False(t, IsSquareAttacked(b, mustSquare(t, "h3"), core.White))
}

func TestPromotionMovesExpandPerTarget(t *testing.T) {
	// Given: a white pawn one step from the farthest rank
	b := mustBoard(t, "k7/4P3/8/8/8/8/8/K7 w - - 0 1")

	// When: generating legal moves from e7
	moves := LegalMovesFrom(b, mustSquare(t, "e7"))

	// Then: one move per promotion target, never a bare pawn move
	kinds := make([]core.PieceKind, 0, len(moves))
	for _, mv := range moves {
		assert.Equal(t, mustSquare(t, "e8"), mv.To)
		kinds = append(kinds, mv.Promotion)
	}
	assert.ElementsMatch(t, []core.PieceKind{core.Knight, core.Bishop, core.Rook, core.Queen}, kinds)
}

func TestKingCannotStepIntoAttack(t *testing.T) {
	// Given: kings facing off with one file between them
	b := mustBoard(t, "8/8/8/8/8/8/k7/2K5 w - - 0 1")

	moves := LegalMovesFrom(b, mustSquare(t, "c1"))

	// Then: b1 and b2 are covered by the black king
	for _, mv := range moves {
		assert.NotEqual(t, mustSquare(t, "b1"), mv.To)
		assert.NotEqual(t, mustSquare(t, "b2"), mv.To)
	}
	assert.NotEmpty(t, moves)
}
