// FILE: internal/game/game_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess/internal/board"
	"chess/internal/core"
)

func attempt(t *testing.T, g *Game, move string) core.Status {
	t.Helper()
	status, err := g.AttemptMoveStr(move)
	require.NoError(t, err, "move %s", move)
	return status
}

func TestNewGame(t *testing.T) {
	g := New()

	assert.Equal(t, core.Status{Kind: core.StatusInProgress}, g.Status())
	assert.Equal(t, core.White, g.Turn())
	assert.Equal(t, board.StartingFEN, g.FEN())
	assert.Empty(t, g.Moves())
}

func TestAttemptMoveAlternatesTurns(t *testing.T) {
	g := New()

	status := attempt(t, g, "e2e4")
	assert.Equal(t, core.StatusInProgress, status.Kind)
	assert.Equal(t, core.Black, g.Turn())

	status = attempt(t, g, "e7e5")
	assert.Equal(t, core.StatusInProgress, status.Kind)
	assert.Equal(t, core.White, g.Turn())

	assert.Equal(t, []string{"e2e4", "e7e5"}, g.Moves())
}

func TestSpaceSeparatedNotationAccepted(t *testing.T) {
	g := New()

	_, err := g.AttemptMoveStr("e2 e4")

	require.NoError(t, err)
	assert.Equal(t, []string{"e2e4"}, g.Moves())
}

func TestCheckIsReported(t *testing.T) {
	// Given: a quick queen sortie giving check
	g := New()
	attempt(t, g, "e2e4")
	attempt(t, g, "f7f6")
	status := attempt(t, g, "d1h5")

	// Then: Black to move is in check
	assert.Equal(t, core.Status{Kind: core.StatusCheck, Color: core.Black}, status)
}

func TestFoolsMate(t *testing.T) {
	// Given: the classic two-move mate
	g := New()
	attempt(t, g, "f2f3")
	attempt(t, g, "e7e5")
	attempt(t, g, "g2g4")
	status := attempt(t, g, "d8h4")

	// Then: Black wins by checkmate
	require.Equal(t, core.StatusCheckmate, status.Kind)
	assert.Equal(t, core.Black, status.Color)
	assert.Equal(t, "black wins", status.String())

	// Then: any further attempt fails with GameOver and changes nothing
	fen := g.FEN()
	_, err := g.AttemptMoveStr("e1f2")
	require.ErrorIs(t, err, core.ErrGameOver)
	assert.Equal(t, fen, g.FEN())
}

func TestStalemate(t *testing.T) {
	// Given: a position where the queen move b5b6 leaves the black king
	// with no moves but no check
	g, err := NewFromFEN("k7/8/8/1Q6/8/8/8/7K w - - 0 1")
	require.NoError(t, err)

	status, err := g.AttemptMoveStr("b5b6")

	require.NoError(t, err)
	assert.Equal(t, core.Status{Kind: core.StatusStalemate}, status)
	assert.Equal(t, "stalemate", status.String())

	_, err = g.AttemptMoveStr("a8a7")
	require.ErrorIs(t, err, core.ErrGameOver)
}

func TestResumedTerminalPositionIsTerminal(t *testing.T) {
	// Stalemate position with Black to move
	g, err := NewFromFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, core.StatusStalemate, g.Status().Kind)
	_, err = g.AttemptMoveStr("a8a7")
	require.ErrorIs(t, err, core.ErrGameOver)
}

func TestAutoPromotionToQueen(t *testing.T) {
	// Given: a white pawn on the seventh rank
	g, err := NewFromFEN("7k/4P3/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	// When: pushing to the final rank without a promotion choice
	_, err = g.AttemptMove(mustSq(t, "e7"), mustSq(t, "e8"), core.NoKind)
	require.NoError(t, err)

	// Then: a queen stands on e8
	assert.Equal(t, core.Piece{Kind: core.Queen, Color: core.White}, g.Board().PieceAt(mustSq(t, "e8")))
	assert.Equal(t, []string{"e7e8q"}, g.Moves())
}

func TestUnderpromotion(t *testing.T) {
	g, err := NewFromFEN("7k/4P3/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	_, err = g.AttemptMoveStr("e7e8n")
	require.NoError(t, err)

	assert.Equal(t, core.Piece{Kind: core.Knight, Color: core.White}, g.Board().PieceAt(mustSq(t, "e8")))
}

func TestIllegalMoveRejectionIsIdempotent(t *testing.T) {
	g := New()
	fen := g.FEN()

	// When: the illegal pawn jump e2e5 is attempted twice
	_, err1 := g.AttemptMoveStr("e2e5")
	_, err2 := g.AttemptMoveStr("e2e5")

	// Then: same error both times, board and turn untouched
	require.ErrorIs(t, err1, core.ErrNotLegal)
	require.ErrorIs(t, err2, core.ErrNotLegal)
	assert.Equal(t, fen, g.FEN())
	assert.Equal(t, core.White, g.Turn())
	assert.Empty(t, g.Moves())
}

func TestBoardAccessorReturnsCopy(t *testing.T) {
	g := New()

	b := g.Board()
	b.MoveRaw(mustSq(t, "e2"), mustSq(t, "e4"))

	assert.Equal(t, board.StartingFEN, g.FEN())
}

func TestUndo(t *testing.T) {
	g := New()
	attempt(t, g, "e2e4")
	attempt(t, g, "e7e5")

	require.NoError(t, g.Undo(1))

	assert.Equal(t, []string{"e2e4"}, g.Moves())
	assert.Equal(t, core.Black, g.Turn())

	t.Run("cannot undo more moves than were played", func(t *testing.T) {
		assert.Error(t, g.Undo(5))
	})

	t.Run("undo out of a terminal state", func(t *testing.T) {
		mate := New()
		attempt(t, mate, "f2f3")
		attempt(t, mate, "e7e5")
		attempt(t, mate, "g2g4")
		attempt(t, mate, "d8h4")

		require.NoError(t, mate.Undo(1))
		assert.Equal(t, core.StatusInProgress, mate.Status().Kind)

		_, err := mate.AttemptMoveStr("h7h6")
		assert.NoError(t, err)
	})
}

func TestReset(t *testing.T) {
	g := New()
	attempt(t, g, "e2e4")

	g.Reset()

	assert.Equal(t, board.StartingFEN, g.FEN())
	assert.Equal(t, core.StatusInProgress, g.Status().Kind)
	assert.Empty(t, g.Moves())
}

func TestNewFromFENRequiresBothKings(t *testing.T) {
	_, err := NewFromFEN("8/8/8/8/8/8/8/K7 w - - 0 1")

	var invariant *core.InvariantError
	require.ErrorAs(t, err, &invariant)
}

func mustSq(t *testing.T, s string) core.Square {
	t.Helper()
	sq, err := core.ParseSquare(s)
	require.NoError(t, err)
	return sq
}
