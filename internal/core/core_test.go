// FILE: internal/core/core_test.go
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		input string
		file  int
		rank  int
		ok    bool
	}{
		{"a1", 0, 0, true},
		{"h8", 7, 7, true},
		{"e4", 4, 3, true},
		{"i1", 0, 0, false},
		{"a9", 0, 0, false},
		{"a", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tc := range tests {
		sq, err := ParseSquare(tc.input)
		if !tc.ok {
			assert.Error(t, err, tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, Square{File: tc.file, Rank: tc.rank}, sq)
		assert.Equal(t, tc.input, sq.String())
	}
}

func TestParseMoveFormats(t *testing.T) {
	// Compact and spaced notation denote the same move
	compact, err := ParseMove("e2e4")
	require.NoError(t, err)
	spaced, err := ParseMove("e2 e4")
	require.NoError(t, err)
	assert.Equal(t, compact, spaced)
	assert.Equal(t, "e2e4", compact.String())
}

func TestParseMovePromotion(t *testing.T) {
	mv, err := ParseMove("e7e8q")
	require.NoError(t, err)
	assert.Equal(t, Queen, mv.Promotion)
	assert.Equal(t, "e7e8q", mv.String())

	mv, err = ParseMove("a2a1n")
	require.NoError(t, err)
	assert.Equal(t, Knight, mv.Promotion)

	_, err = ParseMove("e7e8k")
	assert.Error(t, err)
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "e2", "e2e", "e2e4e5", "z9z9"} {
		_, err := ParseMove(input)
		assert.Error(t, err, input)
	}
}

func TestColorOther(t *testing.T) {
	assert.Equal(t, Black, White.Other())
	assert.Equal(t, White, Black.Other())
	assert.Equal(t, "w", White.String())
	assert.Equal(t, "b", Black.String())
}

func TestPieceLetters(t *testing.T) {
	assert.Equal(t, byte('K'), Piece{Kind: King, Color: White}.Letter())
	assert.Equal(t, byte('q'), Piece{Kind: Queen, Color: Black}.Letter())
	assert.Equal(t, byte('.'), Piece{}.Letter())

	p, ok := PieceFromLetter('N')
	require.True(t, ok)
	assert.Equal(t, Piece{Kind: Knight, Color: White}, p)

	p, ok = PieceFromLetter('p')
	require.True(t, ok)
	assert.Equal(t, Piece{Kind: Pawn, Color: Black}, p)

	_, ok = PieceFromLetter('x')
	assert.False(t, ok)
}

func TestPromotable(t *testing.T) {
	assert.True(t, Queen.Promotable())
	assert.True(t, Knight.Promotable())
	assert.False(t, King.Promotable())
	assert.False(t, Pawn.Promotable())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "ongoing", Status{Kind: StatusInProgress}.String())
	assert.Equal(t, "check", Status{Kind: StatusCheck, Color: White}.String())
	assert.Equal(t, "white wins", Status{Kind: StatusCheckmate, Color: White}.String())
	assert.Equal(t, "black wins", Status{Kind: StatusCheckmate, Color: Black}.String())
	assert.Equal(t, "stalemate", Status{Kind: StatusStalemate}.String())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, Status{Kind: StatusInProgress}.Terminal())
	assert.False(t, Status{Kind: StatusCheck}.Terminal())
	assert.True(t, Status{Kind: StatusCheckmate}.Terminal())
	assert.True(t, Status{Kind: StatusStalemate}.Terminal())
}
