// FILE: internal/board/board.go
package board

import (
	"fmt"
	"strings"

	"chess/internal/core"
)

// Board holds the 8x8 piece placement and the side to move. It has no
// rule knowledge; mutators write unconditionally.
type Board struct {
	squares [8][8]core.Piece // [rank][file], rank 0 is White's first rank
	turn    core.Color
}

// New returns a board with the standard initial placement, White to move.
func New() *Board {
	b, err := ParseFEN(StartingFEN)
	if err != nil {
		panic(fmt.Sprintf("starting FEN failed to parse: %v", err))
	}
	return b
}

// PieceAt returns the piece on sq, or core.NoPiece for an empty square.
func (b *Board) PieceAt(sq core.Square) core.Piece {
	if !sq.InBounds() {
		return core.NoPiece
	}
	return b.squares[sq.Rank][sq.File]
}

// SetPiece writes p to sq unconditionally. core.NoPiece clears the square.
func (b *Board) SetPiece(sq core.Square, p core.Piece) {
	if !sq.InBounds() {
		return
	}
	b.squares[sq.Rank][sq.File] = p
}

// MoveRaw moves whatever occupies from to to, overwriting any occupant
// of to and clearing from. It does not validate.
func (b *Board) MoveRaw(from, to core.Square) {
	b.SetPiece(to, b.PieceAt(from))
	b.SetPiece(from, core.NoPiece)
}

// KingSquare returns the square of the king of the given color. A board
// without that king is malformed and yields an InvariantError.
func (b *Board) KingSquare(c core.Color) (core.Square, error) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.Kind == core.King && p.Color == c {
				return core.Square{File: file, Rank: rank}, nil
			}
		}
	}
	return core.Square{}, &core.InvariantError{Reason: fmt.Sprintf("no %s king on board", c)}
}

// SideToMove returns the color to move.
func (b *Board) SideToMove() core.Color {
	return b.turn
}

// SetSideToMove sets the color to move.
func (b *Board) SetSideToMove(c core.Color) {
	b.turn = c
}

// Clone returns an independent copy. The board is value-like: mutating
// the clone never affects the original.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// ToASCII creates an ASCII representation of the board, rank 8 on top.
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			sb.WriteString(fmt.Sprintf("%c ", b.squares[rank][file].Letter()))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
