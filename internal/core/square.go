// FILE: internal/core/square.go
package core

import (
	"fmt"
	"strings"
)

// Square is a board coordinate. File 0-7 maps to a-h, rank 0-7 to 1-8
// counted from White's first rank.
type Square struct {
	File int
	Rank int
}

// InBounds reports whether both components are in [0,7].
func (sq Square) InBounds() bool {
	return sq.File >= 0 && sq.File < 8 && sq.Rank >= 0 && sq.Rank < 8
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.InBounds() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File, '1'+sq.Rank)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square: %q", s)
	}
	sq := Square{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}
	if !sq.InBounds() {
		return Square{}, fmt.Errorf("invalid square: %q", s)
	}
	return sq, nil
}

// Move is a proposed move. Promotion is NoKind unless the caller picks
// an explicit promotion target.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// String returns the move in coordinate notation ("e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(kindLetter(m.Promotion))
	}
	return s
}

// ParseMove parses coordinate notation. Both "e2e4" and "e2 e4" denote
// the same move; a trailing letter selects the promotion piece
// ("e7e8q", "e7 e8 q").
func ParseMove(s string) (Move, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if len(compact) < 4 || len(compact) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}

	from, err := ParseSquare(compact[:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}
	to, err := ParseSquare(compact[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}

	mv := Move{From: from, To: to}
	if len(compact) == 5 {
		kind, ok := PromotionFromLetter(compact[4])
		if !ok {
			return Move{}, fmt.Errorf("invalid promotion in move: %q", s)
		}
		mv.Promotion = kind
	}
	return mv, nil
}
