// FILE: internal/board/fen.go
package board

import (
	"fmt"
	"strings"

	"chess/internal/core"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
)

// ParseFEN parses a FEN string into a Board. Only the placement and
// side-to-move fields are used; castling, en-passant and the move
// counters are accepted and ignored (neither rule is implemented).
// Abbreviated two-field strings ("<placement> w") are accepted too.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) != 2 && len(parts) != 6 {
		return nil, fmt.Errorf("invalid FEN: expected 2 or 6 parts, got %d", len(parts))
	}

	b := &Board{}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN: expected 8 ranks")
	}

	// FEN lists rank 8 first
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= 8 {
				return nil, fmt.Errorf("invalid FEN: too many pieces in rank %d", rank+1)
			}
			p, ok := core.PieceFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("invalid FEN: unknown piece %q", ch)
			}
			b.squares[rank][file] = p
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN: rank %d has %d files", rank+1, file)
		}
	}

	turn, ok := core.ParseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}
	b.turn = turn

	return b, nil
}

// FEN returns the position in FEN notation. Castling and en-passant
// fields are always "-" and the counters are fixed; this engine tracks
// neither.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteString(" " + b.turn.String() + " - - 0 1")
	return sb.String()
}
