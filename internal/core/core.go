// FILE: internal/core/core.go
package core

// Color identifies a side. The zero value is White.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// ParseColor parses the FEN side-to-move field.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w":
		return White, true
	case "b":
		return Black, true
	default:
		return White, false
	}
}

// PieceKind is the closed set of chess piece kinds. NoKind marks an
// empty square or an absent promotion choice.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Promotable reports whether k is a valid pawn promotion target.
func (k PieceKind) Promotable() bool {
	switch k {
	case Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// Piece is an immutable piece value. The zero value is an empty square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece is the empty-square value.
var NoPiece = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

func kindLetter(k PieceKind) byte {
	switch k {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	default:
		return '.'
	}
}

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black, '.' for the empty square.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	ch := kindLetter(p.Kind)
	if p.Color == White {
		return ch - 'a' + 'A'
	}
	return ch
}

// PieceFromLetter parses a FEN piece letter.
func PieceFromLetter(ch byte) (Piece, bool) {
	color := Black
	if ch >= 'A' && ch <= 'Z' {
		color = White
		ch = ch - 'A' + 'a'
	}
	for _, kind := range []PieceKind{Pawn, Knight, Bishop, Rook, Queen, King} {
		if kindLetter(kind) == ch {
			return Piece{Kind: kind, Color: color}, true
		}
	}
	return NoPiece, false
}

// PromotionFromLetter parses a promotion suffix letter (q, r, b, n).
func PromotionFromLetter(ch byte) (PieceKind, bool) {
	switch ch {
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	default:
		return NoKind, false
	}
}
