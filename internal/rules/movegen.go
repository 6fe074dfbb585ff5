// FILE: internal/rules/movegen.go

// Package rules implements legal-move generation and move validation.
// Pseudo-legal moves follow each piece's movement pattern; legal moves
// additionally pass a simulate-and-check king-safety filter on a scratch
// copy of the board. Castling and en-passant are not implemented.
package rules

import (
	"chess/internal/board"
	"chess/internal/core"
)

var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	bishopDirs    = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs      = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// PseudoMoves returns the destinations reachable from from by the
// occupying piece's movement pattern, ignoring king safety. An empty
// square yields no moves.
func PseudoMoves(b *board.Board, from core.Square) []core.Square {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return nil
	}

	switch p.Kind {
	case core.Pawn:
		return pawnMoves(b, from, p.Color)
	case core.Knight:
		return jumpMoves(b, from, p.Color, knightOffsets)
	case core.Bishop:
		return slideMoves(b, from, p.Color, bishopDirs[:])
	case core.Rook:
		return slideMoves(b, from, p.Color, rookDirs[:])
	case core.Queen:
		dirs := append(bishopDirs[:len(bishopDirs):len(bishopDirs)], rookDirs[:]...)
		return slideMoves(b, from, p.Color, dirs)
	case core.King:
		return jumpMoves(b, from, p.Color, kingOffsets)
	default:
		return nil
	}
}

func pawnMoves(b *board.Board, from core.Square, us core.Color) []core.Square {
	forward := 1
	startRank := 1
	if us == core.Black {
		forward = -1
		startRank = 6
	}

	var out []core.Square

	// Single push to an empty square, double push only from the start
	// rank with both squares empty.
	one := core.Square{File: from.File, Rank: from.Rank + forward}
	if one.InBounds() && b.PieceAt(one).IsEmpty() {
		out = append(out, one)
		two := core.Square{File: from.File, Rank: from.Rank + 2*forward}
		if from.Rank == startRank && b.PieceAt(two).IsEmpty() {
			out = append(out, two)
		}
	}

	// Diagonal captures only onto enemy-occupied squares.
	for _, df := range [2]int{-1, 1} {
		to := core.Square{File: from.File + df, Rank: from.Rank + forward}
		if !to.InBounds() {
			continue
		}
		target := b.PieceAt(to)
		if !target.IsEmpty() && target.Color != us {
			out = append(out, to)
		}
	}

	return out
}

func jumpMoves(b *board.Board, from core.Square, us core.Color, offsets [8][2]int) []core.Square {
	var out []core.Square
	for _, off := range offsets {
		to := core.Square{File: from.File + off[1], Rank: from.Rank + off[0]}
		if !to.InBounds() {
			continue
		}
		target := b.PieceAt(to)
		if target.IsEmpty() || target.Color != us {
			out = append(out, to)
		}
	}
	return out
}

func slideMoves(b *board.Board, from core.Square, us core.Color, dirs [][2]int) []core.Square {
	var out []core.Square
	for _, dir := range dirs {
		to := core.Square{File: from.File + dir[1], Rank: from.Rank + dir[0]}
		for to.InBounds() {
			target := b.PieceAt(to)
			if target.IsEmpty() {
				out = append(out, to)
				to = core.Square{File: to.File + dir[1], Rank: to.Rank + dir[0]}
				continue
			}
			if target.Color != us {
				out = append(out, to)
			}
			break
		}
	}
	return out
}

// IsSquareAttacked reports whether any piece of byColor attacks sq. It
// walks attack patterns outward from sq and deliberately skips the
// king-safety filter: attacks ignore whether the attacker would itself
// be left in check, which breaks the mutual recursion with LegalMoves.
// Pawn pushes are not attacks, only the diagonal captures count.
func IsSquareAttacked(b *board.Board, sq core.Square, byColor core.Color) bool {
	// A pawn of byColor attacks sq from one rank closer to its own side.
	pawnRank := sq.Rank - 1
	if byColor == core.Black {
		pawnRank = sq.Rank + 1
	}
	for _, df := range [2]int{-1, 1} {
		from := core.Square{File: sq.File + df, Rank: pawnRank}
		if p := b.PieceAt(from); p.Kind == core.Pawn && p.Color == byColor {
			return true
		}
	}

	for _, off := range knightOffsets {
		from := core.Square{File: sq.File + off[1], Rank: sq.Rank + off[0]}
		if p := b.PieceAt(from); p.Kind == core.Knight && p.Color == byColor {
			return true
		}
	}

	for _, off := range kingOffsets {
		from := core.Square{File: sq.File + off[1], Rank: sq.Rank + off[0]}
		if p := b.PieceAt(from); p.Kind == core.King && p.Color == byColor {
			return true
		}
	}

	if slideAttack(b, sq, byColor, bishopDirs[:], core.Bishop) {
		return true
	}
	return slideAttack(b, sq, byColor, rookDirs[:], core.Rook)
}

// slideAttack walks each direction until blocked and checks whether the
// first piece hit is a queen or the given slider kind of byColor.
func slideAttack(b *board.Board, sq core.Square, byColor core.Color, dirs [][2]int, kind core.PieceKind) bool {
	for _, dir := range dirs {
		from := core.Square{File: sq.File + dir[1], Rank: sq.Rank + dir[0]}
		for from.InBounds() {
			p := b.PieceAt(from)
			if !p.IsEmpty() {
				if p.Color == byColor && (p.Kind == kind || p.Kind == core.Queen) {
					return true
				}
				break
			}
			from = core.Square{File: from.File + dir[1], Rank: from.Rank + dir[0]}
		}
	}
	return false
}

// InCheck reports whether the given side's king is attacked. A board
// with no king of that color is malformed and reported as in check so
// the legality filter never admits moves on such a board.
func InCheck(b *board.Board, c core.Color) bool {
	king, err := b.KingSquare(c)
	if err != nil {
		return true
	}
	return IsSquareAttacked(b, king, c.Other())
}

// LegalMoves returns every legal move for the side to move. Each pseudo
// move is simulated on a scratch copy and kept only if the mover's own
// king is not attacked afterward. A pawn reaching the farthest rank
// produces one move per promotion target.
func LegalMoves(b *board.Board) []core.Move {
	us := b.SideToMove()
	var out []core.Move

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := core.Square{File: file, Rank: rank}
			p := b.PieceAt(from)
			if p.IsEmpty() || p.Color != us {
				continue
			}
			for _, to := range PseudoMoves(b, from) {
				if leavesKingInCheck(b, from, to, us) {
					continue
				}
				if p.Kind == core.Pawn && isPromotionRank(to.Rank, us) {
					for _, kind := range []core.PieceKind{core.Knight, core.Bishop, core.Rook, core.Queen} {
						out = append(out, core.Move{From: from, To: to, Promotion: kind})
					}
				} else {
					out = append(out, core.Move{From: from, To: to})
				}
			}
		}
	}

	return out
}

// LegalMovesFrom returns the legal moves originating at from. Used by
// front-ends to highlight destinations for a selected piece.
func LegalMovesFrom(b *board.Board, from core.Square) []core.Move {
	var out []core.Move
	for _, mv := range LegalMoves(b) {
		if mv.From == from {
			out = append(out, mv)
		}
	}
	return out
}

// leavesKingInCheck simulates from->to on a clone of b. The promotion
// kind is irrelevant here: only the occupancy of to matters for whether
// the mover's own king ends up attacked.
func leavesKingInCheck(b *board.Board, from, to core.Square, us core.Color) bool {
	scratch := b.Clone()
	scratch.MoveRaw(from, to)
	return InCheck(scratch, us)
}

func isPromotionRank(rank int, c core.Color) bool {
	if c == core.White {
		return rank == 7
	}
	return rank == 0
}
