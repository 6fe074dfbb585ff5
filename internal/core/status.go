// FILE: internal/core/status.go
package core

// StatusKind classifies the game status derived after every move.
type StatusKind int

const (
	StatusInProgress StatusKind = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

// Status is the derived game status. For StatusCheck, Color is the side
// to move whose king is attacked; for StatusCheckmate it is the winner.
type Status struct {
	Kind  StatusKind
	Color Color
}

// Terminal reports whether no further moves are accepted.
func (s Status) Terminal() bool {
	return s.Kind == StatusCheckmate || s.Kind == StatusStalemate
}

func (s Status) String() string {
	switch s.Kind {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		if s.Color == White {
			return "white wins"
		}
		return "black wins"
	case StatusStalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}
