// FILE: internal/core/error.go
package core

import (
	"errors"
	"fmt"
)

// Rule violations returned as explicit results. All are recoverable:
// the board is unchanged and the caller may re-prompt.
var (
	ErrNoPieceOrWrongColor = errors.New("source square is empty or holds an opponent piece")
	ErrNotLegal            = errors.New("move is not legal")
	ErrInvalidPromotion    = errors.New("invalid promotion choice")
	ErrGameOver            = errors.New("game is over")
)

// InvariantError reports an internal consistency failure, such as a
// missing king. It indicates a bug, not a user error.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// API error codes
const (
	ErrCodeGameNotFound      = "GAME_NOT_FOUND"
	ErrCodeInvalidMove       = "INVALID_MOVE"
	ErrCodeGameOver          = "GAME_OVER"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidFEN        = "INVALID_FEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)
