// FILE: internal/server/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chess/internal/core"
	"chess/internal/game"
	"chess/internal/server/storage"

	"github.com/google/uuid"
)

const MaxGames = 100

// Service owns the live games. Every mutation of a game happens under
// the service lock, giving each game the single serialized stream of
// attemptMove calls the rules core assumes.
type Service struct {
	games  map[string]*game.Game
	mu     sync.RWMutex
	store  *storage.Store
	waiter *WaitRegistry
}

// New creates a new service instance with optional storage.
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*game.Game),
		store:  store,
		waiter: NewWaitRegistry(),
	}
}

// GetStorageHealth returns the storage component status.
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// GenerateGameID returns a new unique game ID.
func (s *Service) GenerateGameID() string {
	return uuid.New().String()
}

// CreateGame starts a game from the standard position, or from fen when
// non-empty, and registers it under gameID.
func (s *Service) CreateGame(gameID, fen string) (*game.Game, error) {
	var g *game.Game
	var err error
	if fen != "" {
		g, err = game.NewFromFEN(fen)
		if err != nil {
			return nil, err
		}
	} else {
		g = game.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.games) >= MaxGames {
		return nil, fmt.Errorf("game limit reached (%d)", MaxGames)
	}
	if _, exists := s.games[gameID]; exists {
		return nil, fmt.Errorf("game already exists: %s", gameID)
	}
	s.games[gameID] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       gameID,
			InitialFEN:   g.InitialFEN(),
			FinalStatus:  g.Status().String(),
			StartTimeUTC: time.Now().UTC(),
		})
	}

	return g, nil
}

// GetGame returns the live game for gameID.
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	return g, nil
}

// Move validates and applies a move on the given game, persists it and
// notifies long-poll watchers. The returned status is the game status
// after the move.
func (s *Service) Move(gameID, move string) (core.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return core.Status{}, fmt.Errorf("game not found: %s", gameID)
	}

	mover := g.Turn()
	status, err := g.AttemptMoveStr(move)
	if err != nil {
		return status, err
	}

	moveCount := len(g.Moves())
	if s.store != nil {
		s.store.RecordMove(storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   moveCount,
			Move:         g.Moves()[moveCount-1],
			FENAfterMove: g.FEN(),
			PlayerColor:  mover.String(),
			MoveTimeUTC:  time.Now().UTC(),
		})
		if status.Terminal() {
			s.store.UpdateGameStatus(gameID, status.String())
		}
	}

	s.waiter.NotifyGame(gameID, moveCount)

	return status, nil
}

// Undo reverts count moves and notifies watchers.
func (s *Service) Undo(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}

	if err := g.Undo(count); err != nil {
		return err
	}

	moveCount := len(g.Moves())
	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, moveCount)
		s.store.UpdateGameStatus(gameID, g.Status().String())
	}

	s.waiter.NotifyGame(gameID, moveCount)

	return nil
}

// DeleteGame removes a game and releases its watchers.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}
	delete(s.games, gameID)

	s.waiter.RemoveGame(gameID)

	return nil
}

// RegisterWait registers a client to wait for game state changes.
func (s *Service) RegisterWait(gameID string, moveCount int, ctx context.Context) <-chan struct{} {
	return s.waiter.RegisterWait(gameID, moveCount, ctx)
}

// Shutdown gracefully shuts down the service.
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}
