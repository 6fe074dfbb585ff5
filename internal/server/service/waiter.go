// FILE: internal/server/service/waiter.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a long-poll request stays open.
	WaitTimeout = 25 * time.Second
)

// WaitRegistry tracks long-polling clients waiting for a game to change.
type WaitRegistry struct {
	mu       sync.RWMutex
	watchers map[string][]*watcher
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// watcher is a single client waiting on a game. Notify fires when the
// move count diverges from the count the client last saw, on timeout,
// or when the game is deleted.
type watcher struct {
	moveCount int
	notify    chan struct{}
	timer     *time.Timer
}

// NewWaitRegistry creates a new wait registry.
func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		watchers: make(map[string][]*watcher),
		shutdown: make(chan struct{}),
	}
}

// RegisterWait registers a client waiting for changes on gameID beyond
// moveCount. The returned channel receives at most one signal.
func (w *WaitRegistry) RegisterWait(gameID string, moveCount int, ctx context.Context) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	wt := &watcher{
		moveCount: moveCount,
		notify:    make(chan struct{}, 1),
	}
	wt.timer = time.AfterFunc(WaitTimeout, func() {
		wt.signal()
	})
	w.watchers[gameID] = append(w.watchers[gameID], wt)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			w.remove(gameID, wt)
		case <-wt.notify:
			wt.timer.Stop()
			w.remove(gameID, wt)
		case <-w.shutdown:
			wt.timer.Stop()
			close(wt.notify)
		}
	}()

	return wt.notify
}

// NotifyGame wakes clients whose last known move count differs from
// currentMoveCount. Slow clients are skipped, never blocked on.
func (w *WaitRegistry) NotifyGame(gameID string, currentMoveCount int) {
	w.mu.RLock()
	list := w.watchers[gameID]
	w.mu.RUnlock()

	for _, wt := range list {
		if wt.moveCount != currentMoveCount {
			wt.signal()
		}
	}
}

// RemoveGame wakes and drops all watchers of a deleted game.
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	list := w.watchers[gameID]
	delete(w.watchers, gameID)
	w.mu.Unlock()

	for _, wt := range list {
		wt.signal()
	}
}

// Shutdown releases all watchers and waits for their goroutines.
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out")
	}
}

func (wt *watcher) signal() {
	select {
	case wt.notify <- struct{}{}:
	default:
	}
}

func (w *WaitRegistry) remove(gameID string, wt *watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	list := w.watchers[gameID]
	for i, cur := range list {
		if cur == wt {
			w.watchers[gameID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(w.watchers[gameID]) == 0 {
		delete(w.watchers, gameID)
	}
	wt.timer.Stop()
}
