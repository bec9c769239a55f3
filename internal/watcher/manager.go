package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"apechain-buybot/internal/types"

	log "github.com/sirupsen/logrus"
)

// Manager owns one polling session per confirmed settings record. Each
// session holds an immutable snapshot of its settings and an explicit
// cancellation handle, so deleting a record stops its watcher without
// waiting for the next tick.
type Manager struct {
	ledger     Ledger
	prices     PriceSource
	dispatcher Dispatcher
	renderer   Renderer
	interval   time.Duration
	policy     ErrorPolicy

	mu       sync.Mutex
	sessions map[string]*session
	wg       sync.WaitGroup
}

func NewManager(ledger Ledger, prices PriceSource, dispatcher Dispatcher, renderer Renderer, interval time.Duration, policy ErrorPolicy) *Manager {
	return &Manager{
		ledger:     ledger,
		prices:     prices,
		dispatcher: dispatcher,
		renderer:   renderer,
		interval:   interval,
		policy:     policy,
		sessions:   make(map[string]*session),
	}
}

func sessionKey(userID int64, tokenAddress string) string {
	return fmt.Sprintf("%d:%s", userID, tokenAddress)
}

// Start binds a snapshot of opts to a new watch session. An existing
// session for the same composite key is cancelled first, so a
// re-confirm restarts the watcher with fresh settings.
func (m *Manager) Start(opts types.SettingOpts) error {
	if opts.TokenAddress == "" {
		return fmt.Errorf("cannot watch settings without a token address")
	}

	key := sessionKey(opts.UserID, opts.TokenAddress)

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.sessions[key]; ok {
		old.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		opts:       opts,
		cancel:     cancel,
		ledger:     m.ledger,
		prices:     m.prices,
		dispatcher: m.dispatcher,
		renderer:   m.renderer,
		interval:   m.interval,
		policy:     m.policy,
	}
	m.sessions[key] = s
	watchersActive.Set(float64(len(m.sessions)))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.release(key, s)
		s.run(ctx)
	}()

	log.Infof("watcher started for user %d token %s", opts.UserID, opts.TokenAddress)
	return nil
}

// Resume starts a session for every persisted record. Used at startup.
func (m *Manager) Resume(snapshots []types.SettingOpts) {
	for _, opts := range snapshots {
		if err := m.Start(opts); err != nil {
			log.Errorf("could not resume watcher for user %d token %s: %v", opts.UserID, opts.TokenAddress, err)
		}
	}
}

// Stop cancels the session for the composite key and reports whether
// one was running.
func (m *Manager) Stop(userID int64, tokenAddress string) bool {
	key := sessionKey(userID, tokenAddress)

	m.mu.Lock()
	s, ok := m.sessions[key]
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.cancel()
	return true
}

// StopAll cancels every session and blocks until they have exited.
// Called on process shutdown before the final settings flush.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for _, s := range m.sessions {
		s.cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()
}

// ActiveCount is the number of live sessions.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// IsActive reports whether a session runs for the composite key.
func (m *Manager) IsActive(userID int64, tokenAddress string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionKey(userID, tokenAddress)]
	return ok
}

// release drops a finished session from the table, unless the slot has
// already been taken over by a restart.
func (m *Manager) release(key string, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.sessions[key]; ok && cur == s {
		delete(m.sessions, key)
	}
	watchersActive.Set(float64(len(m.sessions)))
	log.Infof("watcher stopped for %s", key)
}
