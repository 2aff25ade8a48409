package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
	"github.com/louisbranch/catapult/internal/platform/id"
	"github.com/louisbranch/catapult/internal/siege/random"
)

// DefaultSessionTTL is the idle time after which a session is evicted.
const DefaultSessionTTL = 2 * time.Hour

// ErrSessionNotFound indicates an unknown or expired session id.
var ErrSessionNotFound = apperrors.New(apperrors.CodeSessionNotFound, "session not found")

// StoreConfig configures a Store.
type StoreConfig struct {
	// TTL is the idle lifetime of a session. Zero uses DefaultSessionTTL.
	TTL time.Duration
	// Seed fixes every new session's random sequence. Zero draws a fresh seed
	// per session.
	Seed int64
	// Now overrides the clock in tests.
	Now func() time.Time
	// Source overrides how a session's random source is built from its seed.
	Source func(seed int64) random.Source
}

type session struct {
	mu       sync.Mutex
	game     *Game
	seed     int64
	lastSeen time.Time
}

// Store maps session ids to encounters. Calls against one session run one at
// a time; different sessions proceed independently.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	seed     int64
	now      func() time.Time
	source   func(seed int64) random.Source
}

// NewStore returns an empty Store.
func NewStore(cfg StoreConfig) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	source := cfg.Source
	if source == nil {
		source = func(seed int64) random.Source { return random.NewSeeded(seed) }
	}
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		seed:     cfg.Seed,
		now:      now,
		source:   source,
	}
}

// Create registers a new session and returns its id and random seed.
func (s *Store) Create() (string, int64, error) {
	sessionID, err := id.NewID()
	if err != nil {
		return "", 0, fmt.Errorf("new session id: %w", err)
	}
	seed := s.seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return "", 0, err
		}
	}

	s.mu.Lock()
	s.sessions[sessionID] = &session{
		game:     New(s.source(seed)),
		seed:     seed,
		lastSeen: s.now(),
	}
	s.mu.Unlock()
	return sessionID, seed, nil
}

// Do runs fn against the session's encounter while holding the session lock.
func (s *Store) Do(sessionID string, fn func(*Game) error) error {
	sess, err := s.touch(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.game)
}

func (s *Store) touch(sessionID string) (*session, error) {
	if !id.Valid(sessionID) {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

// Delete removes a session. Unknown ids are ignored.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Len returns the number of live sessions, including expired ones not yet
// swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every session idle longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for sessionID, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, sessionID)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps on every interval tick until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
