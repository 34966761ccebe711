package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

// ErrSessionNotFound is returned when a session ID has no record.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the in-memory session registry. Each session has
// its own lock which callers hold across a full read-modify-write
// turn; the store lock only guards the map itself.
//
// Capacity is bounded: creating a session beyond MaxSessions evicts
// the least recently active one, and a background sweeper drops
// sessions idle past the TTL.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry

	maxSessions   int
	idleTTL       time.Duration
	sweepInterval time.Duration

	logger *logger.Logger
}

type sessionEntry struct {
	mu    sync.Mutex
	state *models.SessionState

	// lastActive is guarded by the store lock, not the entry lock,
	// so eviction and sweeping never need to take entry locks.
	lastActive time.Time
}

// Options configures the session store bounds.
type Options struct {
	MaxSessions   int
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// NewSessionStore creates a session store. Zero option fields get
// defaults.
func NewSessionStore(opts Options, log *logger.Logger) *SessionStore {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 10000
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 24 * time.Hour
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = 10 * time.Minute
	}
	return &SessionStore{
		entries:       make(map[string]*sessionEntry),
		maxSessions:   opts.MaxSessions,
		idleTTL:       opts.IdleTTL,
		sweepInterval: opts.SweepInterval,
		logger:        log.WithComponent("session_store"),
	}
}

// Acquire returns the session state for the ID, creating it if
// missing, with its lock held. The caller must invoke the returned
// release function when done mutating the state.
func (s *SessionStore) Acquire(id string) (*models.SessionState, func()) {
	now := time.Now()

	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		e = &sessionEntry{state: models.NewSessionState(id), lastActive: now}
		s.entries[id] = e
		s.evictLocked(id)
	} else {
		e.lastActive = now
	}
	s.mu.Unlock()

	e.mu.Lock()
	e.state.LastActiveAt = now
	return e.state, e.mu.Unlock
}

// Snapshot returns a deep copy of the session without requiring the
// caller to manage locks.
func (s *SessionStore) Snapshot(id string) (models.SessionState, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return models.SessionState{}, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot(), nil
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats aggregates counters across all sessions for the stats
// endpoint.
func (s *SessionStore) Stats() (sessions, scamSessions, reported, messages int) {
	s.mu.Lock()
	entries := make([]*sessionEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
		sessions++
		if e.state.ScamDetected {
			scamSessions++
		}
		if e.state.Reported {
			reported++
		}
		messages += e.state.MessageCount()
		e.mu.Unlock()
	}
	return
}

// evictLocked drops the least recently active session when over
// capacity. The new session keep is excluded so a fresh create never
// evicts itself. Callers hold the store lock.
func (s *SessionStore) evictLocked(keep string) {
	for len(s.entries) > s.maxSessions {
		var oldestID string
		var oldest time.Time
		for id, e := range s.entries {
			if id == keep {
				continue
			}
			if oldestID == "" || e.lastActive.Before(oldest) {
				oldestID = id
				oldest = e.lastActive
			}
		}
		if oldestID == "" {
			return
		}
		delete(s.entries, oldestID)
		s.logger.Info().Str("session_id", oldestID).Msg("Evicted session over capacity")
	}
}

// StartSweeper runs the idle-session sweeper until the context is
// cancelled.
func (s *SessionStore) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *SessionStore) sweep() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	var expired []string
	for id, e := range s.entries {
		if e.lastActive.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(s.entries, id)
	}
	s.mu.Unlock()

	if len(expired) > 0 {
		s.logger.Info().Int("count", len(expired)).Msg("Swept idle sessions")
	}
}
