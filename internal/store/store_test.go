package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

func newTestStore(maxSessions int) *SessionStore {
	return NewSessionStore(Options{
		MaxSessions:   maxSessions,
		IdleTTL:       time.Hour,
		SweepInterval: time.Minute,
	}, logger.NewDefault())
}

func TestAcquireCreatesAndReuses(t *testing.T) {
	s := newTestStore(10)

	state, release := s.Acquire("session-1")
	state.Transcript = append(state.Transcript, models.Message{Sender: models.SenderScammer, Text: "hi"})
	release()

	state, release = s.Acquire("session-1")
	defer release()
	if state.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1 after reacquire", state.MessageCount())
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore(10)

	state, release := s.Acquire("session-1")
	state.Transcript = append(state.Transcript, models.Message{Sender: models.SenderScammer, Text: "hi"})
	release()

	snap, err := s.Snapshot("session-1")
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	// Mutating the snapshot must not touch the stored session.
	snap.Transcript = append(snap.Transcript, models.Message{Sender: models.SenderAgent, Text: "who?"})
	snap.Intelligence.UPIIDs = append(snap.Intelligence.UPIIDs, "x@upi")

	again, _ := s.Snapshot("session-1")
	if len(again.Transcript) != 1 {
		t.Errorf("stored transcript length = %d, want 1", len(again.Transcript))
	}
	if len(again.Intelligence.UPIIDs) != 0 {
		t.Errorf("stored intelligence mutated via snapshot")
	}
}

func TestSnapshotMissing(t *testing.T) {
	s := newTestStore(10)

	if _, err := s.Snapshot("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Snapshot error = %v, want ErrSessionNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(10)

	_, release := s.Acquire("session-1")
	release()

	if err := s.Delete("session-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete("session-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestEvictionOverCapacity(t *testing.T) {
	s := newTestStore(3)

	for i := 0; i < 5; i++ {
		_, release := s.Acquire(fmt.Sprintf("session-%d", i))
		release()
		time.Sleep(time.Millisecond)
	}

	if got := s.Len(); got != 3 {
		t.Fatalf("Len = %d, want capacity 3", got)
	}

	// The most recent session must survive eviction.
	if _, err := s.Snapshot("session-4"); err != nil {
		t.Errorf("newest session evicted: %v", err)
	}
	if _, err := s.Snapshot("session-0"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("oldest session should be evicted, got err = %v", err)
	}
}

func TestSweepDropsIdleSessions(t *testing.T) {
	s := newTestStore(10)
	s.idleTTL = 10 * time.Millisecond

	_, release := s.Acquire("stale")
	release()

	time.Sleep(20 * time.Millisecond)
	_, release = s.Acquire("fresh")
	release()

	s.sweep()

	if _, err := s.Snapshot("stale"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session not swept, err = %v", err)
	}
	if _, err := s.Snapshot("fresh"); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
}

func TestMarkReportedExactlyOnce(t *testing.T) {
	s := newTestStore(10)

	state, release := s.Acquire("session-1")
	defer release()

	if !state.MarkReported() {
		t.Fatal("first MarkReported must succeed")
	}
	if state.MarkReported() {
		t.Fatal("second MarkReported must fail")
	}
}

func TestConcurrentAcquireSerializes(t *testing.T) {
	s := newTestStore(10)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			state, release := s.Acquire("shared")
			state.Transcript = append(state.Transcript, models.Message{
				Sender: models.SenderScammer,
				Text:   fmt.Sprintf("msg %d", n),
			})
			release()
		}(i)
	}
	wg.Wait()

	snap, err := s.Snapshot("shared")
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if len(snap.Transcript) != workers {
		t.Errorf("transcript length = %d, want %d", len(snap.Transcript), workers)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(10)

	state, release := s.Acquire("a")
	state.ScamDetected = true
	state.Reported = true
	state.Transcript = append(state.Transcript,
		models.Message{Sender: models.SenderScammer, Text: "x"},
		models.Message{Sender: models.SenderAgent, Text: "y"},
	)
	release()

	_, release = s.Acquire("b")
	release()

	sessions, scams, reported, messages := s.Stats()
	if sessions != 2 || scams != 1 || reported != 1 || messages != 2 {
		t.Errorf("Stats = (%d, %d, %d, %d), want (2, 1, 1, 2)", sessions, scams, reported, messages)
	}
}
