package terminal

import (
	"slices"
	"sync"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/tomz197/meteors/internal/loop/config"
)

// HubEvent is a notification pushed from the Hub to a running session.
type HubEvent int

const (
	HubShutdown HubEvent = iota // Server is going down
)

// ScoreEntry is one row of the leaderboard.
type ScoreEntry struct {
	Username string
	Score    int
	seq      int // Earlier entries win ties
}

// Handle is a session's registration with the Hub.
type Handle struct {
	ID       int
	Username string
	Events   chan HubEvent
}

// Hub tracks the sessions of a multi-user server and keeps an in-memory
// leaderboard. Sessions never share a world; the Hub only carries
// scores and shutdown notices between them.
type Hub struct {
	mu       sync.RWMutex
	sessions *intmap.Map[int, *Handle]
	nextID   int
	scores   []ScoreEntry
	seq      int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: intmap.New[int, *Handle](16),
		nextID:   1,
	}
}

// Register adds a session and returns its handle.
func (h *Hub) Register(username string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &Handle{
		ID:       h.nextID,
		Username: username,
		Events:   make(chan HubEvent, 4),
	}
	h.nextID++
	h.sessions.Put(handle.ID, handle)
	return handle
}

// Unregister removes a session. Unknown IDs are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions.Del(id)
}

// Sessions returns the number of registered sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions.Len()
}

// RecordScore adds a finished game to the leaderboard, keeping only the
// best config.LeaderboardSize entries.
func (h *Hub) RecordScore(username string, score int) {
	if username == "" {
		username = "anonymous"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	h.scores = append(h.scores, ScoreEntry{Username: username, Score: score, seq: h.seq})
	slices.SortStableFunc(h.scores, func(a, b ScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.seq - b.seq
	})
	if len(h.scores) > config.LeaderboardSize {
		h.scores = h.scores[:config.LeaderboardSize]
	}
}

// TopScores returns a copy of the leaderboard, best first.
func (h *Hub) TopScores() []ScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.scores)
}

// Shutdown tells every session to show the shutdown screen, then waits
// for them to disconnect or for timeout to pass.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for handle := range h.sessions.Values() {
		select {
		case handle.Events <- HubShutdown:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if h.Sessions() == 0 {
				return
			}
		}
	}
}
