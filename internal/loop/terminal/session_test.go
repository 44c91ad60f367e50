package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/loop/config"
)

const frame = config.TargetFrameTime

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

type recordingSound struct {
	shots, explosions, hits int
}

func (r *recordingSound) PlayShot()      { r.shots++ }
func (r *recordingSound) PlayExplosion() { r.explosions++ }
func (r *recordingSound) PlayHit()       { r.hits++ }

// newIdleSession returns a session whose input never produces a key.
func newIdleSession(t *testing.T, opts Options) (*Session, *bytes.Buffer) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(80, 24)
	}
	var out bytes.Buffer
	return NewSession(pr, &out, opts), &out
}

func TestRunQuitsOnQ(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader("q"), &out, Options{TermSizeFunc: fixedSize(80, 24)})

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Quit)
	assert.Contains(t, out.String(), "Controls")
	assert.True(t, strings.HasSuffix(out.String(), "\033[H\033[2J\033[?25h"), "screen cleared and cursor restored on exit")
}

func TestRunStartsOnSpace(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(strings.NewReader(" "), &out, Options{TermSizeFunc: fixedSize(80, 24), Seed: 1})

	_, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, s.State())
	assert.Contains(t, out.String(), "Score: 0")
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newIdleSession(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.Quit)
}

func TestGameOverShowsScoreThenEnds(t *testing.T) {
	hub := NewHub()
	sound := &recordingSound{}
	s, out := newIdleSession(t, Options{Hub: hub, Username: "alice", Sound: sound, Seed: 3})

	now := time.Unix(1000, 0)
	s.startGame(now)
	s.world.Player().SetHealth(0)

	now = now.Add(frame)
	require.NoError(t, s.frame(now, frame))
	assert.Equal(t, StateGameOver, s.State())
	assert.Equal(t, 1, sound.explosions)
	assert.Contains(t, out.String(), "Your score: 0")

	scores := hub.TopScores()
	require.Len(t, scores, 1)
	assert.Equal(t, "alice", scores[0].Username)

	for i := 0; s.running && i < 100; i++ {
		now = now.Add(100 * time.Millisecond)
		require.NoError(t, s.frame(now, 100*time.Millisecond))
	}
	assert.False(t, s.running)
	assert.False(t, s.result.Quit)
}

func TestPlayingAdvancesWorld(t *testing.T) {
	s, out := newIdleSession(t, Options{Seed: 4})

	now := time.Unix(1000, 0)
	s.startGame(now)
	for range 10 {
		now = now.Add(frame)
		require.NoError(t, s.frame(now, frame))
	}

	assert.Equal(t, 10, s.result.Frames)
	assert.Contains(t, out.String(), "HP [")
}

func TestHubShutdownSwitchesScreen(t *testing.T) {
	hub := NewHub()
	s, out := newIdleSession(t, Options{Hub: hub})
	require.Equal(t, 1, hub.Sessions())

	s.handle.Events <- HubShutdown
	now := time.Unix(1000, 0)
	require.NoError(t, s.frame(now, frame))

	assert.Equal(t, StateShutdown, s.State())
	assert.Contains(t, out.String(), "SERVER SHUTTING DOWN")
}

func TestInactivityWarnsThenDisconnects(t *testing.T) {
	s, out := newIdleSession(t, Options{Inactivity: true})
	now := time.Unix(1000, 0)

	s.lastInput = now.Add(-(config.InactivityWarnUser + 1) * time.Second)
	require.NoError(t, s.frame(now, frame))
	assert.True(t, s.inactive)
	assert.True(t, s.running)
	assert.Contains(t, out.String(), "INACTIVITY WARNING")

	s.lastInput = now.Add(-(config.InactivityDisconnectUser + 1) * time.Second)
	require.NoError(t, s.frame(now, frame))
	assert.False(t, s.running)
	assert.True(t, s.result.Quit)
}

func TestInactivityDisabledByDefault(t *testing.T) {
	s, _ := newIdleSession(t, Options{})
	now := time.Unix(1000, 0)

	s.lastInput = now.Add(-time.Hour)
	require.NoError(t, s.frame(now, frame))
	assert.False(t, s.inactive)
	assert.True(t, s.running)
}

func TestResizeRefitsCanvas(t *testing.T) {
	width, height := 80, 24
	s, _ := newIdleSession(t, Options{
		TermSizeFunc: func() (int, int, error) { return width, height, nil },
	})

	width, height = 200, 70
	require.NoError(t, s.frame(time.Unix(1000, 0), frame))

	assert.Equal(t, config.MaxTermWidth, s.canvas.TerminalWidth())
	assert.Equal(t, config.MaxTermHeight, s.canvas.TerminalHeight())
	assert.Equal(t, (200-config.MaxTermWidth)/2, s.canvas.OffsetCol())
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		health int
		filled int
	}{
		{100, 10},
		{80, 8},
		{5, 1},
		{0, 0},
	}

	for _, tt := range tests {
		bar := healthBar(tt.health)
		assert.Equal(t, tt.filled, strings.Count(bar, string(draw.BlockFull)), "health %d", tt.health)
		assert.Equal(t, 10-tt.filled, strings.Count(bar, string(draw.BlockLight)), "health %d", tt.health)
	}
}

func TestFormatScoreEntryTruncatesName(t *testing.T) {
	line := formatScoreEntry(1, ScoreEntry{Username: strings.Repeat("x", 40), Score: 120})

	assert.True(t, strings.HasPrefix(line, "1. "+strings.Repeat("x", config.MaxUsernameLength)+" "))
	assert.True(t, strings.HasSuffix(line, "120"))
}
