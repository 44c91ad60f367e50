// Package terminal runs a game session on an ANSI terminal, locally or
// over SSH.
package terminal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/loop/world"
	"github.com/tomz197/meteors/internal/object"
)

// SoundPlayer receives gameplay sound cues.
type SoundPlayer interface {
	PlayShot()
	PlayExplosion()
	PlayHit()
}

// State is the session's current screen.
type State int

const (
	StateStart    State = iota // Title screen
	StatePlaying               // Active gameplay
	StateGameOver              // Final score, then the session ends
	StateShutdown              // Server is shutting down
)

// Options configures a Session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Seed         uint64 // Zero seeds from the clock
	Sound        SoundPlayer
	Hub          *Hub // Optional; enables the leaderboard and shutdown notices
	Inactivity   bool // Warn and disconnect idle players
}

// Result summarizes a finished session.
type Result struct {
	Score  int
	Frames int
	Quit   bool // Player quit before the game ended
}

// Session owns one player's world, terminal and input stream.
type Session struct {
	opts        Options
	canvas      *draw.Canvas
	cw          *draw.ChunkWriter
	writer      io.Writer
	stream      *input.Stream
	handle      *Handle
	world       *world.World
	input       object.Input
	state       State
	prevState   State
	running     bool
	gameStart   time.Time
	lastInput   time.Time
	inactive    bool
	wasInactive bool
	timer       time.Duration // Remaining time on the game over or shutdown screen
	result      Result
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r io.Reader, w io.Writer, opts Options) *Session {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, err := opts.TermSizeFunc()
	if err != nil {
		termWidth, termHeight = config.MaxTermWidth, config.MaxTermHeight
	}
	width, height, offCol, offRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(width, height, config.ScreenWidth, config.ScreenHeight)
	canvas.SetOffset(offCol, offRow)

	s := &Session{
		opts:      opts,
		canvas:    canvas,
		cw:        draw.NewChunkWriter(w, offCol, offRow),
		writer:    w,
		stream:    input.StartStream(r),
		state:     StateStart,
		prevState: StateStart,
		running:   true,
		lastInput: time.Now(),
	}
	if opts.Hub != nil {
		s.handle = opts.Hub.Register(opts.Username)
	}
	return s
}

// State returns the current screen.
func (s *Session) State() State { return s.state }

// Run drives the session at config.TargetFPS until the player quits, the
// game ends, the server shuts down or ctx is cancelled.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if s.handle != nil {
		defer s.opts.Hub.Unregister(s.handle.ID)
	}

	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	last := time.Now()
	for s.running {
		select {
		case <-ctx.Done():
			s.result.Quit = true
			s.running = false
			continue
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(last)
		last = frameStart

		if err := s.frame(frameStart, delta); err != nil {
			return s.result, err
		}

		if elapsed := time.Since(frameStart); elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(s.writer)
	return s.result, nil
}

// frame runs one iteration of the loop at wall time now.
func (s *Session) frame(now time.Time, delta time.Duration) error {
	s.processInput(now)
	s.processHubEvents()
	s.updateScreen()

	switch s.state {
	case StateStart:
		s.updateStart(now)
	case StatePlaying:
		if err := s.updatePlaying(now); err != nil {
			return err
		}
	case StateGameOver, StateShutdown:
		s.timer -= delta
		if s.timer <= 0 {
			s.running = false
		}
	}

	return s.drawFrame(now)
}

func (s *Session) processInput(now time.Time) {
	s.input = input.ReadInput(s.stream)

	if s.input.Quit {
		s.result.Quit = s.state != StateGameOver
		s.running = false
	}

	if !s.opts.Inactivity {
		return
	}
	idle := now.Sub(s.lastInput).Seconds()
	switch {
	case s.input.Any():
		s.lastInput = now
		s.inactive = false
	case idle > config.InactivityDisconnectUser:
		s.result.Quit = true
		s.running = false
	case idle > config.InactivityWarnUser:
		s.inactive = true
	}
}

func (s *Session) processHubEvents() {
	if s.handle == nil {
		return
	}
	for {
		select {
		case ev := <-s.handle.Events:
			if ev == HubShutdown && s.state != StateShutdown {
				s.state = StateShutdown
				s.timer = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. A change of the render area
// clears the terminal so nothing is left outside the new canvas.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	width, height, offCol, offRow := draw.FitTerminal(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if width != s.canvas.TerminalWidth() || height != s.canvas.TerminalHeight() ||
		offCol != s.canvas.OffsetCol() || offRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.writer)
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(width, height)
	s.canvas.SetOffset(offCol, offRow)
	s.cw.SetOffset(offCol, offRow)
}

func (s *Session) updateStart(now time.Time) {
	if s.input.Space || s.input.Enter {
		s.startGame(now)
	}
}

func (s *Session) startGame(now time.Time) {
	input.ResetKeyInput(s.stream)

	seed := s.opts.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	s.world = world.New(world.Options{Seed: seed})
	s.gameStart = now
	s.state = StatePlaying
}

func (s *Session) updatePlaying(now time.Time) error {
	if err := s.world.Step(now.Sub(s.gameStart), s.input); err != nil {
		return fmt.Errorf("step world: %w", err)
	}
	s.result.Score = s.world.Score()
	s.result.Frames = s.world.Frames()

	for _, ev := range s.world.Events() {
		s.playSound(ev.Type)
		if ev.Type == world.EventGameOver {
			s.gameOver()
		}
	}
	return nil
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.timer = time.Duration(config.GameOverDisplaySeconds * float64(time.Second))
	if s.opts.Hub != nil {
		s.opts.Hub.RecordScore(s.opts.Username, s.world.Score())
	}
}

func (s *Session) playSound(t world.EventType) {
	if s.opts.Sound == nil {
		return
	}
	switch t {
	case world.EventShot:
		s.opts.Sound.PlayShot()
	case world.EventMeteorDestroyed, world.EventGameOver:
		s.opts.Sound.PlayExplosion()
	case world.EventPlayerHit:
		s.opts.Sound.PlayHit()
	}
}
