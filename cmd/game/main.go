package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/meteors/internal/audio"
	"github.com/tomz197/meteors/internal/config"
	"github.com/tomz197/meteors/internal/loop/terminal"
)

func main() {
	logger := config.NewLogger(os.Stderr, "meteors")

	opts := terminal.Options{Seed: config.Seed()}
	if !config.GetEnvBool("METEORS_MUTE", false) {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("Audio unavailable, playing muted", "err", err)
		} else {
			defer sm.Cleanup()
			opts.Sound = sm
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("Failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := terminal.NewSession(os.Stdin, os.Stdout, opts)
	res, err := session.Run(ctx)
	_ = term.Restore(fd, oldState)
	if err != nil {
		logger.Fatal("Game error", "err", err)
	}

	logger.Debug("Session ended", "score", res.Score, "frames", res.Frames, "quit", res.Quit)
	if !res.Quit {
		fmt.Printf("Game Over! Your score: %d\n", res.Score)
	}
}
