package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/meteors/internal/config"
	loopconfig "github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/loop/window"
)

func main() {
	logger := config.NewLogger(os.Stderr, "meteors")
	dir := config.GetEnv("METEORS_ASSETS", "assets")

	assets, errs := window.LoadAssets(dir)
	for _, err := range errs {
		logger.Warn("Using built-in sprite", "err", err)
	}

	var sound window.SoundPlayer
	if !config.GetEnvBool("METEORS_MUTE", false) {
		sounds, errs := window.NewSounds(dir)
		for _, err := range errs {
			logger.Warn("Using synthesized sound", "err", err)
		}
		sound = sounds
	}

	game := window.NewGame(config.Seed(), assets, sound)

	ebiten.SetWindowSize(loopconfig.ScreenWidth, loopconfig.ScreenHeight)
	ebiten.SetWindowTitle("Space Shooter")
	ebiten.SetTPS(loopconfig.TargetFPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("Game error", "err", err)
	}

	if game.Over() {
		fmt.Printf("Game Over! Your score: %d\n", game.Score())
	}
}
