// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield in logical pixels. Terminal rendering scales it to fit.
const (
	ScreenWidth  = 800
	ScreenHeight = 800
)

// Terminal render area. Larger terminals get a centered, framed canvas.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 50
)

// Population
const (
	MeteorCount = 8
)

// Scoring and damage
const (
	ScoreMeteorHit = 10
	MeteorDamage   = 20
)

// Frame pacing shared by all frontends.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Screens
const (
	GameOverDisplaySeconds = 3.0  // Final score shown before the loop ends
	ShutdownDisplaySeconds = 10.0 // Shutdown notice shown before disconnect
	LeaderboardSize        = 5
	MaxUsernameLength      = 16
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Server shutdown
const (
	ShutdownTimeout = 15 * time.Second
)
