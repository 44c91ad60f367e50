package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
)

const healthBarCells = 10

// drawFrame renders the world and the overlay for the current state.
func (s *Session) drawFrame(now time.Time) error {
	// State and inactivity transitions clear the terminal so text from the
	// previous screen does not linger.
	if s.state != s.prevState || s.inactive != s.wasInactive {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevState = s.state
		s.wasInactive = s.inactive
	}

	s.canvas.Clear()
	if s.world != nil && s.state != StateShutdown {
		ctx := object.DrawContext{
			Canvas: s.canvas,
			Now:    s.world.Now(),
		}
		if err := s.world.Draw(ctx); err != nil {
			return err
		}
	}

	if err := s.canvas.Render(s.cw); err != nil {
		return err
	}
	s.canvas.RenderBorder(s.cw)
	s.drawUI(now)

	return s.cw.Flush()
}

func (s *Session) drawUI(now time.Time) {
	centerX := s.canvas.TerminalWidth() / 2
	centerY := s.canvas.TerminalHeight() / 2

	if s.state == StateShutdown {
		s.drawShutdownScreen(centerX, centerY)
		return
	}
	if s.inactive {
		s.drawInactivityScreen(centerX, centerY, now)
		return
	}

	switch s.state {
	case StateStart:
		s.drawStartScreen(centerX, centerY, now)
	case StatePlaying:
		s.drawHUD()
	case StateGameOver:
		s.drawHUD()
		s.drawGameOverScreen(centerX, centerY)
	}
}

// writeCentered writes text centered on column centerX and marks the
// cells dirty so the canvas repaints them once the text goes away.
func (s *Session) writeCentered(centerX, row int, text string) {
	n := len([]rune(text))
	col := max(centerX-n/2, 1)
	s.cw.WriteAt(col, row, text)
	s.canvas.MarkTextDirty(col, row, n)
}

func (s *Session) writeBlock(centerX, top int, lines []string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	for i, line := range lines {
		col := max(centerX-width/2, 1)
		s.cw.WriteAt(col, top+i, line)
		s.canvas.MarkTextDirty(col, top+i, len(line))
	}
}

var titleArt = []string{
	` __  __ ___ _____ ___  ___  ___  ___  `,
	`|  \/  | __|_   _| __|/ _ \| _ \/ __| `,
	`| |\/| | _|  | | | _|| (_) |   /\__ \ `,
	`|_|  |_|___| |_| |___|\___/|_|_\|___/ `,
}

var gameOverArt = []string{
	`  ___   _   __  __ ___    _____   _____ ___  `,
	` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

func (s *Session) drawStartScreen(centerX, centerY int, now time.Time) {
	top := centerY - 9
	s.writeBlock(centerX, top, titleArt)
	s.writeCentered(centerX, top+len(titleArt)+1, "~ Shoot the falling rocks before they hit you ~")

	controlsY := top + len(titleArt) + 3
	s.writeCentered(centerX, controlsY, "Controls")
	controls := []string{
		"A D / < >  . . . .  Move",
		"SPACE  . . . . . . Shoot",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controls {
		s.writeCentered(centerX, controlsY+1+i, line)
	}

	promptY := controlsY + len(controls) + 2
	if now.UnixMilli()/600%2 == 0 {
		s.writeCentered(centerX, promptY, ">>  Press SPACE to Start  <<")
	} else {
		s.canvas.MarkTextDirty(1, promptY, s.canvas.TerminalWidth())
	}

	if s.opts.Hub == nil {
		return
	}
	scores := s.opts.Hub.TopScores()
	if len(scores) == 0 {
		return
	}
	boardY := promptY + 2
	s.writeCentered(centerX, boardY, "Top Scores")
	for i, e := range scores {
		s.writeCentered(centerX, boardY+1+i, formatScoreEntry(i+1, e))
	}
}

func formatScoreEntry(rank int, e ScoreEntry) string {
	name := e.Username
	if r := []rune(name); len(r) > config.MaxUsernameLength {
		name = string(r[:config.MaxUsernameLength])
	}
	return fmt.Sprintf("%d. %-*s %6d", rank, config.MaxUsernameLength, name, e.Score)
}

// drawHUD draws the health bar and score. Fields are fixed width so a
// shrinking value leaves nothing behind.
func (s *Session) drawHUD() {
	p := s.world.Player()
	s.cw.WriteAt(2, 1, healthBar(p.Health()))
	s.canvas.MarkTextDirty(2, 1, healthBarCells+5)

	score := fmt.Sprintf("Score: %-8d", s.world.Score())
	col := max(s.canvas.TerminalWidth()-len(score), 1)
	s.cw.WriteAt(col, 1, score)
	s.canvas.MarkTextDirty(col, 1, len(score))
}

// healthBar renders health as healthBarCells cells, rounding a partly
// filled cell up so any remaining health stays visible.
func healthBar(health int) string {
	filled := (health*healthBarCells + object.MaxHealth - 1) / object.MaxHealth
	filled = min(max(filled, 0), healthBarCells)

	var b strings.Builder
	b.WriteString("HP [")
	b.WriteString(draw.Foreground(draw.ColorHealth))
	b.WriteString(strings.Repeat(string(draw.BlockFull), filled))
	b.WriteString(draw.ColorReset)
	b.WriteString(strings.Repeat(string(draw.BlockLight), healthBarCells-filled))
	b.WriteString("]")
	return b.String()
}

func (s *Session) drawGameOverScreen(centerX, centerY int) {
	top := centerY - 4
	s.writeBlock(centerX, top, gameOverArt)
	s.writeCentered(centerX, top+len(gameOverArt)+1, fmt.Sprintf("Your score: %d", s.world.Score()))

	remaining := int(s.timer.Seconds()) + 1
	s.writeCentered(centerX, top+len(gameOverArt)+3, fmt.Sprintf("Closing in %d...", remaining))
}

func (s *Session) drawInactivityScreen(centerX, centerY int, now time.Time) {
	s.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	left := int(config.InactivityDisconnectUser - now.Sub(s.lastInput).Seconds())
	s.writeCentered(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)))
	s.writeCentered(centerX, centerY+2, "Press any key to continue")
}

func (s *Session) drawShutdownScreen(centerX, centerY int) {
	s.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	s.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	s.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(s.timer.Seconds()) + 1
	s.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	s.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
