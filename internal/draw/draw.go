// Package draw renders onto ANSI terminals using half-block characters.
package draw

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Point is a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters used by the canvas and HUD.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Palette used across the terminal frontend.
var (
	ColorShip      = tcell.ColorAqua
	ColorBullet    = tcell.ColorYellow
	ColorMeteor    = tcell.NewRGBColor(170, 130, 90)
	ColorExplosion = tcell.ColorOrange
	ColorDebris    = tcell.ColorRed
	ColorHealth    = tcell.ColorLime
	ColorText      = tcell.ColorWhite
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

// Foreground returns the escape sequence selecting c as the text color.
// tcell.ColorDefault maps to the terminal's default foreground.
func Foreground(c tcell.Color) string {
	if c == tcell.ColorDefault || !c.Valid() {
		return "\033[39m"
	}
	r, g, b := c.RGB()
	buf := make([]byte, 0, 20)
	buf = append(buf, "\033[38;2;"...)
	buf = strconv.AppendInt(buf, int64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(b), 10)
	buf = append(buf, 'm')
	return string(buf)
}

// ClearScreen clears the terminal and moves the cursor to the top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
