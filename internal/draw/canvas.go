package draw

import (
	"io"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// cell is what was last written to one terminal position.
type cell struct {
	ch    rune
	color tcell.Color
}

// staleCell never matches a rendered cell, forcing a rewrite.
var staleCell = cell{ch: -1}

// Canvas is a color drawing buffer with 2x vertical resolution.
// Objects draw in logical coordinates which are scaled to the terminal.
// Render only emits the cells that changed since the previous frame.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []tcell.Color // [y*termWidth+x], ColorDefault means unset
	prev           []cell        // [row*termWidth+col]

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	offsetCol int
	offsetRow int

	pen tcell.Color

	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
	lineBuf         []byte
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells that
// maps a logicalWidth x logicalHeight coordinate space onto it.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		pen:           ColorText,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the terminal dimensions, keeping the logical size.
// A size change invalidates everything previously rendered.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]tcell.Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the canvas starts.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = staleCell
	}
}

// MarkTextDirty tells the canvas that text was written over n cells
// starting at the 1-based canvas position (col, row), so they are
// repainted on the next Render.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.prev[r*c.termWidth+x] = staleCell
		}
	}
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetColor selects the color used by subsequent drawing calls.
func (c *Canvas) SetColor(color tcell.Color) {
	c.pen = color
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.pen
	}
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// SetFloat sets the pixel at logical coordinates (x, y).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(c.toPixel(x, y))
}

// DrawLine draws a line between two logical points (Bresenham).
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws the outline of a polygon, filling it when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
// Any rectangle that is visible at all covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x+w)*c.scaleX)) - 1
	y1 := int(math.Ceil((y+h)*c.scaleY)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py)
		}
	}
}

// StrokeRect draws the outline of a rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.DrawPolygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, false)
}

// FillCircle fills a circle of the given logical radius.
func (c *Canvas) FillCircle(cx, cy, radius float64) {
	const segments = 12
	points := c.BorrowPoints(segments)
	for i := range points {
		a := float64(i) * 2 * math.Pi / segments
		points[i] = Point{X: cx + math.Cos(a)*radius, Y: cy + math.Sin(a)*radius}
	}
	c.DrawPolygon(points, true)
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// cellAt resolves the half-block character and color for one terminal cell.
// The upper pixel's color wins when both halves are set.
func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top != tcell.ColorDefault && bottom != tcell.ColorDefault:
		return cell{ch: BlockFull, color: top}
	case top != tcell.ColorDefault:
		return cell{ch: BlockUpperHalf, color: top}
	case bottom != tcell.ColorDefault:
		return cell{ch: BlockLowerHalf, color: bottom}
	default:
		return cell{ch: ' '}
	}
}

// Render writes every cell that changed since the previous Render.
// Adjacent changed cells share one cursor movement and color escape.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.lineBuf[:0]
	var pen tcell.Color
	penSet := false

	for row := 0; row < c.termHeight; row++ {
		cursorCol := -1
		for col := 0; col < c.termWidth; col++ {
			next := c.cellAt(col, row)
			idx := row*c.termWidth + col
			if c.prev[idx] == next {
				continue
			}
			c.prev[idx] = next

			if cursorCol != col {
				buf = appendCursor(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if next.ch != ' ' && (!penSet || pen != next.color) {
				buf = append(buf, Foreground(next.color)...)
				pen, penSet = next.color, true
			}
			buf = appendRune(buf, next.ch)
			cursorCol = col + 1
		}
	}
	if penSet {
		buf = append(buf, ColorReset...)
	}
	c.lineBuf = buf

	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}

// RenderBorder frames the canvas when the terminal is larger than the
// render area.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasSides := c.offsetCol >= 1
	hasRows := c.offsetRow >= 1
	if !hasSides && !hasRows {
		return
	}

	// Raw coordinates: the writer's offset must not apply to the frame.
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	if hasRows {
		line := make([]rune, 0, c.termWidth+2)
		if hasSides {
			line = append(line, '┌')
		}
		for range c.termWidth {
			line = append(line, '─')
		}
		startCol := c.offsetCol + 1
		if hasSides {
			line = append(line, '┐')
			startCol = left
		}
		cw.WriteRaw(startCol, top, string(line))

		if hasSides {
			line[0], line[len(line)-1] = '└', '┘'
		}
		cw.WriteRaw(startCol, bottom, string(line))
	}

	if hasSides {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			cw.WriteRaw(left, row, "│")
			cw.WriteRaw(right, row, "│")
		}
	}
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas
// position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
