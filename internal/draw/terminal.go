package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize keeps single writes below a typical MTU so frames stream
// smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter accumulates one frame of terminal output and flushes it in
// MTU-sized chunks. Coordinates passed to MoveCursor and WriteAt are
// 1-based canvas positions; the canvas offset is added automatically.
type ChunkWriter struct {
	buf    []byte
	out    *bufio.Writer
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends a cursor movement to (col, row) of the canvas.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = appendCursor(cw.buf, col+cw.offCol, row+cw.offRow)
}

// WriteAt writes s starting at canvas position (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf = append(cw.buf, s...)
}

// WriteRaw writes s at an absolute terminal position, ignoring the offset.
func (cw *ChunkWriter) WriteRaw(col, row int, s string) {
	cw.buf = appendCursor(cw.buf, col, row)
	cw.buf = append(cw.buf, s...)
}

// Write implements io.Writer so a Canvas can render into the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString appends s to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteRune appends r to the frame.
func (cw *ChunkWriter) WriteRune(r rune) {
	cw.buf = appendRune(cw.buf, r)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

// Flush writes the buffered frame to the underlying writer in chunks.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			cw.buf = cw.buf[:0]
			return err
		}
		data = data[n:]
	}
	cw.buf = cw.buf[:0]
	return cw.out.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc returns the terminal dimensions in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FitTerminal clamps a terminal size to the maximum render area and
// returns the offsets that center the render area inside the terminal.
func FitTerminal(termWidth, termHeight, maxWidth, maxHeight int) (width, height, offsetCol, offsetRow int) {
	width = min(termWidth, maxWidth)
	height = min(termHeight, maxHeight)
	offsetCol = (termWidth - width) / 2
	offsetRow = (termHeight - height) / 2
	return width, height, offsetCol, offsetRow
}

func appendCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

func appendRune(buf []byte, r rune) []byte {
	return utf8.AppendRune(buf, r)
}
