package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment (ESC a n)
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Print modes (ESC ! n)
const (
	ModeNormal       byte = 0x00
	ModeDoubleHeight byte = 0x10
	ModeDoubleWidth  byte = 0x20
	ModeDoubleSize   byte = 0x30
)

// DefaultWidth is the character width of 58mm / 2.5" roll paper.
const DefaultWidth = 32

// Document builds an ESC/POS byte stream for receipt printers.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document that wraps at charWidth columns and starts
// with the initialize command.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Init sends ESC @.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a single line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables emphasized text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetMode selects the print mode with ESC !. Use ModeNormal,
// ModeDoubleHeight, ModeDoubleWidth or ModeDoubleSize.
func (d *Document) SetMode(mode byte) *Document {
	d.buf.Write([]byte{ESC, '!', mode})
	return d
}

// Text writes s followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(LF)
	return d
}

// Separator prints char repeated across the full width.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Columns prints left padded to leftWidth, a space, then right
// right-aligned in the remaining columns. Left text longer than leftWidth is
// truncated with a trailing "..".
func (d *Document) Columns(left, right string, leftWidth int) *Document {
	rightWidth := d.width - leftWidth - 1
	if rightWidth < 1 {
		rightWidth = 1
	}
	d.buf.WriteString(fmt.Sprintf("%-*s %*s", leftWidth, Truncate(left, leftWidth), rightWidth, right))
	d.buf.WriteByte(LF)
	return d
}

// Cut sends GS V 0 (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// Bytes returns the accumulated byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Truncate shortens s to max characters, replacing the tail with "..".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 2 {
		return string(r[:max])
	}
	return string(r[:max-2]) + ".."
}
