package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for ESC a.
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Character sizes for GS !.
const (
	SizeNormal byte = 0x00
	SizeDouble byte = 0x11
	SizeWide   byte = 0x10
	SizeTall   byte = 0x01
)

// DefaultWidth is the character width of 58mm paper.
const DefaultWidth = 32

// Document accumulates an ESC/POS job. Widths are counted in runes.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a job for paper that fits width characters per line
// (32 for 58mm, 48 for 80mm).
func NewDocument(width int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	d := &Document{width: width}
	d.buf.Write([]byte{esc, '@'})
	return d
}

// Width reports the line width in characters.
func (d *Document) Width() int { return d.width }

func (d *Document) Align(a Alignment) *Document {
	d.buf.Write([]byte{esc, 'a', byte(a)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	var flag byte
	if on {
		flag = 1
	}
	d.buf.Write([]byte{esc, 'E', flag})
	return d
}

func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{gs, '!', size})
	return d
}

// Line writes s followed by a line feed.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) Linef(format string, args ...any) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width line of ch.
func (d *Document) Rule(ch rune) *Document {
	return d.Line(strings.Repeat(string(ch), d.width))
}

// Pair prints left flush left and right flush right on one line, with at
// least one space between them.
func (d *Document) Pair(left, right string) *Document {
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return d.Line(left + strings.Repeat(" ", gap) + right)
}

// Wrap prints words across as many lines as needed.
func (d *Document) Wrap(text string) *Document {
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > d.width {
			d.Line(line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		d.Line(line.String())
	}
	return d
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

// Cut ends the job with a full or partial paper cut.
func (d *Document) Cut(partial bool) *Document {
	mode := byte(0x00)
	if partial {
		mode = 0x01
	}
	d.buf.Write([]byte{gs, 'V', mode})
	return d
}

// Bytes returns the accumulated job.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
