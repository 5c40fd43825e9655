// Package render projects a document and cursor onto a VT100 screen.
package render

import (
	"fmt"
	"io"
	"strings"
)

// InsertIndicator is shown on the status row while in insert mode.
const InsertIndicator = "-- INSERT --"

// View is everything a frame depends on.
type View struct {
	Lines    []string
	Row, Col int    // cursor, 0-based
	Insert   bool   // insert mode
	Prompt   bool   // a ':' command line is being collected
	Command  string // text collected so far
	Message  string // status message, shown when neither Insert nor Prompt
}

// Renderer builds a frame buffer and writes it to the transport in one go.
type Renderer struct {
	buf strings.Builder
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Frame draws the full screen: text lines, status row, cursor placement.
// The result depends only on v.
func (r *Renderer) Frame(v View) string {
	r.buf.Reset()

	// Clear screen and move to top-left.
	r.buf.WriteString("\x1b[2J\x1b[H")

	for _, line := range v.Lines {
		r.buf.WriteString(line)
		r.buf.WriteString("\r\n")
	}

	r.renderStatusRow(v)

	// Position the cursor.
	r.buf.WriteString(fmt.Sprintf("\x1b[%d;%dH", v.Row+1, v.Col+1))

	return r.buf.String()
}

// Draw writes the frame for v with a single Write.
func (r *Renderer) Draw(w io.Writer, v View) error {
	_, err := io.WriteString(w, r.Frame(v))
	return err
}

// StatusRow returns the 1-based screen row of the status line, one blank
// row below the text.
func StatusRow(lineCount int) int {
	return lineCount + 2
}

func (r *Renderer) renderStatusRow(v View) {
	r.buf.WriteString(fmt.Sprintf("\x1b[%d;1H", StatusRow(len(v.Lines))))
	switch {
	case v.Insert:
		r.buf.WriteString(InsertIndicator)
	case v.Prompt:
		r.buf.WriteByte(':')
		r.buf.WriteString(v.Command)
	case v.Message != "":
		r.buf.WriteString(v.Message)
	}
}
