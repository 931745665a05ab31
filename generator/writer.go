package generator

import (
	"fmt"
	"io"
	"strings"
)

// Writer writes lines indented by an explicit depth. The first write error
// is kept and every later write becomes a no-op.
type Writer struct {
	w     io.Writer
	depth int
	err   error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Indent enters a nested scope.
func (w *Writer) Indent() {
	w.depth++
}

// Dedent leaves the current scope.
func (w *Writer) Dedent() {
	if w.depth == 0 {
		panic("generator: unbalanced Dedent")
	}
	w.depth--
}

func (w *Writer) Depth() int {
	return w.depth
}

// Line writes one formatted line at the current depth. An empty format
// writes a blank line without indentation.
func (w *Writer) Line(format string, args ...any) {
	if w.err != nil {
		return
	}

	if len(format) == 0 {
		_, w.err = io.WriteString(w.w, "\n")
		return
	}

	line := strings.Repeat("\t", w.depth) + fmt.Sprintf(format, args...) + "\n"
	_, w.err = io.WriteString(w.w, line)
}

// Comment writes text as a line comment, collapsing all whitespace.
func (w *Writer) Comment(text string) {
	if text = collapse(text); len(text) > 0 {
		w.Line("// %s", text)
	}
}

// Open writes a line ending a scope opener and indents.
func (w *Writer) Open(format string, args ...any) {
	w.Line(format, args...)
	w.Indent()
}

// Close dedents and writes the closing line.
func (w *Writer) Close(format string, args ...any) {
	w.Dedent()
	w.Line(format, args...)
}

func (w *Writer) Err() error {
	return w.err
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
