// Package display renders registry entries as word-wrapped, two-column text.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// DefaultWidth is the wrap column used when no width is configured and the
// terminal size cannot be detected.
const DefaultWidth = 79

// ColumnTwo is the column at which the second column starts.
const ColumnTwo = 20

// TermWidth returns the width of the terminal attached to stdout, or
// DefaultWidth when stdout is not a terminal.
func TermWidth() int {
	fd := os.Stdout.Fd()
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > ColumnTwo {
			return w
		}
	}
	return DefaultWidth
}

// Printer writes wrapped text to w.
type Printer struct {
	w     io.Writer
	width int
}

// NewPrinter creates a Printer wrapping at width columns. A width of 0 means
// use the terminal width.
func NewPrinter(w io.Writer, width int) *Printer {
	if width <= 0 {
		width = TermWidth()
	}
	return &Printer{w: w, width: width}
}

// Width returns the wrap column.
func (p *Printer) Width() int {
	return p.width
}

// Line writes s followed by a newline, unwrapped.
func (p *Printer) Line(s string) {
	fmt.Fprintln(p.w, s)
}

// Wrap fills text to the printer width. initial is prepended to the first
// line and subsequent to every following line; both count towards the width.
// Words longer than a line are broken.
func (p *Printer) Wrap(text, initial, subsequent string) {
	fmt.Fprintln(p.w, p.fill(text, initial, subsequent))
}

func (p *Printer) fill(text, initial, subsequent string) string {
	// Newlines and tabs in descriptions are treated like any other space.
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return strings.TrimRight(initial, " ")
	}

	indent := len(initial)
	if len(subsequent) > indent {
		indent = len(subsequent)
	}
	limit := p.width - indent
	if limit < 1 {
		limit = 1
	}

	wrapped := wrap.String(wordwrap.String(text, limit), limit)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = initial + lines[i]
		} else {
			lines[i] = subsequent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// Pair writes first and second as two columns. second starts at ColumnTwo and
// wraps under itself. When first does not fit in the first column it gets a
// line of its own and second starts on the next line.
func (p *Printer) Pair(first, second string) {
	indent := strings.Repeat(" ", ColumnTwo)
	if len(first) > ColumnTwo {
		p.Wrap(first, "", "")
		if strings.TrimSpace(second) != "" {
			p.Wrap(second, indent, indent)
		}
		return
	}
	p.Wrap(second, fmt.Sprintf("%-*s", ColumnTwo, first), indent)
}

// Banner writes a blank line and then title centred between two rules.
func (p *Printer) Banner(title string) {
	rule := strings.Repeat("-", p.width)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, centre(title, p.width))
	fmt.Fprintln(p.w, rule)
}

// centre indents title so it sits in the middle of width columns. When the
// leftover space is odd it goes on the left for odd widths and on the right
// for even ones. No trailing padding is added.
func centre(title string, width int) string {
	w := lipgloss.Width(title)
	pad := width - w
	if pad <= 0 {
		return title
	}
	left := pad/2 + (pad & width & 1)
	return lipgloss.PlaceHorizontal(w+left, lipgloss.Right, title)
}
