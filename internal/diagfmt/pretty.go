package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"hirexpand/internal/diag"
	"hirexpand/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgGreen),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if d.Severity < opts.MinSeverity {
			continue
		}
		writeDiagnostic(w, &d, fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "%s\n", pal.note.Sprintf("... %d more diagnostics not shown (limit %d reached)", n, bag.Len()))
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		location(fs, d.Primary, opts.PathMode),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	if fs != nil {
		if ex, ok := buildExcerpt(fs.Get(d.Primary.File), d.Primary, opts.Context); ok {
			writeExcerpt(w, ex, pal)
		}
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	path := formatPath(fs, span.File, mode)
	start, _, ok := resolve(fs, span)
	if !ok {
		return path
	}
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func writeExcerpt(w io.Writer, ex excerpt, pal palette) {
	numWidth := len(strconv.FormatUint(uint64(ex.lines[len(ex.lines)-1].num), 10))
	blank := strings.Repeat(" ", numWidth)
	for _, line := range ex.lines {
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprintf("%*d", numWidth, line.num), pal.gutter.Sprint("|"), line.text)
		if line.num != ex.target {
			continue
		}
		marker := "^" + strings.Repeat("~", ex.width-1)
		fmt.Fprintf(w, " %s %s %s%s\n", blank, pal.gutter.Sprint("|"), strings.Repeat(" ", ex.pad), pal.caret.Sprint(marker))
	}
}
