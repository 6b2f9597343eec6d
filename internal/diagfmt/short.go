package diagfmt

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"hirexpand/internal/diag"
	"hirexpand/internal/driver"
	"hirexpand/internal/source"
)

// shortEntry is one output line; notes share the key of their diagnostic.
type shortEntry struct {
	start uint32
	order int
	text  string
}

// ExpansionsShort prints one line per expansion, diagnostic and note, with
// no excerpts and no color, ordered by position within each file:
//
//	main.rs:1:9: line! => 1
//	main.rs:2:1: info[EXP3002]: cannot find macro `bar!`
//	main.rs:1:14: note: defined here
func ExpansionsShort(w io.Writer, res *driver.Result, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	for i := range res.Files {
		for _, e := range shortFile(&res.Files[i], res.FileSet, opts) {
			bw.WriteString(e.text)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func shortFile(f *driver.FileResult, fs *source.FileSet, opts PrettyOpts) []shortEntry {
	var out []shortEntry
	add := func(start uint32, text string) {
		out = append(out, shortEntry{start: start, order: len(out), text: text})
	}
	for i := range f.Expansions {
		e := &f.Expansions[i]
		switch {
		case e.Err != nil:
			add(e.Span.Start, fmt.Sprintf("%s: %s! failed: %s", location(fs, e.Span, opts.PathMode), e.Path, oneLine(e.Err.Error())))
		case e.Resolved && e.Output != "":
			add(e.Span.Start, fmt.Sprintf("%s: %s! => %s", location(fs, e.Span, opts.PathMode), e.Path, oneLine(e.Output)))
		}
	}
	if f.Bag != nil {
		for _, d := range f.Bag.Items() {
			if d.Severity < opts.MinSeverity {
				continue
			}
			add(d.Primary.Start, shortDiagnostic(&d, fs, opts.PathMode))
			if !opts.ShowNotes {
				continue
			}
			for _, n := range d.Notes {
				out = append(out, shortEntry{
					start: d.Primary.Start,
					order: len(out),
					text:  fmt.Sprintf("%s: note: %s", location(fs, n.Span, opts.PathMode), oneLine(n.Msg)),
				})
			}
		}
	}
	slices.SortStableFunc(out, func(a, b shortEntry) int {
		return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(a.order, b.order))
	})
	return out
}

func shortDiagnostic(d *diag.Diagnostic, fs *source.FileSet, mode PathMode) string {
	return fmt.Sprintf("%s: %s[%s]: %s",
		location(fs, d.Primary, mode),
		d.Severity.Label(),
		d.Code.ID(),
		oneLine(d.Message))
}

// oneLine collapses line breaks so every entry stays on a single line.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
