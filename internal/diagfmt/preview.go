package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"hirexpand/internal/source"
)

const tabWidth = 4

type excerptLine struct {
	num  uint32
	text string
}

// excerpt: фрагмент исходника вокруг диагностики.
// pad и width заданы в экранных колонках строки target.
type excerpt struct {
	lines  []excerptLine
	target uint32
	pad    int
	width  int
}

func buildExcerpt(f *source.File, span source.Span, context int8) (excerpt, bool) {
	if f == nil || f.Lines == nil || len(f.Content) == 0 {
		return excerpt{}, false
	}
	start := f.Lines.LineCol(span.Start)
	lineStart, lineEnd, ok := f.Lines.LineRange(start.Line)
	if !ok {
		return excerpt{}, false
	}

	// подчёркивание не выходит за конец первой строки
	endOff := min(max(span.End, span.Start), lineEnd)
	startOff := min(span.Start, lineEnd)
	line := f.Content[lineStart:lineEnd]
	ex := excerpt{
		target: start.Line,
		pad:    displayWidth(string(line[:startOff-lineStart])),
		width:  max(1, displayWidth(string(line[startOff-lineStart:endOff-lineStart]))),
	}

	ctx := uint32(max(context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, f.Lines.LineCount())
	for n := first; n <= last; n++ {
		ex.lines = append(ex.lines, excerptLine{num: n, text: expandTabs(f.GetLine(n))})
	}
	return ex, true
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}
