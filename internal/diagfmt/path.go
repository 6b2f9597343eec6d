package diagfmt

import (
	"path/filepath"
	"strings"

	"hirexpand/internal/source"
)

const (
	unknownPath = "<unknown>"
	// в режиме auto абсолютные пути длиннее этого сокращаются до имени файла
	autoPathLimit = 40
)

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil {
		return unknownPath
	}
	f := fs.Get(id)
	if f == nil {
		return unknownPath
	}
	p := f.Path
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		return relativePath(p, fs.BaseDir())
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeAuto:
		if filepath.IsAbs(p) && len(p) >= autoPathLimit {
			return filepath.Base(p)
		}
	}
	return p
}

// relativePath prints target relative to base; paths that would climb out
// of base stay absolute.
func relativePath(target, base string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		return target
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return target
	}
	rel, err := filepath.Rel(absBase, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// resolve returns 1-based positions of span; ok is false for spans in
// files the set does not know.
func resolve(fs *source.FileSet, span source.Span) (start, end source.LineCol, ok bool) {
	if fs == nil || fs.Get(span.File) == nil {
		return source.LineCol{}, source.LineCol{}, false
	}
	start, end = fs.Resolve(span)
	return start, end, true
}
