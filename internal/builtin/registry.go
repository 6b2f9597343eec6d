package builtin

import (
	"hirexpand/internal/hir"
)

var registry = []struct {
	name     string
	expander hir.BuiltinExpander
	summary  string
}{
	{"file", hir.BuiltinFile, `string literal "" (paths are not tracked)`},
	{"line", hir.BuiltinLine, "integer literal: line of the argument group"},
	{"stringify", hir.BuiltinStringify, "string literal: argument text as written"},
}

var byName = func() map[hir.Name]hir.BuiltinExpander {
	m := make(map[hir.Name]hir.BuiltinExpander, len(registry))
	for _, e := range registry {
		m[hir.NewName(e.name)] = e.expander
	}
	return m
}()

// Find returns the builtin definition registered under name, anchored at
// ast in crate krate. Matching is exact and case-sensitive.
func Find(name hir.Name, krate hir.CrateID, ast hir.AstID) (hir.MacroDefID, bool) {
	exp, ok := byName[name]
	if !ok {
		return hir.MacroDefID{}, false
	}
	return hir.MacroDefID{
		Crate: krate,
		AstID: ast,
		Kind:  hir.MacroDefKind{Tag: hir.DefBuiltin, Builtin: exp},
	}, true
}

// Names lists the registered macro names in registration order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.name)
	}
	return out
}

// Describe returns a one-line summary of what the named builtin expands to,
// or "" for names that are not registered.
func Describe(name string) string {
	for _, e := range registry {
		if e.name == name {
			return e.summary
		}
	}
	return ""
}
