package trace

import (
	"fmt"
	"strings"
)

// Level is the coarsest scope that still gets recorded. Its numeric value
// lines up with Scope, so LevelFile admits ScopeRun and ScopeFile.
type Level uint8

const (
	LevelOff Level = iota
	LevelRun
	LevelFile
	LevelPhase
	LevelCall
)

var levelNames = [...]string{
	LevelOff:   "off",
	LevelRun:   "run",
	LevelFile:  "file",
	LevelPhase: "phase",
	LevelCall:  "call",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names case-insensitively; "" means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for l, name := range levelNames {
		if name == s {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (expected %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return l > LevelOff && scope > 0 && uint8(scope) <= uint8(l)
}
