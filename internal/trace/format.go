package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota // by output extension, text otherwise
	FormatText                 // one readable line per event
	FormatNDJSON               // one JSON object per line
	FormatChrome               // chrome://tracing event array
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson":
		return FormatNDJSON, nil
	case "chrome":
		return FormatChrome, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format %q (expected auto|text|ndjson|chrome)", s)
}

// epoch anchors the relative timestamps of text and chrome output.
var epoch = time.Now()

// FormatEvent encodes ev. Text and NDJSON results end with a newline.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return encodeNDJSON(ev)
	case FormatChrome:
		return encodeChrome(ev)
	default:
		return encodeText(ev)
	}
}

// subject renders what the event is about: "line!#3 main.rs".
func subject(ev *Event) string {
	var parts []string
	if ev.Macro != "" {
		m := ev.Macro + "!"
		if ev.Call != 0 {
			m += "#" + strconv.FormatUint(uint64(ev.Call), 10)
		}
		parts = append(parts, m)
	}
	if ev.File != "" && (ev.Scope == ScopeFile || ev.Macro == "") {
		parts = append(parts, ev.File)
	}
	return strings.Join(parts, " ")
}

var textMarks = [...]string{KindBegin: "→", KindEnd: "←", KindPoint: "•", KindHeartbeat: "♡"}

// encodeText: [  1.234ms]   → call line!#3 = "3" {k=v}
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%9.3fms] ", float64(ev.Time.Sub(epoch))/float64(time.Millisecond))
	if ev.Scope > ScopeRun {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeRun)))
	}
	if int(ev.Kind) < len(textMarks) {
		sb.WriteString(textMarks[ev.Kind])
		sb.WriteByte(' ')
	}
	sb.WriteString(ev.Name)
	if subj := subject(ev); subj != "" {
		sb.WriteByte(' ')
		sb.WriteString(subj)
	}
	if ev.Outcome != "" {
		sb.WriteString(" = ")
		sb.WriteString(strconv.Quote(ev.Outcome))
	}
	if len(ev.Attrs) > 0 {
		sb.WriteString(" {")
		for i, a := range ev.Attrs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Key + "=" + a.Value)
		}
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

type ndjsonEvent struct {
	Time    string            `json:"time"`
	Seq     uint64            `json:"seq"`
	Kind    string            `json:"kind"`
	Scope   string            `json:"scope"`
	Span    uint64            `json:"span,omitempty"`
	Parent  uint64            `json:"parent,omitempty"`
	Name    string            `json:"name"`
	File    string            `json:"file,omitempty"`
	Macro   string            `json:"macro,omitempty"`
	Call    uint32            `json:"call,omitempty"`
	Outcome string            `json:"outcome,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

func attrMap(attrs []Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func encodeNDJSON(ev *Event) []byte {
	data, err := json.Marshal(ndjsonEvent{
		Time:    ev.Time.Format(time.RFC3339Nano),
		Seq:     ev.Seq,
		Kind:    ev.Kind.String(),
		Scope:   ev.Scope.String(),
		Span:    ev.SpanID,
		Parent:  ev.Parent,
		Name:    ev.Name,
		File:    ev.File,
		Macro:   ev.Macro,
		Call:    ev.Call,
		Outcome: ev.Outcome,
		Attrs:   attrMap(ev.Attrs),
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

type chromeEvent struct {
	Name  string            `json:"name"`
	Cat   string            `json:"cat"`
	Phase string            `json:"ph"`
	TS    int64             `json:"ts"`
	PID   int               `json:"pid"`
	TID   uint64            `json:"tid"`
	Args  map[string]string `json:"args,omitempty"`
}

var chromePhases = [...]string{KindBegin: "B", KindEnd: "E", KindPoint: "i", KindHeartbeat: "i"}

func encodeChrome(ev *Event) []byte {
	args := attrMap(ev.Attrs)
	put := func(k, v string) {
		if v == "" {
			return
		}
		if args == nil {
			args = map[string]string{}
		}
		args[k] = v
	}
	put("file", ev.File)
	put("macro", ev.Macro)
	put("outcome", ev.Outcome)

	name := ev.Name
	if ev.Scope == ScopeCall && ev.Macro != "" {
		name = ev.Macro + "!"
	}
	// calls of one file expand concurrently and would not nest on a shared row
	tid := ev.Lane
	if ev.Scope == ScopeCall && ev.SpanID != 0 {
		tid = ev.SpanID
	}
	ph := "i"
	if int(ev.Kind) < len(chromePhases) {
		ph = chromePhases[ev.Kind]
	}
	data, err := json.Marshal(chromeEvent{
		Name:  name,
		Cat:   ev.Scope.String(),
		Phase: ph,
		TS:    ev.Time.Sub(epoch).Microseconds(),
		PID:   1,
		TID:   tid,
		Args:  args,
	})
	if err != nil {
		return nil
	}
	return data
}
