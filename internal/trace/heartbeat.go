package trace

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat every interval until ctx is done or the
// returned stop is called. Each beat reports how many files and calls are
// still open and which file was opened last, so a stuck expansion shows up
// as beats with the same counts. stop waits for the goroutine and may be
// called more than once.
func StartHeartbeat(ctx context.Context, t Tracer, interval time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for beat := 1; ; beat++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				emitAt(t, heartbeatEvent(beat), time.Now())
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func heartbeatEvent(beat int) Event {
	ev := Event{
		Kind:  KindHeartbeat,
		Scope: ScopeRun,
		Name:  "heartbeat",
		Attrs: []Attr{
			{Key: "beat", Value: strconv.Itoa(beat)},
			{Key: "files", Value: strconv.FormatInt(OpenSpans(ScopeFile), 10)},
			{Key: "calls", Value: strconv.FormatInt(OpenSpans(ScopeCall), 10)},
		},
	}
	if last, ok := lastFile.Load().(string); ok {
		ev.File = last
	}
	return ev
}
