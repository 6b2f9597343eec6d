package main

import (
	"fmt"
	"io"

	"hirexpand/internal/driver"
	"hirexpand/internal/observ"
)

// printTimings writes per-phase timings summed over all expanded files.
// Cached files carry no timings and are counted separately.
func printTimings(out io.Writer, res *driver.Result) {
	if out == nil || res == nil {
		return
	}
	var total observ.Report
	cached := 0
	for _, f := range res.Files {
		if f.Cached {
			cached++
			continue
		}
		if f.Timing != nil {
			total.Merge(*f.Timing)
		}
	}
	fmt.Fprint(out, total.Summary())
	if cached > 0 {
		fmt.Fprintf(out, "  %d of %d files served from cache\n", cached, len(res.Files))
	}
}
