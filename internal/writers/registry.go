// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// Writer registries (format → handler). Formats register themselves in init()
// blocks of the per-format files.
var (
	ReportWriters = map[string]func(w io.Writer, r Report) error{}
	NameWriters   = map[string]func(w io.Writer, names []string) error{}
	CountWriters  = map[string]func(w io.Writer, ofInterest bool, n int) error{}
)

// Register helpers (idempotent last-wins)
func RegisterReport(format string, fn func(io.Writer, Report) error) { ReportWriters[format] = fn }
func RegisterNames(format string, fn func(io.Writer, []string) error) { NameWriters[format] = fn }
func RegisterCount(format string, fn func(io.Writer, bool, int) error) {
	CountWriters[format] = fn
}

// Formats lists the report formats in a stable order, for help text.
func Formats() []string {
	out := make([]string, 0, len(ReportWriters))
	for f := range ReportWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func WriteReport(format string, w io.Writer, r Report) error {
	fn, ok := ReportWriters[format]
	if !ok {
		return fmt.Errorf("unknown report format %q", format)
	}
	return fn(w, r)
}

// WriteNames falls back to the text writer for formats that only render
// whole reports (tree).
func WriteNames(format string, w io.Writer, names []string) error {
	fn, ok := NameWriters[format]
	if !ok {
		if _, known := ReportWriters[format]; !known {
			return fmt.Errorf("unknown report format %q", format)
		}
		fn = NameWriters["text"]
	}
	return fn(w, names)
}

// WriteCount falls back to the text writer for formats without a count
// writer (tree).
func WriteCount(format string, w io.Writer, ofInterest bool, n int) error {
	fn, ok := CountWriters[format]
	if !ok {
		if _, known := ReportWriters[format]; !known {
			return fmt.Errorf("unknown report format %q", format)
		}
		fn = CountWriters["text"]
	}
	return fn(w, ofInterest, n)
}
