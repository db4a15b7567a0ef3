package writers

import (
	"encoding/json"
	"io"

	"strdb/pkg/api"
)

func init() {
	RegisterReport("json", WriteJSON)
	RegisterNames("json", func(w io.Writer, names []string) error {
		if names == nil {
			names = []string{}
		}
		return encodeIndent(w, api.NamesV1{Names: names})
	})
	RegisterCount("json", func(w io.Writer, ofInterest bool, n int) error {
		return encodeIndent(w, api.CountV1{OfInterest: ofInterest, Count: n})
	})
}

// WriteJSON emits the whole report as one indented document.
func WriteJSON(w io.Writer, r Report) error {
	return encodeIndent(w, api.ReportV1{Summary: r.Summary, Profiles: r.Profiles})
}

func encodeIndent(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
