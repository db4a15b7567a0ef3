// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"strdb/internal/jsonlutil"
	"strdb/pkg/api"
)

func init() {
	RegisterReport("jsonl", WriteJSONL)
	RegisterNames("jsonl", func(w io.Writer, names []string) error {
		in, done := StartNameJSONLWriter(w, len(names))
		return feed(in, done, names)
	})
	RegisterCount("jsonl", func(w io.Writer, ofInterest bool, n int) error {
		return json.NewEncoder(w).Encode(api.CountV1{OfInterest: ofInterest, Count: n})
	})
}

// StartProfileJSONLWriter streams each profile as one JSON line (v1).
func StartProfileJSONLWriter(out io.Writer, bufSize int) (chan<- api.ProfileV1, <-chan error) {
	return jsonlutil.Start[api.ProfileV1](out, bufSize,
		func(enc *json.Encoder, p api.ProfileV1) error { return enc.Encode(p) },
		IsBrokenPipe,
	)
}

// StartNameJSONLWriter streams each name as a JSON string line.
func StartNameJSONLWriter(out io.Writer, bufSize int) (chan<- string, <-chan error) {
	return jsonlutil.Start[string](out, bufSize,
		func(enc *json.Encoder, n string) error { return enc.Encode(n) },
		IsBrokenPipe,
	)
}

// WriteJSONL writes one profile per line; the summary is not part of the stream.
func WriteJSONL(w io.Writer, r Report) error {
	in, done := StartProfileJSONLWriter(w, len(r.Profiles))
	return feed(in, done, r.Profiles)
}

// feed sends items to a started JSONL writer and waits for it. If the writer
// fails early the remaining items are dropped.
func feed[T any](in chan<- T, done <-chan error, items []T) error {
	for _, v := range items {
		select {
		case in <- v:
		case err := <-done:
			close(in)
			return err
		}
	}
	close(in)
	return <-done
}
