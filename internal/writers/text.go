// internal/writers/text.go
package writers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"strdb/pkg/api"
)

func init() {
	RegisterReport("text", WriteText)
	RegisterNames("text", writeNamesText)
	RegisterCount("text", func(w io.Writer, _ bool, n int) error {
		_, err := fmt.Fprintln(w, n)
		return err
	})
}

// WriteText renders the profiles as a table followed by a one-line summary.
func WriteText(w io.Writer, r Report) error {
	if len(r.Profiles) > 0 {
		data := pterm.TableData{{"NAME", "INTEREST", "MATCHES", "STRS"}}
		for _, p := range r.Profiles {
			data = append(data, []string{p.Name, interestLabel(p.OfInterest), matchLabel(p), strsLabel(p.STRs)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, table); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "# total=%d of_interest=%d not_of_interest=%d height=%d\n",
		r.Summary.Total, r.Summary.OfInterest, r.Summary.NotOfInterest, r.Summary.Height)
	if err != nil {
		return err
	}
	if len(r.Summary.Pruned) > 0 {
		_, err = fmt.Fprintf(w, "# pruned=%s\n", strings.Join(r.Summary.Pruned, "; "))
	}
	return err
}

func writeNamesText(w io.Writer, names []string) error {
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

func interestLabel(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func matchLabel(p api.ProfileV1) string {
	if p.Needed == 0 && p.Matches == 0 {
		return "-"
	}
	return strconv.Itoa(p.Matches) + "/" + strconv.Itoa(p.Needed)
}

// strsLabel renders "AATG=2(2) TTCC=4(3)": recorded count, then observed when known.
func strsLabel(strs []api.STRV1) string {
	parts := make([]string, len(strs))
	for i, s := range strs {
		parts[i] = s.Unit + "=" + strconv.Itoa(s.Occurrences)
		if s.Observed != nil {
			parts[i] += "(" + strconv.Itoa(*s.Observed) + ")"
		}
	}
	return strings.Join(parts, " ")
}
