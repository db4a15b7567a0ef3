// pkg/api/profiles_v1.go
package api

// STRV1 is one STR record. Observed is the combined count in both unknown
// sequences and is present only in match reports.
type STRV1 struct {
	Unit        string `json:"unit"`
	Occurrences int    `json:"occurrences"`
	Observed    *int   `json:"observed,omitempty"`
}

// ProfileV1 is the stable JSON/JSONL schema for one stored profile.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ProfileV1 struct {
	Name       string  `json:"name"`
	OfInterest bool    `json:"of_interest"`
	STRs       []STRV1 `json:"strs"`
	Matches    int     `json:"matches,omitempty"`
	Needed     int     `json:"needed,omitempty"`
}

// SummaryV1 describes the whole store after flagging.
type SummaryV1 struct {
	Total         int      `json:"total"`
	OfInterest    int      `json:"of_interest"`
	NotOfInterest int      `json:"not_of_interest"`
	Height        int      `json:"height"`
	Pruned        []string `json:"pruned,omitempty"`
}

// ReportV1 is the single-document JSON report.
type ReportV1 struct {
	Summary  SummaryV1   `json:"summary"`
	Profiles []ProfileV1 `json:"profiles"`
}

// CountV1 answers a count-by-interest query.
type CountV1 struct {
	OfInterest bool `json:"of_interest"`
	Count      int  `json:"count"`
}

// NamesV1 lists profile names in the order the query produced them.
type NamesV1 struct {
	Names []string `json:"names"`
}
