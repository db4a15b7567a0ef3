package writers

import (
	"strdb/internal/match"
	"strdb/internal/store"
	"strdb/pkg/api"
)

// Report is everything a report writer may render.
type Report struct {
	Summary  api.SummaryV1
	Profiles []api.ProfileV1 // ascending name order
	Tree     *store.NodeView
}

// NewReport snapshots s. When e is non-nil each profile carries its match
// detail against the store's unknown sequences.
func NewReport(s *store.Store, e *match.Engine) Report {
	r := Report{
		Summary: api.SummaryV1{
			Total:         s.Len(),
			OfInterest:    s.CountByInterest(true),
			NotOfInterest: s.CountByInterest(false),
			Height:        s.Height(),
		},
		Profiles: make([]api.ProfileV1, 0, s.Len()),
		Tree:     s.Snapshot(),
	}
	s.Walk(func(name string, p store.Profile) bool {
		r.Profiles = append(r.Profiles, ToAPIProfile(s, e, name, p))
		return true
	})
	return r
}

// ToAPIProfile converts one stored profile to the v1 schema.
func ToAPIProfile(s *store.Store, e *match.Engine, name string, p store.Profile) api.ProfileV1 {
	out := api.ProfileV1{
		Name:       name,
		OfInterest: p.OfInterest(),
		STRs:       make([]api.STRV1, p.Len()),
	}
	var res *match.Result
	if e != nil {
		r := e.Evaluate(s, p)
		res = &r
		out.Matches, out.Needed = r.Matches, r.Needed
	}
	for i := 0; i < p.Len(); i++ {
		str := p.At(i)
		out.STRs[i] = api.STRV1{Unit: str.Unit, Occurrences: str.Occurrences}
		if res != nil {
			obs := res.Observed[i]
			out.STRs[i].Observed = &obs
		}
	}
	return out
}
