// Package query is the narrow read/prune surface over a flagged store.
package query

import "strdb/internal/store"

type Facade struct {
	s *store.Store
}

func New(s *store.Store) *Facade { return &Facade{s: s} }

// MatchingCount counts profiles whose interest flag equals isOfInterest.
func (f *Facade) MatchingCount(isOfInterest bool) int {
	return f.s.CountByInterest(isOfInterest)
}

// UnmarkedNames lists profiles not of interest in level order.
func (f *Facade) UnmarkedNames() []string {
	return f.s.CollectNotOfInterest()
}

// Cleanup removes every profile not of interest and returns the removed names.
func (f *Facade) Cleanup() []string {
	return f.s.Prune()
}
