// internal/store/profile.go
package store

// STR is one short tandem repeat unit with its observed occurrence count.
type STR struct {
	Unit        string
	Occurrences int
}

func NewSTR(unit string, occurrences int) STR {
	return STR{Unit: unit, Occurrences: occurrences}
}

// Profile is the ordered STR list for one person plus the interest flag.
// Order of the STRs is the order they were read in.
type Profile struct {
	strs       []STR
	ofInterest bool
}

// NewProfile copies strs; the caller keeps ownership of its slice.
func NewProfile(strs ...STR) *Profile {
	return &Profile{strs: append([]STR(nil), strs...)}
}

func (p Profile) Len() int         { return len(p.strs) }
func (p Profile) At(i int) STR     { return p.strs[i] }
func (p Profile) OfInterest() bool { return p.ofInterest }

// STRs returns a copy of the records in the order they were given.
func (p Profile) STRs() []STR {
	return append([]STR(nil), p.strs...)
}

func (p *Profile) clone() *Profile {
	return &Profile{strs: append([]STR(nil), p.strs...), ofInterest: p.ofInterest}
}
