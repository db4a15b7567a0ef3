// internal/match/match.go
package match

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"strdb/internal/store"
)

// DefaultCacheSize bounds the per-unit occurrence memo.
const DefaultCacheSize = 1024

// CountOccurrences counts non-overlapping occurrences of unit in sequence,
// scanning left to right and resuming right after each match.
// An empty unit, or one longer than sequence, counts 0.
func CountOccurrences(sequence, unit string) int {
	if unit == "" || len(unit) > len(sequence) {
		return 0
	}
	n := 0
	for {
		i := strings.Index(sequence, unit)
		if i < 0 {
			return n
		}
		n++
		sequence = sequence[i+len(unit):]
	}
}

// Threshold is the number of matching records a profile of n records needs:
// half, rounded up.
func Threshold(n int) int {
	return (n + 1) / 2
}

type Config struct {
	CacheSize int // <=0 uses DefaultCacheSize
}

// Engine flags profiles whose STR counts agree with the unknown sequences.
// Combined occurrence totals are memoised per unit for the current pair of
// unknown sequences.
type Engine struct {
	cache        *lru.Cache[string, int]
	first        string
	second       string
	hits, misses uint64
}

func New(cfg Config) *Engine {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size.
	c, _ := lru.New[string, int](size)
	return &Engine{cache: c}
}

// Stats reports memo hits and misses since the engine was created.
func (e *Engine) Stats() (hits, misses uint64) {
	return e.hits, e.misses
}

func (e *Engine) use(first, second string) {
	if first != e.first || second != e.second {
		e.cache.Purge()
		e.first, e.second = first, second
	}
}

// total is the occurrence count of unit across both unknown sequences.
func (e *Engine) total(unit string) int {
	if v, ok := e.cache.Get(unit); ok {
		e.hits++
		return v
	}
	e.misses++
	v := CountOccurrences(e.first, unit) + CountOccurrences(e.second, unit)
	e.cache.Add(unit, v)
	return v
}

// Result is the match detail for one profile.
type Result struct {
	Matches    int
	Needed     int
	OfInterest bool  // threshold met on this evaluation
	Observed   []int // combined occurrence total per STR, in profile order
}

// Evaluate scores p against the unknown sequences of s without mutating anything.
func (e *Engine) Evaluate(s *store.Store, p store.Profile) Result {
	e.use(s.Unknowns())
	return e.evaluate(p)
}

func (e *Engine) evaluate(p store.Profile) Result {
	r := Result{Needed: Threshold(p.Len()), Observed: make([]int, p.Len())}
	for i := 0; i < p.Len(); i++ {
		str := p.At(i)
		r.Observed[i] = e.total(str.Unit)
		if str.Occurrences == r.Observed[i] {
			r.Matches++
		}
	}
	r.OfInterest = r.Matches >= r.Needed
	return r
}

// FlagAll marks every profile in s meeting the threshold as of interest.
// Flags already set are left alone. It returns how many profiles met the
// threshold on this pass.
func (e *Engine) FlagAll(s *store.Store) int {
	e.use(s.Unknowns())
	return s.MarkWhere(func(p store.Profile) bool {
		return e.evaluate(p).OfInterest
	})
}
