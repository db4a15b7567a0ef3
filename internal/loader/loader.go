// internal/loader/loader.go
package loader

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"strdb/internal/logging"
	"strdb/internal/store"
)

var (
	ErrTruncated = errors.New("unexpected end of input")
	ErrBadCount  = errors.New("bad count")
)

// Person is one profile as read from the database file.
type Person struct {
	First string
	Last  string
	STRs  []store.STR
}

// FullName is the store key, "Last, First".
func (p Person) FullName() string { return p.Last + ", " + p.First }

// Dataset is a parsed database file.
type Dataset struct {
	First  string // first unknown sequence
	Second string // second unknown sequence
	People []Person
}

// Populate sets the unknown sequences on s and inserts every person in file
// order. A repeated name replaces the earlier profile.
func (d *Dataset) Populate(ctx context.Context, s *store.Store) {
	logger := logging.GetCtxLogger(logging.WithScope(ctx, "loader"))
	s.SetUnknowns(d.First, d.Second)
	for _, p := range d.People {
		name := p.FullName()
		if _, dup := s.Lookup(name); dup {
			logger.Warn().Str("name", name).Msg("duplicate profile replaces earlier entry")
		}
		s.Insert(name, store.NewProfile(p.STRs...))
	}
}

// Read parses a database:
//
//	<first unknown sequence>
//	<second unknown sequence>
//	<number of people>
//	<first> <last> <n> <unit> <count> ... (n unit/count pairs, any whitespace)
func Read(ctx context.Context, r io.Reader) (*Dataset, error) {
	logger := logging.GetCtxLogger(logging.WithScope(ctx, "loader"))
	br := bufio.NewReader(r)

	var d Dataset
	var err error
	if d.First, err = readLine(br); err != nil {
		return nil, fmt.Errorf("first unknown sequence: %w", err)
	}
	if d.Second, err = readLine(br); err != nil {
		return nil, fmt.Errorf("second unknown sequence: %w", err)
	}
	countLine, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("people count: %w", err)
	}
	people, err := parseCount(strings.TrimSpace(countLine))
	if err != nil {
		return nil, fmt.Errorf("people count: %w", err)
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", ErrTruncated
	}

	d.People = make([]Person, 0, min(people, maxPrealloc))
	for i := 0; i < people; i++ {
		p, err := readPerson(next)
		if err != nil {
			return nil, fmt.Errorf("person %d: %w", i+1, err)
		}
		d.People = append(d.People, p)
	}
	if sc.Scan() {
		logger.Warn().Int("people", people).Str("token", sc.Text()).Msg("ignoring trailing input")
	}
	logger.Debug().Int("people", len(d.People)).Msg("database read")
	return &d, nil
}

// maxPrealloc bounds slice capacity taken from counts in the file; larger
// counts grow by append and fail as truncated input.
const maxPrealloc = 1024

func readPerson(next func() (string, error)) (Person, error) {
	var p Person
	var err error
	if p.First, err = next(); err != nil {
		return p, err
	}
	if p.Last, err = next(); err != nil {
		return p, err
	}
	tok, err := next()
	if err != nil {
		return p, err
	}
	n, err := parseCount(tok)
	if err != nil {
		return p, fmt.Errorf("STR count: %w", err)
	}
	p.STRs = make([]store.STR, 0, min(n, maxPrealloc))
	for j := 0; j < n; j++ {
		unit, err := next()
		if err != nil {
			return p, err
		}
		tok, err := next()
		if err != nil {
			return p, err
		}
		occ, err := parseCount(tok)
		if err != nil {
			return p, fmt.Errorf("STR %s: %w", unit, err)
		}
		p.STRs = append(p.STRs, store.NewSTR(unit, occ))
	}
	return p, nil
}

func parseCount(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w %q", ErrBadCount, tok)
	}
	return n, nil
}

// readLine returns one line without its terminator. A final line without a
// newline is accepted; no line at all is ErrTruncated.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", ErrTruncated
		}
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// LoadFile reads a database from path; "-" is stdin and a .gz suffix is
// decompressed.
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	d, err := Read(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// BuildStore loads path into a fresh store.
func BuildStore(ctx context.Context, path string) (*store.Store, error) {
	d, err := LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	s := store.New("", "")
	d.Populate(ctx, s)
	return s, nil
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
