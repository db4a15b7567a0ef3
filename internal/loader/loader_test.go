package loader

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strdb/internal/store"
)

const sample = `AATGAATGTTCC
GATAGATAGATA
3
Ann Smith 2 AATG 2
GATA 3
Jane Doe 3 AATG 7 TTCC 1 GATA 0
Bo Young 2 TTCC 1 AGAT 9
`

func TestRead(t *testing.T) {
	d, err := Read(context.Background(), strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "AATGAATGTTCC", d.First)
	assert.Equal(t, "GATAGATAGATA", d.Second)
	require.Len(t, d.People, 3)
	assert.Equal(t, "Smith, Ann", d.People[0].FullName())
	assert.Equal(t, []store.STR{{Unit: "AATG", Occurrences: 2}, {Unit: "GATA", Occurrences: 3}}, d.People[0].STRs)
	assert.Equal(t, "Doe, Jane", d.People[1].FullName())
	assert.Len(t, d.People[1].STRs, 3)
}

func TestReadZeroSTRsAndCRLF(t *testing.T) {
	in := "AC\r\nGT\r\n1\r\nNo Strs 0\r\n"
	d, err := Read(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "AC", d.First)
	assert.Equal(t, "GT", d.Second)
	require.Len(t, d.People, 1)
	assert.Empty(t, d.People[0].STRs)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrTruncated},
		{"no second sequence", "AAAA\n", ErrTruncated},
		{"bad people count", "A\nB\nthree\n", ErrBadCount},
		{"negative people count", "A\nB\n-1\n", ErrBadCount},
		{"truncated person", "A\nB\n2\nAnn Smith 0\nJane\n", ErrTruncated},
		{"bad STR count", "A\nB\n1\nAnn Smith x\n", ErrBadCount},
		{"bad occurrence", "A\nB\n1\nAnn Smith 1 AATG -2\n", ErrBadCount},
		{"missing pairs", "A\nB\n1\nAnn Smith 2 AATG 1\n", ErrTruncated},
		{"huge people count", "A\nB\n9223372036854775807\n", ErrTruncated},
		{"huge STR count", "A\nB\n1\nAnn Smith 9223372036854775807 AATG 1\n", ErrTruncated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(context.Background(), strings.NewReader(tc.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestReadErrorNamesPerson(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader("A\nB\n2\nAnn Smith 0\nJane Doe 1 AATG z\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "person 2")
	assert.Contains(t, err.Error(), "AATG")
}

func TestPopulateOverwritesDuplicates(t *testing.T) {
	in := "A\nB\n2\nAnn Smith 1 AATG 1\nAnn Smith 1 GATA 4\n"
	d, err := Read(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	s := store.New("", "")
	d.Populate(context.Background(), s)
	assert.Equal(t, 1, s.Len())
	p, ok := s.Lookup("Smith, Ann")
	require.True(t, ok)
	assert.Equal(t, "GATA", p.At(0).Unit)
	first, second := s.Unknowns()
	assert.Equal(t, "A", first)
	assert.Equal(t, "B", second)
}

func TestBuildStoreGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.txt.gz")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())

	s, err := BuildStore(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Doe, Jane", "Smith, Ann", "Young, Bo"}, s.Names())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFileWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("A\n"), 0o644))
	_, err := LoadFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
