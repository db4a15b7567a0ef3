package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strdb/internal/match"
	"strdb/internal/store"
	"strdb/pkg/api"
)

func flaggedStore(t *testing.T) (*store.Store, *match.Engine) {
	t.Helper()
	s := store.New("AATGAATGTTCC", "GATAGATAGATA")
	s.Insert("Smith, Ann", store.NewProfile(store.NewSTR("AATG", 2), store.NewSTR("GATA", 3)))
	s.Insert("Doe, Jane", store.NewProfile(
		store.NewSTR("AATG", 7), store.NewSTR("TTCC", 1), store.NewSTR("GATA", 0)))
	s.Insert("Young, Bo", store.NewProfile(store.NewSTR("TTCC", 1), store.NewSTR("AGAT", 9)))
	e := match.New(match.Config{})
	e.FlagAll(s)
	return s, e
}

func TestNewReport(t *testing.T) {
	s, e := flaggedStore(t)
	r := NewReport(s, e)

	assert.Equal(t, api.SummaryV1{Total: 3, OfInterest: 2, NotOfInterest: 1, Height: 2}, r.Summary)
	require.Len(t, r.Profiles, 3)
	doe := r.Profiles[0]
	assert.Equal(t, "Doe, Jane", doe.Name)
	assert.False(t, doe.OfInterest)
	assert.Equal(t, 1, doe.Matches)
	assert.Equal(t, 2, doe.Needed)
	require.NotNil(t, doe.STRs[0].Observed)
	assert.Equal(t, 2, *doe.STRs[0].Observed)
	assert.Equal(t, "Smith, Ann", r.Tree.Name)
}

func TestNewReportWithoutEngine(t *testing.T) {
	s, _ := flaggedStore(t)
	r := NewReport(s, nil)
	assert.Nil(t, r.Profiles[0].STRs[0].Observed)
	assert.Zero(t, r.Profiles[0].Needed)
}

func TestUnknownFormat(t *testing.T) {
	var b bytes.Buffer
	err := WriteReport("nope-format", &b, Report{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")

	assert.Error(t, WriteNames("???", &b, nil))
	assert.Error(t, WriteCount("wat", &b, true, 1))
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "jsonl", "text", "tree"}, Formats())
}

func TestWriteText(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	s, e := flaggedStore(t)
	var b bytes.Buffer
	require.NoError(t, WriteReport("text", &b, NewReport(s, e)))
	out := b.String()
	for _, want := range []string{"NAME", "Doe, Jane", "Smith, Ann", "Young, Bo", "AATG=7(2)", "1/2",
		"# total=3 of_interest=2 not_of_interest=1 height=2"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteReport("text", &b, NewReport(store.New("", ""), nil)))
	assert.Equal(t, "# total=0 of_interest=0 not_of_interest=0 height=0\n", b.String())
}

func TestWriteJSON(t *testing.T) {
	s, e := flaggedStore(t)
	var b bytes.Buffer
	require.NoError(t, WriteReport("json", &b, NewReport(s, e)))

	var got api.ReportV1
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, 3, got.Summary.Total)
	require.Len(t, got.Profiles, 3)
	assert.Equal(t, "Young, Bo", got.Profiles[2].Name)
	assert.True(t, got.Profiles[2].OfInterest)
}

func TestWriteJSONL(t *testing.T) {
	s, e := flaggedStore(t)
	var b bytes.Buffer
	require.NoError(t, WriteReport("jsonl", &b, NewReport(s, e)))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	var p api.ProfileV1
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &p))
	assert.Equal(t, "Smith, Ann", p.Name)
}

func TestWriteTree(t *testing.T) {
	s, e := flaggedStore(t)
	var b bytes.Buffer
	require.NoError(t, WriteReport("tree", &b, NewReport(s, e)))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "Smith, Ann *\n"), out)
	assert.Contains(t, out, "[L]  Doe, Jane\n")
	assert.Contains(t, out, "[R]  Young, Bo *\n")

	b.Reset()
	require.NoError(t, WriteTree(&b, Report{}))
	assert.Equal(t, "(empty)\n", b.String())
}

func TestWriteNames(t *testing.T) {
	names := []string{"Doe, Jane", "Lee, Kim"}
	tests := []struct {
		format, want string
	}{
		{"text", "Doe, Jane\nLee, Kim\n"},
		{"tree", "Doe, Jane\nLee, Kim\n"},
		{"jsonl", "\"Doe, Jane\"\n\"Lee, Kim\"\n"},
		{"json", "{\n  \"names\": [\n    \"Doe, Jane\",\n    \"Lee, Kim\"\n  ]\n}\n"},
	}
	for _, tc := range tests {
		var b bytes.Buffer
		require.NoError(t, WriteNames(tc.format, &b, names), tc.format)
		assert.Equal(t, tc.want, b.String(), tc.format)
	}

	var b bytes.Buffer
	require.NoError(t, WriteNames("json", &b, nil))
	assert.Contains(t, b.String(), "\"names\": []")
}

func TestWriteCount(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteCount("text", &b, true, 4))
	assert.Equal(t, "4\n", b.String())

	b.Reset()
	require.NoError(t, WriteCount("tree", &b, false, 2))
	assert.Equal(t, "2\n", b.String())

	b.Reset()
	require.NoError(t, WriteCount("jsonl", &b, true, 3))
	assert.Equal(t, "{\"of_interest\":true,\"count\":3}\n", b.String())

	b.Reset()
	require.NoError(t, WriteCount("json", &b, false, 2))
	var got api.CountV1
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, api.CountV1{OfInterest: false, Count: 2}, got)
}
