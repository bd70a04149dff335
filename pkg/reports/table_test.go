package reports

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoRow struct {
	Machine string  `md:"Machine"`
	Games   int     `md:"Games,right"`
	Median  float64 `md:"Median,right"`
	Active  bool    `md:"Active"`
	Skipped string  `md:"-"`
	NoTag   string
	hidden  float64
}

func TestMarkdownTable(t *testing.T) {
	rows := []demoRow{
		{Machine: "Godzilla", Games: 12, Median: 2500000, Active: true, Skipped: "x", NoTag: "y", hidden: 1},
		{Machine: "Twilight Zone", Games: 3, Median: 88000000.5, Active: false},
	}

	out, err := MarkdownTable(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Machine | Games | Median | Active |", lines[0])
	assert.Equal(t, "| --- | ---: | ---: | --- |", lines[1])
	assert.Equal(t, "| Godzilla | 12 | 2500000.00 | yes |", lines[2])
	assert.Equal(t, "| Twilight Zone | 3 | 88000000.50 | no |", lines[3])
}

func TestMarkdownTableEscapesPipes(t *testing.T) {
	rows := []demoRow{{Machine: "Weird | Name"}}
	out, err := MarkdownTable(rows)
	require.NoError(t, err)
	assert.Contains(t, out, `Weird \| Name`)
}

func TestMarkdownTableInfinity(t *testing.T) {
	rows := []demoRow{{Machine: "Shutout", Median: math.Inf(1)}}
	out, err := MarkdownTable(rows)
	require.NoError(t, err)
	assert.Contains(t, out, "| ∞ |")
}

func TestMarkdownTablePointerRows(t *testing.T) {
	rows := []*demoRow{{Machine: "Godzilla", Games: 1}}
	out, err := MarkdownTable(rows)
	require.NoError(t, err)
	assert.Contains(t, out, "| Godzilla | 1 |")
}

func TestMarkdownTableEmptySliceStillHasHeader(t *testing.T) {
	out, err := MarkdownTable([]demoRow{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2, "header and separator only")
}

func TestMarkdownTableRejectsNonSlices(t *testing.T) {
	if _, err := MarkdownTable(demoRow{}); err == nil {
		t.Error("expected an error for a non-slice")
	}
	if _, err := MarkdownTable([]int{1, 2}); err == nil {
		t.Error("expected an error for a slice of non-structs")
	}
}

func TestMarkdownTableNeedsTaggedFields(t *testing.T) {
	type bare struct{ X int }
	if _, err := MarkdownTable([]bare{{1}}); err == nil {
		t.Error("expected an error for a row type without md tags")
	}
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Godzilla", "godzilla"},
		{"The Machine: Bride of Pin*Bot", "the-machine-bride-of-pin-bot"},
		{"  Wh'o dunnit  ", "wh-o-dunnit"},
		{"---", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Slug(tc.in), "Slug(%q)", tc.in)
	}
}
