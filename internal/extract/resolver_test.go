package extract

import (
	"testing"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSeeAlso(t *testing.T) {
	x := New(DefaultMarkers())
	res, err := x.Resolve(loadDoc(t, "testdata/olp/entry_amo.html"))
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.False(t, res.RequiresClarification)
	assert.Equal(t, []latin.Candidate{
		{
			Word:     "amor",
			Property: "noun",
			Gloss:    "love, affection",
			Locator:  latin.Locator{Word: "AMOR", Variant: "100"},
		},
		{
			Word:     "amoenus",
			Property: "adjective",
			Gloss:    "pleasant, charming",
			Locator:  latin.Locator{Word: "AMOENUS", Variant: "100"},
		},
	}, res.Candidates)
}

func TestResolveMustChoose(t *testing.T) {
	x := New(DefaultMarkers())
	res, err := x.Resolve(loadDoc(t, "testdata/olp/entry_latus.html"))
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.True(t, res.RequiresClarification)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, latin.Locator{Word: "LATUS", Variant: "100"}, res.Candidates[0].Locator)
	assert.Equal(t, "adjective", res.Candidates[0].Property)
	assert.Equal(t, "side, flank", res.Candidates[1].Gloss)
	for _, c := range res.Candidates {
		assert.NotEmpty(t, c.Locator.Variant)
	}
}

func TestResolveAbsent(t *testing.T) {
	x := New(DefaultMarkers())
	res, err := x.Resolve(loadDoc(t, "testdata/olp/entry_lupa.html"))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Candidates)
}

func TestResolveMalformedRows(t *testing.T) {
	x := New(DefaultMarkers())
	cases := map[string]string{
		"bad href":        `<ul class="disambigua"><li><a href="latin-english-dictionary.php?parola=amo">amo</a> (verb) love</li></ul>`,
		"bad description": `<ul class="disambigua"><li><a href="x.php?lemma=AMO100">amo</a> verb love</li></ul>`,
		"no link":         `<ul class="disambigua"><li>(verb) love</li></ul>`,
		"no second div":   `<div class="ff_search_container"><div class="item"><div><a href="x.php?lemma=AMO100">amo</a> (verb) love</div></div></div>`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := x.Resolve(parseDoc(t, src))
			assert.True(t, latin.IsParseError(err), "got %v", err)
		})
	}
}

func TestMatchCandidateHref(t *testing.T) {
	loc, err := matchCandidateHref("https://example.org/latin-english-dictionary.php?lemma=CANIS100")
	require.NoError(t, err)
	assert.Equal(t, latin.Locator{Word: "CANIS", Variant: "100"}, loc)

	_, err = matchCandidateHref("latin-english-dictionary.php?lemma=100")
	assert.Error(t, err)
}
