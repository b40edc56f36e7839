package extract

import (
	"testing"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reverseOf(t *testing.T, body string) ([]latin.ReverseEntry, error) {
	x := New(DefaultMarkers())
	container, ok := x.ReverseContainer(parseDoc(t, `<div id="myth">`+body+`</div>`))
	require.True(t, ok)
	return x.ReverseEntries(container)
}

func TestReverseEntriesFixture(t *testing.T) {
	x := New(DefaultMarkers())
	container, ok := x.ReverseContainer(loadDoc(t, "testdata/olp/reverse_wolf.html"))
	require.True(t, ok)

	entries, err := x.ReverseEntries(container)
	require.NoError(t, err)
	assert.Equal(t, []latin.ReverseEntry{
		{
			Lemma: "wolf",
			Categories: []latin.Category{
				{Name: "noun", Items: []latin.VocabItem{
					{Word: "lupa", Nuance: "fem."},
					{Word: "lupula"},
					{Word: "lupus"},
				}},
				{Name: "verb", Items: []latin.VocabItem{{Word: "voro"}}},
			},
		},
		{
			Lemma: "she-wolf",
			Categories: []latin.Category{
				{Name: "noun", Items: []latin.VocabItem{{Word: "lupa"}}},
			},
		},
	}, entries)
}

func TestReverseEntriesTwoLemmas(t *testing.T) {
	entries, err := reverseOf(t, `<span class="lemma">A</span><span class="grammatica">n</span>`+
		`<span class="english">x</span><span class="english">y</span>`+
		`<span class="grammatica">v</span><span class="english">z</span>`+
		`<span class="lemma">B</span><span class="grammatica">n</span><span class="english">w</span>`)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	a := entries[0]
	assert.Equal(t, "A", a.Lemma)
	n, ok := a.Category("n")
	require.True(t, ok)
	assert.Equal(t, []latin.VocabItem{{Word: "x"}, {Word: "y"}}, n.Items)
	v, ok := a.Category("v")
	require.True(t, ok)
	assert.Equal(t, []latin.VocabItem{{Word: "z"}}, v.Items)

	assert.Equal(t, "B", entries[1].Lemma)
	assert.Equal(t, []latin.VocabItem{{Word: "w"}}, entries[1].Categories[0].Items)
}

func TestReverseNuanceSplitting(t *testing.T) {
	entries, err := reverseOf(t, `<span class="lemma">wolf</span><span class="grammatica">noun</span>`+
		`<span class="english">(female) she-wolf, vixen</span>`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []latin.VocabItem{
		{Word: "she-wolf", Nuance: "female"},
		{Word: "vixen"},
	}, entries[0].Categories[0].Items)
}

func TestReverseSplitsOnTextNodes(t *testing.T) {
	entries, err := reverseOf(t, `<span class="lemma">go</span><span class="grammatica">verb</span>`+
		`<span class="english">eo<br>vado</span>`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []latin.VocabItem{{Word: "eo"}, {Word: "vado"}}, entries[0].Categories[0].Items)
}

func TestReverseStrayCategoryRunIsDropped(t *testing.T) {
	entries, err := reverseOf(t, `<span class="grammatica">orphan</span>`+
		`<span class="lemma">A</span><span class="grammatica">n</span><span class="english">x</span>`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].Lemma)
}

func TestReverseRepeatedLemmaKeepsFirst(t *testing.T) {
	entries, err := reverseOf(t, `<span class="lemma">A</span><span class="lemma">B</span>`+
		`<span class="grammatica">n</span><span class="english">x</span>`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].Lemma)
}

func TestReverseTruncatedEntryIsDropped(t *testing.T) {
	entries, err := reverseOf(t, `<span class="lemma">A</span><span class="grammatica">n</span>`)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = reverseOf(t, ``)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestReverseVocabOutsideVocabState(t *testing.T) {
	_, err := reverseOf(t, `<span class="lemma">A</span><span class="english">x</span>`)
	assert.True(t, latin.IsParseError(err))

	_, err = reverseOf(t, `<span class="english">x</span>`)
	assert.True(t, latin.IsParseError(err))
}

func TestReverseLemmaInsideVocab(t *testing.T) {
	_, err := reverseOf(t, `<span class="lemma">A</span><span class="grammatica">n</span><span class="lemma">B</span>`)
	assert.True(t, latin.IsParseError(err))
}

func TestReverseTransitionTable(t *testing.T) {
	cases := []struct {
		state  reverseState
		kind   Kind
		next   reverseState
		action reverseAction
	}{
		{stateLemma, KindLemma, stateCategory, actionSetLemma},
		{stateLemma, KindCategory, stateLemma, actionSkip},
		{stateCategory, KindLemma, stateCategory, actionSkip},
		{stateCategory, KindCategory, stateVocab, actionSetCategory},
		{stateVocab, KindVocab, stateVocab, actionAddVocab},
	}
	for _, c := range cases {
		tr, err := step(c.state, c.kind)
		require.NoError(t, err, "%s/%s", c.state, c.kind)
		assert.Equal(t, c.next, tr.next, "%s/%s", c.state, c.kind)
		assert.Equal(t, c.action, tr.action, "%s/%s", c.state, c.kind)
	}

	rejected := []struct {
		state reverseState
		kind  Kind
	}{
		{stateLemma, KindVocab},
		{stateCategory, KindVocab},
		{stateVocab, KindLemma},
		{stateVocab, KindCategory},
		{stateDone, KindLemma},
	}
	for _, c := range rejected {
		_, err := step(c.state, c.kind)
		assert.True(t, latin.IsParseError(err), "%s/%s", c.state, c.kind)
	}
}

func TestExtractionIsDeterministic(t *testing.T) {
	x := New(DefaultMarkers())
	doc := loadDoc(t, "testdata/olp/reverse_wolf.html")
	container, _ := x.ReverseContainer(doc)
	first, err := x.ReverseEntries(container)
	require.NoError(t, err)
	second, err := x.ReverseEntries(container)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	root, _ := x.FlexionRoot(loadDoc(t, "testdata/olp/flexion_amo_active.html"))
	t1, err := x.InflectionTable(root)
	require.NoError(t, err)
	t2, err := x.InflectionTable(root)
	require.NoError(t, err)
	assert.Equal(t, t1, t2)
}
