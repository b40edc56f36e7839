package anki

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromForward(t *testing.T) {
	e := &latin.ForwardEntry{Meaning: &latin.WordMeaning{
		Lemma:    "lupa",
		Grammar:  "Noun, 1st declension, feminine",
		Meanings: []string{"she-wolf", "prostitute"},
	}}
	n, ok := FromForward(e)
	require.True(t, ok)
	assert.Equal(t, "lupa", n.Front)
	assert.Equal(t, "Noun, 1st declension, feminine: she-wolf; prostitute", n.Back)

	_, ok = FromForward(&latin.ForwardEntry{RequiresClarification: true})
	assert.False(t, ok)
	_, ok = FromForward(nil)
	assert.False(t, ok)
}

func TestFromReverse(t *testing.T) {
	r := &latin.ReverseResult{Query: "wolf", Entries: []latin.ReverseEntry{{
		Lemma: "wolf",
		Categories: []latin.Category{
			{Name: "noun", Items: []latin.VocabItem{{Word: "lupa", Nuance: "fem."}, {Word: "lupus"}}},
			{Name: "verb", Items: []latin.VocabItem{{Word: "voro"}}},
		},
	}}}
	notes := FromReverse(r)
	require.Len(t, notes, 3)
	assert.Equal(t, Note{Front: "lupa", Back: "wolf (fem.)", Tags: []string{"pulvis", "eng", "noun"}}, notes[0])
	assert.Equal(t, "wolf", notes[1].Back)
	assert.Equal(t, "verb", notes[2].Tags[2])
	assert.Nil(t, FromReverse(nil))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Note{
		{Front: "amō", Back: "to love", Tags: []string{"pulvis", "latin"}},
		{Front: "lupa", Back: "she-wolf"},
	})
	require.NoError(t, err)
	assert.Equal(t, "#separator:tab\n#html:false\n#tags column:3\n"+
		"amō\tto love\tpulvis latin\n"+
		"lupa\tshe-wolf\t\n", buf.String())
}

func TestSaveAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	require.NoError(t, SaveAs(path, []Note{{Front: "lupus", Back: "wolf"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lupus\twolf\t\n")

	assert.Error(t, SaveAs(filepath.Join(t.TempDir(), "missing", "deck.txt"), nil))
}

func TestSaveAsPackage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.apkg")
	require.NoError(t, SaveAs(path, []Note{
		{Front: "lupa", Back: "she-wolf", Tags: []string{"pulvis", "latin"}},
		{Front: "amō", Back: "to love"},
	}))

	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()
	assert.Equal(t, []Note{
		{Front: "lupa", Back: "she-wolf", Tags: []string{"pulvis", "latin"}},
		{Front: "amō", Back: "to love"},
	}, pkg.Notes)
}

func TestSaveAsPackageMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.APKG")
	require.NoError(t, SaveAs(path, []Note{{Front: "lupa", Back: "she-wolf"}}))
	require.NoError(t, SaveAs(path, []Note{
		{Front: "lupa", Back: "changed"},
		{Front: "lupus", Back: "wolf"},
	}))

	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()
	require.Len(t, pkg.Notes, 2)
	assert.Equal(t, "she-wolf", pkg.Notes[0].Back)
	assert.Equal(t, "lupus", pkg.Notes[1].Front)
}

func TestOpenPackageRejectsPlainFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.apkg")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	_, err := OpenPackage(path)
	assert.Error(t, err)
	assert.Error(t, SaveAs(path, nil))
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, checksum("lupa"), checksum("lupa"))
	assert.NotEqual(t, checksum("lupa"), checksum("lupus"))
	assert.Len(t, guid("lupa"), 10)
}
