package extract

import (
	"testing"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/markup"
	"github.com/stretchr/testify/assert"
)

func formsOf(t *testing.T, fragment string) []latin.InflectedForm {
	doc := parseDoc(t, `<div id="frag">`+fragment+`</div>`)
	x := New(DefaultMarkers())
	return x.parseForms(firstMatch(t, doc, markup.ID("frag")))
}

func TestParseFormsCommaRuns(t *testing.T) {
	forms := formsOf(t, `<span class="radice">am</span><span class="desinenza">o</span>`+
		` , <span class="radice">am</span><span class="desinenza">as</span>`)
	assert.Equal(t, []latin.InflectedForm{
		{Stem: "am", Ending: "o"},
		{Stem: "am", Ending: "as"},
	}, forms)
}

func TestParseFormsEndingExpansion(t *testing.T) {
	forms := formsOf(t, `<span class="radice">bon</span><span class="desinenza">– us, – a, – um</span>`)
	assert.Equal(t, []latin.InflectedForm{
		{Stem: "bon", Ending: "us"},
		{Stem: "bon", Ending: "a"},
		{Stem: "bon", Ending: "um"},
	}, forms)
}

func TestParseFormsSuffixContinuation(t *testing.T) {
	forms := formsOf(t, `<span class="radice">amat</span><span class="desinenza">us, a</span> `+
		`<span class="radice">su</span><span class="radice">m</span>`)
	assert.Equal(t, []latin.InflectedForm{
		{Stem: "amat", Ending: "us", Suffix: "sum"},
		{Stem: "amat", Ending: "a", Suffix: "sum"},
	}, forms)
	assert.Equal(t, "amatus sum", forms[0].String())
}

func TestParseFormsStemOnly(t *testing.T) {
	forms := formsOf(t, `<span class="radice">nequam</span>`)
	assert.Equal(t, []latin.InflectedForm{{Stem: "nequam"}}, forms)
}

func TestParseFormsStemCounting(t *testing.T) {
	forms := formsOf(t, `<span class="radice">x</span><span class="radice">y</span>`)
	assert.Equal(t, []latin.InflectedForm{{Stem: "y"}}, forms)

	forms = formsOf(t, `<span class="radice">x</span><span class="radice">y</span><span class="radice">z</span>`)
	assert.Equal(t, []latin.InflectedForm{{Stem: "y"}}, forms)

	forms = formsOf(t, `<span class="radice">x</span><span class="desinenza">a</span><span class="radice">z</span>`)
	assert.Equal(t, []latin.InflectedForm{{Stem: "x", Ending: "a", Suffix: "z"}}, forms)
}

func TestParseFormsIgnoresNoise(t *testing.T) {
	forms := formsOf(t, ` , <b>note</b> <span class="radice">rex</span> , , `)
	assert.Equal(t, []latin.InflectedForm{{Stem: "rex"}}, forms)
}

func TestParseFormsEmpty(t *testing.T) {
	assert.Empty(t, formsOf(t, ``))
}

func TestSplitEndings(t *testing.T) {
	assert.Equal(t, []string{"us", "a", "um"}, splitEndings("– us, – a, – um"))
	assert.Equal(t, []string{"i"}, splitEndings("i"))
}
