package extract

import (
	"strings"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/markup"
)

// Meaning reads the headword, grammar tag and glosses of an entry body.
func (x *Extractor) Meaning(body markup.Node) (*latin.WordMeaning, error) {
	lemma, ok := markup.Find(body, x.is(KindLemma))
	if !ok {
		return nil, latin.NewParseError("meaning", "entry body has no headword")
	}
	grammar, ok := markup.Find(body, x.is(KindCategory))
	if !ok {
		return nil, latin.NewParseError("meaning", "entry body has no grammar tag")
	}

	meaning := &latin.WordMeaning{
		Lemma:    strings.TrimSpace(lemma.Text()),
		Grammar:  strings.TrimSpace(grammar.Text()),
		Meanings: make([]string, 0),
	}
	for _, gloss := range markup.FindAll(body, x.is(KindVocab)) {
		meaning.Meanings = append(meaning.Meanings, strings.TrimSpace(gloss.Text()))
	}
	return meaning, nil
}
