// Package extract turns fetched dictionary pages into latin entities.
//
// The source pages carry no schema. Structure is recovered from CSS class
// markers (see Markers), which makes the marker set the compatibility
// surface with the lexical site.
package extract

import (
	"github.com/f3rmion/pulvis/internal/markup"
)

// MarkersVersion identifies the class contract the defaults were taken from.
const MarkersVersion = "olp-2024"

// Markers names the CSS classes and ids the extractor depends on.
type Markers struct {
	Version string `yaml:"version" json:"version"`

	Headword   string `yaml:"headword" json:"headword"`       // lexeme canonical form, reverse lemma token
	GrammarTag string `yaml:"grammar_tag" json:"grammar_tag"` // part of speech, reverse category token
	Gloss      string `yaml:"gloss" json:"gloss"`             // English sense, reverse vocabulary token

	// Flat "see also" list, nested "must choose" list, entry body and
	// reverse container id, conjugation root, opposite-voice link holder,
	// table boundaries and form fragments.
	SeeAlsoList    string `yaml:"see_also_list" json:"see_also_list"`
	ChooseList     string `yaml:"choose_list" json:"choose_list"`
	EntryBodyID    string `yaml:"entry_body_id" json:"entry_body_id"`
	FlexionRoot    string `yaml:"flexion_root" json:"flexion_root"`
	CounterpartBox string `yaml:"counterpart_box" json:"counterpart_box"`
	PlaneTitle     string `yaml:"plane_title" json:"plane_title"`
	GroupTitle     string `yaml:"group_title" json:"group_title"`
	FormContainer  string `yaml:"form_container" json:"form_container"`
	Stem           string `yaml:"stem" json:"stem"`
	Ending         string `yaml:"ending" json:"ending"`
}

// DefaultMarkers returns the class contract of online-latin-dictionary.com.
func DefaultMarkers() Markers {
	return Markers{
		Version:        MarkersVersion,
		Headword:       "lemma",
		GrammarTag:     "grammatica",
		Gloss:          "english",
		SeeAlsoList:    "disambigua",
		ChooseList:     "ff_search_container",
		EntryBodyID:    "myth",
		FlexionRoot:    "conjugation-container",
		CounterpartBox: "lnk",
		PlaneTitle:     "background-red",
		GroupTitle:     "background-green",
		FormContainer:  "ff_tbl_container",
		Stem:           "radice",
		Ending:         "desinenza",
	}
}

// Kind classifies a markup node for the extraction state machines.
type Kind int

const (
	KindNone Kind = iota
	KindLemma
	KindCategory
	KindVocab
	KindPlaneBoundary
	KindGroupBoundary
	KindFormContainer
	KindStem
	KindEnding
	KindDisambiguation
)

var kindNames = map[Kind]string{
	KindNone:           "none",
	KindLemma:          "lemma",
	KindCategory:       "category",
	KindVocab:          "vocabulary",
	KindPlaneBoundary:  "plane",
	KindGroupBoundary:  "group",
	KindFormContainer:  "forms",
	KindStem:           "stem",
	KindEnding:         "ending",
	KindDisambiguation: "disambiguation",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Classifier maps nodes to kinds according to a marker set.
type Classifier struct {
	m Markers
}

// NewClassifier creates a classifier for the given markers.
func NewClassifier(m Markers) Classifier {
	return Classifier{m: m}
}

// Markers returns the marker set of the classifier.
func (c Classifier) Markers() Markers {
	return c.m
}

// Classify returns the kind of n, or KindNone for text nodes and elements
// carrying none of the markers.
func (c Classifier) Classify(n markup.Node) Kind {
	if !n.IsElement() {
		return KindNone
	}
	classes := markup.Classes(n)
	if len(classes) == 0 {
		return KindNone
	}
	switch n.Name() {
	case "span":
		switch classes[0] {
		case c.m.Headword:
			return KindLemma
		case c.m.GrammarTag:
			return KindCategory
		case c.m.Gloss:
			return KindVocab
		case c.m.Stem:
			return KindStem
		case c.m.Ending:
			return KindEnding
		}
	case "div":
		switch {
		case markup.HasClass(n, c.m.PlaneTitle):
			return KindPlaneBoundary
		case markup.HasClass(n, c.m.GroupTitle):
			return KindGroupBoundary
		case markup.HasClass(n, c.m.FormContainer):
			return KindFormContainer
		}
	}
	if markup.HasAnyClass(n, c.m.SeeAlsoList, c.m.ChooseList) {
		return KindDisambiguation
	}
	return KindNone
}

// token reports whether n is a reverse-lookup token: a span whose class list
// is exactly one of the three token markers.
func (c Classifier) token(n markup.Node) Kind {
	if len(markup.Classes(n)) != 1 {
		return KindNone
	}
	switch k := c.Classify(n); k {
	case KindLemma, KindCategory, KindVocab:
		return k
	}
	return KindNone
}
