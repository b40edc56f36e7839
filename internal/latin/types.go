// Package latin provides the core data model for Latin dictionary lookups.
package latin

// Voice names a top-level inflection table of a forward entry.
type Voice string

const (
	VoiceActive     Voice = "active"     // Active voice conjugation
	VoicePassive    Voice = "passive"    // Passive voice conjugation
	VoiceInflection Voice = "inflection" // Single unlabeled table (nominals, invariants)
)

// Opposite returns the counterpart voice, or "" for VoiceInflection.
func (v Voice) Opposite() Voice {
	switch v {
	case VoiceActive:
		return VoicePassive
	case VoicePassive:
		return VoiceActive
	default:
		return ""
	}
}

// WordMeaning holds the sense data of one concrete lexeme.
type WordMeaning struct {
	Lemma    string   `json:"lemma"`    // Canonical headword
	Grammar  string   `json:"grammar"`  // Part-of-speech / inflectional class label
	Meanings []string `json:"meanings"` // English glosses in document order
}

// InflectedForm is one inflected realization: stem + ending + trailing text.
type InflectedForm struct {
	Stem   string `json:"stem"`
	Ending string `json:"ending"` // May be empty when the category has no distinct endings
	Suffix string `json:"suffix"` // Trailing text of compound forms (e.g. "sum")
}

// String joins the parts the way a dictionary prints them.
func (f InflectedForm) String() string {
	s := f.Stem + f.Ending
	if f.Suffix != "" {
		s += " " + f.Suffix
	}
	return s
}

// InflectionRow is one named inflection category within a group.
type InflectionRow struct {
	Label string          `json:"label"` // e.g. "Nominative", "1st person"
	Forms []InflectedForm `json:"forms"`
}

// InflectionGroup is a titled collection of rows sharing a sub-heading.
type InflectionGroup struct {
	Title string          `json:"title"`
	Rows  []InflectionRow `json:"rows"`
}

// InflectionPlane is a top-level grouping of an inflection table.
type InflectionPlane struct {
	Title  string            `json:"title"`
	Groups []InflectionGroup `json:"groups"`
}

// Group returns the group with the given title.
func (p *InflectionPlane) Group(title string) (*InflectionGroup, bool) {
	for i := range p.Groups {
		if p.Groups[i].Title == title {
			return &p.Groups[i], true
		}
	}
	return nil, false
}

// InflectionTable is the full conjugation or declension of one lexeme or voice.
// Planes keep document order.
type InflectionTable struct {
	Planes []InflectionPlane `json:"planes"`
}

// Plane returns the plane with the given title.
func (t *InflectionTable) Plane(title string) (*InflectionPlane, bool) {
	for i := range t.Planes {
		if t.Planes[i].Title == title {
			return &t.Planes[i], true
		}
	}
	return nil, false
}

// Candidate is one disambiguation choice.
type Candidate struct {
	Word     string  `json:"word"`
	Property string  `json:"property"` // Parenthesized grammatical property
	Gloss    string  `json:"gloss"`
	Locator  Locator `json:"locator"`
}

// ForwardEntry is the complete result of a Latin to English lookup.
//
// Either RequiresClarification is set and Candidates holds the choices, or
// Meaning is present. Candidates of a resolved entry are "see also" links.
// Voices maps each applicable voice to its table; a nil table means the voice
// exists but its page was not available.
type ForwardEntry struct {
	Locator               Locator                    `json:"locator"`
	Meaning               *WordMeaning               `json:"meaning,omitempty"`
	RequiresClarification bool                       `json:"requiresClarification"`
	Candidates            []Candidate                `json:"candidates"`
	Voices                map[Voice]*InflectionTable `json:"voices"`
}

// VoiceOrder lists the voices of the entry in display order.
func (e *ForwardEntry) VoiceOrder() []Voice {
	var out []Voice
	for _, v := range []Voice{VoiceActive, VoicePassive, VoiceInflection} {
		if _, ok := e.Voices[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

// VocabItem is one Latin word offered for an English query.
type VocabItem struct {
	Word   string `json:"word"`
	Nuance string `json:"nuance"` // Parenthetical qualifier, may be empty
}

// Category groups vocabulary items under one grammatical category.
type Category struct {
	Name  string      `json:"name"`
	Items []VocabItem `json:"items"`
}

// ReverseEntry is one lemma's worth of English to Latin data.
type ReverseEntry struct {
	Lemma      string     `json:"lemma"`
	Categories []Category `json:"categories"`
}

// Category returns the category with the given name.
func (e *ReverseEntry) Category(name string) (*Category, bool) {
	for i := range e.Categories {
		if e.Categories[i].Name == name {
			return &e.Categories[i], true
		}
	}
	return nil, false
}

// ReverseResult is the complete result of an English to Latin lookup.
type ReverseResult struct {
	Query   string         `json:"query"`
	Entries []ReverseEntry `json:"entries"`
}
