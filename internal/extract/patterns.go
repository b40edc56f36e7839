package extract

import (
	"regexp"

	"github.com/f3rmion/pulvis/internal/latin"
)

var (
	candidateHrefRe = regexp.MustCompile(`^.*\?lemma=(?P<word>[^0-9]+)(?P<variant>[0-9]+)$`)
	candidateDescRe = regexp.MustCompile(`^\((?P<prop>.+)\)(?P<gloss>.*)$`)
	vocabItemRe     = regexp.MustCompile(`^(\((?P<nuance>.+)\))?\s*(?P<gloss>.*)$`)
)

// namedGroups matches s against re and returns the named submatches.
func namedGroups(re *regexp.Regexp, s string) (map[string]string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	out := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" {
			out[name] = m[i]
		}
	}
	return out, true
}

// matchCandidateHref extracts the target lexeme of a disambiguation link.
func matchCandidateHref(href string) (latin.Locator, error) {
	g, ok := namedGroups(candidateHrefRe, href)
	if !ok {
		return latin.Locator{}, latin.NewParseError("candidate", "unexpected link target %q", href)
	}
	return latin.Locator{Word: g["word"], Variant: g["variant"]}, nil
}

type candidateDesc struct {
	property string
	gloss    string
}

// matchCandidateDesc splits "(property) gloss" row text.
func matchCandidateDesc(text string) (candidateDesc, error) {
	g, ok := namedGroups(candidateDescRe, text)
	if !ok {
		return candidateDesc{}, latin.NewParseError("candidate", "unexpected description %q", text)
	}
	return candidateDesc{property: g["prop"], gloss: g["gloss"]}, nil
}

type vocabMatch struct {
	nuance string
	gloss  string
}

// matchVocabItem splits an optional "(nuance)" prefix from a gloss.
func matchVocabItem(text string) (vocabMatch, bool) {
	g, ok := namedGroups(vocabItemRe, text)
	if !ok {
		return vocabMatch{}, false
	}
	return vocabMatch{nuance: g["nuance"], gloss: g["gloss"]}, true
}
