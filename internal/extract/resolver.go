package extract

import (
	"strings"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/markup"
	"github.com/rs/zerolog/log"
)

// Resolution is the outcome of inspecting an entry page for disambiguation.
type Resolution struct {
	Found                 bool // page has a disambiguation block
	RequiresClarification bool // block is the "must choose" layout
	Candidates            []latin.Candidate
}

// Resolve detects and parses the disambiguation block of an entry page.
//
// A flat list (ul) is a "see also" list attached to a resolved entry. Any
// other container wraps each real row in the second div of its items and
// means the caller has to pick a candidate first.
func (x *Extractor) Resolve(doc markup.Node) (Resolution, error) {
	block, ok := markup.Find(doc, x.is(KindDisambiguation))
	if !ok {
		return Resolution{}, nil
	}

	res := Resolution{
		Found:                 true,
		RequiresClarification: block.Name() != "ul",
		Candidates:            make([]latin.Candidate, 0),
	}
	for _, item := range markup.Elements(block) {
		row := item
		if res.RequiresClarification {
			divs := markup.FindChildren(item, markup.Tag("div"))
			if len(divs) < 2 {
				return Resolution{}, latin.NewParseError("candidate", "item without candidate row: %s", markup.Outer(item))
			}
			row = divs[1]
		}

		cand, skip, err := x.candidate(row)
		if err != nil {
			return Resolution{}, err
		}
		if skip {
			log.Debug().Str("row", strings.TrimSpace(row.Text())).Msg("skipping self-referential candidate")
			continue
		}
		res.Candidates = append(res.Candidates, cand)
	}
	return res, nil
}

// candidate parses one row. Rows linking to the empty anchor are skipped.
func (x *Extractor) candidate(row markup.Node) (latin.Candidate, bool, error) {
	link, ok := markup.Find(row, markup.Tag("a"))
	if !ok {
		return latin.Candidate{}, false, latin.NewParseError("candidate", "row without link: %s", markup.Outer(row))
	}
	href, _ := link.Attr("href")
	if href == "#" {
		return latin.Candidate{}, true, nil
	}
	loc, err := matchCandidateHref(href)
	if err != nil {
		return latin.Candidate{}, false, err
	}

	var parts []string
	for _, ch := range row.Children() {
		if ch.IsElement() && ch.Name() == "a" {
			continue
		}
		parts = append(parts, strings.TrimSpace(ch.Text()))
	}
	desc, err := matchCandidateDesc(strings.TrimSpace(strings.Join(parts, " ")))
	if err != nil {
		return latin.Candidate{}, false, err
	}

	return latin.Candidate{
		Word:     strings.TrimSpace(link.Text()),
		Property: desc.property,
		Gloss:    strings.TrimSpace(desc.gloss),
		Locator:  loc,
	}, false, nil
}
