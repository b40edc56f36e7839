package extract

import (
	"strings"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/markup"
)

const (
	defaultGroupTitle = "DEFAULT"
	invariantLabel    = "Invariant"
)

// LeadingVoice reads the voice label that opens a flexion container.
// Containers without an ACTIVE/PASSIVE label hold a single inflection table.
func (x *Extractor) LeadingVoice(root markup.Node) latin.Voice {
	first, ok := markup.FindChild(root, markup.Tag("div"))
	if !ok {
		return latin.VoiceInflection
	}
	label := strings.TrimSpace(first.Text())
	switch {
	case strings.HasPrefix(label, "ACTIVE"):
		return latin.VoiceActive
	case strings.HasPrefix(label, "PASSIVE"):
		return latin.VoicePassive
	default:
		return latin.VoiceInflection
	}
}

// CounterpartLink returns the site-relative link to the opposite voice table.
func (x *Extractor) CounterpartLink(root markup.Node) (string, bool) {
	box, ok := markup.FindChild(root, markup.And(markup.Tag("span"), markup.Class(x.c.m.CounterpartBox)))
	if !ok {
		return "", false
	}
	a, ok := markup.FindChild(box, markup.Tag("a"))
	if !ok {
		return "", false
	}
	href, ok := a.Attr("href")
	return href, ok && href != ""
}

// InflectionTable parses a conjugation/declension container into planes of
// titled groups of form rows.
func (x *Extractor) InflectionTable(root markup.Node) (*latin.InflectionTable, error) {
	table := &latin.InflectionTable{Planes: make([]latin.InflectionPlane, 0)}

	var (
		title    string
		inPlane  bool
		collects []markup.Node
	)
	closePlane := func() error {
		if len(collects) == 0 {
			return nil
		}
		plane, err := x.plane(title, collects)
		if err != nil {
			return err
		}
		putPlane(table, plane)
		collects = nil
		return nil
	}

	for _, n := range markup.FindAll(root, x.isTablePart) {
		if x.c.Classify(n) == KindPlaneBoundary {
			if err := closePlane(); err != nil {
				return nil, err
			}
			title = strings.TrimSpace(n.Text())
			inPlane = true
			continue
		}
		if inPlane {
			collects = append(collects, n)
		}
	}
	if err := closePlane(); err != nil {
		return nil, err
	}
	return table, nil
}

func (x *Extractor) isTablePart(n markup.Node) bool {
	switch x.c.Classify(n) {
	case KindPlaneBoundary, KindGroupBoundary, KindFormContainer:
		return true
	}
	return false
}

// plane partitions the elements of one plane into groups.
func (x *Extractor) plane(title string, parts []markup.Node) (latin.InflectionPlane, error) {
	plane := latin.InflectionPlane{Title: title, Groups: make([]latin.InflectionGroup, 0)}
	groupTitle := defaultGroupTitle
	for _, n := range parts {
		if x.c.Classify(n) != KindFormContainer {
			groupTitle = strings.TrimSpace(n.Text())
			continue
		}
		rows := make([]latin.InflectionRow, 0)
		for _, el := range markup.Elements(n) {
			row, err := x.row(el)
			if err != nil {
				return latin.InflectionPlane{}, err
			}
			rows = append(rows, row)
		}
		putGroup(&plane, latin.InflectionGroup{Title: groupTitle, Rows: rows})
	}
	return plane, nil
}

// row parses "label: forms" rows; a row with a single child is invariant.
func (x *Extractor) row(n markup.Node) (latin.InflectionRow, error) {
	children := markup.Elements(n)
	switch len(children) {
	case 2:
		return latin.InflectionRow{
			Label: strings.Trim(children[0].Text(), ": "),
			Forms: x.parseForms(children[1]),
		}, nil
	case 1:
		return latin.InflectionRow{
			Label: invariantLabel,
			Forms: x.parseForms(children[0]),
		}, nil
	default:
		return latin.InflectionRow{}, latin.NewParseError("flexion", "row with %d elements: %s", len(children), markup.Outer(n))
	}
}

// putPlane stores p, replacing an earlier plane of the same title in place.
func putPlane(t *latin.InflectionTable, p latin.InflectionPlane) {
	if old, ok := t.Plane(p.Title); ok {
		*old = p
		return
	}
	t.Planes = append(t.Planes, p)
}

// putGroup stores g, replacing an earlier group of the same title in place.
func putGroup(p *latin.InflectionPlane, g latin.InflectionGroup) {
	if old, ok := p.Group(g.Title); ok {
		*old = g
		return
	}
	p.Groups = append(p.Groups, g)
}
