// Package dict runs forward (Latin to English) and reverse (English to Latin)
// lookups against a document source.
package dict

import (
	"context"
	"fmt"

	"github.com/f3rmion/pulvis/internal/extract"
	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/source"
	"github.com/rs/zerolog/log"
)

// Dictionary combines a document source with the extraction layer. Lookups
// share nothing but the immutable extractor, so a Dictionary may serve
// concurrent callers.
type Dictionary struct {
	src       source.Source
	x         *extract.Extractor
	endpoints latin.Endpoints
}

// New creates a dictionary.
func New(src source.Source, x *extract.Extractor, endpoints latin.Endpoints) *Dictionary {
	return &Dictionary{src: src, x: x, endpoints: endpoints}
}

// Endpoints returns the URL shapes the dictionary fetches from.
func (d *Dictionary) Endpoints() latin.Endpoints {
	return d.endpoints
}

// Lookup performs a forward lookup. When the word is ambiguous the returned
// entry has RequiresClarification set and carries only the candidates; the
// caller re-invokes Lookup with one of the candidate locators.
func (d *Dictionary) Lookup(ctx context.Context, loc latin.Locator) (*latin.ForwardEntry, error) {
	doc, err := d.src.Fetch(ctx, loc.EntryURL(d.endpoints))
	if err != nil {
		return nil, err
	}

	res, err := d.x.Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", loc, err)
	}
	entry := &latin.ForwardEntry{
		Locator:    loc,
		Candidates: res.Candidates,
		Voices:     make(map[latin.Voice]*latin.InflectionTable),
	}
	if entry.Candidates == nil {
		entry.Candidates = make([]latin.Candidate, 0)
	}
	if res.RequiresClarification && len(res.Candidates) > 0 {
		entry.RequiresClarification = true
		return entry, nil
	}

	body, ok := d.x.EntryBody(doc)
	if !ok {
		if len(res.Candidates) == 0 {
			return nil, fmt.Errorf("looking up %s: %w", loc, latin.ErrNotFound)
		}
		return entry, nil
	}

	entry.Meaning, err = d.x.Meaning(body)
	if err != nil {
		return nil, fmt.Errorf("reading meaning of %s: %w", loc, err)
	}
	if err := d.inflections(ctx, loc, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// inflections fills entry.Voices from the flexion page of loc and, for verbs,
// from the page of the opposite voice.
func (d *Dictionary) inflections(ctx context.Context, loc latin.Locator, entry *latin.ForwardEntry) error {
	doc, err := d.src.Fetch(ctx, loc.FlexionURL(d.endpoints))
	if err != nil {
		return err
	}
	root, ok := d.x.FlexionRoot(doc)
	if !ok {
		log.Debug().Str("locator", loc.String()).Msg("entry has no flexion table")
		return nil
	}

	voice := d.x.LeadingVoice(root)
	table, err := d.x.InflectionTable(root)
	if err != nil {
		return fmt.Errorf("reading %s flexion of %s: %w", voice, loc, err)
	}
	entry.Voices[voice] = table

	other := voice.Opposite()
	if other == "" {
		return nil
	}
	href, ok := d.x.CounterpartLink(root)
	if !ok {
		log.Debug().Str("locator", loc.String()).Str("voice", string(other)).Msg("counterpart voice unavailable")
		entry.Voices[other] = nil
		return nil
	}
	entry.Voices[other], err = d.counterpart(ctx, d.endpoints.Resolve(href))
	if err != nil {
		return fmt.Errorf("reading %s flexion of %s: %w", other, loc, err)
	}
	return nil
}

func (d *Dictionary) counterpart(ctx context.Context, url string) (*latin.InflectionTable, error) {
	doc, err := d.src.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	root, ok := d.x.FlexionRoot(doc)
	if !ok {
		log.Debug().Str("url", url).Msg("counterpart page has no flexion table")
		return nil, nil
	}
	return d.x.InflectionTable(root)
}

// Reverse performs an English to Latin lookup.
func (d *Dictionary) Reverse(ctx context.Context, term string) (*latin.ReverseResult, error) {
	doc, err := d.src.Fetch(ctx, d.endpoints.ReverseURL(term))
	if err != nil {
		return nil, err
	}
	container, ok := d.x.ReverseContainer(doc)
	if !ok {
		return nil, fmt.Errorf("looking up %q: %w", term, latin.ErrNotFound)
	}
	entries, err := d.x.ReverseEntries(container)
	if err != nil {
		return nil, fmt.Errorf("reading reverse entries of %q: %w", term, err)
	}
	return &latin.ReverseResult{Query: term, Entries: entries}, nil
}
