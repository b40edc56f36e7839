package extract

import (
	"errors"
	"strings"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/markup"
	"github.com/rs/zerolog/log"
)

type reverseState int

const (
	stateLemma reverseState = iota
	stateCategory
	stateVocab
	stateDone
)

func (s reverseState) String() string {
	switch s {
	case stateLemma:
		return "LEMMA"
	case stateCategory:
		return "CATEGORY"
	case stateVocab:
		return "VOCAB"
	case stateDone:
		return "DONE"
	}
	return "?"
}

type reverseAction int

const (
	actionSkip reverseAction = iota
	actionSetLemma
	actionSetCategory
	actionAddVocab
	actionReject
)

type transition struct {
	next   reverseState
	action reverseAction
}

// reverseTransitions is the (state, token kind) table of the reverse-lookup
// state machine. Stray lemma or category tokens are skipped; vocabulary
// outside VOCAB is rejected.
var reverseTransitions = map[reverseState]map[Kind]transition{
	stateLemma: {
		KindLemma:    {stateCategory, actionSetLemma},
		KindCategory: {stateLemma, actionSkip},
		KindVocab:    {stateLemma, actionReject},
	},
	stateCategory: {
		KindLemma:    {stateCategory, actionSkip},
		KindCategory: {stateVocab, actionSetCategory},
		KindVocab:    {stateCategory, actionReject},
	},
	stateVocab: {
		KindLemma:    {stateVocab, actionReject},
		KindCategory: {stateVocab, actionReject},
		KindVocab:    {stateVocab, actionAddVocab},
	},
}

func step(state reverseState, kind Kind) (transition, error) {
	t, ok := reverseTransitions[state][kind]
	if !ok || t.action == actionReject {
		return transition{}, latin.NewParseError("reverse", "unexpected %s token in state %s", kind, state)
	}
	return t, nil
}

// afterVocab picks the state following a vocabulary token from the upcoming
// token: another category loops back, anything else is left to the
// termination check.
func afterVocab(peek Token, err error) reverseState {
	if err == nil && peek.Kind == KindCategory {
		return stateCategory
	}
	return stateVocab
}

// endsEntry reports whether the upcoming token closes the current entry.
func endsEntry(peek Token, err error) bool {
	return errors.Is(err, latin.ErrEndOfStream) || (err == nil && peek.Kind == KindLemma)
}

type entryBuilder struct {
	entry latin.ReverseEntry
}

func (b *entryBuilder) setCategory(name string) {
	b.entry.Categories = append(b.entry.Categories, latin.Category{Name: name, Items: make([]latin.VocabItem, 0)})
}

func (b *entryBuilder) addVocab(items []latin.VocabItem) {
	cur := &b.entry.Categories[len(b.entry.Categories)-1]
	cur.Items = append(cur.Items, items...)
}

// nextReverseEntry runs the state machine once. It returns nil without an
// error when the run ends before any vocabulary was seen, and
// latin.ErrEndOfStream when the stream runs dry mid-entry; in both cases the
// partial entry is dropped.
func (x *Extractor) nextReverseEntry(s *TokenStream) (*latin.ReverseEntry, error) {
	var b entryBuilder
	b.entry.Categories = make([]latin.Category, 0)

	state := stateLemma
	for state != stateDone {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		t, err := step(state, tok.Kind)
		if err != nil {
			return nil, err
		}
		state = t.next

		switch t.action {
		case actionSetLemma:
			b.entry.Lemma = strings.TrimSpace(tok.Node.Text())
			continue
		case actionSetCategory:
			b.setCategory(strings.TrimSpace(tok.Node.Text()))
			continue
		case actionAddVocab:
			b.addVocab(vocabItems(tok.Node))
			if state = afterVocab(s.LookAhead(1)); state == stateCategory {
				continue
			}
		}

		if endsEntry(s.LookAhead(1)) {
			if state != stateVocab {
				log.Debug().Str("state", state.String()).Str("lemma", b.entry.Lemma).Msg("reverse entry without vocabulary")
				return nil, nil
			}
			state = stateDone
		}
	}
	return &b.entry, nil
}

// ReverseEntries drives the state machine over a reverse-lookup container
// until its tokens are exhausted.
func (x *Extractor) ReverseEntries(container markup.Node) ([]latin.ReverseEntry, error) {
	s := x.Tokens(container)
	entries := make([]latin.ReverseEntry, 0)
	for {
		ent, err := x.nextReverseEntry(s)
		if errors.Is(err, latin.ErrEndOfStream) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if ent != nil {
			entries = append(entries, *ent)
		}
	}
}

// vocabItems splits a vocabulary token into (word, nuance) pairs.
func vocabItems(n markup.Node) []latin.VocabItem {
	joined := strings.Join(markup.OwnTexts(n), "|")
	pieces := strings.Split(joined, ",")
	if len(pieces) == 1 {
		pieces = strings.Split(pieces[0], "|")
	}

	var items []latin.VocabItem
	for _, p := range pieces {
		p = strings.Trim(p, " |")
		if p == "" {
			continue
		}
		m, ok := matchVocabItem(p)
		if !ok {
			continue
		}
		items = append(items, latin.VocabItem{
			Word:   strings.ReplaceAll(strings.TrimSpace(m.gloss), "|", " "),
			Nuance: strings.ReplaceAll(m.nuance, "|", " "),
		})
	}
	return items
}
