package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/pulvis/internal/history"
	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDict struct {
	lookups []latin.Locator
}

func (d *fakeDict) Lookup(_ context.Context, loc latin.Locator) (*latin.ForwardEntry, error) {
	d.lookups = append(d.lookups, loc)
	switch loc.Key() {
	case "latus":
		return &latin.ForwardEntry{
			Locator:               loc,
			RequiresClarification: true,
			Candidates: []latin.Candidate{
				{Word: "latus", Property: "adjective", Locator: latin.Locator{Word: "LATUS", Variant: "100"}},
				{Word: "latus", Property: "noun", Locator: latin.Locator{Word: "LATUS", Variant: "200"}},
			},
		}, nil
	case "xyz":
		return nil, latin.ErrNotFound
	}
	return &latin.ForwardEntry{
		Locator: loc,
		Meaning: &latin.WordMeaning{Lemma: loc.Word, Grammar: "noun", Meanings: []string{"gloss"}},
	}, nil
}

func (d *fakeDict) Reverse(_ context.Context, term string) (*latin.ReverseResult, error) {
	return &latin.ReverseResult{Query: term, Entries: []latin.ReverseEntry{{Lemma: term}}}, nil
}

func newTestApp(t *testing.T) (AppModel, *fakeDict) {
	h, err := history.New[Result](10)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	d := &fakeDict{}
	m := NewApp(Options{Dict: d, History: h})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel), d
}

func enter(m AppModel, line string) (AppModel, tea.Cmd) {
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(AppModel), cmd
}

// settle runs a lookup command and feeds its result back.
func settle(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(AppModel)
}

func TestLatinLookup(t *testing.T) {
	m, d := newTestApp(t)
	m, cmd := enter(m, "lupa,100")
	assert.True(t, m.loading)
	m = settle(t, m, cmd)

	assert.False(t, m.loading)
	assert.NoError(t, m.err)
	assert.Equal(t, []latin.Locator{{Word: "lupa", Variant: "100"}}, d.lookups)
	assert.Contains(t, m.viewport.View(), "LUPA(100)")
	assert.Equal(t, 1, m.opts.History.Len())
	_, ok := m.opts.History.Get(history.Key("latin", "lupa100"))
	assert.True(t, ok)
}

func TestCandidateSelection(t *testing.T) {
	m, d := newTestApp(t)
	m, cmd := enter(m, "latus")
	m = settle(t, m, cmd)
	require.Len(t, m.pending, 2)
	assert.Equal(t, 0, m.opts.History.Len())

	m, cmd = enter(m, "3")
	assert.Nil(t, cmd)
	assert.Error(t, m.err)

	m, cmd = enter(m, "2")
	m = settle(t, m, cmd)
	assert.Empty(t, m.pending)
	assert.Equal(t, latin.Locator{Word: "LATUS", Variant: "200"}, d.lookups[len(d.lookups)-1])
}

func TestNotFound(t *testing.T) {
	m, _ := newTestApp(t)
	m, cmd := enter(m, "xyz")
	m = settle(t, m, cmd)
	assert.EqualError(t, m.err, "given word can not be found")
	assert.Contains(t, m.View(), "given word can not be found")
}

func TestModesAndHistory(t *testing.T) {
	m, _ := newTestApp(t)
	m, _ = enter(m, "@e")
	assert.Equal(t, ModeEnglish, m.mode)

	m, cmd := enter(m, "wolf")
	m = settle(t, m, cmd)
	assert.Contains(t, m.viewport.View(), "WOLF")

	m, _ = enter(m, "@l")
	assert.Equal(t, ModeLatin, m.mode)

	m, _ = enter(m, "@hist")
	key := history.Key("eng", "wolf")
	assert.Contains(t, m.viewport.View(), key)

	m, _ = enter(m, "@hist "+key)
	assert.NoError(t, m.err)
	assert.Contains(t, m.viewport.View(), "MATCH 1")

	m, _ = enter(m, "@hist 000000")
	assert.Error(t, m.err)
}

func TestGptToggleWithoutExplainer(t *testing.T) {
	m, _ := newTestApp(t)
	m, _ = enter(m, "@gpt y")
	assert.False(t, m.explain)
	assert.Error(t, m.err)

	m, _ = enter(m, "@gpt n")
	assert.NoError(t, m.err)
	assert.False(t, m.explain)
}

func TestQuit(t *testing.T) {
	m, _ := newTestApp(t)
	_, cmd := enter(m, "@quit")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	_, cmd = enter(m, "@nope")
	assert.Nil(t, cmd)
}

func TestCopyCommand(t *testing.T) {
	m, _ := newTestApp(t)
	var copied string
	m.opts.Copy = func(s string) error { copied = s; return nil }

	m, _ = enter(m, "@copy")
	assert.EqualError(t, m.err, "nothing to copy")

	m, cmd := enter(m, "lupa")
	m = settle(t, m, cmd)
	m, _ = enter(m, "@copy")
	assert.NoError(t, m.err)
	assert.Contains(t, copied, "LUPA")
	assert.Equal(t, "copied to clipboard", m.status)
}

func TestAnkiCommand(t *testing.T) {
	m, _ := newTestApp(t)
	path := filepath.Join(t.TempDir(), "deck.txt")

	m, _ = enter(m, "@anki "+path)
	assert.EqualError(t, m.err, "history is empty")

	m, cmd := enter(m, "lupa")
	m = settle(t, m, cmd)
	m, _ = enter(m, "@e")
	m, cmd = enter(m, "wolf")
	m = settle(t, m, cmd)

	m, _ = enter(m, "@anki "+path)
	require.NoError(t, m.err)
	assert.Equal(t, "exported 1 notes to "+path, m.status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lupa\tnoun: gloss\tpulvis latin\n")

	m, _ = enter(m, "@anki")
	assert.EqualError(t, m.err, "usage: @anki <file>")
}

func TestRepeatedQueryServedFromHistory(t *testing.T) {
	m, d := newTestApp(t)
	m, cmd := enter(m, "lupa")
	m = settle(t, m, cmd)
	require.Len(t, d.lookups, 1)

	m, cmd = enter(m, "lupa")
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Len(t, d.lookups, 1)
	assert.Contains(t, m.status, history.Key("latin", "lupa"))
	assert.Contains(t, m.viewport.View(), "LUPA")
	assert.Equal(t, 1, m.opts.History.Len())

	m, cmd = enter(m, "lupa,100")
	require.NotNil(t, cmd)
	settle(t, m, cmd)
	assert.Len(t, d.lookups, 2)
}

func TestModeCommandWithArgument(t *testing.T) {
	m, d := newTestApp(t)
	m, _ = enter(m, "@e")

	m, cmd := enter(m, "@latin amo")
	assert.Equal(t, ModeLatin, m.mode)
	assert.True(t, m.loading)
	m = settle(t, m, cmd)
	assert.Equal(t, []latin.Locator{{Word: "amo"}}, d.lookups)
	assert.Contains(t, m.viewport.View(), "AMO")

	m, cmd = enter(m, "@e she wolf")
	assert.Equal(t, ModeEnglish, m.mode)
	m = settle(t, m, cmd)
	_, ok := m.opts.History.Get(history.Key("eng", "she wolf"))
	assert.True(t, ok)

	m, cmd = enter(m, "@e she wolf")
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "history")
}
