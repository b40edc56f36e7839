package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/pulvis/internal/anki"
	"github.com/f3rmion/pulvis/internal/clipboard"
	"github.com/f3rmion/pulvis/internal/history"
	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/llm"
	"github.com/f3rmion/pulvis/internal/render"
	"github.com/rs/zerolog/log"
)

const lookupTimeout = 90 * time.Second

// Mode is the lookup direction of the session.
type Mode int

const (
	ModeLatin Mode = iota
	ModeEnglish
)

func (m Mode) String() string {
	if m == ModeEnglish {
		return "eng"
	}
	return "latin"
}

// Dictionary is the lookup capability the session drives.
type Dictionary interface {
	Lookup(ctx context.Context, loc latin.Locator) (*latin.ForwardEntry, error)
	Reverse(ctx context.Context, term string) (*latin.ReverseResult, error)
}

// Result is what the session shows and remembers for one lookup.
type Result struct {
	Forward      *latin.ForwardEntry
	Reverse      *latin.ReverseResult
	Explanations []llm.Explanation
}

// Options configures a session.
type Options struct {
	Dict      Dictionary
	Explainer *llm.Client // nil disables @gpt
	History   *history.History[Result]
	Explain   bool // initial @gpt state
	// Copy writes to the clipboard; nil uses the system clipboard.
	Copy func(string) error
}

// lookupDoneMsg carries a finished lookup back into the update loop.
type lookupDoneMsg struct {
	mode   Mode
	query  string
	result Result
	err    error
}

// AppModel is the interactive session model.
type AppModel struct {
	opts     Options
	input    textinput.Model
	viewport viewport.Model

	mode    Mode
	explain bool
	// candidates awaiting a numeric choice
	pending []latin.Candidate
	output  string

	loading bool
	status  string
	err     error

	width  int
	height int
	ready  bool
}

// NewApp creates a new session.
func NewApp(opts Options) AppModel {
	ti := textinput.New()
	ti.Placeholder = "word[,variant] or @command"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 50
	ti.PromptStyle = FlagStyle
	ti.TextStyle = ModeStyle.UnsetPadding()

	return AppModel{
		opts:     opts,
		input:    ti,
		viewport: viewport.New(80, 20),
		mode:     ModeLatin,
		explain:  opts.Explain && opts.Explainer != nil,
		status:   "@latin @eng @hist [key] @gpt y|n @copy @anki file @quit",
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			return m.submit(line)
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-5, 3)
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case lookupDoneMsg:
		m.loading = false
		m.finish(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit interprets one line of input.
func (m AppModel) submit(line string) (tea.Model, tea.Cmd) {
	if line == "" || m.loading {
		return m, nil
	}
	m.err = nil

	if strings.HasPrefix(line, "@") {
		return m.command(line)
	}

	if len(m.pending) > 0 {
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(m.pending) {
				m.err = fmt.Errorf("choose a number between 1 and %d", len(m.pending))
				return m, nil
			}
			loc := m.pending[n-1].Locator
			m.pending = nil
			return m.startLatin(loc)
		}
	}
	m.pending = nil

	if m.mode == ModeEnglish {
		return m.startEnglish(line)
	}
	return m.startLatin(latin.ParseLocator(line))
}

func (m AppModel) command(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "@quit", "@q":
		return m, tea.Quit
	case "@latin", "@l":
		m.mode = ModeLatin
		m.status = "mode: latin"
		if len(fields) > 1 {
			m.pending = nil
			return m.startLatin(latin.ParseLocator(strings.Join(fields[1:], " ")))
		}
	case "@eng", "@e":
		m.mode = ModeEnglish
		m.status = "mode: eng"
		if len(fields) > 1 {
			m.pending = nil
			return m.startEnglish(strings.Join(fields[1:], " "))
		}
	case "@gpt":
		if len(fields) < 2 {
			m.status = fmt.Sprintf("explanations: %s", onOff(m.explain))
			break
		}
		switch fields[1] {
		case "y", "yes", "on":
			if m.opts.Explainer == nil {
				m.err = errors.New("explanations unavailable: explainer disabled or API key not set")
				break
			}
			m.explain = true
		case "n", "no", "off":
			m.explain = false
		default:
			m.err = fmt.Errorf("usage: @gpt y|n")
		}
		m.status = fmt.Sprintf("explanations: %s", onOff(m.explain))
	case "@hist":
		if len(fields) < 2 {
			m.showHistory()
			break
		}
		m.recall(fields[1])
	case "@copy":
		m.copyOutput()
	case "@anki":
		if len(fields) < 2 {
			m.err = errors.New("usage: @anki <file>")
			break
		}
		m.exportAnki(fields[1])
	default:
		m.err = fmt.Errorf("unknown command %s", fields[0])
	}
	return m, nil
}

func (m AppModel) startLatin(loc latin.Locator) (tea.Model, tea.Cmd) {
	if loc.Word == "" {
		return m, nil
	}
	if m.fromHistory(ModeLatin, loc.Key()) {
		return m, nil
	}
	m.loading = true
	m.status = fmt.Sprintf("looking up %s", loc)
	dict, explainer, explain := m.opts.Dict, m.opts.Explainer, m.explain
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		msg := lookupDoneMsg{mode: ModeLatin, query: loc.Key()}
		entry, err := dict.Lookup(ctx, loc)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.result.Forward = entry
		if explain && !entry.RequiresClarification {
			msg.result.Explanations = explainQuietly(explainer.ExplainEntry(ctx, entry))
		}
		return msg
	}
}

func (m AppModel) startEnglish(term string) (tea.Model, tea.Cmd) {
	if m.fromHistory(ModeEnglish, term) {
		return m, nil
	}
	m.loading = true
	m.status = fmt.Sprintf("looking up %q", term)
	dict, explainer, explain := m.opts.Dict, m.opts.Explainer, m.explain
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		msg := lookupDoneMsg{mode: ModeEnglish, query: term}
		res, err := dict.Reverse(ctx, term)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.result.Reverse = res
		if explain {
			msg.result.Explanations = explainQuietly(explainer.ExplainReverse(ctx, res))
		}
		return msg
	}
}

// fromHistory shows a remembered result of the same query instead of
// fetching it again.
func (m *AppModel) fromHistory(mode Mode, query string) bool {
	if m.opts.History == nil {
		return false
	}
	rec, ok := m.opts.History.Get(history.Key(mode.String(), query))
	if !ok {
		return false
	}
	m.status = fmt.Sprintf("history [%s] %s", rec.Key, rec.Query)
	m.show(rec.Value)
	return true
}

func explainQuietly(ex []llm.Explanation, err error) []llm.Explanation {
	if err != nil {
		log.Warn().Err(err).Msg("explanation failed")
		return nil
	}
	return ex
}

func (m *AppModel) finish(msg lookupDoneMsg) {
	if msg.err != nil {
		m.status = ""
		if errors.Is(msg.err, latin.ErrNotFound) {
			m.err = errors.New("given word can not be found")
			return
		}
		log.Error().Err(msg.err).Str("query", msg.query).Msg("lookup failed")
		m.err = msg.err
		return
	}

	if fe := msg.result.Forward; fe != nil && fe.RequiresClarification {
		m.pending = fe.Candidates
		m.status = fmt.Sprintf("%d candidates, enter a number to choose", len(fe.Candidates))
		m.show(msg.result)
		return
	}

	key := ""
	if m.opts.History != nil {
		key = m.opts.History.Add(msg.mode.String(), msg.query, msg.result)
	}
	m.status = fmt.Sprintf("done [%s]", key)
	m.show(msg.result)
}

func (m *AppModel) show(r Result) {
	var out string
	switch {
	case r.Forward != nil:
		out = render.Forward(r.Forward, r.Explanations, m.viewport.Width)
	case r.Reverse != nil:
		out = render.Reverse(r.Reverse, r.Explanations, m.viewport.Width)
	}
	m.setContent(out)
}

func (m *AppModel) setContent(out string) {
	m.output = out
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

func (m *AppModel) copyOutput() {
	if m.output == "" {
		m.err = errors.New("nothing to copy")
		return
	}
	copyFn := m.opts.Copy
	if copyFn == nil {
		if !clipboard.Available() {
			m.err = errors.New("clipboard unavailable")
			return
		}
		copyFn = clipboard.Write
	}
	if err := copyFn(m.output); err != nil {
		m.err = fmt.Errorf("copying: %w", err)
		return
	}
	m.status = "copied to clipboard"
}

// exportAnki writes every remembered lookup as Anki notes, oldest first.
func (m *AppModel) exportAnki(path string) {
	if m.opts.History == nil || m.opts.History.Len() == 0 {
		m.err = errors.New("history is empty")
		return
	}
	var notes []anki.Note
	for _, rec := range m.opts.History.List() {
		if n, ok := anki.FromForward(rec.Value.Forward); ok {
			notes = append(notes, n)
		}
		notes = append(notes, anki.FromReverse(rec.Value.Reverse)...)
	}
	if err := anki.SaveAs(path, notes); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("exported %d notes to %s", len(notes), path)
}

func (m *AppModel) showHistory() {
	if m.opts.History == nil || m.opts.History.Len() == 0 {
		m.status = "history is empty"
		return
	}
	var b strings.Builder
	for _, rec := range m.opts.History.List() {
		b.WriteString(fmt.Sprintf("%s  %-5s  %s  %s\n", rec.Key, rec.Kind, rec.At.Format("15:04:05"), rec.Query))
	}
	m.setContent(b.String())
	m.status = fmt.Sprintf("%d remembered lookups", m.opts.History.Len())
}

func (m *AppModel) recall(key string) {
	if m.opts.History == nil {
		m.err = fmt.Errorf("no history entry %s", key)
		return
	}
	rec, ok := m.opts.History.Get(key)
	if !ok {
		m.err = fmt.Errorf("no history entry %s", key)
		return
	}
	m.status = fmt.Sprintf("history [%s] %s", rec.Key, rec.Query)
	m.show(rec.Value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("pulvis"))
	b.WriteString(ModeStyle.Render(m.mode.String()))
	b.WriteString(FlagStyle.Render("gpt:" + onOff(m.explain)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(DividerStyle.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(LoadingStyle.Render(m.status + "..."))
	case m.err != nil:
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	default:
		b.WriteString(HelpStyle.Render(m.status))
	}
	return b.String()
}

// Run starts the session on the terminal.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
