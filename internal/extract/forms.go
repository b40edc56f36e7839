package extract

import (
	"strings"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/markup"
)

// runState tracks how many fragments the current comma-separated run has seen.
// Stem and ending fragments both count.
type runState int

const (
	awaitingStem runState = iota // nothing seen yet
	hasStem                      // one fragment seen, a stem fragment replaces the stem
	hasSuffix                    // two or more seen, a stem fragment extends the suffix
)

// formRun accumulates one comma-separated run of a forms fragment.
type formRun struct {
	state   runState
	stem    string
	endings []string
	suffix  string
}

func (r *formRun) advance() {
	if r.state < hasSuffix {
		r.state++
	}
}

func (r *formRun) stemFragment(text string) {
	if r.state == hasSuffix {
		r.suffix += text
	} else {
		r.stem = text
	}
	r.advance()
}

func (r *formRun) endingFragment(text string) {
	r.endings = splitEndings(text)
	r.advance()
}

func (r *formRun) empty() bool {
	return r.stem == "" && len(r.endings) == 0 && r.suffix == ""
}

// forms expands the run into one form per ending, or a single bare stem
// when no ending was seen. A suffix only attaches to forms with endings.
func (r *formRun) forms() []latin.InflectedForm {
	if len(r.endings) == 0 {
		return []latin.InflectedForm{{Stem: r.stem}}
	}
	out := make([]latin.InflectedForm, 0, len(r.endings))
	for _, e := range r.endings {
		out = append(out, latin.InflectedForm{Stem: r.stem, Ending: e, Suffix: r.suffix})
	}
	return out
}

func splitEndings(text string) []string {
	parts := strings.Split(text, ",")
	for i, p := range parts {
		parts[i] = strings.Trim(p, "– ")
	}
	return parts
}

func isCommaSeparator(n markup.Node) bool {
	return n.IsText() && strings.TrimSpace(n.Text()) == ","
}

// parseForms walks a forms fragment left to right and returns its inflected
// forms in document order.
func (x *Extractor) parseForms(fragment markup.Node) []latin.InflectedForm {
	var (
		out []latin.InflectedForm
		run formRun
	)
	flush := func() {
		if !run.empty() {
			out = append(out, run.forms()...)
		}
		run = formRun{}
	}
	for _, ch := range fragment.Children() {
		if isCommaSeparator(ch) {
			flush()
			continue
		}
		switch x.c.Classify(ch) {
		case KindStem:
			run.stemFragment(ch.Text())
		case KindEnding:
			run.endingFragment(ch.Text())
		}
	}
	flush()
	return out
}
