package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/llm"
	"github.com/mattn/go-runewidth"
)

const (
	motto        = "PULVERIS LUNARIS THESAURUS LATINUS"
	groupColumns = 3
	noVariant    = "000"
	defaultWidth = 100
)

// Banner renders the "LEMMA(variant)" heading of a forward entry.
func Banner(loc latin.Locator) string {
	variant := loc.Variant
	if variant == "" {
		variant = noVariant
	}
	return BannerStyle.Render(fmt.Sprintf("%s(%s)", strings.ToUpper(loc.Word), variant))
}

// Forward renders a resolved forward entry. width <= 0 uses a default.
func Forward(e *latin.ForwardEntry, explanations []llm.Explanation, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	var b strings.Builder

	b.WriteString(Banner(e.Locator))
	b.WriteString("\n")
	b.WriteString(MottoStyle.Render(motto))
	b.WriteString("\n")

	if e.RequiresClarification {
		b.WriteString(section("CHOOSE ONE"))
		b.WriteString(Candidates(e.Candidates, true))
		return b.String()
	}

	if m := e.Meaning; m != nil {
		b.WriteString(section("LEMMA"))
		b.WriteString(FormStyle.Render(m.Lemma))
		b.WriteString("  ")
		b.WriteString(LabelStyle.Render(m.Grammar))
		b.WriteString("\n")

		b.WriteString(section("DESCRIPTION"))
		for _, gloss := range m.Meanings {
			b.WriteString(ValueStyle.Render(wordWrap("- "+gloss, width)))
			b.WriteString("\n")
		}
	}

	if len(explanations) > 0 {
		b.WriteString(section("EXPLAIN"))
		b.WriteString(Explanations(explanations, width))
	}

	if len(e.Candidates) > 0 {
		b.WriteString(section("SEE ALSO"))
		b.WriteString(Candidates(e.Candidates, false))
	}

	if voices := e.VoiceOrder(); len(voices) > 0 {
		b.WriteString(section("FLEXIONS"))
		for _, v := range voices {
			b.WriteString(LabelStyle.Render(strings.ToUpper(string(v))))
			b.WriteString("\n")
			table := e.Voices[v]
			if table == nil {
				b.WriteString(MutedStyle.Render("N/A"))
				b.WriteString("\n")
				continue
			}
			b.WriteString(Table(table, width))
		}
	}
	return b.String()
}

// Candidates renders disambiguation choices, numbered when the user has to
// pick one.
func Candidates(cands []latin.Candidate, numbered bool) string {
	var b strings.Builder
	for i, c := range cands {
		if numbered {
			b.WriteString(LabelStyle.Render(fmt.Sprintf("%2d. ", i+1)))
		} else {
			b.WriteString("- ")
		}
		b.WriteString(FormStyle.Render(c.Word))
		b.WriteString(" ")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("[%s]", c.Locator)))
		b.WriteString(" ")
		b.WriteString(NuanceStyle.Render("(" + c.Property + ")"))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(c.Gloss))
		b.WriteString("\n")
	}
	return b.String()
}

// Table renders the planes of an inflection table with their groups laid out
// in rows of three columns.
func Table(t *latin.InflectionTable, width int) string {
	var b strings.Builder
	for _, p := range t.Planes {
		b.WriteString(SectionStyle.Render(p.Title))
		b.WriteString("\n")

		blocks := make([]string, 0, len(p.Groups))
		for _, g := range p.Groups {
			blocks = append(blocks, group(g))
		}
		for i := 0; i < len(blocks); i += groupColumns {
			end := min(i+groupColumns, len(blocks))
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks[i:end]...))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func group(g latin.InflectionGroup) string {
	labelWidth := 0
	for _, r := range g.Rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.Label)+2)
	}

	lines := []string{LabelStyle.Render(g.Title)}
	for _, r := range g.Rows {
		forms := make([]string, 0, len(r.Forms))
		for _, f := range r.Forms {
			forms = append(forms, f.String())
		}
		label := runewidth.FillRight("["+r.Label+"]", labelWidth)
		lines = append(lines, MutedStyle.Render(label)+" "+FormStyle.Render(strings.Join(forms, ", ")))
	}
	return GroupStyle.Render(strings.Join(lines, "\n"))
}

// Reverse renders an English to Latin result.
func Reverse(r *latin.ReverseResult, explanations []llm.Explanation, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	var b strings.Builder

	b.WriteString(BannerStyle.Render(strings.ToUpper(r.Query)))
	b.WriteString("\n")
	b.WriteString(MottoStyle.Render(motto))
	b.WriteString("\n")

	if len(r.Entries) == 0 {
		b.WriteString(MutedStyle.Render("no matches"))
		b.WriteString("\n")
	}
	for i, e := range r.Entries {
		b.WriteString(section(fmt.Sprintf("MATCH %d", i+1)))
		b.WriteString(LabelStyle.Render("LEMMA: "))
		b.WriteString(ValueStyle.Render(e.Lemma))
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("VARIANTS:"))
		b.WriteString("\n")
		for _, c := range e.Categories {
			b.WriteString("  ")
			b.WriteString(SectionStyle.UnsetMarginTop().Render(c.Name))
			b.WriteString("\n")
			for _, item := range c.Items {
				b.WriteString("    - ")
				b.WriteString(FormStyle.Render(item.Word))
				if item.Nuance != "" {
					b.WriteString(" ")
					b.WriteString(NuanceStyle.Render("(" + item.Nuance + ")"))
				}
				b.WriteString("\n")
			}
		}
	}

	if len(explanations) > 0 {
		b.WriteString(section("EXPLAIN"))
		b.WriteString(Explanations(explanations, width))
	}
	return b.String()
}

// Explanations renders LLM explanations, one bordered box each.
func Explanations(ex []llm.Explanation, width int) string {
	inner := max(width-4, 20)
	var b strings.Builder
	for _, e := range ex {
		var lines []string
		lines = append(lines, FormStyle.Render(e.Expression))
		if e.Grammar != "" {
			lines = append(lines, LabelStyle.Render("grammar: ")+wordWrap(e.Grammar, inner-9))
		}
		if e.Semantic != "" {
			lines = append(lines, LabelStyle.Render("meaning: ")+wordWrap(e.Semantic, inner-9))
		}
		if e.Nuances != "" {
			lines = append(lines, LabelStyle.Render("nuances: ")+wordWrap(e.Nuances, inner-9))
		}
		b.WriteString(ExplainStyle.Width(inner).Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// Error renders a user-facing error line.
func Error(msg string) string {
	return ErrorStyle.Render(msg)
}

func section(title string) string {
	return SectionStyle.Render(title) + "\n"
}

func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	words := strings.Fields(s)
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+wordWidth+1 > width && currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			currentLine.WriteString(" ")
			currentWidth++
		}
		currentLine.WriteString(word)
		currentWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return strings.Join(lines, "\n")
}
