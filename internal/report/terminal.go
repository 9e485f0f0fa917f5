package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/didia-cli/internal/recommend"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

type termStyles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	notice  lipgloss.Style
	section lipgloss.Style
	card    lipgloss.Style
	value   lipgloss.Style
	label   lipgloss.Style
}

func newTermStyles(p Palette) termStyles {
	return termStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		notice:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(p.Mid)),
		section: lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Muted)).
			Padding(0, 1).
			MarginRight(1),
		value: lipgloss.NewStyle().Bold(true),
		label: lipgloss.NewStyle().Width(32),
	}
}

func categoryColor(c recommend.Category, p Palette) lipgloss.Color {
	switch c {
	case recommend.AusterityCritical:
		return lipgloss.Color(p.High)
	case recommend.ReticenceCritical:
		return lipgloss.Color("#fc8d59")
	case recommend.MandatedUseCritical:
		return lipgloss.Color(p.Mid)
	default:
		return lipgloss.Color(p.Low)
	}
}

// Terminal renders the dashboard for a terminal.
func (d *Dashboard) Terminal() string {
	l := d.theme.Labels
	st := newTermStyles(d.theme.Palette)

	var blocks []string
	blocks = append(blocks,
		st.title.Render(l.Title),
		st.muted.Render(fmt.Sprintf(l.DataAnalyzed, d.Snapshot.Records)),
	)
	for _, n := range d.Notices {
		blocks = append(blocks, st.notice.Render("⚠ "+n))
	}

	cards := make([]string, 0, len(d.KPIs))
	for _, k := range d.KPIs {
		cards = append(cards, st.card.Render(lipgloss.JoinVertical(lipgloss.Left,
			k.Label,
			st.value.Render(k.Value),
			st.muted.Render(k.Caption),
		)))
	}
	blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	renderBars := func(title string, bars []Bar) {
		blocks = append(blocks, st.section.Render(title))
		for _, b := range bars {
			n := int(b.Percent()/100*barWidth + 0.5)
			fill := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render(strings.Repeat("█", n))
			rest := st.muted.Render(strings.Repeat("░", barWidth-n))
			blocks = append(blocks, st.label.Render(b.Label)+fill+rest+fmt.Sprintf(" %.2f", b.Value))
		}
	}
	renderBars(l.BarrierMap+": "+l.BarrierChart, d.Barriers)
	renderBars(l.CompetencyGap, d.Competencies)

	if rec := d.Recommendation; rec != nil {
		blocks = append(blocks, st.section.Render(l.Recommender), st.muted.Render(l.Analyzing))
		box := lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(categoryColor(rec.Category, d.theme.Palette)).
			Padding(0, 1).
			Width(96)
		blocks = append(blocks, box.Render(Marker(rec.Category)+" "+strings.TrimRight(rec.Text(), "\n")))
	}
	blocks = append(blocks, "", st.muted.Render(l.Footer))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}
