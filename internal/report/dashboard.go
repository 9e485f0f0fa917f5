// Package report turns a survey snapshot and diagnosis into dashboards for
// the terminal, Markdown, JSON and HTML.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/didia-cli/internal/analysis"
	"github.com/KaramelBytes/didia-cli/internal/recommend"
	"github.com/KaramelBytes/didia-cli/internal/survey"
	"github.com/KaramelBytes/didia-cli/internal/utils"
	"github.com/google/uuid"
)

// BarMax is the upper bound of every chart axis.
const BarMax = 5.0

// KPI is a headline metric card.
type KPI struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption"`
	// Inverse marks metrics where higher is worse.
	Inverse bool `json:"inverse"`
}

// Bar is one chart bar on a 0-5 axis.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Percent returns the bar length as a share of BarMax, clamped to [0,100].
func (b Bar) Percent() float64 {
	p := b.Value / BarMax * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Input collects everything a dashboard shows.
type Input struct {
	Snapshot       *analysis.Snapshot
	Recommendation *recommend.Recommendation
	Origin         survey.Origin
	// Fallback is the parse error that forced synthetic data, if any.
	Fallback error
	// Seed of the synthetic table, used to link its template.
	Seed uint64
}

// Dashboard is a renderer-agnostic view model.
type Dashboard struct {
	ID             string                    `json:"id"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Theme          string                    `json:"theme"`
	Origin         survey.Origin             `json:"origin"`
	Seed           uint64                    `json:"seed,omitempty"`
	Notices        []string                  `json:"notices,omitempty"`
	Snapshot       *analysis.Snapshot        `json:"snapshot"`
	KPIs           []KPI                     `json:"kpis"`
	Barriers       []Bar                     `json:"barriers"`
	Competencies   []Bar                     `json:"competencies"`
	Recommendation *recommend.Recommendation `json:"recommendation,omitempty"`

	theme Theme
}

// Build assembles a dashboard. Recommendation may be nil when the diagnosis
// has not been requested.
func Build(in Input, th Theme) *Dashboard {
	s := in.Snapshot
	l := th.Labels
	d := &Dashboard{
		ID:             uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		Theme:          th.Name,
		Origin:         in.Origin,
		Snapshot:       s,
		Recommendation: in.Recommendation,
		theme:          th,
	}
	if in.Origin == survey.OriginSimulated {
		d.Seed = in.Seed
		if in.Fallback != nil {
			d.Notices = append(d.Notices, fmt.Sprintf(l.Fallback, in.Fallback))
		}
		d.Notices = append(d.Notices, l.Simulated)
	} else {
		d.Notices = append(d.Notices, l.Uploaded)
	}

	m := s.Means
	d.KPIs = []KPI{
		{Label: l.AdoptionScore, Value: fmt.Sprintf("%.1f%%", s.AdoptionIndex), Caption: l.AdoptionCaption},
		{Label: l.Reticence, Value: fmt.Sprintf("%.1f/5", m.Reticence), Caption: l.ReticenceCaption, Inverse: true},
		{Label: l.Austerity, Value: fmt.Sprintf("%.1f/5", m.Austerity), Caption: l.AusterityCaption, Inverse: true},
		{Label: l.Mandated, Value: fmt.Sprintf("%.1f/5", m.MandatedUse), Caption: l.MandatedCaption, Inverse: true},
	}
	p := th.Palette
	d.Barriers = []Bar{
		{Label: l.ReticenceBar, Value: m.Reticence, Color: p.Intensity(m.Reticence)},
		{Label: l.AusterityBar, Value: m.Austerity, Color: p.Intensity(m.Austerity)},
		{Label: l.MandatedBar, Value: m.MandatedUse, Color: p.Intensity(m.MandatedUse)},
	}
	d.Competencies = []Bar{
		{Label: l.Ethics, Value: m.Ethics, Color: p.Accent},
		{Label: l.Technical, Value: m.Technical, Color: p.Accent},
		{Label: l.Pedagogical, Value: m.PedagogicalEstimate(), Color: p.Accent},
	}
	return d
}

// Labels exposes the copy of the dashboard's theme.
func (d *Dashboard) Labels() Labels { return d.theme.Labels }

// Palette exposes the colors of the dashboard's theme.
func (d *Dashboard) Palette() Palette { return d.theme.Palette }

// Marker is the traffic-light glyph for a category.
func Marker(c recommend.Category) string {
	switch c {
	case recommend.AusterityCritical:
		return "🔴"
	case recommend.ReticenceCritical:
		return "🟠"
	case recommend.MandatedUseCritical:
		return "🟡"
	default:
		return "🟢"
	}
}

// JSON returns the dashboard as indented JSON.
func (d *Dashboard) JSON() ([]byte, error) {
	return utils.PrettyJSON(d)
}

// Markdown renders the dashboard as sectioned Markdown.
func (d *Dashboard) Markdown() string {
	l := d.theme.Labels
	var b strings.Builder
	b.WriteString("# " + l.Title + "\n\n")
	b.WriteString(l.Subtitle + "\n\n")
	b.WriteString("*" + fmt.Sprintf(l.DataAnalyzed, d.Snapshot.Records) + "*\n\n")
	for _, n := range d.Notices {
		b.WriteString("> " + n + "\n")
	}
	b.WriteString("\n## KPI\n\n")
	b.WriteString("| | | |\n|---|---|---|\n")
	for _, k := range d.KPIs {
		b.WriteString(fmt.Sprintf("| %s | **%s** | %s |\n", k.Label, k.Value, k.Caption))
	}
	writeBars := func(title string, bars []Bar) {
		b.WriteString("\n## " + title + "\n\n")
		for _, bar := range bars {
			b.WriteString(fmt.Sprintf("- %s: %.2f `%s`\n", bar.Label, bar.Value, asciiBar(bar.Value, 20)))
		}
	}
	writeBars(l.BarrierMap, d.Barriers)
	writeBars(l.CompetencyGap, d.Competencies)

	if rec := d.Recommendation; rec != nil {
		b.WriteString("\n## " + l.Recommender + "\n\n")
		a := rec.Advice
		b.WriteString(fmt.Sprintf("**%s %s**\n\n", Marker(rec.Category), a.Headline))
		if a.Diagnosis != "" {
			b.WriteString(a.Diagnosis + "\n\n")
		}
		b.WriteString("**" + a.Label + "**\n")
		for i, act := range a.Actions {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, act))
		}
	}
	b.WriteString("\n## " + l.Appendix + "\n\n```\n" + d.Snapshot.Markdown() + "```\n")
	b.WriteString("\n---\n" + l.Footer + "\n")
	return b.String()
}

func asciiBar(v float64, width int) string {
	n := int(v/BarMax*float64(width) + 0.5)
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
