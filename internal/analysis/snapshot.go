package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/didia-cli/internal/survey"
)

// AdoptionScale maps the 1-5 adoption mean onto a 20-100% index.
const AdoptionScale = 20.0

// Indicator summarizes one rating column.
type Indicator struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Std    float64 `json:"std"`
}

// Means holds the six column means.
type Means struct {
	Ethics      float64 `json:"comp_etica"`
	Technical   float64 `json:"comp_tecnica"`
	Reticence   float64 `json:"reticencia_miedo"`
	Austerity   float64 `json:"austeridad_tiempo"`
	MandatedUse float64 `json:"uso_obligado_vigilancia"`
	Adoption    float64 `json:"apropiacion_uso"`
}

// AdoptionIndex returns the adoption mean scaled to percent.
func (m Means) AdoptionIndex() float64 { return m.Adoption * AdoptionScale }

// PedagogicalEstimate is the midpoint of the ethics and technical means,
// used as the third axis of the competency chart.
func (m Means) PedagogicalEstimate() float64 { return (m.Ethics + m.Technical) / 2 }

// RoleSummary captures the means of one respondent role.
type RoleSummary struct {
	Role  string `json:"role"`
	Size  int    `json:"size"`
	Means Means  `json:"means"`
}

// Snapshot is the read-only aggregate of a survey table.
type Snapshot struct {
	Name          string        `json:"name"`
	Records       int           `json:"records"`
	Means         Means         `json:"means"`
	AdoptionIndex float64       `json:"adoption_index"`
	Indicators    []Indicator   `json:"indicators"`
	Roles         []RoleSummary `json:"roles,omitempty"`
}

type colAcc struct {
	sum      int
	min, max int
	// Welford
	n        int
	mean, m2 float64
}

func (c *colAcc) add(v int) {
	if c.n == 0 || v < c.min {
		c.min = v
	}
	if c.n == 0 || v > c.max {
		c.max = v
	}
	c.sum += v
	c.n++
	x := float64(v)
	delta := x - c.mean
	c.mean += delta / float64(c.n)
	c.m2 += delta * (x - c.mean)
}

// exactMean divides the integer sum, so the result does not depend on row order.
func (c *colAcc) exactMean() float64 { return float64(c.sum) / float64(c.n) }

type meansAcc struct {
	n    int
	cols map[string]*colAcc
}

func newMeansAcc() *meansAcc {
	m := &meansAcc{cols: make(map[string]*colAcc, len(survey.RequiredColumns))}
	for _, col := range survey.RequiredColumns {
		m.cols[col] = &colAcc{}
	}
	return m
}

func (m *meansAcc) add(r survey.Record) {
	m.n++
	for col, c := range m.cols {
		v, _ := r.Rating(col)
		c.add(v)
	}
}

func (m *meansAcc) means() Means {
	return Means{
		Ethics:      m.cols[survey.ColEthics].exactMean(),
		Technical:   m.cols[survey.ColTechnical].exactMean(),
		Reticence:   m.cols[survey.ColReticence].exactMean(),
		Austerity:   m.cols[survey.ColAusterity].exactMean(),
		MandatedUse: m.cols[survey.ColMandatedUse].exactMean(),
		Adoption:    m.cols[survey.ColAdoption].exactMean(),
	}
}

// Aggregate reduces a table to its snapshot. An empty table is an error
// wrapping survey.ErrEmptyDataset; ratings outside 1..5 yield a
// *survey.SchemaError.
func Aggregate(t *survey.Table) (*Snapshot, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("aggregate: %w", survey.ErrEmptyDataset)
	}
	var invalid []survey.FieldError
	for i, r := range t.Records {
		for _, col := range survey.RequiredColumns {
			if v, _ := r.Rating(col); !survey.InRange(v) {
				invalid = append(invalid, survey.FieldError{Row: i + 1, Column: col, Value: strconv.Itoa(v)})
			}
		}
	}
	if len(invalid) > 0 {
		return nil, &survey.SchemaError{Invalid: invalid}
	}
	all := newMeansAcc()
	byRole := map[string]*meansAcc{}
	for _, r := range t.Records {
		all.add(r)
		ra := byRole[r.Role]
		if ra == nil {
			ra = newMeansAcc()
			byRole[r.Role] = ra
		}
		ra.add(r)
	}

	s := &Snapshot{Name: t.Name, Records: all.n, Means: all.means()}
	s.AdoptionIndex = s.Means.AdoptionIndex()
	for _, col := range survey.RequiredColumns {
		c := all.cols[col]
		ind := Indicator{Column: col, Mean: c.exactMean(), Min: c.min, Max: c.max}
		if c.n > 1 {
			ind.Std = math.Sqrt(c.m2 / float64(c.n-1))
		}
		s.Indicators = append(s.Indicators, ind)
	}
	for role, ra := range byRole {
		s.Roles = append(s.Roles, RoleSummary{Role: role, Size: ra.n, Means: ra.means()})
	}
	sort.Slice(s.Roles, func(i, j int) bool {
		if s.Roles[i].Size == s.Roles[j].Size {
			return s.Roles[i].Role < s.Roles[j].Role
		}
		return s.Roles[i].Size > s.Roles[j].Size
	})
	return s, nil
}

// Indicator returns the summary for col.
func (s *Snapshot) Indicator(col string) (Indicator, bool) {
	for _, ind := range s.Indicators {
		if ind.Column == col {
			return ind, true
		}
	}
	return Indicator{}, false
}

// Markdown renders a compact snapshot report.
func (s *Snapshot) Markdown() string {
	var b strings.Builder
	b.WriteString("[SURVEY SNAPSHOT]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Respondents: %d\n", s.Records))
	b.WriteString(fmt.Sprintf("Adoption index: %.1f%%\n\n", s.AdoptionIndex))

	b.WriteString("[INDICATORS]\n")
	for _, ind := range s.Indicators {
		b.WriteString(fmt.Sprintf("- %s: mean %.2f (min %d, max %d, std %.2f)\n", ind.Column, ind.Mean, ind.Min, ind.Max, ind.Std))
	}
	if len(s.Roles) > 0 {
		b.WriteString("\n[BY ROLE]\n")
		for _, r := range s.Roles {
			name := r.Role
			if name == "" {
				name = "(unspecified)"
			}
			m := r.Means
			b.WriteString(fmt.Sprintf("- %s (n=%d)\n", name, r.Size))
			b.WriteString(fmt.Sprintf("  • barriers: reticence %.2f, austerity %.2f, mandated use %.2f\n", m.Reticence, m.Austerity, m.MandatedUse))
			b.WriteString(fmt.Sprintf("  • adoption %.1f%%, ethics %.2f, technical %.2f\n", m.AdoptionIndex(), m.Ethics, m.Technical))
		}
	}
	return b.String()
}
