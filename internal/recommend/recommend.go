// Package recommend maps aggregated barrier levels to a policy diagnosis.
//
// The chain is ordered: austerity is checked first, then reticence, then
// mandated use. The first barrier at or over the cutoff wins; if none is,
// the institution is diagnosed as healthy.
package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// Category is a diagnostic outcome.
type Category int

const (
	Healthy Category = iota
	AusterityCritical
	ReticenceCritical
	MandatedUseCritical
)

var categoryNames = map[Category]string{
	Healthy:             "healthy",
	AusterityCritical:   "austerity-critical",
	ReticenceCritical:   "reticence-critical",
	MandatedUseCritical: "mandated-use-critical",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	if _, ok := categoryNames[c]; !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(c.String()), nil
}

// Critical reports whether the category names a barrier.
func (c Category) Critical() bool { return c != Healthy }

// ThresholdSet decides when a barrier mean counts as critical.
type ThresholdSet struct {
	Name   string  `json:"name" yaml:"name"`
	Cutoff float64 `json:"cutoff" yaml:"cutoff"`
	// Inclusive selects >= instead of >.
	Inclusive bool `json:"inclusive" yaml:"inclusive"`
}

// Exceeds reports whether mean crosses the cutoff.
func (t ThresholdSet) Exceeds(mean float64) bool {
	if t.Inclusive {
		return mean >= t.Cutoff
	}
	return mean > t.Cutoff
}

func (t ThresholdSet) String() string {
	op := ">"
	if t.Inclusive {
		op = ">="
	}
	return fmt.Sprintf("%s (%s %.1f)", t.Name, op, t.Cutoff)
}

// DefaultThresholdSet is the name of the set used by Recommend.
const DefaultThresholdSet = "inclusive"

var thresholdSets = map[string]ThresholdSet{
	"inclusive":     {Name: "inclusive", Cutoff: 4.0, Inclusive: true},
	"strict":        {Name: "strict", Cutoff: 4.0, Inclusive: false},
	"early-warning": {Name: "early-warning", Cutoff: 3.0, Inclusive: true},
}

// ThresholdSetByName looks up a named threshold set.
func ThresholdSetByName(name string) (ThresholdSet, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultThresholdSet
	}
	ts, ok := thresholdSets[key]
	if !ok {
		return ThresholdSet{}, fmt.Errorf("unknown threshold set %q (available: %s)", name, strings.Join(ThresholdSetNames(), ", "))
	}
	return ts, nil
}

// ThresholdSetNames lists the registered set names, sorted.
func ThresholdSetNames() []string {
	names := make([]string, 0, len(thresholdSets))
	for n := range thresholdSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Barriers are the three inputs to the classifier.
type Barriers struct {
	Austerity   float64 `json:"austerity"`
	Reticence   float64 `json:"reticence"`
	MandatedUse float64 `json:"mandated_use"`
}

// Recommendation is a category plus its advice.
type Recommendation struct {
	Category   Category     `json:"category"`
	Thresholds ThresholdSet `json:"thresholds"`
	Inputs     Barriers     `json:"inputs"`
	Advice     Advice       `json:"advice"`
}

// Text renders the advice as a multi-line block.
func (r Recommendation) Text() string { return r.Advice.Text() }

// Engine classifies barrier levels with a threshold set and copy catalog.
type Engine struct {
	thresholds ThresholdSet
	catalog    Catalog
}

// NewEngine returns an engine. A zero catalog uses the Spanish copy.
func NewEngine(ts ThresholdSet, catalog Catalog) Engine {
	if catalog == nil {
		catalog = SpanishCatalog
	}
	return Engine{thresholds: ts, catalog: catalog}
}

// Classify applies the ordered chain and returns the category.
func (e Engine) Classify(b Barriers) Category {
	switch {
	case e.thresholds.Exceeds(b.Austerity):
		return AusterityCritical
	case e.thresholds.Exceeds(b.Reticence):
		return ReticenceCritical
	case e.thresholds.Exceeds(b.MandatedUse):
		return MandatedUseCritical
	default:
		return Healthy
	}
}

// Recommend classifies the barrier means and attaches the matching advice.
func (e Engine) Recommend(austerity, reticence, mandatedUse float64) Recommendation {
	b := Barriers{Austerity: austerity, Reticence: reticence, MandatedUse: mandatedUse}
	c := e.Classify(b)
	return Recommendation{Category: c, Thresholds: e.thresholds, Inputs: b, Advice: e.catalog[c]}
}

var defaultEngine = NewEngine(thresholdSets[DefaultThresholdSet], SpanishCatalog)

// Recommend uses the inclusive 4.0 cutoff and Spanish copy.
func Recommend(austerity, reticence, mandatedUse float64) Recommendation {
	return defaultEngine.Recommend(austerity, reticence, mandatedUse)
}
