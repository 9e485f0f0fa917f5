package survey

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Range is an inclusive rating interval.
type Range struct {
	Min int `mapstructure:"min" yaml:"min"`
	Max int `mapstructure:"max" yaml:"max"`
}

// SyntheticSpec describes a demo table.
type SyntheticSpec struct {
	Size   int
	Roles  []string
	Ranges map[string]Range
}

// DefaultSyntheticSpec returns the demo profile: 50 respondents biased toward
// high austerity and reticence with low adoption.
func DefaultSyntheticSpec() SyntheticSpec {
	return SyntheticSpec{
		Size:  50,
		Roles: Roles,
		Ranges: map[string]Range{
			ColEthics:      {1, 3},
			ColTechnical:   {2, 4},
			ColReticence:   {3, 5},
			ColAusterity:   {4, 5},
			ColMandatedUse: {1, 3},
			ColAdoption:    {1, 3},
		},
	}
}

// Validate checks the spec can produce a valid table.
func (s SyntheticSpec) Validate() error {
	if s.Size <= 0 {
		return fmt.Errorf("synthetic size must be positive, got %d", s.Size)
	}
	if len(s.Roles) == 0 {
		return fmt.Errorf("synthetic spec needs at least one role")
	}
	for _, col := range RequiredColumns {
		rg, ok := s.Ranges[col]
		if !ok {
			return fmt.Errorf("synthetic spec missing range for %s", col)
		}
		if !InRange(rg.Min) || !InRange(rg.Max) || rg.Min > rg.Max {
			return fmt.Errorf("invalid range for %s: [%d,%d]", col, rg.Min, rg.Max)
		}
	}
	return nil
}

// Generate draws a synthetic table from rng. Roles are uniform over spec.Roles
// and each rating is uniform over its range. Generate panics on an invalid spec;
// call Validate first for untrusted input.
func Generate(rng *rand.Rand, spec SyntheticSpec) *Table {
	if err := spec.Validate(); err != nil {
		panic(err)
	}
	t := &Table{Name: "synthetic", Records: make([]Record, spec.Size)}
	for i := range t.Records {
		r := Record{
			ID:   strconv.Itoa(i + 1),
			Role: spec.Roles[rng.IntN(len(spec.Roles))],
		}
		for _, col := range RequiredColumns {
			rg := spec.Ranges[col]
			r.setRating(col, rg.Min+rng.IntN(rg.Max-rg.Min+1))
		}
		t.Records[i] = r
	}
	return t
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
