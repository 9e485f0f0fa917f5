package recommend

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendPriorityChain(t *testing.T) {
	tests := []struct {
		name        string
		austerity   float64
		reticence   float64
		mandatedUse float64
		want        Category
	}{
		{"austerity at cutoff wins", 4.0, 1, 1, AusterityCritical},
		{"austerity dominates reticence", 4.0, 5, 5, AusterityCritical},
		{"reticence just under austerity", 3.99, 4.0, 5, ReticenceCritical},
		{"reticence dominates mandated use", 1, 4.5, 4.5, ReticenceCritical},
		{"mandated use alone", 3.9, 3.9, 4.0, MandatedUseCritical},
		{"all below", 3.99, 3.99, 3.99, Healthy},
		{"floor", 1, 1, 1, Healthy},
		{"ceiling", 5, 5, 5, AusterityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.austerity, tt.reticence, tt.mandatedUse)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, SpanishCatalog[tt.want], got.Advice)
		})
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	for a := 1.0; a <= 5.0; a += 0.25 {
		for r := 1.0; r <= 5.0; r += 0.25 {
			for m := 1.0; m <= 5.0; m += 0.25 {
				first := Recommend(a, r, m)
				second := Recommend(a, r, m)
				require.Equal(t, first, second)
				_, known := categoryNames[first.Category]
				require.True(t, known)
			}
		}
	}
}

func TestThresholdSets(t *testing.T) {
	strict, err := ThresholdSetByName("strict")
	require.NoError(t, err)
	e := NewEngine(strict, nil)
	assert.Equal(t, Healthy, e.Recommend(4.0, 4.0, 4.0).Category)
	assert.Equal(t, ReticenceCritical, e.Recommend(4.0, 4.01, 1).Category)

	early, err := ThresholdSetByName("Early-Warning")
	require.NoError(t, err)
	assert.Equal(t, MandatedUseCritical, NewEngine(early, nil).Recommend(2.9, 2.9, 3.0).Category)

	def, err := ThresholdSetByName("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThresholdSet, def.Name)

	_, err = ThresholdSetByName("lenient")
	assert.ErrorContains(t, err, "early-warning, inclusive, strict")
}

func TestEnglishCatalog(t *testing.T) {
	c, err := CatalogByLanguage("EN")
	require.NoError(t, err)
	ts, _ := ThresholdSetByName(DefaultThresholdSet)
	rec := NewEngine(ts, c).Recommend(1, 1, 1)
	assert.Equal(t, "HEALTHY STATE", rec.Advice.Headline)

	_, err = CatalogByLanguage("fr")
	assert.Error(t, err)
}

func TestCatalogsCoverEveryCategory(t *testing.T) {
	for name, c := range catalogs {
		for cat := range categoryNames {
			adv, ok := c[cat]
			assert.True(t, ok, "catalog %s lacks %s", name, cat)
			assert.NotEmpty(t, adv.Headline)
			assert.NotEmpty(t, adv.Actions)
		}
	}
}

func TestRecommendationText(t *testing.T) {
	txt := Recommend(4.2, 1, 1).Text()
	assert.True(t, strings.HasPrefix(txt, "DIAGNÓSTICO CRÍTICO: AUSTERIDAD"))
	assert.Contains(t, txt, "RECOMENDACIÓN DE POLÍTICA:\n1. Infraestructura")
	assert.Contains(t, txt, "\n2. Tiempo Protegido")

	healthy := Recommend(1, 1, 1).Text()
	assert.Contains(t, healthy, "RECOMENDACIÓN:\nAvanzar al Nivel 3")
}

func TestRecommendationJSON(t *testing.T) {
	b, err := json.Marshal(Recommend(3, 4.5, 1))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"category":"reticence-critical"`)
	assert.Contains(t, string(b), `"inclusive":true`)
}
