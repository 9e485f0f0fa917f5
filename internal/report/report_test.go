package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/didia-cli/internal/analysis"
	"github.com/KaramelBytes/didia-cli/internal/recommend"
	"github.com/KaramelBytes/didia-cli/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoSnapshot(t *testing.T) *analysis.Snapshot {
	t.Helper()
	s, err := analysis.Aggregate(survey.Generate(survey.NewRand(1), survey.DefaultSyntheticSpec()))
	require.NoError(t, err)
	return s
}

func TestBuildKPIsAndBars(t *testing.T) {
	s := demoSnapshot(t)
	th, err := ThemeByName("")
	require.NoError(t, err)
	d := Build(Input{Snapshot: s, Origin: survey.OriginSimulated, Seed: 1}, th)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "classic", d.Theme)
	assert.Equal(t, uint64(1), d.Seed)
	require.Len(t, d.KPIs, 4)
	assert.Equal(t, "Puntaje de Apropiación", d.KPIs[0].Label)
	assert.False(t, d.KPIs[0].Inverse)
	assert.True(t, d.KPIs[2].Inverse)
	require.Len(t, d.Barriers, 3)
	assert.Equal(t, s.Means.Austerity, d.Barriers[1].Value)
	assert.Equal(t, th.Palette.High, d.Barriers[1].Color, "austerity >= 4 is high intensity")
	require.Len(t, d.Competencies, 3)
	assert.Equal(t, s.Means.PedagogicalEstimate(), d.Competencies[2].Value)
	assert.Equal(t, []string{"Usando datos simulados (Demo)"}, d.Notices)
}

func TestBuildFallbackNotice(t *testing.T) {
	th, _ := ThemeByName("plain")
	d := Build(Input{Snapshot: demoSnapshot(t), Origin: survey.OriginSimulated, Fallback: errors.New("bare quote")}, th)
	require.Len(t, d.Notices, 2)
	assert.Equal(t, "Could not read the file: bare quote", d.Notices[0])
}

func TestBarPercentClamps(t *testing.T) {
	assert.Equal(t, 100.0, Bar{Value: 7}.Percent())
	assert.Equal(t, 0.0, Bar{Value: -1}.Percent())
	assert.Equal(t, 50.0, Bar{Value: 2.5}.Percent())
}

func TestPaletteIntensity(t *testing.T) {
	p := Palette{Low: "l", Mid: "m", High: "h"}
	assert.Equal(t, "l", p.Intensity(2.4))
	assert.Equal(t, "m", p.Intensity(2.5))
	assert.Equal(t, "m", p.Intensity(3.99))
	assert.Equal(t, "h", p.Intensity(4))
}

func TestThemeByNameUnknown(t *testing.T) {
	_, err := ThemeByName("neon")
	assert.ErrorContains(t, err, "classic, plain")
}

func TestMarkdownIncludesRecommendation(t *testing.T) {
	s := demoSnapshot(t)
	rec := recommend.Recommend(s.Means.Austerity, s.Means.Reticence, s.Means.MandatedUse)
	th, _ := ThemeByName("classic")
	md := Build(Input{Snapshot: s, Recommendation: &rec, Origin: survey.OriginSimulated}, th).Markdown()
	for _, want := range []string{
		"# DiDIA-BA: Brújula de Apropiación Docente",
		"Datos analizados: 50 docentes.",
		"## Mapa de Límites a la Domesticación",
		"## Brecha de Competencias",
		"## Motor de Recomendación de Políticas (DiDIA AI)",
		"🔴 DIAGNÓSTICO CRÍTICO: AUSTERIDAD",
		"1. Infraestructura",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownWithoutRecommendation(t *testing.T) {
	th, _ := ThemeByName("classic")
	md := Build(Input{Snapshot: demoSnapshot(t), Origin: survey.OriginUploaded}, th).Markdown()
	assert.NotContains(t, md, "Motor de Recomendación")
	assert.Contains(t, md, "> Datos cargados correctamente")
}

func TestMarkdownAppendsSnapshot(t *testing.T) {
	s := demoSnapshot(t)
	th, _ := ThemeByName("plain")
	md := Build(Input{Snapshot: s, Origin: survey.OriginSimulated}, th).Markdown()
	assert.Contains(t, md, "## Appendix: survey summary")
	assert.Contains(t, md, s.Markdown())
	assert.Contains(t, md, "[SURVEY SNAPSHOT]")
	assert.Contains(t, md, "[BY ROLE]")
}

func TestTerminalRender(t *testing.T) {
	s := demoSnapshot(t)
	rec := recommend.Recommend(s.Means.Austerity, s.Means.Reticence, s.Means.MandatedUse)
	th, _ := ThemeByName("plain")
	rec.Advice = th.Catalog[rec.Category]
	out := Build(Input{Snapshot: s, Recommendation: &rec, Origin: survey.OriginSimulated}, th).Terminal()
	for _, want := range []string{
		"DiDIA-BA: Teacher Adoption Compass",
		"Data analyzed: 50 teachers.",
		"Adoption Score",
		"Austerity Level",
		"Competency Gap",
		"CRITICAL DIAGNOSIS: AUSTERITY",
	} {
		assert.Contains(t, out, want)
	}
}

func TestJSON(t *testing.T) {
	th, _ := ThemeByName("classic")
	b, err := Build(Input{Snapshot: demoSnapshot(t), Origin: survey.OriginSimulated, Seed: 9}, th).JSON()
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "simulated", got["origin"])
	assert.Equal(t, float64(9), got["seed"])
	assert.NotContains(t, got, "recommendation")
	snap := got["snapshot"].(map[string]any)
	assert.Equal(t, float64(50), snap["records"])
}

func TestHTMLPage(t *testing.T) {
	s := demoSnapshot(t)
	rec := recommend.Recommend(s.Means.Austerity, s.Means.Reticence, s.Means.MandatedUse)
	th, _ := ThemeByName("classic")
	p := NewPage(th)
	p.Dashboard = Build(Input{Snapshot: s, Recommendation: &rec, Origin: survey.OriginSimulated, Seed: 4}, th)
	p.TemplateURL = "/template.csv?seed=4"

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	html := buf.String()
	assert.Contains(t, html, `<html lang="es">`)
	assert.Contains(t, html, "Descargar Plantilla CSV de Ejemplo")
	assert.Contains(t, html, `data-category="austerity-critical"`)
	assert.Contains(t, html, "Datos analizados: 50 docentes.")
	assert.Contains(t, html, "Generar Diagnóstico y Recomendación")
}

func TestHTMLPageError(t *testing.T) {
	th, _ := ThemeByName("plain")
	p := NewPage(th)
	p.Error = "schema error: missing required columns: Comp_Etica"
	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	assert.Contains(t, buf.String(), "missing required columns: Comp_Etica")
	assert.NotContains(t, buf.String(), `class="kpis"`)
}
