package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// Advice is the static text attached to a category.
type Advice struct {
	Headline  string   `json:"headline"`
	Diagnosis string   `json:"diagnosis"`
	Label     string   `json:"label"`
	Actions   []string `json:"actions"`
}

// Text renders the advice as plain multi-line text.
func (a Advice) Text() string {
	var b strings.Builder
	b.WriteString(a.Headline)
	b.WriteString("\n")
	if a.Diagnosis != "" {
		b.WriteString(a.Diagnosis)
		b.WriteString("\n")
	}
	if len(a.Actions) > 0 {
		b.WriteString("\n")
		b.WriteString(a.Label)
		b.WriteString("\n")
		for i, act := range a.Actions {
			if len(a.Actions) > 1 {
				b.WriteString(fmt.Sprintf("%d. ", i+1))
			}
			b.WriteString(act)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Catalog holds one Advice per category.
type Catalog map[Category]Advice

// SpanishCatalog is the institutional copy used by the classic report.
var SpanishCatalog = Catalog{
	AusterityCritical: {
		Headline:  "DIAGNÓSTICO CRÍTICO: AUSTERIDAD (Estructural)",
		Diagnosis: "Los docentes reportan falta severa de tiempo o recursos. Cualquier capacitación extra será rechazada si no se libera tiempo primero.",
		Label:     "RECOMENDACIÓN DE POLÍTICA:",
		Actions: []string{
			"Infraestructura: Garantizar acceso a versiones pagas o equipos.",
			"Tiempo Protegido: Reducir carga administrativa usando IA para liberar 2hs semanales dedicadas a experimentación.",
		},
	},
	ReticenceCritical: {
		Headline:  "DIAGNÓSTICO CRÍTICO: RETICENCIA (Cultural)",
		Diagnosis: "Existe un fuerte temor al plagio, a la pérdida de control del aula o a la desprofesionalización.",
		Label:     "RECOMENDACIÓN DE POLÍTICA:",
		Actions: []string{
			"Talleres de Sensibilización: Enfocados en \"IA como Copiloto\" y no como reemplazo.",
			"Debate Ético: Espacios institucionales para definir normas de integridad académica.",
		},
	},
	MandatedUseCritical: {
		Headline:  "DIAGNÓSTICO CRÍTICO: USOS OBLIGADOS (Vigilancia)",
		Diagnosis: "Los docentes perciben la tecnología como una herramienta de control administrativo.",
		Label:     "RECOMENDACIÓN DE POLÍTICA:",
		Actions: []string{
			"Cambio de Narrativa: Desvincular la IA de procesos de presentismo/control.",
			"Incentivos Positivos: Premiar la innovación pedagógica en lugar de vigilar el cumplimiento.",
		},
	},
	Healthy: {
		Headline:  "ESTADO SALUDABLE",
		Diagnosis: "La institución tiene un buen nivel de apropiación.",
		Label:     "RECOMENDACIÓN:",
		Actions: []string{
			"Avanzar al Nivel 3 (Crear) del marco UNESCO: fomentar que los docentes creen sus propios bots o recursos personalizados.",
		},
	},
}

// EnglishCatalog carries the same advice in English.
var EnglishCatalog = Catalog{
	AusterityCritical: {
		Headline:  "CRITICAL DIAGNOSIS: AUSTERITY (Structural)",
		Diagnosis: "Teachers report a severe lack of time or resources. Any extra training will be rejected unless time is freed first.",
		Label:     "POLICY RECOMMENDATION:",
		Actions: []string{
			"Infrastructure: Guarantee access to paid tiers or equipment.",
			"Protected Time: Cut administrative load with AI to free 2 hours per week for experimentation.",
		},
	},
	ReticenceCritical: {
		Headline:  "CRITICAL DIAGNOSIS: RETICENCE (Cultural)",
		Diagnosis: "There is strong fear of plagiarism, of losing control of the classroom, or of deprofessionalization.",
		Label:     "POLICY RECOMMENDATION:",
		Actions: []string{
			"Awareness Workshops: Focused on \"AI as Copilot\", not as a replacement.",
			"Ethics Debate: Institutional spaces to define academic integrity rules.",
		},
	},
	MandatedUseCritical: {
		Headline:  "CRITICAL DIAGNOSIS: MANDATED USE (Surveillance)",
		Diagnosis: "Teachers perceive the technology as an administrative control tool.",
		Label:     "POLICY RECOMMENDATION:",
		Actions: []string{
			"Change the Narrative: Decouple AI from attendance and control processes.",
			"Positive Incentives: Reward pedagogical innovation instead of policing compliance.",
		},
	},
	Healthy: {
		Headline:  "HEALTHY STATE",
		Diagnosis: "The institution shows a good level of adoption.",
		Label:     "RECOMMENDATION:",
		Actions: []string{
			"Move to Level 3 (Create) of the UNESCO framework: encourage teachers to build their own bots or custom resources.",
		},
	},
}

var catalogs = map[string]Catalog{
	"es": SpanishCatalog,
	"en": EnglishCatalog,
}

// CatalogByLanguage returns the copy for a language code.
func CatalogByLanguage(lang string) (Catalog, error) {
	c, ok := catalogs[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		langs := make([]string, 0, len(catalogs))
		for k := range catalogs {
			langs = append(langs, k)
		}
		sort.Strings(langs)
		return nil, fmt.Errorf("no advice catalog for language %q (available: %s)", lang, strings.Join(langs, ", "))
	}
	return c, nil
}
