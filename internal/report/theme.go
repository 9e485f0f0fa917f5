package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/didia-cli/internal/recommend"
)

// Palette is a three-stop intensity scale plus accent colors (hex).
type Palette struct {
	Low    string `json:"low"`
	Mid    string `json:"mid"`
	High   string `json:"high"`
	Accent string `json:"accent"`
	Muted  string `json:"muted"`
}

// Intensity picks the palette stop for a 1-5 barrier level.
func (p Palette) Intensity(v float64) string {
	switch {
	case v >= 4:
		return p.High
	case v >= 2.5:
		return p.Mid
	default:
		return p.Low
	}
}

// Labels is the user-facing copy of a dashboard.
type Labels struct {
	Title            string
	Subtitle         string
	DataAnalyzed     string // format with respondent count
	AdoptionScore    string
	AdoptionCaption  string
	Reticence        string
	ReticenceCaption string
	Austerity        string
	AusterityCaption string
	Mandated         string
	MandatedCaption  string
	BarrierMap       string
	BarrierChart     string
	ReticenceBar     string
	AusterityBar     string
	MandatedBar      string
	CompetencyGap    string
	Ethics           string
	Technical        string
	Pedagogical      string
	Recommender      string
	Analyzing        string
	Simulated        string
	Uploaded         string
	Fallback         string // format with error text
	TemplateLink     string
	UploadLabel      string
	GenerateButton   string
	Appendix         string
	Footer           string
}

// Theme bundles palette, copy and advice catalog under a name.
type Theme struct {
	Name     string
	Language string
	Palette  Palette
	Labels   Labels
	Catalog  recommend.Catalog
}

var spanishLabels = Labels{
	Title:            "DiDIA-BA: Brújula de Apropiación Docente",
	Subtitle:         "Dispositivo de Diagnóstico Institucional basado en el Modelo de Apropiación. Este tablero analiza las barreras de Austeridad, Reticencia y Usos Obligados para recomendar políticas de formación.",
	DataAnalyzed:     "Datos analizados: %d docentes.",
	AdoptionScore:    "Puntaje de Apropiación",
	AdoptionCaption:  "Nivel General",
	Reticence:        "Nivel de Reticencia",
	ReticenceCaption: "Barrera Ética/Miedo",
	Austerity:        "Nivel de Austeridad",
	AusterityCaption: "Barrera Recursos/Tiempo",
	Mandated:         "Nivel de Usos Obligados",
	MandatedCaption:  "Barrera Control",
	BarrierMap:       "Mapa de Límites a la Domesticación",
	BarrierChart:     "Barreras detectadas (Escala 1-5)",
	ReticenceBar:     "Reticencia (Miedo/Ética)",
	AusterityBar:     "Austeridad (Recursos/Tiempo)",
	MandatedBar:      "Usos Obligados (Control)",
	CompetencyGap:    "Brecha de Competencias",
	Ethics:           "Ética (UNESCO)",
	Technical:        "Técnica (UNESCO)",
	Pedagogical:      "Pedagógica (UNESCO)",
	Recommender:      "Motor de Recomendación de Políticas (DiDIA AI)",
	Analyzing:        "Analizando patrones en los datos cargados...",
	Simulated:        "Usando datos simulados (Demo)",
	Uploaded:         "Datos cargados correctamente",
	Fallback:         "Error al leer el archivo: %s",
	TemplateLink:     "Descargar Plantilla CSV de Ejemplo",
	UploadLabel:      "Subir archivo CSV",
	GenerateButton:   "Generar Diagnóstico y Recomendación",
	Appendix:         "Anexo: resumen de la encuesta",
	Footer:           "Desarrollado para el TIF: 'Indagación sobre el Impacto de la IAG en Docentes de Nivel Medio CABA'.",
}

var englishLabels = Labels{
	Title:            "DiDIA-BA: Teacher Adoption Compass",
	Subtitle:         "Institutional diagnosis based on the Adoption Model. This dashboard analyzes the Austerity, Reticence and Mandated Use barriers to recommend training policies.",
	DataAnalyzed:     "Data analyzed: %d teachers.",
	AdoptionScore:    "Adoption Score",
	AdoptionCaption:  "General Level",
	Reticence:        "Reticence Level",
	ReticenceCaption: "Ethics/Fear Barrier",
	Austerity:        "Austerity Level",
	AusterityCaption: "Resources/Time Barrier",
	Mandated:         "Mandated Use Level",
	MandatedCaption:  "Control Barrier",
	BarrierMap:       "Domestication Limits Map",
	BarrierChart:     "Detected barriers (1-5 scale)",
	ReticenceBar:     "Reticence (Fear/Ethics)",
	AusterityBar:     "Austerity (Resources/Time)",
	MandatedBar:      "Mandated Use (Control)",
	CompetencyGap:    "Competency Gap",
	Ethics:           "Ethics (UNESCO)",
	Technical:        "Technical (UNESCO)",
	Pedagogical:      "Pedagogical (UNESCO)",
	Recommender:      "Policy Recommendation Engine (DiDIA AI)",
	Analyzing:        "Analyzing patterns in the loaded data...",
	Simulated:        "Using simulated data (Demo)",
	Uploaded:         "Data loaded successfully",
	Fallback:         "Could not read the file: %s",
	TemplateLink:     "Download Sample CSV Template",
	UploadLabel:      "Upload CSV file",
	GenerateButton:   "Generate Diagnosis and Recommendation",
	Appendix:         "Appendix: survey summary",
	Footer:           "Built for the thesis 'Inquiry into the Impact of GenAI on Secondary School Teachers in CABA'.",
}

var themes = map[string]Theme{
	// Reversed red-yellow-green: high barrier is red.
	"classic": {
		Name:     "classic",
		Language: "es",
		Palette:  Palette{Low: "#1a9850", Mid: "#fee08b", High: "#d73027", Accent: "#4575b4", Muted: "#888888"},
		Labels:   spanishLabels,
		Catalog:  recommend.SpanishCatalog,
	},
	"plain": {
		Name:     "plain",
		Language: "en",
		Palette:  Palette{Low: "#c6dbef", Mid: "#6baed6", High: "#08519c", Accent: "#31a354", Muted: "#999999"},
		Labels:   englishLabels,
		Catalog:  recommend.EnglishCatalog,
	},
}

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "classic"

// ThemeByName looks up a registered theme.
func ThemeByName(name string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultTheme
	}
	th, ok := themes[key]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return th, nil
}

// ThemeNames lists registered themes, sorted.
func ThemeNames() []string {
	out := make([]string, 0, len(themes))
	for n := range themes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
