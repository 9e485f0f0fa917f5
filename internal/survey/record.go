package survey

// Column names as they appear in the survey CSV header.
const (
	ColID          = "ID_Docente"
	ColRole        = "Rol"
	ColEthics      = "Comp_Etica"
	ColTechnical   = "Comp_Tecnica"
	ColReticence   = "Reticencia_Miedo"
	ColAusterity   = "Austeridad_Tiempo"
	ColMandatedUse = "Uso_Obligado_Vigilancia"
	ColAdoption    = "Apropiacion_Uso"
)

// Rating scale bounds (Likert 1-5).
const (
	MinRating = 1
	MaxRating = 5
)

// Roles sampled by the synthetic generator.
const (
	RoleClassroom   = "Docente Aula"
	RoleDirector    = "Directivo"
	RoleCoordinator = "Coordinador"
)

// Roles lists the known respondent roles.
var Roles = []string{RoleClassroom, RoleDirector, RoleCoordinator}

// RequiredColumns are the rating columns every uploaded table must carry.
var RequiredColumns = []string{
	ColReticence, ColAusterity, ColMandatedUse, ColAdoption, ColEthics, ColTechnical,
}

// Columns is the canonical template header, in output order.
var Columns = []string{
	ColID, ColRole, ColEthics, ColTechnical, ColReticence, ColAusterity, ColMandatedUse, ColAdoption,
}

// Origin tells where a table came from.
type Origin string

const (
	OriginUploaded  Origin = "uploaded"
	OriginSimulated Origin = "simulated"
)

// Record is one surveyed respondent.
type Record struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Ethics      int    `json:"comp_etica"`
	Technical   int    `json:"comp_tecnica"`
	Reticence   int    `json:"reticencia_miedo"`
	Austerity   int    `json:"austeridad_tiempo"`
	MandatedUse int    `json:"uso_obligado_vigilancia"`
	Adoption    int    `json:"apropiacion_uso"`
}

// Rating returns the value of a rating column, or false for non-rating columns.
func (r Record) Rating(col string) (int, bool) {
	switch col {
	case ColEthics:
		return r.Ethics, true
	case ColTechnical:
		return r.Technical, true
	case ColReticence:
		return r.Reticence, true
	case ColAusterity:
		return r.Austerity, true
	case ColMandatedUse:
		return r.MandatedUse, true
	case ColAdoption:
		return r.Adoption, true
	}
	return 0, false
}

func (r *Record) setRating(col string, v int) {
	switch col {
	case ColEthics:
		r.Ethics = v
	case ColTechnical:
		r.Technical = v
	case ColReticence:
		r.Reticence = v
	case ColAusterity:
		r.Austerity = v
	case ColMandatedUse:
		r.MandatedUse = v
	case ColAdoption:
		r.Adoption = v
	}
}

// Table is an immutable snapshot of survey responses.
type Table struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// InRange reports whether v is a valid rating.
func InRange(v int) bool { return v >= MinRating && v <= MaxRating }
