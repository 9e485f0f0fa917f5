package survey

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWorkbook zips the given parts into an in-memory .xlsx.
func buildWorkbook(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const (
	workbookXML = `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Respuestas" sheetId="1" r:id="rId7"/></sheets></workbook>`
	relsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId7" Type="worksheet" Target="/xl/worksheets/encuesta.xml"/></Relationships>`
	sharedXML = `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>Rol</t></si><si><t>Reticencia_Miedo</t></si><si><t>Austeridad_Tiempo</t></si>
<si><t>Uso_Obligado_Vigilancia</t></si><si><t>Apropiacion_Uso</t></si><si><t>Comp_Etica</t></si>
<si><t>Comp_Tecnica</t></si><si><t>Directivo</t></si></sst>`
	sheetXML = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c><c r="D1" t="s"><v>3</v></c><c r="E1" t="s"><v>4</v></c><c r="F1" t="s"><v>5</v></c><c r="G1" t="s"><v>6</v></c></row>
<row r="2"><c r="A2" t="s"><v>7</v></c><c r="B2"><v>4</v></c><c r="C2"><v>5</v></c><c r="D2"><v>1</v></c><c r="E2"><v>2</v></c><c r="F2"><v>3</v></c><c r="G2"><v>3</v></c></row>
<row r="3"><c r="A3" t="inlineStr"><is><t>Docente Aula</t></is></c><c r="B3"><v>2</v></c><c r="C3"><v>4.0</v></c><c r="D3"><v>2</v></c><c r="E3"><v>3</v></c><c r="F3"><v>1</v></c><c r="G3"><v>4</v></c><c r="H3"/></row>
</sheetData></worksheet>`
)

func TestDecodeXLSX(t *testing.T) {
	data := buildWorkbook(t, map[string]string{
		"xl/workbook.xml":            workbookXML,
		"xl/_rels/workbook.xml.rels": relsXML,
		"xl/sharedStrings.xml":       sharedXML,
		"xl/worksheets/encuesta.xml": sheetXML,
	})
	tbl, err := Decode("encuesta.xlsx", bytes.NewReader(data), DecodeOptions{})
	require.NoError(t, err)

	want := []Record{
		{ID: "1", Role: "Directivo", Ethics: 3, Technical: 3, Reticence: 4, Austerity: 5, MandatedUse: 1, Adoption: 2},
		{ID: "2", Role: "Docente Aula", Ethics: 1, Technical: 4, Reticence: 2, Austerity: 4, MandatedUse: 2, Adoption: 3},
	}
	if diff := cmp.Diff(want, tbl.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeXLSXSkipsEmptyRows(t *testing.T) {
	sheet := strings.Replace(sheetXML, "</sheetData>",
		`<row r="4"/><row r="5"><c r="A5" t="inlineStr"><is><t> </t></is></c></row></sheetData>`, 1)
	data := buildWorkbook(t, map[string]string{
		"xl/sharedStrings.xml":     sharedXML,
		"xl/worksheets/sheet1.xml": sheet,
	})
	tbl, err := Decode("encuesta.xlsx", bytes.NewReader(data), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestDecodeXLSXDefaultsToSheet1(t *testing.T) {
	data := buildWorkbook(t, map[string]string{
		"xl/sharedStrings.xml":     sharedXML,
		"xl/worksheets/sheet1.xml": sheetXML,
	})
	// sniffed from the zip header, not the name
	tbl, err := Decode("upload", bytes.NewReader(data), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestDecodeXLSXWithoutSheetIsParseError(t *testing.T) {
	data := buildWorkbook(t, map[string]string{"xl/workbook.xml": workbookXML})
	_, err := Decode("vacio.xlsx", bytes.NewReader(data), DecodeOptions{})
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))

	_, err = Decode("roto.xlsx", bytes.NewReader([]byte("not a zip")), DecodeOptions{})
	assert.True(t, errors.As(err, &pe))
}

func TestColumnIndex(t *testing.T) {
	for ref, want := range map[string]int{"A1": 0, "C12": 2, "Z3": 25, "AA10": 26, "ab2": 27, "": -1, "12": -1} {
		assert.Equal(t, want, columnIndex(ref), ref)
	}
}
