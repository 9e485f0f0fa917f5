package survey

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DecodeOptions controls CSV decoding.
type DecodeOptions struct {
	// Delimiter for CSV. If 0, picks '\t' for .tsv names and ',' otherwise.
	Delimiter rune
}

// Decode reads a survey table from CSV, or from the first sheet of an XLSX
// workbook when name ends in .xlsx or the data is a zip archive. Malformed
// input yields a *ParseError; a well-formed table that lacks required columns
// or carries invalid ratings yields a *SchemaError; a header-only table yields
// ErrEmptyDataset.
func Decode(name string, r io.Reader, opt DecodeOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Name: name, Err: fmt.Errorf("read: %w", err)}
	}
	if isXLSX(name, data) {
		rr, err := newXLSXRowReader(data)
		if err != nil {
			return nil, &ParseError{Name: name, Err: err}
		}
		return decodeRows(name, rr)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return nil, &ParseError{Name: name, Err: errors.New("input is not valid UTF-8")}
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(name)
	}
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim
	return decodeRows(name, cr)
}

// rowReader yields rows until io.EOF; *csv.Reader satisfies it.
type rowReader interface {
	Read() ([]string, error)
}

// decodeRows reads every row before checking the schema, so malformed input
// is reported as a *ParseError even when columns are also missing.
func decodeRows(name string, rr rowReader) (*Table, error) {
	header, err := rr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Name: name, Err: errors.New("missing header row")}
		}
		return nil, &ParseError{Name: name, Err: fmt.Errorf("read header: %w", err)}
	}
	var rows [][]string
	for line := 1; ; line++ {
		rec, err := rr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Name: name, Err: fmt.Errorf("read row %d: %w", line, err)}
		}
		if blankRow(rec) {
			continue
		}
		if len(rec) > len(header) {
			return nil, &ParseError{Name: name, Err: fmt.Errorf("row %d: expected %d fields, saw %d", line, len(header), len(rec))}
		}
		rows = append(rows, rec)
	}

	if err := Validate(header); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	t := &Table{Name: name}
	var invalid []FieldError
	for n, rec := range rows {
		row := n + 1
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		r := Record{ID: cell(ColID), Role: cell(ColRole)}
		if r.ID == "" {
			r.ID = strconv.Itoa(row)
		}
		for _, col := range RequiredColumns {
			raw := cell(col)
			v, ok := parseRating(raw)
			if !ok {
				invalid = append(invalid, FieldError{Row: row, Column: col, Value: raw})
				continue
			}
			r.setRating(col, v)
		}
		t.Records = append(t.Records, r)
	}
	if len(invalid) > 0 {
		return nil, &SchemaError{Invalid: invalid}
	}
	if len(t.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyDataset)
	}
	return t, nil
}

// blankRow reports whether every cell is empty or whitespace.
func blankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Validate checks that header contains every required rating column.
// Extra columns are allowed.
func Validate(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// EncodeCSV writes the table using the canonical column order, without an
// index column.
func EncodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(Columns))
	for _, r := range t.Records {
		row[0] = r.ID
		row[1] = r.Role
		for i, col := range Columns[2:] {
			v, _ := r.Rating(col)
			row[i+2] = strconv.Itoa(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TemplateCSV renders t as UTF-8 CSV bytes suitable as an upload template.
func TemplateCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseRating(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		if f < MinRating || f > MaxRating {
			return 0, false
		}
		v = int(f)
	}
	return v, InRange(v)
}

func sniffDelimiter(name string) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	return ','
}
