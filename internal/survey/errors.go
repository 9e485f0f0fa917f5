package survey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset is returned when a table holds no records.
var ErrEmptyDataset = errors.New("dataset has no records")

// FieldError describes a single invalid rating cell. Row is 1-based and
// excludes the header.
type FieldError struct {
	Row    int
	Column string
	Value  string
}

func (f FieldError) String() string {
	v := f.Value
	if v == "" {
		v = "(empty)"
	}
	return fmt.Sprintf("row %d %s=%s", f.Row, f.Column, v)
}

// SchemaError reports a table that parsed but does not match the survey schema.
type SchemaError struct {
	Missing []string
	Invalid []FieldError
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required columns: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		const show = 5
		var vals []string
		for i, fe := range e.Invalid {
			if i == show {
				vals = append(vals, fmt.Sprintf("... %d more", len(e.Invalid)-show))
				break
			}
			vals = append(vals, fe.String())
		}
		parts = append(parts, fmt.Sprintf("ratings must be integers in [%d,%d]: %s", MinRating, MaxRating, strings.Join(vals, "; ")))
	}
	if len(parts) == 0 {
		return "schema error"
	}
	return "schema error: " + strings.Join(parts, "; ")
}

// ParseError reports input that could not be read as CSV at all.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("parse csv: %v", e.Err)
	}
	return fmt.Sprintf("parse csv %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
