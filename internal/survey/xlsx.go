package survey

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"
)

var zipMagic = []byte("PK\x03\x04")

func isXLSX(name string, data []byte) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xlsx") || bytes.HasPrefix(data, zipMagic)
}

// xlsxRowReader walks the rows of the first worksheet of a workbook.
type xlsxRowReader struct {
	dec    *xml.Decoder
	shared []string
}

func newXLSXRowReader(data []byte) (*xlsxRowReader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.New("not a readable xlsx workbook")
	}
	sheet := zipEntry(zr, firstSheetPath(zr))
	if sheet == nil {
		return nil, errors.New("workbook has no worksheet")
	}
	return &xlsxRowReader{
		dec:    xml.NewDecoder(bytes.NewReader(sheet)),
		shared: sharedStrings(zipEntry(zr, "xl/sharedStrings.xml")),
	}, nil
}

// Read returns the next row with trailing empty cells dropped.
func (r *xlsxRowReader) Read() ([]string, error) {
	var row []string
	inRow := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch {
			case se.Name.Local == "row":
				inRow, row = true, nil
			case inRow && se.Name.Local == "c":
				ref, typ := attr(se, "r"), attr(se, "t")
				val, err := r.cellValue(typ)
				if err != nil {
					return nil, err
				}
				col := columnIndex(ref)
				if col < 0 {
					col = len(row)
				}
				for len(row) <= col {
					row = append(row, "")
				}
				row[col] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				for len(row) > 0 && strings.TrimSpace(row[len(row)-1]) == "" {
					row = row[:len(row)-1]
				}
				return row, nil
			}
		}
	}
}

// cellValue consumes a <c> element and resolves shared and inline strings.
func (r *xlsxRowReader) cellValue(typ string) (string, error) {
	var sb strings.Builder
	inText := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				sb.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "v", "t":
				inText = false
			case "c":
				val := sb.String()
				if typ == "s" {
					i, err := strconv.Atoi(strings.TrimSpace(val))
					if err != nil || i < 0 || i >= len(r.shared) {
						return "", nil
					}
					return r.shared[i], nil
				}
				return val, nil
			}
		}
	}
}

// firstSheetPath resolves the first <sheet> of xl/workbook.xml through the
// workbook relationships, defaulting to sheet1.xml.
func firstSheetPath(zr *zip.Reader) string {
	const fallback = "xl/worksheets/sheet1.xml"
	var rid string
	walkXML(zipEntry(zr, "xl/workbook.xml"), func(se xml.StartElement) bool {
		if se.Name.Local == "sheet" {
			rid = attr(se, "id")
			return false
		}
		return true
	})
	if rid == "" {
		return fallback
	}
	target := ""
	walkXML(zipEntry(zr, "xl/_rels/workbook.xml.rels"), func(se xml.StartElement) bool {
		if se.Name.Local == "Relationship" && attr(se, "Id") == rid {
			target = attr(se, "Target")
			return false
		}
		return true
	})
	if target == "" {
		return fallback
	}
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "xl/") {
		target = path.Join("xl", target)
	}
	return target
}

func sharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				sb.Reset()
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				sb.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inText = false
			case "si":
				out = append(out, sb.String())
			}
		}
	}
}

// walkXML calls fn for each start element until fn returns false.
func walkXML(data []byte, fn func(xml.StartElement) bool) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok && !fn(se) {
			return
		}
	}
}

func zipEntry(zr *zip.Reader, name string) []byte {
	f, err := zr.Open(name)
	if err != nil {
		return nil
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil
	}
	return b
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// columnIndex maps a cell reference like "C12" to 2; -1 when absent.
func columnIndex(ref string) int {
	idx := 0
	n := 0
	for _, c := range strings.ToUpper(ref) {
		if c < 'A' || c > 'Z' {
			break
		}
		idx = idx*26 + int(c-'A'+1)
		n++
	}
	if n == 0 {
		return -1
	}
	return idx - 1
}
