// Package spreadsheet turns uploaded CSV and Excel files into rows keyed by
// normalized header, and writes CSV reports.
package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"pinkslip/internal/shared/errors"
)

// Supported source encodings for CSV input.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row keyed by normalized header. Line is the 1-based
// line (CSV) or row (Excel) it came from in the source file.
type Row struct {
	Line   int
	Values map[string]string
}

// record is one raw row with its source line.
type record struct {
	line  int
	cells []string
}

// Reader parses uploaded files. The zero value reads UTF-8 CSV.
type Reader struct {
	decoder *encoding.Decoder
}

// NewReader returns a Reader that decodes CSV input from sourceEncoding.
func NewReader(sourceEncoding string) (*Reader, error) {
	switch strings.ToLower(strings.TrimSpace(sourceEncoding)) {
	case "", EncodingUTF8, "utf8":
		return &Reader{}, nil
	case EncodingWindows1252, "cp1252":
		return &Reader{decoder: charmap.Windows1252.NewDecoder()}, nil
	case EncodingISO88591, "latin1":
		return &Reader{decoder: charmap.ISO8859_1.NewDecoder()}, nil
	default:
		return nil, fmt.Errorf("unsupported source encoding %q", sourceEncoding)
	}
}

// Read parses r according to the extension of filename. The first
// non-blank row is the header; blank rows are dropped and short rows
// padded with "". Each row keeps its source line number.
func (rd *Reader) Read(r io.Reader, filename string) ([]Row, error) {
	var (
		records []record
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".txt":
		records, err = rd.readCSV(r)
	case ".xlsx", ".xlsm":
		records, err = readXLSX(r)
	default:
		return nil, errors.NewValidationError(
			"unsupported file type",
			fmt.Sprintf("%q: expected .csv or .xlsx", filepath.Base(filename)),
		)
	}
	if err != nil {
		return nil, err
	}

	return toRows(records)
}

func (rd *Reader) readCSV(r io.Reader) ([]record, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	var src io.Reader = br
	if rd.decoder != nil {
		src = transform.NewReader(br, rd.decoder)
	}

	cr := csv.NewReader(src)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []record
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewValidationError("malformed CSV file", err.Error())
		}
		// encoding/csv skips empty lines; FieldPos still reports the
		// record's real starting line.
		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
	return records, nil
}

func readXLSX(r io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewValidationError("unreadable Excel file", err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewValidationError("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewValidationError("unreadable Excel sheet", err.Error())
	}

	// GetRows keeps empty rows in place, so the index is the sheet row.
	records := make([]record, len(rows))
	for i, cells := range rows {
		records[i] = record{line: i + 1, cells: cells}
	}
	return records, nil
}

func toRows(records []record) ([]Row, error) {
	headerIdx := -1
	for i, rec := range records {
		if !isBlank(rec.cells) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, errors.NewValidationError("file has no header row")
	}

	header := make([]string, len(records[headerIdx].cells))
	for i, h := range records[headerIdx].cells {
		header[i] = NormalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-headerIdx-1)
	for _, rec := range records[headerIdx+1:] {
		if isBlank(rec.cells) {
			continue
		}
		values := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(rec.cells) {
				values[name] = rec.cells[i]
			} else {
				values[name] = ""
			}
		}
		rows = append(rows, Row{Line: rec.line, Values: values})
	}
	return rows, nil
}

// NormalizeHeader lower-cases a header cell and joins its words with "_",
// so "Ticket Number" and "ticket-number" both read as ticket_number.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	h = strings.NewReplacer("-", " ", ".", " ", "/", " ").Replace(h)
	return strings.Join(strings.Fields(h), "_")
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
