// Package sheet reads row-oriented tables from xlsx or csv uploads and locates
// columns either from a keyword header row or from fixed default positions.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type Field string

const (
	FieldCode     Field = "code"
	FieldName     Field = "name"
	FieldUnit     Field = "unit"
	FieldPrice    Field = "price"
	FieldQuantity Field = "quantity"
	FieldMonth    Field = "month"
	FieldYear     Field = "year"
)

// Matching order matters: "harga satuan" is a price column, not a unit column.
var fieldOrder = []Field{FieldCode, FieldQuantity, FieldPrice, FieldMonth, FieldYear, FieldName, FieldUnit}

var keywords = map[Field][]string{
	FieldCode:     {"code", "kode", "sku"},
	FieldName:     {"name", "nama"},
	FieldUnit:     {"unit", "satuan"},
	FieldPrice:    {"price", "harga"},
	FieldQuantity: {"quantity", "qty", "jumlah"},
	FieldMonth:    {"month", "bulan"},
	FieldYear:     {"year", "tahun"},
}

var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Layout maps a field to its zero-based column. Absent fields are not in the map.
type Layout map[Field]int

// Get returns the trimmed cell for field, or "" when the field is absent or the row is short.
func (l Layout) Get(row []string, f Field) string {
	idx, ok := l[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (l Layout) Has(f Field) bool {
	_, ok := l[f]
	return ok
}

// Resolve inspects the first row. When it looks like a header (it names the
// code column, or any two known columns, and holds no numeric cell) the layout
// is taken from it and the remaining rows are returned as data. Otherwise
// defaults apply and every row is data.
func Resolve(rows [][]string, defaults Layout) (Layout, [][]string) {
	if len(rows) == 0 {
		return defaults, nil
	}
	if hasNumericCell(rows[0]) {
		return defaults, rows
	}

	detected := detectHeader(rows[0])
	if _, hasCode := detected[FieldCode]; hasCode || len(detected) >= 2 {
		return detected, rows[1:]
	}
	return defaults, rows
}

func detectHeader(row []string) Layout {
	layout := Layout{}
	for col, cell := range row {
		// Header labels carry no digits; "SKU-01" is a value.
		if strings.IndexFunc(cell, unicode.IsDigit) >= 0 {
			continue
		}
		tokens := tokenize(cell)
		if len(tokens) == 0 {
			continue
		}
		for _, f := range fieldOrder {
			if _, taken := layout[f]; taken {
				continue
			}
			if matchesAny(tokens, keywords[f]) {
				layout[f] = col
				break
			}
		}
	}
	return layout
}

func hasNumericCell(row []string) bool {
	for _, cell := range row {
		c := strings.TrimSpace(cell)
		if c == "" {
			continue
		}
		if _, err := decimal.NewFromString(c); err == nil {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func matchesAny(tokens, words []string) bool {
	for _, t := range tokens {
		for _, w := range words {
			if t == w {
				return true
			}
		}
	}
	return false
}

// Read parses an uploaded file, picking the decoder from the file extension.
func Read(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(bytes.NewReader(data))
	case ".csv", ".txt":
		return ReadCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadXLSX returns the rows of the first worksheet.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet: %w", err)
	}
	return rows, nil
}

func ReadCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// ParseQuantity parses a whole number. Anything unparsable or fractional yields 0.
func ParseQuantity(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return 0
}

// ParsePrice accepts plain decimals, optionally prefixed with "Rp".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

var monthsByName = map[string]int{
	"january": 1, "jan": 1, "januari": 1,
	"february": 2, "feb": 2, "februari": 2, "pebruari": 2,
	"march": 3, "mar": 3, "maret": 3,
	"april": 4, "apr": 4,
	"may": 5, "mei": 5,
	"june": 6, "jun": 6, "juni": 6,
	"july": 7, "jul": 7, "juli": 7,
	"august": 8, "aug": 8, "agustus": 8, "agu": 8, "agt": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10, "oktober": 10, "okt": 10,
	"november": 11, "nov": 11, "nopember": 11,
	"december": 12, "dec": 12, "desember": 12, "des": 12,
}

// ParseMonth accepts 1-12 or an English/Indonesian month name. 0 means unknown.
func ParseMonth(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if n := ParseQuantity(s); n >= 1 && n <= 12 {
		return n
	}
	return monthsByName[s]
}

// ParseYear accepts a four digit year. 0 means unknown.
func ParseYear(s string) int {
	n := ParseQuantity(s)
	if n < 1900 || n > 9999 {
		return 0
	}
	return n
}
