// Package export renders a tabular report to PDF, Excel or CSV. Rendering is
// all-or-nothing: on error no bytes are returned.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/shopspring/decimal"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNoColumns     = errors.New("export table has no columns")
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatXLSX, FormatCSV:
		return f, nil
	case "excel", "xls":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Column maps a row key to a header. Width is a relative weight used by the
// PDF layout (default 1). Format overrides the default cell formatting.
type Column struct {
	Header string
	Key    string
	Align  Align
	Width  int
	Format func(v any) string
}

type Row map[string]any

type Table struct {
	Title   string
	Columns []Column
	Rows    []Row
}

// Cell returns the display text of row r in column c.
func (t Table) Cell(r Row, c Column) string {
	v := r[c.Key]
	if c.Format != nil {
		return c.Format(v)
	}
	return formatValue(v)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.StringFixed(2)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

type Artifact struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Render produces the artifact for t in format f. branding only affects PDF.
func Render(t Table, f Format, branding model.Branding, now time.Time) (*Artifact, error) {
	if len(t.Columns) == 0 {
		return nil, ErrNoColumns
	}

	var (
		content []byte
		err     error
	)
	switch f {
	case FormatPDF:
		content, err = PDF(t, branding, now)
	case FormatXLSX:
		content, err = XLSX(t)
	case FormatCSV:
		content, err = CSV(t)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}

	return &Artifact{
		FileName:    FileName(t.Title, string(f), now),
		ContentType: f.ContentType(),
		Content:     content,
	}, nil
}

// FileName derives "<slug>_<YYYYMMDD>_<HHMMSS>.<ext>" from a title.
func FileName(title, ext string, now time.Time) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" {
		slug = "report"
	}
	return fmt.Sprintf("%s_%s.%s", slug, now.Format("20060102_150405"), ext)
}
