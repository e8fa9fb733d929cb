package export

import (
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	headerRowHeight = 7.0
	bodyRowHeight   = 6.0
	// Wider tables switch to landscape.
	landscapeGrid = 12
)

// PDF renders t with a letterhead built from the branding settings.
func PDF(t Table, b model.Branding, now time.Time) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, ErrNoColumns
	}

	grid := 0
	for _, c := range t.Columns {
		grid += columnWidth(c)
	}

	builder := config.NewBuilder().
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		WithMaxGridSize(grid)
	if grid > landscapeGrid {
		builder = builder.WithOrientation(orientation.Horizontal)
	}

	m := maroto.New(builder.Build())
	if err := m.RegisterHeader(letterhead(b)...); err != nil {
		return nil, err
	}

	m.AddRows(
		text.NewRow(10, t.Title, props.Text{Top: 3, Size: 13, Style: fontstyle.Bold, Align: align.Center}),
		text.NewRow(6, "Generated "+now.Format("2 January 2006 15:04"), props.Text{Size: 8, Align: align.Center}),
		row.New(4),
	)

	header := make([]core.Col, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, text.NewCol(columnWidth(c), c.Header, props.Text{
			Top:   1.5,
			Size:  9,
			Style: fontstyle.Bold,
			Align: pdfAlign(c.Align),
		}))
	}
	m.AddRow(headerRowHeight, header...)

	for _, r := range t.Rows {
		cols := make([]core.Col, 0, len(t.Columns))
		for _, c := range t.Columns {
			cols = append(cols, text.NewCol(columnWidth(c), t.Cell(r, c), props.Text{
				Top:   1,
				Size:  8,
				Align: pdfAlign(c.Align),
			}))
		}
		m.AddRow(bodyRowHeight, cols...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func letterhead(b model.Branding) []core.Row {
	name := b.CompanyName
	if name == "" {
		name = "Warehouse"
	}
	rows := []core.Row{
		text.NewRow(8, name, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Left}),
	}
	if b.Address != "" {
		rows = append(rows, text.NewRow(5, b.Address, props.Text{Size: 9, Align: align.Left}))
	}
	contact := strings.TrimSpace(strings.Join(nonEmpty(b.Phone, b.Email), " | "))
	if contact != "" {
		rows = append(rows, text.NewRow(5, contact, props.Text{Size: 9, Align: align.Left}))
	}
	return rows
}

func columnWidth(c Column) int {
	if c.Width > 0 {
		return c.Width
	}
	return 1
}

func pdfAlign(a Align) align.Type {
	switch a {
	case AlignRight:
		return align.Right
	case AlignCenter:
		return align.Center
	default:
		return align.Left
	}
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
