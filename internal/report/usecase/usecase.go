package usecase

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/export"
	"github.com/fekuna/omnipos-warehouse/internal/inventory"
	inventorydto "github.com/fekuna/omnipos-warehouse/internal/inventory/dto"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/report"
	"github.com/fekuna/omnipos-warehouse/internal/report/dto"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"go.uber.org/zap"
)

type reportUseCase struct {
	repo      inventory.Repository
	inventory inventory.UseCase
	settings  report.SettingsSource
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewReportUseCase(repo inventory.Repository, inv inventory.UseCase, settings report.SettingsSource, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{
		repo:      repo,
		inventory: inv,
		settings:  settings,
		logger:    log,
		now:       time.Now,
	}
}

// RegionDistribution groups outbound transactions by the region named in their
// address. Buckets are ordered by transaction count, then name.
func (uc *reportUseCase) RegionDistribution(ctx context.Context, year int) ([]dto.RegionBucket, error) {
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	byRegion := make(map[string]*dto.RegionBucket)
	for i := range snap.Outbound {
		t := &snap.Outbound[i]
		if year != 0 && t.Date.Year() != year {
			continue
		}
		region := RegionOf(t.Address)
		b, ok := byRegion[region]
		if !ok {
			b = &dto.RegionBucket{Region: region}
			byRegion[region] = b
		}
		b.Transactions++
		b.TotalQuantity += t.TotalQuantity()
	}

	out := make([]dto.RegionBucket, 0, len(byRegion))
	for _, b := range byRegion {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Transactions != out[j].Transactions {
			return out[i].Transactions > out[j].Transactions
		}
		return out[i].Region < out[j].Region
	})
	return out, nil
}

// MonthlyMatrix sums outbound quantity per product per calendar month of year.
// Products with nothing shipped that year are left out. Items whose product
// no longer exists are kept under a placeholder name.
func (uc *reportUseCase) MonthlyMatrix(ctx context.Context, year int) (*dto.MonthlyMatrix, error) {
	if year == 0 {
		year = uc.now().Year()
	}
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*dto.MonthlyRow)
	for _, t := range snap.Outbound {
		if t.Date.Year() != year {
			continue
		}
		month := int(t.Date.Month()) - 1
		for _, it := range t.Items {
			r, ok := rows[it.ProductID]
			if !ok {
				r = &dto.MonthlyRow{ProductID: it.ProductID}
				rows[it.ProductID] = r
			}
			r.Months[month] += it.Quantity
			r.Total += it.Quantity
		}
	}

	products := snap.ProductIndex()
	unknown := i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil)

	matrix := &dto.MonthlyMatrix{Year: year, Rows: make([]dto.MonthlyRow, 0, len(rows))}
	for id, r := range rows {
		if r.Total <= 0 {
			continue
		}
		if p, ok := products[id]; ok {
			r.Code, r.Name, r.Unit = p.Code, p.Name, p.Unit
		} else {
			r.Name = unknown
		}
		matrix.Rows = append(matrix.Rows, *r)
	}
	sort.Slice(matrix.Rows, func(i, j int) bool {
		a, b := matrix.Rows[i], matrix.Rows[j]
		if (a.Code == "") != (b.Code == "") {
			return a.Code != ""
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.ProductID < b.ProductID
	})
	return matrix, nil
}

func (uc *reportUseCase) Export(ctx context.Context, input *dto.ExportInput) (*export.Artifact, error) {
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	var table export.Table
	switch input.Report {
	case dto.ReportStock:
		table, err = uc.stockTable(ctx)
	case dto.ReportInbound:
		table, err = uc.inboundTable(ctx, input.Year)
	case dto.ReportOutbound:
		table, err = uc.outboundTable(ctx, input.Year)
	case dto.ReportRegion:
		table, err = uc.regionTable(ctx, input.Year)
	case dto.ReportMonthly:
		table, err = uc.monthlyTable(ctx, input.Year)
	default:
		return nil, report.ErrUnknownReport
	}
	if err != nil {
		return nil, err
	}

	branding := model.DefaultSettings().Branding
	if uc.settings != nil {
		branding = uc.settings.GetSettings(ctx).Branding
	}

	artifact, err := export.Render(table, format, branding, uc.now())
	if err != nil {
		uc.logger.Error("export failed", zap.String("report", input.Report), zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("report exported", zap.String("file", artifact.FileName), zap.Int("bytes", len(artifact.Content)))
	return artifact, nil
}

func (uc *reportUseCase) stockTable(ctx context.Context) (export.Table, error) {
	levels, total, err := uc.inventory.ListStock(ctx, &inventorydto.StockFilters{SortBy: inventorydto.SortCode})
	if err != nil {
		return export.Table{}, err
	}

	t := export.Table{
		Title: "Stock Report",
		Columns: []export.Column{
			{Header: "Code", Key: "code", Width: 2},
			{Header: "Name", Key: "name", Width: 4},
			{Header: "Unit", Key: "unit", Width: 1},
			{Header: "Stock", Key: "stock", Width: 1, Align: export.AlignRight},
			{Header: "Unit Price", Key: "price", Width: 2, Align: export.AlignRight},
			{Header: "Value", Key: "value", Width: 2, Align: export.AlignRight},
		},
	}
	for _, l := range levels {
		t.Rows = append(t.Rows, export.Row{
			"code":  l.Product.Code,
			"name":  l.Product.Name,
			"unit":  l.Product.Unit,
			"stock": l.Stock,
			"price": l.Product.UnitPrice,
			"value": l.Value,
		})
	}
	t.Rows = append(t.Rows, export.Row{"name": "Total", "value": total})
	return t, nil
}

func (uc *reportUseCase) inboundTable(ctx context.Context, year int) (export.Table, error) {
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return export.Table{}, err
	}
	products := snap.ProductIndex()
	unknown := i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil)

	t := export.Table{
		Title: titleWithYear("Inbound Report", year),
		Columns: []export.Column{
			{Header: "Date", Key: "date", Width: 2},
			{Header: "Period", Key: "period", Width: 2},
			{Header: "Code", Key: "code", Width: 2},
			{Header: "Name", Key: "name", Width: 4},
			{Header: "Quantity", Key: "quantity", Width: 2, Align: export.AlignRight},
		},
	}
	for _, e := range snap.Inbound {
		if year != 0 && e.Year != year {
			continue
		}
		code, name := "-", unknown
		if p, ok := products[e.ProductID]; ok {
			code, name = p.Code, p.Name
		}
		t.Rows = append(t.Rows, export.Row{
			"date":     e.Date,
			"period":   e.PeriodLabel(),
			"code":     code,
			"name":     name,
			"quantity": e.Quantity,
		})
	}
	return t, nil
}

func (uc *reportUseCase) outboundTable(ctx context.Context, year int) (export.Table, error) {
	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return export.Table{}, err
	}
	products := snap.ProductIndex()
	unknown := i18n.T(reqctx.GetLocale(ctx), "unknown_product", nil)

	t := export.Table{
		Title: titleWithYear("Outbound Report", year),
		Columns: []export.Column{
			{Header: "Date", Key: "date", Width: 2},
			{Header: "Recipient", Key: "recipient", Width: 3},
			{Header: "Address", Key: "address", Width: 4},
			{Header: "Item", Key: "item", Width: 3},
			{Header: "Quantity", Key: "quantity", Width: 2, Align: export.AlignRight},
		},
	}
	for _, tx := range snap.Outbound {
		if year != 0 && tx.Date.Year() != year {
			continue
		}
		for _, it := range tx.Items {
			name := unknown
			if p, ok := products[it.ProductID]; ok {
				name = p.Code + " " + p.Name
			}
			t.Rows = append(t.Rows, export.Row{
				"date":      tx.Date,
				"recipient": tx.Recipient,
				"address":   tx.Address,
				"item":      name,
				"quantity":  it.Quantity,
			})
		}
	}
	return t, nil
}

func (uc *reportUseCase) regionTable(ctx context.Context, year int) (export.Table, error) {
	buckets, err := uc.RegionDistribution(ctx, year)
	if err != nil {
		return export.Table{}, err
	}
	t := export.Table{
		Title: titleWithYear("Distribution by Region", year),
		Columns: []export.Column{
			{Header: "Region", Key: "region", Width: 6},
			{Header: "Transactions", Key: "transactions", Width: 3, Align: export.AlignRight},
			{Header: "Total Quantity", Key: "quantity", Width: 3, Align: export.AlignRight},
		},
	}
	for _, b := range buckets {
		t.Rows = append(t.Rows, export.Row{"region": b.Region, "transactions": b.Transactions, "quantity": b.TotalQuantity})
	}
	return t, nil
}

var monthHeaders = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func (uc *reportUseCase) monthlyTable(ctx context.Context, year int) (export.Table, error) {
	m, err := uc.MonthlyMatrix(ctx, year)
	if err != nil {
		return export.Table{}, err
	}

	t := export.Table{
		Title: titleWithYear("Monthly Outbound", m.Year),
		Columns: []export.Column{
			{Header: "Code", Key: "code", Width: 2},
			{Header: "Name", Key: "name", Width: 4},
		},
	}
	for i, h := range monthHeaders {
		t.Columns = append(t.Columns, export.Column{Header: h, Key: monthKey(i), Align: export.AlignRight})
	}
	t.Columns = append(t.Columns, export.Column{Header: "Total", Key: "total", Width: 2, Align: export.AlignRight})

	for _, r := range m.Rows {
		row := export.Row{"code": r.Code, "name": r.Name, "total": r.Total}
		for i, q := range r.Months {
			row[monthKey(i)] = q
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func monthKey(i int) string {
	return "m" + strconv.Itoa(i+1)
}

func titleWithYear(title string, year int) string {
	if year == 0 {
		return title
	}
	return title + " " + strconv.Itoa(year)
}
