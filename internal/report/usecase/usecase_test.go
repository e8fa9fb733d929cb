package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/inventory/repository"
	inventoryuc "github.com/fekuna/omnipos-warehouse/internal/inventory/usecase"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/report"
	"github.com/fekuna/omnipos-warehouse/internal/report/dto"
	"github.com/fekuna/omnipos-warehouse/internal/store"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/shopspring/decimal"
)

func TestRegionOf(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"Jl. Merdeka No. 1, Kota Bandung, Jawa Barat", "Kota Bandung"},
		{"Desa Sukamaju, KAB. BOGOR", "Kabupaten Bogor"},
		{"kabupaten   bandung barat, 40552", "Kabupaten Bandung Barat"},
		{"Kab Sleman", "Kabupaten Sleman"},
		{"Gedung A, Kota Adm. Jakarta Selatan", "Kota Jakarta Selatan"},
		{"Jl. Sudirman 5, Jakarta", dto.RegionOther},
		{"", dto.RegionOther},
	}
	for _, tc := range cases {
		if got := RegionOf(tc.address); got != tc.want {
			t.Fatalf("RegionOf(%q) = %q, want %q", tc.address, got, tc.want)
		}
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func newTestUseCase() report.UseCase {
	st := store.NewWith(store.Snapshot{
		Products: []model.Product{
			{BaseModel: model.BaseModel{ID: "p1"}, Code: "B", Name: "Paper", Unit: "box", UnitPrice: decimal.NewFromInt(2)},
			{BaseModel: model.BaseModel{ID: "p2"}, Code: "A", Name: "Ink", Unit: "pcs"},
			{BaseModel: model.BaseModel{ID: "p3"}, Code: "C", Name: "Idle", Unit: "pcs"},
		},
		Inbound: []model.InboundEntry{
			{ID: "i1", ProductID: "p1", Quantity: 100, Date: day(2026, 1, 1), Month: 1, Year: 2026},
			{ID: "i2", ProductID: "p2", Quantity: 100, Date: day(2026, 1, 1), Month: 1, Year: 2026},
		},
		Outbound: []model.OutboundTransaction{
			{ID: "t1", Address: "Kota Bandung", Date: day(2026, 1, 15), Items: []model.OutboundItem{{ProductID: "p1", Quantity: 3}, {ProductID: "p2", Quantity: 1}}},
			{ID: "t2", Address: "kota bandung", Date: day(2026, 3, 2), Items: []model.OutboundItem{{ProductID: "p1", Quantity: 4}}},
			{ID: "t3", Address: "Kab. Garut", Date: day(2026, 3, 9), Items: []model.OutboundItem{{ProductID: "gone", Quantity: 5}}},
			{ID: "t4", Address: "Somewhere", Date: day(2025, 12, 30), Items: []model.OutboundItem{{ProductID: "p3", Quantity: 7}}},
		},
	})
	repo := repository.NewMemoryRepository(st)
	inv := inventoryuc.NewInventoryUseCase(repo, logger.NewNop())
	uc := NewReportUseCase(repo, inv, nil, logger.NewNop()).(*reportUseCase)
	uc.now = func() time.Time { return day(2026, 6, 1) }
	return uc
}

func TestRegionDistribution(t *testing.T) {
	uc := newTestUseCase()

	got, err := uc.RegionDistribution(context.Background(), 0)
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	want := []dto.RegionBucket{
		{Region: "Kota Bandung", Transactions: 2, TotalQuantity: 8},
		{Region: "Kabupaten Garut", Transactions: 1, TotalQuantity: 5},
		{Region: dto.RegionOther, Transactions: 1, TotalQuantity: 7},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	got, _ = uc.RegionDistribution(context.Background(), 2025)
	if len(got) != 1 || got[0].Region != dto.RegionOther {
		t.Fatalf("year filter: %+v", got)
	}
}

func TestMonthlyMatrix(t *testing.T) {
	uc := newTestUseCase()

	m, err := uc.MonthlyMatrix(context.Background(), 0)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if m.Year != 2026 {
		t.Fatalf("year defaulted to %d", m.Year)
	}
	// p3 shipped only in 2025, so it is absent. Dangling "gone" sorts last.
	if len(m.Rows) != 3 {
		t.Fatalf("got %d rows: %+v", len(m.Rows), m.Rows)
	}
	if m.Rows[0].Code != "A" || m.Rows[1].Code != "B" || m.Rows[2].ProductID != "gone" {
		t.Fatalf("unexpected order %+v", m.Rows)
	}
	paper := m.Rows[1]
	if paper.Months[0] != 3 || paper.Months[2] != 4 || paper.Total != 7 {
		t.Fatalf("paper row %+v", paper)
	}
	if m.Rows[2].Name != "Unknown product" || m.Rows[2].Months[2] != 5 {
		t.Fatalf("dangling row %+v", m.Rows[2])
	}
}

func TestExportMonthlyCSV(t *testing.T) {
	uc := newTestUseCase()

	a, err := uc.Export(context.Background(), &dto.ExportInput{Report: dto.ReportMonthly, Format: "csv", Year: 2026})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if a.FileName != "monthly_outbound_2026_20260601_100000.csv" {
		t.Fatalf("file name %q", a.FileName)
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(a.Content, []byte("\ufeff")))).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 4 || len(records[0]) != 15 || records[0][14] != "Total" {
		t.Fatalf("unexpected csv %v", records)
	}
	if records[2][1] != "Paper" || records[2][2] != "3" || records[2][4] != "4" || records[2][14] != "7" {
		t.Fatalf("paper row %v", records[2])
	}
}

func TestExportStockXLSXAndPDF(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	for _, format := range []string{"xlsx", "pdf"} {
		a, err := uc.Export(ctx, &dto.ExportInput{Report: dto.ReportStock, Format: format})
		if err != nil {
			t.Fatalf("export %s: %v", format, err)
		}
		if len(a.Content) == 0 {
			t.Fatalf("empty %s artifact", format)
		}
	}
}

func TestExportRejectsUnknown(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Export(ctx, &dto.ExportInput{Report: "sales", Format: "csv"}); !errors.Is(err, report.ErrUnknownReport) {
		t.Fatalf("expected ErrUnknownReport, got %v", err)
	}
	if _, err := uc.Export(ctx, &dto.ExportInput{Report: dto.ReportStock, Format: "doc"}); err == nil {
		t.Fatalf("expected format error")
	}
}
