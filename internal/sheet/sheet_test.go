package sheet

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

var inboundDefaults = Layout{FieldCode: 0, FieldQuantity: 1, FieldMonth: 2, FieldYear: 3}

func TestResolveHeaderByKeyword(t *testing.T) {
	rows := [][]string{
		{"No", "Nama Barang", "Kode Barang", "Jumlah", "Bulan", "Tahun"},
		{"1", "Kertas", "BRG-01", "20", "Maret", "2026"},
	}
	layout, data := Resolve(rows, inboundDefaults)

	if len(data) != 1 {
		t.Fatalf("expected header row to be skipped, got %d data rows", len(data))
	}
	checks := map[Field]string{
		FieldCode:     "BRG-01",
		FieldName:     "Kertas",
		FieldQuantity: "20",
		FieldMonth:    "Maret",
		FieldYear:     "2026",
	}
	for f, want := range checks {
		if got := layout.Get(data[0], f); got != want {
			t.Fatalf("%s = %q, want %q", f, got, want)
		}
	}
}

func TestResolvePriceBeatsUnit(t *testing.T) {
	layout, _ := Resolve([][]string{{"CODE", "Satuan", "Harga Satuan"}}, Layout{})
	if layout[FieldUnit] != 1 || layout[FieldPrice] != 2 {
		t.Fatalf("unexpected layout %v", layout)
	}
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	rows := [][]string{
		{"BRG-01", "5", "1", "2026"},
		{"BRG-02", "7", "2", "2026"},
	}
	layout, data := Resolve(rows, inboundDefaults)
	if len(data) != 2 {
		t.Fatalf("first row must be data when no header is found")
	}
	if got := layout.Get(data[1], FieldQuantity); got != "7" {
		t.Fatalf("quantity = %q", got)
	}
	if got := layout.Get([]string{"only-code"}, FieldYear); got != "" {
		t.Fatalf("short row should yield empty cell, got %q", got)
	}
}

func TestResolveHeaderlessWithSkuCodes(t *testing.T) {
	rows := [][]string{
		{"SKU-01", "4", "3", "2026"},
		{"SKU-02", "6", "3", "2026"},
	}
	layout, data := Resolve(rows, inboundDefaults)
	if len(data) != 2 {
		t.Fatalf("data rows = %d, want 2", len(data))
	}
	if got := layout.Get(data[0], FieldCode); got != "SKU-01" {
		t.Fatalf("code = %q", got)
	}
	if got := layout.Get(data[0], FieldQuantity); got != "4" {
		t.Fatalf("quantity = %q", got)
	}

	// A code cell alone with a keyword in it is still a value.
	rows = [][]string{{"KODE-7", "", "", ""}, {"KODE-8", "1", "1", "2026"}}
	if _, data = Resolve(rows, inboundDefaults); len(data) != 2 {
		t.Fatalf("data rows = %d, want 2", len(data))
	}
}

func TestParsers(t *testing.T) {
	qty := map[string]int{"12": 12, " 3 ": 3, "4.0": 4, "2.5": 0, "abc": 0, "": 0, "-1": -1}
	for in, want := range qty {
		if got := ParseQuantity(in); got != want {
			t.Fatalf("ParseQuantity(%q) = %d, want %d", in, got, want)
		}
	}

	months := map[string]int{"3": 3, "Maret": 3, "aug": 8, "Agustus": 8, "Desember": 12, "13": 0, "x": 0}
	for in, want := range months {
		if got := ParseMonth(in); got != want {
			t.Fatalf("ParseMonth(%q) = %d, want %d", in, got, want)
		}
	}

	if ParseYear("2026") != 2026 || ParseYear("26") != 0 {
		t.Fatalf("ParseYear mismatch")
	}

	p, err := ParsePrice("Rp 12500.50")
	if err != nil || p.String() != "12500.5" {
		t.Fatalf("ParsePrice = %s, %v", p, err)
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	rows, err := Read("data.csv", []byte("\xef\xbb\xbf\"Kode\",\"Jumlah\"\r\n\"BRG-01\",\"5\"\r\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rows[0][0] != "Kode" || rows[1][1] != "5" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	_ = f.SetCellValue("Sheet1", "A1", "Kode")
	_ = f.SetCellValue("Sheet1", "B1", "Jumlah")
	_ = f.SetCellValue("Sheet1", "A2", "BRG-01")
	_ = f.SetCellValue("Sheet1", "B2", 9)
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, err := Read("stock.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "BRG-01" || rows[1][1] != "9" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestReadUnsupported(t *testing.T) {
	if _, err := Read("stock.pdf", nil); err == nil {
		t.Fatalf("expected error for pdf upload")
	}
}
