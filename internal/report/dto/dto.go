package dto

const (
	ReportStock    = "stock"
	ReportInbound  = "inbound"
	ReportOutbound = "outbound"
	ReportRegion   = "region"
	ReportMonthly  = "monthly"
)

// RegionOther collects transactions whose address names no recognizable region.
const RegionOther = "Other"

type RegionBucket struct {
	Region        string
	Transactions  int
	TotalQuantity int
}

type MonthlyRow struct {
	ProductID string
	Code      string
	Name      string
	Unit      string
	Months    [12]int
	Total     int
}

type MonthlyMatrix struct {
	Year int
	Rows []MonthlyRow
}

// ExportInput selects a report and output format. Year applies to the region,
// monthly, inbound and outbound reports; 0 means all years except for monthly,
// where it defaults to the current year.
type ExportInput struct {
	Report string
	Format string
	Year   int
}
