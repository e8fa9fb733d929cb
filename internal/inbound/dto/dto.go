package dto

type InboundFilters struct {
	ProductID string
	Year      int // 0 means any
	Month     int // 0 means any
}

type ImportResult struct {
	Imported int
	Skipped  int
}
