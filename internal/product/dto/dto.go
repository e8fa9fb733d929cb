package dto

type ProductFilters struct {
	SearchQuery string // matches code or name
	SortBy      string // code, name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

type ImportResult struct {
	Imported int
	Skipped  int
}
