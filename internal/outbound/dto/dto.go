package dto

type OutboundFilters struct {
	SearchQuery string // matches recipient or address
	Year        int
	Page        int
	PageSize    int
}
