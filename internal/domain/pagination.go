package domain

// PaginationParams holds offset-based pagination for list queries. Meetup
// listings use a fixed PageSize set by the service layer.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page. Pages are 1-based;
// anything below 1 maps to the first page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
