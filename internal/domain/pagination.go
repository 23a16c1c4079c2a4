package domain

// PaginationParams selects one page of a run's dispatch records, in send order.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset is the number of records skipped before the page starts.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [start, end) slice of a run holding total records.
// A non-positive PageSize selects everything from the offset on.
func (p PaginationParams) Bounds(total int) (start, end int) {
	start = min(p.Offset(), total)
	end = total
	if p.PageSize > 0 {
		end = min(start+p.PageSize, total)
	}
	return start, end
}
