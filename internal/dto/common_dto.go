package dto

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

type PageFilter struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize clamps the filter to sane defaults.
func (f *PageFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}

func NewPaginationMeta(filter PageFilter, total int64) PaginationMeta {
	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}
	return PaginationMeta{
		CurrentPage: filter.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       filter.Limit,
	}
}
