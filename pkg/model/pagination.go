package model

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePagination applies defaults and bounds to paging parameters
func NormalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
