package common

// maxRowOffset bounds page*perPage so offsets never overflow. Pages past it are
// simply empty.
const maxRowOffset = 1<<31 - 1

// NormalizePage clamps a 1-based page number and page size.
func NormalizePage(page, perPage, defaultSize, maxSize int) (int, int) {
	if perPage <= 0 {
		perPage = defaultSize
	}
	if maxSize > 0 && perPage > maxSize {
		perPage = maxSize
	}
	if perPage <= 0 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	if last := maxRowOffset / perPage; page > last {
		page = last
	}
	return page, perPage
}

func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// Page is the envelope for paginated list responses.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

func NewPage[T any](items []T, page, perPage int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasMore: int64(page)*int64(perPage) < total,
	}
}
