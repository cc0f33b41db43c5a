package feature

import "math"

// maxPage keeps (page-1)*pageSize inside int range.
const maxPage = math.MaxInt32

// FirstRow returns the zero-based offset of the first row on page.
// Pages below 1 are treated as page 1.
func FirstRow(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	return (page - 1) * pageSize
}

// LastPage returns ceil(totalRows/pageSize), never less than 1.
func LastPage(totalRows int64, pageSize int) int {
	if totalRows <= 0 || pageSize <= 0 {
		return 1
	}
	size := int64(pageSize)
	return int((totalRows + size - 1) / size)
}
