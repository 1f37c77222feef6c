package usecase

import (
	"math"

	"messages/internal/entity"
)

// PageSize is the fixed number of items in every listing page.
const PageSize = 10

func ValidatePage(page int) error {
	if page < 1 {
		return NewInvalidPageError()
	}
	return nil
}

// maxWindowPage is the last page whose offset fits in an int.
const maxWindowPage = math.MaxInt/PageSize + 1

// Window returns the offset and limit of a 1-based page. Offsets that would
// overflow saturate at math.MaxInt, which is past the end of any store.
func Window(page int) (offset, limit int) {
	if page > maxWindowPage {
		return math.MaxInt, PageSize
	}
	return (page - 1) * PageSize, PageSize
}

// TotalPages is ceil(count / PageSize).
func TotalPages(count int64) int {
	if count <= 0 {
		return 0
	}
	return int((count + PageSize - 1) / PageSize)
}

func pageFindOptions(page int, sort entity.SortKey) entity.FindOptions {
	offset, limit := Window(page)
	return entity.FindOptions{
		Sort:   sort,
		Offset: offset,
		Limit:  limit,
	}
}
