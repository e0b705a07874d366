package browse

// DefaultPageSize is the number of episodes shown per page unless configured otherwise.
const DefaultPageSize = 9

// TotalPages returns ceil(count/pageSize), or 0 when there is nothing to show.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of items and the total page count.
//
// It never clamps: a page outside [1, totalPages] yields an empty slice.
// The returned slice shares its backing array with items and must not be appended to.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	total := TotalPages(len(items), pageSize)
	if page < 1 || page > total {
		return []T{}, total
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end:end], total
}
