package memstore

import "messages/internal/entity"

// less orders by sort value, then by id so equal timestamps page deterministically.
func less(a int64, aId string, b int64, bId string, descending bool) bool {
	if a != b {
		if descending {
			return a > b
		}
		return a < b
	}
	return aId < bId
}

func window(n int, opts entity.FindOptions) (int, int) {
	lo := opts.Offset
	if lo < 0 {
		lo = 0
	}
	if lo > n {
		lo = n
	}
	hi := n
	if opts.Limit > 0 && opts.Limit < n-lo {
		hi = lo + opts.Limit
	}
	return lo, hi
}
