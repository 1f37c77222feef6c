package entity

// Projection lists the document fields a query returns. Fields not listed
// come back as zero values.
type Projection []string

func (p Projection) Includes(field string) bool {
	for _, f := range p {
		if f == field {
			return true
		}
	}
	return false
}

type SortKey struct {
	Field      string
	Descending bool
}

type FindOptions struct {
	Sort   SortKey
	Offset int
	Limit  int
}
