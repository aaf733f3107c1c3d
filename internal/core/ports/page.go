package ports

// Page is an offset window over a listing.
type Page struct {
	Limit  int
	Offset int
}

// PageResult is one page of T plus the total number of matches.
type PageResult[T any] struct {
	Data   []T
	Limit  int
	Offset int
	Count  int64
}

// Sort selects the ordering of a listing.
type Sort int

const (
	SortNewest Sort = iota
	SortOldest
	SortMostViewed
)
