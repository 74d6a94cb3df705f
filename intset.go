package sfa

// IntSet is a set of state positions that can key a HashMap.
type IntSet interface {
	Hashable

	// GetArray returns the members in ascending order.
	GetArray() []int

	Size() int
}
