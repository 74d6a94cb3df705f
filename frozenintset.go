package sfa

import "slices"

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet is an immutable, hashed set of state positions. During
// determinization it identifies the subset of source states behind one
// deterministic state.
type FrozenIntSet struct {
	values   []int
	hashCode uint64
}

// NewFrozenIntSet returns a set over values, which must be sorted and free of
// duplicates, with a precomputed hash code.
func NewFrozenIntSet(values []int, hashCode uint64) *FrozenIntSet {
	return &FrozenIntSet{values: values, hashCode: hashCode}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

func (f *FrozenIntSet) Equals(other Hashable) bool {
	if f == nil {
		switch o := other.(type) {
		case *FrozenIntSet:
			return o == nil
		case *StateSet:
			return o == nil
		default:
			return false
		}
	}

	set, ok := other.(IntSet)
	if !ok || set == nil {
		return false
	}
	if set.Hash() != f.Hash() {
		return false
	}
	return slices.Equal(f.values, set.GetArray())
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}
