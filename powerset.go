package sfa

import (
	"iter"

	"github.com/geange/sfa/guard"
)

// Powerset lazily enumerates the subsets of trans whose guard conjunction is
// satisfiable, together with that conjunction. The empty subset comes last,
// paired with TRUE.
//
// Subsets are given as ascending positions into trans. The slice is reused
// between iterations and must be copied to be retained. Each yielded guard is
// a fresh reference owned by the consumer. Stopping the iteration early
// releases every reference the enumerator still holds.
//
// The search includes trans[i] before excluding it and abandons a branch as
// soon as the running conjunction becomes unsatisfiable, so subsets that can
// never fire together are never materialized.
func Powerset(m *guard.Manager, trans []*Transition) iter.Seq2[[]int, *guard.Guard] {
	return func(yield func([]int, *guard.Guard) bool) {
		chosen := make([]int, 0, len(trans))

		// walk borrows conj; it returns false once the consumer stops.
		var walk func(i int, conj *guard.Guard) bool
		walk = func(i int, conj *guard.Guard) bool {
			if i == len(trans) {
				return yield(chosen, conj.Id())
			}

			with := conj.And(trans[i].Guard)
			if !with.IsZero() {
				chosen = append(chosen, i)
				more := walk(i+1, with)
				chosen = chosen[:len(chosen)-1]
				if !more {
					with.Free()
					return false
				}
			}
			with.Free()

			return walk(i+1, conj)
		}

		all := m.True()
		defer all.Free()
		walk(0, all)
	}
}
