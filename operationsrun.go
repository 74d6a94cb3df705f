package sfa

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/geange/sfa/guard"
)

// Run returns true if a accepts the word. Each letter is a valuation of the
// manager's variables; a letter moves along every transition whose guard it
// satisfies, so a need not be deterministic.
func Run(a *Automaton, word ...guard.Assignment) bool {
	states := a.reachable()
	if len(states) == 0 {
		return false
	}
	index := indexOf(states)

	current := bitset.New(uint(len(states)))
	current.Set(0)
	next := bitset.New(uint(len(states)))
	for _, letter := range word {
		for i, ok := current.NextSet(0); ok; i, ok = current.NextSet(i + 1) {
			for _, t := range states[i].trans {
				if a.m.Eval(t.Guard, letter) {
					next.Set(uint(index[t.Target]))
				}
			}
		}
		current, next = next, current
		next.ClearAll()
		if current.None() {
			return false
		}
	}

	for i, ok := current.NextSet(0); ok; i, ok = current.NextSet(i + 1) {
		if states[i].accepting {
			return true
		}
	}
	return false
}
