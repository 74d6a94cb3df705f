package sfa

import "github.com/bits-and-blooms/bitset"

// indexOf maps each state to its position in states.
func indexOf(states []*State) map[*State]int {
	index := make(map[*State]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	return index
}

// complementOf returns the transitions of all whose positions are not listed
// in subset.
func complementOf(all []*Transition, subset []int) []*Transition {
	in := bitset.New(uint(len(all)))
	for _, i := range subset {
		in.Set(uint(i))
	}
	rest := make([]*Transition, 0, len(all)-len(subset))
	for i, t := range all {
		if !in.Test(uint(i)) {
			rest = append(rest, t)
		}
	}
	return rest
}

// targetStates returns the distinct targets of the listed transitions
// followed by the distinct extra states not already present.
func targetStates(all []*Transition, subset []int, extra []*State) []*State {
	seen := make(map[*State]struct{}, len(subset)+len(extra))
	targets := make([]*State, 0, len(subset)+len(extra))
	add := func(s *State) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			targets = append(targets, s)
		}
	}
	for _, i := range subset {
		add(all[i].Target)
	}
	for _, s := range extra {
		add(s)
	}
	return targets
}

// containsAccepting returns true if one of the states is accepting.
func containsAccepting(states []*State) bool {
	for _, s := range states {
		if s.accepting {
			return true
		}
	}
	return false
}

// freeTransitions releases the guards held by trans.
func freeTransitions(trans []*Transition) {
	for _, t := range trans {
		t.Guard.Free()
	}
}
