package sfa

import "go.uber.org/zap"

// Determinize returns a deterministic automaton with the language of a: at
// every state the outgoing guards are pairwise disjoint. a is left untouched.
//
// The construction works on a copy of a without dead states and returns that
// copy directly if it is already deterministic. Otherwise each state of the
// result stands for a set of states of the copy. For such a set S, every
// satisfiable combination C of the outgoing transitions of S yields the
// residual guard "all of C fire and no other transition of S fires"; the
// residual guards of S partition the valuations by the set of states S can
// move to, which preserves the language.
func (a *Automaton) Determinize() *Automaton {
	src := a.Copy()
	src.RemoveDeadStates()
	if src.IsDeterministic() {
		return src
	}
	defer src.Free()

	states := src.reachable()
	index := indexOf(states)

	det := a.newInstance(src.ini.CloneWithoutSucc())

	iniSet := NewStateSet()
	iniSet.Incr(index[src.ini])
	iniKey := iniSet.Freeze()
	subsets := NewHashMap[*FrozenIntSet, *State](WithCapacity(len(states)))
	subsets.Set(iniKey, det.ini)

	// depth-first over the discovered subsets
	workStack := []*FrozenIntSet{iniKey}
	for len(workStack) > 0 {
		current := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]
		detCurrent, _ := subsets.Get(current)

		members := make([]*State, current.Size())
		for i, p := range current.GetArray() {
			members[i] = states[p]
		}
		working, tautologies := gatherTransitions(members)

		for subset, conj := range Powerset(a.m, working) {
			if len(subset) == 0 && len(tautologies) == 0 {
				// taking no transition at all leads nowhere
				conj.Free()
				continue
			}

			for _, t := range complementOf(working, subset) {
				if conj.IsZero() {
					break
				}
				conj.AndWith(t.Guard.Not())
			}
			if conj.IsZero() {
				conj.Free()
				continue
			}

			targets := targetStates(working, subset, tautologies)
			set := NewStateSet()
			for _, s := range targets {
				set.Incr(index[s])
			}
			key := set.Freeze()

			detSucc, ok := subsets.Get(key)
			if !ok {
				detSucc = det.NewState(containsAccepting(targets))
				subsets.Set(key, detSucc)
				workStack = append(workStack, key)
			}
			detCurrent.AddTrans(conj, detSucc)
		}
		freeTransitions(working)
	}

	a.logger.Debug("determinized",
		zap.Int("states", len(states)),
		zap.Int("subsets", subsets.Size()))
	return det
}

// gatherTransitions collects the outgoing transitions of members for one
// step of the subset construction. Unsatisfiable guards are dropped and
// transitions to the same target are merged by disjunction. A target whose
// merged guard is TRUE is returned among the tautology targets instead, since
// every transition combination that can fire includes it. The returned
// transitions own their guards.
func gatherTransitions(members []*State) (working []*Transition, tautologies []*State) {
	merged := make(map[*State]*Transition)
	isTautology := make(map[*State]bool)
	var order []*State

	for _, s := range members {
		for _, t := range s.trans {
			if t.Guard.IsZero() || isTautology[t.Target] {
				continue
			}
			if mt, ok := merged[t.Target]; ok {
				mt.Guard.OrWith(t.Guard.Id())
				if mt.Guard.IsOne() {
					mt.Guard.Free()
					delete(merged, t.Target)
					isTautology[t.Target] = true
					tautologies = append(tautologies, t.Target)
				}
				continue
			}
			if t.Guard.IsOne() {
				isTautology[t.Target] = true
				tautologies = append(tautologies, t.Target)
				continue
			}
			merged[t.Target] = &Transition{Guard: t.Guard.Id(), Target: t.Target}
			order = append(order, t.Target)
		}
	}

	for _, target := range order {
		if mt, ok := merged[target]; ok {
			working = append(working, mt)
		}
	}
	return working, tautologies
}
