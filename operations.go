package sfa

import (
	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
)

// CompleteTransitionFunction makes the transition function of a total: every
// reachable state gets an edge to a fresh non-accepting sink state, guarded by
// the valuations none of its other edges cover. The sink has a TRUE
// self-loop. States whose guards already cover TRUE are left alone, and the
// sink is only added if some state needs it. An automaton without an initial
// state gets the sink as its initial state.
func (a *Automaton) CompleteTransitionFunction() {
	sink := a.NewState(false)
	sink.AddTrans(a.m.True(), sink)
	if a.ini == nil {
		a.ini = sink
		return
	}

	used := false
	for _, s := range a.reachable() {
		otherwise := a.m.True()
		for _, t := range s.trans {
			if otherwise.IsZero() {
				break
			}
			otherwise.AndWith(t.Guard.Not())
		}
		if otherwise.IsZero() {
			otherwise.Free()
			continue
		}
		s.AddTrans(otherwise, sink)
		used = true
	}
	if !used {
		sink.freeTrans()
	}
}

// Complement returns an automaton accepting exactly the words a rejects: a is
// determinized, completed, and the acceptance of every state is flipped.
// a is left untouched.
func (a *Automaton) Complement() *Automaton {
	c := a.Determinize()
	c.CompleteTransitionFunction()
	for _, s := range c.reachable() {
		s.FlipAcceptance()
	}
	c.final = nil
	return c
}

// RemoveDeadStates removes from a every state from which no accepting state
// can be reached, releasing the guards of the dropped transitions. If the
// language of a is empty, only the initial state remains, without edges.
func (a *Automaton) RemoveDeadStates() {
	states := a.reachable()
	if len(states) == 0 {
		return
	}
	index := indexOf(states)

	// reversed edges, guards are irrelevant here
	reversed := make([][]int, len(states))
	workList := make([]int, 0, len(states))
	live := bitset.New(uint(len(states)))
	for i, s := range states {
		if s.accepting {
			live.Set(uint(i))
			workList = append(workList, i)
		}
		for _, t := range s.trans {
			j := index[t.Target]
			reversed[j] = append(reversed[j], i)
		}
	}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, p := range reversed[s] {
			if !live.Test(uint(p)) {
				live.Set(uint(p))
				workList = append(workList, p)
			}
		}
	}

	removed := 0
	for i, s := range states {
		if !live.Test(uint(i)) {
			removed++
			s.freeTrans()
			continue
		}
		var dead []*State
		for _, t := range s.trans {
			if !live.Test(uint(index[t.Target])) {
				dead = append(dead, t.Target)
			}
		}
		for _, target := range dead {
			s.RemoveTrans(target).Free()
		}
	}

	if removed > 0 {
		a.logger.Debug("removed dead states",
			zap.Int("states", len(states)),
			zap.Int("dead", removed))
	}
}

// IsEmptyLanguage returns true if no accepting state is reachable.
func (a *Automaton) IsEmptyLanguage() bool {
	if a.ini == nil {
		return true
	}
	if a.ini.accepting {
		return false
	}

	seen := map[*State]struct{}{a.ini: {}}
	workList := []*State{a.ini}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, t := range s.trans {
			if t.Target.accepting {
				return false
			}
			if _, ok := seen[t.Target]; !ok {
				seen[t.Target] = struct{}{}
				workList = append(workList, t.Target)
			}
		}
	}
	return true
}

// IsSubsetOf returns true if every word accepted by a is accepted by other:
// the product of a with the complement of other must have the empty
// language. Both automata must share one guard manager.
func (a *Automaton) IsSubsetOf(other *Automaton) bool {
	notOther := other.Complement()
	defer notOther.Free()

	product := Product(a, notOther)
	defer product.Free()

	return product.IsEmptyLanguage()
}

// IsEquivalent returns true if a and other accept the same words.
func (a *Automaton) IsEquivalent(other *Automaton) bool {
	return a.IsSubsetOf(other) && other.IsSubsetOf(a)
}

type statePair struct {
	p, q *State
}

// Product returns the synchronous product of a and b: its states are the
// reachable pairs of states, a pair accepts iff both components accept, and
// a pair moves on the conjunction of its components' guards. The result has
// the kind of a and accepts the intersection of both languages.
func Product(a, b *Automaton) *Automaton {
	if a.ini == nil || b.ini == nil {
		return a.newInstance(a.NewState(false))
	}

	start := statePair{a.ini, b.ini}
	pairs := map[statePair]*State{
		start: a.NewState(a.ini.accepting && b.ini.accepting),
	}
	workList := []statePair{start}
	for len(workList) > 0 {
		cur := workList[0]
		workList = workList[1:]
		from := pairs[cur]

		for _, pt := range cur.p.trans {
			for _, qt := range cur.q.trans {
				g := pt.Guard.And(qt.Guard)
				if g.IsZero() {
					g.Free()
					continue
				}
				next := statePair{pt.Target, qt.Target}
				to, ok := pairs[next]
				if !ok {
					to = a.NewState(next.p.accepting && next.q.accepting)
					pairs[next] = to
					workList = append(workList, next)
				}
				from.AddTrans(g, to)
			}
		}
	}
	return a.newInstance(pairs[start])
}
