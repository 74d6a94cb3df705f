package sfa

import (
	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
)

// Minimize returns a minimal deterministic automaton with the language of a,
// computed by Myhill-Nerode partition refinement. a is left untouched.
//
// An automaton with the empty language minimizes to a single non-accepting
// state with a TRUE self-loop. Otherwise the determinized automaton is made
// complete, pairs of states that can be told apart are removed from the
// candidate equivalence until a fixpoint, the remaining pairs are merged with
// a union-find, and dead states of the quotient are removed.
func (a *Automaton) Minimize() *Automaton {
	if a.IsEmptyLanguage() {
		ini := a.NewState(false)
		ini.AddTrans(a.m.True(), ini)
		return a.newInstance(ini)
	}

	det := a.Determinize()
	defer det.Free()
	det.CompleteTransitionFunction()

	states := det.reachable()
	index := indexOf(states)
	n := len(states)

	// eq holds the candidate pairs (i, j), i > j, at bit i*n+j
	eq := bitset.New(uint(n * n))
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if states[i].accepting == states[j].accepting {
				eq.Set(uint(i*n + j))
			}
		}
	}
	inEq := func(p, q int) bool {
		if p < q {
			p, q = q, p
		}
		return eq.Test(uint(p*n + q))
	}

	// distinguishable reports whether p and q move to a pair of states that
	// is known to differ on a letter both can read.
	distinguishable := func(p, q *State) bool {
		for _, pt := range p.trans {
			for _, qt := range q.trans {
				if pt.Target == qt.Target || inEq(index[pt.Target], index[qt.Target]) {
					continue
				}
				both := pt.Guard.And(qt.Guard)
				shared := !both.IsZero()
				both.Free()
				if shared {
					return true
				}
			}
		}
		return false
	}

	rounds := 0
	for {
		rounds++
		var remove []uint
		for i, ok := eq.NextSet(0); ok; i, ok = eq.NextSet(i + 1) {
			if distinguishable(states[int(i)/n], states[int(i)%n]) {
				remove = append(remove, i)
			}
		}
		if len(remove) == 0 {
			break
		}
		for _, i := range remove {
			eq.Clear(i)
		}
	}

	classes := newUnionFind(n)
	for i, ok := eq.NextSet(0); ok; i, ok = eq.NextSet(i + 1) {
		classes.union(int(i)/n, int(i)%n)
	}

	reps := make(map[int]*State, classes.components())
	rep := func(s *State) *State {
		root := classes.find(index[s])
		r, ok := reps[root]
		if !ok {
			r = states[root].CloneWithoutSucc()
			reps[root] = r
		}
		return r
	}
	for _, s := range states {
		from := rep(s)
		for _, t := range s.trans {
			from.AddTrans(t.Guard.Id(), rep(t.Target))
		}
	}

	minimal := a.newInstance(rep(det.ini))
	minimal.RemoveDeadStates()

	a.logger.Debug("minimized",
		zap.Int("states", n),
		zap.Int("classes", classes.components()),
		zap.Int("rounds", rounds))
	return minimal
}
