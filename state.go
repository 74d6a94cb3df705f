package sfa

import (
	"iter"
	"slices"

	"github.com/geange/sfa/guard"
)

// Transition is an edge (Source, Guard, Target). Inside a state the
// transition owns its guard reference.
type Transition struct {
	Source *State
	Guard  *guard.Guard
	Target *State
}

// State is a node of a symbolic automaton: an acceptance flag and at most one
// guarded edge per distinct successor. States are compared by identity.
type State struct {
	kind      Kind
	accepting bool

	// outgoing edges in insertion order, and the position of each target
	trans  []*Transition
	target map[*State]int
}

// NewState returns a state of kind k without outgoing transitions.
func NewState(k Kind, accepting bool) *State {
	return &State{
		kind:      k,
		accepting: accepting,
		target:    make(map[*State]int),
	}
}

// Kind returns the kind that created s.
func (s *State) Kind() Kind {
	return s.kind
}

// Accepting returns true if s is an accepting state.
func (s *State) Accepting() bool {
	return s.accepting
}

// SetAccepting sets the acceptance flag.
func (s *State) SetAccepting(accepting bool) {
	s.accepting = accepting
}

// FlipAcceptance toggles the acceptance flag.
func (s *State) FlipAcceptance() {
	s.accepting = !s.accepting
}

// AddTrans adds an edge to target and takes ownership of g. An unsatisfiable
// guard is released and no edge is stored. If an edge to target already
// exists, its guard becomes the disjunction of both.
func (s *State) AddTrans(g *guard.Guard, target *State) {
	if g.IsZero() {
		g.Free()
		return
	}
	if i, ok := s.target[target]; ok {
		s.trans[i].Guard.OrWith(g)
		return
	}
	s.target[target] = len(s.trans)
	s.trans = append(s.trans, &Transition{Source: s, Guard: g, Target: target})
}

// RemoveTrans deletes the edge to target and returns its guard, which the
// caller must release. It returns nil if there is no such edge.
func (s *State) RemoveTrans(target *State) *guard.Guard {
	i, ok := s.target[target]
	if !ok {
		return nil
	}
	g := s.trans[i].Guard
	s.trans = slices.Delete(s.trans, i, i+1)
	delete(s.target, target)
	for j := i; j < len(s.trans); j++ {
		s.target[s.trans[j].Target] = j
	}
	return g
}

// Guard returns the guard of the edge to target without transferring
// ownership, or nil.
func (s *State) Guard(target *State) *guard.Guard {
	if i, ok := s.target[target]; ok {
		return s.trans[i].Guard
	}
	return nil
}

// NumTrans returns the number of outgoing edges.
func (s *State) NumTrans() int {
	return len(s.trans)
}

// Successors returns the targets of all outgoing edges, in insertion order.
func (s *State) Successors() []*State {
	succ := make([]*State, len(s.trans))
	for i, t := range s.trans {
		succ[i] = t.Target
	}
	return succ
}

// Transitions iterates over (target, guard) pairs. Guards are borrowed.
func (s *State) Transitions() iter.Seq2[*State, *guard.Guard] {
	return func(yield func(*State, *guard.Guard) bool) {
		for _, t := range s.trans {
			if !yield(t.Target, t.Guard) {
				return
			}
		}
	}
}

// CloneWithoutSucc returns a state of the same kind and acceptance with no
// outgoing edges.
func (s *State) CloneWithoutSucc() *State {
	return NewState(s.kind, s.accepting)
}

// freeTrans releases the guards of all outgoing edges and drops them.
func (s *State) freeTrans() {
	for _, t := range s.trans {
		t.Guard.Free()
	}
	s.trans = nil
	s.target = make(map[*State]int)
}
