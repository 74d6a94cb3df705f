package sfa

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/geange/sfa/guard"
)

// Automaton is a symbolic finite automaton: one initial state and everything
// reachable from it. There is no separate set of states; a state that cannot
// be reached from the initial state is not part of the automaton.
//
// Transitions are labeled by guards of a shared guard.Manager. The automaton
// owns one guard reference per reachable transition and releases them in
// Free. Algorithms that return a new automaton never alias the guards of
// their input, so input and result must each be freed.
type Automaton struct {
	m      *guard.Manager
	kind   Kind
	ini    *State
	final  *State
	logger *zap.Logger
}

type options struct {
	kind   Kind
	ini    *State
	logger *zap.Logger
}

type Option func(*options)

// WithKind sets the kind of states the automaton accepts. Default is Simple.
func WithKind(k Kind) Option {
	return func(o *options) {
		o.kind = k
	}
}

// WithInitial seeds the automaton with an initial state.
func WithInitial(s *State) Option {
	return func(o *options) {
		o.ini = s
	}
}

// WithLogger sets the logger algorithms report to at Debug level. Default is
// a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns an automaton over the guards of m. If WithInitial names a
// state of another kind, New panics; use SetInitial to get an error instead.
func New(m *guard.Manager, opts ...Option) *Automaton {
	o := &options{
		kind:   Simple,
		logger: zap.NewNop(),
	}
	for _, fn := range opts {
		fn(o)
	}

	a := &Automaton{
		m:      m,
		kind:   o.kind,
		logger: o.logger,
	}
	if err := a.SetInitial(o.ini); err != nil {
		panic(err)
	}
	return a
}

// newInstance returns an empty automaton sharing the manager, kind and logger
// of a, seeded with ini. ini must have been created for a's kind.
func (a *Automaton) newInstance(ini *State) *Automaton {
	return &Automaton{
		m:      a.m,
		kind:   a.kind,
		ini:    ini,
		logger: a.logger,
	}
}

// Manager returns the guard manager of a.
func (a *Automaton) Manager() *guard.Manager {
	return a.m
}

// Kind returns the kind of states a accepts.
func (a *Automaton) Kind() Kind {
	return a.kind
}

// NewState creates a state of a's kind. The state is not part of a until it
// is reachable from the initial state.
func (a *Automaton) NewState(accepting bool) *State {
	return NewState(a.kind, accepting)
}

// Initial returns the initial state, or nil.
func (a *Automaton) Initial() *State {
	return a.ini
}

// SetInitial sets the initial state.
func (a *Automaton) SetInitial(s *State) error {
	if s != nil && s.kind != a.kind {
		return fmt.Errorf("%w: got %s, want %s", ErrStateKind, s.kind.Name(), a.kind.Name())
	}
	a.ini = s
	return nil
}

// HasOneFinalState reports whether a keeps one distinguished final state.
func (a *Automaton) HasOneFinalState() bool {
	return a.kind.OneFinalState()
}

// FinalState returns the unique final state. Automata of kinds without a
// unique final state return ErrNoUniqueFinalState. For the others, the state
// set by SetFinalState is returned, or else the only reachable accepting
// state.
func (a *Automaton) FinalState() (*State, error) {
	if !a.kind.OneFinalState() {
		return nil, ErrNoUniqueFinalState
	}
	if a.final != nil {
		return a.final, nil
	}
	finals := a.FinalStates()
	if len(finals) != 1 {
		return nil, fmt.Errorf("%w: %d accepting states", ErrNoUniqueFinalState, len(finals))
	}
	return finals[0], nil
}

// SetFinalState marks s as the unique final state and makes it accepting.
func (a *Automaton) SetFinalState(s *State) error {
	if !a.kind.OneFinalState() {
		return ErrNoUniqueFinalState
	}
	if s != nil && s.kind != a.kind {
		return fmt.Errorf("%w: got %s, want %s", ErrStateKind, s.kind.Name(), a.kind.Name())
	}
	if s != nil {
		s.accepting = true
	}
	a.final = s
	return nil
}

// reachable returns the states reachable from the initial state, in
// breadth-first order starting with the initial state.
func (a *Automaton) reachable() []*State {
	if a.ini == nil {
		return nil
	}

	seen := map[*State]struct{}{a.ini: {}}
	workList := []*State{a.ini}
	for i := 0; i < len(workList); i++ {
		for _, t := range workList[i].trans {
			if _, ok := seen[t.Target]; !ok {
				seen[t.Target] = struct{}{}
				workList = append(workList, t.Target)
			}
		}
	}
	return workList
}

// ReachableStates returns all states of a, initial state first.
func (a *Automaton) ReachableStates() []*State {
	return a.reachable()
}

// NumStates returns the number of reachable states.
func (a *Automaton) NumStates() int {
	return len(a.reachable())
}

// NumTransitions returns the number of transitions between reachable states.
func (a *Automaton) NumTransitions() int {
	n := 0
	for _, s := range a.reachable() {
		n += len(s.trans)
	}
	return n
}

// FinalStates returns the reachable accepting states.
func (a *Automaton) FinalStates() []*State {
	var finals []*State
	for _, s := range a.reachable() {
		if s.accepting {
			finals = append(finals, s)
		}
	}
	return finals
}

// IsDeterministic returns true if, at every reachable state, the guards of
// the outgoing transitions are pairwise disjoint.
func (a *Automaton) IsDeterministic() bool {
	for _, s := range a.reachable() {
		if hasOverlap(a.m, s.trans) {
			return false
		}
	}
	return true
}

// hasOverlap checks whether two guards of trans intersect, accumulating the
// guards seen so far in one disjunction.
func hasOverlap(m *guard.Manager, trans []*Transition) bool {
	seen := m.False()
	defer seen.Free()

	for _, t := range trans {
		inter := t.Guard.And(seen)
		overlap := !inter.IsZero()
		inter.Free()
		if overlap {
			return true
		}
		seen.OrWith(t.Guard.Id())
	}
	return false
}

// Copy returns a deep copy of a. Every guard of the copy is a new reference.
func (a *Automaton) Copy() *Automaton {
	c := a.newInstance(nil)
	if a.ini == nil {
		return c
	}

	states := a.reachable()
	clones := make(map[*State]*State, len(states))
	for _, s := range states {
		clones[s] = s.CloneWithoutSucc()
	}
	for _, s := range states {
		cs := clones[s]
		for _, t := range s.trans {
			cs.AddTrans(t.Guard.Id(), clones[t.Target])
		}
	}
	c.ini = clones[a.ini]
	if a.final != nil {
		c.final = clones[a.final]
	}
	return c
}

// Free releases the guards of all reachable transitions. The automaton must
// not be used afterwards; a second call does nothing.
func (a *Automaton) Free() {
	for _, s := range a.reachable() {
		s.freeTrans()
	}
	a.ini = nil
	a.final = nil
}

// String describes the states and transitions of a. States are named by
// their breadth-first position.
func (a *Automaton) String() string {
	states := a.reachable()
	index := indexOf(states)

	var accepting []string
	var trans strings.Builder
	numTransitions := 0
	for i, s := range states {
		if s.accepting {
			accepting = append(accepting, fmt.Sprintf("s%d", i))
		}
		for _, t := range s.trans {
			fmt.Fprintf(&trans, "s%d -> s%d : %s\n", i, index[t.Target], t.Guard)
			numTransitions++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Kind: %s\n", a.kind.Name())
	fmt.Fprintf(&b, "Number of states: %d\n", len(states))
	fmt.Fprintf(&b, "Accepting states: [%s]\n", strings.Join(accepting, ", "))
	fmt.Fprintf(&b, "Number of transitions: %d\n", numTransitions)
	b.WriteString(trans.String())
	return b.String()
}
