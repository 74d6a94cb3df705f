package sfa

import "github.com/geange/sfa/guard"

// Automata builds common automata over one guard manager.
type Automata struct {
	m    *guard.Manager
	opts []Option
}

// NewAutomata returns a factory whose automata are created with opts.
func NewAutomata(m *guard.Manager, opts ...Option) *Automata {
	return &Automata{m: m, opts: opts}
}

// MakeEmpty returns a new (deterministic) automaton with the empty language.
func (f *Automata) MakeEmpty() *Automaton {
	a := New(f.m, f.opts...)
	_ = a.SetInitial(a.NewState(false))
	return a
}

// MakeEmptyString returns a new (deterministic) automaton that accepts only
// the empty word.
func (f *Automata) MakeEmptyString() *Automaton {
	a := New(f.m, f.opts...)
	_ = a.SetInitial(a.NewState(true))
	return a
}

// MakeAnyString returns a new (deterministic) automaton that accepts all
// words.
func (f *Automata) MakeAnyString() *Automaton {
	a := New(f.m, f.opts...)
	s := a.NewState(true)
	s.AddTrans(f.m.True(), s)
	_ = a.SetInitial(s)
	return a
}

// MakeGuard returns an automaton accepting the words whose first letter
// satisfies g, followed by anything. It takes ownership of g.
func (f *Automata) MakeGuard(g *guard.Guard) *Automaton {
	a := New(f.m, f.opts...)
	ini := a.NewState(false)
	fin := a.NewState(true)
	ini.AddTrans(g, fin)
	fin.AddTrans(f.m.True(), fin)
	_ = a.SetInitial(ini)
	return a
}
