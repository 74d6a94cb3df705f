package guard

import (
	"strings"

	"github.com/dalzilio/rudd"
)

// Guard is one reference to a canonical predicate. The predicate itself is
// immutable; AndWith and OrWith rebind the reference to a new predicate.
type Guard struct {
	m        *Manager
	node     rudd.Node
	released bool
}

// Manager returns the manager g belongs to.
func (g *Guard) Manager() *Manager {
	return g.m
}

// Id returns a new reference to the same predicate.
func (g *Guard) Id() *Guard {
	g.m.check(g)
	return g.m.wrap(g.node)
}

// Free releases the reference. Releasing twice panics.
func (g *Guard) Free() {
	g.m.check(g)
	g.released = true
	g.node = nil
	g.m.live--
}

// IsZero reports whether g is unsatisfiable.
func (g *Guard) IsZero() bool {
	g.m.check(g)
	return g.m.bdd.Equal(g.node, g.m.bdd.False())
}

// IsOne reports whether g is a tautology.
func (g *Guard) IsOne() bool {
	g.m.check(g)
	return g.m.bdd.Equal(g.node, g.m.bdd.True())
}

// Equal reports whether g and o denote the same predicate.
func (g *Guard) Equal(o *Guard) bool {
	g.m.check(g)
	g.m.check(o)
	return g.m.bdd.Equal(g.node, o.node)
}

// And returns a fresh reference to g AND o.
func (g *Guard) And(o *Guard) *Guard {
	g.m.check(g)
	g.m.check(o)
	return g.m.wrap(g.m.bdd.And(g.node, o.node))
}

// Or returns a fresh reference to g OR o.
func (g *Guard) Or(o *Guard) *Guard {
	g.m.check(g)
	g.m.check(o)
	return g.m.wrap(g.m.bdd.Or(g.node, o.node))
}

// Not returns a fresh reference to NOT g.
func (g *Guard) Not() *Guard {
	g.m.check(g)
	return g.m.wrap(g.m.bdd.Not(g.node))
}

// Imp returns a fresh reference to g -> o.
func (g *Guard) Imp(o *Guard) *Guard {
	g.m.check(g)
	g.m.check(o)
	return g.m.wrap(g.m.bdd.Apply(g.node, o.node, rudd.OPimp))
}

// Equiv returns a fresh reference to g <-> o.
func (g *Guard) Equiv(o *Guard) *Guard {
	g.m.check(g)
	g.m.check(o)
	return g.m.wrap(g.m.bdd.Apply(g.node, o.node, rudd.OPbiimp))
}

// AndWith rebinds g to g AND o and releases o.
func (g *Guard) AndWith(o *Guard) *Guard {
	g.m.check(g)
	g.m.check(o)
	g.node = g.m.result(g.m.bdd.And(g.node, o.node))
	o.Free()
	return g
}

// OrWith rebinds g to g OR o and releases o.
func (g *Guard) OrWith(o *Guard) *Guard {
	g.m.check(g)
	g.m.check(o)
	g.node = g.m.result(g.m.bdd.Or(g.node, o.node))
	o.Free()
	return g
}

// String returns g in disjunctive normal form over the variable names.
func (g *Guard) String() string {
	if g.released {
		return "<released>"
	}
	switch {
	case g.IsOne():
		return "TRUE"
	case g.IsZero():
		return "FALSE"
	}

	var terms []string
	err := g.m.bdd.Allsat(func(profile []int) error {
		var lits []string
		for i, v := range profile {
			if i >= len(g.m.names) {
				break
			}
			switch v {
			case 0:
				lits = append(lits, "!"+g.m.names[i])
			case 1:
				lits = append(lits, g.m.names[i])
			}
		}
		terms = append(terms, strings.Join(lits, " & "))
		return nil
	}, g.node)
	if err != nil {
		return "<unprintable: " + err.Error() + ">"
	}
	if len(terms) == 1 {
		return terms[0]
	}
	for i, t := range terms {
		if strings.Contains(t, " & ") {
			terms[i] = "(" + t + ")"
		}
	}
	return strings.Join(terms, " | ")
}
