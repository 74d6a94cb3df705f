package sfa

// Kind identifies a family of automata sharing the algorithms of this package.
// States carry the kind that created them and an automaton only accepts
// states of its own kind.
type Kind interface {
	// Name is used in error messages and String output.
	Name() string

	// OneFinalState reports whether automata of this kind keep one
	// distinguished accepting state.
	OneFinalState() bool
}

type simpleKind struct{}

func (simpleKind) Name() string        { return "sfa" }
func (simpleKind) OneFinalState() bool { return false }

type oneFinalKind struct{}

func (oneFinalKind) Name() string        { return "one-final-sfa" }
func (oneFinalKind) OneFinalState() bool { return true }

var (
	// Simple is the kind of general symbolic automata.
	Simple Kind = simpleKind{}

	// OneFinal is the kind of automata that track a single final state, as
	// produced by translations that funnel every accepting run into one sink.
	OneFinal Kind = oneFinalKind{}
)
