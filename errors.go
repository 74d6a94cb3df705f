package sfa

import "errors"

var (
	// ErrStateKind is returned when a state of one kind is handed to an
	// automaton of another kind.
	ErrStateKind = errors.New("state kind does not match automaton kind")

	// ErrNoUniqueFinalState is returned by the final state accessors of
	// automata whose kind does not keep a single accepting state.
	ErrNoUniqueFinalState = errors.New("automaton does not have a single, unique final state")
)
