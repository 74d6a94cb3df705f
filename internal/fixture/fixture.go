// Package fixture reads symbolic automata from YAML documents.
//
//	vars: [x, y]
//	kind: simple        # or one-final
//	initial: s0
//	final: s1           # one-final only
//	states:
//	  - name: s0
//	    trans:
//	      - {to: s1, guard: "x & !y"}
//	  - name: s1
//	    accepting: true
package fixture

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/geange/sfa"
	"github.com/geange/sfa/guard"
)

var (
	ErrUnknownState = errors.New("unknown state")
	ErrUnknownKind  = errors.New("unknown kind")
	ErrNoStates     = errors.New("no states")
)

// Doc is one automaton description.
type Doc struct {
	Vars    []string `yaml:"vars"`
	Kind    string   `yaml:"kind"`
	Initial string   `yaml:"initial"`
	Final   string   `yaml:"final"`
	States  []State  `yaml:"states"`
}

type State struct {
	Name      string  `yaml:"name"`
	Accepting bool    `yaml:"accepting"`
	Trans     []Trans `yaml:"trans"`
}

type Trans struct {
	To    string `yaml:"to"`
	Guard string `yaml:"guard"`
}

// Parse decodes a document. It checks that the document is self-consistent
// but does not touch any guard manager.
func Parse(data []byte) (*Doc, error) {
	var d Doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if len(d.States) == 0 {
		return nil, ErrNoStates
	}
	if _, err := kindOf(d.Kind); err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		names[s.Name] = true
	}
	if d.Initial == "" {
		d.Initial = d.States[0].Name
	}
	if !names[d.Initial] {
		return nil, fmt.Errorf("initial %q: %w", d.Initial, ErrUnknownState)
	}
	if d.Final != "" && !names[d.Final] {
		return nil, fmt.Errorf("final %q: %w", d.Final, ErrUnknownState)
	}
	for _, s := range d.States {
		for _, t := range s.Trans {
			if !names[t.To] {
				return nil, fmt.Errorf("state %q: transition to %q: %w", s.Name, t.To, ErrUnknownState)
			}
		}
	}
	return &d, nil
}

// Manager returns a new guard manager over the document's variables.
func (d *Doc) Manager(opts ...guard.Option) (*guard.Manager, error) {
	return guard.New(d.Vars, opts...)
}

// Build creates the automaton over m. On error no guard reference is left
// behind.
func (d *Doc) Build(m *guard.Manager, opts ...sfa.Option) (*sfa.Automaton, error) {
	kind, err := kindOf(d.Kind)
	if err != nil {
		return nil, err
	}

	a := sfa.New(m, append([]sfa.Option{sfa.WithKind(kind)}, opts...)...)
	states := make(map[string]*sfa.State, len(d.States))
	for _, s := range d.States {
		states[s.Name] = a.NewState(s.Accepting)
	}

	for _, s := range d.States {
		for _, t := range s.Trans {
			src := t.Guard
			if src == "" {
				src = "TRUE"
			}
			g, err := m.Parse(src)
			if err != nil {
				freeAll(states)
				return nil, fmt.Errorf("state %q: guard %q: %w", s.Name, t.Guard, err)
			}
			states[s.Name].AddTrans(g, states[t.To])
		}
	}

	if err := a.SetInitial(states[d.Initial]); err != nil {
		freeAll(states)
		return nil, err
	}
	if d.Final != "" {
		if err := a.SetFinalState(states[d.Final]); err != nil {
			freeAll(states)
			return nil, err
		}
	}

	// states the initial state cannot reach are not part of the automaton
	reachable := make(map[*sfa.State]bool, len(states))
	for _, s := range a.ReachableStates() {
		reachable[s] = true
	}
	for _, s := range states {
		if !reachable[s] {
			drop(s)
		}
	}
	return a, nil
}

// Load parses data and builds the automaton over m.
func Load(m *guard.Manager, data []byte, opts ...sfa.Option) (*sfa.Automaton, error) {
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return d.Build(m, opts...)
}

func kindOf(name string) (sfa.Kind, error) {
	switch name {
	case "", "simple":
		return sfa.Simple, nil
	case "one-final":
		return sfa.OneFinal, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

// freeAll releases the guards of every state, reachable or not.
func freeAll(states map[string]*sfa.State) {
	for _, s := range states {
		drop(s)
	}
}

func drop(s *sfa.State) {
	for _, target := range s.Successors() {
		s.RemoveTrans(target).Free()
	}
}
