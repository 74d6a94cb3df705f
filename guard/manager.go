// Package guard is the predicate algebra used to label transitions of symbolic
// automata. Guards are canonical Boolean functions over a fixed set of named
// variables, stored in a shared BDD. Every *Guard is one explicitly counted
// reference: it must be released with Free exactly once, or handed to a
// structure that releases it later.
package guard

import (
	"fmt"

	"github.com/dalzilio/rudd"
	"go.uber.org/zap"
)

// Manager owns the BDD all guards of a session live in. A Manager is not safe
// for concurrent use.
type Manager struct {
	bdd    *rudd.BDD
	names  []string
	index  map[string]int
	live   int
	logger *zap.Logger
}

type options struct {
	nodesize  int
	cachesize int
	logger    *zap.Logger
}

// Option configures a Manager.
type Option func(*options)

// WithNodesize sets the initial size of the BDD node table.
func WithNodesize(size int) Option {
	return func(o *options) {
		o.nodesize = size
	}
}

// WithCachesize sets the initial number of entries in the BDD operation caches.
func WithCachesize(size int) Option {
	return func(o *options) {
		o.cachesize = size
	}
}

// WithLogger sets the logger that reports BDD failures. Default is a no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns a manager with one BDD variable per name, in order.
func New(vars []string, opts ...Option) (*Manager, error) {
	o := &options{
		nodesize:  1000,
		cachesize: 1000,
		logger:    zap.NewNop(),
	}
	for _, fn := range opts {
		fn(o)
	}

	index := make(map[string]int, len(vars))
	for i, name := range vars {
		if name == "" {
			return nil, fmt.Errorf("variable %d: %w", i, ErrEmptyName)
		}
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("variable %q: %w", name, ErrDuplicateVar)
		}
		index[name] = i
	}

	// rudd refuses a BDD without variables
	varnum := len(vars)
	if varnum == 0 {
		varnum = 1
	}
	bdd, err := rudd.New(varnum, rudd.Nodesize(o.nodesize), rudd.Cachesize(o.cachesize))
	if err != nil {
		return nil, fmt.Errorf("create bdd: %w", err)
	}

	o.logger.Debug("guard manager ready", zap.Strings("vars", vars))
	return &Manager{
		bdd:    bdd,
		names:  append([]string(nil), vars...),
		index:  index,
		logger: o.logger,
	}, nil
}

// Live returns the number of guard references that were acquired and not yet
// released.
func (m *Manager) Live() int {
	return m.live
}

// True returns a fresh reference to the constant TRUE.
func (m *Manager) True() *Guard {
	return m.wrap(m.bdd.True())
}

// False returns a fresh reference to the constant FALSE.
func (m *Manager) False() *Guard {
	return m.wrap(m.bdd.False())
}

// From returns TRUE or FALSE.
func (m *Manager) From(v bool) *Guard {
	if v {
		return m.True()
	}
	return m.False()
}

// Var returns a fresh reference to the predicate "name holds".
func (m *Manager) Var(name string) (*Guard, error) {
	i, ok := m.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownVar)
	}
	return m.wrap(m.bdd.Ithvar(i)), nil
}

// NVar returns a fresh reference to the predicate "name does not hold".
func (m *Manager) NVar(name string) (*Guard, error) {
	i, ok := m.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownVar)
	}
	return m.wrap(m.bdd.NIthvar(i)), nil
}

// MustVar is like Var but panics on unknown names. Meant for tests and
// statically known variable sets.
func (m *Manager) MustVar(name string) *Guard {
	g, err := m.Var(name)
	if err != nil {
		panic(err)
	}
	return g
}

// Assignment is one letter of the symbolic alphabet: a valuation of the
// manager's variables. Missing variables are false.
type Assignment map[string]bool

// Eval reports whether the assignment satisfies g. It does not consume g.
func (m *Manager) Eval(g *Guard, a Assignment) bool {
	m.check(g)
	cube := m.bdd.True()
	for i, name := range m.names {
		if a[name] {
			cube = m.bdd.And(cube, m.bdd.Ithvar(i))
		} else {
			cube = m.bdd.And(cube, m.bdd.NIthvar(i))
		}
	}
	return !m.bdd.Equal(m.bdd.And(g.node, cube), m.bdd.False())
}

func (m *Manager) wrap(n rudd.Node) *Guard {
	n = m.result(n)
	m.live++
	return &Guard{m: m, node: n}
}

// result passes n through. A nil node means the BDD gave up, usually because
// its node table could not grow; that is logged and turned into a panic.
func (m *Manager) result(n rudd.Node) rudd.Node {
	if n == nil {
		msg := m.bdd.Error()
		m.logger.Error("bdd operation failed", zap.String("error", msg))
		panic(fmt.Sprintf("guard: bdd operation failed: %s", msg))
	}
	return n
}

func (m *Manager) check(g *Guard) {
	if g == nil {
		panic("guard: nil guard")
	}
	if g.m != m {
		panic(ErrForeignGuard)
	}
	if g.released {
		panic(ErrReleased)
	}
}
