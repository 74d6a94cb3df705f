package sfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/sfa/guard"
)

// assertComplete checks that the guards leaving every state of a cover TRUE.
func assertComplete(t *testing.T, a *Automaton) {
	t.Helper()
	for i, s := range a.ReachableStates() {
		cover := a.Manager().False()
		for _, g := range s.Transitions() {
			cover.OrWith(g.Id())
		}
		assert.True(t, cover.IsOne(), "state %d covers %s", i, cover)
		cover.Free()
	}
}

func TestGatherTransitions(t *testing.T) {
	m := newManager(t, "x", "y")
	q1 := NewState(Simple, false)
	q2 := NewState(Simple, false)
	target := NewState(Simple, true)
	other := NewState(Simple, false)
	q1.AddTrans(m.MustVar("y"), target)
	q1.AddTrans(m.MustVar("x"), other)
	q2.AddTrans(m.MustParse("!y"), target)
	q2.AddTrans(m.MustParse("x & y"), other)
	defer q1.freeTrans()
	defer q2.freeTrans()

	working, tautologies := gatherTransitions([]*State{q1, q2})
	defer freeTransitions(working)

	assert.Equal(t, []*State{target}, tautologies)
	require.Len(t, working, 1)
	assert.Same(t, other, working[0].Target)
	assertGuard(t, "x", working[0].Guard)
}

func TestDeterminize(t *testing.T) {
	m := newManager(t, "x", "y")
	a := New(m)
	q0, q1, q2, f := a.NewState(false), a.NewState(false), a.NewState(false), a.NewState(true)
	q0.AddTrans(m.MustVar("x"), q1)
	q0.AddTrans(m.True(), q2)
	q1.AddTrans(m.MustVar("y"), f)
	q2.AddTrans(m.MustParse("!y"), f)
	require.NoError(t, a.SetInitial(q0))
	defer a.Free()
	require.False(t, a.IsDeterministic())

	d := a.Determinize()
	defer d.Free()
	assert.True(t, d.IsDeterministic())
	// {q0}, {q1,q2}, {q2}, {f}
	assert.Equal(t, 4, d.NumStates())
	assert.True(t, d.IsEquivalent(a))

	for _, w := range [][]guard.Assignment{
		{{"x": true}, {"y": true}},
		{{"x": true}, {}},
		{{}, {}},
	} {
		assert.Equal(t, Run(a, w...), Run(d, w...), "word %v", w)
	}
	assert.False(t, Run(d, guard.Assignment{}, guard.Assignment{"y": true}))
}

func TestDeterminizeReturnsCopy(t *testing.T) {
	m := newManager(t, "x")
	a, s := chain(t, m)
	defer a.Free()

	d := a.Determinize()
	defer d.Free()
	assert.NotSame(t, s[0], d.Initial())
	assert.Equal(t, a.String(), d.String())
}

func TestCompleteTransitionFunction(t *testing.T) {
	m := newManager(t, "x", "y")

	t.Run("adds sink", func(t *testing.T) {
		a, _ := chain(t, m)
		defer a.Free()

		a.CompleteTransitionFunction()
		assertComplete(t, a)
		assert.Equal(t, 4, a.NumStates())
		assert.True(t, Run(a, guard.Assignment{"x": true}, guard.Assignment{}))
		assert.False(t, Run(a, guard.Assignment{}, guard.Assignment{}))
	})

	t.Run("already complete", func(t *testing.T) {
		a := NewAutomata(m).MakeAnyString()
		defer a.Free()
		base := m.Live()

		a.CompleteTransitionFunction()
		assert.Equal(t, 1, a.NumStates())
		assert.Equal(t, base, m.Live())
	})

	t.Run("no initial state", func(t *testing.T) {
		a := New(m)
		defer a.Free()

		a.CompleteTransitionFunction()
		require.NotNil(t, a.Initial())
		assertComplete(t, a)
		assert.True(t, a.IsEmptyLanguage())
	})
}

func TestComplement(t *testing.T) {
	m := newManager(t, "x")
	a, _ := chain(t, m)
	defer a.Free()

	c := a.Complement()
	defer c.Free()
	assert.True(t, c.IsDeterministic())
	assertComplete(t, c)

	words := [][]guard.Assignment{
		{},
		{{"x": true}},
		{{"x": true}, {}},
		{{}, {}},
		{{"x": true}, {"x": true}, {}},
	}
	for _, w := range words {
		assert.NotEqual(t, Run(a, w...), Run(c, w...), "word %v", w)
	}

	cc := c.Complement()
	defer cc.Free()
	assert.True(t, cc.IsEquivalent(a))

	// the complement of nothing is everything
	none := New(m)
	all := none.Complement()
	defer all.Free()
	assert.Equal(t, 1, all.NumStates())
	assert.True(t, all.Initial().Accepting())
}

func TestRemoveDeadStates(t *testing.T) {
	m := newManager(t, "x")
	a, s := chain(t, m)
	defer a.Free()

	dead := a.NewState(false)
	deeper := a.NewState(false)
	s[0].AddTrans(m.MustParse("!x"), dead)
	s[1].AddTrans(m.False(), dead)
	dead.AddTrans(m.True(), deeper)
	deeper.AddTrans(m.True(), dead)
	require.Equal(t, 5, a.NumStates())

	a.RemoveDeadStates()
	assert.Equal(t, s, a.ReachableStates())
	assert.Equal(t, 0, dead.NumTrans())
	assert.Equal(t, 0, deeper.NumTrans())
	assert.Equal(t, 2, m.Live())

	t.Run("empty language", func(t *testing.T) {
		e := New(m)
		ini := e.NewState(false)
		ini.AddTrans(m.True(), ini)
		require.NoError(t, e.SetInitial(ini))

		e.RemoveDeadStates()
		assert.Same(t, ini, e.Initial())
		assert.Equal(t, 0, ini.NumTrans())
		assert.True(t, e.IsEmptyLanguage())
	})
}

func TestMinimizeEmptyLanguage(t *testing.T) {
	m := newManager(t, "x")
	a := NewAutomata(m).MakeEmpty()
	defer a.Free()

	minimal := a.Minimize()
	defer minimal.Free()
	require.Equal(t, 1, minimal.NumStates())
	ini := minimal.Initial()
	assert.False(t, ini.Accepting())
	assert.True(t, ini.Guard(ini).IsOne())
}

func TestMinimizeMergesStates(t *testing.T) {
	m := newManager(t, "x")
	a := New(m)
	s0, s1, s2 := a.NewState(false), a.NewState(true), a.NewState(true)
	s0.AddTrans(m.MustVar("x"), s1)
	s0.AddTrans(m.MustParse("!x"), s2)
	s1.AddTrans(m.True(), s2)
	s2.AddTrans(m.True(), s1)
	require.NoError(t, a.SetInitial(s0))
	defer a.Free()

	minimal := a.Minimize()
	defer minimal.Free()
	assert.Equal(t, 2, minimal.NumStates())
	assert.True(t, minimal.IsDeterministic())
	assert.True(t, minimal.IsEquivalent(a))

	again := minimal.Minimize()
	defer again.Free()
	assert.Equal(t, minimal.NumStates(), again.NumStates())
}

func TestProduct(t *testing.T) {
	m := newManager(t, "x", "y")
	f := NewAutomata(m)
	a := f.MakeGuard(m.MustVar("x"))
	defer a.Free()
	b := f.MakeGuard(m.MustVar("y"))
	defer b.Free()

	p := Product(a, b)
	defer p.Free()
	assert.Equal(t, 2, p.NumStates())
	assertGuard(t, "x & y", p.Initial().trans[0].Guard)

	assert.True(t, Run(p, guard.Assignment{"x": true, "y": true}))
	assert.False(t, Run(p, guard.Assignment{"x": true}))

	empty := Product(a, New(m))
	defer empty.Free()
	assert.True(t, empty.IsEmptyLanguage())
}

func TestIsSubsetOf(t *testing.T) {
	m := newManager(t, "x", "y")
	f := NewAutomata(m)
	xy := f.MakeGuard(m.MustParse("x & y"))
	defer xy.Free()
	x := f.MakeGuard(m.MustVar("x"))
	defer x.Free()
	xOrY := f.MakeGuard(m.MustParse("x | y"))
	defer xOrY.Free()

	for _, a := range []*Automaton{xy, x, xOrY} {
		assert.True(t, a.IsSubsetOf(a))
		assert.True(t, a.IsEquivalent(a))
	}
	assert.True(t, xy.IsSubsetOf(x))
	assert.True(t, x.IsSubsetOf(xOrY))
	assert.True(t, xy.IsSubsetOf(xOrY))
	assert.False(t, xOrY.IsSubsetOf(x))
	assert.False(t, x.IsEquivalent(xOrY))

	empty := f.MakeEmpty()
	defer empty.Free()
	assert.True(t, empty.IsSubsetOf(xy))
	assert.False(t, xy.IsSubsetOf(empty))
}

func TestRun(t *testing.T) {
	m := newManager(t, "x")
	f := NewAutomata(m)

	eps := f.MakeEmptyString()
	defer eps.Free()
	assert.True(t, Run(eps))
	assert.False(t, Run(eps, guard.Assignment{}))

	universal := f.MakeAnyString()
	defer universal.Free()
	assert.True(t, Run(universal))
	assert.True(t, Run(universal, guard.Assignment{}, guard.Assignment{"x": true}))

	assert.False(t, Run(New(m)))
}
