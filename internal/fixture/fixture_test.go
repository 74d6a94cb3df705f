package fixture

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/sfa"
	"github.com/geange/sfa/guard"
)

func readFile(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	return data
}

func TestLoad(t *testing.T) {
	d, err := Parse(readFile(t, "testdata/one_final.yaml"))
	require.NoError(t, err)
	m, err := d.Manager()
	require.NoError(t, err)

	a, err := d.Build(m)
	require.NoError(t, err)

	assert.Equal(t, sfa.OneFinal, a.Kind())
	assert.Equal(t, 3, a.NumStates())
	assert.Equal(t, 3, a.NumTransitions())

	f, err := a.FinalState()
	require.NoError(t, err)
	assert.True(t, f.Accepting())

	assert.True(t, sfa.Run(a, guard.Assignment{"x": true, "y": true}))
	assert.True(t, sfa.Run(a, guard.Assignment{"y": true}, guard.Assignment{}))
	assert.False(t, sfa.Run(a, guard.Assignment{"x": true}, guard.Assignment{"x": true}))

	a.Free()
	assert.Equal(t, 0, m.Live())
}

func TestBuildReleasesGuardsOnError(t *testing.T) {
	m, err := guard.New([]string{"x"})
	require.NoError(t, err)

	_, err = Load(m, readFile(t, "testdata/bad_guard.yaml"))
	assert.ErrorIs(t, err, guard.ErrUnknownVar)
	assert.Equal(t, 0, m.Live())
}

func TestBuildDropsUnreachableStates(t *testing.T) {
	m, err := guard.New([]string{"x"})
	require.NoError(t, err)

	a, err := Load(m, []byte(`
vars: [x]
states:
  - name: s0
    accepting: true
  - name: orphan
    trans:
      - {to: s0, guard: "x"}
`))
	require.NoError(t, err)
	assert.Equal(t, 1, a.NumStates())

	a.Free()
	assert.Equal(t, 0, m.Live())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"no states", "vars: [x]\n", ErrNoStates},
		{"unknown kind", "kind: weird\nstates: [{name: s0}]\n", ErrUnknownKind},
		{"unknown initial", "initial: nope\nstates: [{name: s0}]\n", ErrUnknownState},
		{"unknown final", "final: nope\nstates: [{name: s0}]\n", ErrUnknownState},
		{"unknown target", "states: [{name: s0, trans: [{to: s9}]}]\n", ErrUnknownState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Parse([]byte("states: [\n"))
		assert.Error(t, err)
	})
}

func TestFinalOnSimpleKind(t *testing.T) {
	m, err := guard.New([]string{"x"})
	require.NoError(t, err)

	_, err = Load(m, []byte("final: s0\nstates: [{name: s0}]\n"))
	assert.ErrorIs(t, err, sfa.ErrNoUniqueFinalState)
	assert.Equal(t, 0, m.Live())
}
