// ABOUTME: Integration tests for the complete marksweep system
// ABOUTME: Drives a Manager, dumps its heap and analyses the dump end to end

package marksweep_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek/marksweep/gc"
	"github.com/prateek/marksweep/graph"
	"github.com/prateek/marksweep/heapdump"
	"github.com/prateek/marksweep/render"
)

func TestEndToEndJSONParsing(t *testing.T) {
	file, err := os.Open("testdata/pairs.json")
	require.NoError(t, err)
	defer file.Close()

	g, err := heapdump.Open(file)
	require.NoError(t, err)

	assert.Equal(t, 9, g.NumObjects())
	assert.Equal(t, []graph.ObjID{1, 2, 3, 8}, g.GetRoots().IDs)

	reach := graph.Reachable(g)
	assert.Len(t, reach, 8)
	assert.False(t, reach[9], "pair 9 is garbage")
}

func TestPathFindingIntegration(t *testing.T) {
	file, err := os.Open("testdata/pairs.json")
	require.NoError(t, err)
	defer file.Close()

	g, err := heapdump.Open(file)
	require.NoError(t, err)

	retainers := graph.NewRetainers(g)
	tests := []struct {
		name string
		from graph.ObjID
		want []graph.ObjID
	}{
		{name: "root", from: 3, want: []graph.ObjID{3}},
		{name: "tail of outer pair", from: 7, want: []graph.ObjID{7, 8}},
		{name: "inside nested pair", from: 4, want: []graph.ObjID{4, 6, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := retainers.ShortestPath(tt.from)
			require.True(t, ok)
			assert.Equal(t, tt.want, path.IDs)
		})
	}

	_, ok := retainers.ShortestPath(9)
	assert.False(t, ok)
}

func TestManagerDumpRoundTrip(t *testing.T) {
	m := gc.New(gc.Config{})
	for _, v := range []int64{0, 1, 2} {
		_, err := m.PushInteger(v)
		require.NoError(t, err)
	}
	for _, v := range []int64{1, 2} {
		_, err := m.PushInteger(v)
		require.NoError(t, err)
	}
	_, err := m.AllocatePair()
	require.NoError(t, err)
	_, err = m.PushInteger(3)
	require.NoError(t, err)
	outer, err := m.AllocatePair()
	require.NoError(t, err)
	_, err = m.AllocateInteger(99) // unrooted garbage
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, heapdump.JSON{}.Write(&buf, m.Snapshot()))

	g, err := heapdump.Open(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Live(), g.NumObjects())

	// The dump predicts exactly what the next collection reclaims
	retained := graph.RetainedCount(g)
	garbage := g.NumObjects() - len(graph.Reachable(g))
	assert.Equal(t, garbage, m.Collect().Collected)

	s, err := render.Sprint(m, outer)
	require.NoError(t, err)
	assert.Equal(t, "((1, 2), 3)", s)

	_, err = m.PopRoot()
	require.NoError(t, err)
	assert.Equal(t, retained[graph.ObjID(outer)], m.Collect().Collected)
}
