// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"strings"
	"testing"

	"github.com/db47h/hwgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CheckDialects checks that g generates a body and a port map for every
// dialect given a, and that both dialects reference the same ports.
//
// Every output port must be assigned in each body and every connection must
// appear in each port map.
//
func CheckDialects(t *testing.T, g hwgen.Generator, a hwgen.Attributes) {
	t.Helper()

	ins, outs, err := hwgen.Interface(g, a)
	require.NoError(t, err)
	wires, err := g.Wires(a)
	require.NoError(t, err)
	conns, err := g.Connections(a, 0)
	require.NoError(t, err)
	require.Len(t, conns, len(ins)+len(outs), "connections must cover all ports")

	for _, w := range wires {
		_, isIn := ins.Lookup(w.Name)
		_, isOut := outs.Lookup(w.Name)
		assert.False(t, isIn || isOut, "wire %s shadows a port", w.Name)
	}

	for _, d := range hwgen.Dialects() {
		body, err := hwgen.ModuleBody(g, a, d)
		require.NoError(t, err, d.String())
		require.NotEmpty(t, body, d.String())
		text := strings.Join(body, "\n")
		assert.NotContains(t, text, "{{", "%s: unresolved placeholder", d)
		for _, o := range outs {
			assert.Contains(t, text, o.Name, "%s: output %s never assigned", d, o.Name)
		}

		pm, err := hwgen.PortMap(g, a, 0, d)
		require.NoError(t, err, d.String())
		ptext := strings.Join(pm, "\n")
		for _, c := range conns {
			assert.Contains(t, ptext, c.Formal, "%s: formal %s missing from port map", d, c.Formal)
			assert.Contains(t, ptext, c.Actual, "%s: actual %s missing from port map", d, c.Actual)
		}
	}
}
