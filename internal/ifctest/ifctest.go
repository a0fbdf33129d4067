// Package ifctest builds entity graphs from inline STEP data for tests.
package ifctest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/step"
)

// File wraps DATA section lines in a minimal IFC4 physical file.
func File(data ...string) string {
	var b strings.Builder
	b.WriteString("ISO-10303-21;\nHEADER;\n")
	b.WriteString("FILE_DESCRIPTION(('ViewDefinition [ReferenceView]'),'2;1');\n")
	b.WriteString("FILE_NAME('test.ifc','2024-01-01T00:00:00',(''),(''),'','','');\n")
	b.WriteString("FILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n")
	for _, line := range data {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("ENDSEC;\nEND-ISO-10303-21;\n")
	return b.String()
}

// Graph parses the DATA lines and builds a graph, failing the test on error.
func Graph(t testing.TB, data ...string) *model.Graph {
	t.Helper()
	parser, err := step.NewParser()
	require.NoError(t, err)

	file, err := parser.ParseString(File(data...))
	require.NoError(t, err)

	g, err := model.NewGraph(file)
	require.NoError(t, err)
	return g
}

// Entity returns the entity with the given id, failing the test when absent.
func Entity(t testing.TB, g *model.Graph, id uint64) *model.Entity {
	t.Helper()
	e, ok := g.Get(id)
	require.True(t, ok, "entity #%d not found", id)
	return e
}
