package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/shape"
)

// counterValue sums the samples of a gathered counter family matching labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metric
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ItemClassified(catalog.TypeBrep, catalog.IfcFacetedBrep)
	c.ItemClassified(catalog.TypeBrep, catalog.IfcFacetedBrep)
	c.ItemUnclassified(shape.NewIdentity(nil, catalog.IdentifierBody, catalog.TypeSweptSolid))
	c.ItemUnclassified(shape.Identity{})
	c.Extracted(catalog.IdentifierBody, 9, nil)
	c.Extracted(catalog.IdentifierBody, 0, nil)
	c.Extracted(catalog.IdentifierAxis, 0, errors.New("boom"))

	assert.Equal(t, 2.0, counterValue(t, reg, "otb_items_classified_total",
		map[string]string{"representation_type": "Brep", "item_type": "IfcFacetedBrep"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "otb_items_unclassified_total",
		map[string]string{"representation_type": "SweptSolid"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "otb_items_unclassified_total",
		map[string]string{"representation_type": "none"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "otb_extractions_total",
		map[string]string{"identifier": "Body", "outcome": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "otb_extractions_total",
		map[string]string{"identifier": "Body", "outcome": "empty"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "otb_extractions_total",
		map[string]string{"identifier": "Axis", "outcome": "absent"}))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}

func TestWriteFile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.Extracted(catalog.IdentifierBox, 5, nil)

	path := filepath.Join(t.TempDir(), "otb.prom")
	require.NoError(t, WriteFile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `otb_extractions_total{identifier="Box",outcome="ok"} 1`)
	assert.Contains(t, string(data), "otb_extraction_points_count 1")
}
