// Package metrics exposes extraction counters in Prometheus format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/shape"
)

var _ shape.Observer = (*Collector)(nil)

// Collector counts classifications and extractions. It implements shape.Observer.
type Collector struct {
	ItemsClassified   *prometheus.CounterVec
	ItemsUnclassified *prometheus.CounterVec
	Extractions       *prometheus.CounterVec
	ExtractionPoints  prometheus.Histogram
}

// NewCollector registers the otb metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		ItemsClassified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otb_items_classified_total",
				Help: "Representation items matched against the catalog",
			},
			[]string{"representation_type", "item_type"},
		),
		ItemsUnclassified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otb_items_unclassified_total",
				Help: "Representation items not permitted for their representation type",
			},
			[]string{"representation_type"},
		),
		Extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otb_extractions_total",
				Help: "Shape extractions by identifier and outcome",
			},
			[]string{"identifier", "outcome"},
		),
		ExtractionPoints: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "otb_extraction_points",
				Help:    "Points per successful extraction",
				Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
			},
		),
	}
}

func (c *Collector) ItemClassified(repType catalog.RepresentationType, itemType string) {
	c.ItemsClassified.WithLabelValues(repType.String(), itemType).Inc()
}

// ItemUnclassified counts under representation_type "none" when the
// identity has no type.
func (c *Collector) ItemUnclassified(id shape.Identity) {
	label := "none"
	if typ, ok := id.Type(); ok {
		label = typ.String()
	}
	c.ItemsUnclassified.WithLabelValues(label).Inc()
}

func (c *Collector) Extracted(identifier catalog.RepresentationIdentifier, points int, err error) {
	c.Extractions.WithLabelValues(identifier.String(), shape.Outcome(points, err)).Inc()
	if err == nil {
		c.ExtractionPoints.Observe(float64(points))
	}
}

// WriteFile writes everything gathered by g to path in the text exposition format.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
