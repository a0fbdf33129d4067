// Package importer drives identification and extraction over every shape
// representation of a set of products.
package importer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/bim"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/shape"
)

// DefaultWorkers is the extraction concurrency when none is configured.
const DefaultWorkers = 4

// Result is the outcome for one shape representation of a product. When the
// product's representations could not be read, Representation is nil.
type Result struct {
	Product        bim.Product
	Representation *model.Entity
	Identity       shape.Identity
	Points         []geom.Point3D
	Err            error
}

// Outcome returns "ok", "empty" or "absent".
func (r Result) Outcome() string {
	return shape.Outcome(len(r.Points), r.Err)
}

// Importer extracts geometry for products of one graph.
type Importer struct {
	extractor *shape.Extractor
	workers   int
	filter    map[catalog.RepresentationIdentifier]bool
	logger    *zap.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithWorkers sets the number of concurrent extractions.
func WithWorkers(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.workers = n
		}
	}
}

// WithIdentifiers restricts extraction to representations with one of ids.
// Unresolved representations are always reported.
func WithIdentifiers(ids ...catalog.RepresentationIdentifier) Option {
	return func(im *Importer) {
		if len(ids) == 0 {
			return
		}
		im.filter = make(map[catalog.RepresentationIdentifier]bool, len(ids))
		for _, id := range ids {
			im.filter[id] = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(im *Importer) {
		if logger != nil {
			im.logger = logger
		}
	}
}

// New creates an Importer using x for extraction.
func New(x *shape.Extractor, opts ...Option) *Importer {
	im := &Importer{
		extractor: x,
		workers:   DefaultWorkers,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Plan identifies every shape representation of products and returns one
// pending result per representation that passes the identifier filter.
func (im *Importer) Plan(products []bim.Product) []Result {
	var results []Result
	for _, p := range products {
		reps, err := bim.ShapeRepresentations(p.Entity)
		if err != nil {
			results = append(results, Result{Product: p, Err: err})
			continue
		}
		for _, rep := range reps {
			id := im.extractor.Identifier().Identify(rep)
			if !id.IsResolved() {
				results = append(results, Result{
					Product:        p,
					Representation: rep,
					Identity:       id,
					Err:            fmt.Errorf("%s: %w", id, shape.ErrUnresolved),
				})
				continue
			}
			if ident, _ := id.Identifier(); im.filter != nil && !im.filter[ident] {
				continue
			}
			results = append(results, Result{Product: p, Representation: rep, Identity: id})
		}
	}
	return results
}

// Run plans and extracts concurrently. Results keep product and
// representation order. Extraction failures are reported per result; only
// context cancellation fails the run.
func (im *Importer) Run(ctx context.Context, products []bim.Product) ([]Result, error) {
	results := im.Plan(products)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(im.workers)
	for i := range results {
		if !results[i].Identity.IsResolved() || results[i].Err != nil {
			continue
		}
		if egCtx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			r := &results[i]
			r.Points, r.Err = im.extractor.Extract(r.Identity)
			if r.Err != nil && !errors.Is(r.Err, shape.ErrNotImplemented) {
				im.logger.Debug("extraction failed",
					zap.Stringer("representation", r.Representation),
					zap.Error(r.Err),
				)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}
	return results, nil
}

// Summary counts results by outcome.
func Summary(results []Result) map[string]int {
	counts := map[string]int{"ok": 0, "empty": 0, "absent": 0}
	for _, r := range results {
		counts[r.Outcome()]++
	}
	return counts
}
