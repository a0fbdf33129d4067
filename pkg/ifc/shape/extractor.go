package shape

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// maxDepth bounds recursion through nested boolean operands.
const maxDepth = 64

type decoder func(x *Extractor, item *model.Entity) ([]geom.Point3D, error)

// Decoders per representation purpose, keyed by catalog item name. Catalog
// items missing here are recognized but contribute nothing.
var (
	bodyDecoders = map[string]decoder{
		catalog.IfcFacetedBrep: func(x *Extractor, item *model.Entity) ([]geom.Point3D, error) {
			return x.facetedBrep(item)
		},
		catalog.IfcExtrudedAreaSolid: func(x *Extractor, item *model.Entity) ([]geom.Point3D, error) {
			return x.extrudedAreaSolid(item)
		},
		catalog.IfcBooleanClippingResult: func(x *Extractor, item *model.Entity) ([]geom.Point3D, error) {
			return x.newBooleanWalk().result(item, catalog.OperatorDifference, 0)
		},
		catalog.IfcBooleanResult: func(x *Extractor, item *model.Entity) ([]geom.Point3D, error) {
			return x.newBooleanWalk().nested(item, 0)
		},
	}
	boxDecoders = map[string]decoder{
		catalog.IfcBoundingBox: func(x *Extractor, item *model.Entity) ([]geom.Point3D, error) {
			return x.boundingBox(item)
		},
	}
	axisDecoders = map[string]decoder{
		catalog.IfcPolyline: func(x *Extractor, item *model.Entity) ([]geom.Point3D, error) {
			return x.polyline(item, false)
		},
	}
)

// Extractor decodes classified shape representations into point sequences.
//
// A nil error with an empty slice means a valid representation without
// decodable geometry. A non-nil error means the representation could not be
// decoded; it wraps one of the package reason errors or a model error.
type Extractor struct {
	graph    *model.Graph
	ident    *Identifier
	logger   *zap.Logger
	observer Observer
}

// NewExtractor creates an Extractor over g.
func NewExtractor(g *model.Graph, opts ...Option) *Extractor {
	o := newOptions(opts)
	return &Extractor{
		graph:    g,
		ident:    &Identifier{graph: g, logger: o.logger, observer: o.observer},
		logger:   o.logger,
		observer: o.observer,
	}
}

// Identifier returns the Identifier the extractor classifies items with.
func (x *Extractor) Identifier() *Identifier {
	return x.ident
}

// Body decodes a Body representation.
func (x *Extractor) Body(id Identity) ([]geom.Point3D, error) {
	return x.observe(catalog.IdentifierBody, id, bodyDecoders)
}

// Box decodes a Box representation.
func (x *Extractor) Box(id Identity) ([]geom.Point3D, error) {
	return x.observe(catalog.IdentifierBox, id, boxDecoders)
}

// Axis decodes an Axis or FootPrint representation.
func (x *Extractor) Axis(id Identity) ([]geom.Point3D, error) {
	return x.observe(catalog.IdentifierAxis, id, axisDecoders)
}

// Extract dispatches on the identity's representation identifier.
func (x *Extractor) Extract(id Identity) ([]geom.Point3D, error) {
	if !id.IsResolved() {
		return nil, fmt.Errorf("%s: %w", id, ErrUnresolved)
	}
	ident, _ := id.Identifier()
	switch ident {
	case catalog.IdentifierBody, catalog.IdentifierBodyFallback:
		return x.Body(id)
	case catalog.IdentifierBox:
		return x.Box(id)
	case catalog.IdentifierAxis, catalog.IdentifierFootPrint:
		return x.Axis(id)
	}
	return nil, fmt.Errorf("%s: identifier %s: %w", id.Source, ident, ErrNotImplemented)
}

// Loops is Extract split into independent loops on geom.Separator.
func (x *Extractor) Loops(id Identity) ([][]geom.Point3D, error) {
	points, err := x.Extract(id)
	if err != nil {
		return nil, err
	}
	return geom.SplitLoops(points), nil
}

func (x *Extractor) observe(purpose catalog.RepresentationIdentifier, id Identity, decoders map[string]decoder) ([]geom.Point3D, error) {
	points, err := x.items(id, decoders)
	x.observer.Extracted(purpose, len(points), err)
	return points, err
}

// items applies the first decoder matching an item of the representation.
// An item that cannot be classified fails the whole representation.
func (x *Extractor) items(id Identity, decoders map[string]decoder) ([]geom.Point3D, error) {
	if !id.IsResolved() {
		return nil, fmt.Errorf("%s: %w", id, ErrUnresolved)
	}
	items, err := id.Source.Refs("Items")
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		itemType, ok := x.ident.ItemType(id, item)
		if !ok {
			return nil, fmt.Errorf("%s in %s: %w", item, id, ErrUnclassified)
		}
		decode, ok := decoders[itemType]
		if !ok {
			x.logger.Debug("item extraction not implemented",
				zap.Stringer("entity", item),
				zap.String("type", itemType),
			)
			continue
		}
		return decode(x, item)
	}
	return []geom.Point3D{}, nil
}
