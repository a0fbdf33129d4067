package shape

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// booleanWalk evaluates one boolean tree. Operands shared between branches
// are decoded once per walk; the cache is never shared between extractions.
type booleanWalk struct {
	x     *Extractor
	cache map[uint64]operandResult
}

type operandResult struct {
	points []geom.Point3D
	err    error
}

func (x *Extractor) newBooleanWalk() *booleanWalk {
	return &booleanWalk{x: x, cache: make(map[uint64]operandResult)}
}

// nested applies the result's own Operator.
func (w *booleanWalk) nested(result *model.Entity, depth int) ([]geom.Point3D, error) {
	text, err := result.Scalar("Operator")
	if err != nil {
		return nil, err
	}
	op, ok := catalog.ParseBooleanOperator(text)
	if !ok {
		return nil, fmt.Errorf("%s operator %s: %w", result, text, ErrMalformed)
	}
	return w.result(result, op, depth)
}

// result resolves both operands and applies op. Only DIFFERENCE is
// supported.
func (w *booleanWalk) result(result *model.Entity, op catalog.BooleanOperator, depth int) ([]geom.Point3D, error) {
	if op != catalog.OperatorDifference {
		return nil, fmt.Errorf("%s operator %s: %w", result, op, ErrNotImplemented)
	}
	if depth >= maxDepth {
		return nil, fmt.Errorf("%s: boolean nesting deeper than %d: %w", result, maxDepth, ErrMalformed)
	}
	first, err := result.Ref("FirstOperand")
	if err != nil {
		return nil, err
	}
	second, err := result.Ref("SecondOperand")
	if err != nil {
		return nil, err
	}
	a, err := w.operand(first, depth+1)
	if err != nil {
		return nil, err
	}
	b, err := w.operand(second, depth+1)
	if err != nil {
		return nil, err
	}
	return Difference(a, b), nil
}

// operand decodes an operand once per walk. Entries are stored after
// evaluation, so a cycle still runs into maxDepth.
func (w *booleanWalk) operand(operand *model.Entity, depth int) ([]geom.Point3D, error) {
	if cached, ok := w.cache[operand.ID]; ok {
		return cached.points, cached.err
	}
	points, err := w.decodeOperand(operand, depth)
	w.cache[operand.ID] = operandResult{points: points, err: err}
	return points, err
}

func (w *booleanWalk) decodeOperand(operand *model.Entity, depth int) ([]geom.Point3D, error) {
	x := w.x
	operandType, ok := x.ident.OperandType(operand)
	if !ok {
		return nil, fmt.Errorf("operand %s: %w", operand, ErrUnclassified)
	}
	switch operandType {
	case catalog.IfcBooleanClippingResult, catalog.IfcBooleanResult:
		return w.nested(operand, depth)
	case catalog.IfcPolygonalBoundedHalfSpace:
		return x.polygonalBoundedHalfSpace(operand)
	case catalog.IfcExtrudedAreaSolid:
		return x.extrudedAreaSolid(operand)
	case catalog.IfcFacetedBrep:
		return x.facetedBrep(operand)
	}
	return nil, fmt.Errorf("operand %s (%s): %w", operand, operandType, ErrNotImplemented)
}

// polygonalBoundedHalfSpace returns the boundary polyline translated by the
// x and y of Position.Location. Rotation of Position is not applied.
func (x *Extractor) polygonalBoundedHalfSpace(space *model.Entity) ([]geom.Point3D, error) {
	placement, err := space.Ref("Position")
	if err != nil {
		return nil, err
	}
	loc, err := placement.Ref("Location")
	if err != nil {
		return nil, err
	}
	origin, err := x.point(loc)
	if err != nil {
		return nil, err
	}
	boundary, err := space.Ref("PolygonalBoundary")
	if err != nil {
		return nil, err
	}
	curveType, ok := x.ident.BoundedCurveType(boundary)
	if !ok {
		return nil, fmt.Errorf("boundary %s: %w", boundary, ErrUnclassified)
	}
	if curveType != catalog.IfcPolyline {
		return nil, fmt.Errorf("boundary %s (%s): %w", boundary, curveType, ErrNotImplemented)
	}
	return x.translatedPolyline(boundary, origin)
}

// Difference returns the points of a that are not exactly equal to any point
// of b. Separators of a are kept. Neither input is modified.
func Difference(a, b []geom.Point3D) []geom.Point3D {
	out := make([]geom.Point3D, 0, len(a))
	for _, p := range a {
		if !p.IsSeparator() && contains(b, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func contains(points []geom.Point3D, p geom.Point3D) bool {
	for _, q := range points {
		if q.Equal(p) {
			return true
		}
	}
	return false
}
