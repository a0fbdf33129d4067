package shape

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// point converts an IfcCartesianPoint. Two or three coordinates are accepted;
// a missing z is 0.
func (x *Extractor) point(e *model.Entity) (geom.Point3D, error) {
	coords, err := e.Scalars("Coordinates")
	if err != nil {
		return geom.Point3D{}, err
	}
	if len(coords) < 2 || len(coords) > 3 {
		return geom.Point3D{}, fmt.Errorf("%s: %d coordinates: %w", e, len(coords), ErrMalformed)
	}
	var v [3]float64
	for i, text := range coords {
		if v[i], err = x.number(e, text); err != nil {
			return geom.Point3D{}, err
		}
	}
	return geom.NewPoint3D(v[0], v[1], v[2]), nil
}

// points converts every point referenced by attr.
func (x *Extractor) points(e *model.Entity, attr string) ([]geom.Point3D, error) {
	refs, err := e.Refs(attr)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Point3D, 0, len(refs))
	for _, ref := range refs {
		p, err := x.point(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// location returns Position.Location of e, or the origin when e has no Position.
func (x *Extractor) location(e *model.Entity) (geom.Point3D, error) {
	if !e.Has("Position") {
		return geom.Point3D{}, nil
	}
	placement, err := e.Ref("Position")
	if err != nil {
		return geom.Point3D{}, err
	}
	loc, err := placement.Ref("Location")
	if err != nil {
		return geom.Point3D{}, err
	}
	return x.point(loc)
}

// number parses a numeric attribute text. NaN is rejected.
func (x *Extractor) number(e *model.Entity, text string) (float64, error) {
	v, err := geom.ParseNumber(text)
	if err != nil {
		x.logger.Error("unparsable number", zap.Stringer("entity", e), zap.String("text", text), zap.Error(err))
		return v, fmt.Errorf("%s: %w: %v", e, ErrMalformed, err)
	}
	if math.IsNaN(v) {
		x.logger.Error("number is NaN", zap.Stringer("entity", e), zap.String("text", text))
		return v, fmt.Errorf("%s: %w: NaN", e, ErrMalformed)
	}
	return v, nil
}

// scalarNumber parses the numeric scalar attribute attr of e.
func (x *Extractor) scalarNumber(e *model.Entity, attr string) (float64, error) {
	text, err := e.Scalar(attr)
	if err != nil {
		return 0, err
	}
	return x.number(e, text)
}
