package shape

import (
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// polyline returns the points of an IfcPolyline, optionally flattened to z=0.
func (x *Extractor) polyline(curve *model.Entity, flatten bool) ([]geom.Point3D, error) {
	points, err := x.points(curve, "Points")
	if err != nil {
		return nil, err
	}
	if flatten {
		for i, p := range points {
			points[i] = p.Flatten()
		}
	}
	return points, nil
}

// translatedPolyline returns the polyline points shifted by the x and y of
// origin, with z forced to 0.
func (x *Extractor) translatedPolyline(curve *model.Entity, origin geom.Point3D) ([]geom.Point3D, error) {
	points, err := x.polyline(curve, true)
	if err != nil {
		return nil, err
	}
	for i, p := range points {
		points[i] = p.Translate(origin.X(), origin.Y(), 0)
	}
	return points, nil
}

// boundingBox returns the footprint ring of an IfcBoundingBox, z forced to 0.
func (x *Extractor) boundingBox(box *model.Entity) ([]geom.Point3D, error) {
	cornerRef, err := box.Ref("Corner")
	if err != nil {
		return nil, err
	}
	corner, err := x.point(cornerRef)
	if err != nil {
		return nil, err
	}
	xDim, err := x.scalarNumber(box, "XDim")
	if err != nil {
		return nil, err
	}
	yDim, err := x.scalarNumber(box, "YDim")
	if err != nil {
		return nil, err
	}
	x0, y0 := corner.X(), corner.Y()
	return []geom.Point3D{
		geom.NewPoint3D(x0, y0, 0),
		geom.NewPoint3D(x0+xDim, y0, 0),
		geom.NewPoint3D(x0+xDim, y0+yDim, 0),
		geom.NewPoint3D(x0, y0+yDim, 0),
		geom.NewPoint3D(x0, y0, 0),
	}, nil
}
