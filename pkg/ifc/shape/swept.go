package shape

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// extrudedAreaSolid returns the footprint of the swept profile placed at the
// solid's local origin. Only translation is applied.
func (x *Extractor) extrudedAreaSolid(item *model.Entity) ([]geom.Point3D, error) {
	origin, err := x.location(item)
	if err != nil {
		return nil, err
	}
	profile, err := item.Ref("SweptArea")
	if err != nil {
		return nil, err
	}
	profileType, ok := x.ident.ProfileType(profile)
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", profile, ErrUnclassified)
	}
	switch profileType {
	case catalog.IfcRectangleProfileDef:
		return x.rectangleProfile(profile, origin)
	case catalog.IfcArbitraryClosedProfileDef:
		return x.arbitraryClosedProfile(profile, origin)
	}
	return nil, fmt.Errorf("profile %s (%s): %w", profile, profileType, ErrNotImplemented)
}

// rectangleProfile returns the closed ring of an IfcRectangleProfileDef
// centered at origin plus the profile's own position.
func (x *Extractor) rectangleProfile(profile *model.Entity, origin geom.Point3D) ([]geom.Point3D, error) {
	xDim, err := x.scalarNumber(profile, "XDim")
	if err != nil {
		return nil, err
	}
	yDim, err := x.scalarNumber(profile, "YDim")
	if err != nil {
		return nil, err
	}
	offset, err := x.location(profile)
	if err != nil {
		return nil, err
	}
	cx, cy := origin.X()+offset.X(), origin.Y()+offset.Y()
	hx, hy := xDim/2, yDim/2
	return []geom.Point3D{
		geom.NewPoint3D(cx-hx, cy-hy, 0),
		geom.NewPoint3D(cx+hx, cy-hy, 0),
		geom.NewPoint3D(cx+hx, cy+hy, 0),
		geom.NewPoint3D(cx-hx, cy+hy, 0),
		geom.NewPoint3D(cx-hx, cy-hy, 0),
	}, nil
}

// arbitraryClosedProfile supports .AREA. profiles bounded by an IfcPolyline.
func (x *Extractor) arbitraryClosedProfile(profile *model.Entity, origin geom.Point3D) ([]geom.Point3D, error) {
	kind, err := profile.Scalar("ProfileType")
	if err != nil {
		return nil, err
	}
	if kind != ".AREA." {
		return nil, fmt.Errorf("profile %s type %s: %w", profile, kind, ErrNotImplemented)
	}
	curve, err := profile.Ref("OuterCurve")
	if err != nil {
		return nil, err
	}
	if !x.ident.IsPolyline(curve) {
		return nil, fmt.Errorf("outer curve %s: %w", curve, ErrNotImplemented)
	}
	return x.translatedPolyline(curve, origin)
}
