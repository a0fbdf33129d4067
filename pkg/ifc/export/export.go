// Package export converts extraction results into GeoJSON features.
package export

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/importer"
)

// FeatureCollection converts every result with points into a feature.
// Failed and empty results are skipped. The collection bbox is the 2D
// footprint of Extent.
func FeatureCollection(results []importer.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		if f := Feature(r); f != nil {
			fc.Append(f)
		}
	}
	if extent := Extent(results); !extent.IsEmpty() {
		fc.BBox = geojson.BBox{extent.Min.X(), extent.Min.Y(), extent.Max.X(), extent.Max.Y()}
	}
	return fc
}

// Extent returns the 3D bounds of every successful result.
func Extent(results []importer.Result) geom.Bounds {
	extent := geom.NewBounds()
	for _, r := range results {
		if r.Err == nil {
			extent.ExpandBox(geom.BoundsOf(r.Points))
		}
	}
	return extent
}

// Feature converts one result, or returns nil when it carries no geometry.
func Feature(r importer.Result) *geojson.Feature {
	if r.Err != nil || r.Representation == nil {
		return nil
	}
	ident, _ := r.Identity.Identifier()
	typ, _ := r.Identity.Type()
	geometry := Geometry(ident, r.Points)
	if geometry == nil {
		return nil
	}

	f := geojson.NewFeature(geometry)
	f.ID = fmt.Sprintf("#%d", r.Representation.ID)
	f.BBox = geojson.NewBBox(geometry.Bound())

	bounds := geom.BoundsOf(r.Points)
	f.Properties["global_id"] = r.Product.Entity.Text("GlobalId")
	f.Properties["name"] = r.Product.Entity.Text("Name")
	f.Properties["category"] = r.Product.Category.String()
	f.Properties["representation"] = f.ID
	f.Properties["identifier"] = ident.String()
	f.Properties["type"] = typ.String()
	f.Properties["points"] = countPoints(r.Points)
	f.Properties["min_z"] = bounds.Min.Z()
	f.Properties["max_z"] = bounds.Max.Z()
	return f
}

// Geometry builds an orb geometry from a flattened point sequence. Loops of
// Axis and FootPrint representations become lines. Other loops become closed
// polygons when they have at least three points and lines otherwise.
func Geometry(ident catalog.RepresentationIdentifier, points []geom.Point3D) orb.Geometry {
	loops := geom.SplitLoops(points)
	if len(loops) == 0 {
		return nil
	}
	asLines := ident == catalog.IdentifierAxis || ident == catalog.IdentifierFootPrint

	var polygons orb.MultiPolygon
	var lines orb.MultiLineString
	for _, loop := range loops {
		if asLines || len(loop) < 3 {
			lines = append(lines, lineString(loop))
			continue
		}
		polygons = append(polygons, orb.Polygon{ring(loop)})
	}

	switch {
	case len(lines) == 0 && len(polygons) == 1:
		return polygons[0]
	case len(lines) == 0:
		return polygons
	case len(polygons) == 0 && len(lines) == 1:
		return lines[0]
	case len(polygons) == 0:
		return lines
	}
	return orb.Collection{polygons, lines}
}

func lineString(loop []geom.Point3D) orb.LineString {
	ls := make(orb.LineString, 0, len(loop))
	for _, p := range loop {
		ls = append(ls, orb.Point{p.X(), p.Y()})
	}
	return ls
}

func ring(loop []geom.Point3D) orb.Ring {
	r := orb.Ring(lineString(loop))
	if !r.Closed() {
		r = append(r, r[0])
	}
	return r
}

func countPoints(points []geom.Point3D) int {
	n := 0
	for _, p := range points {
		if !p.IsSeparator() {
			n++
		}
	}
	return n
}
