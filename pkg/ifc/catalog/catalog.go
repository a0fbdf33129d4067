// Package catalog holds the IFC shape-representation reference data: the
// representation identifiers and types of IfcShapeRepresentation, and for each
// representation type the closed set of item types the standard permits.
//
// Every item list is ordered most-specific first. Classification tests
// membership including schema subtypes and takes the first match, so a
// supertype must never precede one of its own subtypes.
package catalog

import "strings"

// RepresentationIdentifier is the semantic role of a shape representation.
type RepresentationIdentifier int

const (
	IdentifierCoG RepresentationIdentifier = iota
	IdentifierBox
	IdentifierAnnotation
	IdentifierAxis
	IdentifierFootPrint
	IdentifierProfile
	IdentifierSurface
	IdentifierReference
	IdentifierBody
	IdentifierBodyFallback
	IdentifierClearance
	IdentifierLighting
)

var identifierNames = [...]string{
	IdentifierCoG:          "CoG",
	IdentifierBox:          "Box",
	IdentifierAnnotation:   "Annotation",
	IdentifierAxis:         "Axis",
	IdentifierFootPrint:    "FootPrint",
	IdentifierProfile:      "Profile",
	IdentifierSurface:      "Surface",
	IdentifierReference:    "Reference",
	IdentifierBody:         "Body",
	IdentifierBodyFallback: "Body-FallBack",
	IdentifierClearance:    "Clearance",
	IdentifierLighting:     "Lighting",
}

func (i RepresentationIdentifier) String() string {
	if i < 0 || int(i) >= len(identifierNames) {
		return "Unknown"
	}
	return identifierNames[i]
}

// Identifiers returns every representation identifier in declaration order.
func Identifiers() []RepresentationIdentifier {
	out := make([]RepresentationIdentifier, len(identifierNames))
	for i := range identifierNames {
		out[i] = RepresentationIdentifier(i)
	}
	return out
}

// ParseIdentifier matches text against the identifier names as written, in
// lowercase and in uppercase. The first identifier with a matching tag wins.
func ParseIdentifier(text string) (RepresentationIdentifier, bool) {
	for i, name := range identifierNames {
		if matchesTag(name, text) {
			return RepresentationIdentifier(i), true
		}
	}
	return 0, false
}

// RepresentationType is the geometric modeling paradigm of a shape representation.
type RepresentationType int

const (
	TypePoint RepresentationType = iota
	TypePointCloud
	TypeCurve
	TypeCurve2D
	TypeCurve3D
	TypeSegment
	TypeSurface
	TypeSurface2D
	TypeSurface3D
	TypeFillArea
	TypeText
	TypeAdvancedSurface
	TypeGeometricSet
	TypeGeometricCurveSet
	TypeAnnotation2D
	TypeSurfaceModel
	TypeTessellation
	TypeBrep
	TypeAdvancedBrep
	TypeSweptSolid
	TypeAdvancedSweptSolid
	TypeCSG
	TypeClipping
	TypeBoundingBox
	TypeSectionedSpine
	TypeLightSource
	TypeMappedRepresentation
)

var typeNames = [...]string{
	TypePoint:                "Point",
	TypePointCloud:           "PointCloud",
	TypeCurve:                "Curve",
	TypeCurve2D:              "Curve2D",
	TypeCurve3D:              "Curve3D",
	TypeSegment:              "Segment",
	TypeSurface:              "Surface",
	TypeSurface2D:            "Surface2D",
	TypeSurface3D:            "Surface3D",
	TypeFillArea:             "FillArea",
	TypeText:                 "Text",
	TypeAdvancedSurface:      "AdvancedSurface",
	TypeGeometricSet:         "GeometricSet",
	TypeGeometricCurveSet:    "GeometricCurveSet",
	TypeAnnotation2D:         "Annotation2D",
	TypeSurfaceModel:         "SurfaceModel",
	TypeTessellation:         "Tessellation",
	TypeBrep:                 "Brep",
	TypeAdvancedBrep:         "AdvancedBrep",
	TypeSweptSolid:           "SweptSolid",
	TypeAdvancedSweptSolid:   "AdvancedSweptSolid",
	TypeCSG:                  "CSG",
	TypeClipping:             "Clipping",
	TypeBoundingBox:          "BoundingBox",
	TypeSectionedSpine:       "SectionedSpine",
	TypeLightSource:          "LightSource",
	TypeMappedRepresentation: "MappedRepresentation",
}

func (t RepresentationType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// Types returns every representation type in declaration order.
func Types() []RepresentationType {
	out := make([]RepresentationType, len(typeNames))
	for i := range typeNames {
		out[i] = RepresentationType(i)
	}
	return out
}

// ParseType matches text against the type names as written, in lowercase
// and in uppercase. The first type with a matching tag wins.
func ParseType(text string) (RepresentationType, bool) {
	for i, name := range typeNames {
		if matchesTag(name, text) {
			return RepresentationType(i), true
		}
	}
	return 0, false
}

// Tags returns the spellings a name is recognized under.
func Tags(name string) []string {
	return []string{name, strings.ToLower(name), strings.ToUpper(name)}
}

func matchesTag(name, text string) bool {
	for _, tag := range Tags(name) {
		if tag == text {
			return true
		}
	}
	return false
}

// Item type names, in schema spelling.
const (
	IfcAdvancedBrep              = "IfcAdvancedBrep"
	IfcFacetedBrep               = "IfcFacetedBrep"
	IfcSweptDiskSolid            = "IfcSweptDiskSolid"
	IfcSweptDiskSolidPolygonal   = "IfcSweptDiskSolidPolygonal"
	IfcBooleanResult             = "IfcBooleanResult"
	IfcBooleanClippingResult     = "IfcBooleanClippingResult"
	IfcCsgSolid                  = "IfcCsgSolid"
	IfcCsgPrimitive3D            = "IfcCsgPrimitive3D"
	IfcTessellatedFaceSet        = "IfcTessellatedFaceSet"
	IfcTessellatedItem           = "IfcTessellatedItem"
	IfcShellBasedSurfaceModel    = "IfcShellBasedSurfaceModel"
	IfcFaceBasedSurfaceModel     = "IfcFaceBasedSurfaceModel"
	IfcPolyline                  = "IfcPolyline"
	IfcBoundedCurve              = "IfcBoundedCurve"
	IfcCompositeCurve            = "IfcCompositeCurve"
	IfcTrimmedCurve              = "IfcTrimmedCurve"
	IfcBSplineCurve              = "IfcBSplineCurve"
	IfcIndexedPolyCurve          = "IfcIndexedPolyCurve"
	IfcExtrudedAreaSolid         = "IfcExtrudedAreaSolid"
	IfcRevolvedAreaSolid         = "IfcRevolvedAreaSolid"
	IfcBoundingBox               = "IfcBoundingBox"
	IfcMappedItem                = "IfcMappedItem"
	IfcSolidModel                = "IfcSolidModel"
	IfcHalfSpaceSolid            = "IfcHalfSpaceSolid"
	IfcPolygonalBoundedHalfSpace = "IfcPolygonalBoundedHalfSpace"
	IfcPolyLoop                  = "IfcPolyLoop"
	IfcEdgeLoop                  = "IfcEdgeLoop"
	IfcVertexLoop                = "IfcVertexLoop"
	IfcRectangleProfileDef       = "IfcRectangleProfileDef"
	IfcArbitraryClosedProfileDef = "IfcArbitraryClosedProfileDef"
	IfcArbitraryOpenProfileDef   = "IfcArbitraryOpenProfileDef"
	IfcCircleProfileDef          = "IfcCircleProfileDef"
	IfcEllipseProfileDef         = "IfcEllipseProfileDef"
	IfcIShapeProfileDef          = "IfcIShapeProfileDef"
	IfcLShapeProfileDef          = "IfcLShapeProfileDef"
	IfcCompositeProfileDef       = "IfcCompositeProfileDef"
	IfcDerivedProfileDef         = "IfcDerivedProfileDef"
)

var itemTypes = map[RepresentationType][]string{
	TypeBrep:                 {IfcFacetedBrep},
	TypeAdvancedBrep:         {IfcAdvancedBrep, IfcFacetedBrep},
	TypeAdvancedSweptSolid:   {IfcSweptDiskSolidPolygonal, IfcSweptDiskSolid},
	TypeCSG:                  {IfcBooleanResult, IfcCsgSolid, IfcCsgPrimitive3D},
	TypeTessellation:         {IfcTessellatedFaceSet},
	TypeClipping:             {IfcBooleanClippingResult},
	TypeCurve2D:              {IfcPolyline, IfcBoundedCurve},
	TypeCurve3D:              {IfcPolyline, IfcBoundedCurve},
	TypeSurfaceModel:         {IfcTessellatedItem, IfcShellBasedSurfaceModel, IfcFaceBasedSurfaceModel, IfcFacetedBrep},
	TypeSweptSolid:           {IfcExtrudedAreaSolid, IfcRevolvedAreaSolid},
	TypeBoundingBox:          {IfcBoundingBox},
	TypeMappedRepresentation: {IfcMappedItem},
}

// ItemTypes returns the permitted item types for a representation type. The
// second result is false when the catalog has no item universe for t.
func ItemTypes(t RepresentationType) ([]string, bool) {
	items, ok := itemTypes[t]
	if !ok {
		return nil, false
	}
	return append([]string(nil), items...), true
}

// BooleanOperandTypes lists the operand types of IfcBooleanResult.
func BooleanOperandTypes() []string {
	return []string{
		IfcBooleanClippingResult,
		IfcBooleanResult,
		IfcPolygonalBoundedHalfSpace,
		IfcHalfSpaceSolid,
		IfcExtrudedAreaSolid,
		IfcFacetedBrep,
		IfcCsgPrimitive3D,
		IfcSolidModel,
	}
}

// LoopTypes lists the subtypes of IfcLoop.
func LoopTypes() []string {
	return []string{IfcPolyLoop, IfcEdgeLoop, IfcVertexLoop}
}

// ProfileDefTypes lists the profile definitions a swept area may use.
func ProfileDefTypes() []string {
	return []string{
		IfcRectangleProfileDef,
		IfcCircleProfileDef,
		IfcEllipseProfileDef,
		IfcIShapeProfileDef,
		IfcLShapeProfileDef,
		IfcArbitraryClosedProfileDef,
		IfcArbitraryOpenProfileDef,
		IfcCompositeProfileDef,
		IfcDerivedProfileDef,
	}
}

// BoundedCurveTypes lists the subtypes of IfcBoundedCurve.
func BoundedCurveTypes() []string {
	return []string{IfcPolyline, IfcCompositeCurve, IfcTrimmedCurve, IfcBSplineCurve, IfcIndexedPolyCurve}
}

// BooleanOperator is the operator of an IfcBooleanResult.
type BooleanOperator int

const (
	OperatorUnion BooleanOperator = iota
	OperatorIntersection
	OperatorDifference
)

var operatorNames = [...]string{
	OperatorUnion:        "UNION",
	OperatorIntersection: "INTERSECTION",
	OperatorDifference:   "DIFFERENCE",
}

func (o BooleanOperator) String() string {
	if o < 0 || int(o) >= len(operatorNames) {
		return "Unknown"
	}
	return operatorNames[o]
}

// ParseBooleanOperator maps enumeration text (".DIFFERENCE." or "DIFFERENCE") to an operator.
func ParseBooleanOperator(text string) (BooleanOperator, bool) {
	if len(text) >= 2 && text[0] == '.' && text[len(text)-1] == '.' {
		text = text[1 : len(text)-1]
	}
	for i, name := range operatorNames {
		if name == text {
			return BooleanOperator(i), true
		}
	}
	return 0, false
}
