package model

import "strings"

// attributeNames maps an entity type to its explicit attributes in declaration
// order. Types without an entry inherit the attribute list of their supertype.
// Only the entities the shape engine reads are listed.
var attributeNames = map[string][]string{
	"IfcCartesianPoint":       {"Coordinates"},
	"IfcCartesianPointList2D": {"CoordList"},
	"IfcCartesianPointList3D": {"CoordList"},
	"IfcDirection":            {"DirectionRatios"},
	"IfcAxis2Placement2D":     {"Location", "RefDirection"},
	"IfcAxis2Placement3D":     {"Location", "Axis", "RefDirection"},
	"IfcLocalPlacement":       {"PlacementRelTo", "RelativePlacement"},

	"IfcShapeRepresentation":    {"ContextOfItems", "RepresentationIdentifier", "RepresentationType", "Items"},
	"IfcProductDefinitionShape": {"Name", "Description", "Representations"},
	"IfcRepresentationMap":      {"MappingOrigin", "MappedRepresentation"},
	"IfcMappedItem":             {"MappingSource", "MappingTarget"},

	"IfcManifoldSolidBrep":      {"Outer"},
	"IfcClosedShell":            {"CfsFaces"},
	"IfcOpenShell":              {"CfsFaces"},
	"IfcFace":                   {"Bounds"},
	"IfcFaceBound":              {"Bound", "Orientation"},
	"IfcPolyLoop":               {"Polygon"},
	"IfcEdgeLoop":               {"EdgeList"},
	"IfcVertexLoop":             {"LoopVertex"},
	"IfcShellBasedSurfaceModel": {"SbsmBoundary"},
	"IfcFaceBasedSurfaceModel":  {"FbsmFaces"},
	"IfcTriangulatedFaceSet":    {"Coordinates", "Normals", "Closed", "CoordIndex", "PnIndex"},
	"IfcPolygonalFaceSet":       {"Coordinates", "Closed", "Faces", "PnIndex"},

	"IfcExtrudedAreaSolid":       {"SweptArea", "Position", "ExtrudedDirection", "Depth"},
	"IfcRevolvedAreaSolid":       {"SweptArea", "Position", "Axis", "Angle"},
	"IfcSweptDiskSolid":          {"Directrix", "Radius", "InnerRadius", "StartParam", "EndParam"},
	"IfcSweptDiskSolidPolygonal": {"Directrix", "Radius", "InnerRadius", "StartParam", "EndParam", "FilletRadius"},

	"IfcRectangleProfileDef":          {"ProfileType", "ProfileName", "Position", "XDim", "YDim"},
	"IfcCircleProfileDef":             {"ProfileType", "ProfileName", "Position", "Radius"},
	"IfcArbitraryClosedProfileDef":    {"ProfileType", "ProfileName", "OuterCurve"},
	"IfcArbitraryProfileDefWithVoids": {"ProfileType", "ProfileName", "OuterCurve", "InnerCurves"},

	"IfcPolyline":         {"Points"},
	"IfcCompositeCurve":   {"Segments", "SelfIntersect"},
	"IfcIndexedPolyCurve": {"Points", "Segments", "SelfIntersect"},

	"IfcBooleanResult":             {"Operator", "FirstOperand", "SecondOperand"},
	"IfcHalfSpaceSolid":            {"BaseSurface", "AgreementFlag"},
	"IfcPolygonalBoundedHalfSpace": {"BaseSurface", "AgreementFlag", "Position", "PolygonalBoundary"},
	"IfcBoxedHalfSpace":            {"BaseSurface", "AgreementFlag", "Enclosure"},
	"IfcCsgSolid":                  {"TreeRootExpression"},
	"IfcBlock":                     {"Position", "XLength", "YLength", "ZLength"},
	"IfcBoundingBox":               {"Corner", "XDim", "YDim", "ZDim"},

	"IfcProduct": {"GlobalId", "OwnerHistory", "Name", "Description", "ObjectType", "ObjectPlacement", "Representation"},
}

// supertypes maps an entity type to its direct supertype.
var supertypes = map[string]string{
	"IfcPolyline":              "IfcBoundedCurve",
	"IfcCompositeCurve":        "IfcBoundedCurve",
	"IfcTrimmedCurve":          "IfcBoundedCurve",
	"IfcBSplineCurve":          "IfcBoundedCurve",
	"IfcIndexedPolyCurve":      "IfcBoundedCurve",
	"IfcBoundedCurve":          "IfcCurve",
	"IfcBSplineCurveWithKnots": "IfcBSplineCurve",

	"IfcFacetedBrep":             "IfcManifoldSolidBrep",
	"IfcAdvancedBrep":            "IfcManifoldSolidBrep",
	"IfcManifoldSolidBrep":       "IfcSolidModel",
	"IfcExtrudedAreaSolid":       "IfcSweptAreaSolid",
	"IfcRevolvedAreaSolid":       "IfcSweptAreaSolid",
	"IfcSweptAreaSolid":          "IfcSolidModel",
	"IfcSweptDiskSolidPolygonal": "IfcSweptDiskSolid",
	"IfcSweptDiskSolid":          "IfcSolidModel",
	"IfcCsgSolid":                "IfcSolidModel",

	"IfcPolygonalBoundedHalfSpace": "IfcHalfSpaceSolid",
	"IfcBoxedHalfSpace":            "IfcHalfSpaceSolid",
	"IfcBooleanClippingResult":     "IfcBooleanResult",

	"IfcBlock":                 "IfcCsgPrimitive3D",
	"IfcSphere":                "IfcCsgPrimitive3D",
	"IfcRightCircularCone":     "IfcCsgPrimitive3D",
	"IfcRightCircularCylinder": "IfcCsgPrimitive3D",
	"IfcRectangularPyramid":    "IfcCsgPrimitive3D",

	"IfcTriangulatedFaceSet": "IfcTessellatedFaceSet",
	"IfcPolygonalFaceSet":    "IfcTessellatedFaceSet",
	"IfcTessellatedFaceSet":  "IfcTessellatedItem",

	"IfcFaceOuterBound": "IfcFaceBound",
	"IfcPolyLoop":       "IfcLoop",
	"IfcEdgeLoop":       "IfcLoop",
	"IfcVertexLoop":     "IfcLoop",

	"IfcRectangleProfileDef":          "IfcParameterizedProfileDef",
	"IfcCircleProfileDef":             "IfcParameterizedProfileDef",
	"IfcEllipseProfileDef":            "IfcParameterizedProfileDef",
	"IfcIShapeProfileDef":             "IfcParameterizedProfileDef",
	"IfcLShapeProfileDef":             "IfcParameterizedProfileDef",
	"IfcParameterizedProfileDef":      "IfcProfileDef",
	"IfcArbitraryProfileDefWithVoids": "IfcArbitraryClosedProfileDef",
	"IfcArbitraryClosedProfileDef":    "IfcProfileDef",
	"IfcArbitraryOpenProfileDef":      "IfcProfileDef",
	"IfcCompositeProfileDef":          "IfcProfileDef",
	"IfcDerivedProfileDef":            "IfcProfileDef",

	"IfcWallStandardCase":        "IfcWall",
	"IfcWall":                    "IfcBuildingElement",
	"IfcColumn":                  "IfcBuildingElement",
	"IfcDoor":                    "IfcBuildingElement",
	"IfcWindow":                  "IfcBuildingElement",
	"IfcSlab":                    "IfcBuildingElement",
	"IfcBeam":                    "IfcBuildingElement",
	"IfcStair":                   "IfcBuildingElement",
	"IfcStairFlight":             "IfcBuildingElement",
	"IfcBuildingElement":         "IfcProduct",
	"IfcSite":                    "IfcSpatialStructureElement",
	"IfcBuilding":                "IfcSpatialStructureElement",
	"IfcBuildingStorey":          "IfcSpatialStructureElement",
	"IfcSpace":                   "IfcSpatialStructureElement",
	"IfcSpatialStructureElement": "IfcProduct",
}

// extraTypes are known types that appear in neither table.
var extraTypes = []string{
	"IfcGeometricRepresentationContext",
	"IfcGeometricRepresentationSubContext",
	"IfcOwnerHistory",
	"IfcProject",
}

// canonicalNames maps the as-written, lowercase and uppercase spelling of every
// known type to its schema spelling.
var canonicalNames = buildCanonicalNames()

func buildCanonicalNames() map[string]string {
	names := make(map[string]string)
	add := func(name string) {
		for _, variant := range caseVariants(name) {
			names[variant] = name
		}
	}
	for name := range attributeNames {
		add(name)
	}
	for child, parent := range supertypes {
		add(child)
		add(parent)
	}
	for _, name := range extraTypes {
		add(name)
	}
	return names
}

func caseVariants(name string) [3]string {
	return [3]string{name, strings.ToLower(name), strings.ToUpper(name)}
}

// Canonical returns the schema spelling of a type name written as-is, in
// lowercase or in uppercase. Mixed spellings other than the schema's own are
// not recognized.
func Canonical(name string) (string, bool) {
	c, ok := canonicalNames[name]
	return c, ok
}

// IsSubtype reports whether child equals parent or derives from it.
// Both names must be canonical.
func IsSubtype(child, parent string) bool {
	for t := child; t != ""; t = supertypes[t] {
		if t == parent {
			return true
		}
	}
	return false
}

// AttributeIndex returns the position of a named explicit attribute of a
// canonical type, searching supertypes for inherited attribute lists.
func AttributeIndex(typeName, attr string) (int, bool) {
	for t := typeName; t != ""; t = supertypes[t] {
		names, ok := attributeNames[t]
		if !ok {
			continue
		}
		for i, n := range names {
			if n == attr {
				return i, true
			}
		}
		return 0, false
	}
	return 0, false
}
