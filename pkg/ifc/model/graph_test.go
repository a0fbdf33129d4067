package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceBIM/internal/ifctest"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/step"
)

var wallData = []string{
	"#1=IFCCARTESIANPOINT((10.,10.,0.));",
	"#2=IFCAXIS2PLACEMENT3D(#1,$,$);",
	"#3=IFCRECTANGLEPROFILEDEF(.AREA.,$,$,4.,2.);",
	"#4=IFCDIRECTION((0.,0.,1.));",
	"#5=IFCEXTRUDEDAREASOLID(#3,#2,#4,IFCPOSITIVELENGTHMEASURE(3.));",
	"#6=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#5));",
	"#7=IFCPRODUCTDEFINITIONSHAPE($,$,(#6));",
	"#8=IFCWALLSTANDARDCASE('0abc',$,'Wall',$,$,$,#7,$);",
	"#9=IfcWall('0def',$,'Other',$,$,$,$,$);",
	"#10=ifcpolyline((#1));",
	"#11=IFCUNKNOWNTHING(1);",
	"#12=(IFCNAMEDUNIT(*,.LENGTHUNIT.)IFCSIUNIT(.MILLI.,.METRE.));",
}

func TestNewGraphResolvesTypes(t *testing.T) {
	g := ifctest.Graph(t, wallData...)
	assert.Equal(t, 12, g.Len())
	assert.Equal(t, []string{"IFC4"}, g.Schemas())

	tests := []struct {
		id       uint64
		raw      string
		wantType string
	}{
		{5, "IFCEXTRUDEDAREASOLID", "IfcExtrudedAreaSolid"},
		{9, "IfcWall", "IfcWall"},
		{10, "ifcpolyline", "IfcPolyline"},
		{11, "IFCUNKNOWNTHING", ""},
		{12, "IFCNAMEDUNIT", ""},
	}
	for _, tt := range tests {
		e := ifctest.Entity(t, g, tt.id)
		assert.Equal(t, tt.raw, e.RawType)
		assert.Equal(t, tt.wantType, e.Type)
	}
	assert.True(t, ifctest.Entity(t, g, 12).Complex)
}

func TestNewGraphDuplicateID(t *testing.T) {
	parser, err := step.NewParser()
	require.NoError(t, err)
	file, err := parser.Parse("dup.ifc", strings.NewReader(ifctest.File(
		"#1=IFCCARTESIANPOINT((0.,0.));",
		"#1=IFCCARTESIANPOINT((1.,0.));",
	)))
	require.NoError(t, err)

	_, err = model.NewGraph(file)
	require.ErrorIs(t, err, model.ErrDuplicateID)
	assert.ErrorContains(t, err, "dup.ifc:9:", "the second declaration is reported with its position")
}

func TestInstancesOfType(t *testing.T) {
	g := ifctest.Graph(t, wallData...)

	walls := g.InstancesOfType("IfcWall")
	require.Len(t, walls, 2, "subtypes are included")
	assert.Equal(t, uint64(8), walls[0].ID)

	assert.Len(t, g.InstancesOfType("IfcWallStandardCase"), 1)
	assert.Len(t, g.InstancesOfType("IfcSweptAreaSolid"), 1)
	assert.Len(t, g.InstancesOfType("IFCWALL"), 0, "raw spelling matches declared text only")
	assert.Len(t, g.InstancesOfType("IFCUNKNOWNTHING"), 1)
	assert.Empty(t, g.InstancesOfType("IFCNAMEDUNIT"), "complex instances are never members")
}

func TestIsA(t *testing.T) {
	g := ifctest.Graph(t, wallData...)
	wall := ifctest.Entity(t, g, 8)
	solid := ifctest.Entity(t, g, 5)

	assert.True(t, g.IsA(wall, "IfcWall"))
	assert.True(t, g.IsA(wall, "IFCWALL"))
	assert.True(t, g.IsA(wall, "ifcwall"))
	assert.False(t, g.IsA(wall, "IFCWall"), "only three spellings are tolerated")
	assert.True(t, g.IsA(wall, "IfcProduct"))
	assert.True(t, g.IsA(solid, "IfcSolidModel"))
	assert.False(t, g.IsA(solid, "IfcFacetedBrep"))
	assert.True(t, g.IsA(ifctest.Entity(t, g, 11), "IfcUnknownThing"))
	assert.False(t, g.IsA(nil, "IfcWall"))
}

func TestAttributes(t *testing.T) {
	g := ifctest.Graph(t, wallData...)
	solid := ifctest.Entity(t, g, 5)

	depth, err := solid.Scalar("Depth")
	require.NoError(t, err, "typed values are unwrapped")
	assert.Equal(t, "3.", depth)

	profile, err := solid.Ref("SweptArea")
	require.NoError(t, err)
	assert.Equal(t, "IfcRectangleProfileDef", profile.Type)

	kind, err := profile.Scalar("ProfileType")
	require.NoError(t, err)
	assert.Equal(t, ".AREA.", kind)
	assert.False(t, profile.Has("Position"))

	_, err = profile.Ref("Position")
	assert.ErrorIs(t, err, model.ErrMissingAttribute)

	_, err = solid.Scalar("NoSuchAttribute")
	assert.ErrorIs(t, err, model.ErrMissingAttribute)

	_, err = solid.Scalar("SweptArea")
	assert.ErrorIs(t, err, model.ErrWrongShape)

	point := ifctest.Entity(t, g, 1)
	coords, err := point.Scalars("Coordinates")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.", "10.", "0."}, coords)

	rep := ifctest.Entity(t, g, 6)
	items, err := rep.Refs("Items")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint64(5), items[0].ID)
	assert.Equal(t, "Body", rep.Text("RepresentationIdentifier"))

	_, err = rep.Refs("RepresentationType")
	assert.ErrorIs(t, err, model.ErrWrongShape)

	wall := ifctest.Entity(t, g, 8)
	assert.Equal(t, "Wall", wall.Text("Name"), "attributes inherited from IfcProduct")
	shape, err := wall.Ref("Representation")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), shape.ID)
}

func TestDanglingReference(t *testing.T) {
	g := ifctest.Graph(t, "#1=IFCPOLYLINE((#2,#3));", "#2=IFCCARTESIANPOINT((0.,0.));")
	_, err := ifctest.Entity(t, g, 1).Refs("Points")
	assert.ErrorIs(t, err, model.ErrDanglingReference)
}

func TestCanonical(t *testing.T) {
	for _, in := range []string{"IfcBooleanClippingResult", "ifcbooleanclippingresult", "IFCBOOLEANCLIPPINGRESULT"} {
		got, ok := model.Canonical(in)
		require.True(t, ok, in)
		assert.Equal(t, "IfcBooleanClippingResult", got)
	}
	_, ok := model.Canonical("IfcBooleanCLIPPINGResult")
	assert.False(t, ok)

	assert.True(t, model.IsSubtype("IfcTriangulatedFaceSet", "IfcTessellatedItem"))
	assert.False(t, model.IsSubtype("IfcTessellatedItem", "IfcTriangulatedFaceSet"))
	assert.True(t, model.IsSubtype("IfcBooleanClippingResult", "IfcBooleanResult"))
}

func TestTypeCounts(t *testing.T) {
	g := ifctest.Graph(t, wallData...)
	counts := g.TypeCounts()
	assert.Equal(t, 1, counts["IfcWallStandardCase"])
	assert.Equal(t, 1, counts["IFCUNKNOWNTHING"])

	sorted := model.SortedTypes(map[string]int{"b": 1, "a": 1, "c": 5})
	assert.Equal(t, []string{"c", "a", "b"}, sorted)
}
