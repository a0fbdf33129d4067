package shape_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceBIM/internal/ifctest"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/shape"
)

var pt = geom.NewPoint3D

// extract identifies representation #rep of the graph built from data and
// runs Extract on it.
func extract(t *testing.T, rep uint64, data ...string) ([]geom.Point3D, error) {
	t.Helper()
	g := ifctest.Graph(t, data...)
	x := shape.NewExtractor(g)
	id := x.Identifier().Identify(ifctest.Entity(t, g, rep))
	require.True(t, id.IsResolved(), "representation #%d not resolved", rep)
	return x.Extract(id)
}

var rectangleSolid = []string{
	"#1=IFCCARTESIANPOINT((10.,10.,0.));",
	"#2=IFCAXIS2PLACEMENT3D(#1,$,$);",
	"#3=IFCRECTANGLEPROFILEDEF(.AREA.,$,$,4.,2.);",
	"#4=IFCDIRECTION((0.,0.,1.));",
	"#5=IFCEXTRUDEDAREASOLID(#3,#2,#4,3.);",
	"#6=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#5));",
}

func TestExtrudedRectangle(t *testing.T) {
	points, err := extract(t, 6, rectangleSolid...)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{
		pt(8, 9, 0), pt(12, 9, 0), pt(12, 11, 0), pt(8, 11, 0), pt(8, 9, 0),
	}, points)
}

func TestExtrudedRectangleProfilePosition(t *testing.T) {
	points, err := extract(t, 6,
		"#1=IFCCARTESIANPOINT((10.,10.,0.));",
		"#2=IFCAXIS2PLACEMENT3D(#1,$,$);",
		"#3=IFCRECTANGLEPROFILEDEF(.AREA.,'R',#8,4.,2.);",
		"#4=IFCDIRECTION((0.,0.,1.));",
		"#5=IFCEXTRUDEDAREASOLID(#3,#2,#4,3.);",
		"#6=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#5));",
		"#7=IFCCARTESIANPOINT((1.,-1.));",
		"#8=IFCAXIS2PLACEMENT2D(#7,$);",
	)
	require.NoError(t, err)
	assert.Equal(t, pt(9, 8, 0), points[0])
	assert.Equal(t, pt(13, 10, 0), points[2])
}

func TestExtrudedRectangleWithoutPosition(t *testing.T) {
	points, err := extract(t, 6,
		"#3=IFCRECTANGLEPROFILEDEF(.AREA.,$,$,4.,2.);",
		"#4=IFCDIRECTION((0.,0.,1.));",
		"#5=IFCEXTRUDEDAREASOLID(#3,$,#4,3.);",
		"#6=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#5));",
	)
	require.NoError(t, err)
	assert.Equal(t, pt(-2, -1, 0), points[0])
	assert.Len(t, points, 5)
}

func TestExtrudedArbitraryProfile(t *testing.T) {
	base := []string{
		"#1=IFCCARTESIANPOINT((0.,0.));",
		"#2=IFCCARTESIANPOINT((4.,0.));",
		"#3=IFCCARTESIANPOINT((4.,2.));",
		"#4=IFCPOLYLINE((#1,#2,#3,#1));",
		"#7=IFCCARTESIANPOINT((1.,1.,5.));",
		"#8=IFCAXIS2PLACEMENT3D(#7,$,$);",
		"#9=IFCDIRECTION((0.,0.,1.));",
		"#10=IFCEXTRUDEDAREASOLID(#6,#8,#9,3.);",
		"#11=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#10));",
		"#12=IFCTRIMMEDCURVE($,(),(),.T.,.CARTESIAN.);",
	}

	points, err := extract(t, 11, append(base, "#6=IFCARBITRARYCLOSEDPROFILEDEF(.AREA.,$,#4);")...)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{pt(1, 1, 0), pt(5, 1, 0), pt(5, 3, 0), pt(1, 1, 0)}, points)

	_, err = extract(t, 11, append(base, "#6=IFCARBITRARYCLOSEDPROFILEDEF(.CURVE.,$,#4);")...)
	assert.ErrorIs(t, err, shape.ErrNotImplemented)

	_, err = extract(t, 11, append(base, "#6=IFCARBITRARYCLOSEDPROFILEDEF(.AREA.,$,#12);")...)
	assert.ErrorIs(t, err, shape.ErrNotImplemented)

	_, err = extract(t, 11, append(base, "#6=IFCCIRCLEPROFILEDEF(.AREA.,$,$,1.);")...)
	assert.ErrorIs(t, err, shape.ErrNotImplemented)

	_, err = extract(t, 11, append(base, "#6=IFCDIRECTION((1.,0.));")...)
	assert.ErrorIs(t, err, shape.ErrUnclassified)
}

func brepData(secondLoop string) []string {
	return []string{
		"#1=IFCCARTESIANPOINT((0.,0.,0.));",
		"#2=IFCCARTESIANPOINT((1.,0.,0.));",
		"#3=IFCCARTESIANPOINT((0.,1.,0.));",
		"#4=IFCCARTESIANPOINT((0.,0.,1.));",
		"#5=IFCCARTESIANPOINT((1.,0.,1.));",
		"#6=IFCCARTESIANPOINT((1.,1.,1.));",
		"#7=IFCCARTESIANPOINT((0.,1.,1.));",
		"#10=IFCPOLYLOOP((#1,#2,#3));",
		"#11=IFCFACEOUTERBOUND(#10,.T.);",
		"#12=IFCFACE((#11));",
		secondLoop,
		"#14=IFCFACEBOUND(#13,.T.);",
		"#15=IFCFACE((#14));",
		"#16=IFCCLOSEDSHELL((#12,#15));",
		"#17=IFCFACETEDBREP(#16);",
		"#18=IFCSHAPEREPRESENTATION($,'Body','Brep',(#17));",
	}
}

func TestFacetedBrep(t *testing.T) {
	points, err := extract(t, 18, brepData("#13=IFCPOLYLOOP((#4,#5,#6,#7));")...)
	require.NoError(t, err)
	require.Len(t, points, 9)
	assert.True(t, points[3].IsSeparator())
	assert.True(t, points[8].IsSeparator())
	assert.Equal(t, pt(1, 0, 0), points[1])
	assert.Equal(t, pt(0, 1, 1), points[7])

	loops := geom.SplitLoops(points)
	require.Len(t, loops, 2)
	assert.Len(t, loops[0], 3)
	assert.Len(t, loops[1], 4)
}

func TestFacetedBrepLoopFailures(t *testing.T) {
	_, err := extract(t, 18, brepData("#13=IFCEDGELOOP(());")...)
	assert.ErrorIs(t, err, shape.ErrNotImplemented)

	_, err = extract(t, 18, brepData("#13=IFCCARTESIANPOINT((0.,0.));")...)
	assert.ErrorIs(t, err, shape.ErrUnclassified)

	data := brepData("#13=IFCPOLYLOOP((#4,#5,#19));")
	data = append(data, "#19=IFCCARTESIANPOINT(('abc',1.0));")
	_, err = extract(t, 18, data...)
	assert.ErrorIs(t, err, shape.ErrMalformed)

	_, err = extract(t, 18, brepData("#13=IFCPOLYLOOP((#4,#5,#99));")...)
	assert.ErrorIs(t, err, model.ErrDanglingReference)
}

func clippingData(operator, operand2 string) []string {
	return []string{
		"#1=IFCCARTESIANPOINT((0.,0.));",
		"#2=IFCCARTESIANPOINT((4.,0.));",
		"#3=IFCCARTESIANPOINT((4.,2.));",
		"#4=IFCCARTESIANPOINT((0.,2.));",
		"#5=IFCPOLYLINE((#1,#2,#3,#4,#1));",
		"#6=IFCARBITRARYCLOSEDPROFILEDEF(.AREA.,$,#5);",
		"#7=IFCCARTESIANPOINT((1.,1.,0.));",
		"#8=IFCAXIS2PLACEMENT3D(#7,$,$);",
		"#9=IFCDIRECTION((0.,0.,1.));",
		"#10=IFCEXTRUDEDAREASOLID(#6,#8,#9,3.);",
		"#11=IFCPLANE(#8);",
		"#12=IFCCARTESIANPOINT((1.,0.,0.));",
		"#13=IFCAXIS2PLACEMENT3D(#12,$,$);",
		"#14=IFCCARTESIANPOINT((4.,1.));",
		"#15=IFCCARTESIANPOINT((4.,3.));",
		"#16=IFCPOLYLINE((#14,#15));",
		"#17=IFCPOLYGONALBOUNDEDHALFSPACE(#11,.F.,#13,#16);",
		"#18=IFCBOOLEANCLIPPINGRESULT(.DIFFERENCE.,#10," + operand2 + ");",
		"#19=IFCSHAPEREPRESENTATION($,'Body','Clipping',(#18));",
		"#20=IFCBOOLEANRESULT(" + operator + ",#18,#17);",
		"#21=IFCSHAPEREPRESENTATION($,'Body','CSG',(#20));",
		"#22=IFCBLOCK(#8,1.,1.,1.);",
	}
}

func TestClippingDifference(t *testing.T) {
	points, err := extract(t, 19, clippingData(".DIFFERENCE.", "#17")...)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{pt(1, 1, 0), pt(1, 3, 0), pt(1, 1, 0)}, points)
}

func TestCSGOperators(t *testing.T) {
	points, err := extract(t, 21, clippingData(".DIFFERENCE.", "#17")...)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{pt(1, 1, 0), pt(1, 3, 0), pt(1, 1, 0)}, points)

	for _, op := range []string{".UNION.", ".INTERSECTION."} {
		_, err := extract(t, 21, clippingData(op, "#17")...)
		assert.ErrorIs(t, err, shape.ErrNotImplemented, op)

		// Operand validity does not matter.
		_, err = extract(t, 21, clippingData(op, "#5")...)
		assert.ErrorIs(t, err, shape.ErrNotImplemented, op)
	}

	_, err = extract(t, 21, clippingData(".XOR.", "#17")...)
	assert.ErrorIs(t, err, shape.ErrMalformed)
}

func TestBooleanOperandFailures(t *testing.T) {
	_, err := extract(t, 19, clippingData(".DIFFERENCE.", "#5")...)
	assert.ErrorIs(t, err, shape.ErrUnclassified, "a polyline is not an operand")

	_, err = extract(t, 19, clippingData(".DIFFERENCE.", "#22")...)
	assert.ErrorIs(t, err, shape.ErrNotImplemented, "CSG primitives are not decoded")
}

func TestBooleanNestingLimit(t *testing.T) {
	_, err := extract(t, 2,
		"#1=IFCBOOLEANRESULT(.DIFFERENCE.,#1,#1);",
		"#2=IFCSHAPEREPRESENTATION($,'Body','CSG',(#1));",
	)
	assert.ErrorIs(t, err, shape.ErrMalformed)
}

func TestBooleanSharedOperands(t *testing.T) {
	// Every level uses the previous one as both operands.
	const levels = 30
	data := clippingData(".DIFFERENCE.", "#17")
	for k := 1; k <= levels; k++ {
		prev := 100 + k - 1
		if k == 1 {
			prev = 18
		}
		data = append(data, fmt.Sprintf("#%d=IFCBOOLEANRESULT(.DIFFERENCE.,#%d,#%d);", 100+k, prev, prev))
	}
	data = append(data, fmt.Sprintf("#200=IFCSHAPEREPRESENTATION($,'Body','CSG',(#%d));", 100+levels))

	g := ifctest.Graph(t, data...)
	x := shape.NewExtractor(g)
	id := x.Identifier().Identify(ifctest.Entity(t, g, 200))

	type outcome struct {
		points []geom.Point3D
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		points, err := x.Extract(id)
		done <- outcome{points, err}
	}()

	select {
	case got := <-done:
		require.NoError(t, got.err)
		assert.Empty(t, got.points, "a shape minus itself")
	case <-time.After(10 * time.Second):
		t.Fatal("shared operands are evaluated more than once")
	}
}

func TestDifference(t *testing.T) {
	a := []geom.Point3D{pt(0, 0, 0), pt(1, 0, 0), pt(2, 0, 0)}
	b := []geom.Point3D{pt(1, 0, 0)}

	assert.Equal(t, []geom.Point3D{pt(0, 0, 0), pt(2, 0, 0)}, shape.Difference(a, b))
	assert.Equal(t, a, shape.Difference(a, nil))
	assert.Len(t, a, 3, "operand must not be modified")

	withSep := []geom.Point3D{pt(0, 0, 0), geom.Separator, pt(1, 0, 0)}
	assert.Equal(t, []geom.Point3D{geom.Separator, pt(1, 0, 0)},
		shape.Difference(withSep, []geom.Point3D{pt(0, 0, 0), geom.Separator}))

	x, y := 0.1, 0.2
	near := []geom.Point3D{pt(x+y, 0, 0)}
	assert.Len(t, shape.Difference(near, []geom.Point3D{pt(0.3, 0, 0)}), 1, "exact match only")
}

func TestCoordinates(t *testing.T) {
	axis := func(coords string) []string {
		return []string{
			"#1=IFCCARTESIANPOINT(" + coords + ");",
			"#2=IFCPOLYLINE((#1));",
			"#3=IFCSHAPEREPRESENTATION($,'Axis','Curve2D',(#2));",
		}
	}

	points, err := extract(t, 3, axis("(1.,2.5)")...)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{pt(1, 2.5, 0)}, points)

	points, err = extract(t, 3, axis("(1.,2.5,-3.E-1)")...)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{pt(1, 2.5, -0.3)}, points)

	for _, coords := range []string{"('abc',1.0)", "(1.)", "(1.,2.,3.,4.)", "()", "$"} {
		_, err := extract(t, 3, axis(coords)...)
		assert.Error(t, err, coords)
	}
	_, err = extract(t, 3, axis("('abc',1.0)")...)
	assert.ErrorIs(t, err, shape.ErrMalformed)
}

func TestBoundingBox(t *testing.T) {
	points, err := extract(t, 3,
		"#1=IFCCARTESIANPOINT((1.,2.,-1.));",
		"#2=IFCBOUNDINGBOX(#1,4.,3.,10.);",
		"#3=IFCSHAPEREPRESENTATION($,'Box','BoundingBox',(#2));",
	)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{
		pt(1, 2, 0), pt(5, 2, 0), pt(5, 5, 0), pt(1, 5, 0), pt(1, 2, 0),
	}, points)
}

func TestAggregation(t *testing.T) {
	base := append([]string{
		"#20=IFCREVOLVEDAREASOLID(#3,#2,$,1.57);",
		"#21=IFCCLOSEDSHELL(());",
		"#22=IFCFACETEDBREP(#21);",
		"#23=IFCTRIANGULATEDFACESET($,$,$,(),$);",
	}, rectangleSolid...)

	t.Run("unimplemented items are skipped", func(t *testing.T) {
		points, err := extract(t, 30, append(base, "#30=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#20,#5));")...)
		require.NoError(t, err)
		assert.Len(t, points, 5)
	})
	t.Run("first decoded item wins", func(t *testing.T) {
		points, err := extract(t, 30, append(base, "#30=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#5,#22));")...)
		require.NoError(t, err)
		assert.Len(t, points, 5)
	})
	t.Run("only unimplemented items yield empty", func(t *testing.T) {
		points, err := extract(t, 30, append(base, "#30=IFCSHAPEREPRESENTATION($,'Body','Tessellation',(#23));")...)
		require.NoError(t, err)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})
	t.Run("no items yield empty", func(t *testing.T) {
		points, err := extract(t, 30, append(base, "#30=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',());")...)
		require.NoError(t, err)
		assert.Empty(t, points)
	})
	t.Run("unclassified item poisons the representation", func(t *testing.T) {
		_, err := extract(t, 30, append(base, "#30=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',(#22,#5));")...)
		assert.ErrorIs(t, err, shape.ErrUnclassified)
	})
	t.Run("brep with empty shell", func(t *testing.T) {
		points, err := extract(t, 30, append(base, "#30=IFCSHAPEREPRESENTATION($,'Body','Brep',(#22));")...)
		require.NoError(t, err)
		assert.Empty(t, points)
	})
	t.Run("missing items", func(t *testing.T) {
		_, err := extract(t, 30, append(base, "#30=IFCSHAPEREPRESENTATION($,'Body','SweptSolid',$);")...)
		assert.ErrorIs(t, err, model.ErrMissingAttribute)
	})
}

func TestExtractDispatch(t *testing.T) {
	data := []string{
		"#1=IFCCARTESIANPOINT((0.,0.));",
		"#2=IFCCARTESIANPOINT((3.,0.));",
		"#3=IFCPOLYLINE((#1,#2));",
		"#4=IFCSHAPEREPRESENTATION($,'FootPrint','Curve2D',(#3));",
		"#5=IFCSHAPEREPRESENTATION($,'Annotation','Curve2D',(#3));",
		"#6=IFCSHAPEREPRESENTATION($,'Body-FallBack','Curve2D',(#3));",
		"#7=IFCSHAPEREPRESENTATION($,'Unknown','Curve2D',(#3));",
	}

	points, err := extract(t, 4, data...)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point3D{pt(0, 0, 0), pt(3, 0, 0)}, points)

	_, err = extract(t, 5, data...)
	assert.ErrorIs(t, err, shape.ErrNotImplemented)

	points, err = extract(t, 6, data...)
	require.NoError(t, err, "polylines are not body geometry")
	assert.Empty(t, points)

	g := ifctest.Graph(t, data...)
	x := shape.NewExtractor(g)
	id := x.Identifier().Identify(ifctest.Entity(t, g, 7))
	require.False(t, id.IsResolved())
	for _, fn := range []func(shape.Identity) ([]geom.Point3D, error){x.Extract, x.Body, x.Box, x.Axis} {
		_, err := fn(id)
		assert.ErrorIs(t, err, shape.ErrUnresolved)
	}
}

func TestLoops(t *testing.T) {
	g := ifctest.Graph(t, brepData("#13=IFCPOLYLOOP((#4,#5,#6,#7));")...)
	x := shape.NewExtractor(g)
	loops, err := x.Loops(x.Identifier().Identify(ifctest.Entity(t, g, 18)))
	require.NoError(t, err)
	require.Len(t, loops, 2)
	assert.Equal(t, pt(0, 0, 1), loops[1][0])
}

type recorder struct {
	mu           sync.Mutex
	classified   map[string]int
	unclassified int
	extracted    []int
	failed       int
}

func (r *recorder) ItemClassified(_ catalog.RepresentationType, itemType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.classified == nil {
		r.classified = make(map[string]int)
	}
	r.classified[itemType]++
}

func (r *recorder) ItemUnclassified(shape.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unclassified++
}

func (r *recorder) Extracted(_ catalog.RepresentationIdentifier, points int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed++
		return
	}
	r.extracted = append(r.extracted, points)
}

func TestObserverConcurrent(t *testing.T) {
	g := ifctest.Graph(t, rectangleSolid...)
	rec := &recorder{}
	x := shape.NewExtractor(g, shape.WithObserver(rec))
	id := x.Identifier().Identify(ifctest.Entity(t, g, 6))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			points, err := x.Body(id)
			assert.NoError(t, err)
			assert.Len(t, points, 5)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, rec.classified[catalog.IfcExtrudedAreaSolid])
	assert.Equal(t, []int{5, 5, 5, 5, 5, 5, 5, 5}, rec.extracted)
	assert.Zero(t, rec.failed)
	assert.Zero(t, rec.unclassified)
}
