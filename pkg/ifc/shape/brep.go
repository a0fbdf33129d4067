package shape

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/geom"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// facetedBrep walks Outer -> CfsFaces -> Bounds -> Bound and returns every
// loop followed by a separator.
func (x *Extractor) facetedBrep(item *model.Entity) ([]geom.Point3D, error) {
	shell, err := item.Ref("Outer")
	if err != nil {
		return nil, err
	}
	faces, err := shell.Refs("CfsFaces")
	if err != nil {
		return nil, err
	}
	var loops [][]geom.Point3D
	for _, face := range faces {
		bounds, err := face.Refs("Bounds")
		if err != nil {
			return nil, err
		}
		for _, bound := range bounds {
			loop, err := bound.Ref("Bound")
			if err != nil {
				return nil, err
			}
			points, err := x.loop(loop)
			if err != nil {
				return nil, err
			}
			loops = append(loops, points)
		}
	}
	return geom.JoinLoops(loops), nil
}

func (x *Extractor) loop(loop *model.Entity) ([]geom.Point3D, error) {
	loopType, ok := x.ident.LoopType(loop)
	if !ok {
		return nil, fmt.Errorf("loop %s: %w", loop, ErrUnclassified)
	}
	if loopType != catalog.IfcPolyLoop {
		return nil, fmt.Errorf("loop %s (%s): %w", loop, loopType, ErrNotImplemented)
	}
	return x.points(loop, "Polygon")
}
