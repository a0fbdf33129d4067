// Package shape classifies IfcShapeRepresentation entities and decodes their
// items into point sequences.
package shape

import (
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/step"
)

// Identifier classifies representations and their items against the catalog.
// It holds no mutable state and may be shared between goroutines.
type Identifier struct {
	graph    *model.Graph
	logger   *zap.Logger
	observer Observer
}

// NewIdentifier creates an Identifier over g.
func NewIdentifier(g *model.Graph, opts ...Option) *Identifier {
	o := newOptions(opts)
	return &Identifier{graph: g, logger: o.logger, observer: o.observer}
}

// Identify reads RepresentationIdentifier and RepresentationType of rep.
// Text that matches no catalog name leaves the corresponding half of the
// identity unset.
func (i *Identifier) Identify(rep *model.Entity) Identity {
	id := Identity{Source: rep}
	if rep == nil {
		return id
	}
	if text, ok := representationText(rep, "RepresentationIdentifier"); ok {
		id.identifier, id.hasIdentifier = catalog.ParseIdentifier(text)
	}
	if text, ok := representationText(rep, "RepresentationType"); ok {
		id.typ, id.hasType = catalog.ParseType(text)
	}
	if !id.IsResolved() {
		i.logger.Info("shape representation not resolved",
			zap.Stringer("entity", rep),
			zap.String("identifier", rep.Text("RepresentationIdentifier")),
			zap.String("representation_type", rep.Text("RepresentationType")),
		)
	}
	return id
}

func representationText(rep *model.Entity, attr string) (string, bool) {
	raw, err := rep.Scalar(attr)
	if err != nil {
		return "", false
	}
	return step.Unquote(raw), true
}

// ItemType returns the catalog name of item within the item universe of the
// identity's representation type. Subtypes count as members; the first
// matching name wins.
func (i *Identifier) ItemType(id Identity, item *model.Entity) (string, bool) {
	typ, ok := id.Type()
	var candidates []string
	if ok {
		candidates, ok = catalog.ItemTypes(typ)
	}
	if !ok {
		i.logger.Info("representation type not supported",
			zap.Stringer("entity", id.Source),
			zap.String("representation_type", typeLabel(id)),
		)
		i.observer.ItemUnclassified(id)
		return "", false
	}
	name, ok := i.classify(item, candidates)
	if !ok {
		i.logger.Info("item not supported",
			zap.Stringer("entity", item),
			zap.String("type", rawType(item)),
			zap.Stringer("representation_type", typ),
		)
		i.observer.ItemUnclassified(id)
		return "", false
	}
	i.observer.ItemClassified(typ, name)
	return name, true
}

// OperandType classifies a boolean operand.
func (i *Identifier) OperandType(operand *model.Entity) (string, bool) {
	return i.classifyLogged(operand, catalog.BooleanOperandTypes(), "boolean operand")
}

// LoopType classifies a face bound loop.
func (i *Identifier) LoopType(loop *model.Entity) (string, bool) {
	return i.classifyLogged(loop, catalog.LoopTypes(), "loop")
}

// ProfileType classifies a swept area profile.
func (i *Identifier) ProfileType(profile *model.Entity) (string, bool) {
	return i.classifyLogged(profile, catalog.ProfileDefTypes(), "profile")
}

// BoundedCurveType classifies a bounded curve.
func (i *Identifier) BoundedCurveType(curve *model.Entity) (string, bool) {
	return i.classifyLogged(curve, catalog.BoundedCurveTypes(), "bounded curve")
}

// IsPolyline reports whether e is an IfcPolyline.
func (i *Identifier) IsPolyline(e *model.Entity) bool {
	return i.graph.IsA(e, catalog.IfcPolyline)
}

func (i *Identifier) classifyLogged(e *model.Entity, candidates []string, what string) (string, bool) {
	name, ok := i.classify(e, candidates)
	if !ok {
		i.logger.Info(what+" not supported", zap.Stringer("entity", e), zap.String("type", rawType(e)))
	}
	return name, ok
}

func (i *Identifier) classify(e *model.Entity, candidates []string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, name := range candidates {
		if i.graph.IsA(e, name) {
			return name, true
		}
	}
	return "", false
}

// typeLabel names the identity's representation type for logs and metrics.
func typeLabel(id Identity) string {
	if typ, ok := id.Type(); ok {
		return typ.String()
	}
	return "none"
}

func rawType(e *model.Entity) string {
	if e == nil {
		return ""
	}
	return e.RawType
}
