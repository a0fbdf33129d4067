package shape

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/model"
)

// Identity is the classification of one IfcShapeRepresentation.
type Identity struct {
	Source *model.Entity

	identifier    catalog.RepresentationIdentifier
	typ           catalog.RepresentationType
	hasIdentifier bool
	hasType       bool
}

// NewIdentity returns a resolved identity.
func NewIdentity(source *model.Entity, identifier catalog.RepresentationIdentifier, typ catalog.RepresentationType) Identity {
	return Identity{
		Source:        source,
		identifier:    identifier,
		typ:           typ,
		hasIdentifier: true,
		hasType:       true,
	}
}

// Identifier returns the representation identifier, if one matched.
func (id Identity) Identifier() (catalog.RepresentationIdentifier, bool) {
	return id.identifier, id.hasIdentifier
}

// Type returns the representation type, if one matched.
func (id Identity) Type() (catalog.RepresentationType, bool) {
	return id.typ, id.hasType
}

// IsResolved reports whether both identifier and type matched. Unresolved
// identities are rejected by the Extractor.
func (id Identity) IsResolved() bool {
	return id.Source != nil && id.hasIdentifier && id.hasType
}

func (id Identity) String() string {
	ident, typ := "?", "?"
	if id.hasIdentifier {
		ident = id.identifier.String()
	}
	if id.hasType {
		typ = id.typ.String()
	}
	return fmt.Sprintf("%s %s/%s", id.Source, ident, typ)
}
