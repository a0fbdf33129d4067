package shape

import "errors"

// Reasons a representation or item cannot be decoded. Structural problems in
// the entity graph surface as model.ErrMissingAttribute, model.ErrWrongShape
// or model.ErrDanglingReference.
var (
	ErrUnresolved     = errors.New("shape: representation identity not resolved")
	ErrUnclassified   = errors.New("shape: item not in catalog for representation type")
	ErrNotImplemented = errors.New("shape: extraction not implemented")
	ErrMalformed      = errors.New("shape: malformed geometry data")
)
