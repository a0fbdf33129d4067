package model

import "errors"

var (
	// ErrDuplicateID is returned when two instances share the same #id.
	ErrDuplicateID = errors.New("model: duplicate instance id")
	// ErrInvalidID is returned for instance names that are not #<digits>.
	ErrInvalidID = errors.New("model: invalid instance id")
	// ErrMissingAttribute is returned when a required attribute is absent or unset ($).
	ErrMissingAttribute = errors.New("model: missing attribute")
	// ErrWrongShape is returned when an attribute holds a different kind of value than requested.
	ErrWrongShape = errors.New("model: attribute has wrong shape")
	// ErrDanglingReference is returned when a reference points to an unknown instance.
	ErrDanglingReference = errors.New("model: dangling reference")
)
