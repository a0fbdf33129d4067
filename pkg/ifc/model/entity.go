package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/step"
)

// Kind tags the shape of an attribute value.
type Kind int

const (
	KindMissing Kind = iota // attribute unknown or beyond the written parameters
	KindNull                // $
	KindDerived             // *
	KindScalar
	KindRef
	KindList
	KindTyped // e.g. IFCLENGTHMEASURE(2.)
)

var kindNames = [...]string{"missing", "null", "derived", "scalar", "ref", "list", "typed"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a tagged attribute value.
//
// Scalars keep their raw lexeme: strings keep their quotes, enumerations keep
// their dots and numbers keep their written form ("1.").
// For KindTyped, Text holds the type keyword and Items the wrapped values.
type Value struct {
	Kind  Kind
	Text  string
	Ref   uint64
	Items []Value
}

// Unwrap returns the inner value of a typed parameter with one argument.
func (v Value) Unwrap() Value {
	for v.Kind == KindTyped && len(v.Items) == 1 {
		v = v.Items[0]
	}
	return v
}

// IsSet reports whether the value carries data.
func (v Value) IsSet() bool {
	return v.Kind != KindMissing && v.Kind != KindNull
}

func newValue(p *step.Param) (Value, error) {
	switch {
	case p == nil:
		return Value{Kind: KindMissing}, nil
	case p.Omitted:
		return Value{Kind: KindNull}, nil
	case p.Derived:
		return Value{Kind: KindDerived}, nil
	case p.Ref != nil:
		id, err := parseID(*p.Ref)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindRef, Ref: id}, nil
	case p.Typed != nil:
		items, err := newValues(p.Typed.Params)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindTyped, Text: p.Typed.Type, Items: items}, nil
	case p.List != nil:
		items, err := newValues(p.List.Items)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindList, Items: items}, nil
	}
	return Value{Kind: KindScalar, Text: p.Text()}, nil
}

func newValues(params []*step.Param) ([]Value, error) {
	values := make([]Value, 0, len(params))
	for _, p := range params {
		v, err := newValue(p)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseID(name string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(name, "#"), 10, 64)
	if err != nil || !strings.HasPrefix(name, "#") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, name)
	}
	return id, nil
}

// Entity is one instance of the DATA section.
type Entity struct {
	ID      uint64
	RawType string // as written in the file, e.g. IFCFACETEDBREP
	Type    string // schema spelling, e.g. IfcFacetedBrep; "" when unknown or complex
	Complex bool

	attrs []Value
	graph *Graph
}

func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("#%d=%s", e.ID, e.RawType)
}

func (e *Entity) at(i int) Value {
	if i < 0 || i >= len(e.attrs) {
		return Value{Kind: KindMissing}
	}
	return e.attrs[i]
}

// Attribute returns a named explicit attribute. Names are resolved through
// the entity's schema type; unknown names yield KindMissing.
func (e *Entity) Attribute(name string) Value {
	if e.Type == "" {
		return Value{Kind: KindMissing}
	}
	idx, ok := AttributeIndex(e.Type, name)
	if !ok {
		return Value{Kind: KindMissing}
	}
	return e.at(idx)
}

// Has reports whether the named attribute is present and not $.
func (e *Entity) Has(name string) bool {
	return e.Attribute(name).IsSet()
}

func (e *Entity) attrErr(name string, err error) error {
	return fmt.Errorf("%s attribute %s: %w", e, name, err)
}

func (e *Entity) required(name string) (Value, error) {
	v := e.Attribute(name)
	if !v.IsSet() {
		return v, e.attrErr(name, ErrMissingAttribute)
	}
	return v.Unwrap(), nil
}

// Scalar returns the raw text of a scalar attribute.
func (e *Entity) Scalar(name string) (string, error) {
	v, err := e.required(name)
	if err != nil {
		return "", err
	}
	if v.Kind != KindScalar {
		return "", e.attrErr(name, fmt.Errorf("%w: got %s, want scalar", ErrWrongShape, v.Kind))
	}
	return v.Text, nil
}

// Scalars returns the raw texts of a list of scalars.
func (e *Entity) Scalars(name string) ([]string, error) {
	v, err := e.required(name)
	if err != nil {
		return nil, err
	}
	if v.Kind != KindList {
		return nil, e.attrErr(name, fmt.Errorf("%w: got %s, want list", ErrWrongShape, v.Kind))
	}
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		item = item.Unwrap()
		if item.Kind != KindScalar {
			return nil, e.attrErr(name, fmt.Errorf("%w: list item is %s, want scalar", ErrWrongShape, item.Kind))
		}
		out = append(out, item.Text)
	}
	return out, nil
}

// Ref resolves a reference attribute.
func (e *Entity) Ref(name string) (*Entity, error) {
	v, err := e.required(name)
	if err != nil {
		return nil, err
	}
	if v.Kind != KindRef {
		return nil, e.attrErr(name, fmt.Errorf("%w: got %s, want ref", ErrWrongShape, v.Kind))
	}
	return e.resolve(name, v.Ref)
}

// Refs resolves a list of references.
func (e *Entity) Refs(name string) ([]*Entity, error) {
	v, err := e.required(name)
	if err != nil {
		return nil, err
	}
	if v.Kind != KindList {
		return nil, e.attrErr(name, fmt.Errorf("%w: got %s, want list", ErrWrongShape, v.Kind))
	}
	out := make([]*Entity, 0, len(v.Items))
	for _, item := range v.Items {
		if item.Kind != KindRef {
			return nil, e.attrErr(name, fmt.Errorf("%w: list item is %s, want ref", ErrWrongShape, item.Kind))
		}
		target, err := e.resolve(name, item.Ref)
		if err != nil {
			return nil, err
		}
		out = append(out, target)
	}
	return out, nil
}

func (e *Entity) resolve(name string, id uint64) (*Entity, error) {
	if e.graph == nil {
		return nil, e.attrErr(name, fmt.Errorf("%w: #%d", ErrDanglingReference, id))
	}
	target, ok := e.graph.Get(id)
	if !ok {
		return nil, e.attrErr(name, fmt.Errorf("%w: #%d", ErrDanglingReference, id))
	}
	return target, nil
}

// Text returns the unquoted string value of a string attribute, or "" when
// the attribute is unset or not a string.
func (e *Entity) Text(name string) string {
	v := e.Attribute(name).Unwrap()
	if v.Kind != KindScalar || !strings.HasPrefix(v.Text, "'") {
		return ""
	}
	return step.Unquote(v.Text)
}
