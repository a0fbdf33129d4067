package step

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// File represents a complete STEP physical file.
//
// Example:
//
//	ISO-10303-21;
//	HEADER; FILE_SCHEMA(('IFC4')); ENDSEC;
//	DATA; #1=IFCCARTESIANPOINT((0.,0.,0.)); ENDSEC;
//	END-ISO-10303-21;
type File struct {
	Header   []*Record  `parser:"\"ISO-10303-21\" \";\" \"HEADER\" \";\" ( @@ \";\" )* \"ENDSEC\" \";\""`
	Sections []*Section `parser:"@@+"`
	Trailer  string     `parser:"@\"END-ISO-10303-21\" \";\""`
}

// Section represents one DATA section.
// Example: DATA; ... ENDSEC;
type Section struct {
	Params    []*Param    `parser:"\"DATA\" ( \"(\" ( @@ ( \",\" @@ )* )? \")\" )? \";\""`
	Instances []*Instance `parser:"@@* \"ENDSEC\" \";\""`
}

// Instance represents an entity instance assignment.
// Example: #12=IFCPOLYLOOP((#9,#10,#11));
type Instance struct {
	Pos  lexer.Position
	Name string        `parser:"@Ref \"=\""`
	Body *InstanceBody `parser:"@@ \";\""`
}

// InstanceBody is either a simple record or a complex (external mapping) instance.
type InstanceBody struct {
	Simple  *Record   `parser:"  @@"`
	Complex []*Record `parser:"| \"(\" @@+ \")\""`
}

// Record represents a keyword followed by a parenthesized parameter list.
// It is used for header entries, entity instances and typed parameters.
type Record struct {
	Type   string   `parser:"@Ident"`
	Params []*Param `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

// Param represents a single parameter value.
// Numbers are kept as written so callers decide how to interpret "1." or "1.E-3".
type Param struct {
	Omitted bool    `parser:"  @\"$\""`
	Derived bool    `parser:"| @\"*\""`
	Ref     *string `parser:"| @Ref"`
	String  *string `parser:"| @String"`
	Enum    *string `parser:"| @Enum"`
	Real    *string `parser:"| @Real"`
	Integer *string `parser:"| @Integer"`
	Binary  *string `parser:"| @Binary"`
	Typed   *Record `parser:"| @@"`
	List    *List   `parser:"| @@"`
}

// List represents a parenthesized aggregate.
// Example: (#1,#2,#3) or (0.,1.,0.)
type List struct {
	Items []*Param `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

// Instances returns all instances of all DATA sections in file order.
func (f *File) Instances() []*Instance {
	var out []*Instance
	for _, s := range f.Sections {
		out = append(out, s.Instances...)
	}
	return out
}

// HeaderRecord returns the header entry with the given keyword (e.g. FILE_SCHEMA).
func (f *File) HeaderRecord(keyword string) *Record {
	for _, r := range f.Header {
		if strings.EqualFold(r.Type, keyword) {
			return r
		}
	}
	return nil
}

// Schemas returns the schema identifiers declared in FILE_SCHEMA.
func (f *File) Schemas() []string {
	rec := f.HeaderRecord("FILE_SCHEMA")
	if rec == nil || len(rec.Params) == 0 || rec.Params[0].List == nil {
		return nil
	}
	var schemas []string
	for _, item := range rec.Params[0].List.Items {
		if item.String != nil {
			schemas = append(schemas, Unquote(*item.String))
		}
	}
	return schemas
}

// Text returns the raw lexeme of a scalar parameter, or "" for
// omitted, derived, list and typed parameters.
func (p *Param) Text() string {
	switch {
	case p.Ref != nil:
		return *p.Ref
	case p.String != nil:
		return *p.String
	case p.Enum != nil:
		return *p.Enum
	case p.Real != nil:
		return *p.Real
	case p.Integer != nil:
		return *p.Integer
	case p.Binary != nil:
		return *p.Binary
	}
	return ""
}

// Unquote strips the surrounding quotes of a STEP string and collapses ” escapes.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, "''", "'")
}
