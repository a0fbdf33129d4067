package step

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// StepLexer defines the lexical structure of ISO 10303-21 (STEP physical) files.
// Rule order matters: the file markers and section keywords must win over Ident.
var StepLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - C style, may span lines
	{Name: "Comment", Pattern: `/\*(?s:.*?)\*/`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// File markers
	{Name: "EndMagic", Pattern: `END-ISO-10303-21`},
	{Name: "Magic", Pattern: `ISO-10303-21`},

	// Section keywords
	{Name: "Keyword", Pattern: `\b(?:HEADER|DATA|ENDSEC)\b`},

	// Instance name (#123)
	{Name: "Ref", Pattern: `#[0-9]+`},

	// Strings use single quotes, '' is an escaped quote
	{Name: "String", Pattern: `'(?:[^']|'')*'`},

	// Binary literals
	{Name: "Binary", Pattern: `"[0-9A-Fa-f]*"`},

	// Enumerations and logicals (.AREA., .T.)
	{Name: "Enum", Pattern: `\.[A-Za-z_][A-Za-z0-9_]*\.`},

	// Numbers. A real always carries a decimal point, possibly trailing ("1.")
	{Name: "Real", Pattern: `[-+]?[0-9]+\.[0-9]*(?:[eE][-+]?[0-9]+)?`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},

	// Entity and type keywords (IFCCARTESIANPOINT, FILE_NAME, IFCLABEL)
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},

	// Punctuation, omitted ($) and derived (*) markers
	{Name: "Punct", Pattern: `[$*(),;=]`},
})
