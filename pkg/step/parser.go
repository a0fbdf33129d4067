package step

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads ISO 10303-21 physical files. It holds no per-file state and
// may be shared between goroutines.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds the STEP grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(StepLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("step: building grammar: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads a physical file from r. name is recorded in instance positions
// and error messages; it may be empty.
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	return file, nil
}

// ParseString parses an in-memory physical file.
func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	return file, nil
}

// ParseFile opens and parses the physical file at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	defer f.Close()

	return p.Parse(path, f)
}
