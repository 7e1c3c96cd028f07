// Package importer extracts the leading import directives from a token
// stream before the parser ever sees it.
package importer

import (
	"fmt"

	"github.com/dove-lang/dove/internal/lexer"
)

// Importer recognizes the prefix of the token stream made up of
// interleaved NEWLINE tokens and `import "path"` pairs.
type Importer struct {
	tokens  []lexer.Token
	current int

	expectingFileName bool

	errors []string
}

// New creates an Importer over the token stream produced by the scanner.
func New(tokens []lexer.Token) *Importer {
	return &Importer{tokens: tokens}
}

// Errors returns the errors accumulated by Analyze.
func (im *Importer) Errors() []string {
	return im.errors
}

// Analyze consumes the leading import prefix and returns the remaining
// tokens together with the list of import paths (quotes stripped). The
// first token that is neither NEWLINE nor part of an import pair stops the
// scan; everything from there on is returned untouched.
func (im *Importer) Analyze() ([]lexer.Token, []string) {
	var paths []string

	for im.check(lexer.IMPORT, lexer.STRING, lexer.NEWLINE) {
		tok := im.peek()
		switch tok.Type {
		case lexer.IMPORT:
			if im.expectingFileName {
				im.reportError(tok.Line, "Expected a file name string after 'import'.")
				im.advance()
				continue
			}
			im.expectingFileName = true
			im.advance()

		case lexer.STRING:
			if !im.expectingFileName {
				// A bare string at top level before any other token is not
				// an import path; stop scanning the import prefix here.
				goto done
			}
			path, ok := tok.Literal.(string)
			if !ok {
				path = tok.Lexeme
			}
			paths = append(paths, path)
			im.expectingFileName = false
			im.advance()

		case lexer.NEWLINE:
			if im.expectingFileName {
				im.reportError(tok.Line, "Expected a file name string after 'import'.")
				im.expectingFileName = false
			}
			im.advance()
		}
	}

done:
	im.tokens = im.tokens[im.current:]
	im.current = 0
	return im.tokens, paths
}

func (im *Importer) check(types ...lexer.TokenType) bool {
	if im.isAtEnd() {
		return false
	}
	current := im.peek().Type
	for _, t := range types {
		if current == t {
			return true
		}
	}
	return false
}

func (im *Importer) isAtEnd() bool {
	return im.peek().Type == lexer.EOF
}

func (im *Importer) peek() lexer.Token {
	return im.tokens[im.current]
}

func (im *Importer) advance() lexer.Token {
	tok := im.tokens[im.current]
	if !im.isAtEnd() {
		im.current++
	}
	return tok
}

func (im *Importer) reportError(line int, format string, args ...any) {
	im.errors = append(im.errors, fmt.Sprintf("[line %d] Error: %s", line, fmt.Sprintf(format, args...)))
}
