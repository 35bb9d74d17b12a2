// Package manifest parses resource manifests: a minimal, bracket and quote
// driven text format declaring the assets to pack.
//
//	[image]
//	{
//	    key = "player_sprite";
//	    path = "assets/player.png";
//	};
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrhapile/respack/pkg/types"
)

type parser struct {
	c      *cursor
	source string
	decls  []types.Declaration
	cur    int
}

// Parse strips comments from text and returns its declarations in order.
// The input slice is not modified.
func Parse(text []byte) ([]types.Declaration, error) {
	buf := make([]byte, len(text))
	copy(buf, text)
	if _, err := StripComments(buf); err != nil {
		return nil, err
	}
	p := &parser{c: newCursor(buf), cur: -1}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.decls, nil
}

// ParseFile reads, decodes and parses a single manifest file. Declarations
// and diagnostics are tagged with path.
func ParseFile(path string, enc Encoding) ([]types.Declaration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	text, err := Decode(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	decls, err := Parse(text)
	if err != nil {
		var merr *Error
		if errors.As(err, &merr) {
			merr.Source = path
		}
		return nil, err
	}
	for i := range decls {
		decls[i].Source = path
	}
	return decls, nil
}

// ParseFiles parses every manifest in order, appends their declarations and
// validates the merged list.
func ParseFiles(paths []string, enc Encoding) ([]types.Declaration, error) {
	var all []types.Declaration
	for _, path := range paths {
		decls, err := ParseFile(path, enc)
		if err != nil {
			return nil, err
		}
		all = append(all, decls...)
	}
	if err := Validate(all); err != nil {
		return nil, err
	}
	return all, nil
}

func (p *parser) run() error {
	c := p.c
	for {
		c.skipSpaces()
		if c.eof() {
			return nil
		}
		var err error
		switch c.peek() {
		case ';':
		case '"':
			err = c.advanceTo('"')
		case '[':
			err = p.beginDeclaration()
		case '{':
			err = p.parseBlock()
		default:
			err = c.advanceTo(';')
		}
		if err != nil {
			return err
		}
		c.pos++
	}
}

// current returns the declaration being filled, creating one if needed.
func (p *parser) current() *types.Declaration {
	if p.cur < 0 {
		p.decls = append(p.decls, types.Declaration{Line: p.c.line})
		p.cur = 0
	}
	return &p.decls[p.cur]
}

// beginDeclaration handles `[type]`. It leaves the cursor on ']'.
func (p *parser) beginDeclaration() error {
	c := p.c
	if p.cur < 0 || !p.decls[p.cur].IsEmpty() {
		p.decls = append(p.decls, types.Declaration{})
		p.cur = len(p.decls) - 1
	}
	decl := &p.decls[p.cur]
	decl.Line = c.line

	open := c.pos
	if err := c.advanceTo(']'); err != nil {
		return err
	}
	typ, ok := extractSubstring(c.buf, open+1, c.pos-1)
	if !ok || typ == "" {
		return newError(ErrEmptyField, decl.Line, "declaration type is empty")
	}
	decl.Type = typ
	return nil
}

// parseBlock handles one `{ name = "value"; ... };` chunk for the current
// declaration. It leaves the cursor on the closing ';'.
func (p *parser) parseBlock() error {
	c := p.c
	decl := p.current()
	opened := c.line
	c.pos++

	for {
		c.skipSpaces()
		if c.eof() {
			return newError(ErrMalformedManifest, c.line, "input ends inside block opened on line %d", opened)
		}

		ch := c.peek()
		switch {
		case ch == '}':
			c.pos++
			c.skipSpaces()
			if c.peek() != ';' {
				return newError(ErrMalformedManifest, c.line, "expected ';' after '}'")
			}
			return nil
		case ch == ';':
			c.pos++
			continue
		case !isIdent(ch) && ch != '"':
			return newError(ErrUnexpectedCharacter, c.line, "%q", ch)
		}

		name, err := p.fieldName()
		if err != nil {
			return err
		}

		c.skipSpaces()
		if c.peek() != '=' {
			return newError(ErrExpectedCharacter, c.line, "expected '=' after field %q", name)
		}
		c.pos++

		c.skipSpaces()
		if c.peek() != '"' {
			return newError(ErrExpectedCharacter, c.line, "expected quoted value for field %q", name)
		}
		open := c.pos
		if err := c.advanceTo('"'); err != nil {
			return err
		}
		value, _ := extractSubstring(c.buf, open, c.pos)
		switch name {
		case "key":
			decl.Key = value
		case "path":
			decl.Path = value
		}
		c.pos++

		c.skipSpaces()
		if c.peek() != ';' {
			return newError(ErrExpectedCharacter, c.line, "expected ';' after value of %q", name)
		}
		c.pos++
	}
}

// fieldName reads a bare or quoted field name and moves past it.
func (p *parser) fieldName() (string, error) {
	c := p.c
	if c.peek() != '"' {
		var name string
		name, c.pos = firstWord(c.buf, c.pos)
		return name, nil
	}
	open := c.pos
	if err := c.advanceTo('"'); err != nil {
		return "", err
	}
	name, _ := firstWord(c.buf[:c.pos], open)
	c.pos++
	return name, nil
}
