// Package parser turns a lexer.Token stream into an ast.Program.
package parser

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsx-go/jsxc/ast"
	"github.com/jsx-go/jsxc/errutil"
	"github.com/jsx-go/jsxc/lexer"
)

// Parse builds a Program from tokens. src is the comment-stripped
// source the tokens were produced from, used only to locate errors.
func Parse(tokens []lexer.Token, src string) (*ast.Program, error) {
	if err := checkBalance(tokens); err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, src: src}
	prog := &ast.Program{}

	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		switch t.Kind {
		case lexer.JS:
			prog.Body = append(prog.Body, ast.Node{JS: &ast.JsChunk{Text: t.Value, Pos: t.Pos}})
			p.pos++
		case lexer.E_START:
			elem, err := p.parseElement(0)
			if err != nil {
				return nil, err
			}
			prog.Body = append(prog.Body, ast.Node{Element: elem})
		default:
			return nil, p.orderErr(t, "unexpected token at top level")
		}
	}
	return prog, nil
}

// checkBalance validates that the token stream contains exactly as
// many E_END tokens as E_START tokens. The resulting error never
// carries a position: no reliable single offset exists for a global
// mismatch.
func checkBalance(tokens []lexer.Token) error {
	starts, ends := 0, 0
	for _, t := range tokens {
		switch t.Kind {
		case lexer.E_START:
			starts++
		case lexer.E_END:
			ends++
		}
	}
	if starts != ends {
		return errutil.NewNoPos(errutil.ParserUnbalanced, "unbalanced elements")
	}
	return nil
}

type parser struct {
	tokens       []lexer.Token
	src          string
	pos          int
	groupCounter int
}

func (p *parser) nextGroup() int {
	p.groupCounter++
	return p.groupCounter
}

// parseElement consumes the E_START at p.pos, every E_PROP/value that
// follows, then either the self-closing E_END or a full children loop
// up to the matching closing E_END.
func (p *parser) parseElement(depth int) (*ast.CreateElement, error) {
	startTok := p.tokens[p.pos]
	name := strings.TrimPrefix(startTok.Value, "<")
	elem := &ast.CreateElement{
		Name:    name,
		IsClass: isClassName(name),
		Depth:   depth,
		Pos:     startTok.Pos,
	}
	p.pos++

	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == lexer.E_PROP {
		prop, err := p.parseProp()
		if err != nil {
			return nil, err
		}
		elem.Props = append(elem.Props, prop)
	}

	if p.pos >= len(p.tokens) {
		return nil, errutil.NewNoPos(errutil.ParserUnbalanced, "unbalanced elements")
	}

	if p.tokens[p.pos].Kind == lexer.E_END && p.tokens[p.pos].Value == "/>" {
		p.pos++
		return elem, nil
	}

	children, err := p.parseChildrenUntilEnd(elem)
	if err != nil {
		return nil, err
	}
	elem.Children = children
	return elem, nil
}

func (p *parser) parseProp() (ast.Prop, error) {
	tok := p.tokens[p.pos]
	p.pos++

	if strings.HasPrefix(tok.Value, "{") {
		return ast.Prop{Name: tok.Value, IsSpread: true, Pos: tok.Pos}, nil
	}

	prop := ast.Prop{Name: tok.Value, Pos: tok.Pos}

	if p.pos >= len(p.tokens) {
		prop.Boolean = true
		return prop, nil
	}

	switch p.tokens[p.pos].Kind {
	case lexer.E_VALUE:
		valTok := p.tokens[p.pos]
		p.pos++
		if isJSONStringLiteral(valTok.Value) {
			v := valTok.Value
			prop.Literal = &v
		} else {
			prop.Value = []ast.Child{{Kind: ast.ChildJS, Text: valTok.Value, Pos: valTok.Pos}}
		}
		return prop, nil

	case lexer.E_CHILD_JS_START:
		parts, err := p.parseBracedParts()
		if err != nil {
			return ast.Prop{}, err
		}
		group := p.nextGroup()
		for i := range parts {
			parts[i].Group = group
		}
		prop.Value = parts
		return prop, nil

	default:
		prop.Boolean = true
		return prop, nil
	}
}

// parseBracedParts consumes a run of E_CHILD_JS_START / E_START /
// E_CHILD_JS_END tokens (one or more nested elements interleaved with
// JS fragments) and returns the flattened sequence of parts.
func (p *parser) parseBracedParts() ([]ast.Child, error) {
	var parts []ast.Child
	for {
		if p.pos >= len(p.tokens) {
			return nil, errutil.NewNoPos(errutil.ParserUnbalanced, "unbalanced elements")
		}
		t := p.tokens[p.pos]
		switch t.Kind {
		case lexer.E_CHILD_JS_START:
			p.pos++
			if t.Value != "" {
				parts = append(parts, ast.Child{Kind: ast.ChildJS, Text: t.Value, Pos: t.Pos})
			}
		case lexer.E_START:
			elem, err := p.parseElement(0)
			if err != nil {
				return nil, err
			}
			parts = append(parts, ast.Child{Kind: ast.ChildElement, Element: elem, Pos: t.Pos})
		case lexer.E_CHILD_JS_END:
			p.pos++
			if t.Value != "" {
				parts = append(parts, ast.Child{Kind: ast.ChildJS, Text: t.Value, Pos: t.Pos})
			}
			return parts, nil
		default:
			return nil, p.orderErr(t, "unexpected token inside a JS expression")
		}
	}
}

func (p *parser) parseChildrenUntilEnd(elem *ast.CreateElement) ([]ast.Child, error) {
	var children []ast.Child
	for {
		if p.pos >= len(p.tokens) {
			return nil, errutil.NewNoPos(errutil.ParserUnbalanced, "unbalanced elements")
		}
		t := p.tokens[p.pos]
		switch t.Kind {
		case lexer.E_END:
			if err := p.checkCloseMatches(elem, t); err != nil {
				return nil, err
			}
			p.pos++
			return children, nil

		case lexer.E_CHILD_TEXT:
			children = append(children, ast.Child{Kind: ast.ChildText, Text: t.Value, Pos: t.Pos, Group: p.nextGroup()})
			p.pos++
		case lexer.E_CHILD_WHITESPACE:
			children = append(children, ast.Child{Kind: ast.ChildWhitespace, Text: t.Value, Pos: t.Pos, Group: p.nextGroup()})
			p.pos++
		case lexer.E_CHILD_JS:
			children = append(children, ast.Child{Kind: ast.ChildJS, Text: stripOuterBraces(t.Value), Pos: t.Pos, Group: p.nextGroup()})
			p.pos++
		case lexer.E_START:
			child, err := p.parseElement(elem.Depth + 1)
			if err != nil {
				return nil, err
			}
			children = append(children, ast.Child{Kind: ast.ChildElement, Element: child, Pos: t.Pos, Group: p.nextGroup()})
		case lexer.E_CHILD_JS_START:
			parts, err := p.parseBracedParts()
			if err != nil {
				return nil, err
			}
			group := p.nextGroup()
			for i := range parts {
				parts[i].Group = group
			}
			children = append(children, parts...)
		default:
			return nil, p.orderErr(t, "unexpected token in element children")
		}
	}
}

// checkCloseMatches validates that a non-self-closing E_END names the
// element it closes.
func (p *parser) checkCloseMatches(elem *ast.CreateElement, end lexer.Token) error {
	if end.Value == "/>" {
		return nil
	}
	closingName := strings.TrimSuffix(strings.TrimPrefix(end.Value, "</"), ">")
	if closingName != elem.Name {
		return p.mismatchErr(end, "mismatched closing tag")
	}
	return nil
}

func (p *parser) orderErr(t lexer.Token, reason string) error {
	return errutil.New(errutil.ParserOrder, reason, p.src, t.Pos)
}

func (p *parser) mismatchErr(t lexer.Token, reason string) error {
	return errutil.New(errutil.ParserMismatch, reason, p.src, t.Pos)
}

// stripOuterBraces removes exactly one leading '{' and one trailing '}'
// if both are present.
func stripOuterBraces(s string) string {
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1]
	}
	return s
}

// isJSONStringLiteral reports whether s is exactly a JSON-encoded string
// (what a quoted attribute value becomes). A JS expression that
// happens to be a single string literal and nothing else is
// indistinguishable from — and produces identical output to — a quoted
// attribute value, so both are treated as literals.
func isJSONStringLiteral(s string) bool {
	if len(s) < 2 || s[0] != '"' {
		return false
	}
	var v string
	return json.Unmarshal([]byte(s), &v) == nil
}

// isClassName reports whether a name is a user component, emitted as
// a bare identifier: it starts with an uppercase letter or contains a
// '.'. Otherwise it is a host element, emitted as a quoted string.
func isClassName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsRune(name, '.') {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
