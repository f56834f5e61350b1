package parser

import (
	"testing"

	"github.com/jsx-go/jsxc/ast"
	"github.com/jsx-go/jsxc/errutil"
	"github.com/jsx-go/jsxc/lexer"
)

func mustTokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Tokenize(src, lexer.Limits{})
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func TestParseSimpleElement(t *testing.T) {
	src := `<div id="x">hi</div>`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Body) != 1 || prog.Body[0].Element == nil {
		t.Fatalf("expected a single element node, got %+v", prog.Body)
	}
	el := prog.Body[0].Element
	if el.Name != "div" || el.IsClass {
		t.Errorf("el = %+v, want host element div", el)
	}
	if len(el.Props) != 1 || el.Props[0].Name != "id" || el.Props[0].Literal == nil || *el.Props[0].Literal != `"x"` {
		t.Errorf("props = %+v", el.Props)
	}
	if len(el.Children) != 1 || el.Children[0].Kind != ast.ChildText || el.Children[0].Text != "hi" {
		t.Errorf("children = %+v", el.Children)
	}
}

func TestParseClassComponent(t *testing.T) {
	src := `<Foo.Bar/>`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el := prog.Body[0].Element
	if !el.IsClass {
		t.Errorf("expected Foo.Bar to be a class component")
	}
}

func TestParseBooleanAndSpreadProps(t *testing.T) {
	src := `<input disabled {...rest}/>`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el := prog.Body[0].Element
	if len(el.Props) != 2 {
		t.Fatalf("props = %+v", el.Props)
	}
	if !el.Props[0].Boolean {
		t.Errorf("expected disabled to be boolean")
	}
	if !el.Props[1].IsSpread || el.Props[1].Name != "{...rest}" {
		t.Errorf("expected spread prop, got %+v", el.Props[1])
	}
}

func TestParseExprProp(t *testing.T) {
	src := `<button onClick={handleClick}/>`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el := prog.Body[0].Element
	if len(el.Props) != 1 || len(el.Props[0].Value) != 1 || el.Props[0].Value[0].Text != "handleClick" {
		t.Errorf("props = %+v", el.Props)
	}
}

func TestParseNestedElementInAttributeValue(t *testing.T) {
	src := `<div slot={<b/>}/>`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el := prog.Body[0].Element
	prop := el.Props[0]
	if len(prop.Value) != 1 || prop.Value[0].Kind != ast.ChildElement || prop.Value[0].Element.Name != "b" {
		t.Errorf("prop value = %+v", prop.Value)
	}
}

func TestParseNestedElementInChildExpression(t *testing.T) {
	src := `<ul>{items.map(x => <li>{x}</li>)}</ul>`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el := prog.Body[0].Element
	if len(el.Children) != 3 {
		t.Fatalf("children = %+v", el.Children)
	}
	if el.Children[0].Kind != ast.ChildJS || el.Children[0].Text != "items.map(x => " {
		t.Errorf("child[0] = %+v", el.Children[0])
	}
	if el.Children[1].Kind != ast.ChildElement || el.Children[1].Element.Name != "li" {
		t.Errorf("child[1] = %+v", el.Children[1])
	}
}

func TestParseFragment(t *testing.T) {
	src := `<><span/></>`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	el := prog.Body[0].Element
	if el.Name != "" {
		t.Errorf("fragment name = %q, want empty", el.Name)
	}
	if len(el.Children) != 1 || el.Children[0].Element.Name != "span" {
		t.Errorf("children = %+v", el.Children)
	}
}

func TestParseMismatchedClosingTag(t *testing.T) {
	toks := []lexer.Token{
		{Kind: lexer.E_START, Value: "<div", HasPos: true},
		{Kind: lexer.E_END, Value: "</span>", HasPos: true},
	}
	_, err := Parse(toks, "<div></span>")
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
	ce, ok := err.(*errutil.CompileError)
	if !ok || ce.Kind != errutil.ParserMismatch {
		t.Fatalf("err = %v, want ParserMismatch", err)
	}
}

func TestParseUnbalancedElements(t *testing.T) {
	toks := []lexer.Token{
		{Kind: lexer.E_START, Value: "<div", HasPos: true},
	}
	_, err := Parse(toks, "<div>")
	if err == nil {
		t.Fatalf("expected unbalanced error")
	}
	ce, ok := err.(*errutil.CompileError)
	if !ok || ce.Kind != errutil.ParserUnbalanced {
		t.Fatalf("err = %v, want ParserUnbalanced", err)
	}
	if ce.HasPos {
		t.Errorf("ParserUnbalanced must not carry a position")
	}
}

func TestParseSurroundingJS(t *testing.T) {
	src := `const a = <br/>; f();`
	prog, err := Parse(mustTokenize(t, src), src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Body) != 3 {
		t.Fatalf("body = %+v", prog.Body)
	}
	if prog.Body[0].JS == nil || prog.Body[2].JS == nil || prog.Body[1].Element == nil {
		t.Errorf("body kinds = %+v", prog.Body)
	}
}
