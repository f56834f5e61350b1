// Package generator implements the compiler's final pipeline stage:
// walking an ast.Program and emitting JavaScript text.
package generator

import (
	"encoding/json"
	"strings"

	"github.com/jsx-go/jsxc/ast"
	"github.com/jsx-go/jsxc/errutil"
)

// Generate walks prog and returns the compiled JavaScript text.
func Generate(prog *ast.Program, opts *Options) (string, error) {
	g := &generator{opts: opts}

	var body strings.Builder
	for _, node := range prog.Body {
		switch {
		case node.JS != nil:
			body.WriteString(node.JS.Text)
		case node.Element != nil:
			text, err := g.emitElement(node.Element, 0, true)
			if err != nil {
				return "", err
			}
			body.WriteString(text)
		default:
			return "", errutil.NewNoPos(errutil.CodegenUnhandled, "program node with neither JS nor element set")
		}
	}

	out := body.String()
	if g.opts.addUseStrict() && !hasUseStrictDirective(out) {
		out = `"use strict";` + "\n" + out
	}
	return out, nil
}

func hasUseStrictDirective(s string) bool {
	return strings.Contains(s, `"use strict"`) || strings.Contains(s, "'use strict'")
}

type generator struct {
	opts *Options
}

// emitElement renders one CreateElement as a pragma(...) call. skipIndent
// suppresses the leading-newline pretty-printing used for ordinary
// nested elements, for elements emitted inline inside a concatenated
// expression.
func (g *generator) emitElement(el *ast.CreateElement, depth int, skipIndent bool) (string, error) {
	nameArg := g.nameArg(el)
	propsExpr, err := g.buildPropsExpr(el.Props, depth, skipIndent)
	if err != nil {
		return "", err
	}

	childrenTail, err := g.buildChildrenTail(el.Children, depth)
	if err != nil {
		return "", err
	}

	var call strings.Builder
	call.WriteString(g.opts.pragma())
	call.WriteString("(")
	call.WriteString(nameArg)
	call.WriteString(", ")
	call.WriteString(propsExpr)
	call.WriteString(childrenTail)
	call.WriteString(")")

	if skipIndent {
		return call.String(), nil
	}
	indent := strings.Repeat(" ", (depth+2)*4)
	return "\n" + indent + call.String(), nil
}

func (g *generator) nameArg(el *ast.CreateElement) string {
	if el.Name == "" {
		return g.opts.pragmaFrag()
	}
	if el.IsClass {
		return el.Name
	}
	return jsonString(el.Name)
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// buildPropsExpr renders an element's props object.
func (g *generator) buildPropsExpr(props []ast.Prop, depth int, skipIndent bool) (string, error) {
	if len(props) == 0 {
		return "null", nil
	}

	entries := make([]string, 0, len(props))
	for _, p := range props {
		entry, err := g.buildPropEntry(p, depth)
		if err != nil {
			return "", err
		}
		entries = append(entries, entry)
	}

	joined := strings.Join(entries, ", ")
	if len(joined) <= 80 {
		return "{ " + joined + " }", nil
	}

	indent := strings.Repeat(" ", (depth+3)*4)
	if skipIndent {
		indent = " "
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, e := range entries {
		sb.WriteString(indent)
		sb.WriteString(e)
		if i < len(entries)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String(), nil
}

func (g *generator) buildPropEntry(p ast.Prop, depth int) (string, error) {
	if p.IsSpread {
		inner := strings.TrimSuffix(strings.TrimPrefix(p.Name, "{"), "}")
		return inner, nil
	}

	key := p.Name
	if strings.ContainsRune(key, '-') {
		key = jsonString(key)
	}

	var value string
	switch {
	case p.Boolean:
		value = "true"
	case p.Literal != nil:
		value = *p.Literal
	default:
		joined, err := g.joinPartsDirect(p.Value, depth)
		if err != nil {
			return "", err
		}
		value = joined
	}
	if value == "null" {
		value = "true"
	}
	return key + ": " + value, nil
}

// joinPartsDirect concatenates a sequence of Child parts (JS text and/or
// nested elements) with no separator, reconstructing a single JS
// expression — used for prop values, which are always one expression
// regardless of how many nested elements they contain.
func (g *generator) joinPartsDirect(parts []ast.Child, depth int) (string, error) {
	var sb strings.Builder
	for _, part := range parts {
		switch part.Kind {
		case ast.ChildJS:
			sb.WriteString(part.Text)
		case ast.ChildElement:
			text, err := g.emitElement(part.Element, depth+1, true)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
		default:
			return "", errutil.NewNoPos(errutil.CodegenUnhandled, "unexpected child kind in prop value")
		}
	}
	return sb.String(), nil
}

type renderedChild struct {
	kind  ast.ChildKind
	text  string
	group int
}

// buildChildrenTail renders an element's children into the ", child, ..."
// suffix of its pragma(...) call, or "" if it has none.
func (g *generator) buildChildrenTail(children []ast.Child, depth int) (string, error) {
	children = trimOuterWhitespace(children)
	if len(children) == 0 {
		return "", nil
	}

	groupSize := make(map[int]int, len(children))
	for _, c := range children {
		groupSize[c.Group]++
	}

	rendered := make([]renderedChild, 0, len(children))
	for i, c := range children {
		inGroup := groupSize[c.Group] > 1
		text, err := g.renderChild(c, depth, i == 0, i == len(children)-1, len(children) > 1, inGroup)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, renderedChild{kind: c.Kind, text: text, group: c.Group})
	}

	joined := joinChildren(mergeGroups(rendered))
	return ", " + joined, nil
}

// mergeGroups concatenates consecutive children sharing a Group into a
// single unit with no separator: they are fragments of one source
// expression (e.g. the JS/element/JS split of items.map(i => <li/>)),
// not independent children that need comma-joining.
func mergeGroups(items []renderedChild) []renderedChild {
	merged := make([]renderedChild, 0, len(items))
	for i := 0; i < len(items); {
		j := i + 1
		for j < len(items) && items[j].group == items[i].group {
			j++
		}
		if j == i+1 {
			merged = append(merged, items[i])
			i = j
			continue
		}
		var sb strings.Builder
		kind := ast.ChildJS
		for k := i; k < j; k++ {
			sb.WriteString(items[k].text)
			if items[k].kind == ast.ChildElement {
				kind = ast.ChildElement
			}
		}
		merged = append(merged, renderedChild{kind: kind, text: sb.String(), group: items[i].group})
		i = j
	}
	return merged
}

func trimOuterWhitespace(children []ast.Child) []ast.Child {
	start, end := 0, len(children)
	if end > 0 && children[start].Kind == ast.ChildWhitespace {
		start++
	}
	if end > start && children[end-1].Kind == ast.ChildWhitespace {
		end--
	}
	return children[start:end]
}

func (g *generator) renderChild(c ast.Child, depth int, isFirst, isLast, multi, inGroup bool) (string, error) {
	switch c.Kind {
	case ast.ChildWhitespace:
		return jsonString(c.Text), nil
	case ast.ChildText:
		text := c.Text
		if strings.ContainsRune(text, '&') {
			text = g.opts.decoder().Decode(text)
		}
		if multi {
			if isFirst {
				text = strings.TrimLeft(text, " \t\n\r")
			}
			if isLast {
				text = strings.TrimRight(text, " \t\n\r")
			}
		}
		return jsonString(text), nil
	case ast.ChildJS:
		return c.Text, nil
	case ast.ChildElement:
		// An element sharing its Group with sibling JS fragments sits
		// inline inside that JS expression (e.g. items.map(i => <li/>))
		// and must render without the standalone pretty-printed indent.
		return g.emitElement(c.Element, depth+1, inGroup)
	default:
		return "", errutil.NewNoPos(errutil.CodegenUnhandled, "unrecognized child kind")
	}
}

// joinChildren assembles the already-group-merged child texts: a JS
// child ending in one of the trigger suffixes fuses directly (no
// comma) with a following element from a different Group; anything
// else is comma-separated. Same-Group fusion already happened in
// mergeGroups, so every item here is an independent child.
func joinChildren(items []renderedChild) string {
	var sb strings.Builder
	for i, it := range items {
		if i > 0 {
			prev := items[i-1]
			if !(prev.kind == ast.ChildJS && it.kind == ast.ChildElement && isConcatTrigger(prev.text)) {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(it.text)
	}
	return sb.String()
}

// isConcatTrigger reports whether a JS child's text should be fused
// directly (no comma) with a following element child.
func isConcatTrigger(s string) bool {
	if strings.HasSuffix(s, " return") {
		return true
	}
	trimmed := strings.TrimRight(s, " \t\n\r")
	for _, suffix := range []string{"&&", "?", "(", ":"} {
		if strings.HasSuffix(trimmed, suffix) {
			return true
		}
	}
	return false
}
