// Package debugval builds a structural, Go-side value from a parsed
// element tree, standing in for "evaluate the generated JS with a stub
// pragma that returns its arguments as a tuple" when no JS engine is
// available. It is adapted from a JSX-to-Go preprocessor's runtime
// value/renderer pair, retargeted from rendering a `.gox` program's
// output to describing this compiler's own parsed tree.
package debugval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsx-go/jsxc/ast"
)

// Call is the debug value for one CreateElement: the tuple a stub
// pragma(name, props, ...children) would have received.
type Call struct {
	Name     string
	Props    map[string]string
	Children []Value
}

// Value is either a literal/JS string part or a nested *Call.
type Value struct {
	Text string
	Call *Call
}

// FromProgram converts every top-level element in prog into a Call,
// skipping plain JS chunks (which a stub pragma never sees).
func FromProgram(prog *ast.Program, pragmaFrag string) []*Call {
	var calls []*Call
	for _, node := range prog.Body {
		if node.Element != nil {
			calls = append(calls, FromElement(node.Element, pragmaFrag))
		}
	}
	return calls
}

// FromElement recursively builds a Call from a CreateElement.
func FromElement(el *ast.CreateElement, pragmaFrag string) *Call {
	name := el.Name
	if name == "" {
		name = pragmaFrag
	}

	props := map[string]string{}
	for _, p := range el.Props {
		switch {
		case p.IsSpread:
			props[p.Name] = "<spread>"
		case p.Boolean:
			props[p.Name] = "true"
		case p.Literal != nil:
			props[p.Name] = *p.Literal
		default:
			props[p.Name] = joinChildText(p.Value, pragmaFrag)
		}
	}

	children := make([]Value, 0, len(el.Children))
	for _, c := range el.Children {
		children = append(children, valueFromChild(c, pragmaFrag))
	}

	return &Call{Name: name, Props: props, Children: children}
}

func valueFromChild(c ast.Child, pragmaFrag string) Value {
	if c.Kind == ast.ChildElement {
		return Value{Call: FromElement(c.Element, pragmaFrag)}
	}
	return Value{Text: c.Text}
}

func joinChildText(parts []ast.Child, pragmaFrag string) string {
	var sb strings.Builder
	for _, p := range parts {
		if p.Kind == ast.ChildElement {
			sb.WriteString(fmt.Sprintf("<%s>", FromElement(p.Element, pragmaFrag).Name))
		} else {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// Walker visits a Call and every Call reachable through its children,
// in depth-first order.
type Walker func(*Call)

// WalkTree applies w to c and to every nested Call within c's children.
func WalkTree(c *Call, w Walker) {
	if c == nil {
		return
	}
	w(c)
	for _, v := range c.Children {
		if v.Call != nil {
			WalkTree(v.Call, w)
		}
	}
}

// Equal reports whether a and b describe the same call tree.
func Equal(a, b *Call) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Children) != len(b.Children) {
		return false
	}
	if !equalProps(a.Props, b.Props) {
		return false
	}
	for i := range a.Children {
		av, bv := a.Children[i], b.Children[i]
		if (av.Call == nil) != (bv.Call == nil) {
			return false
		}
		if av.Call != nil {
			if !Equal(av.Call, bv.Call) {
				return false
			}
			continue
		}
		if av.Text != bv.Text {
			return false
		}
	}
	return true
}

func equalProps(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

// String renders a Call as a readable tree, used by `jsxc compile --ast`.
func (c *Call) String() string {
	var sb strings.Builder
	writeCall(&sb, c, 0)
	return sb.String()
}

func writeCall(sb *strings.Builder, c *Call, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s", indent, c.Name)
	if len(c.Props) > 0 {
		keys := make([]string, 0, len(c.Props))
		for k := range c.Props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprint(sb, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(sb, ", ")
			}
			fmt.Fprintf(sb, "%s=%s", k, c.Props[k])
		}
		fmt.Fprint(sb, "}")
	}
	sb.WriteString("\n")
	for _, v := range c.Children {
		if v.Call != nil {
			writeCall(sb, v.Call, depth+1)
		} else if strings.TrimSpace(v.Text) != "" {
			fmt.Fprintf(sb, "%s  %q\n", indent, v.Text)
		}
	}
}
