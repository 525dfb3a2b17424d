package cssast

import (
	"strings"
)

const indentUnit = "  "

// Print renders n with two-space indentation and a blank line between
// top-level nodes.
func Print(n Node) string {
	var b strings.Builder
	if root, ok := n.(*Root); ok {
		for i, child := range root.Nodes {
			if i > 0 {
				b.WriteString("\n\n")
			}
			printNode(&b, child, 0)
		}
		return b.String()
	}
	printNode(&b, n, 0)
	return b.String()
}

func printNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch t := n.(type) {
	case *Decl:
		b.WriteString(indent)
		b.WriteString(t.Prop)
		b.WriteString(": ")
		b.WriteString(t.Value)
		b.WriteByte(';')
	case *Comment:
		b.WriteString(indent)
		b.WriteString("/* ")
		b.WriteString(strings.TrimSpace(t.Text))
		b.WriteString(" */")
	case *Raw:
		lines := strings.Split(strings.TrimSpace(t.Text), "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(indent)
			}
			b.WriteString(line)
		}
	case *Rule:
		b.WriteString(indent)
		b.WriteString(t.Selector)
		printBlock(b, t.Nodes, depth)
	case *AtRule:
		b.WriteString(indent)
		b.WriteString(atRulePrelude(t, " "))
		if !t.Block {
			b.WriteByte(';')
			return
		}
		printBlock(b, t.Nodes, depth)
	case *Root:
		for i, child := range t.Nodes {
			if i > 0 {
				b.WriteByte('\n')
			}
			printNode(b, child, depth)
		}
	}
}

func printBlock(b *strings.Builder, nodes []Node, depth int) {
	if len(nodes) == 0 {
		b.WriteString(" {}")
		return
	}
	b.WriteString(" {\n")
	for _, child := range nodes {
		printNode(b, child, depth+1)
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteByte('}')
}

func atRulePrelude(a *AtRule, sep string) string {
	if a.Params == "" {
		return "@" + a.Name
	}
	return "@" + a.Name + sep + a.Params
}

// Minify renders n without insignificant whitespace or comments.
func Minify(n Node) string {
	var b strings.Builder
	minifyNode(&b, n)
	return b.String()
}

func minifyNode(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Decl:
		b.WriteString(t.Prop)
		b.WriteByte(':')
		b.WriteString(minifyValue(t.Value))
	case *Comment:
	case *Raw:
		b.WriteString(strings.TrimSpace(t.Text))
	case *Rule:
		b.WriteString(minifyList(t.Selector))
		minifyBlock(b, t.Nodes)
	case *AtRule:
		b.WriteString(atRulePrelude(&AtRule{Name: t.Name, Params: minifyList(t.Params)}, " "))
		if !t.Block {
			b.WriteByte(';')
			return
		}
		minifyBlock(b, t.Nodes)
	case *Root:
		minifyChildren(b, t.Nodes)
	}
}

func minifyBlock(b *strings.Builder, nodes []Node) {
	b.WriteByte('{')
	minifyChildren(b, nodes)
	b.WriteByte('}')
}

func minifyChildren(b *strings.Builder, nodes []Node) {
	var last *Decl
	for _, child := range nodes {
		if _, ok := child.(*Comment); ok {
			continue
		}
		if last != nil {
			b.WriteByte(';')
		}
		last = nil
		minifyNode(b, child)
		if d, ok := child.(*Decl); ok {
			last = d
		}
	}
}

func minifyList(s string) string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.Join(strings.Fields(p), " ")
	}
	return strings.Join(parts, ",")
}

func minifyValue(v string) string {
	v = strings.Join(strings.Fields(v), " ")
	return strings.Replace(v, " !important", "!important", 1)
}
