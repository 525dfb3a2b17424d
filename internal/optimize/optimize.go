// Package optimize restructures printed CSS: empty blocks go away,
// duplicates collapse and adjacent blocks with the same prelude merge.
package optimize

import (
	"fmt"

	"github.com/yacobolo/stylegen/internal/cssast"
)

// Options control the printed form.
type Options struct {
	Minify bool
}

// Optimizer is the default optimizer.
type Optimizer struct{}

// Optimize implements the stylesheet optimizer contract.
func (Optimizer) Optimize(css string, opts Options) (string, error) {
	return Optimize(css, opts)
}

// Optimize parses css, optimizes the tree and prints it. Running it on its
// own output returns the same text.
func Optimize(css string, opts Options) (string, error) {
	root, err := cssast.Parse(css)
	if err != nil {
		return "", fmt.Errorf("optimize: %w", err)
	}
	Tree(root)
	if opts.Minify {
		return cssast.Minify(root), nil
	}
	return cssast.Print(root), nil
}

// Tree optimizes a tree in place.
func Tree(c cssast.Container) {
	for _, child := range c.Children() {
		if cc, ok := child.(cssast.Container); ok {
			Tree(cc)
		}
	}
	for pass(c) {
	}
}

// pass runs one round of sibling rewrites and reports whether it changed
// anything.
func pass(c cssast.Container) bool {
	nodes := c.Children()
	changed := false

	kept := make([]cssast.Node, 0, len(nodes))
	for _, n := range nodes {
		if isEmptyBlock(n) {
			changed = true
			continue
		}
		if len(kept) > 0 && mergeInto(kept[len(kept)-1], n) {
			changed = true
			continue
		}
		kept = append(kept, n)
	}

	unique := dedupeRules(kept)
	if len(unique) != len(kept) {
		changed = true
	}
	if deduped := dedupeDecls(unique); len(deduped) != len(unique) {
		unique = deduped
		changed = true
	}
	c.SetChildren(unique)
	return changed
}

// dedupeRules drops a rule repeated later among its siblings; the last
// occurrence stays so the cascade is unchanged. At-rules are left alone,
// their first occurrence may fix a layer order.
func dedupeRules(nodes []cssast.Node) []cssast.Node {
	last := make(map[string]int)
	for i, n := range nodes {
		if _, ok := n.(*cssast.Rule); ok {
			last[cssast.Minify(n)] = i
		}
	}
	out := make([]cssast.Node, 0, len(nodes))
	for i, n := range nodes {
		if _, ok := n.(*cssast.Rule); ok && last[cssast.Minify(n)] != i {
			continue
		}
		out = append(out, n)
	}
	return out
}

func isEmptyBlock(n cssast.Node) bool {
	switch t := n.(type) {
	case *cssast.Rule:
		return len(t.Nodes) == 0
	case *cssast.AtRule:
		return t.Block && len(t.Nodes) == 0
	}
	return false
}

// mergeInto folds n into prev when both are rules with the same selector
// or at-rule blocks with the same prelude.
func mergeInto(prev, n cssast.Node) bool {
	switch t := n.(type) {
	case *cssast.Rule:
		p, ok := prev.(*cssast.Rule)
		if !ok || p.Selector != t.Selector {
			return false
		}
		p.Nodes = append(p.Nodes, t.Nodes...)
		Tree(p)
		return true
	case *cssast.AtRule:
		p, ok := prev.(*cssast.AtRule)
		if !ok || !p.Block || !t.Block || p.Name != t.Name || p.Params != t.Params {
			return false
		}
		p.Nodes = append(p.Nodes, t.Nodes...)
		Tree(p)
		return true
	}
	return false
}

// dedupeDecls drops declarations repeated later with the same property and
// value; the last occurrence stays.
func dedupeDecls(nodes []cssast.Node) []cssast.Node {
	last := make(map[cssast.Decl]int)
	for i, n := range nodes {
		if d, ok := n.(*cssast.Decl); ok {
			last[*d] = i
		}
	}
	out := make([]cssast.Node, 0, len(nodes))
	for i, n := range nodes {
		if d, ok := n.(*cssast.Decl); ok && last[*d] != i {
			continue
		}
		out = append(out, n)
	}
	return out
}
