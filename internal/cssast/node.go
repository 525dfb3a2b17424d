// Package cssast is the small CSS tree the stylesheet is assembled in:
// rules, at-rules, declarations, comments and raw text, with a printer
// and a parser backed by tdewolff/parse.
package cssast

// Node is an element of the tree.
type Node interface {
	node()
}

// Container is a node holding children.
type Container interface {
	Node
	Children() []Node
	SetChildren(nodes []Node)
	Append(nodes ...Node)
}

// Decl is a "prop: value" declaration. Value keeps a trailing !important.
type Decl struct {
	Prop  string
	Value string
}

// Rule is a qualified rule: a selector list and its block.
type Rule struct {
	Selector string
	Nodes    []Node
}

// AtRule is "@name params" with a block, or a statement ending in ";"
// when Block is false.
type AtRule struct {
	Name   string
	Params string
	Block  bool
	Nodes  []Node
}

// Comment is a /* ... */ comment, text without delimiters.
type Comment struct {
	Text string
}

// Raw is printed verbatim. Used for text that failed to parse so the final
// syntax check reports it.
type Raw struct {
	Text string
}

// Root is the top of a tree.
type Root struct {
	Nodes []Node
}

func (*Decl) node()    {}
func (*Rule) node()    {}
func (*AtRule) node()  {}
func (*Comment) node() {}
func (*Raw) node()     {}
func (*Root) node()    {}

func (r *Rule) Children() []Node     { return r.Nodes }
func (r *Rule) SetChildren(n []Node) { r.Nodes = n }
func (r *Rule) Append(n ...Node)     { r.Nodes = append(r.Nodes, n...) }

func (a *AtRule) Children() []Node     { return a.Nodes }
func (a *AtRule) SetChildren(n []Node) { a.Nodes = n }

// Append adds children and turns the at-rule into a block.
func (a *AtRule) Append(n ...Node) {
	a.Block = true
	a.Nodes = append(a.Nodes, n...)
}

func (r *Root) Children() []Node     { return r.Nodes }
func (r *Root) SetChildren(n []Node) { r.Nodes = n }
func (r *Root) Append(n ...Node)     { r.Nodes = append(r.Nodes, n...) }

// Prepend inserts nodes before the existing children.
func (r *Root) Prepend(n ...Node) {
	r.Nodes = append(append(make([]Node, 0, len(n)+len(r.Nodes)), n...), r.Nodes...)
}

// NewAtRule returns an empty at-rule block.
func NewAtRule(name, params string) *AtRule {
	return &AtRule{Name: name, Params: params, Block: true}
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch t := n.(type) {
	case *Decl:
		c := *t
		return &c
	case *Comment:
		c := *t
		return &c
	case *Raw:
		c := *t
		return &c
	case *Rule:
		return &Rule{Selector: t.Selector, Nodes: cloneAll(t.Nodes)}
	case *AtRule:
		return &AtRule{Name: t.Name, Params: t.Params, Block: t.Block, Nodes: cloneAll(t.Nodes)}
	case *Root:
		return &Root{Nodes: cloneAll(t.Nodes)}
	}
	return n
}

func cloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if c, ok := n.(Container); ok {
		for _, child := range c.Children() {
			Walk(child, fn)
		}
	}
}

// IsEmpty reports whether a container has no children.
func IsEmpty(c Container) bool {
	return len(c.Children()) == 0
}
