package stylesheet

import (
	"regexp"

	"github.com/yacobolo/stylegen/internal/cssast"
)

// Names of the fixed layers, as used by Process and the collector routing.
const (
	Reset            = "reset"
	Base             = "base"
	Tokens           = "tokens"
	RecipesBase      = "recipes_base"
	Recipes          = "recipes"
	RecipesSlotsBase = "recipes_slots_base"
	RecipesSlots     = "recipes_slots"
	Utilities        = "utilities"
	Compositions     = "compositions"
)

// baseSublayer holds recipe base rules inside the recipe layers.
const baseSublayer = "_base"

var layerIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// LayerNames are the cascade layer names printed in the output.
type LayerNames struct {
	Reset     string `yaml:"reset"`
	Base      string `yaml:"base"`
	Tokens    string `yaml:"tokens"`
	Recipes   string `yaml:"recipes"`
	Utilities string `yaml:"utilities"`
}

// DefaultLayerNames returns the standard cascade layer names.
func DefaultLayerNames() LayerNames {
	return LayerNames{
		Reset:     Reset,
		Base:      Base,
		Tokens:    Tokens,
		Recipes:   Recipes,
		Utilities: Utilities,
	}
}

func (n LayerNames) withDefaults() LayerNames {
	d := DefaultLayerNames()
	if n.Reset == "" {
		n.Reset = d.Reset
	}
	if n.Base == "" {
		n.Base = d.Base
	}
	if n.Tokens == "" {
		n.Tokens = d.Tokens
	}
	if n.Recipes == "" {
		n.Recipes = d.Recipes
	}
	if n.Utilities == "" {
		n.Utilities = d.Utilities
	}
	return n
}

// Layer is an ordered container of CSS nodes.
type Layer struct {
	name  string
	nodes []cssast.Node
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// Append adds nodes at the end of the layer.
func (l *Layer) Append(nodes ...cssast.Node) {
	l.nodes = append(l.nodes, nodes...)
}

// Nodes returns deep copies of the layer content.
func (l *Layer) Nodes() []cssast.Node {
	out := make([]cssast.Node, len(l.nodes))
	for i, n := range l.nodes {
		out[i] = cssast.Clone(n)
	}
	return out
}

// IsEmpty reports whether nothing was appended.
func (l *Layer) IsEmpty() bool {
	return len(l.nodes) == 0
}

func (l *Layer) clean() {
	l.nodes = nil
}

// layers is the fixed layer set plus custom layers in creation order.
type layers struct {
	fixed  map[string]*Layer
	custom []*Layer
}

func newLayers() *layers {
	ls := &layers{fixed: make(map[string]*Layer)}
	for _, name := range []string{Reset, Base, Tokens, RecipesBase, Recipes, RecipesSlotsBase, RecipesSlots, Utilities, Compositions} {
		ls.fixed[name] = &Layer{name: name}
	}
	return ls
}

// lookup resolves a layer, creating custom layers on demand. Empty or
// invalid names resolve to nil.
func (ls *layers) lookup(name string) *Layer {
	if l, ok := ls.fixed[name]; ok {
		return l
	}
	if !layerIdent.MatchString(name) {
		return nil
	}
	for _, l := range ls.custom {
		if l.name == name {
			return l
		}
	}
	l := &Layer{name: name}
	ls.custom = append(ls.custom, l)
	return l
}

func (ls *layers) clean() {
	for _, l := range ls.fixed {
		l.clean()
	}
	for _, l := range ls.custom {
		l.clean()
	}
}

func layerBlock(name string, nodes []cssast.Node) *cssast.AtRule {
	at := cssast.NewAtRule("layer", name)
	at.Append(nodes...)
	return at
}

// insert materializes the layer tree under a fresh root:
//
//	@layer reset { ... }
//	@layer base { ... }
//	@layer tokens { ... }
//	@layer recipes { @layer _base { ... } ... }
//	@layer recipes.slots { @layer _base { ... } ... }
//	@layer utilities { @layer compositions { ... } @layer <custom> { ... } ... }
//
// Empty layers are left out.
func (ls *layers) insert(root *cssast.Root, names LayerNames) {
	for _, simple := range []struct{ layer, name string }{
		{Reset, names.Reset},
		{Base, names.Base},
		{Tokens, names.Tokens},
	} {
		if l := ls.fixed[simple.layer]; !l.IsEmpty() {
			root.Append(layerBlock(simple.name, l.Nodes()))
		}
	}

	ls.insertRecipes(root, names.Recipes, ls.fixed[RecipesBase], ls.fixed[Recipes])
	ls.insertRecipes(root, names.Recipes+".slots", ls.fixed[RecipesSlotsBase], ls.fixed[RecipesSlots])

	util := cssast.NewAtRule("layer", names.Utilities)
	if l := ls.fixed[Compositions]; !l.IsEmpty() {
		util.Append(layerBlock(Compositions, l.Nodes()))
	}
	for _, l := range ls.custom {
		if !l.IsEmpty() {
			util.Append(layerBlock(l.name, l.Nodes()))
		}
	}
	util.Append(ls.fixed[Utilities].Nodes()...)
	if len(util.Nodes) > 0 {
		root.Append(util)
	}
}

func (ls *layers) insertRecipes(root *cssast.Root, name string, base, variants *Layer) {
	if base.IsEmpty() && variants.IsEmpty() {
		return
	}
	at := cssast.NewAtRule("layer", name)
	if !base.IsEmpty() {
		at.Append(layerBlock(baseSublayer, base.Nodes()))
	}
	at.Append(variants.Nodes()...)
	root.Append(at)
}
