// Package theme loads the design system document and adapts it to the
// collaborator interfaces of the compiler: the static CSS context, the
// serializer utility, the token resolver and the recipe catalogue.
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
)

// Theme is a loaded design system.
type Theme struct {
	breakpoints []conditions.Breakpoint
	resolver    *conditions.Resolver

	tokens     []Token
	tokenIndex map[string]int

	textStyles      map[string]*style.Object
	textStyleNames  []string
	layerStyles     map[string]*style.Object
	layerStyleNames []string
	keyframes       *style.Object
	globalCSS       *style.Object

	utilities map[string]*Utility
	aliases   map[string]string

	recipes     []*Recipe
	recipeIndex map[string]*Recipe

	patterns     []*Pattern
	patternIndex map[string]*Pattern

	staticCSS staticcss.Config
}

type document struct {
	Breakpoints *style.Object     `yaml:"breakpoints"`
	Conditions  map[string]string `yaml:"conditions"`
	Tokens      *style.Object     `yaml:"tokens"`
	TextStyles  *style.Object     `yaml:"textStyles"`
	LayerStyles *style.Object     `yaml:"layerStyles"`
	Keyframes   *style.Object     `yaml:"keyframes"`
	Utilities   yaml.Node         `yaml:"utilities"`
	GlobalCSS   *style.Object     `yaml:"globalCss"`
	Recipes     yaml.Node         `yaml:"recipes"`
	SlotRecipes yaml.Node         `yaml:"slotRecipes"`
	Patterns    yaml.Node         `yaml:"patterns"`
	StaticCSS   yaml.Node         `yaml:"staticCss"`
}

// Load reads a theme document from disk.
func Load(path string) (*Theme, error) {
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a theme document (YAML or JSON). Unknown top-level keys
// are rejected.
func Parse(data []byte) (*Theme, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	return build(&doc)
}

func build(doc *document) (*Theme, error) {
	t := &Theme{
		tokenIndex:   make(map[string]int),
		textStyles:   make(map[string]*style.Object),
		layerStyles:  make(map[string]*style.Object),
		keyframes:    doc.Keyframes,
		globalCSS:    doc.GlobalCSS,
		utilities:    make(map[string]*Utility),
		aliases:      make(map[string]string),
		recipeIndex:  make(map[string]*Recipe),
		patternIndex: make(map[string]*Pattern),
	}

	var err error
	doc.Breakpoints.Range(func(name string, v any) bool {
		width, ok := style.Scalar(v)
		if !ok {
			err = fmt.Errorf("breakpoint %q: width must be a scalar", name)
			return false
		}
		t.breakpoints = append(t.breakpoints, conditions.Breakpoint{Name: name, Width: width})
		return true
	})
	if err != nil {
		return nil, err
	}
	t.resolver = conditions.New(t.breakpoints, doc.Conditions)

	if err := t.loadTokens(doc.Tokens); err != nil {
		return nil, err
	}
	if t.textStyleNames, err = flattenValues(doc.TextStyles, t.textStyles); err != nil {
		return nil, fmt.Errorf("textStyles: %w", err)
	}
	if t.layerStyleNames, err = flattenValues(doc.LayerStyles, t.layerStyles); err != nil {
		return nil, fmt.Errorf("layerStyles: %w", err)
	}
	if err := t.loadUtilities(&doc.Utilities); err != nil {
		return nil, err
	}
	if err := t.loadRecipes(&doc.Recipes, false); err != nil {
		return nil, err
	}
	if err := t.loadRecipes(&doc.SlotRecipes, true); err != nil {
		return nil, err
	}
	if err := t.loadPatterns(&doc.Patterns); err != nil {
		return nil, err
	}
	if doc.StaticCSS.Kind != 0 {
		if err := t.staticCSS.UnmarshalYAML(&doc.StaticCSS); err != nil {
			return nil, fmt.Errorf("staticCss: %w", err)
		}
	}
	return t, nil
}

// Conditions returns the condition resolver built from the breakpoints
// and custom conditions.
func (t *Theme) Conditions() *conditions.Resolver {
	return t.resolver
}

// StaticRules returns the theme's own static CSS rules with every
// recipe-level staticCss merged in. Recipe rules replace the entry of the
// same recipe.
func (t *Theme) StaticRules(base *staticcss.Config) staticcss.Config {
	src := t.staticCSS
	if base != nil {
		src = *base
	}
	out := staticcss.Config{
		CSS:      append([]staticcss.CSSRule(nil), src.CSS...),
		Recipes:  append([]staticcss.RecipeRules(nil), src.Recipes...),
		Patterns: append([]staticcss.PatternRules(nil), src.Patterns...),
	}
	for _, r := range t.recipes {
		if r.StaticCSS != nil {
			out.SetRecipe(r.Name, r.StaticCSS)
		}
	}
	return out
}

// GlobalCSS returns the globalCss style object, nil when absent.
func (t *Theme) GlobalCSS() *style.Object {
	return t.globalCSS
}

// eachPair iterates a mapping node. A zero node is an empty mapping.
func eachPair(node *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// names is a scalar or a list of scalars.
type names []string

func (n *names) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*n = names{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*n = list
		return nil
	}
	return fmt.Errorf("line %d: expected a name or a list of names", node.Line)
}
