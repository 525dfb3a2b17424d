package usage

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
)

// ParseDocument decodes a usage document:
//
//	css:
//	  - { color: red.200, _hover: { color: blue.200 } }
//	recipes:
//	  - buttonStyle: { size: sm }
//	  - tooltipStyle
//	patterns:
//	  - stack: { gap: "2" }
//
// A bare recipe name selects its default variants.
func ParseDocument(data []byte) (*staticcss.Result, error) {
	res := &staticcss.Result{
		CSS:      make([]*style.Object, 0),
		Recipes:  make([]staticcss.RecipeInvocation, 0),
		Patterns: make([]staticcss.PatternInvocation, 0),
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse usage: %w", err)
	}
	if len(doc.Content) == 0 {
		return res, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: usage document must be a mapping", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "css", "recipes", "patterns":
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", root.Content[i].Line, key)
		}
		if val.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: %s must be a list", val.Line, key)
		}
		for _, item := range val.Content {
			if err := decodeItem(res, key, item); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

func decodeItem(res *staticcss.Result, key string, item *yaml.Node) error {
	switch key {
	case "css":
		obj, err := object(item)
		if err != nil {
			return err
		}
		res.CSS = append(res.CSS, obj)

	case "recipes":
		if item.Kind == yaml.ScalarNode {
			res.Recipes = append(res.Recipes, staticcss.RecipeInvocation{Recipe: item.Value})
			return nil
		}
		name, val, err := single(item)
		if err != nil {
			return err
		}
		inv := staticcss.RecipeInvocation{Recipe: name}
		if !isNull(val) {
			if inv.Variants, err = object(val); err != nil {
				return err
			}
		}
		res.Recipes = append(res.Recipes, inv)

	case "patterns":
		name, val, err := single(item)
		if err != nil {
			return err
		}
		props := style.New()
		if !isNull(val) {
			if props, err = object(val); err != nil {
				return err
			}
		}
		res.Patterns = append(res.Patterns, staticcss.PatternInvocation{Pattern: name, Props: props})
	}
	return nil
}

func object(node *yaml.Node) (*style.Object, error) {
	obj := style.New()
	if err := obj.UnmarshalYAML(node); err != nil {
		return nil, err
	}
	return obj, nil
}

// single unpacks a one-entry mapping.
func single(node *yaml.Node) (string, *yaml.Node, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, fmt.Errorf("line %d: expected a single {name: value} entry", node.Line)
	}
	return node.Content[0].Value, node.Content[1], nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
