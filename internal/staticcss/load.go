package staticcss

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a static CSS rule document (YAML or JSON).
func LoadRules(path string) (Config, error) {
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read rules: %w", err)
	}
	cfg, err := ParseRules(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseRules decodes a static CSS rule document. The rules may sit at the
// document root or under a "staticCss" key.
func ParseRules(data []byte) (Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse rules: %w", err)
	}
	var cfg Config
	if len(doc.Content) == 0 {
		return cfg, nil
	}
	if err := cfg.UnmarshalYAML(doc.Content[0]); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UnmarshalYAML decodes the rule document keeping mapping order.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: static css rules must be a mapping", node.Line)
	}
	if inner := lookup(node, "staticCss"); inner != nil {
		return c.UnmarshalYAML(inner)
	}

	var cfg Config
	err := eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "css":
			if val.Kind != yaml.SequenceNode {
				return fmt.Errorf("line %d: css must be a list of rules", val.Line)
			}
			for _, item := range val.Content {
				rule, err := decodeCSSRule(item)
				if err != nil {
					return err
				}
				cfg.CSS = append(cfg.CSS, rule)
			}
		case "recipes":
			return eachPair(val, func(name string, rn *yaml.Node) error {
				rules, err := DecodeRecipeRules(rn)
				if err != nil {
					return fmt.Errorf("recipe %q: %w", name, err)
				}
				cfg.Recipes = append(cfg.Recipes, RecipeRules{Recipe: name, Rules: rules})
				return nil
			})
		case "patterns":
			return eachPair(val, func(name string, pn *yaml.Node) error {
				rules, err := decodePatternRules(pn)
				if err != nil {
					return fmt.Errorf("pattern %q: %w", name, err)
				}
				cfg.Patterns = append(cfg.Patterns, PatternRules{Pattern: name, Rules: rules})
				return nil
			})
		default:
			return fmt.Errorf("line %d: unknown key %q", val.Line, key)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

func decodeCSSRule(node *yaml.Node) (CSSRule, error) {
	var rule CSSRule
	if node.Kind != yaml.MappingNode {
		return rule, fmt.Errorf("line %d: css rule must be a mapping", node.Line)
	}
	err := eachPair(node, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "conditions":
			rule.Conditions, err = stringList(val)
		case "responsive":
			err = val.Decode(&rule.Responsive)
		case "properties":
			rule.Properties, err = propertyValues(val)
		default:
			err = fmt.Errorf("line %d: unknown css rule key %q", val.Line, key)
		}
		return err
	})
	return rule, err
}

// DecodeRecipeRules decodes `"*"`, a list of `"*"` entries, or a list of
// variant group selections.
func DecodeRecipeRules(node *yaml.Node) ([]RecipeRule, error) {
	if isWildcard(node) {
		return []RecipeRule{{Wildcard: true}}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: recipe rules must be \"*\" or a list", node.Line)
	}

	var rules []RecipeRule
	for _, item := range node.Content {
		if isWildcard(item) {
			rules = append(rules, RecipeRule{Wildcard: true})
			continue
		}
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: recipe rule must be \"*\" or a mapping", item.Line)
		}
		var rule RecipeRule
		err := eachPair(item, func(key string, val *yaml.Node) error {
			var err error
			switch key {
			case "conditions":
				rule.Conditions, err = stringList(val)
			case "responsive":
				err = val.Decode(&rule.Responsive)
			default:
				values, lerr := stringList(val)
				if lerr != nil {
					return lerr
				}
				rule.Variants = append(rule.Variants, PropertyValues{Name: key, Values: values})
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func decodePatternRules(node *yaml.Node) ([]PatternRule, error) {
	if isWildcard(node) {
		return []PatternRule{{Wildcard: true}}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: pattern rules must be \"*\" or a list", node.Line)
	}

	var rules []PatternRule
	for _, item := range node.Content {
		if isWildcard(item) {
			rules = append(rules, PatternRule{Wildcard: true})
			continue
		}
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: pattern rule must be \"*\" or a mapping", item.Line)
		}
		var rule PatternRule
		err := eachPair(item, func(key string, val *yaml.Node) error {
			var err error
			switch key {
			case "conditions":
				rule.Conditions, err = stringList(val)
			case "responsive":
				err = val.Decode(&rule.Responsive)
			case "properties":
				rule.Properties, err = propertyValues(val)
			default:
				err = fmt.Errorf("line %d: unknown pattern rule key %q", val.Line, key)
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func propertyValues(node *yaml.Node) ([]PropertyValues, error) {
	var out []PropertyValues
	err := eachPair(node, func(key string, val *yaml.Node) error {
		values, err := stringList(val)
		if err != nil {
			return err
		}
		out = append(out, PropertyValues{Name: key, Values: values})
		return nil
	})
	return out, err
}

// stringList accepts a scalar or a list of scalars.
func stringList(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: expected a scalar value", item.Line)
			}
			out = append(out, item.Value)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: expected a value or a list of values", node.Line)
}

func isWildcard(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == Wildcard
}

func eachPair(node *yaml.Node, fn func(key string, val *yaml.Node) error) error {
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

func lookup(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
