package theme

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/stylegen/internal/style"
)

const (
	textStyleProp  = "textStyle"
	layerStyleProp = "layerStyle"
)

// ValueSet is the allowed values of a utility or pattern prop: a token
// category, a literal list, or a mapping of aliases to values.
type ValueSet struct {
	Category string
	List     []string
	Aliases  *style.Object
}

// UnmarshalYAML accepts a category name, a list or a mapping.
func (v *ValueSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v.Category = node.Value
	case yaml.SequenceNode:
		return node.Decode(&v.List)
	case yaml.MappingNode:
		v.Aliases = style.New()
		return v.Aliases.UnmarshalYAML(node)
	default:
		return fmt.Errorf("line %d: values must be a token category, a list or a mapping", node.Line)
	}
	return nil
}

// Utility describes how a style property maps onto class names and values.
type Utility struct {
	// Property is the style key, "marginInlineStart".
	Property  string
	ClassName string
	Shorthand []string
	// CSSProperty overrides the hyphenated property name.
	CSSProperty string
	Values      ValueSet
}

type utilityDoc struct {
	ClassName string   `yaml:"className"`
	Shorthand names    `yaml:"shorthand"`
	Property  string   `yaml:"property"`
	Values    ValueSet `yaml:"values"`
}

func (t *Theme) loadUtilities(node *yaml.Node) error {
	err := eachPair(node, func(name string, val *yaml.Node) error {
		var doc utilityDoc
		if err := val.Decode(&doc); err != nil {
			return fmt.Errorf("utility %q: %w", name, err)
		}
		u := &Utility{
			Property:    name,
			ClassName:   doc.ClassName,
			Shorthand:   doc.Shorthand,
			CSSProperty: doc.Property,
			Values:      doc.Values,
		}
		t.utilities[name] = u
		for _, alias := range u.Shorthand {
			t.aliases[alias] = name
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Compositions are always available as utilities.
	for _, prop := range []string{textStyleProp, layerStyleProp} {
		if _, ok := t.utilities[prop]; !ok {
			t.utilities[prop] = &Utility{Property: prop, ClassName: prop}
		}
	}
	return nil
}

func (t *Theme) canonical(name string) string {
	if c, ok := t.aliases[name]; ok {
		return c
	}
	return name
}

// Utility returns the utility configured for a property or shorthand.
func (t *Theme) Utility(name string) (*Utility, bool) {
	u, ok := t.utilities[t.canonical(name)]
	return u, ok
}

// Property returns the CSS property for a style key.
func (t *Theme) Property(name string) string {
	name = t.canonical(name)
	if u, ok := t.utilities[name]; ok && u.CSSProperty != "" {
		return u.CSSProperty
	}
	return style.Hyphenate(name)
}

// Value resolves a raw value: aliases first, then the utility's token
// category, then inline "{path}" references.
func (t *Theme) Value(property, value string) string {
	if u, ok := t.Utility(property); ok {
		if alias, found := u.Values.Aliases.Get(value); found {
			if s, isScalar := style.Scalar(alias); isScalar {
				value = s
			}
		} else if u.Values.Category != "" && t.HasToken(u.Values.Category+"."+value) {
			return "token(" + u.Values.Category + "." + value + ")"
		}
	}
	return t.ReplaceReferences(value)
}

// Composition expands textStyle and layerStyle values.
func (t *Theme) Composition(property, value string) (*style.Object, bool) {
	var styles *style.Object
	switch t.canonical(property) {
	case textStyleProp:
		styles = t.textStyles[value]
	case layerStyleProp:
		styles = t.layerStyles[value]
	}
	if styles == nil {
		return nil, false
	}
	return styles.Clone(), true
}

// IsComposition reports whether property is textStyle or layerStyle.
func (t *Theme) IsComposition(property string) bool {
	p := t.canonical(property)
	return p == textStyleProp || p == layerStyleProp
}

// ClassName returns the class prefix of a property. Without a configured
// className the property name itself is used.
func (t *Theme) ClassName(property string) string {
	if u, ok := t.Utility(property); ok && u.ClassName != "" {
		return u.ClassName
	}
	return t.canonical(property)
}

// PropertyKeys lists the known values of a property.
func (t *Theme) PropertyKeys(property string) []string {
	switch t.canonical(property) {
	case textStyleProp:
		return append([]string(nil), t.textStyleNames...)
	case layerStyleProp:
		return append([]string(nil), t.layerStyleNames...)
	}
	u, ok := t.Utility(property)
	if !ok {
		return nil
	}
	return t.valueKeys(u.Values)
}

func (t *Theme) valueKeys(v ValueSet) []string {
	switch {
	case v.Category != "":
		return t.CategoryNames(v.Category)
	case v.List != nil:
		return append([]string(nil), v.List...)
	case v.Aliases != nil:
		return v.Aliases.Keys()
	}
	return nil
}
