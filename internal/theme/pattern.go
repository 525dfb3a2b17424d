package theme

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
)

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Pattern is a layout primitive: a set of props and a style template the
// props are substituted into.
type Pattern struct {
	Name       string
	Properties []PatternProperty
	// Transform maps style keys to values; "{prop}" placeholders name
	// pattern properties.
	Transform *style.Object
}

// PatternProperty is one prop of a pattern.
type PatternProperty struct {
	Name   string
	Values ValueSet
}

type patternDoc struct {
	Description string        `yaml:"description"`
	Properties  yaml.Node     `yaml:"properties"`
	Transform   *style.Object `yaml:"transform"`
}

type patternPropDoc struct {
	Values ValueSet `yaml:"values"`
}

func (t *Theme) loadPatterns(node *yaml.Node) error {
	return eachPair(node, func(name string, val *yaml.Node) error {
		var doc patternDoc
		if err := val.Decode(&doc); err != nil {
			return fmt.Errorf("pattern %q: %w", name, err)
		}
		p := &Pattern{Name: name, Transform: doc.Transform}
		err := eachPair(&doc.Properties, func(prop string, pv *yaml.Node) error {
			var pd patternPropDoc
			if err := pv.Decode(&pd); err != nil {
				return fmt.Errorf("pattern %q: property %q: %w", name, prop, err)
			}
			p.Properties = append(p.Properties, PatternProperty{Name: prop, Values: pd.Values})
			return nil
		})
		if err != nil {
			return err
		}
		t.patterns = append(t.patterns, p)
		t.patternIndex[name] = p
		return nil
	})
}

func (p *Pattern) hasProperty(name string) bool {
	for _, prop := range p.Properties {
		if prop.Name == name {
			return true
		}
	}
	return false
}

// Apply substitutes props into the transform template. Props the template
// does not consume and that are not pattern properties pass through as
// plain styles.
func (p *Pattern) Apply(props *style.Object) *style.Object {
	if p.Transform == nil {
		return props.Clone()
	}
	out := p.substitute(p.Transform, props)
	props.Range(func(key string, v any) bool {
		if !p.hasProperty(key) && !out.Has(key) {
			out.Set(key, style.Clone(v))
		}
		return true
	})
	return out
}

func (p *Pattern) substitute(tpl, props *style.Object) *style.Object {
	out := style.New()
	tpl.Range(func(key string, v any) bool {
		switch t := v.(type) {
		case *style.Object:
			if nested := p.substitute(t, props); nested.Len() > 0 {
				out.Set(key, nested)
			}
		case string:
			if m := placeholder.FindStringSubmatch(t); m != nil && m[0] == t && p.hasProperty(m[1]) {
				if pv, ok := props.Get(m[1]); ok && pv != nil {
					out.Set(key, style.Clone(pv))
				}
				return true
			}
			missing := false
			value := placeholder.ReplaceAllStringFunc(t, func(ph string) string {
				name := ph[1 : len(ph)-1]
				if !p.hasProperty(name) {
					return ph
				}
				pv, _ := props.Get(name)
				s, ok := style.Scalar(pv)
				if !ok {
					missing = true
					return ph
				}
				return s
			})
			if !missing {
				out.Set(key, value)
			}
		default:
			out.Set(key, v)
		}
		return true
	})
	return out
}

// Pattern looks a pattern up by name.
func (t *Theme) Pattern(name string) (*Pattern, bool) {
	p, ok := t.patternIndex[name]
	return p, ok
}

// PatternKeys lists pattern names in document order.
func (t *Theme) PatternKeys() []string {
	out := make([]string, len(t.patterns))
	for i, p := range t.patterns {
		out[i] = p.Name
	}
	return out
}

// PatternPropValues returns the props of a pattern with their known values.
func (t *Theme) PatternPropValues(pattern string) staticcss.Catalogue {
	p, ok := t.patternIndex[pattern]
	if !ok {
		return nil
	}
	out := make(staticcss.Catalogue, 0, len(p.Properties))
	for _, prop := range p.Properties {
		out = append(out, staticcss.Group{Name: prop.Name, Values: t.valueKeys(prop.Values)})
	}
	return out
}

// PatternTransform turns pattern props into styles. Unknown patterns
// return the props unchanged.
func (t *Theme) PatternTransform(pattern string, props *style.Object) *style.Object {
	p, ok := t.patternIndex[pattern]
	if !ok {
		return props
	}
	return p.Apply(props)
}
