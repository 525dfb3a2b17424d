package theme

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
)

// Recipe is a multi-variant component style. Slot recipes style several
// named parts at once: their base and variant styles map slot names to
// style objects.
type Recipe struct {
	Name      string
	ClassName string
	Slots     []string
	Base      *style.Object
	Variants  []Variant
	// DefaultVariants maps a group to its default value.
	DefaultVariants *style.Object
	// StaticCSS holds the recipe's own static rules, nil when unset.
	StaticCSS []staticcss.RecipeRule
}

// Variant is one variant group and its values in document order.
type Variant struct {
	Group  string
	Values []string
	styles map[string]*style.Object
}

type recipeDoc struct {
	ClassName       string        `yaml:"className"`
	Description     string        `yaml:"description"`
	Slots           []string      `yaml:"slots"`
	Base            *style.Object `yaml:"base"`
	Variants        *style.Object `yaml:"variants"`
	DefaultVariants *style.Object `yaml:"defaultVariants"`
	StaticCSS       yaml.Node     `yaml:"staticCss"`
}

func (t *Theme) loadRecipes(node *yaml.Node, slots bool) error {
	return eachPair(node, func(name string, val *yaml.Node) error {
		if _, dup := t.recipeIndex[name]; dup {
			return fmt.Errorf("recipe %q defined twice", name)
		}
		var doc recipeDoc
		if err := val.Decode(&doc); err != nil {
			return fmt.Errorf("recipe %q: %w", name, err)
		}
		if slots && len(doc.Slots) == 0 {
			return fmt.Errorf("slot recipe %q: slots are required", name)
		}

		r := &Recipe{
			Name:            name,
			ClassName:       doc.ClassName,
			Slots:           doc.Slots,
			Base:            doc.Base,
			DefaultVariants: doc.DefaultVariants,
		}
		if !slots {
			r.Slots = nil
		}
		if r.ClassName == "" {
			r.ClassName = name
		}

		var err error
		doc.Variants.Range(func(group string, v any) bool {
			values, ok := style.AsObject(v)
			if !ok {
				err = fmt.Errorf("recipe %q: variant group %q must be a mapping", name, group)
				return false
			}
			variant := Variant{Group: group, styles: make(map[string]*style.Object)}
			values.Range(func(value string, sv any) bool {
				styles, _ := style.AsObject(sv)
				if styles == nil {
					styles = style.New()
				}
				variant.Values = append(variant.Values, value)
				variant.styles[value] = styles
				return true
			})
			r.Variants = append(r.Variants, variant)
			return true
		})
		if err != nil {
			return err
		}

		if doc.StaticCSS.Kind != 0 {
			rules, err := staticcss.DecodeRecipeRules(&doc.StaticCSS)
			if err != nil {
				return fmt.Errorf("recipe %q: staticCss: %w", name, err)
			}
			if rules == nil {
				rules = []staticcss.RecipeRule{}
			}
			r.StaticCSS = rules
		}

		t.recipes = append(t.recipes, r)
		t.recipeIndex[name] = r
		return nil
	})
}

// IsSlot reports whether the recipe styles named slots.
func (r *Recipe) IsSlot() bool {
	return len(r.Slots) > 0
}

// Catalogue returns the variant groups and their values.
func (r *Recipe) Catalogue() staticcss.Catalogue {
	out := make(staticcss.Catalogue, 0, len(r.Variants))
	for _, v := range r.Variants {
		out = append(out, staticcss.Group{Name: v.Group, Values: append([]string(nil), v.Values...)})
	}
	return out
}

// VariantStyles returns the styles of one variant value.
func (r *Recipe) VariantStyles(group, value string) (*style.Object, bool) {
	for _, v := range r.Variants {
		if v.Group != group {
			continue
		}
		s, ok := v.styles[value]
		return s, ok
	}
	return nil, false
}

// Recipe looks a recipe or slot recipe up by name.
func (t *Theme) Recipe(name string) (*Recipe, bool) {
	r, ok := t.recipeIndex[name]
	return r, ok
}

// Recipes returns every recipe, then every slot recipe, in document order.
func (t *Theme) Recipes() []*Recipe {
	return append([]*Recipe(nil), t.recipes...)
}
