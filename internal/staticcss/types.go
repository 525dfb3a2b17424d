package staticcss

import (
	"encoding/json"

	"github.com/yacobolo/stylegen/internal/style"
)

const (
	// Wildcard expands to every known value of an axis.
	Wildcard = "*"
	// IgnoreSentinel marks the presence invocation of a recipe.
	IgnoreSentinel = "__ignore__"
)

// Context is the read-only catalogue of what the design system can emit.
// Lookups of unknown names return empty collections.
type Context interface {
	Breakpoints() []string
	RecipeKeys(recipe string) Catalogue
	PropertyKeys(property string) []string
	PatternKeys() []string
	PatternPropValues(pattern string) Catalogue
	PatternTransform(pattern string, props *style.Object) *style.Object
}

// Group is one axis of a catalogue: a variant group or a pattern prop.
type Group struct {
	Name   string
	Values []string
}

// Catalogue is an ordered list of groups.
type Catalogue []Group

// Values returns the values of the named group.
func (c Catalogue) Values(name string) []string {
	for _, g := range c {
		if g.Name == name {
			return g.Values
		}
	}
	return nil
}

// PropertyValues lists the values requested for one property or variant group.
type PropertyValues struct {
	Name   string
	Values []string
}

// IsWildcard reports whether the value list is ["*"].
func (p PropertyValues) IsWildcard() bool {
	return len(p.Values) == 1 && p.Values[0] == Wildcard
}

// CSSRule requests atomic utilities for every listed property value.
type CSSRule struct {
	Conditions []string
	Properties []PropertyValues
	Responsive bool
}

// RecipeRule is either the wildcard or a set of variant group selections
// sharing the same conditions.
type RecipeRule struct {
	Wildcard   bool
	Variants   []PropertyValues
	Conditions []string
	Responsive bool
}

// RecipeRules binds rules to a recipe name.
type RecipeRules struct {
	Recipe string
	Rules  []RecipeRule
}

// PatternRule is either the wildcard or a set of pattern prop selections.
type PatternRule struct {
	Wildcard   bool
	Properties []PropertyValues
	Conditions []string
	Responsive bool
}

// PatternRules binds rules to a pattern name ("*" for every pattern).
type PatternRules struct {
	Pattern string
	Rules   []PatternRule
}

// Config is the static CSS rule document.
type Config struct {
	CSS      []CSSRule
	Recipes  []RecipeRules
	Patterns []PatternRules
}

// SetRecipe replaces the rules of a recipe, or appends them when the recipe
// is not listed yet.
func (c *Config) SetRecipe(recipe string, rules []RecipeRule) {
	for i := range c.Recipes {
		if c.Recipes[i].Recipe == recipe {
			c.Recipes[i].Rules = rules
			return
		}
	}
	c.Recipes = append(c.Recipes, RecipeRules{Recipe: recipe, Rules: rules})
}

// IsEmpty reports whether the document requests nothing.
func (c *Config) IsEmpty() bool {
	return len(c.CSS) == 0 && len(c.Recipes) == 0 && len(c.Patterns) == 0
}

// RecipeInvocation selects variants of a recipe.
type RecipeInvocation struct {
	Recipe   string
	Variants *style.Object
}

// Presence returns the invocation forcing a recipe's base CSS.
func Presence(recipe string) RecipeInvocation {
	return RecipeInvocation{Recipe: recipe, Variants: style.Of(recipe, IgnoreSentinel)}
}

// IsPresence reports whether the invocation is the presence sentinel.
func (r RecipeInvocation) IsPresence() bool {
	v, ok := r.Variants.Get(r.Recipe)
	return ok && v == IgnoreSentinel && r.Variants.Len() == 1
}

// MarshalJSON renders the invocation as {recipe: selection}.
func (r RecipeInvocation) MarshalJSON() ([]byte, error) {
	return style.Of(r.Recipe, r.Variants).MarshalJSON()
}

// PatternInvocation is a pattern prop bag and the styles it transforms into.
type PatternInvocation struct {
	Pattern string
	Props   *style.Object
	Styles  *style.Object
}

// MarshalJSON renders the invocation as {pattern: props}.
func (p PatternInvocation) MarshalJSON() ([]byte, error) {
	return style.Of(p.Pattern, p.Props).MarshalJSON()
}

// Result is the exhaustive list of permutations.
type Result struct {
	CSS      []*style.Object     `json:"css"`
	Recipes  []RecipeInvocation  `json:"recipes"`
	Patterns []PatternInvocation `json:"patterns"`
}

// JSON renders the result with stable key order.
func (r *Result) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
