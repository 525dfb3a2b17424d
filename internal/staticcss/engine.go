// Package staticcss expands static CSS rule documents into every concrete
// style object, recipe invocation and pattern invocation they allow.
package staticcss

import (
	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/style"
)

// Expand produces the permutations of config under ctx.
func Expand(config Config, ctx Context) *Result {
	e := &expander{ctx: ctx, breakpoints: ctx.Breakpoints()}
	result := &Result{
		CSS:      make([]*style.Object, 0),
		Recipes:  make([]RecipeInvocation, 0),
		Patterns: make([]PatternInvocation, 0),
	}

	for _, rule := range config.CSS {
		result.CSS = append(result.CSS, e.css(rule)...)
	}
	for _, rr := range config.Recipes {
		result.Recipes = append(result.Recipes, e.recipe(rr)...)
	}
	for _, pr := range config.Patterns {
		result.Patterns = append(result.Patterns, e.pattern(pr)...)
	}

	return result
}

type expander struct {
	ctx         Context
	breakpoints []string
}

// conditionsFor returns the effective conditions of a rule: the
// breakpoints when responsive, followed by the explicit conditions.
func (e *expander) conditionsFor(explicit []string, responsive bool) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if responsive {
		for _, bp := range e.breakpoints {
			add(bp)
		}
	}
	for _, c := range explicit {
		add(c)
	}
	return out
}

func (e *expander) wrap(value string, conds []string) any {
	if len(conds) == 0 {
		return value
	}
	return conditions.ToConditionalValue(value, conds, e.breakpoints)
}

func (e *expander) css(rule CSSRule) []*style.Object {
	conds := e.conditionsFor(rule.Conditions, rule.Responsive)

	var out []*style.Object
	for _, pv := range rule.Properties {
		values := pv.Values
		if pv.IsWildcard() {
			values = e.ctx.PropertyKeys(pv.Name)
		}
		for _, v := range values {
			out = append(out, style.New().Set(pv.Name, e.wrap(v, conds)))
		}
	}
	return out
}

func (e *expander) recipe(rr RecipeRules) []RecipeInvocation {
	catalogue := e.ctx.RecipeKeys(rr.Recipe)
	out := []RecipeInvocation{Presence(rr.Recipe)}

	emit := func(group string, value any) {
		out = append(out, RecipeInvocation{
			Recipe:   rr.Recipe,
			Variants: style.New().Set(group, value),
		})
	}

	for _, rule := range rr.Rules {
		if rule.Wildcard {
			for _, g := range catalogue {
				for _, v := range g.Values {
					emit(g.Name, v)
				}
			}
			continue
		}

		conds := e.conditionsFor(rule.Conditions, rule.Responsive)
		for _, vv := range rule.Variants {
			values := vv.Values
			if vv.IsWildcard() {
				values = catalogue.Values(vv.Name)
			}
			for _, v := range values {
				emit(vv.Name, e.wrap(v, conds))
			}
		}
	}

	return out
}

func (e *expander) pattern(pr PatternRules) []PatternInvocation {
	names := []string{pr.Pattern}
	if pr.Pattern == Wildcard {
		names = e.ctx.PatternKeys()
	}

	var out []PatternInvocation
	for _, name := range names {
		catalogue := e.ctx.PatternPropValues(name)

		emit := func(prop string, value any) {
			props := style.New().Set(prop, value)
			out = append(out, PatternInvocation{
				Pattern: name,
				Props:   props,
				Styles:  e.ctx.PatternTransform(name, props.Clone()),
			})
		}

		for _, rule := range pr.Rules {
			if rule.Wildcard {
				for _, g := range catalogue {
					for _, v := range g.Values {
						emit(g.Name, v)
					}
				}
				continue
			}

			conds := e.conditionsFor(rule.Conditions, rule.Responsive)
			for _, pv := range rule.Properties {
				values := pv.Values
				if pv.IsWildcard() {
					values = catalogue.Values(pv.Name)
				}
				for _, v := range values {
					emit(pv.Name, e.wrap(v, conds))
				}
			}
		}
	}
	return out
}
