package theme

import (
	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
)

var _ staticcss.Context = (*Theme)(nil)

// Breakpoints returns the breakpoint names in ascending order.
func (t *Theme) Breakpoints() []string {
	return t.resolver.Breakpoints()
}

// RecipeKeys returns the variant catalogue of a recipe or slot recipe.
func (t *Theme) RecipeKeys(recipe string) staticcss.Catalogue {
	r, ok := t.recipeIndex[recipe]
	if !ok {
		return nil
	}
	return r.Catalogue()
}

// TokensCSS returns the style object of the tokens layer: every token as a
// custom property on :root, followed by the keyframes.
func (t *Theme) TokensCSS() *style.Object {
	out := style.New()
	if len(t.tokens) > 0 {
		vars := style.New()
		for _, tok := range t.tokens {
			vars.Set(tok.Var, tok.Value)
		}
		out.Set(":root", vars)
	}
	t.keyframes.Range(func(name string, frames any) bool {
		out.Set("@keyframes "+name, style.Clone(frames))
		return true
	})
	return out
}
