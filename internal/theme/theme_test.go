package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
)

func loadFixture(t *testing.T) *Theme {
	t.Helper()
	th, err := Load("../../testdata/theme.yaml")
	require.NoError(t, err)
	return th
}

func TestLoad(t *testing.T) {
	th := loadFixture(t)

	assert.Equal(t, []string{"sm", "md"}, th.Breakpoints())
	q, ok := th.Conditions().MediaQuery("md")
	require.True(t, ok)
	assert.Equal(t, "screen and (min-width: 48em)", q)

	names := make([]string, 0)
	for _, r := range th.Recipes() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"buttonStyle", "tooltipStyle", "checkbox"}, names)
	assert.Equal(t, []string{"stack"}, th.PatternKeys())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("colours: {}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colours")
}

func TestParseEmpty(t *testing.T) {
	th, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, th.Breakpoints())
	assert.Empty(t, th.Tokens())
	assert.Equal(t, 0, th.TokensCSS().Len())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "token without category", src: "tokens: {red: {value: x}}", msg: "category"},
		{name: "slot recipe without slots", src: "slotRecipes: {card: {base: {}}}", msg: "slots are required"},
		{name: "bad variant group", src: "recipes: {btn: {variants: {size: 3}}}", msg: `variant group "size"`},
		{name: "duplicate recipe", src: "recipes: {a: {}}\nslotRecipes: {a: {slots: [x]}}", msg: "defined twice"},
		{name: "bad static rules", src: "recipes: {a: {staticCss: 3}}", msg: "staticCss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestTokens(t *testing.T) {
	th := loadFixture(t)

	v, ok := th.Token("colors.red.200")
	require.True(t, ok)
	assert.Equal(t, "var(--colors-red-200)", v)

	_, ok = th.Token("colors.pink.200")
	assert.False(t, ok)

	assert.Equal(t, []string{"red.200", "blue.200", "green.200", "brand"}, th.CategoryNames("colors"))
	assert.Equal(t, "1px solid token(colors.red.200)", th.ReplaceReferences("1px solid {colors.red.200}"))
	assert.Equal(t, "{colors.pink}", th.ReplaceReferences("{colors.pink}"))
}

func TestTokensCSS(t *testing.T) {
	th := loadFixture(t)
	css := th.TokensCSS()

	assert.Equal(t, []string{":root", "@keyframes spin"}, css.Keys())
	root, _ := css.Get(":root")
	vars, ok := style.AsObject(root)
	require.True(t, ok)
	brand, _ := vars.Get("--colors-brand")
	assert.Equal(t, "{colors.blue.200}", brand)
	assert.True(t, vars.Has("--font-weights-bold"))
}

func TestUtility(t *testing.T) {
	th := loadFixture(t)

	tests := []struct {
		prop, value string
		cssProp     string
		cssValue    string
		className   string
	}{
		{"color", "red.200", "color", "token(colors.red.200)", "c"},
		{"color", "#fff", "color", "#fff", "c"},
		{"marginStart", "2", "margin-inline-start", "token(spacing.2)", "ms"},
		{"ms", "4", "margin-inline-start", "token(spacing.4)", "ms"},
		{"flexDirection", "col", "flex-direction", "column", "flex"},
		{"borderWidth", "1px", "border-width", "1px", "borderWidth"},
		{"color", "{colors.brand}", "color", "token(colors.brand)", "c"},
	}
	for _, tt := range tests {
		t.Run(tt.prop+"="+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.cssProp, th.Property(tt.prop))
			assert.Equal(t, tt.cssValue, th.Value(tt.prop, tt.value))
			assert.Equal(t, tt.className, th.ClassName(tt.prop))
		})
	}
}

func TestPropertyKeys(t *testing.T) {
	th := loadFixture(t)

	assert.Equal(t, []string{"20px", "40px"}, th.PropertyKeys("margin"))
	assert.Equal(t, []string{"2", "4"}, th.PropertyKeys("ms"))
	assert.Equal(t, []string{"row", "col"}, th.PropertyKeys("flexDirection"))
	assert.Equal(t, []string{"headline.h1"}, th.PropertyKeys("textStyle"))
	assert.Nil(t, th.PropertyKeys("zIndex"))
}

func TestComposition(t *testing.T) {
	th := loadFixture(t)

	styles, ok := th.Composition("textStyle", "headline.h1")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"fontSize": "2rem", "fontWeight": "bold"}, styles.ToMap())
	assert.True(t, th.IsComposition("textStyle"))
	assert.False(t, th.IsComposition("color"))

	_, ok = th.Composition("textStyle", "missing")
	assert.False(t, ok)
}

func TestRecipes(t *testing.T) {
	th := loadFixture(t)

	assert.Equal(t, staticcss.Catalogue{
		{Name: "size", Values: []string{"sm", "md"}},
		{Name: "variant", Values: []string{"primary", "secondary"}},
	}, th.RecipeKeys("buttonStyle"))
	assert.Empty(t, th.RecipeKeys("tooltipStyle"))
	assert.Nil(t, th.RecipeKeys("missing"))

	cb, ok := th.Recipe("checkbox")
	require.True(t, ok)
	assert.True(t, cb.IsSlot())
	assert.Equal(t, []string{"root", "control", "label"}, cb.Slots)

	sm, ok := cb.VariantStyles("size", "sm")
	require.True(t, ok)
	assert.Equal(t, []string{"control", "label"}, sm.Keys())

	tooltip, _ := th.Recipe("tooltipStyle")
	assert.Equal(t, "tooltipStyle", tooltip.ClassName)
	assert.False(t, tooltip.IsSlot())
}

func TestStaticRulesMergesRecipeRules(t *testing.T) {
	th := loadFixture(t)

	base := staticcss.Config{Recipes: []staticcss.RecipeRules{
		{Recipe: "checkbox", Rules: []staticcss.RecipeRule{{Wildcard: true}}},
		{Recipe: "buttonStyle", Rules: []staticcss.RecipeRule{{Wildcard: true}}},
	}}
	got := th.StaticRules(&base)

	require.Len(t, got.Recipes, 2)
	assert.Equal(t, []staticcss.RecipeRule{
		{Variants: []staticcss.PropertyValues{{Name: "size", Values: []string{"*"}}}},
	}, got.Recipes[0].Rules)
	assert.Equal(t, []staticcss.RecipeRule{{Wildcard: true}}, got.Recipes[1].Rules)
	assert.Equal(t, []staticcss.RecipeRule{{Wildcard: true}}, base.Recipes[0].Rules)
}

func TestPatternTransform(t *testing.T) {
	th := loadFixture(t)

	assert.Equal(t, staticcss.Catalogue{
		{Name: "gap", Values: []string{"2", "4"}},
		{Name: "direction", Values: []string{"row", "column"}},
	}, th.PatternPropValues("stack"))

	got := th.PatternTransform("stack", style.Of("gap", style.Of("base", "2", "md", "4"), "color", "red.200"))
	assert.Equal(t, []string{"display", "gap", "color"}, got.Keys())
	assert.Equal(t, map[string]any{
		"display": "flex",
		"gap":     map[string]any{"base": "2", "md": "4"},
		"color":   "red.200",
	}, got.ToMap())

	props := style.Of("x", "1")
	assert.Same(t, props, th.PatternTransform("missing", props))
}
