package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/stylegen/internal/collector"
	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
	"github.com/yacobolo/stylegen/internal/theme"
)

func newProcessor(t *testing.T) (*Processor, *collector.Collector) {
	t.Helper()
	th, err := theme.Load("../../testdata/theme.yaml")
	require.NoError(t, err)
	c := collector.New()
	return New(th, c, nil), c
}

func entryMaps(entries []collector.Entry) []map[string]any {
	out := make([]map[string]any, len(entries))
	for i, e := range entries {
		out[i] = e.Styles.ToMap()
	}
	return out
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"c_red.200":       `c_red\.200`,
		"sm:c_red.200":    `sm\:c_red\.200`,
		"2xl:m_4":         `\32 xl\:m_4`,
		"w_50%":           `w_50\%`,
		"c_red!":          `c_red\!`,
		"button--size_sm": "button--size_sm",
	}
	for in, want := range tests {
		assert.Equal(t, want, Escape(in), in)
	}
}

func TestAtomic(t *testing.T) {
	p, c := newProcessor(t)

	classes := p.Atomic(style.Of("color", style.Of("base", "red.200", "sm", "red.200", "_hover", "red.200")))
	assert.Equal(t, []string{"c_red.200", "sm:c_red.200", "hover:c_red.200"}, classes)

	assert.Equal(t, []map[string]any{
		{`.c_red\.200`: map[string]any{"color": "red.200"}},
		{`.sm\:c_red\.200`: map[string]any{"sm": map[string]any{"color": "red.200"}}},
		{`.hover\:c_red\.200`: map[string]any{"_hover": map[string]any{"color": "red.200"}}},
	}, entryMaps(c.Entries(collector.Atomic)))
}

func TestAtomicConditionBlocks(t *testing.T) {
	p, c := newProcessor(t)

	classes := p.Atomic(style.Of("margin", "20px", "md", style.Of("_hover", style.Of("padding", "1px solid"))))
	assert.Equal(t, []string{"m_20px", "md:hover:p_1px_solid"}, classes)
	assert.Equal(t, map[string]any{
		`.md\:hover\:p_1px_solid`: map[string]any{"md": map[string]any{"_hover": map[string]any{"padding": "1px solid"}}},
	}, c.Entries(collector.Atomic)[1].Styles.ToMap())
}

func TestAtomicImportantAndCompositions(t *testing.T) {
	p, c := newProcessor(t)

	classes := p.Atomic(style.Of("color", "red !important", "textStyle", "headline.h1"))
	assert.Equal(t, []string{"c_red!", "textStyle_headline.h1"}, classes)

	entries := c.Entries(collector.Atomic)
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[0].Layer)
	assert.Equal(t, CompositionsLayer, entries[1].Layer)
	assert.True(t, entries[0].Styles.Has(`.c_red\!`))
}

func TestAtomicDeduplicates(t *testing.T) {
	p, c := newProcessor(t)

	p.Atomic(style.Of("display", "flex"))
	classes := p.Atomic(style.Of("display", "flex"))
	assert.Equal(t, []string{"d_flex"}, classes)
	assert.Equal(t, 1, c.Len())
}

func TestRecipe(t *testing.T) {
	p, c := newProcessor(t)

	res, ok := p.Recipe("buttonStyle", style.Of("size", "sm", "variant", "primary"))
	require.True(t, ok)
	assert.Equal(t, []string{"button", "button--size_sm", "button--variant_primary"}, res.ClassNames)

	assert.Equal(t, []map[string]any{
		{".button": map[string]any{"display": "flex", "_hover": map[string]any{"color": "red.200"}}},
	}, entryMaps(c.Entries(collector.RecipesBase)))
	assert.Equal(t, []map[string]any{
		{".button--size_sm": map[string]any{"padding": "20px"}},
		{".button--variant_primary": map[string]any{"color": "blue.200"}},
	}, entryMaps(c.Entries(collector.Recipes)))
}

func TestRecipePresenceUsesDefaults(t *testing.T) {
	p, c := newProcessor(t)

	res, ok := p.Recipe("buttonStyle", staticcss.Presence("buttonStyle").Variants)
	require.True(t, ok)
	assert.Equal(t, []string{"button", "button--size_md"}, res.ClassNames)
	assert.Len(t, c.Entries(collector.RecipesBase), 1)

	res, ok = p.Recipe("tooltipStyle", nil)
	require.True(t, ok)
	assert.Equal(t, []string{"tooltipStyle"}, res.ClassNames)
	assert.Len(t, c.Entries(collector.RecipesBase), 2)
}

func TestRecipeConditionalSelection(t *testing.T) {
	p, c := newProcessor(t)

	res, ok := p.Recipe("buttonStyle", style.Of("size", style.Of("base", "sm", "md", "md")))
	require.True(t, ok)
	assert.Equal(t, []string{"button", "button--size_sm", "md:button--size_md"}, res.ClassNames)
	assert.Equal(t, map[string]any{
		`.md\:button--size_md`: map[string]any{"md": map[string]any{"padding": "40px"}},
	}, c.Entries(collector.Recipes)[1].Styles.ToMap())
}

func TestRecipeEmittedOnce(t *testing.T) {
	p, c := newProcessor(t)

	p.Recipe("buttonStyle", style.Of("size", "sm"))
	p.Recipe("buttonStyle", style.Of("size", "sm"))
	assert.Equal(t, 2, c.Len())
}

func TestUnknownRecipeAndVariant(t *testing.T) {
	p, c := newProcessor(t)

	_, ok := p.Recipe("missing", nil)
	assert.False(t, ok)

	res, ok := p.Recipe("buttonStyle", style.Of("size", "xl"))
	require.True(t, ok)
	assert.Equal(t, []string{"button"}, res.ClassNames)
	assert.Empty(t, c.Entries(collector.Recipes))
}

func TestSlotRecipe(t *testing.T) {
	p, c := newProcessor(t)

	res, ok := p.Recipe("checkbox", style.Of("size", "sm"))
	require.True(t, ok)
	assert.Equal(t, []string{
		"checkbox__root", "checkbox__control", "checkbox__label",
		"checkbox__control--size_sm", "checkbox__label--size_sm",
	}, res.ClassNames)

	assert.Equal(t, []map[string]any{
		{".checkbox__root": map[string]any{"display": "flex", "alignItems": "center", "gap": "2"}},
		{".checkbox__control": map[string]any{"borderWidth": "1px", "borderRadius": "sm"}},
		{".checkbox__label": map[string]any{"marginStart": "2"}},
	}, entryMaps(c.Entries(collector.RecipesSlotsBase)))
	assert.Equal(t, []map[string]any{
		{".checkbox__control--size_sm": map[string]any{"textStyle": "headline.h1", "width": "8", "height": "8"}},
		{".checkbox__label--size_sm": map[string]any{"fontSize": "sm"}},
	}, entryMaps(c.Entries(collector.RecipesSlots)))
	assert.Empty(t, c.Entries(collector.Recipes))
}

func TestPattern(t *testing.T) {
	p, _ := newProcessor(t)

	classes := p.Pattern(staticcss.PatternInvocation{Pattern: "stack", Props: style.Of("gap", "2")})
	assert.Equal(t, []string{"d_flex", "gap_2"}, classes)
}

func TestStatic(t *testing.T) {
	p, c := newProcessor(t)
	th, err := theme.Load("../../testdata/theme.yaml")
	require.NoError(t, err)

	res := staticcss.Expand(staticcss.Config{
		CSS:     []staticcss.CSSRule{{Properties: []staticcss.PropertyValues{{Name: "margin", Values: []string{"*"}}}}},
		Recipes: []staticcss.RecipeRules{{Recipe: "buttonStyle", Rules: []staticcss.RecipeRule{{Wildcard: true}}}},
	}, th)
	p.Static(res)

	assert.Len(t, c.Entries(collector.Atomic), 2)
	assert.Len(t, c.Entries(collector.RecipesBase), 1)
	assert.Len(t, c.Entries(collector.Recipes), 4)
}
