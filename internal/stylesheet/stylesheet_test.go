package stylesheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yacobolo/stylegen/internal/collector"
	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/cssast"
	"github.com/yacobolo/stylegen/internal/style"
)

type tokenMap map[string]string

func (m tokenMap) Token(path string) (string, bool) {
	v, ok := m[path]
	return v, ok
}

func newSheet(opts Options) *Stylesheet {
	if opts.Conditions == nil {
		opts.Conditions = conditions.New([]conditions.Breakpoint{
			{Name: "sm", Width: "640px"},
			{Name: "md", Width: "768px"},
		}, nil)
	}
	return New(opts)
}

func rule(selector string, kv ...any) *style.Object {
	return style.Of(selector, style.Of(kv...))
}

func TestToCSSLayers(t *testing.T) {
	s := newSheet(Options{})
	s.ProcessCSSObject(rule(".a", "color", "red"), Utilities)
	s.ProcessCSSObject(rule(".r", "display", "flex"), RecipesBase)
	s.ProcessCSSObject(rule("*", "margin", "0"), Reset)

	css, err := s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Equal(t, `@layer reset {
  * {
    margin: 0;
  }
}

@layer recipes {
  @layer _base {
    .r {
      display: flex;
    }
  }
}

@layer utilities {
  .a {
    color: red;
  }
}`, css)
}

func TestToCSSEmpty(t *testing.T) {
	css, err := newSheet(Options{}).ToCSS(ToCSSOptions{Optimize: true})
	require.NoError(t, err)
	assert.Empty(t, css)
}

func TestProcessStyleCollector(t *testing.T) {
	c := collector.New()
	c.AddAtomic(rule(".u", "color", "red"), "")
	c.AddAtomic(rule(".c", "color", "blue"), Compositions)
	c.AddRecipeBase("button", rule(".button", "display", "flex"), false)
	c.AddRecipe("button", rule(".button--size_sm", "padding", "1px"))
	c.AddRecipeBase("checkbox", rule(".checkbox__root", "display", "flex"), true)
	c.AddSlotRecipe("checkbox", rule(".checkbox__root--size_sm", "width", "1px"))

	s := newSheet(Options{})
	s.ProcessStyleCollector(c)

	css, err := s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Equal(t, `@layer recipes {
  @layer _base {
    .button {
      display: flex;
    }
  }
  .button--size_sm {
    padding: 1px;
  }
}

@layer recipes.slots {
  @layer _base {
    .checkbox__root {
      display: flex;
    }
  }
  .checkbox__root--size_sm {
    width: 1px;
  }
}

@layer utilities {
  @layer compositions {
    .c {
      color: blue;
    }
  }
  .u {
    color: red;
  }
}`, css)
	assert.Empty(t, s.Errors())
}

func TestLayerOrderIsFixed(t *testing.T) {
	calls := []struct {
		layer  string
		styles *style.Object
	}{
		{Utilities, rule(".u", "color", "red")},
		{Base, rule("body", "margin", "0")},
		{Recipes, rule(".btn--sm", "padding", "1px")},
		{Tokens, rule(":root", "--c", "red")},
		{"custom", rule(".x", "color", "blue")},
	}

	forward := newSheet(Options{})
	for _, c := range calls {
		forward.ProcessCSSObject(c.styles, c.layer)
	}
	backward := newSheet(Options{})
	for i := len(calls) - 1; i >= 0; i-- {
		backward.ProcessCSSObject(calls[i].styles, calls[i].layer)
	}

	a, err := forward.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	b, err := backward.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Less(t, strings.Index(a, "@layer base"), strings.Index(a, "@layer tokens"))
	assert.Less(t, strings.Index(a, "@layer tokens"), strings.Index(a, "@layer recipes"))
	assert.Less(t, strings.Index(a, "@layer custom"), strings.Index(a, ".u {"))
}

func TestToCSSIdempotent(t *testing.T) {
	s := newSheet(Options{})
	s.ProcessCSSObject(style.Of(".a", style.Of("color", "red", "md", style.Of("color", "blue"))), Utilities)

	first, err := s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	second, err := s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	optimized, err := s.ToCSS(ToCSSOptions{Optimize: true})
	require.NoError(t, err)
	again, err := s.ToCSS(ToCSSOptions{Optimize: true})
	require.NoError(t, err)
	assert.Equal(t, optimized, again)
}

func TestBreakpointsExpanded(t *testing.T) {
	s := newSheet(Options{})
	s.ProcessCSSObject(style.Of(".a", style.Of(
		"color", "red",
		"md", style.Of("color", "blue"),
		"sm", style.Of("color", "green"),
	)), Utilities)
	s.ProcessCSSObject(style.Of(".b", style.Of("md", style.Of("color", "pink"))), Utilities)

	css, err := s.LayerCSS(ToCSSOptions{}, Utilities)
	require.NoError(t, err)
	assert.Equal(t, `.a {
  color: red;
}

@media screen and (min-width: 40em) {
  .a {
    color: green;
  }
}

@media screen and (min-width: 48em) {
  .a {
    color: blue;
  }
  .b {
    color: pink;
  }
}`, css)
}

func TestUnknownBreakpointIsFatal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newSheet(Options{Logger: zap.New(core)})
	s.Append("@breakpoint xl { .a { color: red; } }")

	_, err := s.ToCSS(ToCSSOptions{})
	require.Error(t, err)
	se, ok := cssast.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, PluginBreakpoints, se.Plugin)
	assert.Contains(t, se.Message, `"xl"`)
	assert.Equal(t, 1, logs.FilterMessage("sheet:toCss").Len())
}

func TestProcessErrorIsRecoverable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newSheet(Options{Logger: zap.New(core)})

	s.ProcessCSSObject(style.Of("color", "red"), Utilities)
	s.ProcessCSSObject(rule(".ok", "color", "red"), Utilities)

	css, err := s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Contains(t, css, ".ok {")
	assert.Len(t, s.Errors(), 1)
	assert.Equal(t, 1, logs.FilterMessage("sheet:process").Len())
}

func TestProcessUnknownLayerIsIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newSheet(Options{Logger: zap.New(core)})

	s.ProcessCSSObject(rule(".a", "color", "red"), "not a layer")

	css, err := s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Empty(t, css)
	assert.Empty(t, s.Errors())
	assert.Zero(t, logs.Len())
}

func TestMalformedValueDropsOnlyItsRule(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"unclosed function", "calc(1px"},
		{"unterminated string", `"oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSheet(Options{})
			s.ProcessCSSObject(rule(".a", "width", tt.value), Utilities)
			s.ProcessCSSObject(rule(".b", "color", "red"), Utilities)
			s.ProcessCSSObject(rule(".c", "color", "blue"), Utilities)
			require.Len(t, s.Errors(), 1)

			for _, opts := range []ToCSSOptions{{}, {Optimize: true}} {
				css, err := s.ToCSS(opts)
				require.NoError(t, err)
				assert.Equal(t, "@layer utilities {\n  .b {\n    color: red;\n  }\n  .c {\n    color: blue;\n  }\n}", css)
			}
		})
	}
}

func TestInvalidRawCSSIsFatal(t *testing.T) {
	s := newSheet(Options{})
	s.Append(".a { color: red;")

	_, err := s.ToCSS(ToCSSOptions{})
	require.Error(t, err)
	se, ok := cssast.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, cssast.PluginCheck, se.Plugin)
}

func TestProcessGlobalCss(t *testing.T) {
	s := newSheet(Options{})
	require.NoError(t, s.ProcessGlobalCss(rule("html", "margin", "0")))
	require.Error(t, s.ProcessGlobalCss(style.Of("margin", "0")))
	assert.Empty(t, s.Errors())

	css, err := s.LayerCSS(ToCSSOptions{}, Base)
	require.NoError(t, err)
	assert.Equal(t, "html {\n  margin: 0;\n}", css)
}

func TestAppendPrepend(t *testing.T) {
	s := newSheet(Options{})
	s.ProcessCSSObject(rule(".u", "color", "red"), Utilities)
	s.Append(".x { color: red; }")
	s.Prepend(s.LayerParams(), ".p { color: blue; }")

	css, err := s.ToCSS(ToCSSOptions{Minify: true})
	require.NoError(t, err)
	assert.Equal(t, "@layer reset,base,tokens,recipes,utilities;.p{color:blue}.x{color:red}@layer utilities{.u{color:red}}", css)
}

func TestTokensExpanded(t *testing.T) {
	s := newSheet(Options{Tokens: tokenMap{"colors.red": "var(--colors-red)"}})
	s.ProcessCSSObject(rule(".a", "color", "token(colors.red)", "border", "1px solid token(colors.none, black)"), Utilities)

	css, err := s.LayerCSS(ToCSSOptions{}, Utilities)
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  color: var(--colors-red);\n  border: 1px solid black;\n}", css)
}

func TestExpandTokenCalls(t *testing.T) {
	tokens := tokenMap{"colors.red": "var(--colors-red)", "spacing.2": "var(--spacing-2)"}

	tests := []struct {
		in, want string
	}{
		{"red", "red"},
		{"token(colors.red)", "var(--colors-red)"},
		{"1px solid token(colors.red)", "1px solid var(--colors-red)"},
		{"calc(token(spacing.2) * 2)", "calc(var(--spacing-2) * 2)"},
		{"token(colors.none, blue)", "blue"},
		{"token(colors.none, token(colors.red))", "var(--colors-red)"},
		{"token(colors.none)", "colors.none"},
		{"mytoken(colors.red)", "mytoken(colors.red)"},
		{"token(colors.red", "token(colors.red"},
		{"token(colors.red) token(spacing.2)", "var(--colors-red) var(--spacing-2)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTokenCalls(tt.in, tokens))
		})
	}
}

func TestLayerFor(t *testing.T) {
	s := newSheet(Options{})
	assert.Equal(t, Utilities, s.LayerFor(Utilities).Name())
	assert.Nil(t, s.LayerFor(""))
	assert.Nil(t, s.LayerFor("two words"))

	custom := s.LayerFor("widgets")
	require.NotNil(t, custom)
	assert.Same(t, custom, s.LayerFor("widgets"))
	assert.True(t, custom.IsEmpty())
}

func TestCleanAndLayerParams(t *testing.T) {
	s := newSheet(Options{Layers: LayerNames{Utilities: "atoms"}})
	assert.Equal(t, "@layer reset, base, tokens, recipes, atoms;", s.LayerParams())

	s.ProcessCSSObject(rule(".u", "color", "red"), Utilities)
	s.Append(".x { color: red; }")
	css, err := s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Contains(t, css, "@layer atoms {")

	s.Clean()
	css, err = s.ToCSS(ToCSSOptions{})
	require.NoError(t, err)
	assert.Empty(t, css)
}

func TestOptimizeAndMinify(t *testing.T) {
	s := newSheet(Options{})
	s.ProcessCSSObject(rule(".a", "color", "red"), Utilities)
	s.ProcessCSSObject(rule(".a", "color", "red"), Utilities)

	css, err := s.ToCSS(ToCSSOptions{Optimize: true, Minify: true})
	require.NoError(t, err)
	assert.Equal(t, "@layer utilities{.a{color:red}}", css)
}
