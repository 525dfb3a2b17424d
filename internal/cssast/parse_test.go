package cssast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		line int
		col  int
	}{
		{name: "valid", src: ".a { color: red; }\n@media print { .b { color: blue } }"},
		{name: "empty", src: ""},
		{name: "unclosed block", src: ".a { color: red;", msg: "Unclosed block", line: 1, col: 4},
		{name: "unexpected brace", src: ".a {}\n}", msg: "Unexpected }", line: 2, col: 1},
		{name: "nested unclosed", src: "@media print {\n  .a {\n}", msg: "Unclosed block", line: 1, col: 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.src)
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			se, ok := AsSyntaxError(err)
			require.True(t, ok)
			assert.Equal(t, tt.msg, se.Message)
			assert.Equal(t, PluginCheck, se.Plugin)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.col, se.Column)
			assert.Equal(t, tt.src, se.Source)
		})
	}
}

func TestParse(t *testing.T) {
	src := `@layer reset, base;
/* reset */
.a,
.b {
  color: red;
  margin: 0 auto !important;
  --brand: #fff;
}
@media screen and (min-width: 40em) {
  .c:hover { padding: 4px }
}`

	root, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, root.Nodes, 4)

	layer, ok := root.Nodes[0].(*AtRule)
	require.True(t, ok)
	assert.Equal(t, "layer", layer.Name)
	assert.Equal(t, "reset, base", layer.Params)
	assert.False(t, layer.Block)

	assert.Equal(t, &Comment{Text: "reset"}, root.Nodes[1])

	rule, ok := root.Nodes[2].(*Rule)
	require.True(t, ok)
	assert.Equal(t, ".a, .b", rule.Selector)
	assert.Equal(t, []Node{
		&Decl{Prop: "color", Value: "red"},
		&Decl{Prop: "margin", Value: "0 auto !important"},
		&Decl{Prop: "--brand", Value: "#fff"},
	}, rule.Nodes)

	media, ok := root.Nodes[3].(*AtRule)
	require.True(t, ok)
	assert.True(t, media.Block)
	assert.Equal(t, "screen and (min-width: 40em)", media.Params)
	require.Len(t, media.Nodes, 1)
	assert.Equal(t, ".c:hover", media.Nodes[0].(*Rule).Selector)
}

func TestParsePrintRoundTrip(t *testing.T) {
	src := ".a {\n  color: red;\n}\n\n@media print {\n  .b {\n    display: none;\n  }\n}"
	root, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, Print(root))
}

func TestParseReportsCheckErrors(t *testing.T) {
	_, err := Parse(".a { color: red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unclosed block")
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Message: "Unknown breakpoint", Plugin: "breakpoints"}
	assert.Equal(t, "breakpoints: Unknown breakpoint", err.Error())

	err = &SyntaxError{Message: "Unclosed block", Plugin: "check", Line: 2, Column: 5}
	assert.Equal(t, "check: 2:5: Unclosed block", err.Error())
}

func TestParseAtRuleBlocks(t *testing.T) {
	src := "@layer utilities { @layer compositions { .a { font: 1px solid  red } } .b,.c { color: red } }\n@breakpoint md { .d { color: blue; } }"
	root, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, `@layer utilities {
  @layer compositions {
    .a {
      font: 1px solid red;
    }
  }
  .b, .c {
    color: red;
  }
}

@breakpoint md {
  .d {
    color: blue;
  }
}`, Print(root))
}

func TestParseUnknownWord(t *testing.T) {
	_, err := Parse(".a { color }")
	require.Error(t, err)
	se, ok := AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, "Unknown word", se.Message)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 6, se.Column)
}

func TestParseUnbalancedParensStopAtBlockEnd(t *testing.T) {
	root, err := Parse(".a { width: calc(1px } .b { color: red }")
	require.NoError(t, err)
	require.Len(t, root.Nodes, 2)
	assert.Equal(t, ".b", root.Nodes[1].(*Rule).Selector)
}

func TestCheckValue(t *testing.T) {
	tests := []struct {
		value string
		msg   string
	}{
		{value: "calc((1px + 2px) * 3)"},
		{value: `"a (b" [c]`},
		{value: `"it\"s"`},
		{value: "var(--x, rgb(0 0 0))"},
		{value: "calc(1px", msg: `missing ')'`},
		{value: "[a", msg: `missing ']'`},
		{value: "a)", msg: `unexpected ")"`},
		{value: "(a]", msg: `unexpected "]"`},
		{value: `"open`, msg: "unclosed string"},
		{value: `'open\'`, msg: "unclosed string"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := CheckValue(tt.value)
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}
