package conditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	return New([]Breakpoint{
		{Name: "sm", Width: "640px"},
		{Name: "md", Width: "768px"},
		{Name: "lg", Width: "64em"},
	}, map[string]string{
		"hover": "&:hover",
		"rtl":   "[dir=rtl] &",
	})
}

func TestToConditionalValue(t *testing.T) {
	tests := []struct {
		name     string
		conds    []string
		expected map[string]any
	}{
		{
			name:     "no conditions",
			conds:    nil,
			expected: map[string]any{"base": "red"},
		},
		{
			name:     "breakpoints only",
			conds:    []string{"sm", "md"},
			expected: map[string]any{"base": "red", "sm": "red", "md": "red"},
		},
		{
			name:     "non-breakpoint conditions are prefixed",
			conds:    []string{"light", "dark"},
			expected: map[string]any{"base": "red", "_light": "red", "_dark": "red"},
		},
		{
			name:     "mixed",
			conds:    []string{"hover", "sm", "focus", "md"},
			expected: map[string]any{"base": "red", "sm": "red", "md": "red", "_hover": "red", "_focus": "red"},
		},
		{
			name:     "already prefixed",
			conds:    []string{"_hover"},
			expected: map[string]any{"base": "red", "_hover": "red"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToConditionalValue("red", tt.conds, []string{"sm", "md"})
			assert.Equal(t, tt.expected, got.ToMap())
		})
	}
}

func TestToConditionalValueBreakpointsFirst(t *testing.T) {
	got := ToConditionalValue("x", []string{"hover", "md", "dark", "sm"}, []string{"sm", "md"})
	assert.Equal(t, []string{"base", "md", "sm", "_hover", "_dark"}, got.Keys())
}

func TestIsBreakpoint(t *testing.T) {
	r := testResolver()
	assert.True(t, r.IsBreakpoint("sm"))
	assert.True(t, r.IsBreakpoint("lg"))
	assert.False(t, r.IsBreakpoint("hover"))
	assert.False(t, r.IsBreakpoint("_sm"))
	assert.Equal(t, []string{"sm", "md", "lg"}, r.Breakpoints())
}

func TestMediaQuery(t *testing.T) {
	r := testResolver()

	q, ok := r.MediaQuery("sm")
	require.True(t, ok)
	assert.Equal(t, "screen and (min-width: 40em)", q)

	q, ok = r.MediaQuery("md")
	require.True(t, ok)
	assert.Equal(t, "screen and (min-width: 48em)", q)

	q, ok = r.MediaQuery("lg")
	require.True(t, ok)
	assert.Equal(t, "screen and (min-width: 64em)", q)

	_, ok = r.MediaQuery("xl")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	r := testResolver()

	tests := []struct {
		key  string
		kind Kind
		raw  string
	}{
		{key: "base", kind: KindBase},
		{key: "md", kind: KindBreakpoint, raw: "@breakpoint md"},
		{key: "_hover", kind: KindSelector, raw: "&:hover"},
		{key: "_rtl", kind: KindSelector, raw: "[dir=rtl] &"},
		{key: "_dark", kind: KindSelector, raw: ".dark &"},
		{key: "_print", kind: KindAtRule, raw: "@media print"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := r.Resolve(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.raw, c.Raw)
		})
	}

	_, err := r.Resolve("_unknown")
	require.Error(t, err)
	_, err = r.Resolve("xl")
	require.Error(t, err)
}
