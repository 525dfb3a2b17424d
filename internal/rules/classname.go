package rules

import (
	"fmt"
	"strings"

	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/style"
)

// Escape makes a class name usable in a selector.
func Escape(class string) string {
	var b strings.Builder
	for i, r := range class {
		switch {
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&b, "\\%x ", r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r > 0x7f:
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Selector returns the class selector of a class name.
func Selector(class string) string {
	return "." + Escape(class)
}

// conditionPrefix is the class name segment of a condition key:
// "_hover" is "hover", "md" stays "md", at-rules and nested selectors are
// bracketed.
func conditionPrefix(key string) string {
	switch {
	case strings.HasPrefix(key, "@"), strings.Contains(key, "&"):
		return "[" + style.WithoutSpace(key) + "]"
	default:
		return conditions.Name(key)
	}
}

// withConditions prefixes a class with its condition path.
func withConditions(class string, path []string) string {
	if len(path) == 0 {
		return class
	}
	parts := make([]string, 0, len(path)+1)
	for _, key := range path {
		parts = append(parts, conditionPrefix(key))
	}
	return strings.Join(append(parts, class), ":")
}

// nest wraps styles under each condition key of path, outermost first.
func nest(path []string, styles *style.Object) *style.Object {
	out := styles
	for i := len(path) - 1; i >= 0; i-- {
		out = style.Of(path[i], out)
	}
	return out
}

// atomicClass is "<className>_<value>" with whitespace replaced and
// !important turned into a "!" suffix.
func atomicClass(prefix, value string) string {
	important := style.IsImportant(value)
	class := prefix + "_" + style.WithoutSpace(style.WithoutImportant(value))
	if important {
		class += "!"
	}
	return class
}
