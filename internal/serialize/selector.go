package serialize

import "strings"

// SplitList splits a comma separated selector or at-rule list, ignoring
// commas inside parentheses, brackets, strings or escapes.
func SplitList(s string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			i++
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(string(runes[start:i])))
			start = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(string(runes[start:])))

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Nest combines a parent selector with a child. A child containing "&"
// replaces it with the parent, otherwise the child becomes a descendant.
// Lists on both sides produce their cross product.
func Nest(parent, child string) string {
	children := SplitList(child)
	if parent == "" {
		for i, c := range children {
			children[i] = strings.TrimSpace(strings.ReplaceAll(c, "&", ""))
		}
		return strings.Join(children, ", ")
	}

	parents := SplitList(parent)
	out := make([]string, 0, len(parents)*len(children))
	for _, c := range children {
		for _, p := range parents {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return strings.Join(out, ", ")
}
