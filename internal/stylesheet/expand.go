package stylesheet

import (
	"sort"
	"strings"

	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/cssast"
)

// PluginBreakpoints tags errors raised while expanding @breakpoint rules.
const PluginBreakpoints = "breakpoints"

// expandBreakpoints rewrites `@breakpoint name` at-rules into min-width
// media queries. Within a container, responsive blocks move after their
// siblings in ascending breakpoint order and blocks of the same
// breakpoint are merged.
func expandBreakpoints(c cssast.Container, conds *conditions.Resolver) error {
	for _, n := range c.Children() {
		if child, ok := n.(cssast.Container); ok {
			if err := expandBreakpoints(child, conds); err != nil {
				return err
			}
		}
	}

	var (
		rest   []cssast.Node
		groups = make(map[string]*cssast.AtRule)
		order  []string
	)
	for _, n := range c.Children() {
		at, ok := n.(*cssast.AtRule)
		if !ok || at.Name != "breakpoint" {
			rest = append(rest, n)
			continue
		}
		name := strings.TrimSpace(at.Params)
		query, ok := conds.MediaQuery(name)
		if !ok {
			return cssast.NewSyntaxError(PluginBreakpoints, cssast.Print(at), "unknown breakpoint %q", name)
		}
		if g, ok := groups[name]; ok {
			g.Append(at.Nodes...)
			continue
		}
		g := cssast.NewAtRule("media", query)
		g.Append(at.Nodes...)
		groups[name] = g
		order = append(order, name)
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, _ := conds.BreakpointIndex(order[i])
		b, _ := conds.BreakpointIndex(order[j])
		return a < b
	})
	for _, name := range order {
		rest = append(rest, groups[name])
	}
	c.SetChildren(rest)
	return nil
}

// expandTokens replaces token(path[, fallback]) calls in declaration values.
func expandTokens(root cssast.Node, tokens TokenResolver) {
	cssast.Walk(root, func(n cssast.Node) bool {
		if d, ok := n.(*cssast.Decl); ok {
			d.Value = ExpandTokenCalls(d.Value, tokens)
		}
		return true
	})
}

const tokenFn = "token("

// ExpandTokenCalls resolves every token() call in value. Unknown tokens
// fall back to the second argument, or to the bare path without one.
func ExpandTokenCalls(value string, tokens TokenResolver) string {
	if !strings.Contains(value, tokenFn) {
		return value
	}

	var b strings.Builder
	for {
		i := indexTokenCall(value)
		if i < 0 {
			b.WriteString(value)
			return b.String()
		}
		end := closingParen(value, i+len(tokenFn))
		if end < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:i])
		b.WriteString(resolveToken(value[i+len(tokenFn):end], tokens))
		value = value[end+1:]
	}
}

// indexTokenCall finds a token( call that is not the tail of another
// identifier.
func indexTokenCall(s string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], tokenFn)
		if i < 0 {
			return -1
		}
		i += offset
		if i == 0 || !isIdentByte(s[i-1]) {
			return i
		}
		offset = i + len(tokenFn)
	}
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// closingParen returns the index of the parenthesis closing the call
// whose arguments start at from.
func closingParen(s string, from int) int {
	depth := 1
	var quote byte
	for i := from; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func resolveToken(args string, tokens TokenResolver) string {
	path, fallback, hasFallback := splitArgs(args)
	if tokens != nil {
		if v, ok := tokens.Token(path); ok {
			return v
		}
	}
	if hasFallback {
		return ExpandTokenCalls(fallback, tokens)
	}
	return path
}

func splitArgs(args string) (path, fallback string, ok bool) {
	depth := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(args[:i]), strings.TrimSpace(args[i+1:]), true
			}
		}
	}
	return strings.TrimSpace(args), "", false
}
