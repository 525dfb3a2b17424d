package theme

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yacobolo/stylegen/internal/style"
)

// Token is one design token leaf.
type Token struct {
	// Path is the dotted path, "colors.red.200".
	Path string
	// Category is the first path segment, "colors".
	Category string
	// Name is the path inside the category, "red.200".
	Name  string
	Value string
	// Var is the custom property name, "--colors-red-200". Segments are
	// hyphenated: fontSizes.sm is "--font-sizes-sm".
	Var string
}

var tokenRef = regexp.MustCompile(`\{([A-Za-z0-9_\-]+(?:\.[A-Za-z0-9_\-]+)+)\}`)

func (t *Theme) loadTokens(obj *style.Object) error {
	return walkLeaves(obj, nil, func(path []string, leaf *style.Object) error {
		v, _ := leaf.Get("value")
		value, ok := style.Scalar(v)
		if !ok {
			return fmt.Errorf("token %q: value must be a scalar", strings.Join(path, "."))
		}
		if len(path) < 2 {
			return fmt.Errorf("token %q: tokens must live in a category", strings.Join(path, "."))
		}
		tok := Token{
			Path:     strings.Join(path, "."),
			Category: path[0],
			Name:     strings.Join(path[1:], "."),
			Value:    value,
			Var:      varName(path),
		}
		t.tokenIndex[tok.Path] = len(t.tokens)
		t.tokens = append(t.tokens, tok)
		return nil
	})
}

// walkLeaves calls fn for every mapping holding a "value" key.
func walkLeaves(obj *style.Object, prefix []string, fn func(path []string, leaf *style.Object) error) error {
	var err error
	obj.Range(func(key string, v any) bool {
		child, ok := style.AsObject(v)
		if !ok {
			err = fmt.Errorf("%q: expected a mapping", strings.Join(append(prefix, key), "."))
			return false
		}
		path := append(append([]string(nil), prefix...), key)
		if child.Has("value") {
			err = fn(path, child)
		} else {
			err = walkLeaves(child, path, fn)
		}
		return err == nil
	})
	return err
}

// flattenValues indexes composition styles ({name: {value: styles}}) by
// path and returns the paths in document order.
func flattenValues(obj *style.Object, out map[string]*style.Object) ([]string, error) {
	var order []string
	err := walkLeaves(obj, nil, func(path []string, leaf *style.Object) error {
		v, _ := leaf.Get("value")
		styles, ok := style.AsObject(v)
		if !ok {
			return fmt.Errorf("%q: value must be a style object", strings.Join(path, "."))
		}
		name := strings.Join(path, ".")
		out[name] = styles
		order = append(order, name)
		return nil
	})
	return order, err
}

func varName(path []string) string {
	segs := make([]string, len(path))
	for i, p := range path {
		segs[i] = strings.ReplaceAll(style.Hyphenate(p), ".", `\.`)
	}
	return "--" + strings.Join(segs, "-")
}

// Tokens returns every token in document order.
func (t *Theme) Tokens() []Token {
	return append([]Token(nil), t.tokens...)
}

// Token resolves a dotted token path to its custom property reference.
func (t *Theme) Token(path string) (string, bool) {
	i, ok := t.tokenIndex[path]
	if !ok {
		return "", false
	}
	return "var(" + t.tokens[i].Var + ")", true
}

// HasToken reports whether path names a token.
func (t *Theme) HasToken(path string) bool {
	_, ok := t.tokenIndex[path]
	return ok
}

// CategoryNames lists the token names of a category in document order.
func (t *Theme) CategoryNames(category string) []string {
	var out []string
	for _, tok := range t.tokens {
		if tok.Category == category {
			out = append(out, tok.Name)
		}
	}
	return out
}

// ReplaceReferences rewrites "{path}" token references into token(path)
// calls, leaving unknown paths untouched.
func (t *Theme) ReplaceReferences(value string) string {
	if !strings.Contains(value, "{") {
		return value
	}
	return tokenRef.ReplaceAllStringFunc(value, func(m string) string {
		path := m[1 : len(m)-1]
		if !t.HasToken(path) {
			return m
		}
		return "token(" + path + ")"
	})
}
