// Package serialize turns nested style objects into CSS nodes. Condition
// keys become selectors or at-rules, property keys become declarations.
package serialize

import (
	"regexp"
	"strings"

	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/cssast"
	"github.com/yacobolo/stylegen/internal/style"
)

// Plugin tags errors raised while serializing.
const Plugin = "serializer"

var propertyName = regexp.MustCompile(`^(--(?:[A-Za-z0-9_-]|\\.)+|-?[A-Za-z][A-Za-z0-9-]*)$`)

// Utility maps style properties and values onto CSS.
type Utility interface {
	// Property returns the CSS property for a style key (shorthands resolved).
	Property(name string) string
	// Value resolves a raw value, e.g. a token reference.
	Value(property, value string) string
	// Composition expands a composition property (textStyle, layerStyle)
	// into the style object it stands for.
	Composition(property, value string) (*style.Object, bool)
}

// Serializer converts style objects with a condition resolver and a utility.
type Serializer struct {
	conds   *conditions.Resolver
	utility Utility
}

// New returns a serializer. A nil utility hyphenates property names and
// keeps values as written.
func New(conds *conditions.Resolver, utility Utility) *Serializer {
	if conds == nil {
		conds = conditions.New(nil, nil)
	}
	return &Serializer{conds: conds, utility: utility}
}

type context struct {
	atRules  []string
	selector string
}

func (c context) key() string {
	return strings.Join(c.atRules, "\x00") + "\x01" + c.selector
}

func (c context) with(atRule string) context {
	next := make([]string, len(c.atRules), len(c.atRules)+1)
	copy(next, c.atRules)
	return context{atRules: append(next, atRule), selector: c.selector}
}

type block struct {
	ctx   context
	decls []cssast.Node
}

type run struct {
	s      *Serializer
	blocks []*block
	index  map[string]*block
}

// Serialize converts styles. The top level holds selectors or at-rules,
// declarations are only allowed below a selector.
func (s *Serializer) Serialize(styles *style.Object) ([]cssast.Node, error) {
	r := &run{s: s, index: make(map[string]*block)}
	if err := r.walk(styles, context{}); err != nil {
		return nil, err
	}
	return r.nodes(), nil
}

// SerializeString serializes and prints styles.
func (s *Serializer) SerializeString(styles *style.Object) (string, error) {
	nodes, err := s.Serialize(styles)
	if err != nil {
		return "", err
	}
	return cssast.Print(&cssast.Root{Nodes: nodes}), nil
}

func (r *run) walk(obj *style.Object, ctx context) error {
	var err error
	obj.Range(func(key string, val any) bool {
		err = r.entry(key, val, ctx)
		return err == nil
	})
	return err
}

func (r *run) entry(key string, val any, ctx context) error {
	if val == nil {
		return nil
	}
	if _, isList := val.([]any); isList {
		return r.fail(ctx, key, "list values are not supported for %q", key)
	}

	obj, isObj := style.AsObject(val)
	if !isObj {
		raw, ok := style.Scalar(val)
		if !ok {
			return r.fail(ctx, key, "unsupported value %v for %q", val, key)
		}
		return r.declare(key, raw, ctx)
	}

	switch {
	case key == conditions.BaseKey:
		return r.walk(obj, ctx)
	case strings.HasPrefix(key, "@"):
		return r.walk(obj, ctx.with(key))
	case r.s.conds.IsConditionKey(key):
		return r.condition(key, obj, ctx)
	case propertyName.MatchString(key) && r.isConditionalValue(obj):
		return r.conditionalValue(key, obj, ctx)
	default:
		return r.walk(obj, context{atRules: ctx.atRules, selector: Nest(ctx.selector, key)})
	}
}

func (r *run) condition(key string, obj *style.Object, ctx context) error {
	cond, err := r.s.conds.Resolve(key)
	if err != nil {
		return r.fail(ctx, key, "%s", err.Error())
	}
	switch cond.Kind {
	case conditions.KindBase:
		return r.walk(obj, ctx)
	case conditions.KindBreakpoint, conditions.KindAtRule:
		return r.walk(obj, ctx.with(cond.Raw))
	default:
		if ctx.selector == "" {
			return r.fail(ctx, key, "condition %q used outside a rule", key)
		}
		return r.walk(obj, context{atRules: ctx.atRules, selector: Nest(ctx.selector, cond.Raw)})
	}
}

// conditionalValue spreads {prop: {base: a, _hover: b}} into one
// declaration per condition.
func (r *run) conditionalValue(prop string, obj *style.Object, ctx context) error {
	var err error
	obj.Range(func(cond string, v any) bool {
		err = r.entry(cond, style.Of(prop, v), ctx)
		return err == nil
	})
	return err
}

// isConditionalValue reports whether every path through obj goes over
// condition keys only and ends in a scalar.
func (r *run) isConditionalValue(obj *style.Object) bool {
	if obj.Len() == 0 {
		return false
	}
	ok := true
	obj.Range(func(key string, v any) bool {
		if !r.s.conds.IsConditionKey(key) && !strings.HasPrefix(key, "@") {
			ok = false
			return false
		}
		if nested, isObj := style.AsObject(v); isObj {
			ok = r.isConditionalValue(nested)
		} else if _, isScalar := style.Scalar(v); !isScalar && v != nil {
			ok = false
		}
		return ok
	})
	return ok
}

func (r *run) declare(key, raw string, ctx context) error {
	if r.s.utility != nil {
		if expanded, ok := r.s.utility.Composition(key, raw); ok {
			return r.walk(expanded, ctx)
		}
	}
	if ctx.selector == "" {
		return r.fail(ctx, key, "declaration %q outside a rule", key)
	}
	if !propertyName.MatchString(key) {
		return r.fail(ctx, key, "invalid property name %q", key)
	}
	important := style.IsImportant(raw)
	value := raw
	if important {
		value = style.WithoutImportant(raw)
	}

	prop := style.Hyphenate(key)
	if r.s.utility != nil {
		prop = r.s.utility.Property(key)
		value = r.s.utility.Value(key, value)
	}
	if strings.ContainsAny(value, "{};") {
		return r.fail(ctx, key, "invalid value %q for %q", raw, key)
	}
	if err := cssast.CheckValue(value); err != nil {
		return r.fail(ctx, key, "invalid value %q for %q: %v", raw, key, err)
	}
	if important {
		value += " !important"
	}

	b := r.block(ctx)
	b.decls = append(b.decls, &cssast.Decl{Prop: prop, Value: value})
	return nil
}

func (r *run) block(ctx context) *block {
	k := ctx.key()
	if b, ok := r.index[k]; ok {
		return b
	}
	b := &block{ctx: ctx}
	r.index[k] = b
	r.blocks = append(r.blocks, b)
	return b
}

func (r *run) fail(ctx context, key, format string, args ...any) error {
	source := key
	if ctx.selector != "" {
		source = ctx.selector + " " + key
	}
	return cssast.NewSyntaxError(Plugin, source, format, args...)
}

// nodes renders the blocks in first-use order. Consecutive blocks under the
// same at-rules share one at-rule chain.
func (r *run) nodes() []cssast.Node {
	var (
		out      []cssast.Node
		lastPath string
		lastLeaf cssast.Container
	)
	for _, b := range r.blocks {
		rule := &cssast.Rule{Selector: b.ctx.selector, Nodes: b.decls}
		if len(b.ctx.atRules) == 0 {
			out = append(out, rule)
			lastLeaf = nil
			continue
		}

		path := strings.Join(b.ctx.atRules, "\x00")
		if lastLeaf != nil && path == lastPath {
			lastLeaf.Append(rule)
			continue
		}

		var outer, leaf *cssast.AtRule
		for _, raw := range b.ctx.atRules {
			at := AtRule(raw)
			if leaf == nil {
				outer = at
			} else {
				leaf.Append(at)
			}
			leaf = at
		}
		leaf.Append(rule)
		out = append(out, outer)
		lastPath, lastLeaf = path, leaf
	}
	return out
}

// AtRule builds an empty at-rule block from its source text ("@media print").
func AtRule(raw string) *cssast.AtRule {
	name, params, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(raw), "@"), " ")
	return cssast.NewAtRule(name, strings.TrimSpace(params))
}

