// Package conditions maps symbolic condition names (breakpoints, pseudo
// states, color schemes) onto the keys of conditional values and onto the
// selectors or at-rules that render them.
package conditions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yacobolo/stylegen/internal/style"
)

const (
	// BaseKey holds the unconditional fallback of a conditional value.
	BaseKey = "base"
	// Prefix marks non-breakpoint condition keys ("_hover").
	Prefix = "_"
	// BreakpointAtRule is the symbolic at-rule expanded into a media query
	// when the stylesheet is printed.
	BreakpointAtRule = "breakpoint"
)

// Defaults is the built-in condition set. Theme conditions are merged on top.
var Defaults = map[string]string{
	"hover":        "&:is(:hover, [data-hover])",
	"focus":        "&:is(:focus, [data-focus])",
	"focusVisible": "&:is(:focus-visible, [data-focus-visible])",
	"focusWithin":  "&:focus-within",
	"active":       "&:is(:active, [data-active])",
	"disabled":     "&:is(:disabled, [disabled], [data-disabled])",
	"checked":      "&:is(:checked, [data-checked], [aria-checked=true])",
	"invalid":      "&:is(:invalid, [data-invalid])",
	"first":        "&:first-child",
	"last":         "&:last-child",
	"odd":          "&:nth-child(odd)",
	"even":         "&:nth-child(even)",
	"before":       "&::before",
	"after":        "&::after",
	"placeholder":  "&::placeholder",
	"dark":         ".dark &",
	"light":        ".light &",
	"motionReduce": "@media (prefers-reduced-motion: reduce)",
	"motionSafe":   "@media (prefers-reduced-motion: no-preference)",
	"print":        "@media print",
}

// Kind classifies a resolved condition.
type Kind int

const (
	KindBase Kind = iota
	KindBreakpoint
	KindSelector
	KindAtRule
)

// Condition is a resolved condition key.
type Condition struct {
	Key  string // key as written: "_hover", "md", "base"
	Name string // name without prefix: "hover", "md"
	Kind Kind
	// Raw is the selector template containing "&" for KindSelector, or the
	// full at-rule ("@media print", "@breakpoint md") for KindAtRule and
	// KindBreakpoint.
	Raw string
}

// Breakpoint is a named responsive width boundary.
type Breakpoint struct {
	Name  string
	Width string
}

// Resolver knows the ordered breakpoints and the condition templates.
type Resolver struct {
	breakpoints []Breakpoint
	index       map[string]int
	conditions  map[string]string
}

// New builds a resolver. Custom conditions override the defaults.
func New(breakpoints []Breakpoint, custom map[string]string) *Resolver {
	r := &Resolver{
		breakpoints: append([]Breakpoint(nil), breakpoints...),
		index:       make(map[string]int, len(breakpoints)),
		conditions:  make(map[string]string, len(Defaults)+len(custom)),
	}
	for i, bp := range breakpoints {
		r.index[bp.Name] = i
	}
	for name, tpl := range Defaults {
		r.conditions[name] = tpl
	}
	for name, tpl := range custom {
		r.conditions[name] = tpl
	}
	return r
}

// Breakpoints returns the breakpoint names in ascending order.
func (r *Resolver) Breakpoints() []string {
	names := make([]string, len(r.breakpoints))
	for i, bp := range r.breakpoints {
		names[i] = bp.Name
	}
	return names
}

// IsBreakpoint reports whether name is one of the configured breakpoints.
func (r *Resolver) IsBreakpoint(name string) bool {
	_, ok := r.index[name]
	return ok
}

// BreakpointIndex returns the ascending position of a breakpoint.
func (r *Resolver) BreakpointIndex(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// MediaQuery renders the min-width query of a breakpoint.
func (r *Resolver) MediaQuery(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return "screen and (min-width: " + toEm(r.breakpoints[i].Width) + ")", true
}

// toEm converts pixel widths to em at a 16px root size.
func toEm(width string) string {
	w := strings.TrimSpace(width)
	num := strings.TrimSuffix(w, "px")
	if num != w || isNumber(w) {
		px, err := strconv.ParseFloat(num, 64)
		if err == nil {
			return strconv.FormatFloat(px/16, 'f', -1, 64) + "em"
		}
	}
	return w
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// IsConditionKey reports whether key has the syntax of a condition key
// inside a conditional value or style object.
func (r *Resolver) IsConditionKey(key string) bool {
	return key == BaseKey || strings.HasPrefix(key, Prefix) || r.IsBreakpoint(key)
}

// Resolve maps a condition key onto its rendering.
func (r *Resolver) Resolve(key string) (Condition, error) {
	switch {
	case key == BaseKey:
		return Condition{Key: key, Name: key, Kind: KindBase}, nil
	case r.IsBreakpoint(key):
		return Condition{Key: key, Name: key, Kind: KindBreakpoint, Raw: "@" + BreakpointAtRule + " " + key}, nil
	case strings.HasPrefix(key, Prefix):
		name := strings.TrimPrefix(key, Prefix)
		tpl, ok := r.conditions[name]
		if !ok {
			return Condition{}, fmt.Errorf("unknown condition %q", key)
		}
		if strings.HasPrefix(tpl, "@") {
			return Condition{Key: key, Name: name, Kind: KindAtRule, Raw: tpl}, nil
		}
		if !strings.Contains(tpl, "&") {
			tpl = "&" + tpl
		}
		return Condition{Key: key, Name: name, Kind: KindSelector, Raw: tpl}, nil
	}
	return Condition{}, fmt.Errorf("unknown condition %q", key)
}

// IsBreakpoint reports membership in an ordered breakpoint list.
func IsBreakpoint(name string, breakpoints []string) bool {
	for _, bp := range breakpoints {
		if bp == name {
			return true
		}
	}
	return false
}

// ToConditionalValue spreads one literal across a set of conditions:
// base plus one key per condition, breakpoints set directly and the rest
// prefixed with "_". Breakpoint keys are inserted first.
func ToConditionalValue(value any, conds []string, breakpoints []string) *style.Object {
	out := style.New().Set(BaseKey, value)
	for _, c := range conds {
		if IsBreakpoint(c, breakpoints) {
			out.Set(c, value)
		}
	}
	for _, c := range conds {
		if IsBreakpoint(c, breakpoints) {
			continue
		}
		out.Set(Key(c), value)
	}
	return out
}

// Key returns the conditional-value key of a non-breakpoint condition.
func Key(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

// Name strips the condition prefix.
func Name(key string) string {
	return strings.TrimPrefix(key, Prefix)
}
