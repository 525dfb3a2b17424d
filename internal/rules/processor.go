// Package rules turns recipe selections, atomic style objects and pattern
// invocations into class names and collected style objects.
package rules

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/stylegen/internal/collector"
	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
	"github.com/yacobolo/stylegen/internal/theme"
)

// CompositionsLayer receives textStyle and layerStyle utilities.
const CompositionsLayer = "compositions"

// Theme is what the processor needs from the design system.
type Theme interface {
	Conditions() *conditions.Resolver
	Recipe(name string) (*theme.Recipe, bool)
	ClassName(property string) string
	IsComposition(property string) bool
	PatternTransform(pattern string, props *style.Object) *style.Object
}

// Result lists the classes a recipe invocation produced.
type Result struct {
	Recipe     string
	ClassNames []string
}

// Processor feeds a collector. Every selector is collected once, the
// first occurrence wins.
type Processor struct {
	theme     Theme
	conds     *conditions.Resolver
	collector *collector.Collector
	log       *zap.Logger
	seen      map[string]bool
}

// New returns a processor writing into c.
func New(th Theme, c *collector.Collector, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		theme:     th,
		conds:     th.Conditions(),
		collector: c,
		log:       log.Named("rules"),
		seen:      make(map[string]bool),
	}
}

func (p *Processor) once(key string) bool {
	if p.seen[key] {
		return false
	}
	p.seen[key] = true
	return true
}

// Atomic emits one utility class per property, condition path and value.
func (p *Processor) Atomic(styles *style.Object) []string {
	var classes []string
	p.atomicStyles(styles, nil, &classes)
	return classes
}

func (p *Processor) isConditionKey(key string) bool {
	return p.conds.IsConditionKey(key) || strings.HasPrefix(key, "@") || strings.Contains(key, "&")
}

func (p *Processor) atomicStyles(styles *style.Object, path []string, classes *[]string) {
	styles.Range(func(key string, v any) bool {
		if obj, ok := style.AsObject(v); ok && p.isConditionKey(key) {
			p.atomicStyles(obj, appendPath(path, key), classes)
			return true
		}
		p.atomicValue(key, v, path, classes)
		return true
	})
}

func (p *Processor) atomicValue(prop string, v any, path []string, classes *[]string) {
	if v == nil {
		return
	}
	if obj, ok := style.AsObject(v); ok {
		obj.Range(func(key string, cv any) bool {
			if !p.isConditionKey(key) {
				p.log.Debug("Skipping non-condition key in conditional value",
					zap.String("property", prop), zap.String("key", key))
				return true
			}
			p.atomicValue(prop, cv, appendPath(path, key), classes)
			return true
		})
		return
	}

	value, ok := style.Scalar(v)
	if !ok {
		p.log.Debug("Skipping unsupported value", zap.String("property", prop))
		return
	}

	class := withConditions(atomicClass(p.theme.ClassName(prop), value), path)
	*classes = append(*classes, class)

	selector := Selector(class)
	if !p.once("atomic" + selector) {
		return
	}
	layer := ""
	if p.theme.IsComposition(prop) {
		layer = CompositionsLayer
	}
	p.collector.AddAtomic(style.Of(selector, nest(path, style.Of(prop, value))), layer)
}

// appendPath extends a condition path, dropping base keys.
func appendPath(path []string, key string) []string {
	if key == conditions.BaseKey {
		return path
	}
	return append(append([]string(nil), path...), key)
}

// Recipe emits the base and the selected variants of a recipe. The
// presence selection emits the default variants. Unknown recipes report
// false.
func (p *Processor) Recipe(name string, selection *style.Object) (*Result, bool) {
	r, ok := p.theme.Recipe(name)
	if !ok {
		p.log.Debug("Unknown recipe", zap.String("recipe", name))
		return nil, false
	}

	inv := staticcss.RecipeInvocation{Recipe: name, Variants: selection}
	if selection == nil || inv.IsPresence() {
		selection = r.DefaultVariants
	}

	res := &Result{Recipe: name}
	p.recipeBase(r, res)
	selection.Range(func(group string, v any) bool {
		p.recipeVariant(r, group, v, nil, res)
		return true
	})
	return res, true
}

func (p *Processor) recipeBase(r *theme.Recipe, res *Result) {
	if !r.IsSlot() {
		res.ClassNames = append(res.ClassNames, r.ClassName)
		if r.Base.Len() > 0 && p.once("base"+r.Name) {
			p.collector.AddRecipeBase(r.Name, style.Of(Selector(r.ClassName), r.Base.Clone()), false)
		}
		return
	}

	for _, slot := range r.Slots {
		class := r.ClassName + "__" + slot
		res.ClassNames = append(res.ClassNames, class)
		v, _ := r.Base.Get(slot)
		styles, ok := style.AsObject(v)
		if !ok || styles.Len() == 0 || !p.once("base"+Selector(class)) {
			continue
		}
		p.collector.AddRecipeBase(r.Name, style.Of(Selector(class), styles.Clone()), true)
	}
}

func (p *Processor) recipeVariant(r *theme.Recipe, group string, v any, path []string, res *Result) {
	if obj, ok := style.AsObject(v); ok {
		obj.Range(func(key string, cv any) bool {
			p.recipeVariant(r, group, cv, appendPath(path, key), res)
			return true
		})
		return
	}

	value, ok := style.Scalar(v)
	if !ok {
		return
	}
	styles, ok := r.VariantStyles(group, value)
	if !ok {
		p.log.Debug("Unknown recipe variant",
			zap.String("recipe", r.Name), zap.String("variant", group), zap.String("value", value))
		return
	}

	suffix := "--" + group + "_" + value
	if !r.IsSlot() {
		class := withConditions(r.ClassName+suffix, path)
		res.ClassNames = append(res.ClassNames, class)
		if styles.Len() > 0 && p.once(Selector(class)) {
			p.collector.AddRecipe(r.Name, style.Of(Selector(class), nest(path, styles.Clone())))
		}
		return
	}

	for _, slot := range r.Slots {
		sv, _ := styles.Get(slot)
		slotStyles, ok := style.AsObject(sv)
		if !ok {
			continue
		}
		class := withConditions(r.ClassName+"__"+slot+suffix, path)
		res.ClassNames = append(res.ClassNames, class)
		if slotStyles.Len() > 0 && p.once(Selector(class)) {
			p.collector.AddSlotRecipe(r.Name, style.Of(Selector(class), nest(path, slotStyles.Clone())))
		}
	}
}

// Pattern emits the atomic classes of a pattern invocation's styles.
func (p *Processor) Pattern(inv staticcss.PatternInvocation) []string {
	styles := inv.Styles
	if styles == nil {
		styles = p.theme.PatternTransform(inv.Pattern, inv.Props.Clone())
	}
	return p.Atomic(styles)
}

// Static processes every permutation of an expansion result.
func (p *Processor) Static(res *staticcss.Result) {
	for _, obj := range res.CSS {
		p.Atomic(obj)
	}
	for _, inv := range res.Recipes {
		p.Recipe(inv.Recipe, inv.Variants)
	}
	for _, inv := range res.Patterns {
		p.Pattern(inv)
	}
}
