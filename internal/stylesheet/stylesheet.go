// Package stylesheet collects serialized CSS into cascade layers and
// renders the final document.
package stylesheet

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/stylegen/internal/collector"
	"github.com/yacobolo/stylegen/internal/conditions"
	"github.com/yacobolo/stylegen/internal/cssast"
	"github.com/yacobolo/stylegen/internal/optimize"
	"github.com/yacobolo/stylegen/internal/serialize"
	"github.com/yacobolo/stylegen/internal/style"
)

// TokenResolver maps a token path onto its CSS variable reference.
type TokenResolver interface {
	Token(path string) (string, bool)
}

// Serializer turns a style object into CSS nodes.
type Serializer interface {
	Serialize(styles *style.Object) ([]cssast.Node, error)
}

// Optimizer rewrites rendered CSS.
type Optimizer interface {
	Optimize(css string, opts optimize.Options) (string, error)
}

// Options configures a Stylesheet. Zero values get working defaults.
type Options struct {
	Conditions *conditions.Resolver
	Serializer Serializer
	Tokens     TokenResolver
	Optimizer  Optimizer
	Layers     LayerNames
	Logger     *zap.Logger
}

// ProcessOptions selects the styles and the layer they go to.
type ProcessOptions struct {
	Styles *style.Object
	Layer  string
}

// ToCSSOptions controls rendering.
type ToCSSOptions struct {
	Optimize bool
	Minify   bool
}

// Stylesheet is the layered output document.
type Stylesheet struct {
	conds      *conditions.Resolver
	serializer Serializer
	tokens     TokenResolver
	optimizer  Optimizer
	names      LayerNames
	log        *zap.Logger

	root   *cssast.Root
	layers *layers
	errs   error
}

// New creates an empty stylesheet.
func New(opts Options) *Stylesheet {
	if opts.Conditions == nil {
		opts.Conditions = conditions.New(nil, nil)
	}
	if opts.Serializer == nil {
		opts.Serializer = serialize.New(opts.Conditions, nil)
	}
	if opts.Optimizer == nil {
		opts.Optimizer = optimize.Optimizer{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Stylesheet{
		conds:      opts.Conditions,
		serializer: opts.Serializer,
		tokens:     opts.Tokens,
		optimizer:  opts.Optimizer,
		names:      opts.Layers.withDefaults(),
		log:        opts.Logger.Named("stylesheet"),
		root:       &cssast.Root{},
		layers:     newLayers(),
	}
}

// LayerFor returns the named layer. Unknown valid names create a custom
// layer inside utilities; empty or invalid names return nil.
func (s *Stylesheet) LayerFor(name string) *Layer {
	return s.layers.lookup(name)
}

// Process serializes styles into a layer. Failures are logged and
// recorded, never returned. Styles for an unknown layer are dropped.
func (s *Stylesheet) Process(opts ProcessOptions) {
	if opts.Styles == nil || opts.Styles.Len() == 0 {
		return
	}
	layer := s.LayerFor(opts.Layer)
	if layer == nil {
		s.log.Debug("sheet:process skipped unknown layer", zap.String("layer", opts.Layer))
		return
	}
	nodes, err := s.serializer.Serialize(opts.Styles)
	if err != nil {
		s.record(err, opts.Layer)
		return
	}
	layer.Append(nodes...)
}

func (s *Stylesheet) record(err error, layer string) {
	fields := []zap.Field{zap.String("layer", layer), zap.Error(err)}
	if se, ok := cssast.AsSyntaxError(err); ok {
		fields = append(fields, zap.String("plugin", se.Plugin), zap.String("source", se.Source))
	}
	s.log.Warn("sheet:process", fields...)
	s.errs = multierr.Append(s.errs, err)
}

// ProcessGlobalCss serializes global styles into the base layer. Unlike
// Process it reports failures.
func (s *Stylesheet) ProcessGlobalCss(styles *style.Object) error {
	if styles == nil || styles.Len() == 0 {
		return nil
	}
	nodes, err := s.serializer.Serialize(styles)
	if err != nil {
		return fmt.Errorf("global css: %w", err)
	}
	s.LayerFor(Base).Append(nodes...)
	return nil
}

// ProcessCSSObject is Process for a single object.
func (s *Stylesheet) ProcessCSSObject(styles *style.Object, layer string) {
	s.Process(ProcessOptions{Styles: styles, Layer: layer})
}

var bucketLayers = map[collector.Bucket]string{
	collector.Atomic:           Utilities,
	collector.RecipesBase:      RecipesBase,
	collector.Recipes:          Recipes,
	collector.RecipesSlotsBase: RecipesSlotsBase,
	collector.RecipesSlots:     RecipesSlots,
}

// ProcessStyleCollector routes every collected entry to its layer.
// Atomic entries may name their own layer.
func (s *Stylesheet) ProcessStyleCollector(c *collector.Collector) {
	for _, b := range collector.Buckets {
		for _, e := range c.Entries(b) {
			layer := bucketLayers[b]
			if b == collector.Atomic && e.Layer != "" {
				layer = e.Layer
			}
			s.ProcessCSSObject(e.Styles, layer)
		}
	}
}

// Append adds raw CSS to the root, which renders before the layers. CSS
// that does not parse is kept as written and fails ToCSS.
func (s *Stylesheet) Append(css ...string) {
	for _, text := range css {
		s.root.Append(parseRaw(text)...)
	}
}

// Prepend adds raw CSS at the start of the root, keeping argument order.
func (s *Stylesheet) Prepend(css ...string) {
	var nodes []cssast.Node
	for _, text := range css {
		nodes = append(nodes, parseRaw(text)...)
	}
	s.root.Prepend(nodes...)
}

func parseRaw(text string) []cssast.Node {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	root, err := cssast.Parse(text)
	if err != nil {
		return []cssast.Node{&cssast.Raw{Text: text}}
	}
	return root.Nodes
}

// Clean empties the root and every layer.
func (s *Stylesheet) Clean() {
	s.root = &cssast.Root{}
	s.layers.clean()
}

// LayerParams returns the layer order statement.
func (s *Stylesheet) LayerParams() string {
	n := s.names
	return fmt.Sprintf("@layer %s, %s, %s, %s, %s;", n.Reset, n.Base, n.Tokens, n.Recipes, n.Utilities)
}

// Errors returns the recoverable errors recorded by Process.
func (s *Stylesheet) Errors() []error {
	return multierr.Errors(s.errs)
}

// ToCSS renders the whole document: root content, then the layers in
// their fixed order.
func (s *Stylesheet) ToCSS(opts ToCSSOptions) (string, error) {
	root := &cssast.Root{}
	for _, n := range s.root.Nodes {
		root.Append(cssast.Clone(n))
	}
	s.layers.insert(root, s.names)
	return s.render(root, opts)
}

// LayerCSS renders the content of the named layers, without the
// @layer wrappers.
func (s *Stylesheet) LayerCSS(opts ToCSSOptions, names ...string) (string, error) {
	root := &cssast.Root{}
	for _, name := range names {
		l := s.LayerFor(name)
		if l == nil {
			return "", s.fatal(fmt.Errorf("unknown layer %q", name))
		}
		root.Append(l.Nodes()...)
	}
	return s.render(root, opts)
}

func (s *Stylesheet) render(root *cssast.Root, opts ToCSSOptions) (string, error) {
	if err := expandBreakpoints(root, s.conds); err != nil {
		return "", s.fatal(err)
	}
	expandTokens(root, s.tokens)

	css := cssast.Print(root)
	if err := cssast.Check(css); err != nil {
		return "", s.fatal(err)
	}

	switch {
	case opts.Optimize:
		out, err := s.optimizer.Optimize(css, optimize.Options{Minify: opts.Minify})
		if err != nil {
			return "", s.fatal(err)
		}
		css = out
	case opts.Minify:
		css = cssast.Minify(root)
	}
	return css, nil
}

func (s *Stylesheet) fatal(err error) error {
	fields := []zap.Field{zap.Error(err)}
	if se, ok := cssast.AsSyntaxError(err); ok {
		fields = append(fields,
			zap.String("plugin", se.Plugin),
			zap.Int("line", se.Line),
			zap.Int("column", se.Column),
			zap.String("source", se.Source),
		)
	}
	s.log.Error("sheet:toCss", fields...)
	return err
}
