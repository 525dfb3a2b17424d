// Package collector gathers the style objects produced while processing
// usages, partitioned into the buckets the stylesheet routes to layers.
package collector

import "github.com/yacobolo/stylegen/internal/style"

// Bucket is one partition of the collector.
type Bucket int

const (
	Atomic Bucket = iota
	Recipes
	RecipesBase
	RecipesSlots
	RecipesSlotsBase
)

// Buckets lists every bucket in drain order.
var Buckets = []Bucket{Atomic, Recipes, RecipesBase, RecipesSlots, RecipesSlotsBase}

var bucketNames = [...]string{"atomic", "recipes", "recipes_base", "recipes_slots", "recipes_slots_base"}

func (b Bucket) String() string {
	if int(b) < len(bucketNames) {
		return bucketNames[b]
	}
	return "unknown"
}

// Entry is a collected style object.
type Entry struct {
	// Recipe is the originating recipe, empty for atomic entries.
	Recipe string
	Styles *style.Object
	// Layer is the explicit target layer of an atomic entry.
	Layer string
}

type bucket struct {
	order  []string
	groups map[string][]Entry
}

func (b *bucket) add(e Entry) {
	if b.groups == nil {
		b.groups = make(map[string][]Entry)
	}
	if _, ok := b.groups[e.Recipe]; !ok {
		b.order = append(b.order, e.Recipe)
	}
	b.groups[e.Recipe] = append(b.groups[e.Recipe], e)
}

func (b *bucket) entries() []Entry {
	var out []Entry
	for _, name := range b.order {
		out = append(out, b.groups[name]...)
	}
	return out
}

func (b *bucket) len() int {
	n := 0
	for _, g := range b.groups {
		n += len(g)
	}
	return n
}

// Collector is a single-owner aggregate. Entries keep their call order,
// grouped by recipe in order of first appearance. Nothing is deduplicated.
type Collector struct {
	buckets [len(bucketNames)]bucket
}

// New returns an empty collector.
func New() *Collector {
	return &Collector{}
}

// AddAtomic collects a utility style object. An empty layer routes to the
// utilities layer.
func (c *Collector) AddAtomic(styles *style.Object, layer string) {
	c.add(Atomic, Entry{Styles: styles, Layer: layer})
}

// AddRecipe collects a recipe variant rule.
func (c *Collector) AddRecipe(name string, styles *style.Object) {
	c.add(Recipes, Entry{Recipe: name, Styles: styles})
}

// AddRecipeBase collects a recipe base rule.
func (c *Collector) AddRecipeBase(name string, styles *style.Object, isSlot bool) {
	b := RecipesBase
	if isSlot {
		b = RecipesSlotsBase
	}
	c.add(b, Entry{Recipe: name, Styles: styles})
}

// AddSlotRecipe collects a slot recipe variant rule.
func (c *Collector) AddSlotRecipe(name string, styles *style.Object) {
	c.add(RecipesSlots, Entry{Recipe: name, Styles: styles})
}

func (c *Collector) add(b Bucket, e Entry) {
	if e.Styles == nil {
		return
	}
	c.buckets[b].add(e)
}

// Entries returns the entries of a bucket in collection order.
func (c *Collector) Entries(b Bucket) []Entry {
	return c.buckets[b].entries()
}

// Len counts entries across all buckets.
func (c *Collector) Len() int {
	n := 0
	for i := range c.buckets {
		n += c.buckets[i].len()
	}
	return n
}

// IsEmpty reports whether nothing was collected.
func (c *Collector) IsEmpty() bool {
	return c.Len() == 0
}

// Reset drops every entry.
func (c *Collector) Reset() {
	c.buckets = [len(bucketNames)]bucket{}
}

// Merge appends other's entries bucket by bucket.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	for _, b := range Buckets {
		for _, e := range other.Entries(b) {
			c.buckets[b].add(e)
		}
	}
}
