// Package stylegen generates layered, atomic CSS from a design system theme.
//
// A theme declares tokens, utilities, conditions, recipes and patterns. The
// generator expands static CSS rules into every permutation they allow,
// adds the usages found in usage documents, and renders one stylesheet
// with a fixed cascade layer order.
//
// # Generation
//
//	config := stylegen.Config{
//		Theme:    "theme.yaml",
//		Static:   "static.yaml",
//		Includes: []string{"src/**/*.usage.yaml"},
//		Outfile:  "styles.css",
//		Optimize: true,
//	}
//	result, err := stylegen.Generate(config)
//
// # Expansion
//
// Expand returns the permutations of the static rules without rendering:
//
//	res, err := stylegen.Expand(config)
//	data, _ := res.JSON()
//
// # CLI Tool
//
//	go install github.com/yacobolo/stylegen/cmd/stylegen@latest
package stylegen
