package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylegen"
	"github.com/yacobolo/stylegen/internal/cssast"
	"github.com/yacobolo/stylegen/internal/report"
)

// stdoutFile makes generate print the stylesheet instead of writing it.
const stdoutFile = "-"

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the stylesheet from a theme",
	Long: `Load the theme, expand the static CSS rules, add the usages found in
usage documents and write one layered stylesheet.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("theme", "theme.yaml", "Theme file (YAML or JSON)")
	f.String("static", "", "Static CSS rules file")
	f.StringSlice("include", nil, "Glob patterns for usage documents")
	f.String("outfile", "styles.css", "Output file (- for stdout)")
	f.String("artifact", "", "Build one artifact only: tokens|static|global|usage")
	f.Bool("optimize", true, "Merge and deduplicate rules")
	f.Bool("minify", false, "Minify the output")
	f.Bool("minimal", false, "Leave out the layer order, tokens and global CSS")
}

func runGenerate(_ *cobra.Command, _ []string) error {
	config := buildGenerateConfig()
	toStdout := config.Outfile == stdoutFile
	if toStdout {
		config.Outfile = ""
	}

	log, err := buildLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	config.Logger = log

	quiet := getBoolWithFallback("quiet", "quiet", false)
	colors := getBoolWithFallback("color", "color", false)

	result, err := stylegen.Generate(config)
	if err != nil {
		if _, ok := cssast.AsSyntaxError(err); ok && !quiet {
			target := config.Outfile
			if target == "" {
				target = "<stdout>"
			}
			report.NewReporter(os.Stderr, colors).PrintDiagnostic(target, err)
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if toStdout {
		fmt.Println(result.CSS)
		return nil
	}
	if quiet {
		return nil
	}

	report.NewReporter(os.Stdout, colors).PrintSummary(report.Summary{
		Artifact:        config.Artifact,
		Outfile:         result.Outfile,
		Bytes:           len(result.CSS),
		FilesDiscovered: result.Stats.FilesDiscovered,
		FilesScanned:    result.Stats.FilesScanned,
		FilesSkipped:    result.Stats.FilesSkipped,
		AtomicRules:     result.AtomicRules,
		RecipeRules:     result.RecipeRules,
		Warnings:        result.Warnings,
		Errors:          result.Errors,
	})
	return nil
}
