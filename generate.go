package stylegen

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/stylegen/internal/collector"
	"github.com/yacobolo/stylegen/internal/rules"
	"github.com/yacobolo/stylegen/internal/serialize"
	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/stylesheet"
	"github.com/yacobolo/stylegen/internal/theme"
	"github.com/yacobolo/stylegen/internal/usage"
)

// Generate builds the stylesheet and writes it to config.Outfile. Nothing
// is written when the stylesheet is empty.
func Generate(config Config) (*GenerateResult, error) {
	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	th, err := theme.Load(config.Theme)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	static, err := staticRules(th, config.Static)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Outfile: config.Outfile}

	// 1. Collect static permutations and usages
	c := collector.New()
	proc := rules.New(th, c, log)
	if config.Artifact == ArtifactFull || config.Artifact == ArtifactStatic {
		proc.Static(staticcss.Expand(static, th))
	}
	if (config.Artifact == ArtifactFull || config.Artifact == ArtifactUsage) && len(config.Includes) > 0 {
		scan, err := usage.NewScanner(log).Scan(config.Includes)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result.Stats = scan.Stats
		result.Warnings = multierr.Errors(scan.Warnings)
		proc.Static(scan.Usages)
	}
	result.AtomicRules = len(c.Entries(collector.Atomic))
	result.RecipeRules = c.Len() - result.AtomicRules

	// 2. Build the sheet
	sheet := stylesheet.New(stylesheet.Options{
		Conditions: th.Conditions(),
		Serializer: serialize.New(th.Conditions(), th),
		Tokens:     th,
		Layers:     config.Layers,
		Logger:     log,
	})
	full := config.Artifact == ArtifactFull && !config.Minimal
	if full || config.Artifact == ArtifactTokens {
		sheet.ProcessCSSObject(th.TokensCSS(), stylesheet.Tokens)
	}
	if full || config.Artifact == ArtifactGlobal {
		if err := sheet.ProcessGlobalCss(th.GlobalCSS()); err != nil {
			return nil, err
		}
	}
	sheet.ProcessStyleCollector(c)
	result.Errors = sheet.Errors()

	css, err := sheet.ToCSS(stylesheet.ToCSSOptions{Optimize: config.Optimize, Minify: config.Minify})
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	if css != "" && full {
		sep := "\n\n"
		if config.Minify {
			sep = ""
		}
		css = sheet.LayerParams() + sep + css
	}
	result.CSS = css

	// 3. Write
	if css == "" || config.Outfile == "" {
		return result, nil
	}
	if err := writeFile(config.Outfile, css); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	result.Written = true
	log.Info("stylesheet written",
		zap.String("file", config.Outfile),
		zap.Int("bytes", len(css)),
		zap.Int("atomic", result.AtomicRules),
		zap.Int("recipes", result.RecipeRules))

	return result, nil
}

// Expand returns every permutation the static rules allow.
func Expand(config Config) (*staticcss.Result, error) {
	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}
	th, err := theme.Load(config.Theme)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	static, err := staticRules(th, config.Static)
	if err != nil {
		return nil, err
	}
	return staticcss.Expand(static, th), nil
}

// staticRules merges the rules file with the recipes' own static rules.
func staticRules(th *theme.Theme, path string) (staticcss.Config, error) {
	if path == "" {
		return th.StaticRules(nil), nil
	}
	cfg, err := staticcss.LoadRules(path)
	if err != nil {
		return staticcss.Config{}, fmt.Errorf("load failed: %w", err)
	}
	return th.StaticRules(&cfg), nil
}

func writeFile(path, css string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if css[len(css)-1] != '\n' {
		css += "\n"
	}
	// #nosec G306 - generated stylesheets are meant to be world readable
	return os.WriteFile(path, []byte(css), 0o644)
}
