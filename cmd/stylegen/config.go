package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/stylegen"
	"github.com/yacobolo/stylegen/internal/logging"
	"github.com/yacobolo/stylegen/internal/stylesheet"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".stylegen.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (STYLEGEN_* prefix)
	if err := k.Load(env.Provider("STYLEGEN_", ".", func(s string) string {
		// STYLEGEN_GENERATE_THEME -> generate.theme
		// STYLEGEN_QUIET -> quiet
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "STYLEGEN_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig() stylegen.Config {
	config := stylegen.Config{
		Theme:    getStringWithFallback("theme", "generate.theme", "theme.yaml"),
		Static:   getStringWithFallback("static", "generate.static", ""),
		Outfile:  getStringWithFallback("outfile", "generate.outfile", "styles.css"),
		Artifact: getStringWithFallback("artifact", "generate.artifact", ""),
		Optimize: getBoolWithFallback("optimize", "generate.optimize", true),
		Minify:   getBoolWithFallback("minify", "generate.minify", false),
		Minimal:  getBoolWithFallback("minimal", "generate.minimal", false),
		Layers: stylesheet.LayerNames{
			Reset:     k.String("generate.layers.reset"),
			Base:      k.String("generate.layers.base"),
			Tokens:    k.String("generate.layers.tokens"),
			Recipes:   k.String("generate.layers.recipes"),
			Utilities: k.String("generate.layers.utilities"),
		},
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("generate.include"); len(includes) > 0 {
		config.Includes = includes
	}

	return config
}

// logLevel resolves the console level: --quiet and --verbose win over
// --log-level.
func logLevel() string {
	if getBoolWithFallback("quiet", "quiet", false) {
		return logging.LevelNone
	}
	if getBoolWithFallback("verbose", "verbose", false) {
		return logging.LevelDebug
	}
	return getStringWithFallback("log-level", "log-level", logging.LevelNormal)
}

func buildLogger() (*zap.Logger, error) {
	return logging.New(logLevel())
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
