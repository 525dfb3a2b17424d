package stylegen

import (
	"errors"

	"go.uber.org/zap"

	"github.com/yacobolo/stylegen/internal/stylesheet"
	"github.com/yacobolo/stylegen/internal/usage"
)

// ErrThemeRequired is returned when no theme file is configured.
var ErrThemeRequired = errors.New("a theme file is required")

// Artifacts select a part of the stylesheet. The empty artifact builds
// everything.
const (
	ArtifactFull   = ""
	ArtifactTokens = "tokens"
	ArtifactStatic = "static"
	ArtifactGlobal = "global"
	ArtifactUsage  = "usage"
)

// Config holds generation settings.
type Config struct {
	Theme    string   // "theme.yaml"
	Static   string   // optional static CSS rules document
	Includes []string `validate:"dive,required"` // usage document globs
	Outfile  string   // empty keeps the CSS in the result only
	Artifact string   `validate:"omitempty,oneof=tokens static global usage"`
	Optimize bool     // Merge and deduplicate rules (default: true in the CLI)
	Minify   bool
	// Minimal leaves out the layer order statement, tokens and global CSS.
	Minimal bool
	Layers  stylesheet.LayerNames
	Logger  *zap.Logger `validate:"-"`
}

// GenerateResult contains generation stats.
type GenerateResult struct {
	CSS         string
	Outfile     string
	Written     bool
	AtomicRules int
	RecipeRules int
	Stats       usage.Stats
	// Warnings are usage documents that could not be read.
	Warnings []error
	// Errors are style objects that failed to serialize and were skipped.
	Errors []error
}
