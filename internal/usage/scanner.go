// Package usage discovers usage documents and decodes the style usages
// they declare.
package usage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/stylegen/internal/staticcss"
	"github.com/yacobolo/stylegen/internal/style"
)

// Stats tracks file discovery.
type Stats struct {
	FilesDiscovered int // Files matched by the include globs
	FilesScanned    int // Files actually decoded
	FilesSkipped    int // Files filtered out by .gitignore
}

// Result is the merged usage of every scanned file.
type Result struct {
	Usages *staticcss.Result
	Files  []string
	Stats  Stats
	// Warnings holds per-file failures; the files were skipped.
	Warnings error
}

// Scanner reads usage documents matched by glob patterns.
type Scanner struct {
	// IgnoreFile is the gitignore applied to relative paths.
	IgnoreFile string

	log        *zap.Logger
	ignoreOnce sync.Once
	ignore     *ignore.GitIgnore
}

// NewScanner returns a scanner honouring ./.gitignore.
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{IgnoreFile: ".gitignore", log: log.Named("usage")}
}

// loadGitIgnore compiles the ignore file once. A missing file disables
// filtering.
func (s *Scanner) loadGitIgnore() *ignore.GitIgnore {
	s.ignoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(s.IgnoreFile)
		if err != nil {
			return
		}
		s.ignore = gi
	})
	return s.ignore
}

// shouldSkipFile applies .gitignore to paths inside the project. Absolute
// paths are never filtered.
func (s *Scanner) shouldSkipFile(path string) bool {
	if filepath.IsAbs(path) {
		return false
	}
	gi := s.loadGitIgnore()
	return gi != nil && gi.MatchesPath(path)
}

// Discover expands the glob patterns into files, deduplicated in match order.
func (s *Scanner) Discover(patterns []string) ([]string, Stats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("include %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				s.log.Debug("skipping ignored file", zap.String("file", RelativePath(match)))
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// Scan discovers and decodes every usage document. Unreadable or invalid
// documents are reported in Warnings and skipped.
func (s *Scanner) Scan(patterns []string) (*Result, error) {
	files, stats, err := s.Discover(patterns)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Usages: &staticcss.Result{
			CSS:      make([]*style.Object, 0),
			Recipes:  make([]staticcss.RecipeInvocation, 0),
			Patterns: make([]staticcss.PatternInvocation, 0),
		},
		Stats: stats,
	}

	for _, file := range files {
		doc, err := scanFile(file)
		if err != nil {
			s.log.Warn("usage document skipped", zap.String("file", RelativePath(file)), zap.Error(err))
			res.Warnings = multierr.Append(res.Warnings, err)
			continue
		}
		res.Files = append(res.Files, file)
		res.Usages.CSS = append(res.Usages.CSS, doc.CSS...)
		res.Usages.Recipes = append(res.Usages.Recipes, doc.Recipes...)
		res.Usages.Patterns = append(res.Usages.Patterns, doc.Patterns...)
	}

	s.log.Debug("scanned usage documents",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("scanned", len(res.Files)),
		zap.Int("skipped", stats.FilesSkipped),
	)
	return res, nil
}

func scanFile(path string) (*staticcss.Result, error) {
	// #nosec G304 - path comes from the configured include globs
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read usage: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// RelativePath returns path relative to the working directory when possible.
func RelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
