// Package report prints generation summaries and CSS diagnostics.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yacobolo/stylegen/internal/cssast"
)

// Summary describes one generation run.
type Summary struct {
	Artifact        string
	Outfile         string
	Bytes           int
	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int
	AtomicRules     int
	RecipeRules     int
	// Warnings are skipped usage documents.
	Warnings []error
	// Errors are style objects that failed to serialize.
	Errors []error
}

// Reporter writes human readable output.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter returns a reporter. Colours are used when forced or when
// stdout is a terminal.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{w: w, useColors: ShouldUseColors(forceColors)}
}

// ShouldUseColors determines if colours should be enabled.
func ShouldUseColors(explicit bool) bool {
	if explicit {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// UseColors returns whether colours are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintSummary outputs the run statistics.
func (r *Reporter) PrintSummary(s Summary) {
	target := s.Outfile
	if target == "" {
		target = "stdout"
	}
	what := "stylesheet"
	if s.Artifact != "" {
		what = s.Artifact + " artifact"
	}

	if s.Bytes == 0 {
		fmt.Fprintf(r.w, "%s\n", r.paint(styleWarning, "No CSS generated, nothing written"))
	} else {
		fmt.Fprintf(r.w, "%s %s (%s) to %s\n",
			r.paint(styleSuccess, "✓ Wrote"),
			what,
			pluralizeCount(s.Bytes, "byte", "bytes"),
			r.paint(styleLocation, target))
	}

	if s.FilesDiscovered > 0 {
		fmt.Fprintf(r.w, "  %s scanned", pluralizeCount(s.FilesScanned, "usage file", "usage files"))
		if s.FilesSkipped > 0 {
			fmt.Fprintf(r.w, " (%d ignored)", s.FilesSkipped)
		}
		fmt.Fprintln(r.w)
	}
	fmt.Fprintf(r.w, "  %s, %s\n",
		pluralizeCount(s.AtomicRules, "atomic rule", "atomic rules"),
		pluralizeCount(s.RecipeRules, "recipe rule", "recipe rules"))

	r.printErrors(styleWarning, "warning", "warnings", s.Warnings)
	r.printErrors(styleError, "error", "errors", s.Errors)
}

func (r *Reporter) printErrors(style lipgloss.Style, singular, plural string, errs []error) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s:\n", r.paint(style, pluralizeCount(len(errs), singular, plural)))
	for _, err := range errs {
		fmt.Fprintf(r.w, "* %s\n", err)
	}
}

// PrintDiagnostic outputs a CSS error in file:line:col: message (plugin)
// form, followed by the offending line and a caret when the position is
// known. Other errors are printed as is.
func (r *Reporter) PrintDiagnostic(file string, err error) {
	se, ok := cssast.AsSyntaxError(err)
	if !ok {
		fmt.Fprintf(r.w, "%s %s\n", r.paint(styleError, "error:"), err)
		return
	}

	location := file + ":"
	if se.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", file, se.Line, se.Column)
	}
	suffix := ""
	if se.Plugin != "" {
		suffix = fmt.Sprintf(" (%s)", se.Plugin)
	}
	fmt.Fprintf(r.w, "%s %s%s\n",
		r.paint(styleLocation, location),
		se.Message,
		r.paint(stylePlugin, suffix))

	line, ok := sourceLine(se.Source, se.Line)
	if !ok {
		return
	}
	fmt.Fprintf(r.w, "\t%s\n", line)
	fmt.Fprintf(r.w, "\t%s\n", r.paint(styleWarning, buildCaretIndicator(line, se.Column)))
}

func sourceLine(source string, line int) (string, bool) {
	if line <= 0 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

// buildCaretIndicator aligns "^" under column, keeping the line's tabs.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
