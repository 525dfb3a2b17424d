package style

import (
	"regexp"
	"strings"
	"unicode"
)

var importantSuffix = regexp.MustCompile(`\s*!(important)?$`)

// IsImportant reports whether value ends with "!" or "!important".
func IsImportant(value string) bool {
	return importantSuffix.MatchString(value)
}

// WithoutImportant strips a trailing "!" or "!important".
func WithoutImportant(value string) string {
	return strings.TrimSpace(importantSuffix.ReplaceAllString(value, ""))
}

// WithoutSpace replaces whitespace with underscores, for use in class names.
func WithoutSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}

// Hyphenate converts a camelCase property into its CSS form.
// Custom properties and already hyphenated names pass through.
//
//	fontSize        -> font-size
//	WebkitAppearance -> -webkit-appearance
//	msTransform     -> -ms-transform
func Hyphenate(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	if strings.HasPrefix(prop, "ms") && len(prop) > 2 && unicode.IsUpper(rune(prop[2])) {
		prop = "-" + prop
	}
	var b strings.Builder
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 || !strings.HasPrefix(prop, "-") {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
