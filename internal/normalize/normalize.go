// Package normalize provides canonical string forms for slugs and colors.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)

	// hexColorPattern matches #RGB and #RRGGBB forms, any letter case.
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
)

// Slugify converts a display name to a URL-safe slug: unicode-normalized,
// lowercased, non-alphanumeric runs collapsed to single hyphens.
func Slugify(s string) string {
	// Decompose accented characters so "Café" becomes "Cafe".
	decomposed := norm.NFKD.String(s)

	var sb strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // drop combining marks
		}
		if r < 128 {
			sb.WriteRune(r)
		}
	}

	slug := strings.ToLower(sb.String())
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	slug = multipleHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// IsHexColor reports whether s is a #RGB or #RRGGBB color, case-insensitively.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// HexColor returns the canonical uppercase form of a hex color.
// The input is assumed to have passed IsHexColor.
func HexColor(s string) string {
	return strings.ToUpper(s)
}
