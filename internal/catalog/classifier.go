package catalog

import (
	"strconv"
	"strings"
)

// ContentKind is the classifier's verdict on a delimited cell
type ContentKind string

const (
	ContentColors  ContentKind = "colors"
	ContentSizes   ContentKind = "sizes"
	ContentMixed   ContentKind = "mixed"
	ContentUnknown ContentKind = "unknown"
)

// colorKeywords is the fixed corpus of color tokens seen in the source
// catalogs. Matching is case-insensitive on whole tokens.
var colorKeywords = map[string]bool{
	"gold":       true,
	"silver":     true,
	"rose gold":  true,
	"white gold": true,
	"platinum":   true,
	"bronze":     true,
	"copper":     true,
	"black":      true,
	"white":      true,
	"red":        true,
	"blue":       true,
	"green":      true,
	"yellow":     true,
	"pink":       true,
	"purple":     true,
	"grey":       true,
	"gray":       true,
	"brown":      true,
	"beige":      true,
	"turquoise":  true,
	"ivory":      true,
	"champagne":  true,
}

// sizeKeywords covers the non-numeric size vocabulary; purely numeric tokens
// (ring sizes, chain lengths) also count as size hits.
var sizeKeywords = map[string]bool{
	"xs":         true,
	"s":          true,
	"m":          true,
	"l":          true,
	"xl":         true,
	"xxl":        true,
	"small":      true,
	"medium":     true,
	"large":      true,
	"one size":   true,
	"onesize":    true,
	"adjustable": true,
	"mini":       true,
	"regular":    true,
	"long":       true,
	"short":      true,
}

// ClassifyTokens inspects a cell's tokens and reports whether the content
// looks like colors, sizes, both, or neither. Pure function so the heuristic
// can be tested against the keyword corpus in isolation.
func ClassifyTokens(tokens []string) ContentKind {
	var colorHits, sizeHits int
	for _, token := range tokens {
		t := strings.ToLower(strings.TrimSpace(token))
		if t == "" {
			continue
		}
		if colorKeywords[t] {
			colorHits++
			continue
		}
		if sizeKeywords[t] || isNumericToken(t) {
			sizeHits++
		}
	}
	switch {
	case colorHits > 0 && sizeHits > 0:
		return ContentMixed
	case colorHits > 0:
		return ContentColors
	case sizeHits > 0:
		return ContentSizes
	default:
		return ContentUnknown
	}
}

func isNumericToken(t string) bool {
	_, err := strconv.ParseFloat(strings.TrimSuffix(t, "cm"), 64)
	return err == nil
}

// ResolveColorSizeCells applies the swap heuristic to the nominal colors and
// sizes cells of one row. When the colors cell classifies as sizes and the
// sizes cell classifies as colors, the two were authored swapped and are
// returned corrected; in every other case (mixed, unknown, one-sided) the
// nominal assignment is kept.
func ResolveColorSizeCells(colorsCell, sizesCell, delimiter string) (string, string) {
	colorsKind := ClassifyTokens(strings.Split(colorsCell, delimiter))
	sizesKind := ClassifyTokens(strings.Split(sizesCell, delimiter))

	if colorsKind == ContentSizes && sizesKind == ContentColors {
		return sizesCell, colorsCell
	}
	return colorsCell, sizesCell
}
