package catalog

import (
	"strconv"
	"strings"
)

// Coercion helpers. Numeric fields parse permissively: an empty or
// unparseable cell is 0, never an error.

func ParseFloat(value string) float64 {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func ParseInt(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	// Some sheets write integers as "12.0"
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}

// ParseBool treats yes/true/1 (any case) as true, everything else as false
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// SplitList splits a delimited cell into trimmed tokens, dropping empties
func SplitList(value, delimiter string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	parts := strings.Split(value, delimiter)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// PricePolicy holds the configurable pricing fallbacks. The category table
// and the sale markup factor are operator-supplied policy; see config.
type PricePolicy struct {
	Table            map[string]float64
	DefaultPrice     float64
	SaleMarkupFactor float64
}

// ResolvePrice applies the category-keyed default table when the coerced
// price is zero.
func (p PricePolicy) ResolvePrice(price float64, category string) float64 {
	if price > 0 {
		return price
	}
	if def, ok := p.Table[strings.ToLower(strings.TrimSpace(category))]; ok {
		return def
	}
	return p.DefaultPrice
}

// ResolveOriginalPrice synthesizes original_price for sale items that lack
// one, using the configured markup factor.
func (p PricePolicy) ResolveOriginalPrice(price, originalPrice float64, isSale bool) float64 {
	if isSale && originalPrice == 0 {
		return price * p.SaleMarkupFactor
	}
	return originalPrice
}
