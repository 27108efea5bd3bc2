package store

import (
	"sort"
	"strings"

	"catalog-sync-service/internal/models"
)

// View names the storefront read path consumes. Category and section views
// are keyed "category_<slug>" and "section_<slug>".
const (
	ViewAll        = "all"
	ViewSale       = "sale"
	ViewNew        = "new"
	ViewInStock    = "in_stock"
	ViewOutOfStock = "out_of_stock"
)

// BuildViews recomputes every categorized view from the complete canonical
// set. Views are derived projections: fully rebuilt each run, never patched
// incrementally. Products are ordered by ProductID inside every view so two
// runs over the same set produce identical documents.
func BuildViews(products []models.CanonicalProduct) map[string][]models.CanonicalProduct {
	sorted := make([]models.CanonicalProduct, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ProductID < sorted[j].ProductID
	})

	views := map[string][]models.CanonicalProduct{
		ViewAll:        sorted,
		ViewSale:       {},
		ViewNew:        {},
		ViewInStock:    {},
		ViewOutOfStock: {},
	}

	for _, p := range sorted {
		if p.IsSale {
			views[ViewSale] = append(views[ViewSale], p)
		}
		if p.IsNew {
			views[ViewNew] = append(views[ViewNew], p)
		}
		if p.InStock {
			views[ViewInStock] = append(views[ViewInStock], p)
		} else {
			views[ViewOutOfStock] = append(views[ViewOutOfStock], p)
		}
		if key := viewKey("category", p.Category); key != "" {
			views[key] = append(views[key], p)
		}
		if key := viewKey("section", p.Section); key != "" {
			views[key] = append(views[key], p)
		}
	}

	return views
}

// viewKey slugs a category or section name into a view key. Matching is
// case-insensitive: "Rings" and "rings" land in the same view.
func viewKey(prefix, name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	if slug == "" {
		return ""
	}
	slug = strings.ReplaceAll(slug, " ", "_")
	return prefix + "_" + slug
}
