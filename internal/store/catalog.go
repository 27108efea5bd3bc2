package store

import (
	"time"

	"catalog-sync-service/internal/models"
	"github.com/google/uuid"
)

// DocumentCatalog is the authoritative catalog in document-only mode: the
// canonical set is loaded from the catalog document, mutated in memory
// during the run, and persisted by the projection rebuild.
type DocumentCatalog struct {
	byID  map[string]*models.CanonicalProduct
	order []string
}

// OpenDocumentCatalog loads the canonical set from the document's "all" view
func OpenDocumentCatalog(doc *DocumentStore) (*DocumentCatalog, error) {
	current, err := doc.Load()
	if err != nil {
		return nil, err
	}

	c := &DocumentCatalog{byID: make(map[string]*models.CanonicalProduct)}
	for _, p := range current.All() {
		p := p
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		c.byID[p.ProductID] = &p
		c.order = append(c.order, p.ProductID)
	}
	return c, nil
}

// Upsert inserts or field-merges one record keyed by ProductID. Returns
// true when a new record was created.
func (c *DocumentCatalog) Upsert(p *models.CanonicalProduct) (bool, error) {
	now := time.Now()
	if existing, ok := c.byID[p.ProductID]; ok {
		existing.ApplyUpdate(p, now)
		return false, nil
	}

	record := *p
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.LastUpdated = now
	c.byID[record.ProductID] = &record
	c.order = append(c.order, record.ProductID)
	return true, nil
}

// All returns the canonical set in first-seen order
func (c *DocumentCatalog) All() ([]models.CanonicalProduct, error) {
	products := make([]models.CanonicalProduct, 0, len(c.order))
	for _, id := range c.order {
		products = append(products, *c.byID[id])
	}
	return products, nil
}
