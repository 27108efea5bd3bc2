package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"catalog-sync-service/internal/models"
)

const documentFileName = "catalog.json"

// CatalogDocument is the projection the storefront read path consumes: a
// mapping from view name to ordered product list. It is regenerated
// wholesale from the authoritative set after every successful write pass.
type CatalogDocument struct {
	GeneratedAt time.Time                            `json:"generatedAt"`
	Views       map[string][]models.CanonicalProduct `json:"views"`
}

// All returns the document's full product list
func (d *CatalogDocument) All() []models.CanonicalProduct {
	return d.Views[ViewAll]
}

// DocumentStore owns the catalog document file
type DocumentStore struct {
	path string
}

func NewDocumentStore(dataDir string) *DocumentStore {
	return &DocumentStore{path: filepath.Join(dataDir, documentFileName)}
}

// Path returns the document file location
func (s *DocumentStore) Path() string {
	return s.path
}

// Load reads the current catalog document. A missing file yields an empty
// document, not an error: the first sync run starts from nothing.
func (s *DocumentStore) Load() (*CatalogDocument, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &CatalogDocument{Views: map[string][]models.CanonicalProduct{ViewAll: {}}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog document: %w", err)
	}
	var doc CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}
	if doc.Views == nil {
		doc.Views = map[string][]models.CanonicalProduct{ViewAll: {}}
	}
	return &doc, nil
}

// Rebuild materializes every view from the canonical set and replaces the
// document on disk. The write goes through a temp file and rename so readers
// never observe a half-written document.
func (s *DocumentStore) Rebuild(products []models.CanonicalProduct) (*CatalogDocument, error) {
	doc := &CatalogDocument{
		GeneratedAt: time.Now().UTC(),
		Views:       BuildViews(products),
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write catalog document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return nil, fmt.Errorf("failed to replace catalog document: %w", err)
	}

	return doc, nil
}
