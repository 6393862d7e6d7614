package reconcile

import (
	"context"

	"doc-browser/core/storage"

	"gorm.io/gorm"
)

// Adapter defines the interface for schema-specific reconciliation logic.
// An adapter knows how to load, index, and compare one record layout
// (the modern and legacy sync schemas share an adapter that maps either
// table shape into the same normalized items).
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "documents").
	Name() string

	// LoadDBIndex loads all relevant rows and returns them indexed by drive id.
	// The schemaProfile parameter selects the table generation (modern, legacy).
	// Implementations should use batch queries to load minimal columns.
	LoadDBIndex(ctx context.Context, db *gorm.DB, schemaProfile string) (map[string]DBItem, error)

	// LoadManifestIndex loads the Drive manifest JSON from storage and
	// returns its entries indexed by drive id. Implementations should parse
	// the JSON once.
	LoadManifestIndex(ctx context.Context, client storage.Client, bucket, objectName string) (map[string]ManifestItem, error)

	// LoadContentSet lists all content objects under the given prefix and
	// returns a set of drive ids. Implementations should use paginated
	// listing and avoid per-object HEAD calls.
	LoadContentSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error)

	// ExtractDBKey returns the drive id from a records-table item.
	ExtractDBKey(item DBItem) string

	// ExtractManifestKey returns the drive id from a manifest entry.
	ExtractManifestKey(item ManifestItem) string

	// ExtractContentKey parses a content object key and returns the drive id.
	// If the object key doesn't match the expected pattern, ok is false.
	// Example: "content/1abc_xyz.pdf" -> ("1abc_xyz", true).
	ExtractContentKey(objectKey string) (key string, ok bool)

	// ResolveName returns the display name given the available DB and/or
	// manifest items. Either item may be nil if not present in that store.
	ResolveName(dbItem DBItem, mItem ManifestItem) string

	// CompareFields compares mapped fields between the row and the manifest
	// entry and returns a list of drift descriptions. Each string includes
	// the field label and both values (e.g., "name: manifest=a db=b").
	// Both items are guaranteed to be non-nil when this is called.
	CompareFields(dbItem DBItem, mItem ManifestItem) []string

	// QueryDB performs a targeted row lookup based on the query parameters.
	// Used for fast targeted reconciliation without building the full index.
	// Returns nil if no match is found.
	QueryDB(ctx context.Context, db *gorm.DB, schemaProfile string, query Query) (DBItem, error)

	// QueryManifest performs a targeted manifest lookup. For repeated
	// queries the cached index is preferred since the manifest must be
	// parsed whole either way.
	QueryManifest(ctx context.Context, client storage.Client, bucket, objectName string, query Query) (ManifestItem, error)

	// CheckContent checks if a specific document's content object exists.
	CheckContent(ctx context.Context, client storage.Client, bucket, prefix, key string) (bool, error)

	// GetMetadata returns schema-specific metadata (mime type, path) for
	// the document. This data is included in the Result.
	GetMetadata(dbItem DBItem, mItem ManifestItem) map[string]string
}

// Mutator is the optional interface adapters implement to support plan
// application (purge/sync). Adapters without it produce report-only plans.
type Mutator interface {
	// DeleteDB removes the row for the given drive id.
	DeleteDB(ctx context.Context, key string) error

	// DeleteContent removes the content object for the given drive id.
	DeleteContent(ctx context.Context, key string) error

	// SyncDBFromManifest updates the row's drifted fields from the manifest entry.
	SyncDBFromManifest(ctx context.Context, key string, mItem ManifestItem) error
}
