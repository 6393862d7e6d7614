package reconcile

import "time"

// Result represents the reconciliation output for a single document.
// It contains presence flags for each store and any detected mismatches.
type Result struct {
	// DriveID is the document's unique Drive identifier.
	DriveID string `json:"drive_id"`

	// Name is the display name of the document.
	Name string `json:"name"`

	// DBPresent indicates whether the document has a row in the records table.
	DBPresent bool `json:"db_present"`

	// ManifestPresent indicates whether the document appears in the Drive manifest.
	ManifestPresent bool `json:"manifest_present"`

	// ContentPresent indicates whether a mirrored content object exists.
	ContentPresent bool `json:"content_present"`

	// Mismatch contains descriptions of field drift between the records
	// table and the manifest, e.g. "name: manifest=a.pdf db=b.pdf".
	Mismatch []string `json:"mismatch"`

	// Metadata contains schema-specific extra data (mime type, path).
	Metadata map[string]string `json:"metadata"`
}

// Query represents a search query for targeted reconciliation.
// The adapter decides how to translate query fields into lookups.
type Query struct {
	// DriveID is the document id to search for.
	DriveID string

	// Name is the document name to search for.
	Name string

	// Path is the materialized path to search for.
	Path string
}

// Spec defines the configuration for a reconciliation operation.
// It bundles the adapter, cache settings, and store layout parameters.
type Spec struct {
	// Adapter provides schema-specific reconciliation logic.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration

	// ContentPrefix is the prefix under which mirrored content objects live.
	// Example: "content/".
	ContentPrefix string

	// ManifestObjectName is the object key of the Drive manifest JSON.
	// Example: "manifest/drive_manifest.json".
	ManifestObjectName string

	// SchemaProfile selects the records table generation (modern, legacy).
	SchemaProfile string
}

// CacheKey returns a unique key for caching based on spec parameters.
// This ensures different schemas/configs don't share the same cache.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + s.SchemaProfile + "|" + s.ContentPrefix + "|" + s.ManifestObjectName
}

// DBItem represents a records-table row with schema-specific fields.
// Adapters define the concrete type.
type DBItem any

// ManifestItem represents one Drive manifest entry with schema-specific
// fields. Adapters define the concrete type.
type ManifestItem any

// ActionType represents the type of repair action.
type ActionType string

const (
	// ActionDeleteDB deletes a stale row from the records table.
	ActionDeleteDB ActionType = "delete_db"
	// ActionDeleteContent deletes an orphaned content object.
	ActionDeleteContent ActionType = "delete_content"
	// ActionSyncDB updates drifted record fields from the manifest.
	// The manifest is owned by the sync pipeline and is never mutated here.
	ActionSyncDB ActionType = "sync_db"
)

// Action represents a planned repair operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// DriveID is the document identifier.
	DriveID string `json:"drive_id"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// ManifestItem carries the manifest source for sync actions.
	// Only populated for ActionSyncDB.
	ManifestItem ManifestItem `json:"-"`
}

// Plan contains reconciliation results and planned repair actions.
type Plan struct {
	// Results contains per-document reconciliation data.
	Results []Result `json:"results"`

	// Actions contains planned repair operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique documents across all stores.
	TotalItems int `json:"total_items"`

	// MissingManifest counts documents absent from the Drive manifest.
	MissingManifest int `json:"missing_manifest"`

	// MissingContent counts documents without a mirrored content object.
	MissingContent int `json:"missing_content"`

	// MissingDB counts documents without a records-table row.
	MissingDB int `json:"missing_db"`

	// Mismatches counts documents with field drift.
	Mismatches int `json:"mismatches"`

	// PurgeActions counts planned delete actions.
	PurgeActions int `json:"purge_actions"`

	// SyncActions counts planned sync (update) actions.
	SyncActions int `json:"sync_actions"`
}

// Options controls reconcile behavior for purge/sync operations.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge enables deletion of stale rows and orphaned content.
	DoPurge bool

	// DoSync enables syncing of drifted fields from the manifest to the DB.
	DoSync bool

	// Confirmed indicates the user has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
