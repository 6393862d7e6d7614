package models

import (
	"encoding/json"
	"time"

	"doc-browser/core/treeview"
)

// ModernSource represents a row of the 'google_sources' table, the current
// sync schema.
type ModernSource struct {
	ID             string     `gorm:"column:id;primaryKey"`
	DriveID        string     `gorm:"column:drive_id"`
	Name           string     `gorm:"column:name"`
	MimeType       string     `gorm:"column:mime_type"`
	Path           string     `gorm:"column:path"`
	ParentFolderID string     `gorm:"column:parent_folder_id"`
	IsRoot         bool       `gorm:"column:is_root"`
	Size           *int64     `gorm:"column:size"`
	Metadata       []byte     `gorm:"column:metadata"` // jsonb
	IsDeleted      bool       `gorm:"column:is_deleted"`
	ModifiedAt     *time.Time `gorm:"column:modified_at"`
}

// TableName overrides the table name for the modern schema.
func (ModernSource) TableName() string {
	return "google_sources"
}

// ToRecord converts the modern row to a normalized tree record.
func (m ModernSource) ToRecord() *treeview.FileRecord {
	rec := &treeview.FileRecord{
		ID:          m.DriveID,
		Name:        m.Name,
		MimeType:    m.MimeType,
		PathKey:     m.Path,
		FolderRefID: m.ParentFolderID,
		IsRoot:      m.IsRoot,
		Metadata:    decodeMetadata(m.Metadata),
	}
	if m.Size != nil && rec.Metadata["size"] == nil {
		if rec.Metadata == nil {
			rec.Metadata = make(map[string]any)
		}
		rec.Metadata["size"] = *m.Size
	}
	return rec
}

// LegacySource represents a row of the 'sources_google' table, the
// pre-migration sync schema. Column names differ from the modern table;
// the sync job never backfilled paths consistently, so Path is often empty.
type LegacySource struct {
	ID       string `gorm:"column:id;primaryKey"`
	DriveID  string `gorm:"column:drive_id"`
	Name     string `gorm:"column:name"`
	MimeType string `gorm:"column:mime_type"`
	Path     string `gorm:"column:path"`
	ParentID string `gorm:"column:parent_id"`
	IsRoot   bool   `gorm:"column:is_root"`
	Size     *int64 `gorm:"column:size_bytes"`
	Metadata []byte `gorm:"column:metadata"`
	Deleted  bool   `gorm:"column:deleted"`
}

// TableName overrides the table name for the legacy schema.
func (LegacySource) TableName() string {
	return "sources_google"
}

// ToRecord converts the legacy row to a normalized tree record.
func (l LegacySource) ToRecord() *treeview.FileRecord {
	rec := &treeview.FileRecord{
		ID:          l.DriveID,
		Name:        l.Name,
		MimeType:    l.MimeType,
		PathKey:     l.Path,
		FolderRefID: l.ParentID,
		IsRoot:      l.IsRoot,
		Metadata:    decodeMetadata(l.Metadata),
	}
	if l.Size != nil && rec.Metadata["size"] == nil {
		if rec.Metadata == nil {
			rec.Metadata = make(map[string]any)
		}
		rec.Metadata["size"] = *l.Size
	}
	return rec
}

// ProcessingRow represents a row of the 'document_processing' table, the
// pipeline status sidecar shared by both schema generations.
type ProcessingRow struct {
	SourceDriveID string `gorm:"column:source_drive_id;primaryKey"`
	Status        string `gorm:"column:status"`
	ErrorMessage  string `gorm:"column:error_message"`
}

// TableName overrides the table name for the processing sidecar.
func (ProcessingRow) TableName() string {
	return "document_processing"
}

// ToStatus converts the row to the engine's processing annotation.
func (p ProcessingRow) ToStatus() treeview.ProcessingStatus {
	return treeview.ProcessingStatus{
		Status: treeview.Status(p.Status),
		Error:  p.ErrorMessage,
	}
}

// decodeMetadata parses the jsonb blob; malformed blobs degrade to nil.
func decodeMetadata(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var meta map[string]any
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil
	}
	return meta
}
