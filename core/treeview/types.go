package treeview

import (
	"strings"

	"doc-browser/core/utils"
)

// FolderMimeType is the MIME sentinel the sync pipeline assigns to folder
// records. A record is a folder if and only if its MIME type equals this
// value; every other MIME type (including unknown ones) yields a file.
const FolderMimeType = "application/vnd.google-apps.folder"

// Kind distinguishes the two structural record kinds.
type Kind string

const (
	// KindFolder marks a record that can own children.
	KindFolder Kind = "folder"
	// KindFile marks a leaf record.
	KindFile Kind = "file"
)

// Category is a best-effort content classification for file records.
// It drives icon and color selection only; it never affects tree topology.
type Category string

const (
	CategoryDocument     Category = "document"
	CategorySpreadsheet  Category = "spreadsheet"
	CategoryPresentation Category = "presentation"
	CategoryPDF          Category = "pdf"
	CategoryImage        Category = "image"
	CategoryAudio        Category = "audio"
	CategoryVideo        Category = "video"
	CategoryText         Category = "text"
	CategoryOther        Category = "other"
)

// Status enumerates the processing pipeline states a record can be in.
type Status string

const (
	StatusNone       Status = "none"
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ProcessingStatus annotates a record with its pipeline state. It is used
// for badges and the hide-processed filter only, never for topology.
type ProcessingStatus struct {
	// Status is the pipeline state. The zero value is treated as StatusNone.
	Status Status `json:"status"`

	// Error carries the pipeline failure message when Status is failed.
	Error string `json:"error,omitempty"`
}

// sizeHintKeys are the metadata keys checked for a byte count, in priority
// order. The first key holding a non-empty value wins.
var sizeHintKeys = []string{"size", "file_size", "fileSize", "quotaBytesUsed"}

// FileRecord is one flat record as delivered by the sync pipeline.
// Only ID is guaranteed; every other field may be missing, stale, or
// inconsistent between the path and folder-id linkage schemes.
// Records are immutable for the duration of a reconciliation pass.
type FileRecord struct {
	// ID is the opaque unique identifier (the Drive id in practice).
	ID string `json:"id"`

	// Name is the display string. It is the sort tiebreak key and the
	// target of substring filtering.
	Name string `json:"name"`

	// MimeType is the raw MIME type string from the source.
	MimeType string `json:"mime_type"`

	// PathKey is the record's materialized path as synthesized by the sync
	// job ("Archive/2024-03-01 Notes/report.pdf"). Empty when the sync
	// never assigned one. Parentage via this scheme means the parent's
	// PathKey is the directory prefix of the child's.
	PathKey string `json:"path_key,omitempty"`

	// FolderRefID is the foreign key to the owning folder record. Empty
	// when the source did not record one.
	FolderRefID string `json:"folder_ref_id,omitempty"`

	// IsRoot marks the record as a top-level anchor regardless of its
	// parent fields.
	IsRoot bool `json:"is_root,omitempty"`

	// Processing is the pipeline status sub-record, if any.
	Processing ProcessingStatus `json:"processing"`

	// Metadata is the raw metadata blob synced alongside the record.
	// The engine only reads size hints out of it.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Kind derives the structural kind from the MIME type.
func (r *FileRecord) Kind() Kind {
	if r.MimeType == FolderMimeType {
		return KindFolder
	}
	return KindFile
}

// IsFolder reports whether the record is a folder.
func (r *FileRecord) IsFolder() bool {
	return r.Kind() == KindFolder
}

// Category classifies a file record for icon selection. Folders and
// unknown MIME types return CategoryOther.
func (r *FileRecord) Category() Category {
	mime := r.MimeType
	switch {
	case mime == FolderMimeType:
		return CategoryOther
	case mime == "application/pdf":
		return CategoryPDF
	case strings.Contains(mime, "spreadsheet") || strings.Contains(mime, "ms-excel"):
		return CategorySpreadsheet
	case strings.Contains(mime, "presentation") || strings.Contains(mime, "ms-powerpoint"):
		return CategoryPresentation
	case strings.Contains(mime, "document") || strings.Contains(mime, "msword"):
		return CategoryDocument
	case strings.HasPrefix(mime, "image/"):
		return CategoryImage
	case strings.HasPrefix(mime, "audio/"):
		return CategoryAudio
	case strings.HasPrefix(mime, "video/"):
		return CategoryVideo
	case strings.HasPrefix(mime, "text/"):
		return CategoryText
	default:
		return CategoryOther
	}
}

// SizeHint extracts a byte count from the metadata blob. The source stores
// sizes under several keys depending on sync vintage, as numbers or as
// strings; the first non-empty key in priority order wins. Unparseable
// values degrade to 0.
func (r *FileRecord) SizeHint() int64 {
	for _, key := range sizeHintKeys {
		val, ok := r.Metadata[key]
		if !ok || val == nil {
			continue
		}
		if s, isStr := val.(string); isStr && s == "" {
			continue
		}
		return utils.ToInt64(val)
	}
	return 0
}

// ExpandKey is the key under which the view state tracks this record's
// expansion: the path when present, the id otherwise.
func (r *FileRecord) ExpandKey() string {
	if r.PathKey != "" {
		return r.PathKey
	}
	return r.ID
}

// isRootAnchor reports whether the record participates in root resolution.
// Only flagged folders anchor the tree; a flagged file is meaningless and
// ignored, per the quiet-failure policy.
func (r *FileRecord) isRootAnchor() bool {
	return r.IsRoot && r.IsFolder()
}

// TypeFilter is one active type filter: a display name plus the set of
// MIME types it covers (source exports sometimes use several equivalent
// MIME strings for one logical type).
type TypeFilter struct {
	// Name is the filter's display label ("PDF", "Audio").
	Name string `json:"name"`

	// MimeTypes is the set of MIME type strings the filter accepts.
	MimeTypes []string `json:"mime_types"`
}

// Matches reports whether the filter accepts the given MIME type.
func (f TypeFilter) Matches(mimeType string) bool {
	for _, m := range f.MimeTypes {
		if m == mimeType {
			return true
		}
	}
	return false
}

// ViewState is the externally-owned view state handed to the engine on
// every pass. The engine only reads it; the caller owns its lifecycle.
// A nil ViewState behaves like the zero value (no filters, nothing
// expanded or selected).
type ViewState struct {
	// Filters is the set of active type filters. Empty means "no filter":
	// every record passes.
	Filters []TypeFilter

	// Query is a case-insensitive substring filter on file names.
	// Folders are exempt so the structure stays navigable.
	Query string

	// Expanded is the set of expanded node keys (see FileRecord.ExpandKey).
	Expanded map[string]struct{}

	// Selected is the set of selected record ids.
	Selected map[string]struct{}

	// HideProcessed excludes files whose processing status is completed.
	HideProcessed bool

	// HideSubfolders collapses folders at nesting depth >= 2, surfacing
	// their file contents one level up.
	HideSubfolders bool
}

// IsExpanded reports whether the record's scope is expanded.
func (v *ViewState) IsExpanded(r *FileRecord) bool {
	if v == nil || v.Expanded == nil {
		return false
	}
	_, ok := v.Expanded[r.ExpandKey()]
	return ok
}

// IsSelected reports whether the record is selected.
func (v *ViewState) IsSelected(r *FileRecord) bool {
	if v == nil || v.Selected == nil {
		return false
	}
	_, ok := v.Selected[r.ID]
	return ok
}

// allowsFile applies the type filters and the substring query to a file
// record. Folders never go through this check: they are structure and are
// never filtered out of the tree.
func (v *ViewState) allowsFile(r *FileRecord) bool {
	if v == nil {
		return true
	}
	if v.Query != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(v.Query)) {
		return false
	}
	if len(v.Filters) == 0 {
		return true
	}
	for _, f := range v.Filters {
		if f.Matches(r.MimeType) {
			return true
		}
	}
	return false
}

// TreeNode is one node of the derived tree. Node graphs are owned by the
// engine and rebuilt wholesale every pass; renderers may read but must
// not mutate them.
type TreeNode struct {
	// Record is the originating flat record (shared reference).
	Record *FileRecord `json:"record"`

	// Children is the ordered child list, already filtered and sorted.
	Children []*TreeNode `json:"children,omitempty"`

	// Depth is the nesting depth; roots are 0.
	Depth int `json:"depth"`

	// IsExpanded mirrors the view state's expansion set for this node.
	IsExpanded bool `json:"is_expanded"`

	// HasChildren reports whether any record links to this node via either
	// scheme, independent of active filters. It stays true when every
	// child is currently filtered out, so renderers can keep the expand
	// affordance visible.
	HasChildren bool `json:"has_children"`
}
