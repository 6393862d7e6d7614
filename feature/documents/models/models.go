package models

import "doc-browser/core/treeview"

// TreeResponse is the payload of the tree endpoint: the computed forest
// plus aggregate counts a renderer needs for its header line.
type TreeResponse struct {
	Roots        []*treeview.TreeNode `json:"roots"`
	TotalRecords int                  `json:"total_records"`
	GeneratedAt  string               `json:"generated_at"`
}

// DocumentDetail is the payload of the single-document endpoint.
type DocumentDetail struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	MimeType   string                    `json:"mime_type"`
	Kind       treeview.Kind             `json:"kind"`
	Category   treeview.Category         `json:"category"`
	Path       string                    `json:"path,omitempty"`
	ParentID   string                    `json:"parent_id,omitempty"`
	IsRoot     bool                      `json:"is_root,omitempty"`
	SizeBytes  int64                     `json:"size_bytes"`
	Processing treeview.ProcessingStatus `json:"processing"`
}

// DetailFromRecord builds the API detail view from a tree record.
func DetailFromRecord(rec *treeview.FileRecord) DocumentDetail {
	return DocumentDetail{
		ID:         rec.ID,
		Name:       rec.Name,
		MimeType:   rec.MimeType,
		Kind:       rec.Kind(),
		Category:   rec.Category(),
		Path:       rec.PathKey,
		ParentID:   rec.FolderRefID,
		IsRoot:     rec.IsRoot,
		SizeBytes:  rec.SizeHint(),
		Processing: rec.Processing,
	}
}
