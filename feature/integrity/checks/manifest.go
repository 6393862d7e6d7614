package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"doc-browser/core/storage"
	docreconcile "doc-browser/feature/documents/reconcile"

	"github.com/minio/minio-go/v7"
)

// ManifestReport strictly types the result of a manifest check.
type ManifestReport struct {
	GeneratedAt   string   `json:"generated_at"`
	EntryCount    int      `json:"entry_count"`
	DuplicateIDs  []string `json:"duplicate_ids"`
	MissingFields []string `json:"missing_fields"`
	Status        string   `json:"status"` // "ok", "error"
}

// CheckManifest fetches and validates the Drive manifest: well-formed
// JSON, no duplicate drive ids, and no entries without id or name.
func CheckManifest(ctx context.Context, client storage.Client, bucket string) (*ManifestReport, error) {
	reader, err := client.GetObject(ctx, bucket, docreconcile.ManifestObjectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest docreconcile.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("manifest is not valid JSON: %w", err)
	}

	report := &ManifestReport{
		GeneratedAt: manifest.GeneratedAt,
		EntryCount:  len(manifest.Files),
		Status:      "ok",
	}

	seen := make(map[string]struct{}, len(manifest.Files))
	for i, entry := range manifest.Files {
		if entry.DriveID == "" {
			report.MissingFields = append(report.MissingFields, fmt.Sprintf("entry %d: missing drive_id", i))
			continue
		}
		if entry.Name == "" {
			report.MissingFields = append(report.MissingFields, fmt.Sprintf("entry %d (%s): missing name", i, entry.DriveID))
		}
		if _, dup := seen[entry.DriveID]; dup {
			report.DuplicateIDs = append(report.DuplicateIDs, entry.DriveID)
		}
		seen[entry.DriveID] = struct{}{}
	}

	if len(report.DuplicateIDs) > 0 || len(report.MissingFields) > 0 {
		report.Status = "error"
	}

	return report, nil
}
