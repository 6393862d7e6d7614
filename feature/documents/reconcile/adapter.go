package reconcile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"doc-browser/core/reconcile"
	"doc-browser/core/storage"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// DocumentAdapter implements the reconcile.Adapter interface for the
// document archive: the records table, the Drive manifest JSON, and the
// content mirror objects.
type DocumentAdapter struct {
	// mutation context, set via SetMutationContext before applying plans
	db            *gorm.DB
	client        storage.Client
	bucket        string
	contentPrefix string
	schemaProfile string
}

// NewAdapter creates a new document adapter.
func NewAdapter() *DocumentAdapter {
	return &DocumentAdapter{}
}

// Name returns the unique name of this adapter.
func (a *DocumentAdapter) Name() string {
	return "documents"
}

// Item is a normalized records-table row used for comparison.
type Item struct {
	DriveID  string
	Name     string
	MimeType string
	Path     string
	Size     int64
}

// ManifestEntry is one file entry of the Drive manifest JSON.
type ManifestEntry struct {
	DriveID  string `json:"drive_id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Path     string `json:"path,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Manifest is the structure of the drive_manifest.json the sync pipeline
// writes alongside the content mirror.
type Manifest struct {
	GeneratedAt string          `json:"generated_at"`
	Files       []ManifestEntry `json:"files"`
}

// LoadDBIndex loads all live rows from the profile-selected table.
func (a *DocumentAdapter) LoadDBIndex(ctx context.Context, db *gorm.DB, schemaProfile string) (map[string]reconcile.DBItem, error) {
	index := make(map[string]reconcile.DBItem)
	if db == nil {
		return index, nil
	}

	profile := GetProfileByName(schemaProfile)
	cols := profile.Columns

	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = false",
		cols[ColDriveID], cols[ColName], cols[ColMimeType], cols[ColPath], cols[ColSize],
		profile.TableName, cols[ColDeleted])

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", profile.TableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		var path sql.NullString
		var size sql.NullInt64
		if err := rows.Scan(&item.DriveID, &item.Name, &item.MimeType, &path, &size); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		item.Path = path.String
		item.Size = size.Int64
		if item.DriveID == "" {
			continue
		}
		index[item.DriveID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return index, nil
}

// LoadManifestIndex loads and parses the Drive manifest JSON.
func (a *DocumentAdapter) LoadManifestIndex(ctx context.Context, client storage.Client, bucket, objectName string) (map[string]reconcile.ManifestItem, error) {
	index := make(map[string]reconcile.ManifestItem)
	if client == nil {
		return index, nil
	}

	reader, err := client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	for _, entry := range manifest.Files {
		if entry.DriveID == "" {
			continue
		}
		index[entry.DriveID] = entry
	}

	return index, nil
}

// LoadContentSet lists the content mirror and returns the drive ids that
// have a mirrored object.
func (a *DocumentAdapter) LoadContentSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if client == nil {
		return set, nil
	}

	objectCh := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for obj := range objectCh {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list content objects: %w", obj.Err)
		}
		if key, ok := a.extractKey(obj.Key, prefix); ok {
			set[key] = struct{}{}
		}
	}

	return set, nil
}

// ExtractDBKey returns the drive id from a records-table item.
func (a *DocumentAdapter) ExtractDBKey(item reconcile.DBItem) string {
	if it, ok := item.(Item); ok {
		return it.DriveID
	}
	return ""
}

// ExtractManifestKey returns the drive id from a manifest entry.
func (a *DocumentAdapter) ExtractManifestKey(item reconcile.ManifestItem) string {
	if entry, ok := item.(ManifestEntry); ok {
		return entry.DriveID
	}
	return ""
}

// ExtractContentKey parses a content object key into a drive id. The
// mirror stores objects flat as content/<drive-id><ext>.
func (a *DocumentAdapter) ExtractContentKey(objectKey string) (string, bool) {
	return a.extractKey(objectKey, "content/")
}

func (a *DocumentAdapter) extractKey(objectKey, prefix string) (string, bool) {
	if prefix != "" && !strings.HasPrefix(objectKey, prefix) {
		return "", false
	}
	base := strings.TrimPrefix(objectKey, prefix)
	// The mirror is flat; nested keys are not content objects.
	if strings.Contains(base, "/") {
		return "", false
	}
	// Drive ids never contain dots, so everything from the first dot on
	// is the file extension.
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	if base == "" {
		return "", false
	}
	return base, true
}

// ResolveName returns the display name, preferring the records table.
func (a *DocumentAdapter) ResolveName(dbItem reconcile.DBItem, mItem reconcile.ManifestItem) string {
	if it, ok := dbItem.(Item); ok && it.Name != "" {
		return it.Name
	}
	if entry, ok := mItem.(ManifestEntry); ok {
		return entry.Name
	}
	return ""
}

// CompareFields reports drift between the row and the manifest entry.
func (a *DocumentAdapter) CompareFields(dbItem reconcile.DBItem, mItem reconcile.ManifestItem) []string {
	it, okDB := dbItem.(Item)
	entry, okM := mItem.(ManifestEntry)
	if !okDB || !okM {
		return nil
	}

	var drift []string
	if it.Name != entry.Name {
		drift = append(drift, fmt.Sprintf("name: manifest=%s db=%s", entry.Name, it.Name))
	}
	if it.MimeType != entry.MimeType {
		drift = append(drift, fmt.Sprintf("mime_type: manifest=%s db=%s", entry.MimeType, it.MimeType))
	}
	if entry.Path != "" && it.Path != entry.Path {
		drift = append(drift, fmt.Sprintf("path: manifest=%s db=%s", entry.Path, it.Path))
	}
	if entry.Size > 0 && it.Size != entry.Size {
		drift = append(drift, fmt.Sprintf("size: manifest=%d db=%d", entry.Size, it.Size))
	}
	return drift
}

// QueryDB performs a targeted row lookup.
func (a *DocumentAdapter) QueryDB(ctx context.Context, db *gorm.DB, schemaProfile string, query reconcile.Query) (reconcile.DBItem, error) {
	if db == nil {
		return nil, nil
	}

	profile := GetProfileByName(schemaProfile)
	cols := profile.Columns

	var column, value string
	switch {
	case query.DriveID != "":
		column, value = cols[ColDriveID], query.DriveID
	case query.Path != "":
		column, value = cols[ColPath], query.Path
	case query.Name != "":
		column, value = cols[ColName], query.Name
	default:
		return nil, nil
	}

	sqlQuery := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = ? AND %s = false LIMIT 1",
		cols[ColDriveID], cols[ColName], cols[ColMimeType], cols[ColPath], cols[ColSize],
		profile.TableName, column, cols[ColDeleted])

	rows, err := db.WithContext(ctx).Raw(sqlQuery, value).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", profile.TableName, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var item Item
	var path sql.NullString
	var size sql.NullInt64
	if err := rows.Scan(&item.DriveID, &item.Name, &item.MimeType, &path, &size); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	item.Path = path.String
	item.Size = size.Int64

	return item, nil
}

// QueryManifest performs a targeted manifest lookup. The manifest must be
// parsed whole either way, so this loads the index and scans it.
func (a *DocumentAdapter) QueryManifest(ctx context.Context, client storage.Client, bucket, objectName string, query reconcile.Query) (reconcile.ManifestItem, error) {
	index, err := a.LoadManifestIndex(ctx, client, bucket, objectName)
	if err != nil {
		return nil, err
	}

	if query.DriveID != "" {
		if entry, ok := index[query.DriveID]; ok {
			return entry, nil
		}
		return nil, nil
	}

	for _, item := range index {
		entry := item.(ManifestEntry)
		if query.Path != "" && entry.Path == query.Path {
			return entry, nil
		}
		if query.Name != "" && entry.Name == query.Name {
			return entry, nil
		}
	}
	return nil, nil
}

// CheckContent checks whether a content object exists for the drive id.
// The extension is unknown, so this lists the id prefix instead of a HEAD.
func (a *DocumentAdapter) CheckContent(ctx context.Context, client storage.Client, bucket, prefix, key string) (bool, error) {
	if client == nil {
		return false, nil
	}

	objectCh := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix: prefix + key,
	})
	for obj := range objectCh {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list content objects: %w", obj.Err)
		}
		if got, ok := a.extractKey(obj.Key, prefix); ok && got == key {
			return true, nil
		}
	}
	return false, nil
}

// GetMetadata returns mime type and path for the result payload.
func (a *DocumentAdapter) GetMetadata(dbItem reconcile.DBItem, mItem reconcile.ManifestItem) map[string]string {
	meta := make(map[string]string)
	if it, ok := dbItem.(Item); ok {
		if it.MimeType != "" {
			meta["mime_type"] = it.MimeType
		}
		if it.Path != "" {
			meta["path"] = it.Path
		}
	}
	if entry, ok := mItem.(ManifestEntry); ok {
		if meta["mime_type"] == "" && entry.MimeType != "" {
			meta["mime_type"] = entry.MimeType
		}
		if meta["path"] == "" && entry.Path != "" {
			meta["path"] = entry.Path
		}
	}
	return meta
}
