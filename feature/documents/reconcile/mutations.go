package reconcile

// Mutation methods implementing the reconcile.Mutator interface.

import (
	"context"
	"fmt"

	"doc-browser/core/reconcile"
	"doc-browser/core/storage"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// SetMutationContext provides the connections mutations need. Must be
// called before the adapter is used to apply a plan.
func (a *DocumentAdapter) SetMutationContext(db *gorm.DB, client storage.Client, bucket, contentPrefix, schemaProfile string) {
	a.db = db
	a.client = client
	a.bucket = bucket
	a.contentPrefix = contentPrefix
	a.schemaProfile = schemaProfile
}

// DeleteDB removes the stale row for the given drive id.
func (a *DocumentAdapter) DeleteDB(ctx context.Context, key string) error {
	if a.db == nil {
		return fmt.Errorf("mutation context not set, call SetMutationContext first")
	}

	profile := GetProfileByName(a.schemaProfile)

	result := a.db.WithContext(ctx).
		Table(profile.TableName).
		Where(profile.Columns[ColDriveID]+" = ?", key).
		Delete(nil)
	if result.Error != nil {
		return fmt.Errorf("failed to delete row %s: %w", key, result.Error)
	}

	return nil
}

// DeleteContent removes the orphaned content object for the given drive id.
// The extension is unknown, so the id prefix is listed first.
func (a *DocumentAdapter) DeleteContent(ctx context.Context, key string) error {
	if a.client == nil {
		return fmt.Errorf("mutation context not set, call SetMutationContext first")
	}

	objectCh := a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix: a.contentPrefix + key,
	})
	for obj := range objectCh {
		if obj.Err != nil {
			return fmt.Errorf("failed to list content for %s: %w", key, obj.Err)
		}
		got, ok := a.extractKey(obj.Key, a.contentPrefix)
		if !ok || got != key {
			continue
		}
		if err := a.client.RemoveObject(ctx, a.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", obj.Key, err)
		}
	}

	return nil
}

// SyncDBFromManifest updates the row's drifted fields from the manifest
// entry. The manifest is the source of truth for name, mime type, path,
// and size; the row keeps everything else.
func (a *DocumentAdapter) SyncDBFromManifest(ctx context.Context, key string, mItem reconcile.ManifestItem) error {
	if a.db == nil {
		return fmt.Errorf("mutation context not set, call SetMutationContext first")
	}

	entry, ok := mItem.(ManifestEntry)
	if !ok {
		return fmt.Errorf("unexpected manifest item type for %s", key)
	}

	profile := GetProfileByName(a.schemaProfile)
	cols := profile.Columns

	updates := map[string]any{
		cols[ColName]:     entry.Name,
		cols[ColMimeType]: entry.MimeType,
	}
	if entry.Path != "" {
		updates[cols[ColPath]] = entry.Path
	}
	if entry.Size > 0 {
		updates[cols[ColSize]] = entry.Size
	}

	result := a.db.WithContext(ctx).
		Table(profile.TableName).
		Where(cols[ColDriveID]+" = ?", key).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to sync row %s: %w", key, result.Error)
	}

	return nil
}
