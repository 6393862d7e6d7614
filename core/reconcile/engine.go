package reconcile

import (
	"context"
	"sort"

	"doc-browser/core/storage"

	"gorm.io/gorm"
)

// ReconcileAll performs a full reconciliation across all documents.
// It builds indices from all three stores, computes the union of drive ids,
// and returns a result for each id indicating presence and drift.
func ReconcileAll(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) ([]Result, error) {
	cache, err := BuildCache(ctx, spec, db, client, bucket)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(cache, spec.Adapter)

	// Sort results by drive id for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].DriveID < results[j].DriveID
	})

	return results, nil
}

// ReconcileOne performs a targeted reconciliation for a single document.
// It uses cached indices if available, or performs targeted queries.
func ReconcileOne(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string, query Query) (*Result, error) {
	// Try to use cache if enabled
	if spec.CacheTTL > 0 {
		cache, err := GetOrBuildCache(ctx, spec, db, client, bucket)
		if err != nil {
			return nil, err
		}

		key := findKeyFromQuery(query, cache)
		if key == "" {
			// Not found in any store
			return &Result{
				DriveID:         query.DriveID,
				DBPresent:       false,
				ManifestPresent: false,
				ContentPresent:  false,
				Mismatch:        []string{},
			}, nil
		}

		result := buildResult(key, cache, spec.Adapter)
		return &result, nil
	}

	// Fast path without cache: use targeted queries
	dbItem, err := spec.Adapter.QueryDB(ctx, db, spec.SchemaProfile, query)
	if err != nil {
		return nil, err
	}

	mItem, err := spec.Adapter.QueryManifest(ctx, client, bucket, spec.ManifestObjectName, query)
	if err != nil {
		return nil, err
	}

	// For the content check we need a key
	var key string
	switch {
	case dbItem != nil:
		key = spec.Adapter.ExtractDBKey(dbItem)
	case mItem != nil:
		key = spec.Adapter.ExtractManifestKey(mItem)
	default:
		key = query.DriveID
	}

	contentPresent := false
	if key != "" {
		contentPresent, err = spec.Adapter.CheckContent(ctx, client, bucket, spec.ContentPrefix, key)
		if err != nil {
			return nil, err
		}
	}

	result := Result{
		DriveID:         key,
		Name:            spec.Adapter.ResolveName(dbItem, mItem),
		Metadata:        spec.Adapter.GetMetadata(dbItem, mItem),
		DBPresent:       dbItem != nil,
		ManifestPresent: mItem != nil,
		ContentPresent:  contentPresent,
		Mismatch:        []string{},
	}

	if dbItem != nil && mItem != nil {
		result.Mismatch = spec.Adapter.CompareFields(dbItem, mItem)
	}

	return &result, nil
}

// resultsFromCache builds a result per drive id in the union of all stores.
func resultsFromCache(cache *Cache, adapter Adapter) []Result {
	union := make(map[string]struct{}, len(cache.DBIndex))
	for key := range cache.DBIndex {
		union[key] = struct{}{}
	}
	for key := range cache.ManifestIndex {
		union[key] = struct{}{}
	}
	for key := range cache.ContentSet {
		union[key] = struct{}{}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache, adapter))
	}
	return results
}

// buildResult creates a Result for a single drive id.
func buildResult(key string, cache *Cache, adapter Adapter) Result {
	dbItem, dbPresent := cache.DBIndex[key]
	mItem, manifestPresent := cache.ManifestIndex[key]
	_, contentPresent := cache.ContentSet[key]

	result := Result{
		DriveID:         key,
		DBPresent:       dbPresent,
		ManifestPresent: manifestPresent,
		ContentPresent:  contentPresent,
		Mismatch:        []string{},
	}

	if dbPresent || manifestPresent {
		var dbArg DBItem
		var mArg ManifestItem
		if dbPresent {
			dbArg = dbItem
		}
		if manifestPresent {
			mArg = mItem
		}
		result.Name = adapter.ResolveName(dbArg, mArg)
		result.Metadata = adapter.GetMetadata(dbArg, mArg)
	}

	if dbPresent && manifestPresent {
		result.Mismatch = adapter.CompareFields(dbItem, mItem)
	}

	return result
}

// findKeyFromQuery attempts to find the drive id from a query using cached
// indices. Only the direct id lookup is cheap; name and path lookups are
// adapter concerns handled on the uncached path.
func findKeyFromQuery(query Query, cache *Cache) string {
	if query.DriveID == "" {
		return ""
	}
	if _, exists := cache.DBIndex[query.DriveID]; exists {
		return query.DriveID
	}
	if _, exists := cache.ManifestIndex[query.DriveID]; exists {
		return query.DriveID
	}
	if _, exists := cache.ContentSet[query.DriveID]; exists {
		return query.DriveID
	}
	return ""
}
