package reconcile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"doc-browser/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mockAdapter is a simple in-memory test adapter.
type mockAdapter struct {
	name             string
	dbIndex          map[string]DBItem
	manifestIndex    map[string]ManifestItem
	contentSet       map[string]struct{}
	mismatches       map[string][]string
	dbLoadErr        error
	manifestLoadErr  error
	contentLoadErr   error
}

func (m *mockAdapter) Name() string {
	if m.name != "" {
		return m.name
	}
	return "mock"
}

func (m *mockAdapter) LoadDBIndex(ctx context.Context, db *gorm.DB, schemaProfile string) (map[string]DBItem, error) {
	if m.dbLoadErr != nil {
		return nil, m.dbLoadErr
	}
	return m.dbIndex, nil
}

func (m *mockAdapter) LoadManifestIndex(ctx context.Context, client storage.Client, bucket, objectName string) (map[string]ManifestItem, error) {
	if m.manifestLoadErr != nil {
		return nil, m.manifestLoadErr
	}
	return m.manifestIndex, nil
}

func (m *mockAdapter) LoadContentSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	if m.contentLoadErr != nil {
		return nil, m.contentLoadErr
	}
	return m.contentSet, nil
}

func (m *mockAdapter) ExtractDBKey(item DBItem) string             { return item.(string) }
func (m *mockAdapter) ExtractManifestKey(item ManifestItem) string { return item.(string) }

func (m *mockAdapter) ExtractContentKey(objectKey string) (string, bool) {
	return objectKey, true
}

func (m *mockAdapter) ResolveName(dbItem DBItem, mItem ManifestItem) string {
	if dbItem != nil {
		return dbItem.(string)
	}
	if mItem != nil {
		return mItem.(string)
	}
	return ""
}

func (m *mockAdapter) CompareFields(dbItem DBItem, mItem ManifestItem) []string {
	key := dbItem.(string)
	if drift, ok := m.mismatches[key]; ok {
		return drift
	}
	return []string{}
}

func (m *mockAdapter) QueryDB(ctx context.Context, db *gorm.DB, schemaProfile string, query Query) (DBItem, error) {
	if item, ok := m.dbIndex[query.DriveID]; ok {
		return item, nil
	}
	return nil, nil
}

func (m *mockAdapter) QueryManifest(ctx context.Context, client storage.Client, bucket, objectName string, query Query) (ManifestItem, error) {
	if item, ok := m.manifestIndex[query.DriveID]; ok {
		return item, nil
	}
	return nil, nil
}

func (m *mockAdapter) CheckContent(ctx context.Context, client storage.Client, bucket, prefix, key string) (bool, error) {
	_, ok := m.contentSet[key]
	return ok, nil
}

func (m *mockAdapter) GetMetadata(dbItem DBItem, mItem ManifestItem) map[string]string {
	return map[string]string{}
}

func TestReconcileAll(t *testing.T) {
	adapter := &mockAdapter{
		dbIndex: map[string]DBItem{
			"a": "a", // everywhere
			"b": "b", // db only
		},
		manifestIndex: map[string]ManifestItem{
			"a": "a",
			"c": "c", // manifest only
		},
		contentSet: map[string]struct{}{
			"a": {},
			"d": {}, // content only
		},
		mismatches: map[string][]string{
			"a": {"name: manifest=x db=y"},
		},
	}
	spec := &Spec{Adapter: adapter}

	results, err := ReconcileAll(context.Background(), spec, nil, nil, "documents")
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Sorted by drive id
	assert.Equal(t, "a", results[0].DriveID)
	assert.True(t, results[0].DBPresent)
	assert.True(t, results[0].ManifestPresent)
	assert.True(t, results[0].ContentPresent)
	assert.Equal(t, []string{"name: manifest=x db=y"}, results[0].Mismatch)

	assert.Equal(t, "b", results[1].DriveID)
	assert.True(t, results[1].DBPresent)
	assert.False(t, results[1].ManifestPresent)
	assert.False(t, results[1].ContentPresent)

	assert.Equal(t, "c", results[2].DriveID)
	assert.True(t, results[2].ManifestPresent)

	assert.Equal(t, "d", results[3].DriveID)
	assert.True(t, results[3].ContentPresent)
	assert.Empty(t, results[3].Name, "content-only orphans have no resolvable name")
}

func TestBuildCache_ErrorHandling(t *testing.T) {
	tests := []struct {
		name      string
		adapter   *mockAdapter
		expectErr string
	}{
		{
			name:      "DB load error",
			adapter:   &mockAdapter{dbLoadErr: fmt.Errorf("db error")},
			expectErr: "db error",
		},
		{
			name:      "Manifest load error",
			adapter:   &mockAdapter{manifestLoadErr: fmt.Errorf("manifest error")},
			expectErr: "manifest error",
		},
		{
			name:      "Content load error",
			adapter:   &mockAdapter{contentLoadErr: fmt.Errorf("content error")},
			expectErr: "content error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &Spec{Adapter: tt.adapter, CacheTTL: 5 * time.Minute}
			_, err := BuildCache(context.Background(), spec, nil, nil, "documents")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

func TestReconcileOne_Uncached(t *testing.T) {
	adapter := &mockAdapter{
		dbIndex:       map[string]DBItem{"doc-1": "doc-1"},
		manifestIndex: map[string]ManifestItem{"doc-1": "doc-1"},
		contentSet:    map[string]struct{}{"doc-1": {}},
	}
	spec := &Spec{Adapter: adapter} // CacheTTL zero: targeted queries

	result, err := ReconcileOne(context.Background(), spec, nil, nil, "documents", Query{DriveID: "doc-1"})
	require.NoError(t, err)
	assert.True(t, result.DBPresent)
	assert.True(t, result.ManifestPresent)
	assert.True(t, result.ContentPresent)
}

func TestReconcileOne_CachedMiss(t *testing.T) {
	adapter := &mockAdapter{
		name:          "cached-miss",
		dbIndex:       map[string]DBItem{},
		manifestIndex: map[string]ManifestItem{},
		contentSet:    map[string]struct{}{},
	}
	spec := &Spec{Adapter: adapter, CacheTTL: time.Minute}
	defer InvalidateCache(spec)

	result, err := ReconcileOne(context.Background(), spec, nil, nil, "documents", Query{DriveID: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, "ghost", result.DriveID)
	assert.False(t, result.DBPresent)
	assert.False(t, result.ManifestPresent)
	assert.False(t, result.ContentPresent)
}

func TestCache_IsExpired(t *testing.T) {
	c := &Cache{Built: time.Now(), TTL: time.Minute}
	assert.False(t, c.IsExpired())

	c.Built = time.Now().Add(-2 * time.Minute)
	assert.True(t, c.IsExpired())

	// Zero TTL means caching disabled: always expired
	c = &Cache{Built: time.Now(), TTL: 0}
	assert.True(t, c.IsExpired())
}
