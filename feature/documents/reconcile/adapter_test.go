package reconcile

import (
	"context"
	"io"
	"strings"
	"testing"

	"doc-browser/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// objectChan builds a closed listing channel from keys.
func objectChan(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func TestDocumentAdapter_ExtractContentKey(t *testing.T) {
	adapter := NewAdapter()

	tests := []struct {
		name      string
		objectKey string
		want      string
		wantOK    bool
	}{
		{"pdf object", "content/1abcDEF_9.pdf", "1abcDEF_9", true},
		{"no extension", "content/1abcDEF_9", "1abcDEF_9", true},
		{"double extension", "content/1abc.tar.gz", "1abc", true},
		{"nested key ignored", "content/sub/1abc.pdf", "", false},
		{"wrong prefix", "manifest/drive_manifest.json", "", false},
		{"prefix only", "content/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := adapter.ExtractContentKey(tt.objectKey)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentAdapter_LoadDBIndex(t *testing.T) {
	adapter := NewAdapter()
	db, dbMock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"drive_id", "name", "mime_type", "path", "size"}).
		AddRow("doc1", "report.pdf", "application/pdf", "Archive/report.pdf", int64(1024)).
		AddRow("doc2", "notes.txt", "text/plain", nil, nil).
		AddRow("", "ghost", "text/plain", nil, nil)

	dbMock.ExpectQuery("SELECT drive_id, name, mime_type, path, size FROM google_sources").
		WillReturnRows(rows)

	index, err := adapter.LoadDBIndex(context.Background(), db, "modern")
	assert.NoError(t, err)
	assert.Len(t, index, 2, "row without drive id is skipped")

	item := index["doc1"].(Item)
	assert.Equal(t, "report.pdf", item.Name)
	assert.Equal(t, "Archive/report.pdf", item.Path)
	assert.Equal(t, int64(1024), item.Size)

	item = index["doc2"].(Item)
	assert.Empty(t, item.Path, "NULL path degrades to empty")
	assert.Zero(t, item.Size)
}

func TestDocumentAdapter_LoadDBIndex_LegacyTable(t *testing.T) {
	adapter := NewAdapter()
	db, dbMock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"drive_id", "name", "mime_type", "path", "size_bytes"}).
		AddRow("old1", "legacy.doc", "application/msword", nil, int64(99))

	dbMock.ExpectQuery("SELECT drive_id, name, mime_type, path, size_bytes FROM sources_google").
		WillReturnRows(rows)

	index, err := adapter.LoadDBIndex(context.Background(), db, "legacy")
	assert.NoError(t, err)
	assert.Len(t, index, 1)
}

func TestDocumentAdapter_LoadDBIndex_NilDB(t *testing.T) {
	adapter := NewAdapter()
	index, err := adapter.LoadDBIndex(context.Background(), nil, "modern")
	assert.NoError(t, err)
	assert.Empty(t, index)
}

func TestDocumentAdapter_LoadManifestIndex(t *testing.T) {
	adapter := NewAdapter()
	client := new(mocks.Client)

	manifest := `{
		"generated_at": "2024-06-01T00:00:00Z",
		"files": [
			{"drive_id": "doc1", "name": "report.pdf", "mime_type": "application/pdf", "path": "Archive/report.pdf", "size": 1024},
			{"drive_id": "doc2", "name": "notes.txt", "mime_type": "text/plain"},
			{"name": "no-id entry is skipped"}
		]
	}`
	client.On("GetObject", mock.Anything, "documents", "manifest/drive_manifest.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(manifest)), nil)

	index, err := adapter.LoadManifestIndex(context.Background(), client, "documents", "manifest/drive_manifest.json")
	assert.NoError(t, err)
	assert.Len(t, index, 2)

	entry := index["doc1"].(ManifestEntry)
	assert.Equal(t, "report.pdf", entry.Name)
	assert.Equal(t, int64(1024), entry.Size)
}

func TestDocumentAdapter_LoadManifestIndex_Malformed(t *testing.T) {
	adapter := NewAdapter()
	client := new(mocks.Client)

	client.On("GetObject", mock.Anything, "documents", "manifest/drive_manifest.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader("{not json")), nil)

	_, err := adapter.LoadManifestIndex(context.Background(), client, "documents", "manifest/drive_manifest.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestDocumentAdapter_LoadContentSet(t *testing.T) {
	adapter := NewAdapter()
	client := new(mocks.Client)

	client.On("ListObjects", mock.Anything, "documents", mock.Anything).
		Return(objectChan(
			"content/doc1.pdf",
			"content/doc2.txt",
			"content/nested/skip.pdf",
		))

	set, err := adapter.LoadContentSet(context.Background(), client, "documents", "content/")
	assert.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "doc1")
	assert.Contains(t, set, "doc2")
}

func TestDocumentAdapter_CompareFields(t *testing.T) {
	adapter := NewAdapter()

	dbItem := Item{DriveID: "doc1", Name: "old.pdf", MimeType: "application/pdf", Path: "Archive/old.pdf", Size: 100}
	entry := ManifestEntry{DriveID: "doc1", Name: "new.pdf", MimeType: "application/pdf", Path: "Archive/new.pdf", Size: 200}

	drift := adapter.CompareFields(dbItem, entry)
	assert.Len(t, drift, 3)
	assert.Contains(t, drift[0], "name:")
	assert.Contains(t, drift[1], "path:")
	assert.Contains(t, drift[2], "size:")

	// Identical items report no drift.
	same := ManifestEntry{DriveID: "doc1", Name: "old.pdf", MimeType: "application/pdf", Path: "Archive/old.pdf", Size: 100}
	assert.Empty(t, adapter.CompareFields(dbItem, same))

	// Manifest entries without path or size don't flag those fields.
	sparse := ManifestEntry{DriveID: "doc1", Name: "old.pdf", MimeType: "application/pdf"}
	assert.Empty(t, adapter.CompareFields(dbItem, sparse))
}

func TestDocumentAdapter_ResolveName(t *testing.T) {
	adapter := NewAdapter()

	assert.Equal(t, "db.pdf", adapter.ResolveName(Item{Name: "db.pdf"}, ManifestEntry{Name: "m.pdf"}))
	assert.Equal(t, "m.pdf", adapter.ResolveName(Item{}, ManifestEntry{Name: "m.pdf"}))
	assert.Equal(t, "m.pdf", adapter.ResolveName(nil, ManifestEntry{Name: "m.pdf"}))
}

func TestDocumentAdapter_CheckContent(t *testing.T) {
	adapter := NewAdapter()
	client := new(mocks.Client)

	// "doc1" prefix also matches "doc10"; only the exact id counts.
	client.On("ListObjects", mock.Anything, "documents", mock.Anything).
		Return(objectChan("content/doc10.pdf"))

	found, err := adapter.CheckContent(context.Background(), client, "documents", "content/", "doc1")
	assert.NoError(t, err)
	assert.False(t, found)

	client2 := new(mocks.Client)
	client2.On("ListObjects", mock.Anything, "documents", mock.Anything).
		Return(objectChan("content/doc1.pdf"))

	found, err = adapter.CheckContent(context.Background(), client2, "documents", "content/", "doc1")
	assert.NoError(t, err)
	assert.True(t, found)
}

func TestDocumentAdapter_GetMetadata(t *testing.T) {
	adapter := NewAdapter()

	meta := adapter.GetMetadata(
		Item{MimeType: "application/pdf", Path: "Archive/a.pdf"},
		ManifestEntry{MimeType: "text/plain", Path: "Other/a.pdf"},
	)
	assert.Equal(t, "application/pdf", meta["mime_type"], "DB wins when present")
	assert.Equal(t, "Archive/a.pdf", meta["path"])

	meta = adapter.GetMetadata(nil, ManifestEntry{MimeType: "text/plain", Path: "Other/a.pdf"})
	assert.Equal(t, "text/plain", meta["mime_type"], "manifest fills the gaps")
}
