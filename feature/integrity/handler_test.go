package integrity

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"doc-browser/core/storage/mocks"
	docreconcile "doc-browser/feature/documents/reconcile"
	"doc-browser/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func TestHandleStructureCheck(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "documents").Return(true, nil)
	client.On("ListObjects", mock.Anything, "documents", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "content/"
	})).Return(listing("content/doc1.pdf"))
	client.On("ListObjects", mock.Anything, "documents", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "manifest/"
	})).Return(listing())

	svc := NewService(client, "documents", zap.NewNop(), nil, "modern")
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status  string   `json:"status"`
		Missing []string `json:"missing"`
	}
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "checked", body.Status)
	assert.Equal(t, []string{"manifest"}, body.Missing)
}

func TestHandleManifestCheck(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "documents", docreconcile.ManifestObjectName, mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"files": [{"drive_id": "doc1", "name": "a.pdf"}]}`)), nil)

	svc := NewService(client, "documents", zap.NewNop(), nil, "modern")
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/manifest", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report checks.ManifestReport
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, 1, report.EntryCount)
}

func TestHandleSchemaCheck_NilDB(t *testing.T) {
	svc := NewService(new(mocks.Client), "documents", zap.NewNop(), nil, "modern")
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	f := NewFeature(new(mocks.Client), "documents", zap.NewNop(), nil, "modern")
	assert.Equal(t, "integrity", f.Name())
	assert.True(t, f.IsEnabled())

	app := fiber.New()
	assert.NoError(t, f.Load(app))
}
