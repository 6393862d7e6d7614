package documents

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"doc-browser/feature/documents/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleGetTree(t *testing.T) {
	svc, dbMock, _ := newMockService(t, "modern")

	rows := modernRows().
		AddRow("u1", "root1", "Archive", folderMime, "Archive", "", true, nil, nil, false).
		AddRow("u2", "doc1", "report.pdf", "application/pdf", "Archive/report.pdf", "root1", false, nil, nil, false).
		AddRow("u3", "doc2", "song.mp3", "audio/mpeg", "Archive/song.mp3", "root1", false, nil, nil, false)
	expectModernLoad(dbMock, rows, processingRows())

	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/documents/tree?expanded=Archive&filter=pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tree models.TreeResponse
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &tree))

	assert.Equal(t, 3, tree.TotalRecords)
	require.Len(t, tree.Roots, 1)
	require.Len(t, tree.Roots[0].Children, 1, "audio file filtered out")
	assert.Equal(t, "report.pdf", tree.Roots[0].Children[0].Record.Name)
}

func TestHandleGetDocument(t *testing.T) {
	svc, dbMock, _ := newMockService(t, "modern")

	rows := modernRows().
		AddRow("u2", "doc1", "report.pdf", "application/pdf", "Archive/report.pdf", "root1", false, nil, nil, false)
	expectModernLoad(dbMock, rows, processingRows())

	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/documents/doc1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail models.DocumentDetail
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "report.pdf", detail.Name)

	resp, err = app.Test(httptest.NewRequest("GET", "/documents/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleGetContent(t *testing.T) {
	svc, dbMock, client := newMockService(t, "modern")

	rows := modernRows().
		AddRow("u2", "doc1", "report.pdf", "application/pdf", "Archive/report.pdf", "root1", false, nil, nil, false)
	expectModernLoad(dbMock, rows, processingRows())

	client.On("GetObject", mock.Anything, "documents", "content/doc1.pdf", mock.Anything).
		Return(io.NopCloser(strings.NewReader("%PDF-1.4")), nil)

	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/documents/doc1/content", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestHandleGetContent_Folder(t *testing.T) {
	svc, dbMock, _ := newMockService(t, "modern")

	rows := modernRows().
		AddRow("u1", "root1", "Archive", folderMime, "Archive", "", true, nil, nil, false)
	expectModernLoad(dbMock, rows, processingRows())

	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)

	// Asking for a folder's content is a client mistake, not a server fault.
	resp, err := app.Test(httptest.NewRequest("GET", "/documents/root1/content", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestViewStateFromQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/parse", func(c *fiber.Ctx) error {
		view := viewStateFromQuery(c)
		assert.Len(t, view.Filters, 1)
		assert.Equal(t, "draft", view.Query)
		assert.True(t, view.HideProcessed)
		assert.True(t, view.HideSubfolders)
		assert.Contains(t, view.Expanded, "Archive")
		assert.Contains(t, view.Expanded, "Archive/2024")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET",
		"/parse?filter=pdf&q=draft&hide_processed=true&hide_subfolders=true&expanded=Archive,Archive/2024", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
