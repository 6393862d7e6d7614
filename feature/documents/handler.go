package documents

import (
	"errors"
	"strings"

	"doc-browser/core/logger"
	"doc-browser/core/treeview"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for documents.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the documents routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/documents")
	group.Get("/tree", h.HandleGetTree)
	group.Get("/:id", h.HandleGetDocument)
	group.Get("/:id/content", h.HandleGetContent)
	group.Get("/:id/status", h.HandleGetDocumentStatus)
}

// HandleGetTree returns the computed document tree.
// @Summary Get Document Tree
// @Description Compute the navigable folder tree from the synced records.
// @Tags documents
// @Accept json
// @Produce json
// @Param filter query string false "Comma-separated type filters (pdf,audio,video,document,...)"
// @Param q query string false "Case-insensitive substring filter on file names"
// @Param expanded query string false "Comma-separated expanded node keys"
// @Param hide_processed query bool false "Hide files whose processing completed"
// @Param hide_subfolders query bool false "Collapse folders nested two or more levels deep"
// @Success 200 {object} models.TreeResponse "Document Tree"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/tree [get]
func (h *Handler) HandleGetTree(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view := viewStateFromQuery(c)
	resp, err := h.service.Tree(c.Context(), view)
	if err != nil {
		l.Error("Tree computation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}

// HandleGetDocument returns the detail view for one document.
// @Summary Get Document
// @Description Get the detail view for a single document by drive id.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Drive ID"
// @Success 200 {object} models.DocumentDetail "Document Detail"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/{id} [get]
func (h *Handler) HandleGetDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	detail, err := h.service.Document(c.Context(), id)
	if err != nil {
		l.Error("Document lookup failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if detail == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "document not found",
		})
	}

	return c.JSON(detail)
}

// HandleGetContent streams the mirrored content object for a document.
// @Summary Get Document Content
// @Description Stream the mirrored content object for a document.
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Drive ID"
// @Success 200 {file} binary "Document Content"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/{id}/content [get]
func (h *Handler) HandleGetContent(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	reader, rec, err := h.service.OpenContent(c.Context(), id)
	if errors.Is(err, ErrFolderContent) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Content open failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "document not found",
		})
	}

	if rec.MimeType != "" {
		c.Set(fiber.HeaderContentType, rec.MimeType)
	}
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+rec.Name+`"`)
	return c.SendStream(reader)
}

// HandleGetDocumentStatus reconciles one document across all three stores.
// @Summary Get Document Status
// @Description Check one document against the records table, the Drive manifest, and the content mirror.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Drive ID"
// @Success 200 {object} reconcile.Result "Reconciliation Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/{id}/status [get]
func (h *Handler) HandleGetDocumentStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.CheckDocument(c.Context(), id)
	if err != nil {
		l.Error("Document status check failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// viewStateFromQuery builds the engine view state from the request query.
func viewStateFromQuery(c *fiber.Ctx) *treeview.ViewState {
	view := &treeview.ViewState{
		Filters:        FiltersByName(c.Query("filter")),
		Query:          c.Query("q"),
		HideProcessed:  c.QueryBool("hide_processed"),
		HideSubfolders: c.QueryBool("hide_subfolders"),
	}
	if expanded := c.Query("expanded"); expanded != "" {
		view.Expanded = make(map[string]struct{})
		for _, key := range strings.Split(expanded, ",") {
			if key = strings.TrimSpace(key); key != "" {
				view.Expanded[key] = struct{}{}
			}
		}
	}
	return view
}
