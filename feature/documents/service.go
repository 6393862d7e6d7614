package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"doc-browser/core/reconcile"
	"doc-browser/core/storage"
	"doc-browser/core/treeview"
	"doc-browser/feature/documents/models"
	docreconcile "doc-browser/feature/documents/reconcile"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DefaultCacheTTL is how long a loaded record snapshot stays fresh.
const DefaultCacheTTL = 60 * time.Second

// ContentPrefix is where the sync pipeline mirrors document content.
const ContentPrefix = "content/"

// ErrNoDatabase is returned when record operations run without a
// database connection. The server starts without one when the connect
// attempt fails, so handlers must surface this instead of panicking.
var ErrNoDatabase = errors.New("database is not connected")

// ErrFolderContent is returned when content is requested for a folder
// record, which has no mirrored object.
var ErrFolderContent = errors.New("folders have no content object")

// Service loads synced document records and derives trees from them.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	profile string

	cacheTTL time.Duration
	group    singleflight.Group
	mu       sync.RWMutex
	snap     *snapshot
}

// snapshot is one cached load of the full records table.
type snapshot struct {
	records []*treeview.FileRecord
	builtAt time.Time
}

// NewService creates a new documents service.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger, profile string) *Service {
	return &Service{
		db:       db,
		client:   client,
		bucket:   bucket,
		logger:   logger,
		profile:  profile,
		cacheTTL: DefaultCacheTTL,
	}
}

// Records returns the current record snapshot, loading it from the
// database when the cache is cold or expired. Concurrent cold loads are
// collapsed into one query via singleflight.
func (s *Service) Records(ctx context.Context) ([]*treeview.FileRecord, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap != nil && time.Since(snap.builtAt) < s.cacheTTL {
		return snap.records, nil
	}

	result, err, _ := s.group.Do("records", func() (any, error) {
		records, err := s.loadRecords(ctx)
		if err != nil {
			return nil, err
		}
		fresh := &snapshot{records: records, builtAt: time.Now()}
		s.mu.Lock()
		s.snap = fresh
		s.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*treeview.FileRecord), nil
}

// InvalidateSnapshot drops the cached records so the next read reloads.
// Called after reconcile mutations touch the records table.
func (s *Service) InvalidateSnapshot() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// Tree computes the navigable tree for the given view state.
func (s *Service) Tree(ctx context.Context, view *treeview.ViewState) (*models.TreeResponse, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	roots := treeview.BuildTree(records, view)
	return &models.TreeResponse{
		Roots:        roots,
		TotalRecords: len(records),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Document returns the detail view for a single record by drive id.
// Returns nil when no record matches.
func (s *Service) Document(ctx context.Context, id string) (*models.DocumentDetail, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			detail := models.DetailFromRecord(rec)
			return &detail, nil
		}
	}
	return nil, nil
}

// OpenContent opens the mirrored content object for the record. The mirror
// stores objects as content/<drive-id><ext>; the extension comes from the
// record name since the sync job keeps them aligned.
func (s *Service) OpenContent(ctx context.Context, id string) (io.ReadCloser, *treeview.FileRecord, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, nil, err
	}
	var rec *treeview.FileRecord
	for _, r := range records {
		if r.ID == id {
			rec = r
			break
		}
	}
	if rec == nil {
		return nil, nil, nil
	}
	if rec.IsFolder() {
		return nil, rec, fmt.Errorf("record %s: %w", id, ErrFolderContent)
	}

	objectName := ContentPrefix + rec.ID + path.Ext(rec.Name)
	reader, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, rec, fmt.Errorf("failed to open content %s: %w", objectName, err)
	}
	return reader, rec, nil
}

// CheckDocument runs a targeted three-source reconciliation for one
// document: records table, Drive manifest, and content mirror.
func (s *Service) CheckDocument(ctx context.Context, id string) (*reconcile.Result, error) {
	spec := &reconcile.Spec{
		Adapter:            docreconcile.NewAdapter(),
		CacheTTL:           0, // No caching for a one-off check
		ContentPrefix:      ContentPrefix,
		ManifestObjectName: docreconcile.ManifestObjectName,
		SchemaProfile:      s.profile,
	}
	return reconcile.ReconcileOne(ctx, spec, s.db, s.client, s.bucket, reconcile.Query{DriveID: id})
}

// loadRecords queries the profile-selected table plus the processing
// sidecar and maps everything into tree records. Soft-deleted rows are
// excluded at query time.
func (s *Service) loadRecords(ctx context.Context) ([]*treeview.FileRecord, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}

	var records []*treeview.FileRecord

	switch s.profile {
	case "legacy":
		var rows []models.LegacySource
		if err := s.db.WithContext(ctx).Where("deleted = ?", false).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load sources_google: %w", err)
		}
		records = make([]*treeview.FileRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, row.ToRecord())
		}
	default:
		var rows []models.ModernSource
		if err := s.db.WithContext(ctx).Where("is_deleted = ?", false).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load google_sources: %w", err)
		}
		records = make([]*treeview.FileRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, row.ToRecord())
		}
	}

	var procRows []models.ProcessingRow
	if err := s.db.WithContext(ctx).Find(&procRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load document_processing: %w", err)
	}
	if len(procRows) > 0 {
		statusByID := make(map[string]treeview.ProcessingStatus, len(procRows))
		for _, row := range procRows {
			statusByID[row.SourceDriveID] = row.ToStatus()
		}
		for _, rec := range records {
			if st, ok := statusByID[rec.ID]; ok {
				rec.Processing = st
			}
		}
	}

	s.logger.Debug("loaded document records",
		zap.String("profile", s.profile),
		zap.Int("count", len(records)))

	return records, nil
}

// builtinFilters maps the filter names accepted by the tree endpoint and
// the tree command to their MIME type sets. Exports from different sync
// vintages use several equivalent MIME strings per logical type.
var builtinFilters = map[string]treeview.TypeFilter{
	"pdf": {Name: "PDF", MimeTypes: []string{"application/pdf"}},
	"document": {Name: "Documents", MimeTypes: []string{
		"application/vnd.google-apps.document",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
	}},
	"spreadsheet": {Name: "Spreadsheets", MimeTypes: []string{
		"application/vnd.google-apps.spreadsheet",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
	}},
	"presentation": {Name: "Presentations", MimeTypes: []string{
		"application/vnd.google-apps.presentation",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"application/vnd.ms-powerpoint",
	}},
	"audio": {Name: "Audio", MimeTypes: []string{
		"audio/mpeg", "audio/mp4", "audio/x-m4a", "audio/wav",
	}},
	"video": {Name: "Video", MimeTypes: []string{
		"video/mp4", "video/quicktime", "video/x-msvideo",
	}},
	"image": {Name: "Images", MimeTypes: []string{
		"image/png", "image/jpeg", "image/gif", "image/webp",
	}},
	"text": {Name: "Text", MimeTypes: []string{
		"text/plain", "text/markdown", "text/csv",
	}},
}

// FiltersByName resolves comma-separated filter names into type filters.
// Unknown names are skipped.
func FiltersByName(names string) []treeview.TypeFilter {
	if names == "" {
		return nil
	}
	var filters []treeview.TypeFilter
	for _, name := range strings.Split(names, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if f, ok := builtinFilters[name]; ok {
			filters = append(filters, f)
		}
	}
	return filters
}
