// Package documents implements the document browsing feature.
//
// It loads the flat, denormalized records the Drive sync pipeline lands in
// Postgres, hands them to the core/treeview engine, and exposes the derived
// tree over HTTP. The records table comes in two generations selected by the
// schema profile: "modern" (google_sources) and "legacy" (sources_google);
// both map into the same normalized treeview.FileRecord.
//
// # Snapshot Cache
//
// Record loads are cached for a short TTL with singleflight stampede
// protection, so concurrent tree requests share one database pass. The
// reconcile command invalidates the snapshot after mutating the table.
//
// # HTTP Endpoints
//
//   - GET /documents/tree        : Compute the tree (filters, query, expansion via query params).
//   - GET /documents/:id         : Detail view for one record.
//   - GET /documents/:id/content : Stream the mirrored content object.
//   - GET /documents/:id/status  : Reconcile one record across table, manifest, and mirror.
package documents
