// Package reconcile provides a generic system for reconciling the three
// stores the document archive spans: the synced records table (Postgres),
// the Drive manifest JSON the sync pipeline writes alongside its runs, and
// the mirrored content objects in the bucket.
//
// The three stores drift: the pipeline crashes mid-run, Drive files get
// deleted after their rows landed, content uploads fail silently. This
// package detects the drift and can plan (and optionally apply) repairs.
//
// # Architecture
//
// The package consists of three main components:
//
//  1. Engine: Core reconciliation logic that builds a union of drive ids
//     from all sources, detects presence/absence, and identifies field
//     mismatches between the records table and the manifest.
//
//  2. Adapter: Schema-specific implementations that define how to load and
//     index each store and how to compare fields. Adapters absorb the
//     differences between sync schema generations (modern vs legacy
//     records table).
//
//  3. Cache: TTL-based caching layer with stampede protection for fast
//     targeted reconciliation of single documents.
//
// # Performance
//
// A full pass over the archive stays in the low seconds through:
//   - Concurrent index building (3 goroutines)
//   - Single-pass content listing (no per-object HEAD calls)
//   - Batch DB queries (no row-by-row iteration)
//   - Union operations over in-memory maps
//
// # Usage Example
//
//	adapter := docreconcile.NewAdapter()
//	spec := &reconcile.Spec{
//	    Adapter:  adapter,
//	    CacheTTL: 5 * time.Minute,
//	}
//
//	// Full reconciliation
//	results, err := reconcile.ReconcileAll(ctx, spec, db, storageClient, bucket)
//
//	// Targeted reconciliation (uses cache)
//	result, err := reconcile.ReconcileOne(ctx, spec, db, storageClient, bucket, query)
package reconcile
