// Package treeview reconstructs a navigable folder tree from the flat,
// denormalized file records produced by the Drive sync pipeline.
//
// Synced records carry two independent parent-linkage schemes: a textual
// path (materialized by the sync job) and a foreign key to the owning
// folder record. The two schemes are frequently inconsistent with each
// other: stale paths, missing folder ids, folders that exist in one
// scheme only. That inconsistency is an accepted property of the upstream
// source, not an error condition, and the engine reconciles it instead of
// reporting it.
//
// # Architecture
//
// The package has three layers:
//
//  1. Index: one O(n) pass over the flat record list that builds the
//     by-path and by-folder-id child indices plus the root-anchor set.
//     All per-node resolution afterwards is map lookups.
//
//  2. Engine: pure resolution functions (ResolveRoots, ResolveChildren,
//     HasChildren) that join the two linkage schemes with a documented
//     precedence rule (path wins on conflict), apply view filters, and
//     impose a stable total order (folders first, date-prefixed folders
//     newest first, then case-insensitive lexicographic).
//
//  3. Assembly: BuildTree wraps resolution into a TreeNode graph with
//     depth and expansion annotation. Node graphs are rebuilt wholesale
//     on every pass; there is no incremental patching and no state kept
//     between passes.
//
// # Failure Policy
//
// The engine never returns errors. Absent or malformed linkage fields
// degrade to "no match": a record unreachable from any root is simply
// invisible. The tool is best-effort introspection over an external,
// eventually-consistent sync source, not a system of record.
//
// # Usage Example
//
//	view := &treeview.ViewState{HideProcessed: true}
//	roots := treeview.BuildTree(records, view)
//	for _, node := range roots {
//	    render(node)
//	}
package treeview
