package treeview

import "strings"

// Index holds the per-pass lookup structures for both linkage schemes.
// It is built once per reconciliation pass with BuildIndex and is
// read-only afterwards, so concurrent resolution calls against the same
// Index are safe.
type Index struct {
	// byPath maps a normalized path to the record that owns it. When two
	// records claim the same path the first one in input order wins.
	byPath map[string]*FileRecord

	// childrenByParentPath maps a normalized parent path to the records
	// whose own path sits directly under it (path-based linkage).
	childrenByParentPath map[string][]*FileRecord

	// childrenByFolderID maps a folder record id to the records whose
	// FolderRefID points at it (id-based linkage).
	childrenByFolderID map[string][]*FileRecord

	// rootAnchors are the flagged top-level folders, in input order.
	rootAnchors []*FileRecord

	// unparented are records with both linkage fields absent, in input
	// order. They form the top level only when no root anchors exist.
	unparented []*FileRecord
}

// BuildIndex performs the single O(n) pass over the flat record list.
// Duplicate ids keep the first occurrence; nil records are skipped.
func BuildIndex(records []*FileRecord) *Index {
	ix := &Index{
		byPath:               make(map[string]*FileRecord, len(records)),
		childrenByParentPath: make(map[string][]*FileRecord),
		childrenByFolderID:   make(map[string][]*FileRecord),
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec == nil || rec.ID == "" {
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}

		path := normalizePath(rec.PathKey)
		if path != "" {
			if _, taken := ix.byPath[path]; !taken {
				ix.byPath[path] = rec
			}
			if parent := parentPath(path); parent != "" {
				ix.childrenByParentPath[parent] = append(ix.childrenByParentPath[parent], rec)
			}
		}
		if rec.FolderRefID != "" && rec.FolderRefID != rec.ID {
			ix.childrenByFolderID[rec.FolderRefID] = append(ix.childrenByFolderID[rec.FolderRefID], rec)
		}
		if rec.isRootAnchor() {
			ix.rootAnchors = append(ix.rootAnchors, rec)
		}
		if path == "" && rec.FolderRefID == "" {
			ix.unparented = append(ix.unparented, rec)
		}
	}

	return ix
}

// resolvableByPath reports whether the record can act as a parent in the
// path scheme: it has a path and the path index resolves to it (or at
// least to some record, when another record claimed the path first).
func (ix *Index) resolvableByPath(rec *FileRecord) bool {
	if rec == nil || rec.PathKey == "" {
		return false
	}
	_, ok := ix.byPath[normalizePath(rec.PathKey)]
	return ok
}

// normalizePath strips redundant slashes so that paths synthesized by
// different sync vintages ("/Archive/x" vs "Archive/x/") compare equal.
func normalizePath(p string) string {
	return strings.Trim(p, "/")
}

// parentPath returns the directory prefix of a normalized path, or ""
// for single-segment paths.
func parentPath(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx]
}
