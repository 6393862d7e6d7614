package treeview

// ResolveRoots returns the records forming the top-level scope.
//
// When one or more flagged root folders exist, exactly those are returned
// (sorted by name) and everything else is kept out of the top level, even
// folders with no resolvable parent; orphans must not pollute the root.
// Only when no record carries the root flag does the engine fall back to
// records with both linkage fields absent.
func ResolveRoots(ix *Index) []*FileRecord {
	if len(ix.rootAnchors) > 0 {
		out := make([]*FileRecord, len(ix.rootAnchors))
		copy(out, ix.rootAnchors)
		sortByName(out)
		return out
	}

	out := make([]*FileRecord, len(ix.unparented))
	copy(out, ix.unparented)
	sortRecords(out)
	return out
}

// ResolveChildren returns the ordered, deduplicated, filtered child
// records for one parent scope. depth is the nesting depth of the
// children being resolved: children of a root have depth 1.
//
// Candidates are the union of the path-based and id-based linkage
// schemes, deduplicated by id with the path scheme winning on conflict.
// The id scheme is only consulted when the parent itself resolves by
// path. Root-flagged folders never appear as children (they live at the
// top level only), type filters and the substring query never exclude
// folders, hide-processed exempts folders, and hide-subfolders collapses
// folders at depth >= 2 while surfacing their file descendants one level
// up.
//
// The function is pure: it never mutates the index, the records, or the
// view state, and unchanged input yields identical output.
func ResolveChildren(ix *Index, parent *FileRecord, depth int, view *ViewState) []*FileRecord {
	out := ix.visibleChildren(parent, depth, view, make(map[string]struct{}))
	sortRecords(out)
	return out
}

// HasChildren reports whether any record links to rec via either scheme.
// Active filters are deliberately ignored so renderers can keep the
// expand affordance visible when every child is filtered out; clearing
// the filters then reveals the hidden content.
func HasChildren(ix *Index, rec *FileRecord) bool {
	return len(ix.candidateChildren(rec)) > 0
}

// BuildTree runs one full reconciliation pass: index, root resolution,
// and recursive scope assembly into annotated TreeNodes. The returned
// graph is freshly built and owned by the caller; it shares only the
// FileRecord references with the input.
func BuildTree(records []*FileRecord, view *ViewState) []*TreeNode {
	ix := BuildIndex(records)
	roots := ResolveRoots(ix)

	guard := make(map[string]struct{})
	nodes := make([]*TreeNode, 0, len(roots))
	for _, rec := range roots {
		nodes = append(nodes, ix.buildNode(rec, 0, view, guard))
	}
	return nodes
}

// candidateChildren collects the raw (unfiltered) child set for a parent:
// path-linked records first, then id-linked ones, deduplicated by id so
// the path relationship stays authoritative when the schemes disagree.
// The parent itself and root-flagged folders are excluded.
func (ix *Index) candidateChildren(parent *FileRecord) []*FileRecord {
	if parent == nil || !ix.resolvableByPath(parent) {
		// A parent with no resolvable path matches nothing in either
		// scheme; its children are quietly invisible.
		return nil
	}

	seen := map[string]struct{}{parent.ID: {}}
	var out []*FileRecord

	appendNew := func(recs []*FileRecord) {
		for _, rec := range recs {
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			if rec.isRootAnchor() {
				// Root anchors stay at the top level even when their path
				// happens to sit under another folder.
				continue
			}
			out = append(out, rec)
		}
	}

	appendNew(ix.childrenByParentPath[normalizePath(parent.PathKey)])
	appendNew(ix.childrenByFolderID[parent.ID])
	return out
}

// visibleChildren applies the view filters to the candidate set. guard
// holds the ids of folders currently being collapsed, protecting the
// promotion recursion against reference cycles in the id linkage.
func (ix *Index) visibleChildren(parent *FileRecord, depth int, view *ViewState, guard map[string]struct{}) []*FileRecord {
	var out []*FileRecord
	for _, rec := range ix.candidateChildren(parent) {
		if _, cyclic := guard[rec.ID]; cyclic {
			continue
		}

		if rec.IsFolder() {
			if view != nil && view.HideSubfolders && depth >= 2 {
				// Collapse the folder and surface its file descendants in
				// this scope. Deeper folders collapse recursively, so the
				// whole hidden subtree's files bubble up here.
				guard[rec.ID] = struct{}{}
				out = append(out, ix.visibleChildren(rec, depth+1, view, guard)...)
				delete(guard, rec.ID)
				continue
			}
			out = append(out, rec)
			continue
		}

		if view != nil {
			if !view.allowsFile(rec) {
				continue
			}
			if view.HideProcessed && rec.Processing.Status == StatusCompleted {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// buildNode assembles one TreeNode and, for folders, its child subtree.
// guard holds the ancestor ids on the current branch so that linkage
// cycles terminate instead of recursing forever.
func (ix *Index) buildNode(rec *FileRecord, depth int, view *ViewState, guard map[string]struct{}) *TreeNode {
	node := &TreeNode{
		Record:      rec,
		Depth:       depth,
		IsExpanded:  view.IsExpanded(rec),
		HasChildren: HasChildren(ix, rec),
	}
	if !rec.IsFolder() {
		return node
	}

	guard[rec.ID] = struct{}{}
	for _, child := range ResolveChildren(ix, rec, depth+1, view) {
		if _, cyclic := guard[child.ID]; cyclic {
			continue
		}
		node.Children = append(node.Children, ix.buildNode(child, depth+1, view, guard))
	}
	delete(guard, rec.ID)
	return node
}
