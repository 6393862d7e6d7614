package reconcile

import (
	"context"
	"fmt"

	"doc-browser/core/storage"

	"gorm.io/gorm"
)

// PlanRepairs performs reconciliation and returns a plan with results and
// repair actions. It does NOT execute actions; use ApplyPlan for that.
func PlanRepairs(
	ctx context.Context,
	spec *Spec,
	db *gorm.DB,
	client storage.Client,
	bucket string,
	opts Options,
) (*Plan, error) {
	cache, err := GetOrBuildCache(ctx, spec, db, client, bucket)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(cache, spec.Adapter)
	summary, actions := buildPlan(results, cache, opts)

	return &Plan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a reconcile plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(
	ctx context.Context,
	spec *Spec,
	plan *Plan,
	opts Options,
) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}

	// Group actions by type for efficient execution
	var (
		deleteDBKeys      []string
		deleteContentKeys []string
		syncActions       []Action
	)
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteDB:
			deleteDBKeys = append(deleteDBKeys, action.DriveID)
		case ActionDeleteContent:
			deleteContentKeys = append(deleteContentKeys, action.DriveID)
		case ActionSyncDB:
			syncActions = append(syncActions, action)
		}
	}

	// DB deletions, batched when the adapter supports it
	if len(deleteDBKeys) > 0 {
		type dbBatchDeleter interface {
			DeleteDBBatch(ctx context.Context, keys []string) error
		}
		if batch, ok := mutator.(dbBatchDeleter); ok {
			if err := batch.DeleteDBBatch(ctx, deleteDBKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete rows: %w", err)
			}
			executed += len(deleteDBKeys)
		} else {
			for _, key := range deleteDBKeys {
				if err := mutator.DeleteDB(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete row %s: %w", key, err)
				}
				executed++
			}
		}
	}

	// Content deletions, batched when the adapter supports it
	if len(deleteContentKeys) > 0 {
		type contentBatchDeleter interface {
			DeleteContentBatch(ctx context.Context, keys []string) error
		}
		if batch, ok := mutator.(contentBatchDeleter); ok {
			if err := batch.DeleteContentBatch(ctx, deleteContentKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete content: %w", err)
			}
			executed += len(deleteContentKeys)
		} else {
			for _, key := range deleteContentKeys {
				if err := mutator.DeleteContent(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete content %s: %w", key, err)
				}
				executed++
			}
		}
	}

	// Field syncs
	for _, action := range syncActions {
		if err := mutator.SyncDBFromManifest(ctx, action.DriveID, action.ManifestItem); err != nil {
			return executed, fmt.Errorf("failed to sync %s: %w", action.DriveID, err)
		}
		executed++
	}

	return executed, nil
}

// buildPlan generates a summary and action plan from reconciliation results.
//
// Purge policy: a row is stale when the manifest no longer lists the
// document (Drive is the source of truth for existence); a content object
// is an orphan when neither the manifest nor the records table knows it.
// A missing content object alone is never grounds for deletion, since the
// mirror job may simply not have caught up.
func buildPlan(results []Result, cache *Cache, opts Options) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		// Incomplete counts use OR semantics: a document known to any other
		// store but absent here counts as missing here.
		if (result.DBPresent || result.ManifestPresent) && !result.ContentPresent {
			summary.MissingContent++
		}
		if (result.DBPresent || result.ContentPresent) && !result.ManifestPresent {
			summary.MissingManifest++
		}
		if (result.ManifestPresent || result.ContentPresent) && !result.DBPresent {
			summary.MissingDB++
		}
		if len(result.Mismatch) > 0 {
			summary.Mismatches++
		}

		if opts.DoPurge {
			staleRow := result.DBPresent && !result.ManifestPresent
			orphanContent := result.ContentPresent && !result.DBPresent && !result.ManifestPresent

			if staleRow {
				actions = append(actions, Action{
					Type:    ActionDeleteDB,
					DriveID: result.DriveID,
					Reason:  "row no longer present in Drive manifest",
				})
				summary.PurgeActions++
			}
			if orphanContent {
				actions = append(actions, Action{
					Type:    ActionDeleteContent,
					DriveID: result.DriveID,
					Reason:  "content object unknown to manifest and records table",
				})
				summary.PurgeActions++
			}
			if staleRow || orphanContent {
				// Purge takes precedence: skip sync for this document
				continue
			}
		}

		if opts.DoSync && len(result.Mismatch) > 0 && result.DBPresent && result.ManifestPresent {
			actions = append(actions, Action{
				Type:         ActionSyncDB,
				DriveID:      result.DriveID,
				Reason:       fmt.Sprintf("drift: %v", result.Mismatch),
				ManifestItem: cache.ManifestIndex[result.DriveID],
			})
			summary.SyncActions++
		}
	}

	return summary, actions
}
