package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"doc-browser/core/config"
	"doc-browser/core/database"
	"doc-browser/core/logger"
	"doc-browser/core/reconcile"
	"doc-browser/core/storage"
	"doc-browser/feature/documents"
	docReconcile "doc-browser/feature/documents/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile documents command
	purgeDocuments  bool
	syncDocuments   bool
	dryRunDocuments bool
	yesConfirm      bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile documents between the records table, manifest, and content mirror",
	Long: `Reconcile documents to detect stale rows, orphaned content, and field drift.
Supports optional purge (delete stale/orphaned) and sync (repair drift) operations.`,
}

// documentsReconcileCmd performs document reconciliation with optional purge/sync.
var documentsReconcileCmd = &cobra.Command{
	Use:   "documents",
	Short: "Reconcile documents (report + optionally purge/sync)",
	Long: `Reconcile documents across the records table, the Drive manifest, and the
content mirror.

Reports rows the manifest no longer lists, content objects nothing knows
about, and field drift between the records table and the manifest.
Optionally purge (delete) stale rows and orphans, or sync (repair) drift.

Examples:
  # Report only
  reconcile documents

  # Purge stale rows and orphaned content (with interactive confirmation)
  reconcile documents --purge

  # Purge with auto-confirm (non-interactive)
  reconcile documents --purge --yes

  # Sync drifted fields with auto-confirm
  reconcile documents --sync --yes

  # Both purge and sync
  reconcile documents --purge --sync --yes`,
	RunE: runDocumentsReconcile,
}

func init() {
	reconcileCmd.AddCommand(documentsReconcileCmd)

	documentsReconcileCmd.Flags().BoolVar(&purgeDocuments, "purge", false, "Enable purge (delete stale rows and orphaned content)")
	documentsReconcileCmd.Flags().BoolVar(&syncDocuments, "sync", false, "Enable sync (update DB fields from the manifest)")
	documentsReconcileCmd.Flags().BoolVar(&dryRunDocuments, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	documentsReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runDocumentsReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting document reconciliation", zap.String("profile", cfg.Server.Profile))

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connect to storage
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	// Create document adapter
	adapter := docReconcile.NewAdapter()

	// Set mutation context for purge/sync
	if purgeDocuments || syncDocuments {
		adapter.SetMutationContext(
			db,
			client,
			cfg.Storage.Bucket,
			documents.ContentPrefix,
			cfg.Server.Profile,
		)
	}

	// Build spec
	spec := &reconcile.Spec{
		Adapter:            adapter,
		CacheTTL:           0, // No caching to prevent stale data after DB changes
		ContentPrefix:      documents.ContentPrefix,
		ManifestObjectName: docReconcile.ManifestObjectName,
		SchemaProfile:      cfg.Server.Profile,
	}

	// Build reconcile options
	opts := reconcile.Options{
		DoPurge:   purgeDocuments,
		DoSync:    syncDocuments,
		DryRun:    dryRunDocuments,
		Confirmed: false, // Will be set after confirmation prompt
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...")
	plan, err := reconcile.PlanRepairs(ctx, spec, db, client, cfg.Storage.Bucket, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	// Step 2: Print report
	printReconcileReport(l, plan)

	// Step 3: Check if actions are requested
	if !purgeDocuments && !syncDocuments {
		l.Info("No actions requested. Use --purge to delete stale items or --sync to repair drift.")
		return nil
	}

	// Step 4: Apply (if confirmed)
	if !dryRunDocuments {
		if len(plan.Actions) == 0 {
			l.Info("No actions required based on current flags.")
			return nil
		}

		if !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		opts.Confirmed = true

		l.Info("Applying actions...")
		executed, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
		if err != nil {
			return fmt.Errorf("failed to apply plan: %w", err)
		}

		l.Info("Successfully executed actions", zap.Int("count", executed))
	} else {
		l.Info("Dry-run mode: No changes were made.")
	}

	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_manifest", s.MissingManifest),
		zap.Int("missing_content", s.MissingContent),
		zap.Int("missing_db", s.MissingDB),
		zap.Int("mismatches", s.Mismatches),
	)

	if len(plan.Actions) > 0 {
		l.Info("Planned actions",
			zap.Int("purge_actions", s.PurgeActions),
			zap.Int("sync_actions", s.SyncActions),
			zap.Int("total_actions", len(plan.Actions)),
		)

		// Show sample of actions (max 5 for logger)
		maxShow := 5
		if len(plan.Actions) < maxShow {
			maxShow = len(plan.Actions)
		}
		for i := 0; i < maxShow; i++ {
			action := plan.Actions[i]
			l.Info("Sample action",
				zap.String("type", string(action.Type)),
				zap.String("drive_id", action.DriveID),
				zap.String("reason", action.Reason),
			)
		}
		if len(plan.Actions) > maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
		}
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
