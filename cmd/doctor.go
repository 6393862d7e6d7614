package cmd

import (
	"context"
	"fmt"

	"doc-browser/core/config"
	"doc-browser/core/database"
	"doc-browser/core/logger"
	"doc-browser/core/storage"
	"doc-browser/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// doctorCmd runs all integrity checks from the terminal.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the archive's health",
	Long: `Runs the integrity checks against the configured bucket and database:
bucket structure (content/, manifest/ prefixes), Drive manifest
well-formedness, and records-table schema for the configured profile.`,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	healthy := true

	// Structure
	if missing, err := checks.CheckStructure(ctx, client, cfg.Storage.Bucket); err != nil {
		l.Error("Structure check failed", zap.Error(err))
		healthy = false
	} else if len(missing) > 0 {
		l.Warn("Missing bucket prefixes", zap.Strings("missing", missing))
		healthy = false
	} else {
		l.Info("Bucket structure OK")
	}

	// Manifest
	if report, err := checks.CheckManifest(ctx, client, cfg.Storage.Bucket); err != nil {
		l.Error("Manifest check failed", zap.Error(err))
		healthy = false
	} else if report.Status != "ok" {
		l.Warn("Manifest issues detected",
			zap.Int("entries", report.EntryCount),
			zap.Strings("duplicate_ids", report.DuplicateIDs),
			zap.Strings("missing_fields", report.MissingFields))
		healthy = false
	} else {
		l.Info("Manifest OK", zap.Int("entries", report.EntryCount))
	}

	// Schema (needs the database)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Error("Database connection failed, skipping schema check", zap.Error(err))
		healthy = false
	} else if report, err := checks.CheckSchemaIntegrity(db, cfg.Server.Profile); err != nil {
		l.Error("Schema check failed", zap.Error(err))
		healthy = false
	} else if !report.Matched {
		for table, tbl := range report.Tables {
			if tbl.Status != "ok" {
				l.Warn("Table schema drifted",
					zap.String("table", table),
					zap.Strings("missing_columns", tbl.MissingColumns))
			}
		}
		for _, e := range report.Errors {
			l.Error("Schema inspection error", zap.String("error", e))
		}
		healthy = false
	} else {
		l.Info("Database schema OK", zap.String("profile", cfg.Server.Profile))
	}

	if !healthy {
		return fmt.Errorf("one or more checks failed")
	}

	l.Info("All checks passed")
	return nil
}
