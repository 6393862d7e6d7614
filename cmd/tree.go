package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"doc-browser/core/config"
	"doc-browser/core/database"
	"doc-browser/core/logger"
	"doc-browser/core/storage"
	"doc-browser/core/treeview"
	"doc-browser/feature/documents"

	"github.com/spf13/cobra"
)

var (
	// Flags for the tree command
	treeFilter         string
	treeQuery          string
	treeHideProcessed  bool
	treeHideSubfolders bool
	treeJSON           bool
)

// treeCmd renders the document tree in the terminal.
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the document tree",
	Long: `Loads the synced records and prints the computed folder tree as an
ASCII outline (or JSON with --json). Honors the same view filters as the
HTTP tree endpoint.

Examples:
  # Full tree
  doc-browser tree

  # Only PDFs, hiding processed files
  doc-browser tree --filter pdf --hide-processed

  # Flatten deep nesting and search by name
  doc-browser tree --hide-subfolders -q report`,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVar(&treeFilter, "filter", "", "Comma-separated type filters (pdf,audio,video,document,...)")
	treeCmd.Flags().StringVarP(&treeQuery, "query", "q", "", "Case-insensitive substring filter on file names")
	treeCmd.Flags().BoolVar(&treeHideProcessed, "hide-processed", false, "Hide files whose processing completed")
	treeCmd.Flags().BoolVar(&treeHideSubfolders, "hide-subfolders", false, "Collapse folders nested two or more levels deep")
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output the tree as JSON instead of an outline")

	RootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := documents.NewService(db, client, cfg.Storage.Bucket, l, cfg.Server.Profile)
	records, err := svc.Records(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	// The terminal has no expand/collapse affordance, so every folder is
	// treated as expanded.
	view := &treeview.ViewState{
		Filters:        documents.FiltersByName(treeFilter),
		Query:          treeQuery,
		HideProcessed:  treeHideProcessed,
		HideSubfolders: treeHideSubfolders,
		Expanded:       expandAll(records),
	}

	roots := treeview.BuildTree(records, view)

	if treeJSON {
		data, err := json.MarshalIndent(roots, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tree: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(roots) == 0 {
		fmt.Println("(no documents)")
		return nil
	}
	for _, root := range roots {
		fmt.Println(nodeLabel(root))
		printBranch(os.Stdout, root.Children, "")
	}
	return nil
}

// expandAll builds an expansion set covering every folder record.
func expandAll(records []*treeview.FileRecord) map[string]struct{} {
	expanded := make(map[string]struct{})
	for _, rec := range records {
		if rec != nil && rec.IsFolder() {
			expanded[rec.ExpandKey()] = struct{}{}
		}
	}
	return expanded
}

// printBranch renders one level of the tree with box-drawing connectors.
func printBranch(w *os.File, nodes []*treeview.TreeNode, prefix string) {
	for i, node := range nodes {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(nodes)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, nodeLabel(node))
		printBranch(w, node.Children, childPrefix)
	}
}

// nodeLabel formats one node line: folders get a trailing slash, files get
// size and processing badges when known.
func nodeLabel(node *treeview.TreeNode) string {
	rec := node.Record
	if rec.IsFolder() {
		return rec.Name + "/"
	}

	label := rec.Name
	if size := rec.SizeHint(); size > 0 {
		label += fmt.Sprintf(" (%d bytes)", size)
	}
	if st := rec.Processing.Status; st != "" && st != treeview.StatusNone {
		label += fmt.Sprintf(" [%s]", st)
	}
	return label
}
