package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arkenix/client-portal/internal/application/importer"
	"github.com/arkenix/client-portal/internal/bootstrap"
	"github.com/arkenix/client-portal/internal/infrastructure/file"
)

var (
	importClientID string
	importDryRun   bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a CSV or XLSX file and insert its valid rows for a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importClientID, "client-id", "", "client that will own the imported rows")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate only, insert nothing")
	_ = importCmd.MarkFlagRequired("client-id")
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	body, err := file.NewLocalSource(cfg.Import.BaseDir).Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer body.Close()

	dbs, err := bootstrap.OpenDatabases(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer dbs.Close()

	pipeline := bootstrap.NewImportPipeline(cfg.Import, dbs, nil, logger)

	preview, err := pipeline.Preview.Execute(ctx, importer.PreviewUploadInput{FileName: args[0], Body: body})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d rows, %d valid, %d with errors, %d empty\n",
		filepath.Base(args[0]), preview.TotalRows, preview.ValidCount, preview.ErrorCount, preview.EmptyRows)
	for _, e := range preview.Errors {
		if e.Row == 0 {
			fmt.Fprintf(out, "  header: %s\n", e.Message)
			continue
		}
		fmt.Fprintf(out, "  row %d %s: %s\n", e.Row, e.Field, e.Message)
	}

	if importDryRun || preview.ValidCount == 0 {
		return nil
	}

	result, err := pipeline.Commit.Execute(ctx, importer.CommitImportInput{
		ClientID: importClientID,
		Source:   filepath.Base(args[0]),
		Rows:     preview.ValidRows,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %s\n", result.Status, result.Message)
	if result.Status == importer.StatusError {
		return fmt.Errorf("import failed")
	}
	return nil
}
