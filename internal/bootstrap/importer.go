package bootstrap

import (
	"go.uber.org/zap"

	"github.com/arkenix/client-portal/internal/application/importer"
	"github.com/arkenix/client-portal/internal/config"
	"github.com/arkenix/client-portal/internal/domain/contact"
	"github.com/arkenix/client-portal/internal/infrastructure/file"
	"github.com/arkenix/client-portal/internal/infrastructure/repository"
)

// ImportPipeline is the upload path shared by the HTTP server and the import command.
type ImportPipeline struct {
	Preview importer.PreviewUpload
	Commit  importer.CommitImport
	History importer.ListImportRuns
}

func NewImportPipeline(cfg config.ImportConfig, dbs *Databases, notifier contact.ChangeNotifier, logger *zap.Logger) ImportPipeline {
	runs := repository.NewImportRunRepository(dbs.Gorm)
	batcher := importer.NewBatcher(
		repository.NewRecordBulkRepository(dbs.Pool),
		notifier,
		logger.Named("importer"),
		importer.BatcherConfig{BatchSize: cfg.BatchSize, Concurrency: cfg.Concurrency},
	)

	return ImportPipeline{
		Preview: importer.NewPreviewUpload(file.NewSpreadsheetParser(), importer.PipelineConfig{MaxRows: cfg.MaxRows}),
		Commit:  importer.NewCommitImport(batcher, runs, logger.Named("importer")),
		History: importer.NewListImportRuns(runs),
	}
}
