package importer

import (
	"context"

	"go.uber.org/zap"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

type CommitImportInput struct {
	ClientID string
	Source   string
	Rows     []contact.NormalizedRow
}

type CommitImport interface {
	Execute(ctx context.Context, in CommitImportInput) (ImportResult, error)
}

type rowImporter interface {
	Import(ctx context.Context, clientID string, rows []contact.NormalizedRow) (ImportResult, error)
}

type runRecorder interface {
	Create(ctx context.Context, run contact.ImportRun) (string, error)
}

type commitImport struct {
	importer rowImporter
	runs     runRecorder
	logger   *zap.Logger
}

func NewCommitImport(importer rowImporter, runs runRecorder, logger *zap.Logger) CommitImport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &commitImport{importer: importer, runs: runs, logger: logger}
}

// Execute validates the rows again, runs the batched insert and records the outcome in
// the import log. Empty rows are dropped. Any invalid row rejects the whole commit with
// an *InvalidRowsError before anything is written. A failure to write the log entry is
// logged and does not change the import result.
func (uc *commitImport) Execute(ctx context.Context, in CommitImportInput) (ImportResult, error) {
	rows, err := validRows(in.Rows)
	if err != nil {
		return ImportResult{}, err
	}

	result, err := uc.importer.Import(ctx, in.ClientID, rows)
	if err != nil {
		return result, err
	}

	if uc.runs == nil {
		return result, nil
	}

	run := contact.ImportRun{
		ClientID:      in.ClientID,
		Source:        in.Source,
		Status:        string(result.Status),
		TotalRows:     int64(len(rows)),
		Inserted:      result.Inserted,
		FailedBatches: result.FailedBatches,
	}
	if result.Status != StatusSuccess {
		run.ErrorMessage = truncateReason(result.Message)
	}

	if _, logErr := uc.runs.Create(context.WithoutCancel(ctx), run); logErr != nil {
		uc.logger.Warn("record import run failed", zap.String("client_id", in.ClientID), zap.Error(logErr))
	}

	return result, nil
}

// validRows trims and checks a copy of every row against all allowed fields.
func validRows(in []contact.NormalizedRow) ([]contact.NormalizedRow, error) {
	rows := make([]contact.NormalizedRow, 0, len(in))
	var errs []contact.ValidationError

	for i := range in {
		row := in[i]
		res := ValidateRow(&row, i+1, contact.AllowedFields)
		switch {
		case res.Empty:
			continue
		case !res.IsValid:
			errs = append(errs, res.Errors...)
		default:
			rows = append(rows, row)
		}
	}

	if len(errs) > 0 {
		return nil, &InvalidRowsError{Errors: errs}
	}
	return rows, nil
}
