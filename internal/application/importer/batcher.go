package importer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

const DefaultBatchSize = 500

type ImportStatus string

const (
	StatusSuccess        ImportStatus = "success"
	StatusPartialSuccess ImportStatus = "partial_success"
	StatusError          ImportStatus = "error"
)

// ImportResult reports batch-level outcomes only. Rows of a failed batch are not
// tracked individually, so a retry must resend them.
type ImportResult struct {
	Status        ImportStatus `json:"status"`
	Inserted      int64        `json:"inserted"`
	Message       string       `json:"message"`
	Errors        []string     `json:"errors,omitempty"`
	Batches       int          `json:"-"`
	FailedBatches int          `json:"-"`
}

type BatcherConfig struct {
	BatchSize   int
	Concurrency int
}

type Batcher struct {
	inserter contact.BatchInserter
	notifier contact.ChangeNotifier
	logger   *zap.Logger
	cfg      BatcherConfig
}

func NewBatcher(inserter contact.BatchInserter, notifier contact.ChangeNotifier, logger *zap.Logger, cfg BatcherConfig) *Batcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Batcher{
		inserter: inserter,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
	}
}

type batchOutcome struct {
	inserted int64
	err      error
}

// Import inserts rows for clientID in fixed-size batches. A failing batch never stops
// the others. Once started the upload runs to completion even if ctx is cancelled.
func (b *Batcher) Import(ctx context.Context, clientID string, rows []contact.NormalizedRow) (ImportResult, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return ImportResult{Status: StatusError, Message: "Client ID is missing. Please log in again."}, ErrMissingClientID
	}
	if len(rows) == 0 {
		return ImportResult{Status: StatusError, Message: "No valid rows to upload."}, ErrNoRows
	}

	ctx = context.WithoutCancel(ctx)
	batches := splitBatches(rows, b.cfg.BatchSize)
	outcomes := make([]batchOutcome, len(batches))

	var g errgroup.Group
	g.SetLimit(b.cfg.Concurrency)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			n, err := b.inserter.InsertBatch(ctx, clientID, batch)
			outcomes[i] = batchOutcome{inserted: n, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := ImportResult{Batches: len(batches)}
	for i, outcome := range outcomes {
		if outcome.err != nil {
			result.FailedBatches++
			result.Errors = append(result.Errors, fmt.Sprintf("Batch %d: %s", i+1, truncateReason(outcome.err.Error())))
			b.logger.Error("batch insert failed",
				zap.String("client_id", clientID),
				zap.Int("batch", i+1),
				zap.Int("rows", len(batches[i])),
				zap.Error(outcome.err),
			)
			continue
		}
		result.Inserted += outcome.inserted
	}

	switch {
	case len(result.Errors) == 0:
		result.Status = StatusSuccess
		result.Message = "Rows imported successfully"
	case result.Inserted > 0:
		result.Status = StatusPartialSuccess
		result.Message = fmt.Sprintf("Inserted %d rows with some errors: %s", result.Inserted, strings.Join(result.Errors, "; "))
	default:
		result.Status = StatusError
		result.Message = fmt.Sprintf("Failed to insert rows: %s", strings.Join(result.Errors, "; "))
	}

	if result.Status != StatusError && b.notifier != nil {
		b.notifier.NotifyDataChanged(ctx, clientID)
	}

	b.logger.Info("import finished",
		zap.String("client_id", clientID),
		zap.String("status", string(result.Status)),
		zap.Int64("inserted", result.Inserted),
		zap.Int("batches", result.Batches),
		zap.Int("failed_batches", result.FailedBatches),
	)

	return result, nil
}

func splitBatches(rows []contact.NormalizedRow, size int) [][]contact.NormalizedRow {
	batches := make([][]contact.NormalizedRow, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		batches = append(batches, rows[start:end])
	}
	return batches
}

// truncateReason caps reason at 1000 bytes without splitting a UTF-8 sequence.
func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}
