package contact

import "context"

type RecordRepository interface {
	ListByClient(ctx context.Context, clientID string) ([]Record, error)
	Insert(ctx context.Context, clientID string, row NormalizedRow) (Record, error)
	UpdateByID(ctx context.Context, clientID, id string, patch Patch) (Record, error)
	DeleteByIDs(ctx context.Context, clientID string, ids []string) ([]string, error)
}

// BatchInserter persists one batch atomically and stamps clientID on every row.
type BatchInserter interface {
	InsertBatch(ctx context.Context, clientID string, rows []NormalizedRow) (int64, error)
}

type ImportRunRepository interface {
	Create(ctx context.Context, run ImportRun) (string, error)
	ListByClient(ctx context.Context, clientID string, limit int) ([]ImportRun, error)
}

// ChangeNotifier tells display layers that a client's records changed. It carries
// no payload; consumers re-query.
type ChangeNotifier interface {
	NotifyDataChanged(ctx context.Context, clientID string)
}
