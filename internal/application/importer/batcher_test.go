package importer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arkenix/client-portal/internal/application/importer"
)

func TestBatcherPreconditionsShortCircuit(t *testing.T) {
	t.Parallel()

	store := &memoryInserter{}
	b := importer.NewBatcher(store, nil, zap.NewNop(), importer.BatcherConfig{})

	res, err := b.Import(context.Background(), "  ", makeRows(3))
	require.ErrorIs(t, err, importer.ErrMissingClientID)
	require.Equal(t, importer.StatusError, res.Status)

	_, err = b.Import(context.Background(), "client-a", nil)
	require.ErrorIs(t, err, importer.ErrNoRows)

	require.Zero(t, store.calls)
}

func TestBatcherInsertedSumMatchesStoreForAnyBatchSize(t *testing.T) {
	t.Parallel()

	const n = 23
	for size := 1; size <= n; size++ {
		for _, concurrency := range []int{1, 4} {
			store := &memoryInserter{}
			notifier := &fakeNotifier{}
			b := importer.NewBatcher(store, notifier, zap.NewNop(), importer.BatcherConfig{BatchSize: size, Concurrency: concurrency})

			res, err := b.Import(context.Background(), "client-a", makeRows(n))
			require.NoError(t, err)
			require.Equal(t, importer.StatusSuccess, res.Status)
			require.Equal(t, "Rows imported successfully", res.Message)
			require.Equal(t, int64(store.count()), res.Inserted, "batch size %d", size)
			require.Equal(t, n, store.count())
			require.Equal(t, (n+size-1)/size, store.calls)
			require.Equal(t, []string{"client-a"}, notifier.clients)
		}
	}
}

func TestBatcherStampsCallerClientID(t *testing.T) {
	t.Parallel()

	store := &memoryInserter{}
	b := importer.NewBatcher(store, nil, nil, importer.BatcherConfig{BatchSize: 2})

	_, err := b.Import(context.Background(), "client-a", makeRows(5))
	require.NoError(t, err)
	for _, r := range store.rows {
		require.Equal(t, "client-a", r.clientID)
	}
}

func TestBatcherPartialSuccessWhenMiddleBatchFails(t *testing.T) {
	t.Parallel()

	rows := makeRows(9)
	store := &memoryInserter{failOn: map[string]bool{rows[3].OfficialEmail: true}}
	notifier := &fakeNotifier{}
	b := importer.NewBatcher(store, notifier, zap.NewNop(), importer.BatcherConfig{BatchSize: 3})

	res, err := b.Import(context.Background(), "client-a", rows)
	require.NoError(t, err)

	require.Equal(t, importer.StatusPartialSuccess, res.Status)
	require.Equal(t, int64(6), res.Inserted)
	require.Equal(t, 3, store.calls)
	require.Equal(t, 6, store.count())
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "Batch 2:")
	require.Equal(t, 1, res.FailedBatches)
	require.Contains(t, res.Message, "Inserted 6 rows with some errors")

	emails := map[string]bool{}
	for _, r := range store.rows {
		emails[r.row.OfficialEmail] = true
	}
	for i, r := range rows {
		inBatch2 := i >= 3 && i < 6
		require.Equal(t, !inBatch2, emails[r.OfficialEmail], "row %d", i)
	}
	require.Equal(t, []string{"client-a"}, notifier.clients)
}

func TestBatcherAllBatchesFailing(t *testing.T) {
	t.Parallel()

	rows := makeRows(4)
	store := &memoryInserter{failOn: map[string]bool{rows[0].OfficialEmail: true, rows[2].OfficialEmail: true}}
	notifier := &fakeNotifier{}
	b := importer.NewBatcher(store, notifier, zap.NewNop(), importer.BatcherConfig{BatchSize: 2, Concurrency: 2})

	res, err := b.Import(context.Background(), "client-a", rows)
	require.NoError(t, err)
	require.Equal(t, importer.StatusError, res.Status)
	require.Zero(t, res.Inserted)
	require.Equal(t, []string{
		"Batch 1: duplicate key value violates unique constraint",
		"Batch 2: duplicate key value violates unique constraint",
	}, res.Errors)
	require.Contains(t, res.Message, "Failed to insert rows")
	require.Empty(t, notifier.clients)
}

func TestBatcherTruncatesLongReasonsOnRuneBoundary(t *testing.T) {
	t.Parallel()

	rows := makeRows(1)
	store := &memoryInserter{
		failOn:  map[string]bool{rows[0].OfficialEmail: true},
		failErr: errors.New("x" + strings.Repeat("é", 600)),
	}
	b := importer.NewBatcher(store, nil, zap.NewNop(), importer.BatcherConfig{})

	res, err := b.Import(context.Background(), "client-a", rows)
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)

	reason := strings.TrimPrefix(res.Errors[0], "Batch 1: ")
	require.True(t, utf8.ValidString(reason))
	require.LessOrEqual(t, len(reason), 1000)
	require.Equal(t, 999, len(reason))
	require.True(t, utf8.ValidString(res.Message))
}

func TestBatcherIgnoresCallerCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &memoryInserter{}
	b := importer.NewBatcher(store, nil, zap.NewNop(), importer.BatcherConfig{BatchSize: 10})

	res, err := b.Import(ctx, "client-a", makeRows(25))
	require.NoError(t, err)
	require.Equal(t, importer.StatusSuccess, res.Status)
	require.Equal(t, 25, store.count())
}

func ExampleBatcher_Import() {
	store := &memoryInserter{}
	b := importer.NewBatcher(store, nil, nil, importer.BatcherConfig{BatchSize: 500})

	res, _ := b.Import(context.Background(), "client-a", makeRows(1200))
	fmt.Println(res.Status, res.Inserted, store.calls)
	// Output: success 1200 3
}
