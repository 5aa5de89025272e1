package importer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

type fakeParser struct {
	sheet     contact.Sheet
	err       error
	gotFormat contact.FileFormat
	gotMax    int
	called    bool
}

func (f *fakeParser) Parse(ctx context.Context, format contact.FileFormat, body io.Reader, maxRows int) (contact.Sheet, error) {
	f.called = true
	f.gotFormat = format
	f.gotMax = maxRows
	if f.err != nil {
		return contact.Sheet{}, f.err
	}
	return f.sheet, nil
}

type storedRow struct {
	clientID string
	row      contact.NormalizedRow
}

// memoryInserter persists batches in memory and fails any batch whose first row's
// email is in failOn, with failErr when it is set.
type memoryInserter struct {
	mu      sync.Mutex
	rows    []storedRow
	calls   int
	failOn  map[string]bool
	failErr error
}

func (m *memoryInserter) InsertBatch(ctx context.Context, clientID string, rows []contact.NormalizedRow) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if len(rows) > 0 && m.failOn[rows[0].OfficialEmail] {
		if m.failErr != nil {
			return 0, m.failErr
		}
		return 0, errors.New("duplicate key value violates unique constraint")
	}
	for _, r := range rows {
		m.rows = append(m.rows, storedRow{clientID: clientID, row: r})
	}
	return int64(len(rows)), nil
}

func (m *memoryInserter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type fakeNotifier struct {
	mu      sync.Mutex
	clients []string
}

func (f *fakeNotifier) NotifyDataChanged(ctx context.Context, clientID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients = append(f.clients, clientID)
}

type fakeRunRepo struct {
	runs []contact.ImportRun
	err  error
}

func (f *fakeRunRepo) Create(ctx context.Context, run contact.ImportRun) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.runs = append(f.runs, run)
	return fmt.Sprintf("run-%d", len(f.runs)), nil
}

func (f *fakeRunRepo) ListByClient(ctx context.Context, clientID string, limit int) ([]contact.ImportRun, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []contact.ImportRun
	for _, r := range f.runs {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func makeRows(n int) []contact.NormalizedRow {
	rows := make([]contact.NormalizedRow, n)
	for i := range rows {
		rows[i] = contact.NormalizedRow{
			FirstName:     fmt.Sprintf("User%d", i),
			OfficialEmail: fmt.Sprintf("user%d@example.com", i),
		}
	}
	return rows
}
