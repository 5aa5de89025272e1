package contact_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

type memoryRepo struct {
	mu      sync.Mutex
	records []domain.Record
	seq     int
	listErr error
}

func (r *memoryRepo) ListByClient(_ context.Context, clientID string) ([]domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Record
	for _, rec := range r.records {
		if rec.ClientID == clientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memoryRepo) Insert(_ context.Context, clientID string, row domain.NormalizedRow) (domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := domain.Record{ID: fmt.Sprintf("rec-%d", r.seq), ClientID: clientID, NormalizedRow: row, CreatedAt: now, UpdatedAt: now}
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *memoryRepo) UpdateByID(_ context.Context, clientID, id string, patch domain.Patch) (domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id && r.records[i].ClientID == clientID {
			r.records[i].Apply(patch)
			return r.records[i], nil
		}
	}
	return domain.Record{}, domain.ErrRecordNotFound
}

func (r *memoryRepo) DeleteByIDs(_ context.Context, clientID string, ids []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted []string
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.ClientID == clientID && slices.Contains(ids, rec.ID) {
			deleted = append(deleted, rec.ID)
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return deleted, nil
}

func (r *memoryRepo) add(rec domain.Record) {
	r.records = append(r.records, rec)
}

type countingNotifier struct {
	mu      sync.Mutex
	clients []string
}

func (n *countingNotifier) NotifyDataChanged(_ context.Context, clientID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clients = append(n.clients, clientID)
}

var errStoreDown = errors.New("store down")

func day(d int) time.Time {
	return time.Date(2025, 3, d, 15, 30, 0, 0, time.UTC)
}
