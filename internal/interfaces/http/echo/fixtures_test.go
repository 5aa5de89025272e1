package echo_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	accountapp "github.com/arkenix/client-portal/internal/application/account"
	contactapp "github.com/arkenix/client-portal/internal/application/contact"
	"github.com/arkenix/client-portal/internal/application/importer"
	"github.com/arkenix/client-portal/internal/domain/account"
	"github.com/arkenix/client-portal/internal/domain/contact"
	"github.com/arkenix/client-portal/internal/infrastructure/events"
	"github.com/arkenix/client-portal/internal/infrastructure/file"
	httpecho "github.com/arkenix/client-portal/internal/interfaces/http/echo"
)

type memoryStore struct {
	mu        sync.Mutex
	records   []contact.Record
	seq       int
	failBatch bool
}

func (s *memoryStore) ListByClient(_ context.Context, clientID string) ([]contact.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []contact.Record
	for _, r := range s.records {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) Insert(_ context.Context, clientID string, row contact.NormalizedRow) (contact.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(clientID, row), nil
}

func (s *memoryStore) insertLocked(clientID string, row contact.NormalizedRow) contact.Record {
	s.seq++
	rec := contact.Record{ID: fmt.Sprintf("rec-%d", s.seq), ClientID: clientID, NormalizedRow: row, CreatedAt: time.Now().UTC()}
	s.records = append(s.records, rec)
	return rec
}

func (s *memoryStore) UpdateByID(_ context.Context, clientID, id string, patch contact.Patch) (contact.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id && s.records[i].ClientID == clientID {
			s.records[i].Apply(patch)
			return s.records[i], nil
		}
	}
	return contact.Record{}, contact.ErrRecordNotFound
}

func (s *memoryStore) DeleteByIDs(_ context.Context, clientID string, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := []string{}
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ClientID == clientID && slices.Contains(ids, r.ID) {
			deleted = append(deleted, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

func (s *memoryStore) InsertBatch(_ context.Context, clientID string, rows []contact.NormalizedRow) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failBatch {
		return 0, errors.New("connection reset")
	}
	for _, row := range rows {
		s.insertLocked(clientID, row)
	}
	return int64(len(rows)), nil
}

func (s *memoryStore) Create(_ context.Context, _ contact.ImportRun) (string, error) {
	return "run-1", nil
}

func (s *memoryStore) snapshot() []contact.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contact.Record(nil), s.records...)
}

type noRuns struct{}

func (noRuns) Create(context.Context, contact.ImportRun) (string, error) { return "", nil }

func (noRuns) ListByClient(context.Context, string, int) ([]contact.ImportRun, error) {
	return []contact.ImportRun{{ID: "run-1", Status: "success"}}, nil
}

type fixture struct {
	server *echo.Echo
	store  *memoryStore
	broker *events.Broker
	tokens *accountapp.TokenIssuer
}

func newFixture(t *testing.T, functionsKey string) *fixture {
	t.Helper()

	tokens, err := accountapp.NewTokenIssuer("handler-secret", time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}

	store := &memoryStore{}
	broker := events.NewBroker(zap.NewNop())
	logger := zap.NewNop()

	batcher := importer.NewBatcher(store, broker, logger, importer.BatcherConfig{BatchSize: 2})
	commit := importer.NewCommitImport(batcher, store, logger)
	add := contactapp.NewAddRecord(store, broker)
	update := contactapp.NewUpdateRecord(store, broker)
	remove := contactapp.NewDeleteRecords(store, broker)

	server := echo.New()
	httpecho.RegisterRoutes(server, httpecho.Handlers{
		Functions: httpecho.NewFunctionHandler(commit, add, update, remove, logger),
		Portal: httpecho.NewPortalHandler(httpecho.PortalUseCases{
			List:      contactapp.NewListRecords(store),
			Add:       add,
			Update:    update,
			Delete:    remove,
			Dashboard: contactapp.NewDashboard(store),
			Preview:   importer.NewPreviewUpload(file.NewSpreadsheetParser(), importer.PipelineConfig{}),
			Commit:    commit,
			History:   importer.NewListImportRuns(noRuns{}),
		}, broker, file.WriteSample, logger),
	}, httpecho.RouteConfig{Sessions: tokens, FunctionsKey: functionsKey})

	return &fixture{server: server, store: store, broker: broker, tokens: tokens}
}

func (f *fixture) token(t *testing.T, clientID string) string {
	t.Helper()
	tok, _, err := f.tokens.Sign(account.Session{ClientID: clientID, Username: clientID + "-user"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
