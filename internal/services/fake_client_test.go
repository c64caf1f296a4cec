package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/logging"
	"github.com/dmitrijs2005/bankledger/internal/models"
	"github.com/dmitrijs2005/bankledger/internal/repositories/metadata"

	_ "modernc.org/sqlite"
)

// fakeClient implements api.Client for unit tests. Fixed return values are
// the common case; the fn overrides allow per-test behavior (blocking,
// state-dependent responses).
type fakeClient struct {
	mu sync.Mutex

	LoginRet string
	LoginErr error

	RegisterErr error

	UserRet *models.User
	UserErr error

	UploadRet string
	UploadErr error

	ListRet []models.Transaction
	ListErr error
	listFn  func(skip, limit int) ([]models.Transaction, error)

	SetCategoryErr error
	setCategoryFn  func(id int64, c models.Category) (*models.Transaction, error)

	SummaryRet *models.MonthlySummary
	SummaryErr error
	summaryFn  func(year, month int) (*models.MonthlySummary, error)

	LoginCalls       int
	RegisterCalls    int
	UserCalls        int
	UploadCalls      int
	ListCalls        int
	SetCategoryCalls int
	SummaryCalls     int
}

func (f *fakeClient) count(n *int) {
	f.mu.Lock()
	*n++
	f.mu.Unlock()
}

func (f *fakeClient) SubmitLogin(ctx context.Context, username, password string) (string, error) {
	f.count(&f.LoginCalls)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) SubmitRegistration(ctx context.Context, username, password string) error {
	f.count(&f.RegisterCalls)
	return f.RegisterErr
}

func (f *fakeClient) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	f.count(&f.UserCalls)
	return f.UserRet, f.UserErr
}

func (f *fakeClient) UploadCSV(ctx context.Context, filename string, data io.Reader) (string, error) {
	f.count(&f.UploadCalls)
	_, _ = io.ReadAll(data)
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	f.count(&f.ListCalls)
	if f.listFn != nil {
		return f.listFn(skip, limit)
	}
	return append([]models.Transaction(nil), f.ListRet...), f.ListErr
}

func (f *fakeClient) SetCategory(ctx context.Context, id int64, category models.Category) (*models.Transaction, error) {
	f.count(&f.SetCategoryCalls)
	if f.setCategoryFn != nil {
		return f.setCategoryFn(id, category)
	}
	if f.SetCategoryErr != nil {
		return nil, f.SetCategoryErr
	}
	return &models.Transaction{ID: id, Category: category}, nil
}

func (f *fakeClient) FetchMonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error) {
	f.count(&f.SummaryCalls)
	if f.summaryFn != nil {
		return f.summaryFn(year, month)
	}
	return f.SummaryRet, f.SummaryErr
}

func setupMetaDB(t *testing.T) metadata.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

// newTestSession wires a Session to the fake client and an in-memory
// credential store.
func newTestSession(t *testing.T, fc *fakeClient) (*Session, metadata.Repository) {
	t.Helper()
	meta := setupMetaDB(t)
	s := NewSession(meta, logging.NewNopLogger())
	s.AttachClient(fc)
	return s, meta
}

// loginAs establishes an authenticated session through the normal flow.
func loginAs(t *testing.T, s *Session, fc *fakeClient, username string) {
	t.Helper()
	fc.LoginRet = "tok-" + username
	fc.UserRet = &models.User{ID: 1, Username: username}
	_, err := s.Login(context.Background(), username, "pw")
	require.NoError(t, err)
	require.True(t, s.Authenticated())
}

var _ api.Client = (*fakeClient)(nil)
