// Package api is the typed gateway to the bank-statement REST backend.
// All server communication goes through the Client interface; the concrete
// implementation attaches the current bearer credential, classifies failures
// into the sentinel errors of this package, and never interprets payloads
// beyond decoding them into the shared models.
package api

import (
	"context"
	"io"

	"github.com/dmitrijs2005/bankledger/internal/models"
)

// TokenSource supplies the current bearer credential. An empty string means
// there is no active session and the request is sent unauthenticated.
// The session store is the only writer; the gateway only reads.
type TokenSource interface {
	Token() string
}

// Client defines every server operation the application performs.
//
// Error contract for all methods:
//   - ErrUnauthorized: the server rejected the credential (HTTP 401).
//   - ErrUnavailable: no response was obtained (network-level failure).
//   - *APIError: any other non-2xx response, carrying the server detail.
type Client interface {
	// SubmitLogin exchanges credentials for a bearer token.
	SubmitLogin(ctx context.Context, username, password string) (string, error)
	// SubmitRegistration creates an account; it does not establish a session.
	SubmitRegistration(ctx context.Context, username, password string) error
	// FetchCurrentUser resolves the active token to its identity.
	FetchCurrentUser(ctx context.Context) (*models.User, error)

	// UploadCSV submits one bank statement file and returns the server's
	// confirmation message.
	UploadCSV(ctx context.Context, filename string, data io.Reader) (string, error)
	// ListTransactions fetches one page of transactions in server order.
	ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error)
	// SetCategory assigns a category to one transaction and returns the
	// updated row as the server stored it.
	SetCategory(ctx context.Context, transactionID int64, category models.Category) (*models.Transaction, error)
	// FetchMonthlySummary fetches the per-category totals for one period.
	FetchMonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error)
}
