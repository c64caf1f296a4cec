package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/common"
	"github.com/dmitrijs2005/bankledger/internal/logging"
)

// UploadController submits one statement CSV at a time. The selected file is
// consumed by every attempt, success or failure, so a repeated submit cannot
// resend the same file without an explicit re-selection. A successful upload
// refreshes both the transaction list and the summary.
type UploadController struct {
	client       api.Client
	session      *Session
	transactions *TransactionController
	summary      *SummaryController
	logger       logging.Logger

	mu           sync.Mutex
	selectedPath string
	lastMessage  string
	lastErr      string
}

func NewUploadController(client api.Client, session *Session, transactions *TransactionController, summary *SummaryController, logger logging.Logger) *UploadController {
	c := &UploadController{
		client:       client,
		session:      session,
		transactions: transactions,
		summary:      summary,
		logger:       logger,
	}
	session.OnTeardown(c.Clear)
	return c
}

// Select stages a file for the next upload attempt.
func (c *UploadController) Select(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedPath = path
}

// Message returns the confirmation of the last successful upload, or "".
func (c *UploadController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastMessage
}

// Err returns the detail of the last failed upload, or "".
func (c *UploadController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Clear drops the selection and outcome. Registered as a session teardown hook.
func (c *UploadController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedPath = ""
	c.lastMessage = ""
	c.lastErr = ""
}

// Upload submits the staged file. Without a staged file it fails with
// common.ErrNoFileSelected before any network call. The staged path is
// cleared as soon as the attempt starts.
func (c *UploadController) Upload(ctx context.Context) (string, error) {
	c.mu.Lock()
	path := c.selectedPath
	c.selectedPath = ""
	c.lastMessage = ""
	c.lastErr = ""
	c.mu.Unlock()

	if path == "" {
		return "", common.ErrNoFileSelected
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open statement file: %w", err)
	}
	defer f.Close()

	gen := c.session.Generation()
	message, err := c.client.UploadCSV(ctx, filepath.Base(path), f)
	if err != nil {
		c.mu.Lock()
		if c.session.Generation() == gen {
			c.lastErr = api.ErrorMessage(err)
		}
		c.mu.Unlock()

		if errors.Is(err, api.ErrUnauthorized) {
			c.logger.Warn(ctx, "session expired during upload")
			c.session.Logout(ctx)
		}
		return "", err
	}

	c.mu.Lock()
	applied := c.session.Generation() == gen
	if applied {
		c.lastMessage = message
	}
	c.mu.Unlock()

	if !applied {
		return message, nil
	}

	c.logger.Info(ctx, "statement uploaded", "result", message)

	// reconcile both dependent views with the new server state
	if err := c.transactions.Refresh(ctx, 0, 0); err != nil {
		c.logger.Warn(ctx, "post-upload transaction refresh failed", "error", err)
	}
	if err := c.summary.RefreshCurrent(ctx); err != nil {
		c.logger.Warn(ctx, "post-upload summary refresh failed", "error", err)
	}
	return message, nil
}
