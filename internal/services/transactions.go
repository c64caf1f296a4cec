package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/common"
	"github.com/dmitrijs2005/bankledger/internal/logging"
	"github.com/dmitrijs2005/bankledger/internal/models"
)

// DefaultPageLimit is the transaction page size used when the caller does
// not care.
const DefaultPageLimit = 200

// TransactionController holds the current page of transactions and applies
// category edits with refetch-based reconciliation: after a successful edit
// the list is reloaded from the server instead of patched locally, so any
// server-side side effects of the change are picked up.
type TransactionController struct {
	client  api.Client
	session *Session
	logger  logging.Logger

	pageLimit int

	mu      sync.Mutex
	items   []models.Transaction
	loading bool
	lastErr string
	pending map[int64]struct{}
}

func NewTransactionController(client api.Client, session *Session, logger logging.Logger, pageLimit int) *TransactionController {
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	c := &TransactionController{
		client:    client,
		session:   session,
		logger:    logger,
		pageLimit: pageLimit,
		pending:   make(map[int64]struct{}),
	}
	session.OnTeardown(c.Clear)
	return c
}

// Items returns a copy of the current page, in server order.
func (c *TransactionController) Items() []models.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Transaction, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether a refresh is in flight.
func (c *TransactionController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the message of the last failed operation, or "".
func (c *TransactionController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// EditPending reports whether a category edit is in flight for id.
func (c *TransactionController) EditPending(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// Clear drops all view state. Registered as a session teardown hook.
func (c *TransactionController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loading = false
	c.lastErr = ""
	c.pending = make(map[int64]struct{})
}

// Refresh replaces the items wholesale from the server. On failure the
// previous items stay visible and the error is recorded; the loading flag
// is cleared on every path. A 401 tears the session down.
func (c *TransactionController) Refresh(ctx context.Context, skip, limit int) error {
	if limit <= 0 {
		limit = c.pageLimit
	}

	gen := c.session.Generation()
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.client.ListTransactions(ctx, skip, limit)

	c.mu.Lock()
	c.loading = false
	stale := c.session.Generation() != gen
	if !stale {
		if err != nil {
			c.lastErr = api.ErrorMessage(err)
		} else {
			c.items = items
			c.lastErr = ""
		}
	}
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.logger.Warn(ctx, "session expired during transaction refresh")
			c.session.Logout(ctx)
		}
		return err
	}
	return nil
}

// UpdateCategory assigns a category to one transaction. The value is checked
// against the closed category set before anything is sent; a second edit on
// a row whose edit is still in flight fails with common.ErrEditInProgress.
// On success the list is reconciled via Refresh.
func (c *TransactionController) UpdateCategory(ctx context.Context, id int64, category models.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidCategory, string(category))
	}

	c.mu.Lock()
	if _, busy := c.pending[id]; busy {
		c.mu.Unlock()
		return common.ErrEditInProgress
	}
	c.pending[id] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	gen := c.session.Generation()
	if _, err := c.client.SetCategory(ctx, id, category); err != nil {
		c.mu.Lock()
		if c.session.Generation() == gen {
			c.lastErr = api.ErrorMessage(err)
		}
		c.mu.Unlock()

		if errors.Is(err, api.ErrUnauthorized) {
			c.logger.Warn(ctx, "session expired during category update")
			c.session.Logout(ctx)
		}
		return err
	}

	if c.session.Generation() != gen {
		// logged out while the edit was in flight; nothing left to reconcile
		return nil
	}
	return c.Refresh(ctx, 0, c.pageLimit)
}
