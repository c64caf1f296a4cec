package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/common"
	"github.com/dmitrijs2005/bankledger/internal/logging"
	"github.com/dmitrijs2005/bankledger/internal/models"
	"github.com/dmitrijs2005/bankledger/internal/validation"
)

// Period is one calendar month.
type Period struct {
	Year  int `json:"year" validate:"gte=1900,lte=2999"`
	Month int `json:"month" validate:"gte=1,lte=12"`
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// CurrentPeriod returns the period containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month())}
}

// SummaryController holds the monthly spending aggregate for the selected
// period. Responses are tagged with the period they were requested for and
// applied only while that period is still the selected one, so rapid period
// navigation is last-selection-wins regardless of completion order.
type SummaryController struct {
	client    api.Client
	session   *Session
	logger    logging.Logger
	validator *validation.Validator

	mu          sync.Mutex
	entries     []models.MonthlySummaryEntry
	periodLabel string
	lastErr     string
	selected    Period
}

func NewSummaryController(client api.Client, session *Session, logger logging.Logger) *SummaryController {
	c := &SummaryController{
		client:    client,
		session:   session,
		logger:    logger,
		validator: validation.New(),
		selected:  CurrentPeriod(time.Now()),
	}
	session.OnTeardown(c.Clear)
	return c
}

// Entries returns a copy of the current aggregate.
func (c *SummaryController) Entries() []models.MonthlySummaryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.MonthlySummaryEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// PeriodLabel returns the server-formatted label of the displayed period.
func (c *SummaryController) PeriodLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.periodLabel
}

// Err returns the message of the last failed refresh, or "".
func (c *SummaryController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Selected returns the currently selected period.
func (c *SummaryController) Selected() Period {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Clear drops the aggregate but keeps the period selection. Registered as
// a session teardown hook.
func (c *SummaryController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.periodLabel = ""
	c.lastErr = ""
}

// Refresh selects (year, month) and fetches its aggregate. The response is
// discarded if the user has navigated to another period, or logged out,
// before it arrived. Failures keep the previous entries visible; a 401
// tears the session down.
func (c *SummaryController) Refresh(ctx context.Context, year, month int) error {
	p := Period{Year: year, Month: month}
	if err := c.validator.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidPeriod, err)
	}

	gen := c.session.Generation()
	c.mu.Lock()
	c.selected = p
	c.mu.Unlock()

	summary, err := c.client.FetchMonthlySummary(ctx, p.Year, p.Month)

	c.mu.Lock()
	stale := c.selected != p || c.session.Generation() != gen
	if !stale {
		if err != nil {
			c.lastErr = api.ErrorMessage(err)
		} else {
			c.entries = summary.Summary
			c.periodLabel = summary.Month
			c.lastErr = ""
		}
	}
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.logger.Warn(ctx, "session expired during summary refresh")
			c.session.Logout(ctx)
		}
		return err
	}
	return nil
}

// RefreshCurrent refetches the aggregate for the selected period. Used
// after mutations that may have moved totals (upload, recategorization).
func (c *SummaryController) RefreshCurrent(ctx context.Context) error {
	p := c.Selected()
	return c.Refresh(ctx, p.Year, p.Month)
}
