package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/bankledger/internal/api"
)

// Summary prints the per-category totals. With no args it reloads the
// currently selected period; with [year month] it navigates first.
func (a *App) Summary(ctx context.Context, args []string) error {
	var err error
	if len(args) == 2 {
		err = a.refreshSummaryFromArgs(ctx, args)
	} else {
		err = a.summary.RefreshCurrent(ctx)
	}
	if err != nil {
		fmt.Fprintln(a.out, api.ErrorMessage(err))
		return err
	}
	return a.printSummary()
}

// Period navigates the summary view to another month. Only the summary is
// refetched; the transaction list is left alone.
func (a *App) Period(ctx context.Context, args []string) error {
	if err := a.refreshSummaryFromArgs(ctx, args); err != nil {
		fmt.Fprintln(a.out, api.ErrorMessage(err))
		return err
	}
	return a.printSummary()
}

func (a *App) refreshSummaryFromArgs(ctx context.Context, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year: %s", args[0])
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid month: %s", args[1])
	}
	return a.summary.Refresh(ctx, year, month)
}

func (a *App) printSummary() error {
	label := a.summary.PeriodLabel()
	if label == "" {
		label = a.summary.Selected().String()
	}
	fmt.Fprintf(a.out, "Summary for %s\n", label)

	entries := a.summary.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No data for this period.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tTOTAL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Category, e.TotalAmount.StringFixed(2))
	}
	return w.Flush()
}
