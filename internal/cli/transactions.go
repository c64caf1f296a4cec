package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/common"
	"github.com/dmitrijs2005/bankledger/internal/models"
)

// List refetches the first page of transactions and prints them as a table.
func (a *App) List(ctx context.Context) error {
	if err := a.transactions.Refresh(ctx, 0, 0); err != nil {
		fmt.Fprintln(a.out, api.ErrorMessage(err))
		return err
	}

	items := a.transactions.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No transactions yet. Use 'upload <path>' to import a bank statement.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT\tCATEGORY")
	for _, tx := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format("2006-01-02"), tx.Description, tx.Amount.StringFixed(2), tx.Category)
	}
	return w.Flush()
}

// SetCategory reassigns the category of one transaction. args is
// [id, category...]; multi-word categories like "Food & Drink" arrive as
// several tokens and are joined back.
func (a *App) SetCategory(ctx context.Context, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid transaction id: %s\n", args[0])
		return err
	}

	category, ok := models.ParseCategory(strings.Join(args[1:], " "))
	if !ok {
		fmt.Fprintln(a.out, "Unknown category, see 'categories' for the valid set.")
		return common.ErrInvalidCategory
	}

	if err := a.transactions.UpdateCategory(ctx, id, category); err != nil {
		fmt.Fprintln(a.out, api.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(a.out, "Category updated.")
	return nil
}

// Categories prints the valid category set.
func (a *App) Categories() error {
	for _, c := range models.Categories() {
		fmt.Fprintln(a.out, c)
	}
	return nil
}
