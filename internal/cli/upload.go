package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bankledger/internal/api"
)

// Upload imports a CSV bank statement. args is [path]. On success the
// controller refreshes both views, so the new rows show up right away.
func (a *App) Upload(ctx context.Context, args []string) error {
	a.upload.Select(args[0])

	msg, err := a.upload.Upload(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}
