package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/config"
	"github.com/dmitrijs2005/bankledger/internal/logging"
	"github.com/dmitrijs2005/bankledger/internal/repositories/metadata"
	"github.com/dmitrijs2005/bankledger/internal/services"
	"github.com/dmitrijs2005/bankledger/internal/storage"
)

// App owns the wired-up client: the session, the view controllers and the
// terminal I/O they print to.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	session      *services.Session
	transactions *services.TransactionController
	summary      *services.SummaryController
	upload       *services.UploadController

	reader *bufio.Reader
	in     io.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewTextLogger(cfg.Debug)

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	meta := metadata.NewSQLiteRepository(db)
	session := services.NewSession(meta, logger)

	client := api.NewRESTClient(cfg.ServerBaseURL, session,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RateLimit),
		api.WithLogger(logger),
	)
	session.AttachClient(client)

	transactions := services.NewTransactionController(client, session, logger, cfg.PageLimit)
	summary := services.NewSummaryController(client, session, logger)
	upload := services.NewUploadController(client, session, transactions, summary, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		session:      session,
		transactions: transactions,
		summary:      summary,
		upload:       upload,
		reader:       bufio.NewReader(os.Stdin),
		in:           os.Stdin,
		out:          os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

// refreshViews reloads the transaction list and the summary for the
// currently selected period. Failures are reported to the user but do not
// stop the REPL.
func (a *App) refreshViews(ctx context.Context) {
	if err := a.transactions.Refresh(ctx, 0, 0); err != nil {
		fmt.Fprintln(a.out, api.ErrorMessage(err))
	}
	if err := a.summary.RefreshCurrent(ctx); err != nil {
		fmt.Fprintln(a.out, api.ErrorMessage(err))
	}
}

// Run restores any persisted session, loads the initial views and hands
// control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {

	fmt.Fprintln(a.out, "BankLedger CLI (type 'help' for commands)")

	user, err := a.session.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if user != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Username)
		a.refreshViews(ctx)
	}

	scanner := bufio.NewScanner(a.in)
	runREPL(ctx, a, a.getStatus, scanner, a.out)
}
