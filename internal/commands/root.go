package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/SscSPs/holdco_books/internal/buildinfo"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/core/services"
	"github.com/SscSPs/holdco_books/internal/middleware"
	"github.com/SscSPs/holdco_books/internal/platform/config"
	"github.com/SscSPs/holdco_books/internal/repositories/database/pgsql"
	"github.com/SscSPs/holdco_books/internal/taxonomy"
	"github.com/SscSPs/holdco_books/pkg/database"
)

// adminActor is recorded as creator for rows written by the admin tool without --as.
const adminActor = "system"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "holdco_admin",
		Short:   "Administrative tooling for the holdco ledger",
		Version: fmt.Sprintf("%s (commit: %s)", buildinfo.Version, buildinfo.Commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCommand(),
		newCreateEntityCommand(),
		newRegisterDocumentCommand(),
		newSeedChartCommand(),
		newExportChartCommand(),
		newCreateUserCommand(),
		newPurgeEntriesCommand(),
	)

	return rootCmd
}

// app is the wired backend a command runs against.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	repos    portsrepo.RepositoryProvider
	services *portssvc.ServiceContainer
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// openApp loads config and connects to the database. Callers must Close it.
func openApp(ctx context.Context) (context.Context, *app, error) {
	logger := newLogger()
	cfg, err := config.LoadConfig()
	if err != nil {
		return ctx, nil, fmt.Errorf("loading config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true, logger)
	if err != nil {
		return ctx, nil, fmt.Errorf("connecting to database: %w", err)
	}
	elements, err := taxonomy.Default()
	if err != nil {
		pool.Close()
		return ctx, nil, fmt.Errorf("loading taxonomy: %w", err)
	}
	repos := pgsql.NewRepositoryProvider(pool, cfg.EntryNumberMaxRetries)
	a := &app{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		repos:    repos,
		services: services.NewServiceContainer(cfg, repos, elements),
	}
	return middleware.WithLogger(ctx, logger), a, nil
}

func (a *app) Close() {
	database.ClosePgxPool(a.pool, a.logger)
}

// withApp adapts a function needing the wired backend into a cobra RunE.
func withApp(run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(ctx, a, cmd, args)
	}
}
