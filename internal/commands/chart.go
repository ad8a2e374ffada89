package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/holdco_books/internal/coa"
	"github.com/SscSPs/holdco_books/internal/core/domain"
)

func newSeedChartCommand() *cobra.Command {
	var entityID, file, actor string

	cmd := &cobra.Command{
		Use:   "seed-chart",
		Short: "Load a chart of accounts from CSV, or the default holdco chart",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			accounts, err := loadChart(file)
			if err != nil {
				return err
			}
			n, err := a.services.Account.SeedAccounts(ctx, entityID, accounts, actor)
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d accounts\n", n)
			return nil
		}),
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "entity id (required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVar(&file, "file", "", "CSV file (default chart when empty)")
	cmd.Flags().StringVar(&actor, "as", adminActor, "user id recorded as creator")

	return cmd
}

// loadChart reads a CSV chart, or returns the built-in chart when path is empty.
func loadChart(path string) ([]domain.Account, error) {
	if path == "" {
		return coa.DefaultChart(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart: %w", err)
	}
	defer f.Close()
	accounts, err := coa.ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return accounts, nil
}

func newExportChartCommand() *cobra.Command {
	var entityID, out string
	var all bool

	cmd := &cobra.Command{
		Use:   "export-chart",
		Short: "Write an entity's chart of accounts as CSV",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			accounts, err := a.services.Account.ListAccounts(ctx, entityID, !all)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return coa.WriteAccounts(w, accounts)
		}),
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "entity id (required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (stdout when empty)")
	cmd.Flags().BoolVar(&all, "all", false, "include inactive accounts")

	return cmd
}
