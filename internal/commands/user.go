package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateUserCommand() *cobra.Command {
	var email, name, password string
	var admin bool

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user; without --password the user cannot log in",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			user, err := a.services.User.CreateUser(ctx, email, name, password, admin)
			if err != nil {
				return err
			}
			cmd.Println(user.UserID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "email address, also the approver identity (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant administrator rights")

	return cmd
}

func newPurgeEntriesCommand() *cobra.Command {
	var entityID, actor string

	cmd := &cobra.Command{
		Use:   "purge-entries ENTRY_ID...",
		Short: "Delete journal entries that are not posted",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			n, err := a.services.JournalEntry.BulkDeleteJournalEntries(ctx, entityID, args, actor)
			if err != nil {
				return fmt.Errorf("purging entries: %w", err)
			}
			cmd.Printf("deleted %d entries\n", n)
			return nil
		}),
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "entity id (required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVar(&actor, "as", "", "administrator user id performing the purge (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}
