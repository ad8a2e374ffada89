package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

func newCreateEntityCommand() *cobra.Command {
	var id, name string
	var inactive bool

	cmd := &cobra.Command{
		Use:   "create-entity",
		Short: "Create or rename a legal entity",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			entity, err := buildEntity(id, name, !inactive, time.Now().UTC())
			if err != nil {
				return err
			}
			if err := a.repos.EntityRepo.SaveEntity(ctx, entity); err != nil {
				return err
			}
			cmd.Println(entity.EntityID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "entity id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "legal name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the entity deactivated")

	return cmd
}

func buildEntity(id, name string, active bool, now time.Time) (domain.Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Entity{}, fmt.Errorf("entity name is required")
	}
	if id == "" {
		id = uuid.NewString()
	}
	return domain.Entity{
		EntityID: id,
		Name:     name,
		IsActive: active,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminActor,
			LastUpdatedAt: now,
			LastUpdatedBy: adminActor,
		},
	}, nil
}

func newRegisterDocumentCommand() *cobra.Command {
	var entityID, id, fileName string

	cmd := &cobra.Command{
		Use:   "register-document",
		Short: "Register a supporting document so entries can reference it",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(fileName) == "" {
				return fmt.Errorf("file name is required")
			}
			if id == "" {
				id = uuid.NewString()
			}
			doc := domain.Document{
				DocumentID: id,
				EntityID:   entityID,
				FileName:   fileName,
				CreatedAt:  time.Now().UTC(),
			}
			if err := a.repos.DocumentRepo.SaveDocument(ctx, doc); err != nil {
				return err
			}
			cmd.Println(doc.DocumentID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "entity id (required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVar(&id, "id", "", "document id (generated when empty)")
	cmd.Flags().StringVar(&fileName, "file-name", "", "original file name (required)")
	_ = cmd.MarkFlagRequired("file-name")

	return cmd
}
