package services

import (
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, labels domain.LabelProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, WithAccountEntityReader(repos.EntityRepo))

	container.JournalEntry = NewJournalEntryService(
		repos.JournalEntryRepo,
		container.Account,
		repos.UserRepo,
		repos.DocumentRepo,
		WithEntityReader(repos.EntityRepo),
		WithLabelProvider(labels),
		WithSubmitPolicy(domain.SubmitPolicy{RequireSupportingDocument: cfg.RequireSupportingDocument}),
	)

	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingEntityReader(repos.EntityRepo))
	container.User = NewUserService(repos.UserRepo)
	container.TokenService = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.TokenService)

	return container
}
