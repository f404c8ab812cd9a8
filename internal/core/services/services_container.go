package services

import (
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:  NewAccountService(repos.AccountRepo),
		Overview: NewOverviewService(repos.AccountRepo),
		FormSession: NewFormSessionService(repos.AccountRepo,
			WithSessionTTL(cfg.FormSessionTTL),
			WithSessionCapacity(cfg.FormSessionCapacity),
		),
		Export: NewExportService(repos.AccountRepo),
		Auth:   NewAuthService(cfg),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.FormSessionSvcFacade = (*formSessionService)(nil)
	_ portssvc.ExportSvc            = (*exportService)(nil)
)
