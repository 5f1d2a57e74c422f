package billing_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
)

var Module = fx.Provide(
	provideWorkspaceRepo, provideBillingService)

func provideWorkspaceRepo(db *gorm.DB) repositories.WorkspaceRepository {
	return repositories.NewWorkspaceRepository(db)
}

func provideBillingService(workspaceRepo repositories.WorkspaceRepository) services.BillingServiceInterface {
	return services.NewBillingService(workspaceRepo)
}
