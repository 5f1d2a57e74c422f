package file_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
	"trackdeck/internal/storage"
)

var Module = fx.Provide(
	provideFileRepo, provideFileService)

func provideFileRepo(db *gorm.DB) repositories.FileRepository {
	return repositories.NewFileRepository(db)
}

func provideFileService(
	fileRepo repositories.FileRepository,
	store storage.ObjectStore,
	perms services.PermissionServiceInterface,
	billing services.BillingServiceInterface,
) services.FileServiceInterface {
	return services.NewFileService(fileRepo, store, perms, billing)
}
