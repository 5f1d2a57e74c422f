package collection_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
)

var Module = fx.Provide(
	provideCollectionRepo, provideCollectionService)

func provideCollectionRepo(db *gorm.DB) repositories.CollectionRepository {
	return repositories.NewCollectionRepository(db)
}

func provideCollectionService(
	collectionRepo repositories.CollectionRepository,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	perms services.PermissionServiceInterface,
) services.CollectionServiceInterface {
	return services.NewCollectionService(collectionRepo, projectRepo, taskRepo, perms)
}
