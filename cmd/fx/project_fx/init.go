package project_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
)

var Module = fx.Provide(
	provideProjectRepo, providePermissionService, provideProjectService)

func provideProjectRepo(db *gorm.DB) repositories.ProjectRepository {
	return repositories.NewProjectRepository(db)
}

func providePermissionService(
	projectRepo repositories.ProjectRepository,
	collectionRepo repositories.CollectionRepository,
	membershipRepo repositories.MembershipRepository,
) services.PermissionServiceInterface {
	return services.NewPermissionService(projectRepo, collectionRepo, membershipRepo)
}

func provideProjectService(
	projectRepo repositories.ProjectRepository,
	collectionRepo repositories.CollectionRepository,
	perms services.PermissionServiceInterface,
) services.ProjectServiceInterface {
	return services.NewProjectService(projectRepo, collectionRepo, perms)
}
