package task_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
)

var Module = fx.Provide(
	provideTaskRepo, provideTaskService)

func provideTaskRepo(db *gorm.DB) repositories.TaskRepository {
	return repositories.NewTaskRepository(db)
}

func provideTaskService(taskRepo repositories.TaskRepository, perms services.PermissionServiceInterface) services.TaskServiceInterface {
	return services.NewTaskService(taskRepo, perms)
}
