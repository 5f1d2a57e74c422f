package controllers_fx

import (
	"go.uber.org/fx"
	"trackdeck/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPasswordResetController),
	fx.Provide(controllers.NewProjectController),
	fx.Provide(controllers.NewCollectionController),
	fx.Provide(controllers.NewMembershipController),
	fx.Provide(controllers.NewTaskController),
	fx.Provide(controllers.NewFileController),
	fx.Provide(controllers.NewBillingController))
