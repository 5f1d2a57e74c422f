package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"trackdeck/cmd/fx/account_fx"
	"trackdeck/cmd/fx/billing_fx"
	"trackdeck/cmd/fx/collection_fx"
	"trackdeck/cmd/fx/controllers_fx"
	"trackdeck/cmd/fx/db_fx"
	"trackdeck/cmd/fx/file_fx"
	"trackdeck/cmd/fx/mail_fx"
	"trackdeck/cmd/fx/membership_fx"
	"trackdeck/cmd/fx/memcache_fx"
	"trackdeck/cmd/fx/project_fx"
	"trackdeck/cmd/fx/retention_fx"
	"trackdeck/cmd/fx/storage_fx"
	"trackdeck/cmd/fx/task_fx"
	"trackdeck/internal/api/controllers"
	"trackdeck/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		storage_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,

		account_fx.Module,
		membership_fx.Module,
		project_fx.Module,
		collection_fx.Module,
		task_fx.Module,
		file_fx.Module,
		billing_fx.Module,
		retention_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	passwordResetController *controllers.PasswordResetController,
	projectController *controllers.ProjectController,
	collectionController *controllers.CollectionController,
	membershipController *controllers.MembershipController,
	taskController *controllers.TaskController,
	fileController *controllers.FileController,
	billingController *controllers.BillingController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController,
		passwordResetController,
		projectController,
		collectionController,
		membershipController,
		taskController,
		fileController,
		billingController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	passwordResetController *controllers.PasswordResetController,
	projectController *controllers.ProjectController,
	collectionController *controllers.CollectionController,
	membershipController *controllers.MembershipController,
	taskController *controllers.TaskController,
	fileController *controllers.FileController,
	billingController *controllers.BillingController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	me := accounts.Group("/me", middleware.JWTAuthMiddleware())
	me.GET("", accountController.GetProfile)
	me.PATCH("", accountController.UpdateProfile)
	me.DELETE("", accountController.DeleteAccount)

	reset := r.Group("/password-reset")
	reset.POST("/request", passwordResetController.RequestReset)
	reset.GET("/session", passwordResetController.VerifySession)
	reset.POST("/update", passwordResetController.UpdatePassword)

	r.POST("/billing/webhook", billingController.HandleWebhook)

	auth := r.Group("", middleware.JWTAuthMiddleware())
	auth.GET("/workspace", billingController.GetWorkspace)
	auth.POST("/validate-file-upload", fileController.ValidateFileUpload)

	projects := auth.Group("/projects")
	projects.POST("", projectController.CreateProject)
	projects.GET("", projectController.ListProjects)
	projects.GET("/:id", projectController.GetProject)
	projects.PATCH("/:id", projectController.UpdateProject)
	projects.PUT("/:id/collection", projectController.AssignCollection)
	projects.GET("/:id/capabilities", projectController.GetCapabilities)
	projects.GET("/:id/progress", projectController.GetProgress)
	projects.POST("/:id/accept-invite", membershipController.AcceptProjectInvite)

	projects.POST("/:id/members", membershipController.InviteProjectMember)
	projects.GET("/:id/members", membershipController.ListProjectMembers)
	projects.PATCH("/:id/members/:memberId", membershipController.UpdateProjectMemberRole)
	projects.DELETE("/:id/members/:memberId", membershipController.RemoveProjectMember)

	projects.POST("/:id/tasks", taskController.CreateTask)
	projects.GET("/:id/tasks", taskController.ListTasks)

	projects.POST("/:id/files", fileController.Upload)
	projects.GET("/:id/files", fileController.ListProjectFiles)

	tasks := auth.Group("/tasks")
	tasks.PATCH("/:id", taskController.UpdateTask)
	tasks.DELETE("/:id", taskController.DeleteTask)

	files := auth.Group("/files")
	files.GET("/:id", fileController.Download)
	files.DELETE("/:id", fileController.Delete)

	collections := auth.Group("/collections")
	collections.POST("", collectionController.CreateCollection)
	collections.GET("", collectionController.ListCollections)
	collections.GET("/:id", collectionController.GetCollection)
	collections.PATCH("/:id", collectionController.UpdateCollection)
	collections.GET("/:id/projects", collectionController.ListCollectionProjects)

	collections.POST("/:id/members", membershipController.InviteCollectionMember)
	collections.GET("/:id/members", membershipController.ListCollectionMembers)
	collections.PATCH("/:id/members/:memberId", membershipController.UpdateCollectionMemberRole)
	collections.DELETE("/:id/members/:memberId", membershipController.RemoveCollectionMember)
}
