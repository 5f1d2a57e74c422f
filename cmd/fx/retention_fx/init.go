package retention_fx

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
	"trackdeck/internal/storage"
)

var Module = fx.Options(
	fx.Provide(provideRetentionService),
	fx.Invoke(registerRetentionJob),
)

func provideRetentionService(
	fileRepo repositories.FileRepository,
	membershipRepo repositories.MembershipRepository,
	store storage.ObjectStore,
) services.RetentionServiceInterface {
	return services.NewRetentionService(fileRepo, membershipRepo, store)
}

// registerRetentionJob runs the sweep nightly at 03:15 and ties the
// scheduler to the application lifecycle.
func registerRetentionJob(lc fx.Lifecycle, retention services.RetentionServiceInterface) {
	scheduler := cron.New()

	if _, err := scheduler.AddFunc("15 3 * * *", func() {
		if err := retention.Run(context.Background()); err != nil {
			log.Printf("retention sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule retention job: %v", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}
