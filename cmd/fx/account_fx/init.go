package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
	mem "trackdeck/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountRepo, provideAccountService, providePasswordResetService)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	membershipRepo repositories.MembershipRepository,
	memberships services.MembershipServiceInterface,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, membershipRepo, memberships)
}

func providePasswordResetService(
	accountRepo repositories.AccountRepository,
	store mem.ResetTokenStore,
	mailService services.IMailService,
) services.PasswordResetServiceInterface {
	return services.NewPasswordResetService(accountRepo, store, mailService)
}
