package membership_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"trackdeck/internal/repositories"
	"trackdeck/internal/services"
	"trackdeck/pkg/ratelimit"
)

var Module = fx.Provide(
	provideMembershipRepo, provideInvitationRepo, provideInviteLimiter, provideMembershipService)

func provideMembershipRepo(db *gorm.DB) repositories.MembershipRepository {
	return repositories.NewMembershipRepository(db)
}

func provideInvitationRepo(db *gorm.DB) repositories.InvitationRepository {
	return repositories.NewInvitationRepository(db)
}

func provideInviteLimiter() *ratelimit.Limiter {
	return ratelimit.New(services.InviteLimit, services.InviteWindow)
}

func provideMembershipService(
	membershipRepo repositories.MembershipRepository,
	invitationRepo repositories.InvitationRepository,
	perms services.PermissionServiceInterface,
	mailService services.IMailService,
	limiter *ratelimit.Limiter,
) services.MembershipServiceInterface {
	return services.NewMembershipService(membershipRepo, invitationRepo, perms, mailService, limiter)
}
