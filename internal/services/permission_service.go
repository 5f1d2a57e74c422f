package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/repositories"
	"trackdeck/pkg/utils"
)

// Capabilities is the effective capability set for one account on one
// project or collection. The client may use it to show or hide buttons,
// but every mutating service call re-resolves it server-side before
// touching data; the client copy is advisory only.
type Capabilities struct {
	CanView          bool
	CanComment       bool
	CanEditTasks     bool
	CanManageProject bool
	CanInviteMembers bool
	CanDeleteTasks   bool
}

func fullCapabilities() Capabilities {
	return Capabilities{
		CanView:          true,
		CanComment:       true,
		CanEditTasks:     true,
		CanManageProject: true,
		CanInviteMembers: true,
		CanDeleteTasks:   true,
	}
}

// ResolveProjectCapabilities applies the fixed role table:
// producer gets everything; a pending (unaccepted) membership grants
// nothing; manager and editor get view/comment/edit-tasks; artist gets
// view/comment; any unrecognized role fails closed.
func ResolveProjectCapabilities(sess *Session, producerID uuid.UUID, member *db_models.ProjectMember) (Capabilities, db_models.ProjectRole) {
	if sess == nil || sess.UserID == uuid.Nil {
		return Capabilities{}, db_models.RoleNone
	}

	if sess.UserID == producerID {
		return fullCapabilities(), db_models.RoleProducer
	}

	if member == nil || member.AcceptedAt == nil {
		return Capabilities{}, db_models.RoleNone
	}

	switch member.Role {
	case db_models.RoleManager, db_models.RoleEditor:
		return Capabilities{
			CanView:      true,
			CanComment:   true,
			CanEditTasks: true,
		}, member.Role
	case db_models.RoleArtist:
		return Capabilities{
			CanView:    true,
			CanComment: true,
		}, member.Role
	default:
		return Capabilities{}, db_models.RoleNone
	}
}

// ResolveCollectionCapabilities mirrors the project table for
// collection-scope roles (owner in place of producer).
func ResolveCollectionCapabilities(sess *Session, ownerID uuid.UUID, member *db_models.CollectionMember) (Capabilities, db_models.CollectionRole) {
	if sess == nil || sess.UserID == uuid.Nil {
		return Capabilities{}, ""
	}

	if sess.UserID == ownerID {
		return fullCapabilities(), db_models.CollectionRoleManager
	}

	if member == nil || member.AcceptedAt == nil {
		return Capabilities{}, ""
	}

	switch member.Role {
	case db_models.CollectionRoleManager, db_models.CollectionRoleEditor:
		return Capabilities{
			CanView:      true,
			CanComment:   true,
			CanEditTasks: true,
		}, member.Role
	case db_models.CollectionRoleArtist:
		return Capabilities{
			CanView:    true,
			CanComment: true,
		}, member.Role
	default:
		return Capabilities{}, ""
	}
}

type PermissionServiceInterface interface {
	ResolveForProject(ctx context.Context, sess *Session, projectID uuid.UUID) (Capabilities, db_models.ProjectRole, *db_models.Project, error)
	ResolveForCollection(ctx context.Context, sess *Session, collectionID uuid.UUID) (Capabilities, *db_models.Collection, error)
}

type PermissionService struct {
	projectRepo    repositories.ProjectRepository
	collectionRepo repositories.CollectionRepository
	membershipRepo repositories.MembershipRepository
}

func NewPermissionService(
	projectRepo repositories.ProjectRepository,
	collectionRepo repositories.CollectionRepository,
	membershipRepo repositories.MembershipRepository,
) PermissionServiceInterface {
	return &PermissionService{
		projectRepo:    projectRepo,
		collectionRepo: collectionRepo,
		membershipRepo: membershipRepo,
	}
}

func (p *PermissionService) ResolveForProject(ctx context.Context, sess *Session, projectID uuid.UUID) (Capabilities, db_models.ProjectRole, *db_models.Project, error) {
	project, err := p.projectRepo.FindById(ctx, projectID)
	if err != nil {
		log.Printf("permission resolve: project lookup failed: %v", err)
		return Capabilities{}, db_models.RoleNone, nil, utils.ErrDatabaseError
	}
	if project == nil {
		return Capabilities{}, db_models.RoleNone, nil, utils.ErrProjectNotFound
	}

	if sess == nil {
		return Capabilities{}, db_models.RoleNone, project, nil
	}

	if sess.UserID == project.ProducerID {
		caps, role := ResolveProjectCapabilities(sess, project.ProducerID, nil)
		return caps, role, project, nil
	}

	member, err := p.membershipRepo.FindProjectMember(ctx, projectID, sess.UserID, NormalizeEmail(sess.Email))
	if err != nil {
		log.Printf("permission resolve: membership lookup failed: %v", err)
		return Capabilities{}, db_models.RoleNone, nil, utils.ErrDatabaseError
	}

	caps, role := ResolveProjectCapabilities(sess, project.ProducerID, member)
	return caps, role, project, nil
}

func (p *PermissionService) ResolveForCollection(ctx context.Context, sess *Session, collectionID uuid.UUID) (Capabilities, *db_models.Collection, error) {
	collection, err := p.collectionRepo.FindById(ctx, collectionID)
	if err != nil {
		log.Printf("permission resolve: collection lookup failed: %v", err)
		return Capabilities{}, nil, utils.ErrDatabaseError
	}
	if collection == nil {
		return Capabilities{}, nil, utils.ErrCollectionNotFound
	}

	if sess == nil {
		return Capabilities{}, collection, nil
	}

	if sess.UserID == collection.OwnerID {
		caps, _ := ResolveCollectionCapabilities(sess, collection.OwnerID, nil)
		return caps, collection, nil
	}

	member, err := p.membershipRepo.FindCollectionMember(ctx, collectionID, sess.UserID, NormalizeEmail(sess.Email))
	if err != nil {
		log.Printf("permission resolve: collection membership lookup failed: %v", err)
		return Capabilities{}, nil, utils.ErrDatabaseError
	}

	caps, _ := ResolveCollectionCapabilities(sess, collection.OwnerID, member)
	return caps, collection, nil
}
