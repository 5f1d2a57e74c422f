package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/repositories"
	"trackdeck/pkg/utils"
)

type CollectionServiceInterface interface {
	CreateCollection(ctx context.Context, sess *Session, req request_models.CreateCollectionRequest) (*response_models.CollectionResponse, error)
	GetCollection(ctx context.Context, sess *Session, collectionID uuid.UUID) (*response_models.CollectionResponse, error)
	ListCollections(ctx context.Context, sess *Session) ([]response_models.CollectionResponse, error)
	UpdateCollection(ctx context.Context, sess *Session, collectionID uuid.UUID, req request_models.UpdateCollectionRequest) error
	ListCollectionProjects(ctx context.Context, sess *Session, collectionID uuid.UUID) ([]response_models.ProjectResponse, error)
}

type CollectionService struct {
	collectionRepo repositories.CollectionRepository
	projectRepo    repositories.ProjectRepository
	taskRepo       repositories.TaskRepository
	perms          PermissionServiceInterface
}

func NewCollectionService(
	collectionRepo repositories.CollectionRepository,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	perms PermissionServiceInterface,
) CollectionServiceInterface {
	return &CollectionService{
		collectionRepo: collectionRepo,
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		perms:          perms,
	}
}

func (s *CollectionService) CreateCollection(ctx context.Context, sess *Session, req request_models.CreateCollectionRequest) (*response_models.CollectionResponse, error) {
	if sess == nil {
		return nil, utils.ErrUnauthorized
	}

	collection := &db_models.Collection{
		OwnerID:     sess.UserID,
		Title:       req.Title,
		ReleaseType: db_models.ReleaseType(req.ReleaseType),
	}
	if err := s.collectionRepo.Insert(ctx, collection); err != nil {
		log.Printf("collection insert failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CollectionResponse{
		ID:          collection.ID.String(),
		Title:       collection.Title,
		ReleaseType: string(collection.ReleaseType),
	}, nil
}

func (s *CollectionService) GetCollection(ctx context.Context, sess *Session, collectionID uuid.UUID) (*response_models.CollectionResponse, error) {
	caps, collection, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, utils.ErrForbidden
	}

	progress, err := s.collectionProgress(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	return &response_models.CollectionResponse{
		ID:          collection.ID.String(),
		Title:       collection.Title,
		ReleaseType: string(collection.ReleaseType),
		Progress:    progress,
	}, nil
}

func (s *CollectionService) ListCollections(ctx context.Context, sess *Session) ([]response_models.CollectionResponse, error) {
	if sess == nil {
		return nil, utils.ErrUnauthorized
	}

	collections, err := s.collectionRepo.ListAccessible(ctx, sess.UserID, NormalizeEmail(sess.Email))
	if err != nil {
		log.Printf("collection list failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.CollectionResponse, 0, len(collections))
	for i := range collections {
		out = append(out, response_models.CollectionResponse{
			ID:          collections[i].ID.String(),
			Title:       collections[i].Title,
			ReleaseType: string(collections[i].ReleaseType),
		})
	}
	return out, nil
}

func (s *CollectionService) UpdateCollection(ctx context.Context, sess *Session, collectionID uuid.UUID, req request_models.UpdateCollectionRequest) error {
	caps, _, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return err
	}
	if !caps.CanManageProject {
		return utils.ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ReleaseType != nil {
		updates["release_type"] = *req.ReleaseType
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.collectionRepo.Update(ctx, collectionID, updates); err != nil {
		log.Printf("collection update failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *CollectionService) ListCollectionProjects(ctx context.Context, sess *Session, collectionID uuid.UUID) ([]response_models.ProjectResponse, error) {
	caps, _, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, utils.ErrForbidden
	}

	projects, err := s.projectRepo.ListByCollection(ctx, collectionID)
	if err != nil {
		log.Printf("collection project list failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ProjectResponse, 0, len(projects))
	for i := range projects {
		role := db_models.RoleNone
		if sess != nil && projects[i].ProducerID == sess.UserID {
			role = db_models.RoleProducer
		}
		out = append(out, projectToResponse(&projects[i], role))
	}
	return out, nil
}

// collectionProgress is the mean of each member project's overall task
// completion; a collection with no projects sits at 0.
func (s *CollectionService) collectionProgress(ctx context.Context, collectionID uuid.UUID) (float64, error) {
	projects, err := s.projectRepo.ListByCollection(ctx, collectionID)
	if err != nil {
		log.Printf("collection progress: project list failed: %v", err)
		return 0, utils.ErrDatabaseError
	}
	if len(projects) == 0 {
		return 0, nil
	}

	var sum float64
	for i := range projects {
		tasks, err := s.taskRepo.ListByProject(ctx, projects[i].ID)
		if err != nil {
			log.Printf("collection progress: task list failed: %v", err)
			return 0, utils.ErrDatabaseError
		}
		sum += OverallProgress(tasks)
	}
	return sum / float64(len(projects)), nil
}
