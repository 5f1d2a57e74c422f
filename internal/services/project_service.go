package services

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/google/uuid"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/repositories"
	"trackdeck/pkg/utils"
)

// ValidateTempo enforces the BPM bounds.
func ValidateTempo(tempo int) error {
	if tempo < db_models.TempoMin || tempo > db_models.TempoMax {
		return fmt.Errorf("%w: tempo must be between %d and %d BPM", utils.ErrValidation, db_models.TempoMin, db_models.TempoMax)
	}
	return nil
}

// ValidateSampleRate accepts only the fixed studio rates.
func ValidateSampleRate(rate int) error {
	if !slices.Contains(db_models.SampleRates, rate) {
		return fmt.Errorf("%w: sample rate %d is not supported", utils.ErrValidation, rate)
	}
	return nil
}

// ValidateMusicalKey accepts only the 24 key signatures.
func ValidateMusicalKey(key string) error {
	if !slices.Contains(db_models.MusicalKeys, key) {
		return fmt.Errorf("%w: unknown musical key %q", utils.ErrValidation, key)
	}
	return nil
}

type ProjectServiceInterface interface {
	CreateProject(ctx context.Context, sess *Session, req request_models.CreateProjectRequest) (*response_models.ProjectResponse, error)
	GetProject(ctx context.Context, sess *Session, projectID uuid.UUID) (*response_models.ProjectResponse, error)
	ListProjects(ctx context.Context, sess *Session) ([]response_models.ProjectResponse, error)
	UpdateProject(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.UpdateProjectRequest) error
	AssignToCollection(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.AssignCollectionRequest) error
	ProjectCapabilities(ctx context.Context, sess *Session, projectID uuid.UUID) (*response_models.CapabilitiesResponse, error)
}

type ProjectService struct {
	projectRepo    repositories.ProjectRepository
	collectionRepo repositories.CollectionRepository
	perms          PermissionServiceInterface
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	collectionRepo repositories.CollectionRepository,
	perms PermissionServiceInterface,
) ProjectServiceInterface {
	return &ProjectService{
		projectRepo:    projectRepo,
		collectionRepo: collectionRepo,
		perms:          perms,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, sess *Session, req request_models.CreateProjectRequest) (*response_models.ProjectResponse, error) {
	if sess == nil {
		return nil, utils.ErrUnauthorized
	}

	if err := ValidateTempo(req.Tempo); err != nil {
		return nil, err
	}
	if err := ValidateSampleRate(req.SampleRate); err != nil {
		return nil, err
	}
	if err := ValidateMusicalKey(req.Key); err != nil {
		return nil, err
	}

	project := &db_models.Project{
		ProducerID: sess.UserID,
		Title:      req.Title,
		Artist:     req.Artist,
		Tempo:      req.Tempo,
		SampleRate: req.SampleRate,
		Key:        req.Key,
		DueDate:    req.DueDate,
	}
	if err := s.projectRepo.Insert(ctx, project); err != nil {
		log.Printf("project insert failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	resp := projectToResponse(project, db_models.RoleProducer)
	return &resp, nil
}

func (s *ProjectService) GetProject(ctx context.Context, sess *Session, projectID uuid.UUID) (*response_models.ProjectResponse, error) {
	caps, role, project, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, utils.ErrForbidden
	}

	resp := projectToResponse(project, role)
	return &resp, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, sess *Session) ([]response_models.ProjectResponse, error) {
	if sess == nil {
		return nil, utils.ErrUnauthorized
	}

	projects, err := s.projectRepo.ListAccessible(ctx, sess.UserID, NormalizeEmail(sess.Email))
	if err != nil {
		log.Printf("project list failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ProjectResponse, 0, len(projects))
	for i := range projects {
		role := db_models.RoleNone
		if projects[i].ProducerID == sess.UserID {
			role = db_models.RoleProducer
		}
		out = append(out, projectToResponse(&projects[i], role))
	}
	return out, nil
}

// UpdateProject covers the metadata fields; anyone with task-edit rights
// may adjust them, while collection assignment stays management-only.
func (s *ProjectService) UpdateProject(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.UpdateProjectRequest) error {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return err
	}
	if !caps.CanEditTasks {
		return utils.ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Artist != nil {
		updates["artist"] = *req.Artist
	}
	if req.Tempo != nil {
		if err := ValidateTempo(*req.Tempo); err != nil {
			return err
		}
		updates["tempo"] = *req.Tempo
	}
	if req.SampleRate != nil {
		if err := ValidateSampleRate(*req.SampleRate); err != nil {
			return err
		}
		updates["sample_rate"] = *req.SampleRate
	}
	if req.Key != nil {
		if err := ValidateMusicalKey(*req.Key); err != nil {
			return err
		}
		updates["key"] = *req.Key
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.projectRepo.Update(ctx, projectID, updates); err != nil {
		log.Printf("project update failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

// AssignToCollection moves the project into a collection (or out of one
// when the id is null). The caller must manage the project and hold at
// least view access on the target collection.
func (s *ProjectService) AssignToCollection(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.AssignCollectionRequest) error {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return err
	}
	if !caps.CanManageProject {
		return utils.ErrForbidden
	}

	if req.CollectionID == nil {
		if err := s.projectRepo.Update(ctx, projectID, map[string]interface{}{"collection_id": nil}); err != nil {
			log.Printf("project unassign failed: %v", err)
			return utils.ErrDatabaseError
		}
		return nil
	}

	collectionID, err := uuid.Parse(*req.CollectionID)
	if err != nil {
		return fmt.Errorf("%w: bad collection id", utils.ErrValidation)
	}

	colCaps, _, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return err
	}
	if !colCaps.CanView {
		return utils.ErrForbidden
	}

	if err := s.projectRepo.Update(ctx, projectID, map[string]interface{}{"collection_id": collectionID}); err != nil {
		log.Printf("project assign failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ProjectService) ProjectCapabilities(ctx context.Context, sess *Session, projectID uuid.UUID) (*response_models.CapabilitiesResponse, error) {
	caps, role, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}

	return &response_models.CapabilitiesResponse{
		Role:             string(role),
		CanView:          caps.CanView,
		CanComment:       caps.CanComment,
		CanEditTasks:     caps.CanEditTasks,
		CanManageProject: caps.CanManageProject,
		CanInviteMembers: caps.CanInviteMembers,
		CanDeleteTasks:   caps.CanDeleteTasks,
	}, nil
}

func projectToResponse(p *db_models.Project, role db_models.ProjectRole) response_models.ProjectResponse {
	resp := response_models.ProjectResponse{
		ID:         p.ID.String(),
		Title:      p.Title,
		Artist:     p.Artist,
		Tempo:      p.Tempo,
		SampleRate: p.SampleRate,
		Key:        p.Key,
		DueDate:    p.DueDate,
		Role:       string(role),
	}
	if p.CollectionID != nil {
		id := p.CollectionID.String()
		resp.CollectionID = &id
	}
	return resp
}
