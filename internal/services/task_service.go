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

// ProductionPhases are the phases that carry their own progress figure;
// "other" and uncategorized tasks count toward overall progress only.
var ProductionPhases = []db_models.ProductionPhase{
	db_models.PhasePreProduction,
	db_models.PhaseRecording,
	db_models.PhaseMixing,
	db_models.PhaseMastering,
}

// OverallProgress returns the completed percentage over all tasks,
// 0 when there are none.
func OverallProgress(tasks []db_models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == db_models.TaskCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// PhaseProgress computes the same ratio per phase, restricted to tasks
// tagged with that phase.
func PhaseProgress(tasks []db_models.Task) map[db_models.ProductionPhase]float64 {
	progress := make(map[db_models.ProductionPhase]float64, len(ProductionPhases))
	for _, phase := range ProductionPhases {
		total, completed := 0, 0
		for _, t := range tasks {
			if t.Category == nil || *t.Category != phase {
				continue
			}
			total++
			if t.Status == db_models.TaskCompleted {
				completed++
			}
		}
		if total == 0 {
			progress[phase] = 0
			continue
		}
		progress[phase] = float64(completed) / float64(total) * 100
	}
	return progress
}

type TaskServiceInterface interface {
	CreateTask(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.CreateTaskRequest) (*db_models.Task, error)
	UpdateTask(ctx context.Context, sess *Session, taskID uuid.UUID, req request_models.UpdateTaskRequest) error
	DeleteTask(ctx context.Context, sess *Session, taskID uuid.UUID) error
	ListTasks(ctx context.Context, sess *Session, projectID uuid.UUID) ([]db_models.Task, error)
	ProjectProgress(ctx context.Context, sess *Session, projectID uuid.UUID) (*response_models.ProgressResponse, error)
}

type TaskService struct {
	taskRepo repositories.TaskRepository
	perms    PermissionServiceInterface
}

func NewTaskService(taskRepo repositories.TaskRepository, perms PermissionServiceInterface) TaskServiceInterface {
	return &TaskService{
		taskRepo: taskRepo,
		perms:    perms,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.CreateTaskRequest) (*db_models.Task, error) {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	if !caps.CanEditTasks {
		return nil, utils.ErrForbidden
	}

	task := &db_models.Task{
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       db_models.TaskPending,
		Priority:     db_models.PriorityMedium,
		DueDate:      req.DueDate,
		ExternalLink: req.ExternalLink,
	}
	if req.Status != "" {
		task.Status = db_models.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = db_models.TaskPriority(req.Priority)
	}
	if req.Category != nil {
		phase := db_models.ProductionPhase(*req.Category)
		task.Category = &phase
	}

	if err := s.taskRepo.Insert(ctx, task); err != nil {
		log.Printf("task insert failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, sess *Session, taskID uuid.UUID, req request_models.UpdateTaskRequest) error {
	task, err := s.taskRepo.FindById(ctx, taskID)
	if err != nil {
		log.Printf("task lookup failed: %v", err)
		return utils.ErrDatabaseError
	}
	if task == nil {
		return utils.ErrTaskNotFound
	}

	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, task.ProjectID)
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
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.ExternalLink != nil {
		updates["external_link"] = *req.ExternalLink
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.taskRepo.Update(ctx, taskID, updates); err != nil {
		log.Printf("task update failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, sess *Session, taskID uuid.UUID) error {
	task, err := s.taskRepo.FindById(ctx, taskID)
	if err != nil {
		log.Printf("task lookup failed: %v", err)
		return utils.ErrDatabaseError
	}
	if task == nil {
		return utils.ErrTaskNotFound
	}

	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, task.ProjectID)
	if err != nil {
		return err
	}
	if !caps.CanDeleteTasks {
		return utils.ErrForbidden
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		log.Printf("task delete failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *TaskService) ListTasks(ctx context.Context, sess *Session, projectID uuid.UUID) ([]db_models.Task, error) {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, utils.ErrForbidden
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		log.Printf("task list failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return tasks, nil
}

// ProjectProgress is a derived view, recomputed from the task list on
// every call; nothing about it is persisted.
func (s *TaskService) ProjectProgress(ctx context.Context, sess *Session, projectID uuid.UUID) (*response_models.ProgressResponse, error) {
	tasks, err := s.ListTasks(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}

	phases := make(map[string]float64, len(ProductionPhases))
	for phase, pct := range PhaseProgress(tasks) {
		phases[string(phase)] = pct
	}

	return &response_models.ProgressResponse{
		Overall: OverallProgress(tasks),
		Phases:  phases,
	}, nil
}
