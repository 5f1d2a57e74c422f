package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/services"
	"trackdeck/pkg/utils"
)

type TaskController struct {
	taskService services.TaskServiceInterface
}

func NewTaskController(taskService services.TaskServiceInterface) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// CreateTask godoc
// @Summary Create a task on a project
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Project id"
// @Param request body request_models.CreateTaskRequest true "Task payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [post]
func (t *TaskController) CreateTask(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req request_models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := t.taskService.CreateTask(c.Request.Context(), sessionFromContext(c), projectID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, task, "Task created successfully")
}

// ListTasks godoc
// @Summary List a project's tasks
// @Tags Tasks
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (t *TaskController) ListTasks(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	tasks, err := t.taskService.ListTasks(c.Request.Context(), sessionFromContext(c), projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tasks, "Tasks fetched successfully")
}

// UpdateTask godoc
// @Summary Update a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task id"
// @Param request body request_models.UpdateTaskRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (t *TaskController) UpdateTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req request_models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.taskService.UpdateTask(c.Request.Context(), sessionFromContext(c), taskID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Task updated successfully")
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Producer-only; members never hold the delete capability
// @Tags Tasks
// @Produce json
// @Param id path string true "Task id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (t *TaskController) DeleteTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid task id")
		return
	}

	if err := t.taskService.DeleteTask(c.Request.Context(), sessionFromContext(c), taskID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Task deleted successfully")
}
