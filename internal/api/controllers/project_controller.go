package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/services"
	"trackdeck/pkg/utils"
)

type ProjectController struct {
	projectService services.ProjectServiceInterface
	taskService    services.TaskServiceInterface
}

func NewProjectController(projectService services.ProjectServiceInterface, taskService services.TaskServiceInterface) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		taskService:    taskService,
	}
}

// CreateProject godoc
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body request_models.CreateProjectRequest true "Project payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects [post]
func (p *ProjectController) CreateProject(c *gin.Context) {
	var req request_models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := p.projectService.CreateProject(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Project created successfully")
}

// ListProjects godoc
// @Summary List accessible projects
// @Description Owned projects plus accepted memberships
// @Tags Projects
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects [get]
func (p *ProjectController) ListProjects(c *gin.Context) {
	resp, err := p.projectService.ListProjects(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Projects fetched successfully")
}

// GetProject godoc
// @Summary Get one project
// @Tags Projects
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (p *ProjectController) GetProject(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	resp, err := p.projectService.GetProject(c.Request.Context(), sessionFromContext(c), projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Project fetched successfully")
}

// UpdateProject godoc
// @Summary Update project metadata
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project id"
// @Param request body request_models.UpdateProjectRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id} [patch]
func (p *ProjectController) UpdateProject(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req request_models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.projectService.UpdateProject(c.Request.Context(), sessionFromContext(c), projectID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Project updated successfully")
}

// AssignCollection godoc
// @Summary Assign the project to a collection (or detach with null)
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project id"
// @Param request body request_models.AssignCollectionRequest true "Collection assignment"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/collection [put]
func (p *ProjectController) AssignCollection(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req request_models.AssignCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.projectService.AssignToCollection(c.Request.Context(), sessionFromContext(c), projectID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Project assignment updated")
}

// GetCapabilities godoc
// @Summary Resolve the caller's capabilities on a project
// @Description Advisory for the client UI; mutations re-check server-side
// @Tags Projects
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/capabilities [get]
func (p *ProjectController) GetCapabilities(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	resp, err := p.projectService.ProjectCapabilities(c.Request.Context(), sessionFromContext(c), projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Capabilities resolved")
}

// GetProgress godoc
// @Summary Project completion percentages
// @Description Overall plus per-production-phase completion, recomputed on read
// @Tags Projects
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/progress [get]
func (p *ProjectController) GetProgress(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	resp, err := p.taskService.ProjectProgress(c.Request.Context(), sessionFromContext(c), projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Progress computed")
}
