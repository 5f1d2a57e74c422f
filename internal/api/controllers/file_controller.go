package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/services"
	"trackdeck/pkg/utils"
)

type FileController struct {
	fileService services.FileServiceInterface
}

func NewFileController(fileService services.FileServiceInterface) *FileController {
	return &FileController{
		fileService: fileService,
	}
}

// ValidateFileUpload godoc
// @Summary Pre-validate an upload
// @Description Checks size, MIME type and filename safety before any bytes move
// @Tags Files
// @Accept json
// @Produce json
// @Param request body request_models.ValidateFileUploadRequest true "Validation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /validate-file-upload [post]
func (f *FileController) ValidateFileUpload(c *gin.Context) {
	var req request_models.ValidateFileUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := f.fileService.ValidateFileUpload(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "File accepted")
}

// Upload godoc
// @Summary Upload a file version
// @Description Stores the blob and assigns the next version for (project, category)
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project id"
// @Param category formData string true "stems, mixes, sessions or notes"
// @Param description formData string false "Optional description"
// @Param file formData file true "File content"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/files [post]
func (f *FileController) Upload(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	category := db_models.FileCategory(c.PostForm("category"))
	description := c.PostForm("description")

	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Missing file part")
		return
	}

	src, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unreadable file part")
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unreadable file part")
		return
	}

	resp, err := f.fileService.Upload(
		c.Request.Context(),
		sessionFromContext(c),
		projectID,
		category,
		header.Filename,
		header.Header.Get("Content-Type"),
		description,
		content,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "File uploaded successfully")
}

// ListProjectFiles godoc
// @Summary List a project's files
// @Tags Files
// @Produce json
// @Param id path string true "Project id"
// @Param category query string false "Filter by category"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/files [get]
func (f *FileController) ListProjectFiles(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	var category *db_models.FileCategory
	if raw := c.Query("category"); raw != "" {
		cat := db_models.FileCategory(raw)
		category = &cat
	}

	resp, err := f.fileService.ListProjectFiles(c.Request.Context(), sessionFromContext(c), projectID, category)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Files fetched successfully")
}

// Download godoc
// @Summary Download a file version
// @Tags Files
// @Produce octet-stream
// @Param id path string true "File id"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /files/{id} [get]
func (f *FileController) Download(c *gin.Context) {
	fileID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid file id")
		return
	}

	rc, file, err := f.fileService.Download(c.Request.Context(), sessionFromContext(c), fileID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+file.OriginalName+`"`)
	c.DataFromReader(http.StatusOK, file.SizeBytes, file.MimeType, rc, nil)
}

// Delete godoc
// @Summary Delete a file version
// @Tags Files
// @Produce json
// @Param id path string true "File id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /files/{id} [delete]
func (f *FileController) Delete(c *gin.Context) {
	fileID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid file id")
		return
	}

	if err := f.fileService.Delete(c.Request.Context(), sessionFromContext(c), fileID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "File deleted successfully")
}
