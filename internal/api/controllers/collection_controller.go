package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/services"
	"trackdeck/pkg/utils"
)

type CollectionController struct {
	collectionService services.CollectionServiceInterface
}

func NewCollectionController(collectionService services.CollectionServiceInterface) *CollectionController {
	return &CollectionController{
		collectionService: collectionService,
	}
}

// CreateCollection godoc
// @Summary Create a collection
// @Tags Collections
// @Accept json
// @Produce json
// @Param request body request_models.CreateCollectionRequest true "Collection payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections [post]
func (cc *CollectionController) CreateCollection(c *gin.Context) {
	var req request_models.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := cc.collectionService.CreateCollection(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Collection created successfully")
}

// ListCollections godoc
// @Summary List accessible collections
// @Tags Collections
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections [get]
func (cc *CollectionController) ListCollections(c *gin.Context) {
	resp, err := cc.collectionService.ListCollections(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Collections fetched successfully")
}

// GetCollection godoc
// @Summary Get one collection with derived progress
// @Tags Collections
// @Produce json
// @Param id path string true "Collection id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections/{id} [get]
func (cc *CollectionController) GetCollection(c *gin.Context) {
	collectionID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid collection id")
		return
	}

	resp, err := cc.collectionService.GetCollection(c.Request.Context(), sessionFromContext(c), collectionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Collection fetched successfully")
}

// UpdateCollection godoc
// @Summary Update collection metadata
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path string true "Collection id"
// @Param request body request_models.UpdateCollectionRequest true "Update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections/{id} [patch]
func (cc *CollectionController) UpdateCollection(c *gin.Context) {
	collectionID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid collection id")
		return
	}

	var req request_models.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cc.collectionService.UpdateCollection(c.Request.Context(), sessionFromContext(c), collectionID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Collection updated successfully")
}

// ListCollectionProjects godoc
// @Summary List the projects in a collection
// @Tags Collections
// @Produce json
// @Param id path string true "Collection id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections/{id}/projects [get]
func (cc *CollectionController) ListCollectionProjects(c *gin.Context) {
	collectionID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid collection id")
		return
	}

	resp, err := cc.collectionService.ListCollectionProjects(c.Request.Context(), sessionFromContext(c), collectionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Projects fetched successfully")
}
