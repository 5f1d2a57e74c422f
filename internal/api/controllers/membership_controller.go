package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/services"
	"trackdeck/pkg/utils"
)

type MembershipController struct {
	membershipService services.MembershipServiceInterface
}

func NewMembershipController(membershipService services.MembershipServiceInterface) *MembershipController {
	return &MembershipController{
		membershipService: membershipService,
	}
}

// InviteProjectMember godoc
// @Summary Invite a member to a project
// @Description Rate limited to 10 invitations per hour per project
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Project id"
// @Param request body request_models.InviteMemberRequest true "Invitation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/members [post]
func (m *MembershipController) InviteProjectMember(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req request_models.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := m.membershipService.InviteProjectMember(c.Request.Context(), sessionFromContext(c), projectID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Invitation created")
}

// ListProjectMembers godoc
// @Summary List a project's members
// @Tags Members
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/members [get]
func (m *MembershipController) ListProjectMembers(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	resp, err := m.membershipService.ListProjectMembers(c.Request.Context(), sessionFromContext(c), projectID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Members fetched successfully")
}

// UpdateProjectMemberRole godoc
// @Summary Change a member's role
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Project id"
// @Param memberId path string true "Member id"
// @Param request body request_models.UpdateMemberRoleRequest true "Role payload"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/members/{memberId} [patch]
func (m *MembershipController) UpdateProjectMemberRole(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	var req request_models.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.membershipService.UpdateProjectMemberRole(c.Request.Context(), sessionFromContext(c), projectID, memberID, req.Role); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member role updated")
}

// RemoveProjectMember godoc
// @Summary Remove a member from a project
// @Tags Members
// @Produce json
// @Param id path string true "Project id"
// @Param memberId path string true "Member id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/members/{memberId} [delete]
func (m *MembershipController) RemoveProjectMember(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	if err := m.membershipService.RemoveProjectMember(c.Request.Context(), sessionFromContext(c), projectID, memberID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member removed")
}

// AcceptProjectInvite godoc
// @Summary Accept a pending project invitation
// @Tags Members
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /projects/{id}/members/accept [post]
func (m *MembershipController) AcceptProjectInvite(c *gin.Context) {
	projectID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid project id")
		return
	}

	if err := m.membershipService.AcceptProjectInvite(c.Request.Context(), sessionFromContext(c), projectID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Invitation accepted")
}

// InviteCollectionMember godoc
// @Summary Invite a member to a collection
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Collection id"
// @Param request body request_models.InviteMemberRequest true "Invitation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections/{id}/members [post]
func (m *MembershipController) InviteCollectionMember(c *gin.Context) {
	collectionID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid collection id")
		return
	}

	var req request_models.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := m.membershipService.InviteCollectionMember(c.Request.Context(), sessionFromContext(c), collectionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Invitation created")
}

// ListCollectionMembers godoc
// @Summary List a collection's members
// @Tags Members
// @Produce json
// @Param id path string true "Collection id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections/{id}/members [get]
func (m *MembershipController) ListCollectionMembers(c *gin.Context) {
	collectionID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid collection id")
		return
	}

	resp, err := m.membershipService.ListCollectionMembers(c.Request.Context(), sessionFromContext(c), collectionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Members fetched successfully")
}

// UpdateCollectionMemberRole godoc
// @Summary Change a collection member's role
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Collection id"
// @Param memberId path string true "Member id"
// @Param request body request_models.UpdateMemberRoleRequest true "Role payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections/{id}/members/{memberId} [patch]
func (m *MembershipController) UpdateCollectionMemberRole(c *gin.Context) {
	collectionID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid collection id")
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	var req request_models.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.membershipService.UpdateCollectionMemberRole(c.Request.Context(), sessionFromContext(c), collectionID, memberID, req.Role); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member role updated")
}

// RemoveCollectionMember godoc
// @Summary Remove a member from a collection
// @Tags Members
// @Produce json
// @Param id path string true "Collection id"
// @Param memberId path string true "Member id"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /collections/{id}/members/{memberId} [delete]
func (m *MembershipController) RemoveCollectionMember(c *gin.Context) {
	collectionID, ok := pathUUID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid collection id")
		return
	}
	memberID, ok := pathUUID(c, "memberId")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	if err := m.membershipService.RemoveCollectionMember(c.Request.Context(), sessionFromContext(c), collectionID, memberID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member removed")
}
