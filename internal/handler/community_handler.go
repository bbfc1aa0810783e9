package handler

import (
	"net/http"

	"seedy/internal/middleware"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func (h *CommunityHandler) List(c *gin.Context) {
	communities, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"communities": communities})
}

type CommunityCheckNameReq struct {
	Name              string `json:"name"`
	IgnoreCommunityID uint64 `json:"ignore_community_id"`
}

func (h *CommunityHandler) CheckName(c *gin.Context) {
	var req CommunityCheckNameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.CheckName(req.Name, req.IgnoreCommunityID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Community name available"})
}

type CommunityCreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	community, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Description, req.Picture)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Community created successfully", "community": community})
}

func (h *CommunityHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), paramID(c, "community_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Community deleted successfully"})
}

type GiveRoleReq struct {
	UserID   uint64 `json:"user_id"`
	RoleName string `json:"role_name"`
}

func (h *CommunityHandler) GiveRole(c *gin.Context) {
	var req GiveRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	err := h.svc.AssignRole(c.Request.Context(), middleware.UserID(c), paramID(c, "community_id"), req.UserID, req.RoleName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role assigned successfully"})
}

func (h *CommunityHandler) GetUserRole(c *gin.Context) {
	role, err := h.svc.GetUserRole(paramID(c, "community_id"), paramID(c, "user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": role.ID, "name": role.Name, "display_name": role.DisplayName})
}

func (h *CommunityHandler) RemoveMember(c *gin.Context) {
	err := h.svc.RemoveMember(c.Request.Context(), paramID(c, "user_id"), paramID(c, "community_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// Leave removes the caller's own membership.
func (h *CommunityHandler) Leave(c *gin.Context) {
	err := h.svc.RemoveMember(c.Request.Context(), middleware.UserID(c), paramID(c, "community_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left community successfully"})
}

type ChangeImageReq struct {
	Picture string `json:"picture"`
}

func (h *CommunityHandler) ChangeImage(c *gin.Context) {
	var req ChangeImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.ChangeImage(paramID(c, "community_id"), req.Picture); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Community image updated successfully"})
}

func (h *CommunityHandler) GetMembers(c *gin.Context) {
	members, err := h.svc.GetMembers(paramID(c, "community_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
