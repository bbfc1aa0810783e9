package handler

import (
	"net/http"

	"seedy/internal/middleware"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, totalPages, err := h.svc.List(paramID(c, "community_id"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "totalPages": totalPages})
}

type CategoryCheckNameReq struct {
	Name             string `json:"name"`
	IgnoreCategoryID uint64 `json:"ignore_category_id"`
}

func (h *CategoryHandler) CheckName(c *gin.Context) {
	var req CategoryCheckNameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.CheckName(paramID(c, "community_id"), req.Name, req.IgnoreCategoryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category name available"})
}

type CategoryCreateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	category, err := h.svc.Create(paramID(c, "community_id"), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": category})
}

func (h *CategoryHandler) Edit(c *gin.Context) {
	var req CategoryCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.Edit(paramID(c, "category_id"), req.Name, req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.UserID(c), paramID(c, "category_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

type MigratePostsReq struct {
	ToCategoryID uint64 `json:"to_category_id"`
}

func (h *CategoryHandler) MigratePosts(c *gin.Context) {
	var req MigratePostsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	moved, err := h.svc.MigratePosts(middleware.UserID(c), paramID(c, "category_id"), req.ToCategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Posts migrated successfully", "moved": moved})
}
