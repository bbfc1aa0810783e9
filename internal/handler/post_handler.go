package handler

import (
	"net/http"

	"seedy/internal/middleware"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc         *service.PostService
	commentSvc  *service.CommentService
	reactionSvc *service.ReactionService
}

func NewPostHandler(svc *service.PostService, commentSvc *service.CommentService, reactionSvc *service.ReactionService) *PostHandler {
	return &PostHandler{svc: svc, commentSvc: commentSvc, reactionSvc: reactionSvc}
}

// ListByCommunity pages a community's posts across all of its categories.
func (h *PostHandler) ListByCommunity(c *gin.Context) {
	posts, totalPages, err := h.svc.List(paramID(c, "community_id"), 0, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "totalPages": totalPages})
}

func (h *PostHandler) ListByCategory(c *gin.Context) {
	posts, totalPages, err := h.svc.List(0, paramID(c, "category_id"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "totalPages": totalPages})
}

// Get returns the post with its like and dislike tallies.
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.svc.Get(paramID(c, "post_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	likes, dislikes, err := h.reactionSvc.PostCounts(c.Request.Context(), post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "likes": likes, "dislikes": dislikes})
}

type PostCreateReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	post, err := h.svc.Create(middleware.UserID(c), paramID(c, "category_id"), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "post": post})
}

func (h *PostHandler) Edit(c *gin.Context) {
	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.Edit(middleware.UserID(c), paramID(c, "post_id"), req.Title, req.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.UserID(c), paramID(c, "post_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

type CommentCreateReq struct {
	Content string `json:"content"`
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	var req CommentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	comment, err := h.commentSvc.Create(middleware.UserID(c), paramID(c, "post_id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment created successfully", "comment": comment})
}

func (h *PostHandler) ListComments(c *gin.Context) {
	comments, err := h.commentSvc.ListWithReactions(paramID(c, "post_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	if err := h.commentSvc.Delete(middleware.UserID(c), paramID(c, "comment_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
