package handler

import (
	"net/http"

	"seedy/internal/middleware"
	"seedy/internal/repository/mysql"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	svc *service.ReactionService
}

func NewReactionHandler(svc *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

type ReactReq struct {
	ReactionType string `json:"reaction_type"`
}

func (h *ReactionHandler) ReactToPost(c *gin.Context) {
	var req ReactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	outcome, err := h.svc.ReactToPost(c.Request.Context(), middleware.UserID(c), paramID(c, "post_id"), req.ReactionType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondToggle(c, outcome)
}

func (h *ReactionHandler) ReactToComment(c *gin.Context) {
	var req ReactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	outcome, err := h.svc.ReactToComment(c.Request.Context(), middleware.UserID(c), paramID(c, "comment_id"), req.ReactionType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondToggle(c, outcome)
}

func respondToggle(c *gin.Context, outcome mysql.ToggleOutcome) {
	switch outcome {
	case mysql.ToggleCreated:
		c.JSON(http.StatusCreated, gin.H{"message": "Reaction created"})
	case mysql.ToggleRemoved:
		c.JSON(http.StatusOK, gin.H{"message": "Reaction removed"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Reaction switched"})
	}
}
