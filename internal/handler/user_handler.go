package handler

import (
	"net/http"

	"seedy/internal/middleware"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type RegisterReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Picture  string `json:"picture"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.Register(req.Username, req.Email, req.Password, req.Picture); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	token, user, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type CheckFieldReq struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	IgnoreUserID uint64 `json:"ignore_user_id"`
}

func (h *UserHandler) CheckUsername(c *gin.Context) {
	var req CheckFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.CheckUsername(req.Username, req.IgnoreUserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Username available"})
}

func (h *UserHandler) CheckEmail(c *gin.Context) {
	var req CheckFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.CheckEmail(req.Email, req.IgnoreUserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email available"})
}

type ForgotPasswordReq struct {
	Email string `json:"email"`
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.ForgotPassword(req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent with instructions to reset password"})
}

type ResetPasswordReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

type ChangePasswordReq struct {
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.svc.ChangePassword(middleware.UserID(c), req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

type EditUserReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Picture  string `json:"picture"`
}

// Edit updates the caller's own profile; editing someone else is forbidden.
func (h *UserHandler) Edit(c *gin.Context) {
	targetID := paramID(c, "user_id")
	if targetID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have the necessary permissions to do that."})
		return
	}
	var req EditUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	user, err := h.svc.EditProfile(targetID, req.Username, req.Email, req.Picture)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user.Public()})
}
