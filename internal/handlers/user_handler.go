package handlers

import (
	"net/http"

	"backoffice/internal/models"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes admin-only user management.
type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		RoleID   uint   `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "username, email, password and role are required")
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		RoleID:   req.RoleID,
		IsActive: true,
	}
	if err := h.userService.CreateUser(user, req.Password); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	respondOK(c, "user created", gin.H{"user": user})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load users")
		return
	}
	respondOK(c, "ok", gin.H{"users": users})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	var req struct {
		Email    *string `json:"email"`
		RoleID   *uint   `json:"role_id"`
		IsActive *bool   `json:"is_active"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request format")
		return
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := h.userService.UpdateUser(user); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update user")
		return
	}
	if req.Password != nil && *req.Password != "" {
		if err := h.userService.SetPassword(id, *req.Password); err != nil {
			respondError(c, http.StatusInternalServerError, "failed to update password")
			return
		}
	}
	respondOK(c, "user updated", gin.H{"user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}
	respondOK(c, "user deleted", nil)
}
