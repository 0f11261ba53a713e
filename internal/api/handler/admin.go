package handler

import (
	"net/http"
	"strconv"

	"apittk/backend/internal/api/middleware"
	"apittk/backend/internal/models"
	"apittk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// adminUserUpdateRequest — patch користувача адміністратором. Кожне поле
// або відсутнє, або присутнє зі значенням; поля з обмеженням унікальності
// перевіряються повторно перед застосуванням.
type adminUserUpdateRequest struct {
	Username *string `json:"username" binding:"omitempty,max=50"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=320"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=255"`
	RoleID   *uint   `json:"role_id"`
}

// requireAdmin відхиляє запит, якщо поточний користувач не адміністратор.
func requireAdmin(c *gin.Context) *models.User {
	user := middleware.CurrentUser(c)
	if user == nil || !user.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return nil
	}
	return user
}

// ListUsers повертає користувачів (з фільтром за роллю).
func (h *Handler) ListUsers(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	roleID, _ := strconv.ParseUint(c.Query("role"), 10, 32)

	users, err := h.Store.SearchUsers(storage.UserFilter{RoleID: uint(roleID), Limit: limit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser редагує користувача. Інших адміністраторів чіпати не можна,
// роль адміністратора через цей ендпоінт не призначається.
func (h *Handler) UpdateUser(c *gin.Context) {
	admin := requireAdmin(c)
	if admin == nil {
		return
	}

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req adminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.IsAdmin() && user.UserID != admin.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot edit other administrators"})
		return
	}

	if req.Username != nil {
		taken, err := h.Store.IsUsernameTaken(*req.Username, user.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		taken, err := h.Store.IsEmailTaken(*req.Email, user.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		user.Email = *req.Email
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.RoleID != nil {
		if *req.RoleID == models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot grant administrator role via this endpoint"})
			return
		}
		user.RoleID = *req.RoleID
	}

	if err := h.Store.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUserPassword перевстановлює пароль користувача.
func (h *Handler) UpdateUserPassword(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	newPassword := c.Query("new_password")
	if len(newPassword) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
		return
	}

	user, err := h.Store.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.HashedPassword = hashed

	if err := h.Store.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteUser м'яко видаляє користувача.
func (h *Handler) DeleteUser(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if err := h.Store.SoftDeleteUser(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User marked as deleted"})
}
