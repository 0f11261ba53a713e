package handler

import (
	"net/http"
	"strconv"

	"apittk/backend/internal/api/middleware"
	"apittk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// profileUpdateRequest — patch власного профілю. Поле-вказівник відрізняє
// "відсутнє" від "присутнє зі значенням".
type profileUpdateRequest struct {
	Username *string `json:"username" binding:"omitempty,max=50"`
}

// GetProfile повертає профіль поточного користувача.
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateProfile оновлює власний профіль. Унікальність імені
// перевіряється повторно перед записом.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != nil && *req.Username != user.Username {
		if !usernameRe.MatchString(*req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must contain only latin letters"})
			return
		}
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

	if err := h.Store.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// GetUserProfile повертає профіль іншого користувача за ідентифікатором.
func (h *Handler) GetUserProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.Store.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// SearchUsers шукає користувачів за необов'язковими фільтрами.
func (h *Handler) SearchUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	roleID, _ := strconv.ParseUint(c.Query("role_id"), 10, 32)

	users, err := h.Store.SearchUsers(storage.UserFilter{
		Username: c.Query("username"),
		FullName: c.Query("full_name"),
		Email:    c.Query("email"),
		RoleID:   uint(roleID),
		Limit:    limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, users)
}
