package handler

import (
	"net/http"
	"regexp"
	"time"

	"apittk/backend/internal/api/middleware"
	"apittk/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z]+$`)
	passwordRe = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]+$`)
)

type registerRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// generateJWT генерує access-токен з email користувача в claim sub.
func (h *Handler) generateJWT(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(h.Cfg.AccessTokenTTL).Unix(),
		"iss": "apittk-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Cfg.SecretKey))
}

func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.AuthCookieName, token, int(h.Cfg.AccessTokenTTL.Seconds()), "/", "", false, true)
}

// hashPassword хешує пароль bcrypt-ом зі стандартною вартістю.
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func verifyPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// Register створює нового користувача і видає токен.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !usernameRe.MatchString(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must contain only latin letters"})
		return
	}
	if !passwordRe.MatchString(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must contain only latin letters, digits and symbols (!@#$%^&*)"})
		return
	}

	// Унікальність email та імені перевіряємо до створення.
	if taken, err := h.Store.IsEmailTaken(req.Email, 0); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	} else if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already registered"})
		return
	}
	if taken, err := h.Store.IsUsernameTaken(req.Username, 0); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	} else if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already registered"})
		return
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := &models.User{
		Username:       req.Username,
		FullName:       req.FullName,
		Email:          req.Email,
		HashedPassword: hashed,
		RoleID:         models.RoleUser,
	}
	if err := h.Store.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := h.generateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	h.setAuthCookie(c, token)

	c.JSON(http.StatusCreated, user)
}

// Login перевіряє облікові дані та видає токен.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if err != nil || !verifyPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.generateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	h.setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully", "status": "success", "token": token})
}

// Logout прибирає auth cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
