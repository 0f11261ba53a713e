package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"apittk/backend/internal/api/handler"
	"apittk/backend/internal/api/middleware"
	"apittk/backend/internal/chathub"
	"apittk/backend/internal/config"
	"apittk/backend/internal/models"
	"apittk/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis. Недоступність не фатальна: кеш нещодавніх повідомлень
	// просто вимикається, сервіс працює лише зі сховищем.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("WARNING: Redis unavailable, recent-message cache disabled: %v", err)
		rdb = nil
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Article{},
		&models.ArticleImage{},
		&models.ArticleHistory{},
		&models.Task{},
		&models.TaskHistory{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database connection established, migrations complete.")
	return db, rdb
}

// seedDefaults створює ролі за замовчуванням і стандартного адміністратора,
// якщо їх ще немає.
func seedDefaults(db *gorm.DB) {
	var roleCount int64
	if err := db.Model(&models.Role{}).Count(&roleCount).Error; err != nil {
		log.Fatalf("Failed to check roles: %v", err)
	}
	if roleCount == 0 {
		roles := []models.Role{
			{RoleID: models.RoleUser, RoleName: "user"},
			{RoleID: models.RoleAdmin, RoleName: "admin"},
		}
		if err := db.Create(&roles).Error; err != nil {
			log.Fatalf("Failed to seed roles: %v", err)
		}
		log.Println("Default roles created.")
	}

	adminEmail := os.Getenv("DEFAULT_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}

	var adminCount int64
	if err := db.Model(&models.User{}).Where("email = ?", adminEmail).Count(&adminCount).Error; err != nil {
		log.Fatalf("Failed to check default admin: %v", err)
	}
	if adminCount == 0 {
		password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
		if password == "" {
			password = "string111"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash default admin password: %v", err)
		}
		admin := models.User{
			Username:       "admin",
			FullName:       "Default Administrator",
			Email:          adminEmail,
			HashedPassword: string(hashed),
			RoleID:         models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to seed default admin: %v", err)
		}
		log.Println("Default administrator created.")
	}
}

func main() {
	log.Println("Starting APITTK Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	seedDefaults(db)

	s := storage.NewStorageService(db)
	cache := storage.NewMessageCache(rdb)

	// 2. Реєстр з'єднань та менеджер сесій — явні екземпляри, не глобали.
	registry := chathub.NewConnectionRegistry()
	sessions := chathub.NewSessionManager(s, cache, registry)

	// 3. Налаштування Gin та роутингу
	r := gin.Default()
	r.Use(middleware.RequestID())

	h := handler.NewHandler(s, sessions, cfg)
	auth := middleware.RequireAuth(s, cfg.SecretKey)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}

	userGroup := r.Group("/user", auth)
	{
		userGroup.GET("/profile", h.GetProfile)
		userGroup.PUT("/profile", h.UpdateProfile)
		userGroup.GET("/profile/:user_id", h.GetUserProfile)
		userGroup.GET("/search", h.SearchUsers)
	}

	adminGroup := r.Group("/admin", auth)
	{
		adminGroup.GET("/users", h.ListUsers)
		adminGroup.PUT("/users/:user_id", h.UpdateUser)
		adminGroup.PUT("/users/:user_id/password", h.UpdateUserPassword)
		adminGroup.DELETE("/users/:user_id", h.DeleteUser)
	}

	articleGroup := r.Group("/articles", auth)
	{
		articleGroup.GET("", h.ListArticles)
		articleGroup.POST("", h.CreateArticle)
		articleGroup.PUT("/:id", h.UpdateArticle)
		articleGroup.DELETE("/:id", h.DeleteArticle)
		articleGroup.POST("/:id/restore", h.RestoreArticle)
		articleGroup.GET("/:id/history", h.GetArticleHistory)
	}

	taskGroup := r.Group("/tasks", auth)
	{
		taskGroup.POST("", h.CreateTask)
		taskGroup.GET("", h.ListTasks)
		taskGroup.GET("/counts", h.GetTaskCounts)
		taskGroup.PUT("/:id", h.UpdateTask)
		taskGroup.PUT("/:id/status", h.UpdateTaskStatus)
	}

	chatGroup := r.Group("/chat", auth)
	{
		chatGroup.POST("/create", h.CreateChat)
		chatGroup.GET("/list", h.ListChats)
		chatGroup.POST("/:chat_id/invite", h.InviteToChat)
		chatGroup.POST("/:chat_id/send", h.SendMessage)
		chatGroup.GET("/:chat_id/history", h.GetChatHistory)
		chatGroup.GET("/:chat_id/ws", h.ServeWebSocket)
	}

	// Запуск HTTP-сервера
	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.ListenAddr)
	log.Fatal(server.ListenAndServe())
}
