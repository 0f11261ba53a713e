package storage

import (
	"context"
	"errors"

	"apittk/backend/internal/models"

	"gorm.io/gorm"
)

// Sentinel-помилки рівня сховища. Хендлери транслюють їх у HTTP-коди.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrNotMember     = errors.New("user is not a chat member")
	ErrNotCreator    = errors.New("user is not the chat creator")
	ErrAlreadyMember = errors.New("user is already a chat member")
)

// UserFilter describes the optional filters of the user search endpoints.
type UserFilter struct {
	Username string
	FullName string
	Email    string
	RoleID   uint
	Limit    int
}

// ArticleFilter describes the optional filters of the article list endpoint.
type ArticleFilter struct {
	Title    string
	AuthorID uint
	Limit    int
}

// TaskFilter describes the optional filters of the task list endpoint.
type TaskFilter struct {
	Title      string
	AssigneeID uint
	Status     models.TaskStatus
	Limit      int
}

// Storage — контракт доступу до авторитетного сховища (PostgreSQL).
// Кеш нещодавніх повідомлень живе окремо, див. MessageCache.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	IsUsernameTaken(username string, excludeID uint) (bool, error)
	IsEmailTaken(email string, excludeID uint) (bool, error)
	SearchUsers(f UserFilter) ([]models.User, error)
	SoftDeleteUser(id uint) error

	// Articles
	CreateArticle(article *models.Article) error
	SaveArticle(article *models.Article) error
	GetArticleByID(id uint, includeDeleted bool) (*models.Article, error)
	ListArticles(f ArticleFilter) ([]models.Article, error)
	ReplaceArticleImages(articleID uint, paths []string) error
	AddArticleHistory(entry *models.ArticleHistory) error
	GetArticleHistory(articleID uint) ([]models.ArticleHistory, error)

	// Tasks
	CreateTask(task *models.Task) error
	SaveTask(task *models.Task) error
	GetTaskByID(id uint) (*models.Task, error)
	ListTasks(f TaskFilter) ([]models.Task, error)
	AddTaskHistory(entry *models.TaskHistory) error
	CountTasksByStatus() (map[models.TaskStatus]int64, error)

	// Chats
	CreateChat(chat *models.Chat, memberIDs []uint) error
	GetChatByID(chatID uint) (*models.Chat, error)
	IsChatMember(chatID, userID uint) (bool, error)
	AddChatMember(chatID, userID uint) error
	ListChatsForUser(userID uint) ([]models.Chat, error)
	SaveMessage(msg *models.Message) error
	GetChatHistory(chatID uint, skip, limit int) ([]models.MessageResponse, int64, error)
}

// Service реалізує Storage поверх gorm. Redis-клієнт передається далі
// у MessageCache; сам Service його не використовує.
type Service struct {
	DB  *gorm.DB
	Ctx context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB) *Service {
	return &Service{
		DB:  db,
		Ctx: context.Background(),
	}
}

var _ Storage = (*Service)(nil)

// translate нормалізує помилки gorm до sentinel-помилок пакета.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
