package handler_test

import (
	"apittk/backend/internal/models"
	"apittk/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) IsUsernameTaken(username string, excludeID uint) (bool, error) {
	args := m.Called(username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) IsEmailTaken(email string, excludeID uint) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SearchUsers(f storage.UserFilter) ([]models.User, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) SoftDeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CreateArticle(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockStorage) SaveArticle(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockStorage) GetArticleByID(id uint, includeDeleted bool) (*models.Article, error) {
	args := m.Called(id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockStorage) ListArticles(f storage.ArticleFilter) ([]models.Article, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *MockStorage) ReplaceArticleImages(articleID uint, paths []string) error {
	args := m.Called(articleID, paths)
	return args.Error(0)
}

func (m *MockStorage) AddArticleHistory(entry *models.ArticleHistory) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStorage) GetArticleHistory(articleID uint) ([]models.ArticleHistory, error) {
	args := m.Called(articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ArticleHistory), args.Error(1)
}

func (m *MockStorage) CreateTask(task *models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockStorage) SaveTask(task *models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockStorage) GetTaskByID(id uint) (*models.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockStorage) ListTasks(f storage.TaskFilter) ([]models.Task, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockStorage) AddTaskHistory(entry *models.TaskHistory) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStorage) CountTasksByStatus() (map[models.TaskStatus]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.TaskStatus]int64), args.Error(1)
}

func (m *MockStorage) CreateChat(chat *models.Chat, memberIDs []uint) error {
	args := m.Called(chat, memberIDs)
	return args.Error(0)
}

func (m *MockStorage) GetChatByID(chatID uint) (*models.Chat, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) IsChatMember(chatID, userID uint) (bool, error) {
	args := m.Called(chatID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) AddChatMember(chatID, userID uint) error {
	args := m.Called(chatID, userID)
	return args.Error(0)
}

func (m *MockStorage) ListChatsForUser(userID uint) ([]models.Chat, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chat), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetChatHistory(chatID uint, skip, limit int) ([]models.MessageResponse, int64, error) {
	args := m.Called(chatID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.MessageResponse), args.Get(1).(int64), args.Error(2)
}
