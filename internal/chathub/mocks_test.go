package chathub_test

import (
	"apittk/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) IsChatMember(chatID, userID uint) (bool, error) {
	args := m.Called(chatID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) PushRecent(chatID uint, payload []byte) {
	m.Called(chatID, payload)
}

func (m *MockCache) Recent(chatID uint, limit int64) []string {
	args := m.Called(chatID, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}
