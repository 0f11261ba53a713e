package handler_test

import (
	"net/http"
	"testing"
	"time"

	"apittk/backend/internal/models"
	"apittk/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateChat(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("CreateChat", mock.AnythingOfType("*models.Chat"), []uint{2, 3}).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Chat).ChatID = 5
		}).Return(nil)

	w := doJSON(r, http.MethodPost, "/chat/create", map[string]interface{}{
		"name":       "project chat",
		"member_ids": []uint{2, 3},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(5), body["chat_id"])
	store.AssertCalled(t, "CreateChat", mock.AnythingOfType("*models.Chat"), []uint{2, 3})
}

func TestInviteToChat_NotCreator(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("GetChatByID", uint(5)).Return(&models.Chat{ChatID: 5, CreatorID: 99}, nil)

	w := doJSON(r, http.MethodPost, "/chat/5/invite", map[string]interface{}{"user_id": 2})

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "AddChatMember", mock.Anything, mock.Anything)
}

func TestInviteToChat_AlreadyMember(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("GetChatByID", uint(5)).Return(&models.Chat{ChatID: 5, CreatorID: 1}, nil)
	store.On("GetUserByID", uint(2)).Return(&models.User{UserID: 2, Username: "bob"}, nil)
	store.On("AddChatMember", uint(5), uint(2)).Return(storage.ErrAlreadyMember)

	w := doJSON(r, http.MethodPost, "/chat/5/invite", map[string]interface{}{"user_id": 2})

	// Повторне запрошення — помилка, а не no-op.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User is already a member", decodeBody(t, w)["error"])
}

func TestInviteToChat_Success(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("GetChatByID", uint(5)).Return(&models.Chat{ChatID: 5, CreatorID: 1}, nil)
	store.On("GetUserByID", uint(2)).Return(&models.User{UserID: 2, Username: "bob"}, nil)
	store.On("AddChatMember", uint(5), uint(2)).Return(nil)

	w := doJSON(r, http.MethodPost, "/chat/5/invite", map[string]interface{}{"user_id": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "bob")
}

func TestSendMessage_NotMember(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("IsChatMember", uint(5), uint(1)).Return(false, nil)

	w := doJSON(r, http.MethodPost, "/chat/5/send", map[string]interface{}{"content": "hello"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "SaveMessage", mock.Anything)
}

func TestSendMessage_Success(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("IsChatMember", uint(5), uint(1)).Return(true, nil)
	store.On("SaveMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Message).MessageID = 42
		}).Return(nil)

	w := doJSON(r, http.MethodPost, "/chat/5/send", map[string]interface{}{"content": "hello"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(42), body["message_id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "hello", body["content"])
}

func TestGetChatHistory(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	messages := []models.MessageResponse{
		{MessageID: 11, ChatID: 5, UserID: 2, Username: "bob", Content: "first", CreatedAt: time.Now()},
		{MessageID: 12, ChatID: 5, UserID: 1, Username: "alice", Content: "second", CreatedAt: time.Now()},
	}
	store.On("IsChatMember", uint(5), uint(1)).Return(true, nil)
	store.On("GetChatHistory", uint(5), 10, 50).Return(messages, int64(120), nil)

	w := doJSON(r, http.MethodGet, "/chat/5/history?skip=10&limit=50", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(120), body["total_messages"])
	assert.Equal(t, float64(10), body["skip"])
	assert.Equal(t, float64(50), body["limit"])
	assert.Len(t, body["messages"], 2)
}

func TestGetChatHistory_BadPagination(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	for _, path := range []string{
		"/chat/5/history?skip=-1",
		"/chat/5/history?limit=0",
		"/chat/5/history?limit=201",
		"/chat/5/history?limit=abc",
	} {
		w := doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
	store.AssertNotCalled(t, "GetChatHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetChatHistory_NotMember(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("IsChatMember", uint(5), uint(1)).Return(false, nil)

	w := doJSON(r, http.MethodGet, "/chat/5/history", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "GetChatHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestListChats(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)
	user := &models.User{UserID: 1, Username: "alice"}
	r := newTestRouter(h, user)

	store.On("ListChatsForUser", uint(1)).Return([]models.Chat{
		{ChatID: 5, Name: "alpha", CreatorID: 1},
		{ChatID: 6, Name: "beta", CreatorID: 2},
	}, nil)

	w := doJSON(r, http.MethodGet, "/chat/list", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["chats"], 2)
}
