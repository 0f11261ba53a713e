package handler

import (
	"errors"
	"net/http"
	"strconv"

	"apittk/backend/internal/api/middleware"
	"apittk/backend/internal/models"
	"apittk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type chatCreateRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	MemberIDs []uint `json:"member_ids"`
}

type chatInviteRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type messageCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CreateChat створює чат; творець стає учасником автоматично,
// невідомі member ids мовчки пропускаються.
func (h *Handler) CreateChat(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req chatCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat := &models.Chat{Name: req.Name, CreatorID: user.UserID}
	if err := h.Store.CreateChat(chat, req.MemberIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat_id": chat.ChatID, "message": "Chat created successfully"})
}

// InviteToChat запрошує користувача. Запрошувати може лише творець чату;
// повторне запрошення — помилка, а не no-op.
func (h *Handler) InviteToChat(c *gin.Context) {
	user := middleware.CurrentUser(c)

	chatID, ok := parseIDParam(c, "chat_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	var req chatInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.Store.GetChatByID(chatID)
	if err != nil || chat.CreatorID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Chat not found or you are not the creator"})
		return
	}

	invited, err := h.Store.GetUserByID(req.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.Store.AddChatMember(chatID, req.UserID); err != nil {
		if errors.Is(err, storage.ErrAlreadyMember) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User " + invited.Username + " invited to chat"})
}

// SendMessage — синхронний шлях відправки: та сама послідовність
// авторизація -> персист -> кеш -> розсилка, що й у WebSocket-циклі.
func (h *Handler) SendMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	chatID, ok := parseIDParam(c, "chat_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	var req messageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.Store.IsChatMember(chatID, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this chat"})
		return
	}

	resp, err := h.Sessions.Send(chatID, user, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListChats повертає чати поточного користувача, впорядковані за назвою.
func (h *Handler) ListChats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	chats, err := h.Store.ListChatsForUser(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetChatHistory повертає сторінку історії (найстаріші спочатку в межах
// сторінки) та загальну кількість повідомлень. Завжди йде у сховище,
// кеш нещодавніх повідомлень тут не використовується.
func (h *Handler) GetChatHistory(c *gin.Context) {
	user := middleware.CurrentUser(c)

	chatID, ok := parseIDParam(c, "chat_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skip parameter"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	member, err := h.Store.IsChatMember(chatID, user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this chat"})
		return
	}

	messages, total, err := h.Store.GetChatHistory(chatID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":       messages,
		"total_messages": total,
		"skip":           skip,
		"limit":          limit,
	})
}
