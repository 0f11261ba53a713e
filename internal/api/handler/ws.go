package handler

import (
	"net/http"

	"apittk/backend/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket і передає його
// менеджеру сесій. Перевірку членства виконує сам менеджер (код 1008
// для не-учасника), тому тут лише автентифікація та upgrade.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	user := middleware.CurrentUser(c)

	chatID, ok := parseIDParam(c, "chat_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade сам пише відповідь при помилці.
		return
	}

	// Блокується до розриву з'єднання.
	h.Sessions.Serve(conn, user, chatID)
}
