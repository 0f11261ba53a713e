package chathub

import (
	"encoding/json"
	"log"
	"time"

	"apittk/backend/internal/models"

	"github.com/gorilla/websocket"
)

// Скільки закешованих повідомлень відтворюється новому з'єднанню.
const replayCount = 10

// Максимальна довжина тексту повідомлення.
const MaxContentLen = 2000

// MessageStore — частина сховища, потрібна сесіям: перевірка членства
// та довговічний запис повідомлень.
type MessageStore interface {
	IsChatMember(chatID, userID uint) (bool, error)
	SaveMessage(msg *models.Message) error
}

// RecentCache — best-effort кеш нещодавніх повідомлень. Реалізація
// зобов'язана бути нешкідливою при недоступності кешу.
type RecentCache interface {
	PushRecent(chatID uint, payload []byte)
	Recent(chatID uint, limit int64) []string
}

// SessionManager володіє життєвим циклом живих з'єднань: допуск,
// відтворення нещодавньої історії, приймання вхідних повідомлень,
// персист, оновлення кешу та розсилка по реєстру.
type SessionManager struct {
	Store    MessageStore
	Cache    RecentCache
	Registry *ConnectionRegistry
}

// NewSessionManager Constructor
func NewSessionManager(store MessageStore, cache RecentCache, registry *ConnectionRegistry) *SessionManager {
	return &SessionManager{
		Store:    store,
		Cache:    cache,
		Registry: registry,
	}
}

// Serve веде одне WebSocket-з'єднання через стани
// допуск -> відтворення -> стрімінг -> закриття. Блокується до розриву.
func (m *SessionManager) Serve(conn *websocket.Conn, user *models.User, chatID uint) {
	// Допуск: не учасник — закриваємо з кодом 1008, не реєструючи.
	member, err := m.Store.IsChatMember(chatID, user.UserID)
	if err != nil {
		log.Printf("ERROR: membership check failed (user %d, chat %d): %v", user.UserID, chatID, err)
		closeWith(conn, websocket.CloseInternalServerErr, "internal error")
		return
	}
	if !member {
		closeWith(conn, websocket.ClosePolicyViolation, "not a chat member")
		return
	}

	client := NewWebSocketClient(conn, user.UserID, chatID)

	// Реєструємо до відтворення, щоб не пропустити конкурентні розсилки;
	// дублікати в кеш-шарі допустимі, пропуски — ні.
	m.Registry.Register(chatID, client)
	defer func() {
		m.Registry.Unregister(chatID, client)
		client.Close()
	}()

	go client.WritePump()

	m.replayRecent(client)

	// Стрімінг: блокуємось на наступному вхідному кадрі.
	for {
		content, err := client.ReadText()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("unexpected close (user %d, chat %d): %v", user.UserID, chatID, err)
			}
			return
		}

		if content == "" || len(content) > MaxContentLen {
			log.Printf("dropping invalid message from user %d (len %d)", user.UserID, len(content))
			continue
		}

		if _, err := m.Send(chatID, user, content); err != nil {
			// Збій персисту фатальний для операції: повідомлення не
			// розіслане, відправник бачить закриття з кодом 1011.
			client.CloseWithCode(websocket.CloseInternalServerErr, "failed to persist message")
			return
		}
	}
}

// Send — спільний шлях доставки для WebSocket-циклу та синхронного
// HTTP-ендпоінта: персист -> кеш -> розсилка. Авторизацію виконує викликач.
// Кеш і розсилка не виконуються для повідомлення, яке не вдалося зберегти.
func (m *SessionManager) Send(chatID uint, sender *models.User, content string) (models.MessageResponse, error) {
	msg := &models.Message{
		ChatID:  chatID,
		UserID:  sender.UserID,
		Content: content,
	}
	if err := m.Store.SaveMessage(msg); err != nil {
		return models.MessageResponse{}, err
	}

	resp := models.NewMessageResponse(msg, sender.Username)
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Printf("ERROR: failed to encode message %d: %v", msg.MessageID, err)
		return resp, nil
	}

	m.Cache.PushRecent(chatID, payload)
	m.Registry.Broadcast(chatID, payload)
	return resp, nil
}

// replayRecent видає новому з'єднанню до replayCount закешованих
// повідомлень у порядку відображення (найстаріше з пачки першим).
// Недоступність кешу пропускається мовчки.
func (m *SessionManager) replayRecent(client *WebSocketClient) {
	entries := m.Cache.Recent(client.ChatID(), replayCount)
	for i := len(entries) - 1; i >= 0; i-- {
		if !client.Deliver([]byte(entries[i])) {
			return
		}
	}
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		log.Printf("error writing close frame: %v", err)
	}
	conn.Close()
}
