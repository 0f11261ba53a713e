package chathub

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Константи таймаутів WebSocket-з'єднання.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// WebSocketClient реалізує інтерфейс chathub.Client поверх gorilla/websocket.
type WebSocketClient struct {
	userID uint
	chatID uint
	conn   *websocket.Conn

	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewWebSocketClient обгортає прийняте з'єднання. Викликач зобов'язаний
// запустити WritePump у власній goroutine.
func NewWebSocketClient(conn *websocket.Conn, userID, chatID uint) *WebSocketClient {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	return &WebSocketClient{
		userID: userID,
		chatID: chatID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

func (c *WebSocketClient) UserID() uint { return c.userID }
func (c *WebSocketClient) ChatID() uint { return c.chatID }

// Deliver ставить повідомлення в чергу на відправку, не блокуючись.
// false означає, що клієнт закритий або його буфер переповнений.
func (c *WebSocketClient) Deliver(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- payload:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// Close закриває з'єднання. Канал done зупиняє WritePump; send не
// закривається, щоб конкурентний Deliver не панікував.
func (c *WebSocketClient) Close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// CloseWithCode надсилає кадр закриття з кодом і завершує з'єднання.
func (c *WebSocketClient) CloseWithCode(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		log.Printf("error writing close frame for user %d: %v", c.userID, err)
	}
	c.Close()
}

// ReadText блокується до наступного текстового кадру від клієнта.
func (c *WebSocketClient) ReadText() (string, error) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return string(data), nil
	}
}

// WritePump читає повідомлення з каналу send і записує їх у WebSocket.
// Пінгує клієнта кожен pingPeriod для підтримки з'єднання активним.
func (c *WebSocketClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(payload)

			// Перевіряємо, чи є ще повідомлення у каналі (для ефективності)
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
