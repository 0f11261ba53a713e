package models

import "time"

// MessageResponse — серіалізована форма повідомлення. Один і той самий
// формат використовується для історії, кешу нещодавніх повідомлень та
// розсилки по живих з'єднаннях.
type MessageResponse struct {
	MessageID uint      `json:"message_id"`
	ChatID    uint      `json:"chat_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessageResponse будує відповідь із збереженого повідомлення.
// Ім'я відправника передається окремо, бо модель Message його не завжди тягне.
func NewMessageResponse(msg *Message, username string) MessageResponse {
	return MessageResponse{
		MessageID: msg.MessageID,
		ChatID:    msg.ChatID,
		UserID:    msg.UserID,
		Username:  username,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
