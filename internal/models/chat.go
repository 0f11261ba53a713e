package models

import "time"

// Chat is a named container of memberships and messages.
// The name is immutable after creation; chats are never deleted.
type Chat struct {
	ChatID    uint      `gorm:"primaryKey" json:"chat_id"`
	Name      string    `gorm:"size:100;not null" json:"chat_name"`
	CreatorID uint      `gorm:"not null;index" json:"creator_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ChatMember is the join relation authorizing a user to read/write a chat.
// The (chat_id, user_id) pair is unique: a duplicate invite is an error.
type ChatMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ChatID   uint      `gorm:"not null;uniqueIndex:idx_chat_user" json:"chat_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_chat_user" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Message is an immutable chat message. CreatedAt is assigned by the server
// on insert and is the ordering authority for the history endpoint.
type Message struct {
	MessageID uint      `gorm:"primaryKey" json:"message_id"`
	ChatID    uint      `gorm:"not null;index:idx_chat_created" json:"chat_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"size:2000;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_chat_created" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
