package models

import "time"

// Ідентифікатори ролей, які сидяться при старті застосунку.
const (
	RoleUser  uint = 1
	RoleAdmin uint = 2
)

// Role represents a user role (regular user or administrator).
type Role struct {
	RoleID   uint   `gorm:"primaryKey" json:"role_id"`
	RoleName string `gorm:"size:50;not null" json:"role_name"`
}

// User represents a registered account.
// Deletion is soft: the row stays, IsDeleted is flipped.
type User struct {
	UserID         uint       `gorm:"primaryKey" json:"user_id"`
	Username       string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FullName       string     `gorm:"size:100;not null" json:"full_name"`
	Email          string     `gorm:"size:320;uniqueIndex;not null" json:"email"`
	HashedPassword string     `gorm:"size:1024;not null" json:"-"`
	Avatar         string     `gorm:"size:255" json:"avatar,omitempty"`
	RoleID         uint       `gorm:"not null;default:1" json:"role_id"`
	RegisteredAt   time.Time  `gorm:"autoCreateTime" json:"registered_at"`
	IsDeleted      bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt      *time.Time `json:"-"`

	Role *Role `gorm:"foreignKey:RoleID" json:"-"`
}

// IsAdmin повертає true, якщо користувач має роль адміністратора.
func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}
