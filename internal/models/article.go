package models

import "time"

// Article is a published text with an optional set of attached images.
// Deletion is soft and reversible via the restore endpoint.
type Article struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"size:5000;not null" json:"content"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	IsDeleted bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt *time.Time `json:"-"`

	Images []ArticleImage `gorm:"foreignKey:ArticleID" json:"images"`
}

// ArticleImage stores the path of an image attached to an article.
// File bytes live on disk; only the path is tracked here.
type ArticleImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArticleID uint   `gorm:"not null;index" json:"-"`
	ImagePath string `gorm:"size:255;not null" json:"image_path"`
}

// ArticleHistory keeps the title/content an article had before each change.
type ArticleHistory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ArticleID      uint      `gorm:"not null;index" json:"article_id"`
	UserID         uint      `gorm:"not null" json:"user_id"`
	Event          string    `gorm:"size:50;not null" json:"event"`
	ChangedTitle   string    `gorm:"size:255" json:"changed_title"`
	ChangedContent string    `gorm:"size:5000" json:"changed_content"`
	ChangedAt      time.Time `gorm:"autoCreateTime" json:"changed_at"`
}
