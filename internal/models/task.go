package models

import "time"

// TaskStatus — стан задачі. Перехід між станами обмежений, див. CanTransitionTo.
type TaskStatus string

const (
	TaskActive    TaskStatus = "ACTIVE"
	TaskPostponed TaskStatus = "POSTPONED"
	TaskCompleted TaskStatus = "COMPLETED"
)

// TaskPriority — пріоритет задачі.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskActive, TaskPostponed, TaskCompleted:
		return true
	}
	return false
}

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// CanTransitionTo перевіряє дозволений перехід статусу:
// відкласти можна лише поточну задачу, виконати — поточну або відкладену,
// повернути в роботу — відкладену або виконану.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch next {
	case TaskPostponed:
		return s == TaskActive
	case TaskCompleted:
		return s == TaskActive || s == TaskPostponed
	case TaskActive:
		return s == TaskPostponed || s == TaskCompleted
	}
	return false
}

// Task is a tracked unit of work assigned by one user to another.
type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"size:5000" json:"description"`
	Status      TaskStatus   `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	Priority    TaskPriority `gorm:"size:20;not null;default:MEDIUM" json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	AuthorID    uint         `gorm:"not null;index" json:"author_id"`
	AssigneeID  uint         `gorm:"not null;index" json:"assignee_id"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	IsDeleted   bool         `gorm:"not null;default:false" json:"-"`
	DeletedAt   *time.Time   `json:"-"`
}

// TaskHistory records create/update/status_update events on a task.
type TaskHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Event     string    `gorm:"size:50;not null" json:"event"`
	ChangedAt time.Time `gorm:"autoCreateTime" json:"changed_at"`
}
