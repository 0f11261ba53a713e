package storage

import (
	"apittk/backend/internal/models"
)

// CreateTask створює задачу.
func (s *Service) CreateTask(task *models.Task) error {
	return s.DB.Create(task).Error
}

// SaveTask зберігає зміни задачі.
func (s *Service) SaveTask(task *models.Task) error {
	return s.DB.Save(task).Error
}

// GetTaskByID повертає активну (не видалену) задачу.
func (s *Service) GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task
	err := s.DB.Where("id = ? AND is_deleted = ?", id, false).First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// ListTasks повертає активні задачі за необов'язковими фільтрами.
func (s *Service) ListTasks(f TaskFilter) ([]models.Task, error) {
	query := s.DB.Where("is_deleted = ?", false)
	if f.Title != "" {
		query = query.Where("title ILIKE ?", like(f.Title))
	}
	if f.AssigneeID != 0 {
		query = query.Where("assignee_id = ?", f.AssigneeID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}

	var tasks []models.Task
	if err := query.Limit(f.Limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// AddTaskHistory додає запис історії подій задачі.
func (s *Service) AddTaskHistory(entry *models.TaskHistory) error {
	return s.DB.Create(entry).Error
}

// CountTasksByStatus рахує активні задачі, згруповані за статусом.
func (s *Service) CountTasksByStatus() (map[models.TaskStatus]int64, error) {
	type row struct {
		Status models.TaskStatus
		Total  int64
	}

	var rows []row
	err := s.DB.Model(&models.Task{}).
		Select("status, count(*) as total").
		Where("is_deleted = ?", false).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}
