package storage

import (
	"fmt"
	"time"

	"apittk/backend/internal/models"
)

// CreateUser створює нового користувача в PostgreSQL.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// SaveUser зберігає зміни профілю користувача.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID повертає активного (не видаленого) користувача.
func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.Where("user_id = ? AND is_deleted = ?", id, false).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByEmail повертає активного користувача за email. Використовується
// для логіну та для резолву особи з JWT.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// IsUsernameTaken перевіряє унікальність імені, ігноруючи excludeID
// (щоб користувач міг "оновити" власне ім'я на те саме).
func (s *Service) IsUsernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.User{}).
		Where("username = ? AND user_id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

// IsEmailTaken перевіряє унікальність email, ігноруючи excludeID.
func (s *Service) IsEmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.User{}).
		Where("email = ? AND user_id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// SearchUsers шукає активних користувачів за необов'язковими фільтрами.
func (s *Service) SearchUsers(f UserFilter) ([]models.User, error) {
	query := s.DB.Where("is_deleted = ?", false)
	if f.Username != "" {
		query = query.Where("username ILIKE ?", like(f.Username))
	}
	if f.FullName != "" {
		query = query.Where("full_name ILIKE ?", like(f.FullName))
	}
	if f.Email != "" {
		query = query.Where("email ILIKE ?", like(f.Email))
	}
	if f.RoleID != 0 {
		query = query.Where("role_id = ?", f.RoleID)
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}

	var users []models.User
	if err := query.Limit(f.Limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SoftDeleteUser помічає користувача як видаленого, рядок залишається.
func (s *Service) SoftDeleteUser(id uint) error {
	now := time.Now()
	result := s.DB.Model(&models.User{}).
		Where("user_id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func like(s string) string {
	return fmt.Sprintf("%%%s%%", s)
}
