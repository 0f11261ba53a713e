package storage

import (
	"errors"
	"log"

	"apittk/backend/internal/models"

	"gorm.io/gorm"
)

// CreateChat створює чат і членства однією транзакцією. Творець стає
// учасником автоматично; невідомі member ids мовчки пропускаються.
func (s *Service) CreateChat(chat *models.Chat, memberIDs []uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.ChatMember{ChatID: chat.ChatID, UserID: chat.CreatorID}).Error; err != nil {
			return err
		}

		for _, memberID := range memberIDs {
			if memberID == chat.CreatorID {
				continue
			}

			// Додаємо лише існуючих активних користувачів.
			var count int64
			if err := tx.Model(&models.User{}).
				Where("user_id = ? AND is_deleted = ?", memberID, false).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				log.Printf("CreateChat: skipping unknown member id %d", memberID)
				continue
			}

			member := models.ChatMember{ChatID: chat.ChatID, UserID: memberID}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetChatByID повертає чат за ідентифікатором.
func (s *Service) GetChatByID(chatID uint) (*models.Chat, error) {
	var chat models.Chat
	if err := s.DB.Where("chat_id = ?", chatID).First(&chat).Error; err != nil {
		return nil, translate(err)
	}
	return &chat, nil
}

// IsChatMember перевіряє членство. Відсутність рядка — це false, не помилка.
func (s *Service) IsChatMember(chatID, userID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddChatMember додає користувача до чату. Повторне запрошення — помилка.
func (s *Service) AddChatMember(chatID, userID uint) error {
	existing, err := s.IsChatMember(chatID, userID)
	if err != nil {
		return err
	}
	if existing {
		return ErrAlreadyMember
	}
	return s.DB.Create(&models.ChatMember{ChatID: chatID, UserID: userID}).Error
}

// ListChatsForUser повертає чати користувача, впорядковані за назвою.
func (s *Service) ListChatsForUser(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.DB.
		Joins("JOIN chat_members ON chat_members.chat_id = chats.chat_id").
		Where("chat_members.user_id = ?", userID).
		Order("chats.name").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// SaveMessage зберігає повідомлення; MessageID та CreatedAt заповнює БД.
// Запис у сховище мусить завершитись успішно до будь-якої розсилки.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for chat %d: %v", msg.ChatID, err)
		return err
	}
	return nil
}

// GetChatHistory повертає сторінку історії (найстаріші спочатку в межах
// сторінки) та повну кількість повідомлень у чаті. Сховище сортує за часом
// створення за спаданням, бере skip..skip+limit, потім сторінка розвертається.
func (s *Service) GetChatHistory(chatID uint, skip, limit int) ([]models.MessageResponse, int64, error) {
	var messages []models.Message
	err := s.DB.Preload("User").
		Where("chat_id = ?", chatID).
		Order("created_at desc").
		Order("message_id desc").
		Offset(skip).
		Limit(limit).
		Find(&messages).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, err
	}

	var total int64
	if err := s.DB.Model(&models.Message{}).
		Where("chat_id = ?", chatID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Розвертаємо сторінку: клієнт читає від старих до нових.
	responses := make([]models.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		username := "unknown"
		if messages[i].User != nil {
			username = messages[i].User.Username
		}
		responses = append(responses, models.NewMessageResponse(&messages[i], username))
	}

	return responses, total, nil
}
