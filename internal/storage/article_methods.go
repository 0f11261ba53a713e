package storage

import (
	"apittk/backend/internal/models"
)

// CreateArticle створює статтю разом із прикріпленими зображеннями.
func (s *Service) CreateArticle(article *models.Article) error {
	return s.DB.Create(article).Error
}

// SaveArticle зберігає зміни статті (без зображень, див. ReplaceArticleImages).
func (s *Service) SaveArticle(article *models.Article) error {
	return s.DB.Omit("Images").Save(article).Error
}

// GetArticleByID повертає статтю з зображеннями. includeDeleted потрібен
// для ендпоінта відновлення.
func (s *Service) GetArticleByID(id uint, includeDeleted bool) (*models.Article, error) {
	query := s.DB.Preload("Images").Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var article models.Article
	if err := query.First(&article).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

// ListArticles повертає активні статті за необов'язковими фільтрами.
func (s *Service) ListArticles(f ArticleFilter) ([]models.Article, error) {
	query := s.DB.Preload("Images").Where("is_deleted = ?", false)
	if f.Title != "" {
		query = query.Where("title ILIKE ?", like(f.Title))
	}
	if f.AuthorID != 0 {
		query = query.Where("author_id = ?", f.AuthorID)
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}

	var articles []models.Article
	if err := query.Limit(f.Limit).Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// ReplaceArticleImages замінює весь список зображень статті новим.
func (s *Service) ReplaceArticleImages(articleID uint, paths []string) error {
	if err := s.DB.Where("article_id = ?", articleID).
		Delete(&models.ArticleImage{}).Error; err != nil {
		return err
	}
	for _, path := range paths {
		img := models.ArticleImage{ArticleID: articleID, ImagePath: path}
		if err := s.DB.Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

// AddArticleHistory додає запис історії змін статті.
func (s *Service) AddArticleHistory(entry *models.ArticleHistory) error {
	return s.DB.Create(entry).Error
}

// GetArticleHistory повертає історію змін, найновіші спочатку.
func (s *Service) GetArticleHistory(articleID uint) ([]models.ArticleHistory, error) {
	var history []models.ArticleHistory
	err := s.DB.Where("article_id = ?", articleID).
		Order("changed_at desc").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
