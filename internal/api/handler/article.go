package handler

import (
	"net/http"
	"strconv"

	"apittk/backend/internal/api/middleware"
	"apittk/backend/internal/models"
	"apittk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type articleCreateRequest struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Content    string   `json:"content" binding:"required,max=5000"`
	ImagePaths []string `json:"image_paths"`
}

// articleUpdateRequest — patch статті. nil-поле означає "не змінювати";
// не-nil ImagePaths повністю замінює список зображень.
type articleUpdateRequest struct {
	Title      *string   `json:"title" binding:"omitempty,max=255"`
	Content    *string   `json:"content" binding:"omitempty,max=5000"`
	ImagePaths *[]string `json:"image_paths"`
}

// canEditArticle: редагувати може автор або адміністратор.
func canEditArticle(user *models.User, article *models.Article) bool {
	return article.AuthorID == user.UserID || user.IsAdmin()
}

// ListArticles повертає активні статті за фільтрами.
func (h *Handler) ListArticles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	authorID, _ := strconv.ParseUint(c.Query("author_id"), 10, 32)

	articles, err := h.Store.ListArticles(storage.ArticleFilter{
		Title:    c.Query("title"),
		AuthorID: uint(authorID),
		Limit:    limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// CreateArticle створює статтю зі списком шляхів зображень.
func (h *Handler) CreateArticle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req articleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article := &models.Article{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: user.UserID,
	}
	for _, path := range req.ImagePaths {
		article.Images = append(article.Images, models.ArticleImage{ImagePath: path})
	}

	if err := h.Store.CreateArticle(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// UpdateArticle оновлює статтю, попередньо записавши стару версію в історію.
func (h *Handler) UpdateArticle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	articleID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	var req articleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.Store.GetArticleByID(articleID, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if !canEditArticle(user, article) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	// Історія зберігає версію до зміни.
	entry := &models.ArticleHistory{
		ArticleID:      article.ID,
		UserID:         user.UserID,
		Event:          "update",
		ChangedTitle:   article.Title,
		ChangedContent: article.Content,
	}
	if err := h.Store.AddArticleHistory(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record article history"})
		return
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if err := h.Store.SaveArticle(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	if req.ImagePaths != nil {
		if err := h.Store.ReplaceArticleImages(article.ID, *req.ImagePaths); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update images"})
			return
		}
	}

	updated, err := h.Store.GetArticleByID(article.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteArticle помічає статтю видаленою.
func (h *Handler) DeleteArticle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	articleID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	article, err := h.Store.GetArticleByID(articleID, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if !canEditArticle(user, article) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	article.IsDeleted = true
	if err := h.Store.SaveArticle(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article marked as deleted"})
}

// RestoreArticle повертає м'яко видалену статтю.
func (h *Handler) RestoreArticle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	articleID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	article, err := h.Store.GetArticleByID(articleID, true)
	if err != nil || !article.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found or cannot be restored"})
		return
	}
	if !canEditArticle(user, article) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	article.IsDeleted = false
	article.DeletedAt = nil
	if err := h.Store.SaveArticle(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore article"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetArticleHistory повертає історію змін статті, найновіші спочатку.
func (h *Handler) GetArticleHistory(c *gin.Context) {
	user := middleware.CurrentUser(c)

	articleID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	article, err := h.Store.GetArticleByID(articleID, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if !canEditArticle(user, article) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	history, err := h.Store.GetArticleHistory(articleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, history)
}
