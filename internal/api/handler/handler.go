package handler

import (
	"strconv"

	"apittk/backend/internal/chathub"
	"apittk/backend/internal/config"
	"apittk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler тримає залежності всіх HTTP-ендпоінтів.
type Handler struct {
	Store    storage.Storage
	Sessions *chathub.SessionManager
	Cfg      *config.Config
}

func NewHandler(store storage.Storage, sessions *chathub.SessionManager, cfg *config.Config) *Handler {
	return &Handler{
		Store:    store,
		Sessions: sessions,
		Cfg:      cfg,
	}
}

// parseIDParam читає числовий параметр шляху.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
