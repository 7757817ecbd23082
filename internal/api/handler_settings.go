package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"facility-reservation-backend/internal/logger"
)

const (
	settingTheme     = "theme"
	settingThemeMode = "theme_mode"

	defaultTheme     = "blue"
	defaultThemeMode = "dark"
)

// GetThemeSettings handles the GET /api/settings/theme request. A
// missing row or an unreachable store both yield the defaults; only the
// latter is logged.
func (h *Handler) GetThemeSettings(c *gin.Context) {
	theme := h.settingOrDefault(c, settingTheme, defaultTheme)
	mode := h.settingOrDefault(c, settingThemeMode, defaultThemeMode)
	respondOK(c, gin.H{"theme": theme, "mode": mode})
}

func (h *Handler) settingOrDefault(c *gin.Context, key, def string) string {
	value, err := h.store.Setting(c.Request.Context(), key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Err(err).Str("key", key).Msg("settings lookup failed, using default")
		}
		return def
	}
	if value == "" {
		return def
	}
	return value
}

type setThemeRequest struct {
	Theme string `json:"theme"`
	Mode  string `json:"mode"`
}

// SetThemeSettings handles the POST /api/settings/theme request,
// upserting only the non-empty values.
func (h *Handler) SetThemeSettings(c *gin.Context) {
	var req setThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid settings payload")
		return
	}

	if req.Theme != "" {
		if err := h.store.UpsertSetting(c.Request.Context(), settingTheme, req.Theme); err != nil {
			storeErr(c, err)
			return
		}
	}
	if req.Mode != "" {
		if err := h.store.UpsertSetting(c.Request.Context(), settingThemeMode, req.Mode); err != nil {
			storeErr(c, err)
			return
		}
	}
	respondOK(c, nil)
}
