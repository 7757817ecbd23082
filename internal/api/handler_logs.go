package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facility-reservation-backend/internal/model"
)

// GetAdminLogs handles the GET /api/admin/logs request: newest entries
// first, up to limit (default 50), optionally filtered to one action.
func (h *Handler) GetAdminLogs(c *gin.Context) {
	limit := parseLimit(c, 50)
	action := c.Query("action")

	logs, err := h.store.ListAdminLogs(c.Request.Context(), action, limit)
	if err != nil {
		storeErr(c, err)
		return
	}
	if logs == nil {
		logs = []model.AdminLog{}
	}
	respondOK(c, gin.H{"logs": logs})
}

type appendLogRequest struct {
	Action     string         `json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Details    map[string]any `json:"details"`
	IPAddress  string         `json:"ip_address"`
}

// AppendAdminLog handles the POST /api/admin/logs request. The payload
// passes through to the store as given; details default to an empty
// object and the client IP fills a missing ip_address.
func (h *Handler) AppendAdminLog(c *gin.Context) {
	var req appendLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid log payload")
		return
	}

	entry := model.AdminLog{
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Details:    req.Details,
		IPAddress:  req.IPAddress,
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}
	if entry.IPAddress == "" {
		entry.IPAddress = c.ClientIP()
	}

	if err := h.store.AppendAdminLog(c.Request.Context(), &entry); err != nil {
		storeErr(c, err)
		return
	}
	respondOK(c, gin.H{"log": entry})
}
