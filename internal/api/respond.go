package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// respondOK writes the uniform success envelope: {"ok":true, ...payload}.
func respondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondErr writes the uniform failure envelope {"ok":false,"message":...}.
func respondErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "message": message})
}

// storeErr maps an unexpected store error to a 500 with the error
// message passed through verbatim.
func storeErr(c *gin.Context, err error) {
	respondErr(c, http.StatusInternalServerError, err.Error())
}

// parseTimeParam accepts RFC3339 timestamps or plain dates. An empty
// value yields nil without error.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseLimit reads the limit query parameter, falling back to def on
// absent or unusable values.
func parseLimit(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
