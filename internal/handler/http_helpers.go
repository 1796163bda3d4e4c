package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/risegum/internal/gateway"
	g "maragu.dev/gomponents"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func respondErrorCode(c *gin.Context, status int, message, code string, details interface{}) {
	body := gin.H{"success": false, "error": message, "code": code}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// parseIntQuery 读取非负整数查询参数，缺省时返回 def。
func parseIntQuery(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return value, nil
}

func renderNode(c *gin.Context, status int, node g.Node) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := node.Render(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}

// unavailableGateway stands in when no backend is configured; every submit
// behaves like a transport failure.
type unavailableGateway struct{}

func (unavailableGateway) SubmitEntry(context.Context, gateway.Entry) (gateway.SubmitResult, error) {
	return gateway.SubmitResult{}, fmt.Errorf("%w: no backend configured", gateway.ErrUnavailable)
}
