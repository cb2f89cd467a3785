package shared

import (
	"strings"

	"github.com/pizzeria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SessionContextKey 会话 ID 在 gin 上下文中的键
const SessionContextKey = "session_id"

// GetSessionID 从上下文读取会话 ID 并统一处理错误响应。
func GetSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.session_invalid", nil)
		return "", false
	}
	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		RespondError(c, response.CodeUnauthorized, "error.session_id_invalid", nil)
		return "", false
	}
	return id, true
}
