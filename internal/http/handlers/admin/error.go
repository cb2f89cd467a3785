package admin

import (
	"errors"

	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/service"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// respondProxyError 统一处理代理上游时的常见失败。
func respondProxyError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	case errors.Is(err, upstream.ErrUnauthorized):
		respondError(c, response.CodeUnauthorized, "error.session_expired", nil)
	case errors.Is(err, upstream.ErrRequestFailed):
		respondErrorWithMsg(c, response.CodeUpstream, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
