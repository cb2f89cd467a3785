package public

import (
	"github.com/pizzeria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateSession 签发浏览器会话令牌
func (h *Handler) CreateSession(c *gin.Context) {
	sessionID, token, err := h.Sessions.Issue()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	requestLog(c).Infow("session_issued", "session_id", sessionID)
	response.Success(c, gin.H{
		"session_id":    sessionID,
		"session_token": token,
	})
}

// GetProfile 读取当前会话概要（登录态、角色、购物车与心愿单计数）
func (h *Handler) GetProfile(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	counts := h.State.CountsOf(sessionID)
	auth, loggedIn := h.Sessions.Current(sessionID)
	data := gin.H{
		"logged_in":           loggedIn,
		"role":                h.Sessions.Role(sessionID),
		"cart_count":          counts.Cart,
		"wishlist_count":      counts.Wishlist,
		"remembered_identity": h.AuthService.RememberedIdentifier(sessionID),
	}
	if loggedIn {
		data["user"] = gin.H{
			"name":     auth.Name,
			"email":    auth.Email,
			"user_id":  auth.UserID,
			"phone":    auth.Phone,
			"verified": auth.Verified,
		}
	}
	response.Success(c, data)
}
