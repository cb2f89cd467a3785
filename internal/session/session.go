package session

import (
	"errors"
	"time"

	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/store"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSessionInvalid 会话令牌缺失、过期或验签失败
var ErrSessionInvalid = errors.New("session invalid")

// Claims 会话 JWT 声明。只携带会话 ID，登录态存在本地存储里。
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// AuthState 登录态快照（存于会话命名空间的 auth 条目）
type AuthState struct {
	Token    string `json:"token"` // 上游访问令牌
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserID   string `json:"user_id"`
	Phone    string `json:"phone"`
	Verified bool   `json:"verified"`
}

// Manager 会话管理器。
// 匿名访客也持有会话（购物车先于登录存在），登录只是往会话里写入登录态。
type Manager struct {
	secret []byte
	expire time.Duration
	store  store.Store
}

// NewManager 创建会话管理器
func NewManager(cfg config.SessionConfig, s store.Store) *Manager {
	expireHours := cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	return &Manager{
		secret: []byte(cfg.SecretKey),
		expire: time.Duration(expireHours) * time.Hour,
		store:  s,
	}
}

// Issue 签发新的匿名会话令牌
func (m *Manager) Issue() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Parse 解析会话令牌并返回会话 ID
func (m *Manager) Parse(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrSessionInvalid
	}
	return claims.SessionID, nil
}

// Login 将上游登录结果写入会话登录态
func (m *Manager) Login(sessionID string, result *upstream.LoginResult) error {
	return m.store.Put(sessionID, constants.StoreKeyAuth, AuthState{
		Token:    result.Token,
		Role:     result.Role,
		Name:     result.Name,
		Email:    result.Email,
		UserID:   result.UserID,
		Phone:    result.Phone,
		Verified: result.IsVerified,
	})
}

// Logout 清除会话登录态，购物车等状态保留
func (m *Manager) Logout(sessionID string) error {
	return m.store.Delete(sessionID, constants.StoreKeyAuth)
}

// Current 读取会话登录态，未登录时返回 false
func (m *Manager) Current(sessionID string) (AuthState, bool) {
	var auth AuthState
	if !m.store.Get(sessionID, constants.StoreKeyAuth, &auth) {
		return AuthState{}, false
	}
	if auth.Token == "" {
		return AuthState{}, false
	}
	return auth, true
}

// Role 返回会话角色，未登录为访客
func (m *Manager) Role(sessionID string) string {
	auth, ok := m.Current(sessionID)
	if !ok {
		return constants.RoleGuest
	}
	if auth.Role == "" {
		return constants.RoleCustomer
	}
	return auth.Role
}

// HandleUnauthorized 上游返回 401 时清除本地登录态
func (m *Manager) HandleUnauthorized(sessionID string) {
	_ = m.store.Delete(sessionID, constants.StoreKeyAuth)
}
