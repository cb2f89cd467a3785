package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/session"
	"github.com/pizzeria-next/internal/store"
	"github.com/pizzeria-next/internal/upstream"
)

// AuthService 身份流程：注册、OTP、登录、找回与修改密码。
// 实际校验在上游完成，这里负责把登录态落到会话存储。
type AuthService struct {
	client   *upstream.Client
	sessions *session.Manager
	store    store.Store
}

// NewAuthService 创建身份服务
func NewAuthService(client *upstream.Client, sessions *session.Manager, s store.Store) *AuthService {
	return &AuthService{client: client, sessions: sessions, store: s}
}

// Register 注册新用户
func (s *AuthService) Register(ctx context.Context, input upstream.RegisterInput) error {
	return s.client.Register(ctx, input)
}

// VerifyOTP 校验注册 OTP
func (s *AuthService) VerifyOTP(ctx context.Context, input upstream.VerifyOTPInput) error {
	return s.client.VerifyOTP(ctx, input)
}

// LoginInput 登录输入
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Remember   bool   `json:"remember"`
}

// Login 登录。remember 为真时记住登录标识，供登录页回填。
func (s *AuthService) Login(ctx context.Context, sessionID string, input LoginInput) (*session.AuthState, error) {
	result, err := s.client.Login(ctx, upstream.LoginInput{
		Identifier: strings.TrimSpace(input.Identifier),
		Password:   input.Password,
	})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Login(sessionID, result); err != nil {
		return nil, err
	}

	if input.Remember {
		if err := s.store.Put(sessionID, constants.StoreKeyRememberEmail, input.Identifier); err != nil {
			logger.Warnw("remember_identifier_persist_failed", "session_id", sessionID, "error", err)
		}
	} else if err := s.store.Delete(sessionID, constants.StoreKeyRememberEmail); err != nil {
		logger.Warnw("remember_identifier_clear_failed", "session_id", sessionID, "error", err)
	}

	auth, _ := s.sessions.Current(sessionID)
	logger.Infow("user_login", "session_id", sessionID, "role", auth.Role)
	return &auth, nil
}

// Logout 退出登录
func (s *AuthService) Logout(sessionID string) error {
	return s.sessions.Logout(sessionID)
}

// RememberedIdentifier 读取记住的登录标识
func (s *AuthService) RememberedIdentifier(sessionID string) string {
	var identifier string
	if !s.store.Get(sessionID, constants.StoreKeyRememberEmail, &identifier) {
		return ""
	}
	return identifier
}

// ForgotPassword 发起找回密码
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.client.ForgotPassword(ctx, email)
}

// ResetPassword 用 OTP 重置密码
func (s *AuthService) ResetPassword(ctx context.Context, input upstream.ResetPasswordInput) error {
	return s.client.ResetPassword(ctx, input)
}

// ChangePassword 登录态下修改密码。上游 401 时清除本地登录态。
func (s *AuthService) ChangePassword(ctx context.Context, sessionID string, input upstream.ChangePasswordInput) error {
	auth, ok := s.sessions.Current(sessionID)
	if !ok {
		return ErrNotLoggedIn
	}
	err := s.client.ChangePassword(ctx, auth.Token, input)
	if errors.Is(err, upstream.ErrUnauthorized) {
		s.sessions.HandleUnauthorized(sessionID)
	}
	return err
}
