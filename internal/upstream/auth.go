package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RegisterInput 注册请求
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginInput 登录请求（identifier 为邮箱或手机号）
type LoginInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResult 登录结果
type LoginResult struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	UserID     string `json:"userId"`
	Phone      string `json:"phone"`
	IsVerified bool   `json:"isVerified"`
}

// VerifyOTPInput OTP 校验请求
type VerifyOTPInput struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordInput 重置密码请求
type ResetPasswordInput struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordInput 修改密码请求（需登录态）
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register 注册新用户，上游随后向邮箱发送 OTP
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", input)
	return err
}

// VerifyOTP 校验注册 OTP
func (c *Client) VerifyOTP(ctx context.Context, input VerifyOTPInput) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", "", input)
	return err
}

// Login 登录并取得上游访问令牌
func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	respBytes, err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", input)
	if err != nil {
		return nil, err
	}
	var result LoginResult
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrResponseInvalid)
	}
	return &result, nil
}

// ForgotPassword 发起找回密码，上游向邮箱发送 OTP
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email})
	return err
}

// ResetPassword 用 OTP 重置密码
func (c *Client) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password", "", input)
	return err
}

// ChangePassword 登录态下修改密码
func (c *Client) ChangePassword(ctx context.Context, token string, input ChangePasswordInput) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/change-password", token, input)
	return err
}
