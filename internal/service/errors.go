package service

import "errors"

// 服务层哨兵错误，由 handler 统一映射为响应码与提示文案
var (
	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrInvalidEmail              = errors.New("邮箱地址无效")
	ErrEmailRecipientRejected    = errors.New("收件人地址被拒绝")

	ErrRecipeIncomplete = errors.New("配方不完整")
	ErrFavoriteInvalid  = errors.New("收藏名称无效")
	ErrFavoriteNotFound = errors.New("收藏不存在")
	ErrPizzaNotFound    = errors.New("披萨不存在")
	ErrNotLoggedIn      = errors.New("未登录")
)
