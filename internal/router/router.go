package router

import (
	"fmt"
	"strings"

	"github.com/pizzeria-next/internal/cache"
	"github.com/pizzeria-next/internal/config"
	adminhandlers "github.com/pizzeria-next/internal/http/handlers/admin"
	publichandlers "github.com/pizzeria-next/internal/http/handlers/public"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按顾客侧/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pz"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 会话签发（唯一无需会话令牌的接口）
		apiV1.POST("/session", publicHandler.CreateSession)

		// 菜单接口（无需会话）
		catalog := apiV1.Group("")
		{
			catalog.GET("/pizzas", publicHandler.GetPizzas)
			catalog.GET("/pizzas/:id", publicHandler.GetPizza)
			catalog.GET("/ingredients", publicHandler.GetIngredients)
		}

		// 顾客侧接口（需会话令牌）
		sessioned := apiV1.Group("")
		sessioned.Use(SessionMiddleware(c.Sessions))
		{
			sessioned.GET("/session", publicHandler.GetProfile)

			sessioned.POST("/auth/register", publicHandler.Register)
			sessioned.POST("/auth/verify-otp", publicHandler.VerifyOTP)
			sessioned.POST("/auth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("identifier")), publicHandler.Login)
			sessioned.POST("/auth/logout", publicHandler.Logout)
			sessioned.POST("/auth/forgot-password", publicHandler.ForgotPassword)
			sessioned.POST("/auth/reset-password", publicHandler.ResetPassword)
			sessioned.POST("/auth/change-password", publicHandler.ChangePassword)

			sessioned.GET("/cart", publicHandler.GetCart)
			sessioned.POST("/cart/pizzas", publicHandler.AddPizzaToCart)
			sessioned.POST("/cart/custom", publicHandler.AddCustomPizzaToCart)
			sessioned.POST("/cart/remove", publicHandler.RemoveCartLine)
			sessioned.POST("/cart/increase", publicHandler.IncreaseCartLine)
			sessioned.POST("/cart/decrease", publicHandler.DecreaseCartLine)
			sessioned.POST("/cart/clear", publicHandler.ClearCart)
			sessioned.POST("/coupons/validate", publicHandler.ValidateCoupon)

			sessioned.GET("/wishlist", publicHandler.GetWishlist)
			sessioned.POST("/wishlist/toggle", publicHandler.ToggleWishlist)

			sessioned.GET("/favorites", publicHandler.GetFavorites)
			sessioned.POST("/favorites", publicHandler.SaveFavorite)
			sessioned.DELETE("/favorites/:name", publicHandler.DeleteFavorite)
			sessioned.POST("/favorites/:name/cart", publicHandler.AddFavoriteToCart)

			sessioned.GET("/checkout", publicHandler.GetCheckout)
			sessioned.GET("/checkout/address", publicHandler.GetSavedAddress)
			sessioned.POST("/checkout/begin", publicHandler.BeginCheckout)
			sessioned.POST("/checkout/complete", publicHandler.CompleteCheckout)

			sessioned.GET("/orders/my", publicHandler.GetMyOrders)
			sessioned.GET("/orders/last", publicHandler.GetLastOrder)
		}

		// 管理端接口（需会话令牌 + 店长角色）
		admin := apiV1.Group("/admin")
		admin.Use(SessionMiddleware(c.Sessions), AdminGateMiddleware(c.Sessions))
		{
			admin.GET("/orders", adminHandler.GetAllOrders)
			admin.GET("/orders/stats", adminHandler.GetOrderStats)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.DELETE("/orders/:id", adminHandler.DeleteOrder)

			admin.GET("/inventory", adminHandler.GetInventory)
			admin.POST("/inventory", adminHandler.CreateInventoryItem)
			admin.PUT("/inventory/:id", adminHandler.UpdateInventoryItem)
			admin.DELETE("/inventory/:id", adminHandler.DeleteInventoryItem)
		}
	}

	return r
}
