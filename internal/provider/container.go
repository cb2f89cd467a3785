package provider

import (
	"github.com/pizzeria-next/internal/cache"
	"github.com/pizzeria-next/internal/checkout"
	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/queue"
	"github.com/pizzeria-next/internal/service"
	"github.com/pizzeria-next/internal/session"
	"github.com/pizzeria-next/internal/state"
	"github.com/pizzeria-next/internal/store"
	"github.com/pizzeria-next/internal/upstream"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	Store    store.Store
	Bus      *state.Bus
	State    *state.Manager
	Sessions *session.Manager
	Upstream *upstream.Client
	Coupons  pricing.Coupons

	Checkout *checkout.Orchestrator

	// Services
	EmailService    *service.EmailService
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	FavoriteService *service.FavoriteService
	AuthService     *service.AuthService
	OrderService    *service.OrderService
	AdminService    *service.AdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initCore()
	c.initServices()

	return c
}

func (c *Container) initCore() {
	c.Store = store.NewStore(models.DB)
	c.Bus = state.NewBus()
	c.State = state.NewManager(c.Store, c.Bus)
	c.Sessions = session.NewManager(c.Config.Session, c.Store)
	c.Upstream = upstream.NewClient(c.Config.Upstream.BaseURL)
	c.Coupons = pricing.NewCoupons(c.Config.Coupons)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CatalogService = service.NewCatalogService(c.Config.Catalog, c.Upstream)
	c.CartService = service.NewCartService(c.State, c.Coupons)
	c.FavoriteService = service.NewFavoriteService(c.Store, c.State)
	c.AuthService = service.NewAuthService(c.Upstream, c.Sessions, c.Store)
	c.Checkout = checkout.NewOrchestrator(c.Config.Payment, c.Store, c.State, c.Sessions, c.Coupons, c.Upstream, c.QueueClient)
	c.OrderService = service.NewOrderService(c.Upstream, c.Sessions, c.Checkout)
	c.AdminService = service.NewAdminService(c.Upstream, c.Sessions, c.CatalogService)
}
