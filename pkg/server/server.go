package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/auth"
	"github.com/example/wingkiosk/pkg/config"
	"github.com/example/wingkiosk/pkg/models"
	"github.com/example/wingkiosk/pkg/ordering"
	"github.com/example/wingkiosk/pkg/session"
)

// CatalogStore is the catalog surface the handlers need.
type CatalogStore interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	ListAvailable(ctx context.Context) ([]models.InventoryItem, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Replace(ctx context.Context, item *models.InventoryItem) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, availability models.Availability) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error)
	ListByTable(ctx context.Context, table string) ([]models.Order, error)
}

type FlavorStore interface {
	List(ctx context.Context) ([]models.WingFlavor, error)
	ListAvailable(ctx context.Context) ([]models.WingFlavor, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.WingFlavor, error)
	Create(ctx context.Context, flavor *models.WingFlavor) error
	Replace(ctx context.Context, flavor *models.WingFlavor) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, availability models.Availability) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine

	orders     *ordering.Service
	lifecycle  *ordering.Lifecycle
	reconciler *ordering.Reconciler
	gate       *session.Gate
	auth       *auth.Service

	catalog    CatalogStore
	orderStore OrderStore
	flavors    FlavorStore
}

type Deps struct {
	Orders     *ordering.Service
	Lifecycle  *ordering.Lifecycle
	Reconciler *ordering.Reconciler
	Gate       *session.Gate
	Auth       *auth.Service
	Catalog    CatalogStore
	OrderStore OrderStore
	Flavors    FlavorStore
}

func New(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	s := &Server{
		config:     cfg,
		logger:     logger,
		router:     router,
		orders:     deps.Orders,
		lifecycle:  deps.Lifecycle,
		reconciler: deps.Reconciler,
		gate:       deps.Gate,
		auth:       deps.Auth,
		catalog:    deps.Catalog,
		orderStore: deps.OrderStore,
		flavors:    deps.Flavors,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")
	{
		// Customer-facing kiosk routes
		v1.POST("/orders", s.createOrder)
		v1.GET("/orders/status", s.orderStatus)
		v1.POST("/orders/cancel", s.cancelOrder)
		v1.GET("/session", s.sessionInfo)
		v1.POST("/session/reset", s.sessionReset)
		v1.GET("/menu", s.listMenu)
		v1.GET("/flavors", s.listFlavors)

		admin := v1.Group("/admin")
		{
			admin.POST("/login", s.login)
			admin.GET("/dashboard", s.dashboard)

			admin.GET("/orders", s.adminListOrders)
			admin.GET("/orders/table/:table", s.adminOrdersByTable)
			admin.POST("/orders/:id/status", s.adminUpdateOrderStatus)

			admin.GET("/inventory", s.adminListInventory)
			admin.POST("/inventory", s.adminCreateInventory)
			admin.PUT("/inventory/:id", s.adminUpdateInventory)
			admin.DELETE("/inventory/:id", s.adminDeleteInventory)
			admin.POST("/inventory/:id/restock", s.adminRestock)
			admin.POST("/inventory/:id/availability", s.adminSetAvailability)

			admin.GET("/flavors", s.adminListFlavors)
			admin.POST("/flavors", s.adminCreateFlavor)
			admin.PUT("/flavors/:id", s.adminUpdateFlavor)
			admin.DELETE("/flavors/:id", s.adminDeleteFlavor)
			admin.POST("/flavors/:id/availability", s.adminSetFlavorAvailability)
		}
	}
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
