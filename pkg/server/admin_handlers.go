package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/models"
	"github.com/example/wingkiosk/pkg/ordering"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	user, err := s.auth.Validate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid username or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"username": user.Username,
		"role":     user.Role,
	})
}

// dashboard aggregates today's sales and the current stock picture for the
// admin landing page.
func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	start, end := todayRange(time.Now().UTC())

	orders, err := s.orderStore.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("dashboard order query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}

	sales := decimal.Zero
	counted := 0
	for _, order := range orders {
		if order.Status == models.StatusCanceled {
			continue
		}
		sales = sales.Add(models.FromDecimal128(order.Total))
		counted++
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Error("dashboard catalog query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	lowStock := 0
	for _, item := range items {
		if item.Status == models.LowStock {
			lowStock++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"todayOrders":   counted,
		"todaySales":    sales.StringFixed(2),
		"menuItems":     len(items),
		"lowStockItems": lowStock,
	})
}

func todayRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}

func (s *Server) adminListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		orders []models.Order
		err    error
	)
	if c.Query("filter") == "today" {
		start, end := todayRange(time.Now().UTC())
		orders, err = s.orderStore.ListByDateRange(ctx, start, end)
	} else {
		orders, err = s.orderStore.List(ctx)
	}
	if err != nil {
		s.logger.Error("order listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) adminOrdersByTable(c *gin.Context) {
	orders, err := s.orderStore.ListByTable(c.Request.Context(), c.Param("table"))
	if err != nil {
		s.logger.Error("table order listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) adminUpdateOrderStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid order id"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	err = s.lifecycle.UpdateStatus(c.Request.Context(), id, models.Status(req.Status))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, ordering.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, ordering.ErrInvalidStatus), errors.Is(err, ordering.ErrBadTransition):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		s.logger.Error("status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}

type inventoryRequest struct {
	Item         string          `json:"item" binding:"required"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock int             `json:"currentStock"`
	Unit         string          `json:"unit"`
	ReorderLevel int             `json:"reorderLevel"`
	Image        string          `json:"image"`
}

func (s *Server) adminListInventory(c *gin.Context) {
	items, err := s.catalog.List(c.Request.Context())
	if err != nil {
		s.logger.Error("inventory listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) adminCreateInventory(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	item := &models.InventoryItem{
		Item:         req.Item,
		Category:     req.Category,
		Price:        models.ToDecimal128(req.Price),
		CurrentStock: req.CurrentStock,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
		Image:        req.Image,
	}
	if err := s.catalog.Create(c.Request.Context(), item); err != nil {
		s.logger.Error("inventory create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

func (s *Server) adminUpdateInventory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid item id"})
		return
	}
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	existing, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("inventory lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "item not found"})
		return
	}

	existing.Item = req.Item
	existing.Category = req.Category
	existing.Price = models.ToDecimal128(req.Price)
	existing.CurrentStock = req.CurrentStock
	existing.Unit = req.Unit
	existing.ReorderLevel = req.ReorderLevel
	if req.Image != "" {
		existing.Image = req.Image
	}

	if err := s.catalog.Replace(ctx, existing); err != nil {
		s.logger.Error("inventory update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": existing})
}

func (s *Server) adminDeleteInventory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid item id"})
		return
	}
	if err := s.catalog.Delete(c.Request.Context(), id); err != nil {
		s.logger.Error("inventory delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) adminRestock(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid item id"})
		return
	}
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	item, err := s.reconciler.Restock(c.Request.Context(), id, req.Quantity)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
	case errors.Is(err, ordering.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, ordering.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	default:
		s.logger.Error("restock failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}

type availabilityRequest struct {
	Availability models.Availability `json:"availability"`
}

func (r availabilityRequest) valid() bool {
	return r.Availability == models.Available || r.Availability == models.Unavailable
}

func (s *Server) adminSetAvailability(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid item id"})
		return
	}
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "availability must be Available or Unavailable"})
		return
	}
	if err := s.catalog.SetAvailability(c.Request.Context(), id, req.Availability); err != nil {
		s.logger.Error("availability update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type flavorRequest struct {
	Name         string          `json:"name" binding:"required"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Image        string          `json:"image"`
	CurrentStock int             `json:"currentStock"`
	Unit         string          `json:"unit"`
	ReorderLevel int             `json:"reorderLevel"`
}

func (s *Server) adminListFlavors(c *gin.Context) {
	flavors, err := s.flavors.List(c.Request.Context())
	if err != nil {
		s.logger.Error("flavor listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	if flavors == nil {
		flavors = []models.WingFlavor{}
	}
	c.JSON(http.StatusOK, gin.H{"flavors": flavors})
}

func (s *Server) adminCreateFlavor(c *gin.Context) {
	var req flavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	flavor := &models.WingFlavor{
		Name:         req.Name,
		Price:        models.ToDecimal128(req.Price),
		Category:     req.Category,
		Image:        req.Image,
		CurrentStock: req.CurrentStock,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
	}
	if err := s.flavors.Create(c.Request.Context(), flavor); err != nil {
		s.logger.Error("flavor create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "flavor": flavor})
}

func (s *Server) adminUpdateFlavor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid flavor id"})
		return
	}
	var req flavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	existing, err := s.flavors.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("flavor lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "flavor not found"})
		return
	}

	existing.Name = req.Name
	existing.Price = models.ToDecimal128(req.Price)
	existing.Category = req.Category
	existing.CurrentStock = req.CurrentStock
	existing.Unit = req.Unit
	existing.ReorderLevel = req.ReorderLevel
	if req.Image != "" {
		existing.Image = req.Image
	}

	if err := s.flavors.Replace(ctx, existing); err != nil {
		s.logger.Error("flavor update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "flavor": existing})
}

func (s *Server) adminDeleteFlavor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid flavor id"})
		return
	}
	if err := s.flavors.Delete(c.Request.Context(), id); err != nil {
		s.logger.Error("flavor delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) adminSetFlavorAvailability(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid flavor id"})
		return
	}
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "availability must be Available or Unavailable"})
		return
	}
	if err := s.flavors.SetAvailability(c.Request.Context(), id, req.Availability); err != nil {
		s.logger.Error("flavor availability update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
