package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/models"
	"github.com/example/wingkiosk/pkg/ordering"
	"github.com/example/wingkiosk/pkg/pricing"
	"github.com/example/wingkiosk/pkg/session"
)

const sessionHeader = "X-Session-Id"

type createOrderItem struct {
	ItemName string          `json:"itemName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	Items       []createOrderItem `json:"items"`
	OrderType   string            `json:"orderType"`
	DiningType  string            `json:"diningType"`
	TableNumber string            `json:"tableNumber"`
	PersonCount int               `json:"personCount"`
}

// resolveSessionKey picks the session identity for a request. Dine-in tables
// share a key per table; walk-up kiosks use the client-held key from the
// header, minting one on the first request.
func resolveSessionKey(c *gin.Context, tableNumber string) string {
	if tableNumber != "" {
		return session.TableKey(tableNumber)
	}
	if key := c.GetHeader(sessionHeader); key != "" {
		return key
	}
	return session.KioskKey()
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	items := make([]pricing.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, pricing.LineItem{
			Name:     item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	key := resolveSessionKey(c, req.TableNumber)
	order, err := s.orders.Create(c.Request.Context(), ordering.CreateRequest{
		Items:       items,
		OrderType:   models.OrderType(req.OrderType),
		DiningType:  models.DiningType(req.DiningType),
		TableNumber: req.TableNumber,
		PersonCount: req.PersonCount,
		SessionKey:  key,
	})
	if err != nil {
		s.failOrder(c, err)
		return
	}

	c.Header(sessionHeader, key)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"orderNumber": order.OrderNumber,
		"sessionId":   key,
		"order":       order,
	})
}

// failOrder maps create/cancel failures onto the kiosk contract: domain
// rejections are delivered as success:false payloads on a 200 so the kiosk
// frontend renders the message instead of an error page.
func (s *Server) failOrder(c *gin.Context, err error) {
	var expired *session.ExpiredError
	switch {
	case errors.Is(err, ordering.ErrEmptyOrder),
		errors.Is(err, ordering.ErrInvalidQuantity),
		errors.Is(err, ordering.ErrQuantityLimit),
		errors.Is(err, ordering.ErrOrderNotFound),
		errors.Is(err, ordering.ErrCancelNotAllowed):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
	case errors.As(err, &expired):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
	default:
		s.logger.Error("order request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}

func (s *Server) orderStatus(c *gin.Context) {
	number := c.Query("orderNumber")
	status, err := s.orders.Status(c.Request.Context(), number)
	if err != nil {
		s.logger.Error("order status lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	// Unknown numbers poll as empty status rather than erroring.
	c.JSON(http.StatusOK, gin.H{"orderNumber": number, "status": status})
}

type cancelOrderRequest struct {
	OrderNumber string `json:"orderNumber"`
}

func (s *Server) cancelOrder(c *gin.Context) {
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	if err := s.lifecycle.Cancel(c.Request.Context(), req.OrderNumber); err != nil {
		s.failOrder(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) sessionInfo(c *gin.Context) {
	key := resolveSessionKey(c, c.Query("tableNumber"))
	info, err := s.gate.Info(c.Request.Context(), key)
	if err != nil {
		s.logger.Error("session lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.Header(sessionHeader, key)
	c.JSON(http.StatusOK, info)
}

func (s *Server) sessionReset(c *gin.Context) {
	key := resolveSessionKey(c, c.Query("tableNumber"))
	if err := s.gate.Reset(c.Request.Context(), key); err != nil {
		s.logger.Error("session reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// listMenu returns the sellable catalog. Store errors degrade to an empty
// menu so the kiosk landing page still renders.
func (s *Server) listMenu(c *gin.Context) {
	items, err := s.catalog.ListAvailable(c.Request.Context())
	if err != nil {
		s.logger.Error("menu listing failed", zap.Error(err))
		items = []models.InventoryItem{}
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) listFlavors(c *gin.Context) {
	flavors, err := s.flavors.ListAvailable(c.Request.Context())
	if err != nil {
		s.logger.Error("flavor listing failed", zap.Error(err))
		flavors = []models.WingFlavor{}
	}
	if flavors == nil {
		flavors = []models.WingFlavor{}
	}
	c.JSON(http.StatusOK, gin.H{"flavors": flavors})
}
