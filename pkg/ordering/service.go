// Package ordering owns the order lifecycle: creation with session gating and
// pricing, staff status transitions, and the stock reconciliation that runs
// when an order completes.
package ordering

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/models"
	"github.com/example/wingkiosk/pkg/pricing"
	"github.com/example/wingkiosk/pkg/session"
)

// OrderStore is the slice of the order repository this package needs.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error
	SetStockApplied(ctx context.Context, id primitive.ObjectID, applied bool) error
}

// CatalogStore is the slice of the catalog repository used by reconciliation.
type CatalogStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.InventoryItem, error)
	GetByName(ctx context.Context, name string) (*models.InventoryItem, error)
	UpdateStock(ctx context.Context, id primitive.ObjectID, stock int) error
}

type CreateRequest struct {
	Items       []pricing.LineItem
	OrderType   models.OrderType
	DiningType  models.DiningType
	TableNumber string
	PersonCount int
	SessionKey  string
}

type Service struct {
	orders OrderStore
	gate   *session.Gate
	logger *zap.Logger

	// drawNumber is swappable in tests.
	drawNumber func() string
}

func NewService(orders OrderStore, gate *session.Gate, logger *zap.Logger) *Service {
	return &Service{
		orders: orders,
		gate:   gate,
		logger: logger,
		drawNumber: func() string {
			return strconv.Itoa(1000 + rand.Intn(9000))
		},
	}
}

// Create validates the cart, admits the session, prices the order, and
// persists it with a fresh order number in Pending status.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if req.OrderType == models.AlaCarte && item.Quantity > pricing.MaxLineQuantity {
			return nil, ErrQuantityLimit
		}
	}

	if err := s.gate.Admit(ctx, req.SessionKey); err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(req.OrderType, req.Items, req.PersonCount)

	number, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ItemName: item.Name,
			Quantity: item.Quantity,
			Price:    models.ToDecimal128(item.Price),
		})
	}

	order := &models.Order{
		OrderNumber: number,
		OrderDate:   time.Now().UTC(),
		OrderType:   req.OrderType,
		DiningType:  req.DiningType,
		TableNumber: req.TableNumber,
		PersonCount: req.PersonCount,
		Items:       items,
		Subtotal:    models.ToDecimal128(totals.Subtotal),
		Tax:         models.ToDecimal128(totals.Tax),
		Total:       models.ToDecimal128(totals.Total),
		Status:      models.StatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("orderType", string(order.OrderType)),
		zap.String("total", totals.Total.String()))
	return order, nil
}

const numberAttempts = 8

// nextOrderNumber keeps the legacy 4-digit display format but checks each
// draw against the store, retrying on collision. The format itself stays
// collision-prone across the full order history; the store returns the first
// match on lookup.
func (s *Service) nextOrderNumber(ctx context.Context) (string, error) {
	for i := 0; i < numberAttempts; i++ {
		number := s.drawNumber()
		existing, err := s.orders.GetByOrderNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return number, nil
		}
	}
	return "", ErrNumbersExhausted
}

// Status reports an order's status by number, degrading to empty when the
// number is unknown so the polling endpoint never errors on a bad number.
func (s *Service) Status(ctx context.Context, orderNumber string) (models.Status, error) {
	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", nil
	}
	return order.Status, nil
}
