package ordering

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/models"
)

// Lifecycle applies staff status transitions and triggers stock
// reconciliation when an order completes.
type Lifecycle struct {
	orders     OrderStore
	reconciler *Reconciler
	logger     *zap.Logger
}

func NewLifecycle(orders OrderStore, reconciler *Reconciler, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{orders: orders, reconciler: reconciler, logger: logger}
}

// UpdateStatus moves an order to next per the transition map. Requesting
// Completed on an already-completed order is accepted and re-checks the
// reconciliation marker instead of erroring, so a duplicated request can
// never decrement stock twice.
func (l *Lifecycle) UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	order, err := l.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if order.Status == models.StatusCompleted && next == models.StatusCompleted {
		return l.applyStock(ctx, order)
	}
	if !models.CanTransition(order.Status, next) {
		return ErrBadTransition
	}
	if err := l.orders.SetStatus(ctx, id, next); err != nil {
		return err
	}
	if next == models.StatusCompleted {
		return l.applyStock(ctx, order)
	}
	return nil
}

// applyStock runs completion reconciliation exactly once per order. Per-item
// failures are logged and skipped; one bad item name must not block the rest
// of the order. Decrements happen before the marker is written, so a crash in
// between leads to a retry that re-checks the marker, never a double apply of
// a marked order.
func (l *Lifecycle) applyStock(ctx context.Context, order *models.Order) error {
	if order.StockApplied {
		return nil
	}
	for _, item := range order.Items {
		applied, err := l.reconciler.Decrement(ctx, item.ItemName, item.Quantity)
		if err != nil {
			l.logger.Warn("stock decrement failed",
				zap.String("orderNumber", order.OrderNumber),
				zap.String("item", item.ItemName),
				zap.Error(err))
			continue
		}
		if !applied {
			l.logger.Warn("stock decrement skipped, item not in catalog",
				zap.String("orderNumber", order.OrderNumber),
				zap.String("item", item.ItemName))
		}
	}
	return l.orders.SetStockApplied(ctx, order.ID, true)
}

// Cancel cancels an order by number from the customer-facing flow. Only
// pending orders qualify; anything already in progress or terminal is
// refused.
func (l *Lifecycle) Cancel(ctx context.Context, orderNumber string) error {
	order, err := l.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status != models.StatusPending {
		return ErrCancelNotAllowed
	}
	return l.orders.SetStatus(ctx, order.ID, models.StatusCanceled)
}
