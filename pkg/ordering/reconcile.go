package ordering

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/models"
)

// Reconciler adjusts catalog stock to reflect consumed or restocked
// inventory. Orders snapshot item names, not ids, so decrements look up by
// name.
type Reconciler struct {
	catalog CatalogStore
	logger  *zap.Logger
}

func NewReconciler(catalog CatalogStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{catalog: catalog, logger: logger}
}

// Decrement subtracts quantity from the named item's stock, clamping at zero,
// and persists the stock with its recomputed derived state as a field-level
// update. Returns false when the item is not in the catalog.
func (r *Reconciler) Decrement(ctx context.Context, itemName string, quantity int) (bool, error) {
	item, err := r.catalog.GetByName(ctx, itemName)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	newStock := item.CurrentStock - quantity
	if newStock < 0 {
		newStock = 0
	}
	if err := r.catalog.UpdateStock(ctx, item.ID, newStock); err != nil {
		return false, err
	}

	r.logger.Info("stock decremented",
		zap.String("item", itemName),
		zap.Int("quantity", quantity),
		zap.Int("remaining", newStock))
	return true, nil
}

// Restock adds quantity to an item's stock and returns the updated item.
func (r *Reconciler) Restock(ctx context.Context, id primitive.ObjectID, quantity int) (*models.InventoryItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := r.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	newStock := item.CurrentStock + quantity
	if err := r.catalog.UpdateStock(ctx, item.ID, newStock); err != nil {
		return nil, err
	}

	item.CurrentStock = newStock
	item.ApplyDerivedState()
	return item, nil
}
