package ordering

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/wingkiosk/pkg/models"
)

// In-memory stores standing in for the Mongo repositories.

type memOrderStore struct {
	seq    []primitive.ObjectID
	byID   map[primitive.ObjectID]models.Order
	getErr error
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{byID: make(map[primitive.ObjectID]models.Order)}
}

func (s *memOrderStore) Create(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.seq = append(s.seq, order.ID)
	s.byID[order.ID] = *order
	return nil
}

func (s *memOrderStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	order, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (s *memOrderStore) GetByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, id := range s.seq {
		if order := s.byID[id]; order.OrderNumber == orderNumber {
			return &order, nil
		}
	}
	return nil, nil
}

func (s *memOrderStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.Status) error {
	order, ok := s.byID[id]
	if !ok {
		return errors.New("no such order")
	}
	order.Status = status
	s.byID[id] = order
	return nil
}

func (s *memOrderStore) SetStockApplied(_ context.Context, id primitive.ObjectID, applied bool) error {
	order, ok := s.byID[id]
	if !ok {
		return errors.New("no such order")
	}
	order.StockApplied = applied
	s.byID[id] = order
	return nil
}

type memCatalogStore struct {
	byID      map[primitive.ObjectID]models.InventoryItem
	updateErr error
	updates   int
}

func newMemCatalogStore() *memCatalogStore {
	return &memCatalogStore{byID: make(map[primitive.ObjectID]models.InventoryItem)}
}

func (s *memCatalogStore) add(name string, stock, reorderLevel int) primitive.ObjectID {
	item := models.InventoryItem{
		ID:           primitive.NewObjectID(),
		Item:         name,
		CurrentStock: stock,
		ReorderLevel: reorderLevel,
	}
	item.ApplyDerivedState()
	s.byID[item.ID] = item
	return item.ID
}

func (s *memCatalogStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.InventoryItem, error) {
	item, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *memCatalogStore) GetByName(_ context.Context, name string) (*models.InventoryItem, error) {
	for _, item := range s.byID {
		if item.Item == name {
			item := item
			return &item, nil
		}
	}
	return nil, nil
}

func (s *memCatalogStore) UpdateStock(_ context.Context, id primitive.ObjectID, stock int) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	item, ok := s.byID[id]
	if !ok {
		return errors.New("no such item")
	}
	item.CurrentStock = stock
	item.ApplyDerivedState()
	s.byID[id] = item
	s.updates++
	return nil
}
