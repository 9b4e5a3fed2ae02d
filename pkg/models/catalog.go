package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Availability string

const (
	Available   Availability = "Available"
	Unavailable Availability = "Unavailable"
)

// StockState keeps the legacy display strings used by the Stock collection.
type StockState string

const (
	InStock  StockState = "In Stock"
	LowStock StockState = "Low Stock"
)

type InventoryItem struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Item         string               `bson:"item" json:"item"`
	Category     string               `bson:"category" json:"category"`
	Price        primitive.Decimal128 `bson:"price" json:"price"`
	CurrentStock int                  `bson:"currentStock" json:"currentStock"`
	Unit         string               `bson:"unit" json:"unit"`
	ReorderLevel int                  `bson:"reorderLevel" json:"reorderLevel"`
	Image        string               `bson:"image,omitempty" json:"image,omitempty"`
	Availability Availability         `bson:"availability" json:"availability"`
	Status       StockState           `bson:"status" json:"status"`
}

// DerivedState computes the stock state and availability from a stock level.
// Availability is Unavailable exactly when stock is zero; the low-stock flag
// trips at or below the reorder level.
func DerivedState(stock, reorderLevel int) (StockState, Availability) {
	state := InStock
	if stock <= reorderLevel {
		state = LowStock
	}
	availability := Available
	if stock == 0 {
		availability = Unavailable
	}
	return state, availability
}

// ApplyDerivedState recomputes the derived fields. Callers never author
// Status or Availability directly; every mutation path runs through here.
func (i *InventoryItem) ApplyDerivedState() {
	i.Status, i.Availability = DerivedState(i.CurrentStock, i.ReorderLevel)
}

// SellsAsAvailable treats documents without an availability field as
// available. Legacy Stock documents predate the field; this is a deliberate
// backward-compatibility rule.
func (i *InventoryItem) SellsAsAvailable() bool {
	return i.Availability == "" || i.Availability == Available
}
