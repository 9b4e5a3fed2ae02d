package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderType string

const (
	AlaCarte  OrderType = "AlaCarte"
	Unlimited OrderType = "Unlimited"
)

type DiningType string

const (
	DineIn  DiningType = "DineIn"
	TakeOut DiningType = "TakeOut"
)

// Status is the closed order-status set. The legacy system compared free-form
// strings; every call site here matches on these constants only.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusCanceled   Status = "Canceled"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusInProgress: true, StatusCompleted: true, StatusCanceled: true},
	StatusInProgress: {StatusCompleted: true, StatusCanceled: true},
	StatusCompleted:  {},
	StatusCanceled:   {},
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// OrderItem is a point-in-time snapshot; name and price are captured at order
// time and stay fixed regardless of later catalog edits.
type OrderItem struct {
	ItemName string               `bson:"itemName" json:"itemName"`
	Quantity int                  `bson:"quantity" json:"quantity"`
	Price    primitive.Decimal128 `bson:"price" json:"price"`
}

type Order struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderNumber string               `bson:"orderNumber" json:"orderNumber"`
	OrderDate   time.Time            `bson:"orderDate" json:"orderDate"`
	OrderType   OrderType            `bson:"orderType" json:"orderType"`
	DiningType  DiningType           `bson:"diningType" json:"diningType"`
	TableNumber string               `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	PersonCount int                  `bson:"personCount,omitempty" json:"personCount,omitempty"`
	Items       []OrderItem          `bson:"items" json:"items"`
	Subtotal    primitive.Decimal128 `bson:"subtotal" json:"subtotal"`
	Tax         primitive.Decimal128 `bson:"tax" json:"tax"`
	Total       primitive.Decimal128 `bson:"total" json:"total"`
	Status      Status               `bson:"status" json:"status"`

	// StockApplied marks that completion reconciliation already ran for this
	// order, so repeating the Completed transition cannot decrement twice.
	StockApplied bool `bson:"stockApplied" json:"stockApplied"`
}
