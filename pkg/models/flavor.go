package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WingFlavor lives in the legacy ChickenWings_Flavor collection backing the
// unlimited menu. Unlike Stock, its availability filter is strict: only
// documents explicitly marked Available are served.
type WingFlavor struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Price        primitive.Decimal128 `bson:"price" json:"price"`
	Category     string               `bson:"category" json:"category"`
	Image        string               `bson:"image,omitempty" json:"image,omitempty"`
	Availability Availability         `bson:"availability" json:"availability"`
	CurrentStock int                  `bson:"currentStock" json:"currentStock"`
	Unit         string               `bson:"unit" json:"unit"`
	ReorderLevel int                  `bson:"reorderLevel" json:"reorderLevel"`
	Status       StockState           `bson:"status" json:"status"`
}
