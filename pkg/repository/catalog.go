package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/wingkiosk/pkg/models"
)

// CatalogRepo persists menu/inventory items in the Stock collection. Lookup
// methods return (nil, nil) when no document matches; store errors propagate
// to the caller unretried.
type CatalogRepo struct {
	col *mongo.Collection
}

func (r *CatalogRepo) List(ctx context.Context) ([]models.InventoryItem, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAvailable fetches everything and filters in memory so documents without
// an availability field still sell. Legacy data predates the field; querying
// on it directly would hide those items.
func (r *CatalogRepo) ListAvailable(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.SellsAsAvailable() {
			available = append(available, item)
		}
	}
	return available, nil
}

func (r *CatalogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepo) GetByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.col.FindOne(ctx, bson.M{"item": name}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	item.ApplyDerivedState()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *CatalogRepo) Replace(ctx context.Context, item *models.InventoryItem) error {
	item.ApplyDerivedState()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	return err
}

func (r *CatalogRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, availability models.Availability) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"availability": availability}})
	return err
}

// UpdateStock writes the stock level and its derived fields as a single
// field-level update rather than a document replace, narrowing the
// lost-update window during concurrent completions.
func (r *CatalogRepo) UpdateStock(ctx context.Context, id primitive.ObjectID, stock int) error {
	// Read the reorder level from the document rather than trusting the
	// caller's possibly stale copy.
	var item struct {
		ReorderLevel int `bson:"reorderLevel"`
	}
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return err
	}
	status, availability := models.DerivedState(stock, item.ReorderLevel)

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"currentStock": stock,
		"status":       status,
		"availability": availability,
	}})
	return err
}

func (r *CatalogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
