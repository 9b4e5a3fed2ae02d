package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/wingkiosk/pkg/models"
)

// OrderRepo persists orders. Lookup methods return (nil, nil) when nothing
// matches, so polling endpoints can degrade to a neutral result.
type OrderRepo struct {
	col *mongo.Collection
}

func (r *OrderRepo) List(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber returns the first match. Four-digit order numbers are not
// globally unique by construction; callers must tolerate ambiguity.
func (r *OrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, order)
	return err
}

func (r *OrderRepo) Replace(ctx context.Context, id primitive.ObjectID, order *models.Order) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, order)
	return err
}

func (r *OrderRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	return err
}

// SetStockApplied records that completion reconciliation ran for this order.
func (r *OrderRepo) SetStockApplied(ctx context.Context, id primitive.ObjectID, applied bool) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"stockApplied": applied}})
	return err
}

func (r *OrderRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *OrderRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	filter := bson.M{"orderDate": bson.M{"$gte": start, "$lte": end}}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status models.Status) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByTable returns the non-canceled dine-in orders for a table, earliest
// first.
func (r *OrderRepo) ListByTable(ctx context.Context, table string) ([]models.Order, error) {
	if table == "" {
		return nil, nil
	}
	filter := bson.M{
		"tableNumber": table,
		"status":      bson.M{"$ne": models.StatusCanceled},
		"diningType":  models.DineIn,
	}
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
