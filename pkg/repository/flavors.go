package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/wingkiosk/pkg/models"
)

// FlavorRepo backs the legacy ChickenWings_Flavor collection used by the
// unlimited menu.
type FlavorRepo struct {
	col *mongo.Collection
}

func (r *FlavorRepo) List(ctx context.Context) ([]models.WingFlavor, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flavors []models.WingFlavor
	if err = cursor.All(ctx, &flavors); err != nil {
		return nil, err
	}
	return flavors, nil
}

// ListAvailable filters strictly on the availability field. Flavor documents
// always carry it, unlike the Stock collection's legacy data.
func (r *FlavorRepo) ListAvailable(ctx context.Context) ([]models.WingFlavor, error) {
	cursor, err := r.col.Find(ctx, bson.M{"availability": models.Available})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flavors []models.WingFlavor
	if err = cursor.All(ctx, &flavors); err != nil {
		return nil, err
	}
	return flavors, nil
}

func (r *FlavorRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.WingFlavor, error) {
	var flavor models.WingFlavor
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&flavor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flavor, nil
}

func (r *FlavorRepo) Create(ctx context.Context, flavor *models.WingFlavor) error {
	if flavor.ID.IsZero() {
		flavor.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, flavor)
	return err
}

func (r *FlavorRepo) Replace(ctx context.Context, flavor *models.WingFlavor) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": flavor.ID}, flavor)
	return err
}

func (r *FlavorRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, availability models.Availability) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"availability": availability}})
	return err
}

func (r *FlavorRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
