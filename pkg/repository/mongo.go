package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/wingkiosk/pkg/config"
)

type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.MongoDBConfig
}

func NewMongo(cfg *config.MongoDBConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &Mongo{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
	}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Orders() *OrderRepo {
	return &OrderRepo{col: m.database.Collection(m.config.Orders)}
}

func (m *Mongo) Catalog() *CatalogRepo {
	return &CatalogRepo{col: m.database.Collection(m.config.Stock)}
}

func (m *Mongo) Flavors() *FlavorRepo {
	return &FlavorRepo{col: m.database.Collection(m.config.Flavors)}
}

func (m *Mongo) Users() *UserRepo {
	return &UserRepo{col: m.database.Collection(m.config.Users)}
}
