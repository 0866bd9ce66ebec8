package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"filter-backend/internal/logger"
)

const (
	CustomersCollection = "customers"
	ProvidersCollection = "register_workshop"
	CatalogCollection   = "product_services"
	OrdersCollection    = "orders"
)

// EnsureIndexes creates every index the stores rely on. The unique indexes
// back the check-then-insert uniqueness in registration.
func EnsureIndexes(db *mongo.Database) error {
	for _, ensure := range []func(*mongo.Database) error{
		EnsureCustomerIndexes,
		EnsureProviderIndexes,
		EnsureCatalogIndexes,
		EnsureOrderIndexes,
	} {
		if err := ensure(db); err != nil {
			return err
		}
	}
	return nil
}

func EnsureCustomerIndexes(db *mongo.Database) error {
	return createIndexes(db, CustomersCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("phone_unique").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"email": bson.M{"$type": "string"},
				}),
		},
	})
}

func EnsureProviderIndexes(db *mongo.Database) error {
	return createIndexes(db, ProvidersCollection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "mobileNumber", Value: 1}},
			Options: options.Index().
				SetName("mobileNumber_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"mobileNumber": bson.M{"$type": "string"},
				}),
		},
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		},
	})
}

func EnsureCatalogIndexes(db *mongo.Database) error {
	return createIndexes(db, CatalogCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("providerId_createdAt"),
		},
	})
}

func EnsureOrderIndexes(db *mongo.Database) error {
	return createIndexes(db, OrdersCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("customerId_createdAt"),
		},
	})
}

func createIndexes(db *mongo.Database, collection string, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		logger.Error("ensure indexes failed", zap.String("collection", collection), zap.Error(err))
		return err
	}
	logger.Info("indexes ensured", zap.String("collection", collection), zap.Strings("indexes", names))
	return nil
}
