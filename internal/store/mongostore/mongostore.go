// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"filter-backend/internal/database"
	"filter-backend/internal/models"
	"filter-backend/internal/store"
)

const (
	queryTimeout = 5 * time.Second
	pingTimeout  = 2 * time.Second
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type Store struct {
	db        *mongo.Database
	customers *mongo.Collection
	providers *mongo.Collection
	items     *mongo.Collection
	orders    *mongo.Collection
}

var _ store.Store = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{
		db:        db,
		customers: db.Collection(database.CustomersCollection),
		providers: db.Collection(database.ProvidersCollection),
		items:     db.Collection(database.CatalogCollection),
		orders:    db.Collection(database.OrdersCollection),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", coll.Name(), err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", coll.Name(), store.ErrDuplicate)
		}
		return primitive.NilObjectID, fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// ---- customers ----

func (s *Store) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return findOne[models.Customer](ctx, s.customers, bson.M{"phone": phone})
}

func (s *Store) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return findOne[models.Customer](ctx, s.customers, bson.M{"email": email})
}

func (s *Store) InsertCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	_, err := insertOne(ctx, s.customers, customer)
	return err
}

// ---- providers ----

func (s *Store) FindProviderByID(ctx context.Context, id primitive.ObjectID) (*models.Provider, error) {
	return findOne[models.Provider](ctx, s.providers, bson.M{"_id": id})
}

func (s *Store) FindProviderByMobile(ctx context.Context, mobile string) (*models.Provider, error) {
	return findOne[models.Provider](ctx, s.providers, bson.M{"mobileNumber": mobile})
}

func (s *Store) FindOwnerByMobile(ctx context.Context, mobile string) (*models.Provider, error) {
	return findOne[models.Provider](ctx, s.providers, bson.M{
		"type":         models.ProviderTypeOwner,
		"mobileNumber": mobile,
	})
}

func (s *Store) FindProviderByEmail(ctx context.Context, email string) (*models.Provider, error) {
	return findOne[models.Provider](ctx, s.providers, bson.M{"email": email})
}

func (s *Store) InsertProvider(ctx context.Context, provider *models.Provider) error {
	if provider.ID.IsZero() {
		provider.ID = primitive.NewObjectID()
	}
	_, err := insertOne(ctx, s.providers, provider)
	return err
}

func (s *Store) ListProviders(ctx context.Context, page store.Page) ([]models.Provider, error) {
	opts := options.Find().SetSort(newestFirst)
	if page.Limit > 0 {
		opts.SetSkip(page.Skip).SetLimit(page.Limit)
	}
	return findMany[models.Provider](ctx, s.providers, bson.M{
		"status": bson.M{"$ne": models.ProviderStatusRejected},
	}, opts)
}

// ---- catalog ----

func (s *Store) InsertItem(ctx context.Context, item *models.CatalogItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	_, err := insertOne(ctx, s.items, item)
	return err
}

func (s *Store) FindItemByID(ctx context.Context, id primitive.ObjectID) (*models.CatalogItem, error) {
	return findOne[models.CatalogItem](ctx, s.items, bson.M{"_id": id})
}

func (s *Store) ListItemsByProvider(ctx context.Context, providerID string) ([]models.CatalogItem, error) {
	return findMany[models.CatalogItem](ctx, s.items, bson.M{"providerId": providerID}, options.Find().SetSort(newestFirst))
}

// UpdateItem overwrites the mutable fields of the stored item and returns the
// document as it is after the write.
func (s *Store) UpdateItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{
		"name":          item.Name,
		"price":         item.Price,
		"category":      item.Category,
		"status":        item.Status,
		"images":        item.Images,
		"subCategory":   item.SubCategory,
		"stock":         item.Stock,
		"sku":           item.SKU,
		"uom":           item.UOM,
		"purchasePrice": item.PurchasePrice,
		"duration":      item.Duration,
		"serviceTypes":  item.ServiceTypes,
		"updatedAt":     item.UpdatedAt,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.CatalogItem
	err := s.items.FindOneAndUpdate(ctx, bson.M{"_id": item.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("update catalog item: %w", err)
	}
	return &updated, nil
}

func (s *Store) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ---- orders ----

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := insertOne(ctx, s.orders, order)
	return err
}

func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return findMany[models.Order](ctx, s.orders, bson.M{"customerId": customerID}, options.Find().SetSort(newestFirst))
}
