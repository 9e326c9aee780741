package repositories

import (
	"context"
	"errors"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductRepository stores products as documents in a MongoDB collection.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository wraps the products collection.
func NewMongoProductRepository(collection *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{collection: collection}
}

// EnsureIndexes creates the unique index on name.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return storeFailure(err, "failed to create products name index")
	}
	return nil
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, storeFailure(err, "failed to get all products")
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, storeFailure(err, "failed to decode products")
	}
	return products, nil
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, productNotFound(id)
	} else if err != nil {
		return nil, storeFailure(err, "failed to get product by ID "+id)
	}
	return &product, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return productNameTaken(product.Name)
		}
		return storeFailure(err, "failed to create product")
	}
	return nil
}

// Update replaces the whole document, keeping the stored creation time.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()

	set := bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"color":       product.Color,
		"images":      product.Images,
		"size":        product.Size,
		"updatedAt":   product.UpdatedAt,
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return productNameTaken(product.Name)
		}
		return storeFailure(err, "failed to update product")
	}
	if res.MatchedCount == 0 {
		return productNotFound(product.ID)
	}
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, productNotFound(id)
	} else if err != nil {
		return nil, storeFailure(err, "failed to delete product")
	}
	return &product, nil
}
