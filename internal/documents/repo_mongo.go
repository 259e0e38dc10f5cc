package documents

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repo on a MongoDB collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a MongoRepo on the "pdfs" collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("pdfs")}
}

// Create inserts a new document.
func (r *MongoRepo) Create(ctx context.Context, doc Document) error {
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

// GetByID fetches a document scoped to its owner.
func (r *MongoRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	var doc Document
	err := r.coll.FindOne(ctx, bson.M{"_id": documentID, "user_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ListByUser returns the user's documents newest-first.
func (r *MongoRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes a document scoped to its owner.
func (r *MongoRepo) Delete(ctx context.Context, userID, documentID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": documentID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*MongoRepo)(nil)
