package notes

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

// NewMongoRepo constructs a MongoRepo on the "notes" collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("notes")}
}

// Create inserts a new note.
func (r *MongoRepo) Create(ctx context.Context, note Note) error {
	_, err := r.coll.InsertOne(ctx, note)
	return err
}

// GetByID fetches a note scoped to its owner.
func (r *MongoRepo) GetByID(ctx context.Context, userID, noteID string) (Note, error) {
	var note Note
	err := r.coll.FindOne(ctx, bson.M{"_id": noteID, "user_id": userID}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, err
	}
	return note, nil
}

// ListByUser returns the user's notes newest-updated first, optionally
// filtered by document.
func (r *MongoRepo) ListByUser(ctx context.Context, userID, documentID string) ([]Note, error) {
	filter := bson.M{"user_id": userID}
	if documentID != "" {
		filter["pdf_id"] = documentID
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []Note
	if err := cursor.All(ctx, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Update replaces a note's mutable fields scoped to its owner.
func (r *MongoRepo) Update(ctx context.Context, note Note) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": note.ID, "user_id": note.UserID},
		bson.M{"$set": bson.M{
			"title":      note.Title,
			"content":    note.Content,
			"tags":       note.Tags,
			"updated_at": note.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a note scoped to its owner.
func (r *MongoRepo) Delete(ctx context.Context, userID, noteID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": noteID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*MongoRepo)(nil)
