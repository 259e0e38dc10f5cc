package conversations

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repo on a MongoDB collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo constructs a MongoRepo on the "conversations" collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("conversations")}
}

// Create inserts a new conversation.
func (r *MongoRepo) Create(ctx context.Context, conv Conversation) error {
	_, err := r.coll.InsertOne(ctx, conv)
	return err
}

// GetByID fetches a conversation scoped to its owner.
func (r *MongoRepo) GetByID(ctx context.Context, userID, conversationID string) (Conversation, error) {
	var conv Conversation
	err := r.coll.FindOne(ctx, bson.M{"_id": conversationID, "user_id": userID}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Conversation{}, ErrNotFound
	}
	if err != nil {
		return Conversation{}, err
	}
	return conv, nil
}

// AppendMessages pushes messages and bumps updated_at in one update.
func (r *MongoRepo) AppendMessages(ctx context.Context, userID, conversationID string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": conversationID, "user_id": userID},
		bson.M{
			"$push": bson.M{"messages": bson.M{"$each": msgs}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func nonEmptyFilter(userID, documentID string) bson.M {
	return bson.M{
		"user_id":    userID,
		"pdf_id":     documentID,
		"messages.0": bson.M{"$exists": true},
	}
}

// ListByDocument pages conversations newest-updated first.
func (r *MongoRepo) ListByDocument(ctx context.Context, userID, documentID string, skip, limit int) ([]Conversation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, nonEmptyFilter(userID, documentID), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// CountByDocument counts a document's conversations that have messages.
func (r *MongoRepo) CountByDocument(ctx context.Context, userID, documentID string) (int64, error) {
	return r.coll.CountDocuments(ctx, nonEmptyFilter(userID, documentID))
}

var _ Repo = (*MongoRepo)(nil)
