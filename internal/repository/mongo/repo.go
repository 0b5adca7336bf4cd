package mongo

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

	"pinboard/internal/domain"
)

// messageDoc is the persisted shape of a message.
type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"message"`
	CreatedAt time.Time          `bson:"date"`
}

func (d messageDoc) toDomain() domain.Message {
	return domain.Message{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}

type Repository struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// Connect establishes the store connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database, collection string) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Repository{
		coll:   client.Database(database).Collection(collection),
		client: client,
	}, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) Insert(ctx context.Context, m *domain.Message) error {
	doc := messageDoc{
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%w: unexpected inserted id type %T", domain.ErrStorageUnavailable, res.InsertedID)
	}

	m.ID = oid.Hex()
	return nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Message, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	messages := make([]domain.Message, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, d.toDomain())
	}
	return messages, nil
}

func (r *Repository) UpdateText(ctx context.Context, id, text string) (*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var doc messageDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"message": text}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	m := doc.toDomain()
	return &m, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
