package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// meetingRecordDocument is the stored document. Sent is duplicated at the top
// level so the unsent query can use an index.
type meetingRecordDocument struct {
	ID         string              `bson:"_id"`
	Properties entities.Properties `bson:"properties"`
	Sent       bool                `bson:"sent"`
	CreatedAt  time.Time           `bson:"created_at"`
}

// MongoRecordRepository stores records in a MongoDB collection
type MongoRecordRepository struct {
	collection *mongo.Collection
	urlPrefix  string
}

// NewMongoRecordRepository creates a new mongo record repository
func NewMongoRecordRepository(collection *mongo.Collection, urlPrefix string) *MongoRecordRepository {
	return &MongoRecordRepository{collection: collection, urlPrefix: urlPrefix}
}

// Backend names the store implementation
func (r *MongoRecordRepository) Backend() string { return "mongo" }

// EnsureIndexes creates the index used by QueryUnsent
func (r *MongoRecordRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sent", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

// Create inserts a new document
func (r *MongoRecordRepository) Create(ctx context.Context, props entities.Properties) (*entities.MeetingRecord, error) {
	flat, err := flatten(props)
	if err != nil {
		return nil, err
	}

	doc := meetingRecordDocument{
		ID:         uuid.NewString(),
		Properties: flat.properties(),
		Sent:       flat.Sent,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return r.toRecord(doc), nil
}

// QueryUnsent returns up to limit unsent records, oldest first
func (r *MongoRecordRepository) QueryUnsent(ctx context.Context, limit int) (*entities.RecordPage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit + 1))

	cursor, err := r.collection.Find(ctx, bson.M{"sent": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []meetingRecordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	page := &entities.RecordPage{Records: make([]entities.MeetingRecord, 0, len(docs))}
	if len(docs) > limit {
		page.HasMore = true
		docs = docs[:limit]
	}
	for _, doc := range docs {
		page.Records = append(page.Records, *r.toRecord(doc))
	}
	return page, nil
}

// MarkSent sets the Sent flag on the document and its properties
func (r *MongoRecordRepository) MarkSent(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{
		"sent": true,
		"properties." + entities.PropSent + ".checkbox": true,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entities.ErrRecordNotFound
	}
	return nil
}

func (r *MongoRecordRepository) toRecord(doc meetingRecordDocument) *entities.MeetingRecord {
	props := doc.Properties
	if props == nil {
		props = entities.Properties{}
	}
	return &entities.MeetingRecord{
		ID:         doc.ID,
		URL:        recordURL(r.urlPrefix, doc.ID),
		Properties: props,
		CreatedAt:  doc.CreatedAt,
	}
}
