package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const notificationsCollection = "notifications"

// MongoStorage persists notifications in a MongoDB collection.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a storage backed by the "notifications"
// collection of the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection(notificationsCollection)}
}

func (s *MongoStorage) Insert(ctx context.Context, n *Notification) error {
	if _, err := s.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return &n, nil
}

func (s *MongoStorage) List(ctx context.Context, target Target, opts ListOptions) ([]Notification, error) {
	filter := targetFilter(target)
	if opts.OnlyUnread {
		filter["read"] = false
	}
	if len(opts.Types) > 0 {
		filter["type"] = bson.M{"$in": opts.Types}
	}
	if opts.Since != nil {
		filter["created_at"] = bson.M{"$gte": *opts.Since}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var result []Notification
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return result, nil
}

func (s *MongoStorage) UpdateDeliveryStatus(ctx context.Context, id string, statuses map[Channel]ChannelStatus, suppressed bool, reason string) error {
	set := bson.M{
		"suppressed":        suppressed,
		"suppressed_reason": reason,
		"updated_at":        time.Now().UTC(),
	}
	for ch, st := range statuses {
		set["delivery_status."+string(ch)] = st
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *MongoStorage) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	set := bson.M{
		"read":       true,
		"read_at":    readAt,
		"updated_at": readAt,
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *MongoStorage) CountUnread(ctx context.Context, target Target) (int64, error) {
	filter := targetFilter(target)
	filter["read"] = false
	count, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func targetFilter(t Target) bson.M {
	filter := bson.M{}
	if t.OrganizationID != "" {
		filter["organization_id"] = t.OrganizationID
	}
	if t.UserID != "" {
		filter["user_id"] = t.UserID
	}
	if t.TenantID != "" {
		filter["tenant_id"] = t.TenantID
	}
	return filter
}
