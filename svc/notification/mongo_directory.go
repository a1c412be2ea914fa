package notification

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	tenantsCollection = "tenants"
	usersCollection   = "users"
)

// MongoDirectory resolves recipients from the "tenants" and "users"
// collections of the shared database.
type MongoDirectory struct {
	tenants *mongo.Collection
	users   *mongo.Collection
}

// NewMongoDirectory creates a directory over the given database.
func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{
		tenants: db.Collection(tenantsCollection),
		users:   db.Collection(usersCollection),
	}
}

func (d *MongoDirectory) FindTenant(ctx context.Context, id string) (*Recipient, error) {
	return findRecipient(ctx, d.tenants, id)
}

func (d *MongoDirectory) FindUser(ctx context.Context, id string) (*Recipient, error) {
	return findRecipient(ctx, d.users, id)
}

func findRecipient(ctx context.Context, coll *mongo.Collection, id string) (*Recipient, error) {
	var r Recipient
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("find recipient in %s: %w", coll.Name(), err)
	}
	return &r, nil
}
