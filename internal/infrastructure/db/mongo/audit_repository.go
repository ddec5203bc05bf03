package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// AuditRepository appends admin mutations to the admin_audit collection.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"actor_id":  entry.ActorID,
		"action":    entry.Action,
		"target_id": entry.TargetID,
		"at":        entry.At.UTC(),
	}
	if len(entry.Details) > 0 {
		doc["details"] = entry.Details
	}

	_, err := r.db.Collection(collectionAudit).InsertOne(ctx, doc)
	return err
}
