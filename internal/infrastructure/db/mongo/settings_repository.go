package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// SettingsRepository stores one document per user, keyed by user ID.
type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

func (r *SettingsRepository) Find(ctx context.Context, userID string) (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Settings
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts s. A concurrent insert of the same user's defaults is not an error.
func (r *SettingsRepository) Create(ctx context.Context, s *domain.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, s); err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"accent_color":        s.AccentColor,
			"email_notifications": s.EmailNotifications,
			"updated_at":          s.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": s.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out domain.Settings
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": s.UserID}, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	return &out, nil
}

func (r *SettingsRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("delete settings of %s: %w", userID, err)
	}
	return nil
}
