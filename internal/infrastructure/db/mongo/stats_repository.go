package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/taskboard/internal/core/domain"
)

const topUsersLimit = 5

// StatsRepository computes the admin dashboard aggregates.
type StatsRepository struct {
	users *mongo.Collection
	todos *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		users: db.Collection(collectionUsers),
		todos: db.Collection(collectionTodos),
	}
}

// Collect fills the count-based fields of AdminStats. Pending and the system
// ratios are derived by the caller.
func (r *StatsRepository) Collect(ctx context.Context, recentSince, dailySince time.Time) (*domain.AdminStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		stats domain.AdminStats
		err   error
	)

	if stats.Users.Total, err = r.users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.Users.Recent, err = r.users.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": recentSince}}); err != nil {
		return nil, fmt.Errorf("count recent users: %w", err)
	}
	if stats.Users.ByRole, err = groupCount(ctx, r.users, bson.M{}, "$role"); err != nil {
		return nil, fmt.Errorf("users by role: %w", err)
	}
	if stats.Users.DailyRegistrations, err = dailyCount(ctx, r.users, dailySince); err != nil {
		return nil, fmt.Errorf("daily registrations: %w", err)
	}
	if stats.Users.Top, err = r.topUsers(ctx); err != nil {
		return nil, err
	}

	if stats.Todos.Total, err = r.todos.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("count todos: %w", err)
	}
	if stats.Todos.Completed, err = r.todos.CountDocuments(ctx, bson.M{"completed": true}); err != nil {
		return nil, fmt.Errorf("count completed todos: %w", err)
	}
	if stats.Todos.Recent, err = r.todos.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": recentSince}}); err != nil {
		return nil, fmt.Errorf("count recent todos: %w", err)
	}
	if stats.Todos.ByPriority, err = groupCount(ctx, r.todos, bson.M{}, "$priority"); err != nil {
		return nil, fmt.Errorf("todos by priority: %w", err)
	}
	if stats.Todos.DailyCreation, err = dailyCount(ctx, r.todos, dailySince); err != nil {
		return nil, fmt.Errorf("daily todos: %w", err)
	}

	return &stats, nil
}

// topUsers returns the users owning the most todos. When fewer than
// topUsersLimit users own any, the list is padded with the newest accounts.
func (r *StatsRepository) topUsers(ctx context.Context) ([]domain.TopUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "n", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: topUsersLimit}},
	}
	cursor, err := r.todos.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}
	var rows []countRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode top users: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Key)
	}
	owners, err := r.findUsers(ctx, bson.M{"_id": bson.M{"$in": ids}}, 0)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]mongoUser, len(owners))
	for _, u := range owners {
		byID[u.ID] = u
	}

	top := make([]domain.TopUser, 0, topUsersLimit)
	for _, row := range rows {
		u, ok := byID[row.Key]
		if !ok {
			continue
		}
		top = append(top, topUser(u, row.N))
	}

	if missing := topUsersLimit - len(top); missing > 0 {
		rest, err := r.findUsers(ctx, bson.M{"_id": bson.M{"$nin": ids}}, int64(missing))
		if err != nil {
			return nil, err
		}
		for _, u := range rest {
			top = append(top, topUser(u, 0))
		}
	}
	return top, nil
}

func (r *StatsRepository) findUsers(ctx context.Context, filter bson.M, limit int64) ([]mongoUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return docs, nil
}

func topUser(u mongoUser, n int64) domain.TopUser {
	return domain.TopUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      domain.Role(u.Role),
		TodoCount: n,
	}
}

func groupCount(ctx context.Context, coll *mongo.Collection, match bson.M, field string) (map[string]int64, error) {
	return aggregateCounts(ctx, coll, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: field},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
}

// dailyCount buckets documents created since since by UTC calendar day,
// keyed YYYY-MM-DD.
func dailyCount(ctx context.Context, coll *mongo.Collection, since time.Time) (map[string]int64, error) {
	day := bson.D{{Key: "$dateToString", Value: bson.D{
		{Key: "format", Value: "%Y-%m-%d"},
		{Key: "date", Value: "$created_at"},
	}}}
	return aggregateCounts(ctx, coll, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: day},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
}
