package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

func TestListFilter(t *testing.T) {
	t.Run("owner only", func(t *testing.T) {
		got := listFilter(ports.ListTodosFilter{UserID: "u1", Filter: domain.TodoFilterAll})
		assert.Equal(t, bson.M{"user_id": "u1"}, got)
	})

	t.Run("pending", func(t *testing.T) {
		got := listFilter(ports.ListTodosFilter{UserID: "u1", Filter: domain.TodoFilterPending})
		assert.Equal(t, false, got["completed"])
	})

	t.Run("search is escaped and case-insensitive", func(t *testing.T) {
		got := listFilter(ports.ListTodosFilter{UserID: "u1", Search: "a.b*"})
		or, ok := got["$or"].(bson.A)
		if assert.True(t, ok) && assert.Len(t, or, 3) {
			re := or[0].(bson.M)["title"].(primitive.Regex)
			assert.Equal(t, `a\.b\*`, re.Pattern)
			assert.Equal(t, "i", re.Options)
		}
	})
}
