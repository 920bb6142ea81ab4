package mongodb

import (
	"testing"

	"usersync/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSetDocument_OnlySuppliedFields(t *testing.T) {
	fields := entity.ContactFields{"address": "7 River Road"}

	got := setDocument(fields.AsAny())

	assert.Equal(t, bson.M{"$set": bson.M{"address": "7 River Road"}}, got)
}

func TestSetDocument_Empty(t *testing.T) {
	got := setDocument(nil)

	assert.Equal(t, bson.M{"$set": bson.M{}}, got)
}

func TestOrderIndexes(t *testing.T) {
	indexes := orderIndexes()

	var keys []bson.D
	for _, idx := range indexes {
		keys = append(keys, idx.Keys.(bson.D))
	}

	assert.Equal(t, []bson.D{
		{{Key: "order_id", Value: 1}},
		{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}},
		{{Key: "status", Value: 1}},
	}, keys)
	assert.True(t, *indexes[0].Options.Unique)
}
