package database

import (
	"testing"

	"gamestore/config"
	"gamestore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, EVENTS_CACHE_INDEX)
}

func TestNew_WithoutCache(t *testing.T) {
	db, err := New(config.Config{ServerPort: 8280})

	require.NoError(t, err)
	assert.NotNil(t, db.Store)
	assert.Nil(t, db.Cache.Events)
	assert.NoError(t, db.Close())
}

func TestNew_CacheWithoutPort(t *testing.T) {
	_, err := New(config.Config{EventsCacheAddress: "localhost"})

	assert.Error(t, err)
}

func TestTable_InsertionOrderAndSequence(t *testing.T) {
	table := NewTable[models.Post]("posts")

	for i := 0; i < 3; i++ {
		id := table.NextID()
		require.NoError(t, table.Insert(id, &models.Post{BaseModel: models.BaseModel{ID: id}}))
	}

	assert.Equal(t, "posts", table.Name())
	assert.Equal(t, 3, table.Len())
	ids := []int{}
	for _, post := range table.All() {
		ids = append(ids, post.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.Equal(t, 4, table.NextID())
}

func TestTable_DuplicateKey(t *testing.T) {
	table := NewTable[models.Post]("posts")
	require.NoError(t, table.Insert(7, &models.Post{}))

	err := table.Insert(7, &models.Post{})

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 8, table.NextID(), "explicit ids advance the sequence")
}

func TestTable_Queries(t *testing.T) {
	table := NewTable[models.Post]("posts")
	for _, author := range []string{"customer1", "customer2", "customer1"} {
		id := table.NextID()
		require.NoError(t, table.Insert(id, &models.Post{
			BaseModel: models.BaseModel{ID: id},
			AuthorID:  author,
		}))
	}

	byCustomer1 := table.Filter(func(p *models.Post) bool { return p.AuthorID == "customer1" })
	assert.Len(t, byCustomer1, 2)
	assert.Equal(t, 1, byCustomer1[0].ID)
	assert.Equal(t, 3, byCustomer1[1].ID)

	first, ok := table.First(func(p *models.Post) bool { return p.AuthorID == "customer2" })
	assert.True(t, ok)
	assert.Equal(t, 2, first.ID)

	_, ok = table.First(func(p *models.Post) bool { return p.AuthorID == "nobody" })
	assert.False(t, ok)

	row, ok := table.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "customer1", row.AuthorID)
}
