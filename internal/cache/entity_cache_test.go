package cache

import (
	"sync"
	"testing"

	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEntityCacheUpsertReplaces(t *testing.T) {
	posts := NewEntityCache[model.Post]("post", zap.NewNop())

	posts.Upsert(model.Post{Id: 1, Description: "first", LikeCount: 3, IsLikedByCurrentUser: true})
	posts.Upsert(model.Post{Id: 1, Description: "second"})

	post, ok := posts.Get(1)
	require.True(t, ok)
	assert.Equal(t, "second", post.Description)
	assert.Equal(t, 0, post.LikeCount)
	assert.False(t, post.IsLikedByCurrentUser)
	assert.Equal(t, 1, posts.Len())
}

func TestEntityCachePatch(t *testing.T) {
	posts := NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 7, LikeCount: 9})

	before, ok := posts.Patch(7, func(post *model.Post) {
		post.LikeCount++
		post.IsLikedByCurrentUser = true
	})
	require.True(t, ok)
	assert.Equal(t, 9, before.LikeCount)
	assert.False(t, before.IsLikedByCurrentUser)

	after, _ := posts.Get(7)
	assert.Equal(t, 10, after.LikeCount)
	assert.True(t, after.IsLikedByCurrentUser)

	called := false
	_, ok = posts.Patch(8, func(post *model.Post) { called = true })
	assert.False(t, ok)
	assert.False(t, called)
}

func TestEntityCachePatchCannotChangeId(t *testing.T) {
	posts := NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 7, LikeCount: 1})

	_, ok := posts.Patch(7, func(post *model.Post) {
		post.Id = 8
		post.LikeCount = 100
	})
	assert.True(t, ok)

	post, _ := posts.Get(7)
	assert.Equal(t, 1, post.LikeCount)
	_, found := posts.Get(8)
	assert.False(t, found)
}

func TestEntityCacheRemoveAndClear(t *testing.T) {
	ads := NewEntityCache[model.Ad]("ad", zap.NewNop())
	ads.UpsertMany([]model.Ad{{Id: 1}, {Id: 2}, {Id: 3}})

	removed, ok := ads.Remove(2)
	require.True(t, ok)
	assert.Equal(t, int64(2), removed.Id)

	_, ok = ads.Remove(2)
	assert.False(t, ok)

	_, err := ads.MustGet(2)
	assert.ErrorIs(t, err, ErrNotFound)

	ads.Clear()
	assert.Equal(t, 0, ads.Len())
}

func TestEntityCacheConcurrentPatch(t *testing.T) {
	posts := NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 1})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			posts.Patch(1, func(post *model.Post) { post.CommentCount++ })
		}()
	}
	wg.Wait()

	post, _ := posts.Get(1)
	assert.Equal(t, 50, post.CommentCount)
}

func TestSessionClear(t *testing.T) {
	session := NewSession(zap.NewNop())
	session.Posts.Upsert(model.Post{Id: 1})
	session.Comments.Upsert(model.Comment{Id: 2})
	session.Ads.Upsert(model.Ad{Id: 3})
	session.Notifications.Upsert(model.Notification{Id: 4})

	session.Clear()

	assert.Equal(t, 0, session.Posts.Len())
	assert.Equal(t, 0, session.Comments.Len())
	assert.Equal(t, 0, session.Ads.Len())
	assert.Equal(t, 0, session.Notifications.Len())
}
