package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func likeMutation(posts *cache.EntityCache[model.Post], postId int64, commit func(ctx context.Context) error) Mutation {
	return Mutation{
		EntityID: postId,
		Kind:     MutationLike,
		Apply: func() (func(), bool) {
			before, ok := posts.Patch(postId, func(post *model.Post) {
				post.IsLikedByCurrentUser = true
				post.LikeCount++
			})

			return func() {
				posts.Patch(postId, func(post *model.Post) {
					post.IsLikedByCurrentUser = before.IsLikedByCurrentUser
					post.LikeCount = before.LikeCount
				})
			}, ok
		},
		Commit: commit,
	}
}

func TestMutatorConfirms(t *testing.T) {
	posts := cache.NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 1, LikeCount: 9})
	mutator := NewMutator(zap.NewNop())

	confirmed := false
	mutation := likeMutation(posts, 1, func(ctx context.Context) error {
		post, _ := posts.Get(1)
		// applied before the network call
		assert.Equal(t, 10, post.LikeCount)
		assert.Equal(t, MutationAppliedLocally, mutator.State(1, MutationLike))
		return nil
	})
	mutation.Confirm = func(ctx context.Context) {
		confirmed = true
	}

	require.NoError(t, mutator.Run(context.Background(), mutation))

	post, _ := posts.Get(1)
	assert.Equal(t, 10, post.LikeCount)
	assert.True(t, post.IsLikedByCurrentUser)
	assert.True(t, confirmed)
	assert.Equal(t, MutationConfirmed, mutator.State(1, MutationLike))
}

func TestMutatorRevertsOnFailure(t *testing.T) {
	posts := cache.NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 1, LikeCount: 9})
	mutator := NewMutator(zap.NewNop())

	failure := errors.New("server said no")
	err := mutator.Run(context.Background(), likeMutation(posts, 1, func(ctx context.Context) error {
		return failure
	}))
	require.ErrorIs(t, err, failure)

	post, _ := posts.Get(1)
	assert.Equal(t, 9, post.LikeCount)
	assert.False(t, post.IsLikedByCurrentUser)
	assert.Equal(t, MutationReverted, mutator.State(1, MutationLike))
}

func TestMutatorRevertsOnPanic(t *testing.T) {
	posts := cache.NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 1, LikeCount: 9})
	mutator := NewMutator(zap.NewNop())

	err := mutator.Run(context.Background(), likeMutation(posts, 1, func(ctx context.Context) error {
		panic("boom")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	post, _ := posts.Get(1)
	assert.Equal(t, 9, post.LikeCount)
}

func TestMutatorRejectsSecondInFlight(t *testing.T) {
	posts := cache.NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 1, LikeCount: 9})
	mutator := NewMutator(zap.NewNop())

	gate := make(chan struct{})
	commits := 0
	commit := func(ctx context.Context) error {
		commits++
		<-gate
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- mutator.Run(context.Background(), likeMutation(posts, 1, commit))
	}()

	require.Eventually(t, func() bool {
		return mutator.State(1, MutationLike) == MutationAppliedLocally
	}, time.Second, 5*time.Millisecond)

	err := mutator.Run(context.Background(), likeMutation(posts, 1, commit))
	assert.ErrorIs(t, err, ErrMutationInFlight)

	// another kind on the same entity is not blocked
	saveErr := mutator.Run(context.Background(), Mutation{
		EntityID: 1,
		Kind:     MutationSave,
		Apply:    func() (func(), bool) { return func() {}, true },
		Commit:   func(ctx context.Context) error { return nil },
	})
	assert.NoError(t, saveErr)

	close(gate)
	require.NoError(t, <-done)

	assert.Equal(t, 1, commits)
	post, _ := posts.Get(1)
	assert.Equal(t, 10, post.LikeCount)
}

func TestMutatorStaleEntityIsNoop(t *testing.T) {
	posts := cache.NewEntityCache[model.Post]("post", zap.NewNop())
	mutator := NewMutator(zap.NewNop())

	committed := false
	err := mutator.Run(context.Background(), likeMutation(posts, 42, func(ctx context.Context) error {
		committed = true
		return nil
	}))

	assert.NoError(t, err)
	assert.False(t, committed)
	assert.Equal(t, MutationIdle, mutator.State(42, MutationLike))
}

func TestMutatorConfirmPanicKeepsConfirmed(t *testing.T) {
	posts := cache.NewEntityCache[model.Post]("post", zap.NewNop())
	posts.Upsert(model.Post{Id: 1})
	mutator := NewMutator(zap.NewNop())

	mutation := likeMutation(posts, 1, func(ctx context.Context) error { return nil })
	mutation.Confirm = func(ctx context.Context) {
		panic("confirm failed")
	}

	require.NoError(t, mutator.Run(context.Background(), mutation))
	assert.Equal(t, MutationConfirmed, mutator.State(1, MutationLike))
}

func TestMutationStateString(t *testing.T) {
	assert.Equal(t, "idle", MutationIdle.String())
	assert.Equal(t, "applied_locally", MutationAppliedLocally.String())
	assert.Equal(t, "confirmed", MutationConfirmed.String())
	assert.Equal(t, "reverted", MutationReverted.String())
}
