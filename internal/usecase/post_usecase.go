package usecase

import (
	"context"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// PostUsecase holds the post interactions every screen shares: like, save,
// admin delete and publish.
type PostUsecase struct {
	PostRepository *repository.PostRepository
	Cache          *cache.Session
	Mutator        *Mutator
	Identity       model.Identity
	Validate       *validator.Validate
	Log            *zap.Logger
}

func NewPostUsecase(postRepository *repository.PostRepository, cache *cache.Session, mutator *Mutator, identity model.Identity, validate *validator.Validate, zap *zap.Logger) *PostUsecase {
	return &PostUsecase{
		PostRepository: postRepository,
		Cache:          cache,
		Mutator:        mutator,
		Identity:       identity,
		Validate:       validate,
		Log:            zap,
	}
}

func signInRequired() error {
	return &model.ValidationError{
		Code:    constant.ERR_UNATHORIZED_ERROR,
		Message: constant.ERR_SIGN_IN_REQUIRED_MESSAGE,
		Param:   "userId",
	}
}

func (usecase *PostUsecase) ToggleLike(ctx context.Context, postId int64) error {
	if !usecase.Identity.SignedIn() {
		return signInRequired()
	}

	var liked bool

	return usecase.Mutator.Run(ctx, Mutation{
		EntityID: postId,
		Kind:     MutationLike,
		Apply: func() (func(), bool) {
			var delta int
			_, ok := usecase.Cache.Posts.Patch(postId, func(post *model.Post) {
				liked = !post.IsLikedByCurrentUser
				before := post.LikeCount

				post.IsLikedByCurrentUser = liked
				if liked {
					post.LikeCount++
				} else {
					post.LikeCount = max(post.LikeCount-1, 0)
				}
				delta = post.LikeCount - before
			})

			return func() {
				usecase.Cache.Posts.Patch(postId, func(post *model.Post) {
					post.IsLikedByCurrentUser = !liked
					post.LikeCount = max(post.LikeCount-delta, 0)
				})
			}, ok
		},
		Commit: func(ctx context.Context) error {
			if liked {
				return usecase.PostRepository.AddLike(ctx, postId, usecase.Identity.UserId)
			}

			return usecase.PostRepository.RemoveLike(ctx, postId, usecase.Identity.UserId)
		},
	})
}

// ToggleSave flips the saved flag. Unsaving also drops the post from
// savedLists until the server answers.
func (usecase *PostUsecase) ToggleSave(ctx context.Context, postId int64, savedLists ...PositionalList) error {
	if !usecase.Identity.SignedIn() {
		return signInRequired()
	}

	var saved bool

	return usecase.Mutator.Run(ctx, Mutation{
		EntityID: postId,
		Kind:     MutationSave,
		Apply: func() (func(), bool) {
			_, ok := usecase.Cache.Posts.Patch(postId, func(post *model.Post) {
				saved = !post.IsSavedByCurrentUser
				post.IsSavedByCurrentUser = saved
			})
			if !ok {
				return nil, false
			}

			type position struct {
				list  PositionalList
				index int
			}

			var removed []position
			if !saved {
				for _, list := range savedLists {
					if index, found := list.Remove(postId); found {
						removed = append(removed, position{list: list, index: index})
					}
				}
			}

			return func() {
				usecase.Cache.Posts.Patch(postId, func(post *model.Post) {
					post.IsSavedByCurrentUser = !saved
				})
				for _, position := range removed {
					position.list.InsertAt(position.index, postId)
				}
			}, true
		},
		Commit: func(ctx context.Context) error {
			_, err := usecase.PostRepository.ToggleSavePost(ctx, postId, usecase.Identity.UserId)
			return err
		},
	})
}

// DeletePost removes the post from the cache and every list at once. When
// the server refuses, the post goes back to its index in each list.
func (usecase *PostUsecase) DeletePost(ctx context.Context, postId int64, lists ...PositionalList) error {
	if !usecase.Identity.IsAdmin {
		return forbidden("Only admins can delete posts", "postId")
	}

	return usecase.Mutator.Run(ctx, Mutation{
		EntityID: postId,
		Kind:     MutationDelete,
		Apply: func() (func(), bool) {
			return detach(usecase.Cache.Posts, postId, lists)
		},
		Commit: func(ctx context.Context) error {
			return usecase.PostRepository.DeletePost(ctx, postId)
		},
	})
}

// Publish creates a post. It is not optimistic: the server assigns the id
// and the media url.
func (usecase *PostUsecase) Publish(ctx context.Context, draft model.PostDraft) error {
	if !usecase.Identity.SignedIn() {
		return signInRequired()
	}

	err := util.ValidateStruct(usecase.Validate, draft)
	if err != nil {
		return err
	}

	err = usecase.PostRepository.AddOrUpdatePost(ctx, 0, usecase.Identity.UserId, draft)
	if err != nil {
		return err
	}

	usecase.Log.Info("post published", zap.Int64("userId", usecase.Identity.UserId))
	return nil
}
