package usecase

import (
	"context"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProfileScreen shows the signed-in user's posts and saved posts.
type ProfileScreen struct {
	PostRepository *repository.PostRepository
	Posts          *PostUsecase
	Comments       *CommentUsecase
	Selection      *SelectionController
	Log            *zap.Logger

	myPosts    *Paginator[model.Post]
	savedPosts *Paginator[model.Post]
}

func NewProfileScreen(postRepository *repository.PostRepository, posts *PostUsecase, comments *CommentUsecase, cache *cache.Session, zap *zap.Logger) *ProfileScreen {
	userId := posts.Identity.UserId

	myPosts := NewSinglePagePaginator("my_posts", cache.Posts, func(ctx context.Context) ([]model.Post, error) {
		return postRepository.GetMyPosts(ctx, userId)
	}, zap, WithMerge(model.KeepInteractionFlags))

	// everything in this list is saved, whatever the cache knew before
	savedPosts := NewSinglePagePaginator("saved_posts", cache.Posts, func(ctx context.Context) ([]model.Post, error) {
		return postRepository.GetMySavedPosts(ctx, userId)
	}, zap, WithMerge(model.KeepInteractionFlags), WithTransform(func(post model.Post) model.Post {
		post.IsSavedByCurrentUser = true
		return post
	}))

	return &ProfileScreen{
		PostRepository: postRepository,
		Posts:          posts,
		Comments:       comments,
		Selection:      comments.Selection,
		Log:            zap,
		myPosts:        myPosts,
		savedPosts:     savedPosts,
	}
}

func (screen *ProfileScreen) Load(ctx context.Context) error {
	if !screen.Posts.Identity.SignedIn() {
		return signInRequired()
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return screen.myPosts.LoadPage(ctx, 1, true)
	})

	group.Go(func() error {
		return screen.savedPosts.LoadPage(ctx, 1, true)
	})

	return group.Wait()
}

func (screen *ProfileScreen) MyPosts() []model.Post {
	return screen.myPosts.Items()
}

func (screen *ProfileScreen) SavedPosts() []model.Post {
	return screen.savedPosts.Items()
}

func (screen *ProfileScreen) ToggleLike(ctx context.Context, postId int64) error {
	return screen.Posts.ToggleLike(ctx, postId)
}

// ToggleSave drops an unsaved post from the saved list right away.
func (screen *ProfileScreen) ToggleSave(ctx context.Context, postId int64) error {
	return screen.Posts.ToggleSave(ctx, postId, screen.savedPosts)
}

func (screen *ProfileScreen) RequestDeletePost(postId int64) error {
	return screen.Selection.RequestPostDelete(postId)
}

func (screen *ProfileScreen) ConfirmDeletePost(ctx context.Context) error {
	postId, err := screen.Selection.takePendingDelete(DeleteTargetPost)
	if err != nil {
		return err
	}

	return screen.Posts.DeletePost(ctx, postId, screen.myPosts, screen.savedPosts)
}

func (screen *ProfileScreen) CancelDelete() {
	screen.Selection.ClearPendingDelete()
}

func (screen *ProfileScreen) Close() {
	screen.myPosts.Close()
	screen.savedPosts.Close()
	screen.Comments.Close()
}
