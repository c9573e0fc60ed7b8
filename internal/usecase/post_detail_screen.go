package usecase

import (
	"context"
	"sync"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"

	"go.uber.org/zap"
)

type PostDetailScreen struct {
	PostRepository *repository.PostRepository
	Posts          *PostUsecase
	Comments       *CommentUsecase
	Cache          *cache.Session
	Log            *zap.Logger

	mu     sync.Mutex
	postId int64
	closed bool
}

func NewPostDetailScreen(postRepository *repository.PostRepository, posts *PostUsecase, comments *CommentUsecase, cache *cache.Session, zap *zap.Logger) *PostDetailScreen {
	return &PostDetailScreen{
		PostRepository: postRepository,
		Posts:          posts,
		Comments:       comments,
		Cache:          cache,
		Log:            zap,
	}
}

// Load fetches the post and upserts it, keeping the like and save flags
// this session already knows.
func (screen *PostDetailScreen) Load(ctx context.Context, postId int64) error {
	screen.mu.Lock()
	screen.postId = postId
	screen.mu.Unlock()

	post, err := screen.PostRepository.GetPostById(ctx, postId)
	if err != nil {
		return err
	}

	screen.mu.Lock()
	defer screen.mu.Unlock()

	if screen.closed || screen.postId != postId {
		return nil
	}

	if cached, ok := screen.Cache.Posts.Get(postId); ok {
		post = model.KeepInteractionFlags(cached, post)
	}
	screen.Cache.Posts.Upsert(post)

	return nil
}

// Post is false once the post was deleted.
func (screen *PostDetailScreen) Post() (model.Post, bool) {
	screen.mu.Lock()
	postId := screen.postId
	screen.mu.Unlock()

	return screen.Cache.Posts.Get(postId)
}

func (screen *PostDetailScreen) ToggleLike(ctx context.Context) error {
	post, ok := screen.Post()
	if !ok {
		return nil
	}

	return screen.Posts.ToggleLike(ctx, post.Id)
}

func (screen *PostDetailScreen) ToggleSave(ctx context.Context) error {
	post, ok := screen.Post()
	if !ok {
		return nil
	}

	return screen.Posts.ToggleSave(ctx, post.Id)
}

func (screen *PostDetailScreen) OpenComments(ctx context.Context) error {
	post, ok := screen.Post()
	if !ok {
		return nil
	}

	return screen.Comments.Open(ctx, post.Id)
}

func (screen *PostDetailScreen) Close() {
	screen.mu.Lock()
	screen.closed = true
	screen.mu.Unlock()

	screen.Comments.Close()
}
