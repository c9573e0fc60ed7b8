package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FeedScreen is the home screen: category chips, the ad slider, the unread
// badge and the post feed.
type FeedScreen struct {
	PostRepository         *repository.PostRepository
	AdRepository           *repository.AdRepository
	ContentRepository      *repository.ContentRepository
	NotificationRepository *repository.NotificationRepository
	Posts                  *PostUsecase
	Comments               *CommentUsecase
	Selection              *SelectionController
	Cache                  *cache.Session
	Log                    *zap.Logger

	feed *Paginator[model.Post]

	mu          sync.Mutex
	categoryId  *int64
	keyword     string
	categories  []model.PostCategory
	slider      []model.Ad
	unreadCount int
}

func NewFeedScreen(postRepository *repository.PostRepository, adRepository *repository.AdRepository, contentRepository *repository.ContentRepository,
	notificationRepository *repository.NotificationRepository, posts *PostUsecase, comments *CommentUsecase, cache *cache.Session, pageSize int, zap *zap.Logger) *FeedScreen {
	screen := &FeedScreen{
		PostRepository:         postRepository,
		AdRepository:           adRepository,
		ContentRepository:      contentRepository,
		NotificationRepository: notificationRepository,
		Posts:                  posts,
		Comments:               comments,
		Selection:              comments.Selection,
		Cache:                  cache,
		Log:                    zap,
	}

	screen.feed = NewPaginator("feed", cache.Posts, screen.fetchPosts, zap,
		WithMerge(model.KeepInteractionFlags),
		WithPageSize[model.Post](pageSize),
	)

	return screen
}

// fetchPosts serves the all-posts query page by page. Search and category
// queries have no paging, so their first page is the whole list and later
// pages are empty.
func (screen *FeedScreen) fetchPosts(ctx context.Context, pageNumber int, pageSize int) (model.PageResult[model.Post], error) {
	screen.mu.Lock()
	categoryId := screen.categoryId
	keyword := screen.keyword
	screen.mu.Unlock()

	if categoryId == nil && keyword == "" {
		return screen.PostRepository.GetAllPosts(ctx, pageNumber, pageSize)
	}

	if pageNumber > 1 {
		return model.PageResult[model.Post]{}, nil
	}

	var posts []model.Post
	var err error
	if keyword != "" {
		posts, err = screen.PostRepository.SearchPosts(ctx, keyword)
	} else {
		posts, err = screen.PostRepository.GetPostsByCategoryId(ctx, *categoryId)
	}
	if err != nil {
		return model.PageResult[model.Post]{}, err
	}

	return model.PageResult[model.Post]{Items: posts, TotalCount: len(posts)}, nil
}

// Load fetches everything the home screen shows at once. Only the feed
// error is returned; the chips, slider and badge just stay empty.
func (screen *FeedScreen) Load(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		screen.loadCategories(ctx)
		return nil
	})

	group.Go(func() error {
		screen.loadSlider(ctx)
		return nil
	})

	group.Go(func() error {
		screen.loadUnreadCount(ctx)
		return nil
	})

	group.Go(func() error {
		return screen.feed.LoadPage(ctx, 1, true)
	})

	return group.Wait()
}

func (screen *FeedScreen) loadCategories(ctx context.Context) {
	categories, err := screen.ContentRepository.GetPostCategories(ctx)
	if err != nil {
		screen.Log.Warn("failed to load post categories", zap.Error(err))
		return
	}

	visible := make([]model.PostCategory, 0, len(categories))
	for _, category := range categories {
		if category.Visible() {
			visible = append(visible, category)
		}
	}

	screen.mu.Lock()
	screen.categories = visible
	screen.mu.Unlock()
}

func (screen *FeedScreen) loadSlider(ctx context.Context) {
	page, err := screen.AdRepository.GetAds(ctx, 1, constant.AD_SLIDER_SIZE)
	if err != nil {
		screen.Log.Warn("failed to load ad slider", zap.Error(err))
		return
	}

	slider := make([]model.Ad, 0, len(page.Items))
	for _, ad := range page.Items {
		if ad.HasImage() {
			slider = append(slider, ad)
		}
	}
	screen.Cache.Ads.UpsertMany(slider)

	screen.mu.Lock()
	screen.slider = slider
	screen.mu.Unlock()
}

func (screen *FeedScreen) loadUnreadCount(ctx context.Context) {
	userId := screen.Posts.Identity.UserId
	if userId == 0 {
		return
	}

	notifications, err := screen.NotificationRepository.GetMyNotifications(ctx, userId)
	if err != nil {
		screen.Log.Warn("failed to load unread notifications", zap.Int64("userId", userId), zap.Error(err))
		return
	}

	unread := 0
	for _, notification := range notifications {
		if !notification.IsRead {
			unread++
		}
	}

	screen.mu.Lock()
	screen.unreadCount = unread
	screen.mu.Unlock()
}

// SelectCategory switches the feed to one category, or back to all posts
// when categoryId is nil, and loads the first page in place of the old list.
func (screen *FeedScreen) SelectCategory(ctx context.Context, categoryId *int64) error {
	screen.mu.Lock()
	screen.categoryId = categoryId
	screen.keyword = ""
	screen.mu.Unlock()

	screen.feed.Reset()
	return screen.feed.LoadPage(ctx, 1, true)
}

// Search replaces the feed with the posts matching keyword. An empty
// keyword goes back to the selected category, or all posts.
func (screen *FeedScreen) Search(ctx context.Context, keyword string) error {
	screen.mu.Lock()
	screen.keyword = strings.TrimSpace(keyword)
	screen.mu.Unlock()

	screen.feed.Reset()
	return screen.feed.LoadPage(ctx, 1, true)
}

func (screen *FeedScreen) Keyword() string {
	screen.mu.Lock()
	defer screen.mu.Unlock()

	return screen.keyword
}

func (screen *FeedScreen) CategoryId() *int64 {
	screen.mu.Lock()
	defer screen.mu.Unlock()

	return screen.categoryId
}

func (screen *FeedScreen) Refresh(ctx context.Context) error {
	return screen.feed.LoadPage(ctx, 1, true)
}

func (screen *FeedScreen) LoadMore(ctx context.Context) error {
	return screen.feed.LoadMore(ctx)
}

func (screen *FeedScreen) Feed() []model.Post {
	return screen.feed.Items()
}

func (screen *FeedScreen) Paginator() *Paginator[model.Post] {
	return screen.feed
}

func (screen *FeedScreen) Categories() []model.PostCategory {
	screen.mu.Lock()
	defer screen.mu.Unlock()

	return append([]model.PostCategory(nil), screen.categories...)
}

func (screen *FeedScreen) Slider() []model.Ad {
	screen.mu.Lock()
	defer screen.mu.Unlock()

	return append([]model.Ad(nil), screen.slider...)
}

func (screen *FeedScreen) UnreadCount() int {
	screen.mu.Lock()
	defer screen.mu.Unlock()

	return screen.unreadCount
}

func (screen *FeedScreen) ToggleLike(ctx context.Context, postId int64) error {
	return screen.Posts.ToggleLike(ctx, postId)
}

// ToggleSave keeps the post in the feed either way.
func (screen *FeedScreen) ToggleSave(ctx context.Context, postId int64) error {
	return screen.Posts.ToggleSave(ctx, postId)
}

// Publish submits a new post and reloads the first page, where the server
// lists it. Pages loaded so far are dropped.
func (screen *FeedScreen) Publish(ctx context.Context, draft model.PostDraft) error {
	err := screen.Posts.Publish(ctx, draft)
	if err != nil {
		return err
	}

	// a LoadMore still out would swallow the reload
	screen.feed.Reset()
	return screen.feed.LoadPage(ctx, 1, true)
}

func (screen *FeedScreen) RequestDeletePost(postId int64) error {
	return screen.Selection.RequestPostDelete(postId)
}

func (screen *FeedScreen) ConfirmDeletePost(ctx context.Context) error {
	postId, err := screen.Selection.takePendingDelete(DeleteTargetPost)
	if err != nil {
		return err
	}

	return screen.Posts.DeletePost(ctx, postId, screen.feed)
}

func (screen *FeedScreen) CancelDelete() {
	screen.Selection.ClearPendingDelete()
}

// Close tears the screen down. Requests still out land as no-ops.
func (screen *FeedScreen) Close() {
	screen.feed.Close()
	screen.Comments.Close()
}
