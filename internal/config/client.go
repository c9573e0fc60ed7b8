package config

import (
	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/middleware"
	"github.com/ferdian3456/communityclient/internal/repository"
	"github.com/ferdian3456/communityclient/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ClientApp is the wired client core. Repositories, the entity cache and
// the mutator are shared by every screen of the session.
type ClientApp struct {
	Config   ClientConfig
	Log      *zap.Logger
	Validate *validator.Validate
	API      *repository.APIClient
	Cache    *cache.Session
	Mutator  *usecase.Mutator

	UserRepository         *repository.UserRepository
	PostRepository         *repository.PostRepository
	AdRepository           *repository.AdRepository
	ContentRepository      *repository.ContentRepository
	NotificationRepository *repository.NotificationRepository
	ChatRepository         *repository.ChatRepository

	Users *usecase.UserUsecase
}

func NewClientApp(clientConfig ClientConfig, dbCache *redis.Client, validate *validator.Validate, log *zap.Logger) *ClientApp {
	app := &ClientApp{
		Config:   clientConfig,
		Log:      log,
		Validate: validate,
		Cache:    cache.NewSession(log),
		Mutator:  usecase.NewMutator(log),
	}

	// the user usecase is the token source, so the client is built around it
	tokens := &tokenSource{}
	app.API = repository.NewAPIClient(clientConfig.APIBaseURL, clientConfig.APITimeout, log,
		middleware.RequestID(),
		middleware.PropagateTrace(),
		middleware.AuthHeader(tokens),
		middleware.LogRequest(log),
	)

	app.UserRepository = repository.NewUserRepository(log, app.API, dbCache, clientConfig.DeviceId)
	app.PostRepository = repository.NewPostRepository(log, app.API)
	app.AdRepository = repository.NewAdRepository(log, app.API)
	app.ContentRepository = repository.NewContentRepository(log, app.API)
	app.NotificationRepository = repository.NewNotificationRepository(log, app.API)
	app.ChatRepository = repository.NewChatRepository(log, app.API)

	app.Users = usecase.NewUserUsecase(app.UserRepository, app.Cache, validate, log)
	tokens.users = app.Users

	return app
}

type tokenSource struct {
	users *usecase.UserUsecase
}

func (source *tokenSource) Token() string {
	if source.users == nil {
		return ""
	}

	return source.users.Token()
}

// Screens take the identity at the time they are opened; open them again
// after signing in or out.

func (app *ClientApp) NewPostUsecase() *usecase.PostUsecase {
	return usecase.NewPostUsecase(app.PostRepository, app.Cache, app.Mutator, app.Users.Identity(), app.Validate, app.Log)
}

func (app *ClientApp) NewCommentUsecase() *usecase.CommentUsecase {
	selection := usecase.NewSelectionController(app.Users.Identity())
	return usecase.NewCommentUsecase(app.PostRepository, app.Cache, app.Mutator, selection, app.Log)
}

func (app *ClientApp) NewFeedScreen() *usecase.FeedScreen {
	return usecase.NewFeedScreen(app.PostRepository, app.AdRepository, app.ContentRepository, app.NotificationRepository,
		app.NewPostUsecase(), app.NewCommentUsecase(), app.Cache, app.Config.PageSize, app.Log)
}

func (app *ClientApp) NewAdsScreen() *usecase.AdsScreen {
	selection := usecase.NewSelectionController(app.Users.Identity())
	return usecase.NewAdsScreen(app.AdRepository, app.Cache, app.Mutator, selection, app.Config.PageSize, app.Log)
}

func (app *ClientApp) NewProfileScreen() *usecase.ProfileScreen {
	return usecase.NewProfileScreen(app.PostRepository, app.NewPostUsecase(), app.NewCommentUsecase(), app.Cache, app.Log)
}

func (app *ClientApp) NewPostDetailScreen() *usecase.PostDetailScreen {
	return usecase.NewPostDetailScreen(app.PostRepository, app.NewPostUsecase(), app.NewCommentUsecase(), app.Cache, app.Log)
}

func (app *ClientApp) NewNotificationUsecase() *usecase.NotificationUsecase {
	return usecase.NewNotificationUsecase(app.NotificationRepository, app.Cache, app.Mutator, app.Users.Identity(), app.Log)
}

func (app *ClientApp) NewFaqUsecase() *usecase.FaqUsecase {
	return usecase.NewFaqUsecase(app.ContentRepository, app.Log)
}

func (app *ClientApp) NewChatUsecase() *usecase.ChatUsecase {
	return usecase.NewChatUsecase(app.ChatRepository, app.Mutator, app.Users.Identity(), app.Log)
}
