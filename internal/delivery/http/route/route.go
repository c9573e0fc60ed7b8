package route

import (
	"time"

	"github.com/ferdian3456/communityclient/internal/delivery/http"
	"github.com/ferdian3456/communityclient/internal/delivery/http/middleware"
	tracemiddleware "github.com/ferdian3456/communityclient/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App                    *fiber.App
	Store                  *http.StubStore
	Log                    *zap.Logger
	AuthMiddleware         *middleware.AuthMiddleware
	AccountController      *http.AccountController
	PostController         *http.PostController
	CommentController      *http.CommentController
	AdController           *http.AdController
	ContentController      *http.ContentController
	NotificationController *http.NotificationController
	ChatController         *http.ChatController

	CORSOrigins    string
	RateLimit      int
	LoginRateLimit int
	LoginWindow    time.Duration
}

// NewRouteConfig wires every stub controller over store. Rate limits come
// from RATE_LIMIT and LOGIN_RATE_LIMIT; zero disables them.
func NewRouteConfig(app *fiber.App, store *http.StubStore, zap *zap.Logger, koanf *koanf.Koanf) *RouteConfig {
	validate := validator.New()

	loginWindow := koanf.Duration("LOGIN_RATE_WINDOW")
	if loginWindow <= 0 {
		loginWindow = 5 * time.Minute
	}

	return &RouteConfig{
		App:                    app,
		Store:                  store,
		Log:                    zap,
		AuthMiddleware:         middleware.NewAuthMiddleware(app, zap, koanf),
		AccountController:      http.NewAccountController(store, validate, zap, koanf),
		PostController:         http.NewPostController(store, zap, koanf),
		CommentController:      http.NewCommentController(store, validate, zap),
		AdController:           http.NewAdController(store, zap),
		ContentController:      http.NewContentController(store, zap),
		NotificationController: http.NewNotificationController(store, zap),
		ChatController:         http.NewChatController(store, zap),
		CORSOrigins:            koanf.String("CORS_ORIGINS"),
		RateLimit:              koanf.Int("RATE_LIMIT"),
		LoginRateLimit:         koanf.Int("LOGIN_RATE_LIMIT"),
		LoginWindow:            loginWindow,
	}
}

func (c *RouteConfig) SetupRoute() {
	c.App.Use(otelfiber.Middleware())
	c.App.Use(tracemiddleware.TraceLoggerMiddleware(c.Log))
	c.App.Use(middleware.SetupCORS(c.CORSOrigins))

	api := c.App.Group("/api", middleware.SetupRateLimiter(c.Log, c.RateLimit), c.Store.FaultInjection())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := c.AuthMiddleware.ProtectedRoute()

	accountGroup := api.Group("/Account")
	accountGroup.Post("/Login", middleware.SetupLoginRateLimiter(c.Log, c.LoginRateLimit, c.LoginWindow), c.AccountController.Login)
	accountGroup.Post("/CreateAccount", c.AccountController.CreateAccount)
	accountGroup.Get("/GetById", protected, c.AccountController.GetById)
	accountGroup.Post("/UpdateAccount", protected, c.AccountController.UpdateAccount)

	postGroup := api.Group("/Post", protected)
	postGroup.Get("/GetAllPosts", c.PostController.GetAllPosts)
	postGroup.Get("/GetById", c.PostController.GetById)
	postGroup.Get("/GetByPostCategoryId", c.PostController.GetByPostCategoryId)
	postGroup.Get("/GetMyPosts", c.PostController.GetMyPosts)
	postGroup.Get("/GetMySavedPosts", c.PostController.GetMySavedPosts)
	postGroup.Get("/Search", c.PostController.Search)
	postGroup.Post("/AddOrUpdatePost", c.PostController.AddOrUpdatePost)
	postGroup.Post("/AddLike", c.PostController.AddLike)
	postGroup.Post("/RemoveLike", c.PostController.RemoveLike)
	postGroup.Post("/ToggleSavePost", c.PostController.ToggleSavePost)
	postGroup.Post("/Delete", c.PostController.DeletePost)

	commentGroup := api.Group("/Comment", protected)
	commentGroup.Get("/GetAllCommentOnPost", c.CommentController.GetAllCommentOnPost)
	commentGroup.Post("/AddOrUpdateComment", c.CommentController.AddOrUpdateComment)
	commentGroup.Delete("/DeleteComment", c.CommentController.DeleteComment)

	adGroup := api.Group("/Ad", protected)
	adGroup.Get("/GetAds", c.AdController.GetAds)
	adGroup.Post("/Delete", c.AdController.Delete)

	api.Get("/PostCategory/GetAll", c.ContentController.GetCategories)
	api.Get("/Faq/GetAll", c.ContentController.GetFaqs)

	notificationGroup := api.Group("/Notification", protected)
	notificationGroup.Get("/GetMyNotifications", c.NotificationController.GetMyNotifications)
	notificationGroup.Post("/MarkAsRead", c.NotificationController.MarkAsRead)
	notificationGroup.Post("/ClearAll", c.NotificationController.ClearAll)

	chatsGroup := api.Group("/Chats", protected)
	chatsGroup.Get("/GetChatHistory", c.ChatController.GetChatHistory)
	chatsGroup.Post("/SendUserMessage", c.ChatController.SendUserMessage)

	chatGroup := api.Group("/Chat", protected)
	chatGroup.Get("/SearchChatMatches", c.ChatController.SearchChatMatches)
	chatGroup.Get("/GetChatContext", c.ChatController.GetChatContext)
}
