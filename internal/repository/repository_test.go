package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/delivery/http"
	"github.com/ferdian3456/communityclient/internal/middleware"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/testutil"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (token staticToken) Token() string {
	return string(token)
}

type fixture struct {
	stub   *testutil.Stub
	member model.UserData
	admin  model.UserData
	api    *APIClient
	// adminAPI sends the admin's token
	adminAPI *APIClient
}

func tokenFor(t *testing.T, user model.UserData, role string) staticToken {
	t.Helper()

	token, err := util.GenerateAccessToken(user.Id, role, testutil.JWTSecret)
	require.NoError(t, err)

	return staticToken(token)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	stub := testutil.StartStub(t)
	member := stub.Store.SeedUser("Rina", "rina@example.com", "secret1", false)
	admin := stub.Store.SeedUser("Admin", "admin@example.com", "secret1", true)

	return &fixture{
		stub:     stub,
		member:   member,
		admin:    admin,
		api:      NewAPIClient(stub.URL, 5*time.Second, zap.NewNop(), middleware.AuthHeader(tokenFor(t, member, "Member")), middleware.RequestID()),
		adminAPI: NewAPIClient(stub.URL, 5*time.Second, zap.NewNop(), middleware.AuthHeader(tokenFor(t, admin, constant.ADMIN_ROLE_NAME))),
	}
}

func TestPostRepository_GetAllPostsPages(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.stub.Store.SeedPost(f.member.Id, "post", nil)
	}

	repository := NewPostRepository(zap.NewNop(), f.api)

	first, err := repository.GetAllPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 12, first.TotalCount)
	assert.Equal(t, "Rina", first.Items[0].AuthorName)
	assert.Equal(t, f.member.Id, first.Items[0].AuthorId)

	second, err := repository.GetAllPosts(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)

	// newest first, so the pages don't overlap
	assert.Greater(t, first.Items[9].Id, second.Items[0].Id)
}

func TestPostRepository_BusinessError(t *testing.T) {
	f := newFixture(t)
	post := f.stub.Store.SeedPost(f.member.Id, "hello", nil)
	repository := NewPostRepository(zap.NewNop(), f.api)

	f.stub.Store.FailNext(testutil.Path("/Post/AddLike"), http.FailBusiness)

	err := repository.AddLike(context.Background(), post.Id, f.member.Id)

	var businessErr *model.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, http.InjectedFailureMessage, businessErr.Message)
	assert.Equal(t, fiber.StatusOK, businessErr.StatusCode)
	assert.Equal(t, http.InjectedFailureMessage, model.UserMessage(err))

	// the queued failure is consumed
	require.NoError(t, repository.AddLike(context.Background(), post.Id, f.member.Id))
	fetched, err := repository.GetPostById(context.Background(), post.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.LikeCount)
}

func TestPostRepository_ServerError(t *testing.T) {
	f := newFixture(t)
	repository := NewPostRepository(zap.NewNop(), f.api)

	f.stub.Store.FailNext(testutil.Path("/Post/GetAllPosts"), http.FailServer)

	_, err := repository.GetAllPosts(context.Background(), 1, 10)

	var transportErr *model.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, fiber.StatusInternalServerError, transportErr.StatusCode)
	assert.Equal(t, constant.ERR_GENERIC_RETRY_MESSAGE, model.UserMessage(err))
}

func TestPostRepository_Unauthorized(t *testing.T) {
	f := newFixture(t)
	repository := NewPostRepository(zap.NewNop(), NewAPIClient(f.stub.URL, time.Second, zap.NewNop()))

	_, err := repository.GetAllPosts(context.Background(), 1, 10)

	var businessErr *model.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, fiber.StatusUnauthorized, businessErr.StatusCode)
}

func TestAPIClient_TransportFailures(t *testing.T) {
	repository := NewPostRepository(zap.NewNop(), NewAPIClient("http://127.0.0.1:1/api", time.Second, zap.NewNop()))

	_, err := repository.GetAllPosts(context.Background(), 1, 10)
	var transportErr *model.TransportError
	require.ErrorAs(t, err, &transportErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repository.GetAllPosts(ctx, 1, 10)
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostRepository_PublishMultipart(t *testing.T) {
	f := newFixture(t)
	repository := NewPostRepository(zap.NewNop(), f.api)
	category := f.stub.Store.SeedCategory("Events", true)

	err := repository.AddOrUpdatePost(context.Background(), 0, f.member.Id, model.PostDraft{
		Name:        "Meetup",
		Url:         "https://example.com",
		Description: "Saturday at ten",
		CategoryId:  &category.Id,
		File:        &model.Attachment{FileName: "poster.jpg", Content: []byte("jpeg bytes")},
	})
	require.NoError(t, err)

	posts, err := repository.GetMyPosts(context.Background(), f.member.Id)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Saturday at ten", posts[0].Description)
	assert.True(t, strings.HasSuffix(posts[0].MediaUrl, ".jpg"))
	assert.Equal(t, model.MediaImage, posts[0].MediaKind())
	require.NotNil(t, posts[0].CategoryId)
	assert.Equal(t, category.Id, *posts[0].CategoryId)

	byCategory, err := repository.GetPostsByCategoryId(context.Background(), category.Id)
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	found, err := repository.SearchPosts(context.Background(), "saturday")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestPostRepository_SaveAndDelete(t *testing.T) {
	f := newFixture(t)
	post := f.stub.Store.SeedPost(f.member.Id, "hello", nil)
	repository := NewPostRepository(zap.NewNop(), f.api)

	message, err := repository.ToggleSavePost(context.Background(), post.Id, f.member.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, message)

	saved, err := repository.GetMySavedPosts(context.Background(), f.member.Id)
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	// members cannot delete posts
	err = repository.DeletePost(context.Background(), post.Id)
	var businessErr *model.BusinessError
	require.ErrorAs(t, err, &businessErr)

	adminRepository := NewPostRepository(zap.NewNop(), f.adminAPI)
	require.NoError(t, adminRepository.DeletePost(context.Background(), post.Id))

	_, err = repository.GetPostById(context.Background(), post.Id)
	require.ErrorAs(t, err, &businessErr)
}

func TestPostRepository_Comments(t *testing.T) {
	f := newFixture(t)
	post := f.stub.Store.SeedPost(f.member.Id, "hello", nil)
	repository := NewPostRepository(zap.NewNop(), f.api)

	created, err := repository.AddOrUpdateComment(context.Background(), model.CommentRequest{
		PostId:   post.Id,
		UserId:   f.member.Id,
		Comments: "first!",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Rina", created.AuthorName)

	updated, err := repository.AddOrUpdateComment(context.Background(), model.CommentRequest{
		Id:       created.Id,
		PostId:   post.Id,
		UserId:   f.member.Id,
		Comments: "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "edited", updated.Text)

	// another user's comment cannot be deleted
	other := f.stub.Store.SeedComment(post.Id, f.admin.Id, "admin says hi")
	err = repository.DeleteComment(context.Background(), other.Id)
	var businessErr *model.BusinessError
	require.ErrorAs(t, err, &businessErr)

	require.NoError(t, repository.DeleteComment(context.Background(), created.Id))

	comments, err := repository.GetComments(context.Background(), post.Id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, other.Id, comments[0].Id)
}

func TestAdRepository(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.stub.Store.SeedAd("ad", "https://cdn.example.com/ad.png")
	}

	repository := NewAdRepository(zap.NewNop(), f.api)
	page, err := repository.GetAds(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, 5, page.TotalCount)
	assert.True(t, page.Items[0].HasImage())
	assert.True(t, page.Items[0].IsActive)

	err = repository.DeleteAd(context.Background(), page.Items[0].Id)
	var businessErr *model.BusinessError
	require.ErrorAs(t, err, &businessErr)

	adminRepository := NewAdRepository(zap.NewNop(), f.adminAPI)
	require.NoError(t, adminRepository.DeleteAd(context.Background(), page.Items[0].Id))

	page, err = repository.GetAds(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalCount)
}

func TestContentRepository(t *testing.T) {
	f := newFixture(t)
	f.stub.Store.SeedCategory("News", true)
	f.stub.Store.SeedCategory("Hidden", false)
	f.stub.Store.SeedFaq(1, "How do I post?", "Tap the plus button", true)

	repository := NewContentRepository(zap.NewNop(), f.api)

	categories, err := repository.GetPostCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.True(t, categories[0].Visible())
	assert.False(t, categories[1].Visible())

	faqs, err := repository.GetFaqs(context.Background())
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	assert.True(t, faqs[0].Visible())
}

func TestNotificationRepository(t *testing.T) {
	f := newFixture(t)
	unread := f.stub.Store.SeedNotification(f.member.Id, "New comment", false)
	f.stub.Store.SeedNotification(f.member.Id, "Welcome", true)
	f.stub.Store.SeedNotification(f.admin.Id, "Not yours", false)

	repository := NewNotificationRepository(zap.NewNop(), f.api)

	notifications, err := repository.GetMyNotifications(context.Background(), f.member.Id)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)

	require.NoError(t, repository.MarkAsRead(context.Background(), unread.Id))
	notifications, err = repository.GetMyNotifications(context.Background(), f.member.Id)
	require.NoError(t, err)
	for _, notification := range notifications {
		assert.True(t, notification.IsRead)
	}

	require.NoError(t, repository.ClearAll(context.Background(), f.member.Id))
	notifications, err = repository.GetMyNotifications(context.Background(), f.member.Id)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestChatRepository(t *testing.T) {
	f := newFixture(t)
	repository := NewChatRepository(zap.NewNop(), f.api)

	sent, err := repository.SendUserMessage(context.Background(), f.member.Id, "hello support")
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.False(t, sent.FromSupport)

	f.stub.Store.SeedSupportReply(f.member.Id, "hi, how can we help?")

	history, err := repository.GetChatHistory(context.Background(), f.member.Id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[1].FromSupport)

	f.stub.Store.SeedChatLog("general", "good morning", "the app crashed", "restart it", "still crashed")

	matches, err := repository.SearchChatMatches(context.Background(), "crash", 0, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "general", matches[0].Group)
	assert.Equal(t, 2, matches[0].Line)

	next, err := repository.SearchChatMatches(context.Background(), "crash", 1, 10)
	require.NoError(t, err)
	assert.Len(t, next, 1)

	chatContext, err := repository.GetChatContext(context.Background(), "general", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"good morning", "the app crashed", "restart it"}, chatContext.Snippet)
}

func TestUserRepository_Account(t *testing.T) {
	f := newFixture(t)
	client, _ := testutil.StartRedis(t)
	repository := NewUserRepository(zap.NewNop(), NewAPIClient(f.stub.URL, 5*time.Second, zap.NewNop()), client, "device-1")

	_, err := repository.Login(context.Background(), model.LoginRequest{Email: "rina@example.com", Password: "wrong-password"})
	var businessErr *model.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "Invalid email or password", model.UserMessage(err))

	token, err := repository.Login(context.Background(), model.LoginRequest{Email: "rina@example.com", Password: "secret1"})
	require.NoError(t, err)

	userId, err := util.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, f.member.Id, userId)

	id, err := repository.CreateAccount(context.Background(), model.CreateAccountRequest{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = repository.CreateAccount(context.Background(), model.CreateAccountRequest{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "secret1",
	})
	require.ErrorAs(t, err, &businessErr)
}

func TestUserRepository_GetAndUpdate(t *testing.T) {
	f := newFixture(t)
	client, _ := testutil.StartRedis(t)
	repository := NewUserRepository(zap.NewNop(), f.api, client, "device-1")

	user, err := repository.GetUserById(context.Background(), f.member.Id)
	require.NoError(t, err)
	assert.Equal(t, "rina@example.com", user.Email)
	assert.False(t, user.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID))

	admin, err := repository.GetUserById(context.Background(), f.admin.Id)
	require.NoError(t, err)
	assert.True(t, admin.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID))

	updated, err := repository.UpdateAccount(context.Background(), model.UpdateAccountRequest{
		Id:    f.member.Id,
		Name:  "Rina S",
		Email: "rina@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rina S", updated.Name)
}

func TestUserRepository_Session(t *testing.T) {
	client, server := testutil.StartRedis(t)
	repository := NewUserRepository(zap.NewNop(), nil, client, "device-1")

	_, err := repository.GetSession(context.Background())
	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, constant.ERR_NOT_FOUND_ERROR, validationErr.Code)

	session := model.Session{
		Token:     "token",
		User:      model.UserData{Id: 7, Name: "Rina"},
		IsAdmin:   true,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, repository.SetSession(context.Background(), session))
	assert.True(t, server.Exists("session:device-1"))
	assert.Equal(t, constant.SESSION_TTL, server.TTL("session:device-1"))

	restored, err := repository.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.User.Id, restored.User.Id)
	assert.True(t, restored.IsAdmin)
	assert.True(t, session.CreatedAt.Equal(restored.CreatedAt))

	require.NoError(t, repository.RemoveSession(context.Background()))
	_, err = repository.GetSession(context.Background())
	assert.True(t, errors.As(err, &validationErr))
}
