package http

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type FailureMode int

const (
	// FailBusiness answers 200 with IsSuccess false.
	FailBusiness FailureMode = iota + 1
	// FailServer answers 500 without an envelope message.
	FailServer
)

const InjectedFailureMessage = "Injected failure"

type stubUser struct {
	data         model.UserData
	passwordHash []byte
	admin        bool
}

type chatLine struct {
	group string
	text  string
}

// StubStore is the in-memory state of the stub community API, with hooks
// to inject failures and hold requests from tests.
type StubStore struct {
	Log *zap.Logger

	mu            sync.Mutex
	nextId        int64
	users         map[int64]*stubUser
	posts         []*model.PostResponse
	likes         map[int64]map[int64]struct{}
	saves         map[int64]map[int64]struct{}
	comments      []*model.CommentResponse
	ads           []*model.AdResponse
	categories    []model.PostCategory
	notifications []*model.NotificationResponse
	faqs          []model.Faq
	chats         []*model.ChatMessageResponse
	chatLog       []chatLine

	failures map[string][]FailureMode
	gates    map[string]chan struct{}
	calls    map[string]int
}

func NewStubStore(zap *zap.Logger) *StubStore {
	return &StubStore{
		Log:      zap,
		users:    make(map[int64]*stubUser),
		likes:    make(map[int64]map[int64]struct{}),
		saves:    make(map[int64]map[int64]struct{}),
		failures: make(map[string][]FailureMode),
		gates:    make(map[string]chan struct{}),
		calls:    make(map[string]int),
	}
}

func (store *StubStore) id() int64 {
	store.nextId++
	return store.nextId
}

func now() string {
	return model.FormatServerTime(time.Now())
}

func notFound(what string) error {
	return &model.ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: what + " not found",
		Param:   "id",
	}
}

// Fault injection

// FailNext makes the next call to path fail with mode. Calls queue up.
func (store *StubStore) FailNext(path string, mode FailureMode) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.failures[path] = append(store.failures[path], mode)
}

// Block holds every call to path until release is called.
func (store *StubStore) Block(path string) (release func()) {
	store.mu.Lock()
	defer store.mu.Unlock()

	gate := make(chan struct{})
	store.gates[path] = gate

	var once sync.Once
	return func() {
		once.Do(func() {
			store.mu.Lock()
			if store.gates[path] == gate {
				delete(store.gates, path)
			}
			store.mu.Unlock()
			close(gate)
		})
	}
}

func (store *StubStore) Calls(path string) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.calls[path]
}

// intercept records a call to path, waits on its gate and pops the next
// injected failure, if any.
func (store *StubStore) intercept(path string) (FailureMode, bool) {
	store.mu.Lock()
	store.calls[path]++
	gate := store.gates[path]
	store.mu.Unlock()

	if gate != nil {
		<-gate
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	queue := store.failures[path]
	if len(queue) == 0 {
		return 0, false
	}

	store.failures[path] = queue[1:]
	return queue[0], true
}

// Accounts

func (store *StubStore) SeedUser(name string, email string, password string, admin bool) model.UserData {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		store.Log.Fatal("failed to hash stub password", zap.Error(err))
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	return store.addUser(name, email, "", hash, admin)
}

func (store *StubStore) addUser(name string, email string, mobile string, hash []byte, admin bool) model.UserData {
	id := store.id()
	active := true
	roleName := "Member"
	roleId := int64(2)
	if admin {
		roleName = constant.ADMIN_ROLE_NAME
		roleId = constant.ADMIN_ROLE_ID
	}

	user := &stubUser{
		data: model.UserData{
			Id:        id,
			Name:      name,
			Email:     strings.ToLower(email),
			Mobile:    mobile,
			CreatedOn: now(),
			IsActive:  &active,
			RoleMappings: []model.RoleMapping{
				{RoleId: &roleId, Role: &model.Role{RoleId: &roleId, RoleName: roleName}},
			},
		},
		passwordHash: hash,
		admin:        admin,
	}
	store.users[id] = user

	return user.data
}

func (store *StubStore) Authenticate(email string, password string) (model.UserData, bool, error) {
	store.mu.Lock()
	var found *stubUser
	for _, user := range store.users {
		if strings.EqualFold(user.data.Email, email) {
			found = user
			break
		}
	}
	store.mu.Unlock()

	if found == nil {
		return model.UserData{}, false, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid email or password",
			Param:   "email",
		}
	}

	err := bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password))
	if err != nil {
		return model.UserData{}, false, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid email or password",
			Param:   "password",
		}
	}

	return found.data, found.admin, nil
}

func (store *StubStore) CreateAccount(payload model.CreateAccountRequest) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.MinCost)
	if err != nil {
		return 0, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if strings.EqualFold(user.data.Email, payload.Email) {
			return 0, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Email is already registered",
				Param:   "email",
			}
		}
	}

	return store.addUser(payload.Name, payload.Email, payload.Mobile, hash, false).Id, nil
}

func (store *StubStore) User(id int64) (model.UserData, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[id]
	if !ok {
		return model.UserData{}, notFound("User")
	}

	return user.data, nil
}

func (store *StubStore) UpdateAccount(payload model.UpdateAccountRequest) (model.UserData, error) {
	var hash []byte
	if payload.Password != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.MinCost)
		if err != nil {
			return model.UserData{}, err
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[payload.Id]
	if !ok {
		return model.UserData{}, notFound("User")
	}

	user.data.Name = payload.Name
	user.data.Email = strings.ToLower(payload.Email)
	user.data.Mobile = payload.Mobile
	if hash != nil {
		user.passwordHash = hash
	}

	return user.data, nil
}

// Posts

func (store *StubStore) SeedPost(authorId int64, description string, categoryId *int64) model.PostResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	return *store.addPost(authorId, "", "", description, "", categoryId)
}

func (store *StubStore) addPost(authorId int64, name string, url string, description string, imageUrl string, categoryId *int64) *model.PostResponse {
	post := &model.PostResponse{
		Id:             store.id(),
		Name:           name,
		Url:            url,
		Description:    description,
		ImageUrl:       imageUrl,
		UserId:         &authorId,
		PostCategoryId: categoryId,
		CreatedOn:      now(),
	}

	if author, ok := store.users[authorId]; ok {
		post.UserName = author.data.Name
		post.ProfileImage = author.data.ProfileImage
		if post.Name == "" {
			post.Name = author.data.Name
		}
	}

	// newest first
	store.posts = append([]*model.PostResponse{post}, store.posts...)
	return post
}

// view copies a post with its live counters filled in.
func (store *StubStore) view(post *model.PostResponse) model.PostResponse {
	copied := *post
	copied.LikeCount = len(store.likes[post.Id])
	copied.CommentCount = 0
	for _, comment := range store.comments {
		if comment.PostId == post.Id {
			copied.CommentCount++
		}
	}

	return copied
}

func (store *StubStore) filterPosts(keep func(post *model.PostResponse) bool) []model.PostResponse {
	posts := make([]model.PostResponse, 0)
	for _, post := range store.posts {
		if keep(post) {
			posts = append(posts, store.view(post))
		}
	}

	return posts
}

func (store *StubStore) PostPage(pageNumber int, pageSize int) model.PageResult[model.PostResponse] {
	store.mu.Lock()
	defer store.mu.Unlock()

	all := store.filterPosts(func(*model.PostResponse) bool { return true })
	return model.PageResult[model.PostResponse]{
		Items:      pageOf(all, pageNumber, pageSize),
		TotalCount: len(all),
	}
}

func pageOf[T any](items []T, pageNumber int, pageSize int) []T {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = constant.DEFAULT_PAGE_SIZE
	}

	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}

	end := min(start+pageSize, len(items))
	return items[start:end]
}

func (store *StubStore) findPost(id int64) (*model.PostResponse, int) {
	for i, post := range store.posts {
		if post.Id == id {
			return post, i
		}
	}

	return nil, -1
}

func (store *StubStore) Post(id int64) (model.PostResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	post, _ := store.findPost(id)
	if post == nil {
		return model.PostResponse{}, notFound("Post")
	}

	return store.view(post), nil
}

func (store *StubStore) PostsByCategory(categoryId int64) []model.PostResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.filterPosts(func(post *model.PostResponse) bool {
		return post.PostCategoryId != nil && *post.PostCategoryId == categoryId
	})
}

func (store *StubStore) PostsByAuthor(userId int64) []model.PostResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.filterPosts(func(post *model.PostResponse) bool {
		return post.UserId != nil && *post.UserId == userId
	})
}

func (store *StubStore) SavedPosts(userId int64) []model.PostResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.filterPosts(func(post *model.PostResponse) bool {
		_, saved := store.saves[post.Id][userId]
		return saved
	})
}

func (store *StubStore) SearchPosts(keyword string) []model.PostResponse {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	store.mu.Lock()
	defer store.mu.Unlock()

	return store.filterPosts(func(post *model.PostResponse) bool {
		return keyword != "" && (strings.Contains(strings.ToLower(post.Description), keyword) ||
			strings.Contains(strings.ToLower(post.Name), keyword))
	})
}

func (store *StubStore) SavePost(id int64, userId int64, name string, url string, description string, imageUrl string, categoryId *int64) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if id == 0 {
		return store.addPost(userId, name, url, description, imageUrl, categoryId).Id, nil
	}

	post, _ := store.findPost(id)
	if post == nil {
		return 0, notFound("Post")
	}

	post.Name = name
	post.Url = url
	post.Description = description
	post.PostCategoryId = categoryId
	if imageUrl != "" {
		post.ImageUrl = imageUrl
	}

	return post.Id, nil
}

func (store *StubStore) SetLike(postId int64, userId int64, liked bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	post, _ := store.findPost(postId)
	if post == nil {
		return notFound("Post")
	}

	if liked {
		if store.likes[postId] == nil {
			store.likes[postId] = make(map[int64]struct{})
		}
		store.likes[postId][userId] = struct{}{}
		return nil
	}

	delete(store.likes[postId], userId)
	return nil
}

func (store *StubStore) ToggleSave(postId int64, userId int64) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	post, _ := store.findPost(postId)
	if post == nil {
		return false, notFound("Post")
	}

	if _, saved := store.saves[postId][userId]; saved {
		delete(store.saves[postId], userId)
		return false, nil
	}

	if store.saves[postId] == nil {
		store.saves[postId] = make(map[int64]struct{})
	}
	store.saves[postId][userId] = struct{}{}

	return true, nil
}

func (store *StubStore) DeletePost(id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, index := store.findPost(id)
	if index < 0 {
		return notFound("Post")
	}

	store.posts = slices.Delete(store.posts, index, index+1)
	delete(store.likes, id)
	delete(store.saves, id)
	store.comments = slices.DeleteFunc(store.comments, func(comment *model.CommentResponse) bool {
		return comment.PostId == id
	})

	return nil
}

// Comments

func (store *StubStore) SeedComment(postId int64, userId int64, text string) model.CommentResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	return *store.addComment(postId, userId, text)
}

func (store *StubStore) addComment(postId int64, userId int64, text string) *model.CommentResponse {
	comment := &model.CommentResponse{
		Id:        store.id(),
		PostId:    postId,
		UserId:    userId,
		Comments:  text,
		CreatedOn: now(),
	}
	store.comments = append(store.comments, comment)

	return comment
}

func (store *StubStore) withUser(comment *model.CommentResponse) model.CommentResponse {
	copied := *comment
	if author, ok := store.users[comment.UserId]; ok {
		copied.User = &model.CommentUser{
			Id:           author.data.Id,
			Name:         author.data.Name,
			ProfileImage: author.data.ProfileImage,
		}
	}

	return copied
}

func (store *StubStore) Comments(postId int64) []model.CommentResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	comments := make([]model.CommentResponse, 0)
	for _, comment := range store.comments {
		if comment.PostId == postId {
			comments = append(comments, store.withUser(comment))
		}
	}

	return comments
}

func (store *StubStore) SaveComment(request model.CommentRequest, userId int64) (model.CommentResponse, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if post, _ := store.findPost(request.PostId); post == nil {
		return model.CommentResponse{}, notFound("Post")
	}

	if request.Id == 0 {
		return store.withUser(store.addComment(request.PostId, userId, request.Comments)), nil
	}

	for _, comment := range store.comments {
		if comment.Id != request.Id {
			continue
		}

		if comment.UserId != userId {
			return model.CommentResponse{}, &model.ValidationError{
				Code:    constant.ERR_FORBIDDEN_CODE,
				Message: "You can only edit your own comments",
				Param:   "Id",
			}
		}

		comment.Comments = request.Comments
		return store.withUser(comment), nil
	}

	return model.CommentResponse{}, notFound("Comment")
}

func (store *StubStore) DeleteComment(commentId int64, userId int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i, comment := range store.comments {
		if comment.Id != commentId {
			continue
		}

		if comment.UserId != userId {
			return &model.ValidationError{
				Code:    constant.ERR_FORBIDDEN_CODE,
				Message: "You can only delete your own comments",
				Param:   "commentId",
			}
		}

		store.comments = slices.Delete(store.comments, i, i+1)
		return nil
	}

	return notFound("Comment")
}

// Ads

func (store *StubStore) SeedAd(title string, imageUrl string) model.AdResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	active := true
	ad := &model.AdResponse{
		Id:        store.id(),
		Title:     title,
		ImageUrl:  imageUrl,
		CreatedOn: now(),
		IsActive:  &active,
	}
	store.ads = append([]*model.AdResponse{ad}, store.ads...)

	return *ad
}

func (store *StubStore) AdPage(pageNumber int, pageSize int) model.AdPageResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	all := make([]model.AdResponse, 0, len(store.ads))
	for _, ad := range store.ads {
		all = append(all, *ad)
	}

	return model.AdPageResponse{
		Items:      pageOf(all, pageNumber, pageSize),
		TotalCount: len(all),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}

func (store *StubStore) DeleteAd(id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i, ad := range store.ads {
		if ad.Id == id {
			store.ads = slices.Delete(store.ads, i, i+1)
			return nil
		}
	}

	return notFound("Ad")
}

// Categories and FAQ

func (store *StubStore) SeedCategory(title string, active bool) model.PostCategory {
	store.mu.Lock()
	defer store.mu.Unlock()

	category := model.PostCategory{Id: store.id(), Title: title, IsActive: active}
	store.categories = append(store.categories, category)

	return category
}

func (store *StubStore) Categories() []model.PostCategory {
	store.mu.Lock()
	defer store.mu.Unlock()

	return slices.Clone(store.categories)
}

func (store *StubStore) SeedFaq(faqType int, question string, answer string, active bool) model.Faq {
	store.mu.Lock()
	defer store.mu.Unlock()

	deleted := false
	faq := model.Faq{
		Id:        store.id(),
		FaqType:   faqType,
		Question:  question,
		Answer:    answer,
		IsActive:  &active,
		IsDeleted: &deleted,
	}
	store.faqs = append(store.faqs, faq)

	return faq
}

func (store *StubStore) Faqs() []model.Faq {
	store.mu.Lock()
	defer store.mu.Unlock()

	return slices.Clone(store.faqs)
}

// Notifications

func (store *StubStore) SeedNotification(userId int64, title string, read bool) model.NotificationResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	notification := &model.NotificationResponse{
		Id:        store.id(),
		UserId:    userId,
		Title:     title,
		IsRead:    read,
		CreatedOn: now(),
	}
	store.notifications = append([]*model.NotificationResponse{notification}, store.notifications...)

	return *notification
}

func (store *StubStore) Notifications(userId int64) []model.NotificationResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	notifications := make([]model.NotificationResponse, 0)
	for _, notification := range store.notifications {
		if notification.UserId == userId {
			notifications = append(notifications, *notification)
		}
	}

	return notifications
}

func (store *StubStore) MarkAsRead(id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, notification := range store.notifications {
		if notification.Id == id {
			notification.IsRead = true
			return nil
		}
	}

	return notFound("Notification")
}

func (store *StubStore) ClearNotifications(userId int64) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.notifications = slices.DeleteFunc(store.notifications, func(notification *model.NotificationResponse) bool {
		return notification.UserId == userId
	})
}

// Chat

func (store *StubStore) ChatHistory(userId int64) []model.ChatMessageResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	messages := make([]model.ChatMessageResponse, 0)
	for _, message := range store.chats {
		if message.UserId != nil && *message.UserId == userId {
			messages = append(messages, *message)
		}
	}

	return messages
}

func (store *StubStore) addChat(userId int64, text string, fromSupport bool) model.ChatMessageResponse {
	id := store.id()
	message := &model.ChatMessageResponse{
		Id:           &id,
		Message:      text,
		UserId:       &userId,
		IsAdminReply: &fromSupport,
		CreatedOn:    now(),
	}
	store.chats = append(store.chats, message)

	return *message
}

func (store *StubStore) SendChat(userId int64, text string) model.ChatMessageResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.addChat(userId, text, false)
}

func (store *StubStore) SeedSupportReply(userId int64, text string) model.ChatMessageResponse {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.addChat(userId, text, true)
}

// SeedChatLog appends lines to the searchable support transcript of group.
func (store *StubStore) SeedChatLog(group string, lines ...string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, line := range lines {
		store.chatLog = append(store.chatLog, chatLine{group: group, text: line})
	}
}

func (store *StubStore) SearchChat(keyword string, skip int, take int) []model.ChatSearchResult {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	store.mu.Lock()
	defer store.mu.Unlock()

	matches := make([]model.ChatSearchResult, 0)
	if keyword == "" {
		return matches
	}

	lineNumbers := make(map[string]int)
	for _, entry := range store.chatLog {
		lineNumbers[entry.group]++
		if !strings.Contains(strings.ToLower(entry.text), keyword) {
			continue
		}

		matches = append(matches, model.ChatSearchResult{
			Group:       entry.group,
			Line:        lineNumbers[entry.group],
			Text:        "[" + entry.group + "] " + entry.text,
			FullMessage: entry.text,
		})
	}

	if skip >= len(matches) {
		return []model.ChatSearchResult{}
	}
	if take < 1 {
		take = constant.CHAT_SEARCH_TAKE
	}

	return matches[skip:min(skip+take, len(matches))]
}

func (store *StubStore) ChatContext(group string, line int, contextLines int) model.ChatContext {
	store.mu.Lock()
	defer store.mu.Unlock()

	lines := make([]string, 0)
	for _, entry := range store.chatLog {
		if entry.group == group {
			lines = append(lines, entry.text)
		}
	}

	start := max(line-1-contextLines, 0)
	end := min(line+contextLines, len(lines))
	snippet := []string{}
	if start < end {
		snippet = slices.Clone(lines[start:end])
	}

	return model.ChatContext{Group: group, Line: line, Snippet: snippet}
}
