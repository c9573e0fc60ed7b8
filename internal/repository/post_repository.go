package repository

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/model"
)

type PostRepository struct {
	Log *zap.Logger
	API *APIClient
}

func NewPostRepository(zap *zap.Logger, api *APIClient) *PostRepository {
	return &PostRepository{
		Log: zap,
		API: api,
	}
}

func (repository *PostRepository) GetAllPosts(ctx context.Context, pageNumber int, pageSize int) (model.PageResult[model.Post], error) {
	page, err := callEnvelope[*model.PageResult[model.PostResponse]](ctx, repository.API, apiRequest{
		op:     "post.list",
		method: fiber.MethodGet,
		path:   "/Post/GetAllPosts",
		query:  queryOf("pageNumber", strconv.Itoa(pageNumber), "pageSize", strconv.Itoa(pageSize)),
	})
	if err != nil {
		return model.PageResult[model.Post]{}, err
	}

	if page == nil {
		return model.PageResult[model.Post]{}, nil
	}

	return model.PageResult[model.Post]{
		Items:      model.ToPosts(page.Items),
		TotalCount: page.TotalCount,
	}, nil
}

func (repository *PostRepository) GetPostById(ctx context.Context, id int64) (model.Post, error) {
	post, err := callEnvelope[*model.PostResponse](ctx, repository.API, apiRequest{
		op:     "post.get",
		method: fiber.MethodGet,
		path:   "/Post/GetById",
		query:  queryOf("id", itoa(id)),
	})
	if err != nil {
		return model.Post{}, err
	}

	if post == nil {
		return model.Post{}, &model.BusinessError{Op: "post.get", Message: "Post not found"}
	}

	return post.ToPost(), nil
}

func (repository *PostRepository) getPostList(ctx context.Context, op string, path string, query map[string]string) ([]model.Post, error) {
	request := apiRequest{
		op:     op,
		method: fiber.MethodGet,
		path:   path,
		query:  queryOf(),
	}
	for key, value := range query {
		request.query.Set(key, value)
	}

	posts, err := callEnvelope[[]model.PostResponse](ctx, repository.API, request)
	if err != nil {
		return nil, err
	}

	return model.ToPosts(posts), nil
}

func (repository *PostRepository) GetPostsByCategoryId(ctx context.Context, categoryId int64) ([]model.Post, error) {
	return repository.getPostList(ctx, "post.by_category", "/Post/GetByPostCategoryId", map[string]string{"postCategoryId": itoa(categoryId)})
}

func (repository *PostRepository) GetMyPosts(ctx context.Context, userId int64) ([]model.Post, error) {
	return repository.getPostList(ctx, "post.mine", "/Post/GetMyPosts", map[string]string{"userId": itoa(userId)})
}

func (repository *PostRepository) GetMySavedPosts(ctx context.Context, userId int64) ([]model.Post, error) {
	return repository.getPostList(ctx, "post.saved", "/Post/GetMySavedPosts", map[string]string{"userId": itoa(userId)})
}

func (repository *PostRepository) SearchPosts(ctx context.Context, keyword string) ([]model.Post, error) {
	return repository.getPostList(ctx, "post.search", "/Post/Search", map[string]string{"keyword": keyword})
}

// AddOrUpdatePost submits the publish form as multipart.
func (repository *PostRepository) AddOrUpdatePost(ctx context.Context, id int64, userId int64, draft model.PostDraft) error {
	form := &multipartForm{
		fields: map[string]string{
			"Id":          itoa(id),
			"UserId":      itoa(userId),
			"Name":        draft.Name,
			"Url":         draft.Url,
			"Description": draft.Description,
		},
	}

	if draft.CategoryId != nil {
		form.fields["PostCategoryId"] = itoa(*draft.CategoryId)
	}

	if draft.File != nil {
		form.files = append(form.files, formFile{
			fieldName: "ImageFile",
			fileName:  draft.File.FileName,
			content:   draft.File.Content,
		})
	}

	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "post.publish",
		method: fiber.MethodPost,
		path:   "/Post/AddOrUpdatePost",
		form:   form,
	})

	return err
}

func (repository *PostRepository) AddLike(ctx context.Context, postId int64, userId int64) error {
	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "post.like",
		method: fiber.MethodPost,
		path:   "/Post/AddLike",
		query:  queryOf("postId", itoa(postId), "userId", itoa(userId)),
	})

	return err
}

func (repository *PostRepository) RemoveLike(ctx context.Context, postId int64, userId int64) error {
	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "post.unlike",
		method: fiber.MethodPost,
		path:   "/Post/RemoveLike",
		query:  queryOf("postId", itoa(postId), "userId", itoa(userId)),
	})

	return err
}

// ToggleSavePost flips the saved state on the server and returns its
// status text.
func (repository *PostRepository) ToggleSavePost(ctx context.Context, postId int64, userId int64) (string, error) {
	message, err := callEnvelope[*string](ctx, repository.API, apiRequest{
		op:     "post.toggle_save",
		method: fiber.MethodPost,
		path:   "/Post/ToggleSavePost",
		query:  queryOf("postId", itoa(postId), "userId", itoa(userId)),
	})
	if err != nil || message == nil {
		return "", err
	}

	return *message, nil
}

func (repository *PostRepository) DeletePost(ctx context.Context, id int64) error {
	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "post.delete",
		method: fiber.MethodPost,
		path:   "/Post/Delete",
		query:  queryOf("id", itoa(id)),
	})

	return err
}

func (repository *PostRepository) GetComments(ctx context.Context, postId int64) ([]model.Comment, error) {
	comments, err := callEnvelope[[]model.CommentResponse](ctx, repository.API, apiRequest{
		op:     "comment.list",
		method: fiber.MethodGet,
		path:   "/Comment/GetAllCommentOnPost",
		query:  queryOf("postId", itoa(postId)),
	})
	if err != nil {
		return nil, err
	}

	return model.ToComments(comments), nil
}

// AddOrUpdateComment returns the stored comment when the server sends it
// back, nil otherwise.
func (repository *PostRepository) AddOrUpdateComment(ctx context.Context, request model.CommentRequest) (*model.Comment, error) {
	response, err := callEnvelope[*model.CommentResponse](ctx, repository.API, apiRequest{
		op:     "comment.write",
		method: fiber.MethodPost,
		path:   "/Comment/AddOrUpdateComment",
		body:   request,
	})
	if err != nil || response == nil || response.Id == 0 {
		return nil, err
	}

	comment := response.ToComment()
	return &comment, nil
}

func (repository *PostRepository) DeleteComment(ctx context.Context, commentId int64) error {
	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "comment.delete",
		method: fiber.MethodDelete,
		path:   "/Comment/DeleteComment",
		query:  queryOf("commentId", itoa(commentId)),
	})

	return err
}
