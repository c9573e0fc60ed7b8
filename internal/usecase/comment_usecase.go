package usecase

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"

	"go.uber.org/zap"
)

// CommentUsecase backs the comments sheet of one screen.
type CommentUsecase struct {
	PostRepository *repository.PostRepository
	Cache          *cache.Session
	Mutator        *Mutator
	Selection      *SelectionController
	Log            *zap.Logger

	mu       sync.Mutex
	comments *Paginator[model.Comment]
}

func NewCommentUsecase(postRepository *repository.PostRepository, cache *cache.Session, mutator *Mutator, selection *SelectionController, zap *zap.Logger) *CommentUsecase {
	return &CommentUsecase{
		PostRepository: postRepository,
		Cache:          cache,
		Mutator:        mutator,
		Selection:      selection,
		Log:            zap,
	}
}

// Open shows the sheet for postId, replacing any open one, and fetches its
// comments fresh.
func (usecase *CommentUsecase) Open(ctx context.Context, postId int64) error {
	usecase.Selection.OpenComments(postId)

	comments := NewSinglePagePaginator("comments", usecase.Cache.Comments, func(ctx context.Context) ([]model.Comment, error) {
		return usecase.PostRepository.GetComments(ctx, postId)
	}, usecase.Log)

	usecase.mu.Lock()
	if usecase.comments != nil {
		usecase.comments.Close()
	}
	usecase.comments = comments
	usecase.mu.Unlock()

	return comments.LoadPage(ctx, 1, true)
}

func (usecase *CommentUsecase) list() *Paginator[model.Comment] {
	usecase.mu.Lock()
	defer usecase.mu.Unlock()

	return usecase.comments
}

// Comments of the open sheet, placeholders included.
func (usecase *CommentUsecase) Comments() []model.Comment {
	comments := usecase.list()
	if comments == nil {
		return nil
	}

	return comments.Items()
}

func (usecase *CommentUsecase) Loading() bool {
	comments := usecase.list()
	return comments != nil && comments.Loading()
}

func (usecase *CommentUsecase) Close() {
	usecase.Selection.CloseComments()

	usecase.mu.Lock()
	defer usecase.mu.Unlock()

	if usecase.comments != nil {
		usecase.comments.Close()
		usecase.comments = nil
	}
}

func (usecase *CommentUsecase) SetDraft(text string) {
	usecase.Selection.SetDraft(text)
}

func (usecase *CommentUsecase) BeginEdit(commentId int64) error {
	comment, ok := usecase.Cache.Comments.Get(commentId)
	if !ok {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Comment not found",
			Param:   "commentId",
		}
	}

	return usecase.Selection.BeginEdit(comment)
}

func (usecase *CommentUsecase) CancelEdit() {
	usecase.Selection.CancelEdit()
}

func (usecase *CommentUsecase) RequestDelete(commentId int64) error {
	comment, ok := usecase.Cache.Comments.Get(commentId)
	if !ok {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Comment not found",
			Param:   "commentId",
		}
	}

	return usecase.Selection.RequestCommentDelete(comment)
}

// Submit posts the draft. A draft tagged by BeginEdit updates that comment;
// otherwise a placeholder is shown until the server stores the new one.
// The draft is cleared only when the server accepts it.
func (usecase *CommentUsecase) Submit(ctx context.Context) error {
	identity := usecase.Selection.Identity
	if !identity.SignedIn() {
		return signInRequired()
	}

	postId := usecase.Selection.OpenPostId()
	comments := usecase.list()
	if postId == 0 || comments == nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "No post is open",
			Param:   "postId",
		}
	}

	text := strings.TrimSpace(usecase.Selection.Draft())
	if text == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Comment is required to not be empty",
			Param:   "Comments",
		}
	}

	if utf8.RuneCountInString(text) > constant.MAX_COMMENT_LENGTH {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Comment is too long",
			Param:   "Comments",
		}
	}

	if editingId := usecase.Selection.EditingCommentId(); editingId != 0 {
		return usecase.update(ctx, identity, postId, editingId, text)
	}

	return usecase.create(ctx, identity, postId, comments, text)
}

func (usecase *CommentUsecase) update(ctx context.Context, identity model.Identity, postId int64, commentId int64, text string) error {
	var saved *model.Comment

	err := usecase.Mutator.Run(ctx, Mutation{
		EntityID: commentId,
		Kind:     MutationCommentWrite,
		Apply: func() (func(), bool) {
			before, ok := usecase.Cache.Comments.Patch(commentId, func(comment *model.Comment) {
				comment.Text = text
			})

			return func() {
				usecase.Cache.Comments.Patch(commentId, func(comment *model.Comment) {
					comment.Text = before.Text
				})
			}, ok
		},
		Commit: func(ctx context.Context) error {
			var err error
			saved, err = usecase.PostRepository.AddOrUpdateComment(ctx, model.CommentRequest{
				Id:       commentId,
				PostId:   postId,
				UserId:   identity.UserId,
				Comments: text,
			})
			return err
		},
		Confirm: func(ctx context.Context) {
			if saved != nil && saved.Id == commentId {
				usecase.Cache.Comments.Upsert(*saved)
			}
		},
	})
	if err != nil {
		return err
	}

	usecase.Selection.CancelEdit()
	return nil
}

func (usecase *CommentUsecase) create(ctx context.Context, identity model.Identity, postId int64, comments *Paginator[model.Comment], text string) error {
	placeholder := model.Comment{
		Id:            nextPlaceholderId(),
		PostId:        postId,
		AuthorId:      identity.UserId,
		AuthorName:    identity.UserName,
		Text:          text,
		CreatedAt:     time.Now().UTC(),
		IsPlaceholder: true,
	}

	var saved *model.Comment

	// keyed on the post; edits are keyed on the comment
	err := usecase.Mutator.Run(ctx, Mutation{
		EntityID: postId,
		Kind:     MutationCommentCreate,
		Apply: func() (func(), bool) {
			_, ok := usecase.Cache.Posts.Patch(postId, func(post *model.Post) {
				post.CommentCount++
			})
			if !ok {
				return nil, false
			}

			usecase.Cache.Comments.Upsert(placeholder)
			comments.Append(placeholder.Id)

			return func() {
				comments.Remove(placeholder.Id)
				usecase.Cache.Comments.Remove(placeholder.Id)
				usecase.Cache.Posts.Patch(postId, func(post *model.Post) {
					post.CommentCount = max(post.CommentCount-1, 0)
				})
			}, true
		},
		Commit: func(ctx context.Context) error {
			var err error
			saved, err = usecase.PostRepository.AddOrUpdateComment(ctx, model.CommentRequest{
				Id:       0,
				PostId:   postId,
				UserId:   identity.UserId,
				Comments: text,
			})
			return err
		},
		Confirm: func(ctx context.Context) {
			index, _ := comments.Remove(placeholder.Id)
			usecase.Cache.Comments.Remove(placeholder.Id)
			if saved != nil {
				usecase.Cache.Comments.Upsert(*saved)
				comments.InsertAt(index, saved.Id)
			}

			// the server list carries author details the placeholder lacks
			err := comments.LoadPage(ctx, 1, true)
			if err != nil {
				usecase.Log.Warn("failed to refresh comments after posting", zap.Int64("postId", postId), zap.Error(err))
			}
		},
	})
	if err != nil {
		return err
	}

	usecase.Selection.SetDraft("")
	return nil
}

// ConfirmDelete deletes the comment waiting in the confirm dialog.
func (usecase *CommentUsecase) ConfirmDelete(ctx context.Context) error {
	commentId, err := usecase.Selection.takePendingDelete(DeleteTargetComment)
	if err != nil {
		return err
	}

	var lists []PositionalList
	if comments := usecase.list(); comments != nil {
		lists = append(lists, comments)
	}

	return usecase.Mutator.Run(ctx, Mutation{
		EntityID: commentId,
		Kind:     MutationCommentDelete,
		Apply: func() (func(), bool) {
			comment, ok := usecase.Cache.Comments.Get(commentId)
			if !ok {
				return nil, false
			}

			restore, ok := detach(usecase.Cache.Comments, commentId, lists)
			if !ok {
				return nil, false
			}

			usecase.Cache.Posts.Patch(comment.PostId, func(post *model.Post) {
				post.CommentCount = max(post.CommentCount-1, 0)
			})

			return func() {
				restore()
				usecase.Cache.Posts.Patch(comment.PostId, func(post *model.Post) {
					post.CommentCount++
				})
			}, true
		},
		Commit: func(ctx context.Context) error {
			return usecase.PostRepository.DeleteComment(ctx, commentId)
		},
	})
}

func (usecase *CommentUsecase) CancelDelete() {
	usecase.Selection.ClearPendingDelete()
}
