package usecase

import (
	"sync"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
)

type DeleteTarget string

const (
	DeleteTargetComment DeleteTarget = "comment"
	DeleteTargetPost    DeleteTarget = "post"
	DeleteTargetAd      DeleteTarget = "ad"
)

// PendingDelete is the entity waiting in the delete-confirm dialog.
type PendingDelete struct {
	Target   DeleteTarget
	EntityId int64
}

// SelectionController tracks the one open comments sheet, the one pending
// delete confirmation and the comment draft of a screen. Edit and delete
// requests are checked against the signed-in user here, not only hidden in
// the view.
type SelectionController struct {
	Identity model.Identity

	mu               sync.Mutex
	openPostId       int64
	draft            string
	editingCommentId int64
	pendingDelete    *PendingDelete
}

func NewSelectionController(identity model.Identity) *SelectionController {
	return &SelectionController{
		Identity: identity,
	}
}

func forbidden(message string, param string) error {
	return &model.ValidationError{
		Code:    constant.ERR_FORBIDDEN_CODE,
		Message: message,
		Param:   param,
	}
}

// OpenComments replaces any open sheet with the one for postId and resets
// the draft.
func (selection *SelectionController) OpenComments(postId int64) {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	selection.openPostId = postId
	selection.draft = ""
	selection.editingCommentId = 0
	if selection.pendingDelete != nil && selection.pendingDelete.Target == DeleteTargetComment {
		selection.pendingDelete = nil
	}
}

func (selection *SelectionController) CloseComments() {
	selection.OpenComments(0)
}

// OpenPostId is 0 when no comments sheet is open.
func (selection *SelectionController) OpenPostId() int64 {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	return selection.openPostId
}

func (selection *SelectionController) SetDraft(text string) {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	selection.draft = text
}

func (selection *SelectionController) Draft() string {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	return selection.draft
}

// BeginEdit tags the draft with the comment and pre-fills its text. Only
// the comment's author may do this.
func (selection *SelectionController) BeginEdit(comment model.Comment) error {
	if !selection.Identity.SignedIn() {
		return forbidden(constant.ERR_SIGN_IN_REQUIRED_MESSAGE, "userId")
	}

	if comment.AuthorId != selection.Identity.UserId {
		return forbidden("You can only edit your own comments", "commentId")
	}

	if comment.IsPlaceholder {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "This comment is still being posted",
			Param:   "commentId",
		}
	}

	selection.mu.Lock()
	defer selection.mu.Unlock()

	selection.draft = comment.Text
	selection.editingCommentId = comment.Id
	return nil
}

// CancelEdit drops the tag and the draft.
func (selection *SelectionController) CancelEdit() {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	selection.draft = ""
	selection.editingCommentId = 0
}

func (selection *SelectionController) EditingCommentId() int64 {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	return selection.editingCommentId
}

func (selection *SelectionController) RequestCommentDelete(comment model.Comment) error {
	if !selection.Identity.SignedIn() {
		return forbidden(constant.ERR_SIGN_IN_REQUIRED_MESSAGE, "userId")
	}

	if comment.AuthorId != selection.Identity.UserId {
		return forbidden("You can only delete your own comments", "commentId")
	}

	selection.setPendingDelete(DeleteTargetComment, comment.Id)
	return nil
}

func (selection *SelectionController) RequestPostDelete(postId int64) error {
	if !selection.Identity.IsAdmin {
		return forbidden("Only admins can delete posts", "postId")
	}

	selection.setPendingDelete(DeleteTargetPost, postId)
	return nil
}

func (selection *SelectionController) RequestAdDelete(adId int64) error {
	if !selection.Identity.IsAdmin {
		return forbidden("Only admins can delete ads", "adId")
	}

	selection.setPendingDelete(DeleteTargetAd, adId)
	return nil
}

func (selection *SelectionController) setPendingDelete(target DeleteTarget, entityId int64) {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	selection.pendingDelete = &PendingDelete{Target: target, EntityId: entityId}
}

func (selection *SelectionController) PendingDelete() (PendingDelete, bool) {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	if selection.pendingDelete == nil {
		return PendingDelete{}, false
	}

	return *selection.pendingDelete, true
}

func (selection *SelectionController) ClearPendingDelete() {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	selection.pendingDelete = nil
}

// takePendingDelete returns and clears the pending delete when it targets
// target.
func (selection *SelectionController) takePendingDelete(target DeleteTarget) (int64, error) {
	selection.mu.Lock()
	defer selection.mu.Unlock()

	if selection.pendingDelete == nil || selection.pendingDelete.Target != target {
		return 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Nothing is waiting to be deleted",
			Param:   string(target),
		}
	}

	entityId := selection.pendingDelete.EntityId
	selection.pendingDelete = nil
	return entityId, nil
}
