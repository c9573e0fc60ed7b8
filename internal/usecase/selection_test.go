package usecase

import (
	"testing"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionRejectsEditByNonAuthor(t *testing.T) {
	selection := NewSelectionController(model.Identity{UserId: 7})

	err := selection.BeginEdit(model.Comment{Id: 5, AuthorId: 3, Text: "not yours"})

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, constant.ERR_FORBIDDEN_CODE, validationErr.Code)
	assert.Zero(t, selection.EditingCommentId())
	assert.Empty(t, selection.Draft())

	err = selection.RequestCommentDelete(model.Comment{Id: 5, AuthorId: 3})
	require.ErrorAs(t, err, &validationErr)
	_, pending := selection.PendingDelete()
	assert.False(t, pending)
}

func TestSelectionBeginAndCancelEdit(t *testing.T) {
	selection := NewSelectionController(model.Identity{UserId: 3})

	require.NoError(t, selection.BeginEdit(model.Comment{Id: 5, AuthorId: 3, Text: "first take"}))
	assert.Equal(t, int64(5), selection.EditingCommentId())
	assert.Equal(t, "first take", selection.Draft())

	selection.CancelEdit()
	assert.Zero(t, selection.EditingCommentId())
	assert.Empty(t, selection.Draft())
}

func TestSelectionRejectsEditOfPlaceholder(t *testing.T) {
	selection := NewSelectionController(model.Identity{UserId: 3})

	err := selection.BeginEdit(model.Comment{Id: -1, AuthorId: 3, IsPlaceholder: true})
	assert.Error(t, err)
}

func TestSelectionOpenCommentsReplaces(t *testing.T) {
	selection := NewSelectionController(model.Identity{UserId: 3})

	selection.OpenComments(1)
	require.NoError(t, selection.BeginEdit(model.Comment{Id: 5, AuthorId: 3, Text: "draft"}))
	require.NoError(t, selection.RequestCommentDelete(model.Comment{Id: 6, AuthorId: 3}))

	selection.OpenComments(2)
	assert.Equal(t, int64(2), selection.OpenPostId())
	assert.Empty(t, selection.Draft())
	assert.Zero(t, selection.EditingCommentId())
	_, pending := selection.PendingDelete()
	assert.False(t, pending)

	selection.CloseComments()
	assert.Zero(t, selection.OpenPostId())
}

func TestSelectionAdminDeletes(t *testing.T) {
	member := NewSelectionController(model.Identity{UserId: 3})
	assert.Error(t, member.RequestPostDelete(42))
	assert.Error(t, member.RequestAdDelete(1))

	admin := NewSelectionController(model.Identity{UserId: 1, IsAdmin: true})
	require.NoError(t, admin.RequestPostDelete(42))

	pending, ok := admin.PendingDelete()
	require.True(t, ok)
	assert.Equal(t, PendingDelete{Target: DeleteTargetPost, EntityId: 42}, pending)

	// the confirm dialog of another kind does not take it
	_, err := admin.takePendingDelete(DeleteTargetAd)
	assert.Error(t, err)

	postId, err := admin.takePendingDelete(DeleteTargetPost)
	require.NoError(t, err)
	assert.Equal(t, int64(42), postId)

	_, ok = admin.PendingDelete()
	assert.False(t, ok)
}
