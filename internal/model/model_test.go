package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))

	validation := &ValidationError{Code: constant.ERR_FORBIDDEN_CODE, Message: "Only the author can edit this comment"}
	assert.Equal(t, "Only the author can edit this comment", UserMessage(fmt.Errorf("edit: %w", validation)))

	business := &BusinessError{Op: "post.delete", Message: "Post already removed"}
	assert.Equal(t, "Post already removed", UserMessage(business))
	assert.Equal(t, constant.ERR_BUSINESS_FALLBACK_MESSAGE, UserMessage(&BusinessError{Op: "post.delete"}))

	transport := &TransportError{Op: "post.like", Err: errors.New("connection refused")}
	assert.Equal(t, constant.ERR_GENERIC_RETRY_MESSAGE, UserMessage(transport))
	assert.Equal(t, constant.ERR_GENERIC_RETRY_MESSAGE, UserMessage(errors.New("boom")))
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := &TransportError{Op: "ad.list", StatusCode: 0, Err: cause}

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "ad.list: dial tcp: timeout", err.Error())
	assert.Equal(t, "ad.list: unexpected status 502", (&TransportError{Op: "ad.list", StatusCode: 502}).Error())
}

func TestMediaKindOf(t *testing.T) {
	tests := []struct {
		url  string
		want MediaKind
	}{
		{"", MediaNone},
		{"https://cdn.example.com/a.JPG", MediaImage},
		{"https://cdn.example.com/clip.mp4", MediaVideo},
		{"https://cdn.example.com/clip.MOV?token=abc", MediaVideo},
		{"https://cdn.example.com/clip.webm#t=3", MediaVideo},
		{"https://cdn.example.com/no-extension", MediaImage},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MediaKindOf(tt.url), tt.url)
	}
}

func TestParseServerTime(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)

	assert.True(t, ParseServerTime("2024-05-01T10:20:30").Equal(want))
	assert.True(t, ParseServerTime("2024-05-01T10:20:30Z").Equal(want))
	assert.True(t, ParseServerTime("2024-05-01T17:20:30+07:00").Equal(want))
	assert.True(t, ParseServerTime("2024-05-01T10:20:30.1234567").Truncate(time.Second).Equal(want))
	assert.True(t, ParseServerTime("garbage").IsZero())
	assert.True(t, ParseServerTime("").IsZero())
}

func TestPostResponseToPost(t *testing.T) {
	authorId := int64(3)
	post := PostResponse{
		Id:           42,
		UserId:       &authorId,
		UserName:     "rina",
		ImageUrl:     "https://cdn.example.com/p.png",
		LikeCount:    -1,
		CommentCount: 4,
		CreatedOn:    "2024-05-01T10:20:30",
	}.ToPost()

	assert.Equal(t, int64(42), post.EntityID())
	assert.Equal(t, int64(3), post.AuthorId)
	assert.Equal(t, 0, post.LikeCount)
	assert.Equal(t, MediaImage, post.MediaKind())
	assert.False(t, post.IsLikedByCurrentUser)
}

func TestKeepInteractionFlags(t *testing.T) {
	cached := Post{Id: 1, LikeCount: 5, IsLikedByCurrentUser: true, IsSavedByCurrentUser: true}
	fetched := Post{Id: 1, LikeCount: 6}

	merged := KeepInteractionFlags(cached, fetched)
	assert.Equal(t, 6, merged.LikeCount)
	assert.True(t, merged.IsLikedByCurrentUser)
	assert.True(t, merged.IsSavedByCurrentUser)
}

func TestUserDataHasRole(t *testing.T) {
	adminId := int64(constant.ADMIN_ROLE_ID)
	otherId := int64(2)

	byName := UserData{RoleMappings: []RoleMapping{{Role: &Role{RoleName: "admin"}}}}
	byMappingId := UserData{RoleMappings: []RoleMapping{{RoleId: &adminId}}}
	byRoleId := UserData{RoleMappings: []RoleMapping{{Role: &Role{RoleId: &adminId}}}}
	member := UserData{RoleMappings: []RoleMapping{{RoleId: &otherId, Role: &Role{RoleId: &otherId, RoleName: "Member"}}}}

	assert.True(t, byName.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID))
	assert.True(t, byMappingId.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID))
	assert.True(t, byRoleId.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID))
	assert.False(t, member.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID))
	assert.False(t, UserData{}.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID))
}

func TestFaqVisible(t *testing.T) {
	yes, no := true, false

	assert.True(t, Faq{}.Visible())
	assert.True(t, Faq{IsActive: &yes, IsDeleted: &no}.Visible())
	assert.False(t, Faq{IsActive: &no}.Visible())
	assert.False(t, Faq{IsDeleted: &yes}.Visible())
}
