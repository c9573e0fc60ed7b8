package model

import "time"

type Comment struct {
	Id                 int64
	PostId             int64
	AuthorId           int64
	AuthorName         string
	AuthorProfileImage *string
	Text               string
	CreatedAt          time.Time

	// Set on the local copy shown while the create request is in flight.
	IsPlaceholder bool
}

func (comment Comment) EntityID() int64 {
	return comment.Id
}

type CommentUser struct {
	Id           int64   `json:"Id"`
	Name         string  `json:"Name"`
	ProfileImage *string `json:"ProfileImage"`
}

type CommentResponse struct {
	Id        int64        `json:"Id"`
	PostId    int64        `json:"PostId"`
	UserId    int64        `json:"UserId"`
	Comments  string       `json:"Comments"`
	CreatedOn string       `json:"CreatedOn"`
	User      *CommentUser `json:"User"`
}

func (response CommentResponse) ToComment() Comment {
	comment := Comment{
		Id:        response.Id,
		PostId:    response.PostId,
		AuthorId:  response.UserId,
		Text:      response.Comments,
		CreatedAt: ParseServerTime(response.CreatedOn),
	}

	if response.User != nil {
		comment.AuthorName = response.User.Name
		comment.AuthorProfileImage = response.User.ProfileImage
	}

	return comment
}

func ToComments(responses []CommentResponse) []Comment {
	comments := make([]Comment, 0, len(responses))
	for _, response := range responses {
		comments = append(comments, response.ToComment())
	}

	return comments
}

// CommentRequest is the add-or-update payload. Id 0 creates, any other id
// updates that comment.
type CommentRequest struct {
	Id       int64  `json:"Id" validate:"gte=0"`
	PostId   int64  `json:"PostId" validate:"gt=0"`
	UserId   int64  `json:"UserId" validate:"gt=0"`
	Comments string `json:"Comments" validate:"required,max=2000"`
}
