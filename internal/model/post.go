package model

import (
	"path"
	"strings"
	"time"
)

type MediaKind string

const (
	MediaNone  MediaKind = ""
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".m4v":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
}

// MediaKindOf derives the media kind from the url's extension.
func MediaKindOf(url string) MediaKind {
	if strings.TrimSpace(url) == "" {
		return MediaNone
	}

	cleaned := strings.ToLower(url)
	if idx := strings.IndexAny(cleaned, "?#"); idx >= 0 {
		cleaned = cleaned[:idx]
	}

	if _, ok := videoExtensions[path.Ext(cleaned)]; ok {
		return MediaVideo
	}

	return MediaImage
}

type Post struct {
	Id                 int64
	AuthorId           int64
	AuthorName         string
	AuthorProfileImage *string
	Name               string
	Url                string
	Description        string
	MediaUrl           string
	CategoryId         *int64
	LikeCount          int
	CommentCount       int
	CreatedAt          time.Time

	// Known only from interactions made during this session.
	IsLikedByCurrentUser bool
	IsSavedByCurrentUser bool
}

func (post Post) EntityID() int64 {
	return post.Id
}

func (post Post) MediaKind() MediaKind {
	return MediaKindOf(post.MediaUrl)
}

// KeepInteractionFlags carries the session-local like/save flags of cached
// over to a freshly fetched copy of the same post.
func KeepInteractionFlags(cached Post, fetched Post) Post {
	fetched.IsLikedByCurrentUser = cached.IsLikedByCurrentUser
	fetched.IsSavedByCurrentUser = cached.IsSavedByCurrentUser
	return fetched
}

type PostResponse struct {
	Id             int64   `json:"Id"`
	Name           string  `json:"Name"`
	Url            string  `json:"Url"`
	Description    string  `json:"Description"`
	ImageUrl       string  `json:"ImageUrl"`
	UserId         *int64  `json:"UserId"`
	UserName       string  `json:"UserName"`
	ProfileImage   *string `json:"ProfileImage"`
	PostCategoryId *int64  `json:"PostCategoryId,omitempty"`
	CreatedOn      string  `json:"CreatedOn"`
	LikeCount      int     `json:"LikeCount"`
	CommentCount   int     `json:"CommentCount"`
}

func (response PostResponse) ToPost() Post {
	post := Post{
		Id:                 response.Id,
		AuthorName:         response.UserName,
		AuthorProfileImage: response.ProfileImage,
		Name:               response.Name,
		Url:                response.Url,
		Description:        response.Description,
		MediaUrl:           response.ImageUrl,
		CategoryId:         response.PostCategoryId,
		LikeCount:          max(response.LikeCount, 0),
		CommentCount:       max(response.CommentCount, 0),
		CreatedAt:          ParseServerTime(response.CreatedOn),
	}

	if response.UserId != nil {
		post.AuthorId = *response.UserId
	}

	return post
}

func ToPosts(responses []PostResponse) []Post {
	posts := make([]Post, 0, len(responses))
	for _, response := range responses {
		posts = append(posts, response.ToPost())
	}

	return posts
}

// PostDraft is what the publish form submits.
type PostDraft struct {
	Name        string `validate:"required,max=200"`
	Url         string `validate:"omitempty,max=500"`
	Description string `validate:"required,max=5000"`
	CategoryId  *int64
	File        *Attachment
}

type Attachment struct {
	FileName string
	Content  []byte
}
