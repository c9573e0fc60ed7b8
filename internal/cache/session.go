package cache

import (
	"github.com/ferdian3456/communityclient/internal/model"
	"go.uber.org/zap"
)

// Session holds every entity cache shared by the screens of one signed-in
// session.
type Session struct {
	Posts         *EntityCache[model.Post]
	Comments      *EntityCache[model.Comment]
	Ads           *EntityCache[model.Ad]
	Notifications *EntityCache[model.Notification]
	Log           *zap.Logger
}

func NewSession(zap *zap.Logger) *Session {
	return &Session{
		Posts:         NewEntityCache[model.Post]("post", zap),
		Comments:      NewEntityCache[model.Comment]("comment", zap),
		Ads:           NewEntityCache[model.Ad]("ad", zap),
		Notifications: NewEntityCache[model.Notification]("notification", zap),
		Log:           zap,
	}
}

// Clear drops everything. Called on logout.
func (session *Session) Clear() {
	session.Posts.Clear()
	session.Comments.Clear()
	session.Ads.Clear()
	session.Notifications.Clear()

	session.Log.Debug("entity caches cleared")
}
