package constant

import "time"

const (
	DEFAULT_PAGE_SIZE   = 10
	DEFAULT_API_TIMEOUT = 15 * time.Second

	// home screen slider
	AD_SLIDER_SIZE = 4

	CHAT_SEARCH_TAKE   = 10
	CHAT_CONTEXT_LINES = 10

	ADMIN_ROLE_NAME = "Admin"
	ADMIN_ROLE_ID   = 1

	SESSION_KEY_PREFIX = "session"
	SESSION_TTL        = 30 * 24 * time.Hour

	MAX_COMMENT_LENGTH = 2000
	MAX_MESSAGE_LENGTH = 2000
)
