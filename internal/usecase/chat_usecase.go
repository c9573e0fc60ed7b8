package usecase

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"
	"github.com/ferdian3456/communityclient/internal/util"

	"go.uber.org/zap"
)

// ChatUsecase backs the support chat and the chat log search.
type ChatUsecase struct {
	ChatRepository *repository.ChatRepository
	Mutator        *Mutator
	Identity       model.Identity
	Log            *zap.Logger

	mu       sync.Mutex
	messages []model.ChatMessage
	// closed when the latest queued send is done
	lastSend chan struct{}

	searchMu         sync.Mutex
	keyword          string
	results          []model.ChatSearchResult
	skip             int
	hasMore          bool
	searching        bool
	searchGeneration uint64
}

func NewChatUsecase(chatRepository *repository.ChatRepository, mutator *Mutator, identity model.Identity, zap *zap.Logger) *ChatUsecase {
	return &ChatUsecase{
		ChatRepository: chatRepository,
		Mutator:        mutator,
		Identity:       identity,
		Log:            zap,
	}
}

func (usecase *ChatUsecase) History(ctx context.Context) error {
	if !usecase.Identity.SignedIn() {
		return signInRequired()
	}

	messages, err := usecase.ChatRepository.GetChatHistory(ctx, usecase.Identity.UserId)
	if err != nil {
		return err
	}

	usecase.mu.Lock()
	defer usecase.mu.Unlock()

	// keep messages still being sent at the bottom
	for _, message := range usecase.messages {
		if message.IsPlaceholder {
			messages = append(messages, message)
		}
	}
	usecase.messages = messages

	return nil
}

func (usecase *ChatUsecase) Messages() []model.ChatMessage {
	usecase.mu.Lock()
	defer usecase.mu.Unlock()

	return append([]model.ChatMessage(nil), usecase.messages...)
}

// Send shows the message at once and swaps it for the stored one when the
// server answers. A refused message is dropped. Messages sent while another
// is pending wait for it.
func (usecase *ChatUsecase) Send(ctx context.Context, text string) error {
	if !usecase.Identity.SignedIn() {
		return signInRequired()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Message is required to not be empty",
			Param:   "Message",
		}
	}

	if utf8.RuneCountInString(text) > constant.MAX_MESSAGE_LENGTH {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Message is too long",
			Param:   "Message",
		}
	}

	placeholder := model.ChatMessage{
		Id:            nextPlaceholderId(),
		UserId:        usecase.Identity.UserId,
		Text:          text,
		CreatedAt:     time.Now().UTC(),
		IsPlaceholder: true,
	}

	var stored *model.ChatMessage

	// sends queue up behind the one before, so the server gets them in order
	done := make(chan struct{})
	usecase.mu.Lock()
	previous := usecase.lastSend
	usecase.lastSend = done
	usecase.mu.Unlock()
	defer close(done)

	return usecase.Mutator.Run(ctx, Mutation{
		EntityID: placeholder.Id,
		Kind:     MutationSendMessage,
		Apply: func() (func(), bool) {
			usecase.mu.Lock()
			usecase.messages = append(usecase.messages, placeholder)
			usecase.mu.Unlock()

			return func() {
				usecase.replace(placeholder.Id, nil)
			}, true
		},
		Commit: func(ctx context.Context) error {
			if previous != nil {
				select {
				case <-previous:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			var err error
			stored, err = usecase.ChatRepository.SendUserMessage(ctx, usecase.Identity.UserId, text)
			return err
		},
		Confirm: func(ctx context.Context) {
			confirmed := placeholder
			confirmed.IsPlaceholder = false
			if stored != nil {
				confirmed = *stored
			}

			usecase.replace(placeholder.Id, &confirmed)
		},
	})
}

// replace swaps the message with id for message, or drops it when message
// is nil.
func (usecase *ChatUsecase) replace(id int64, message *model.ChatMessage) {
	usecase.mu.Lock()
	defer usecase.mu.Unlock()

	for i, listed := range usecase.messages {
		if listed.Id != id {
			continue
		}

		if message == nil {
			usecase.messages = append(usecase.messages[:i], usecase.messages[i+1:]...)
		} else {
			usecase.messages[i] = *message
		}
		return
	}
}

// Search starts a new keyword search; results of an older one landing
// later are dropped.
func (usecase *ChatUsecase) Search(ctx context.Context, keyword string) error {
	keyword = strings.TrimSpace(keyword)

	usecase.searchMu.Lock()
	usecase.searchGeneration++
	usecase.keyword = keyword
	usecase.results = nil
	usecase.skip = 0
	usecase.hasMore = keyword != ""
	usecase.searching = false
	usecase.searchMu.Unlock()

	if keyword == "" {
		return nil
	}

	return usecase.SearchMore(ctx)
}

// SearchMore fetches the next CHAT_SEARCH_TAKE matches. A short page ends
// the search.
func (usecase *ChatUsecase) SearchMore(ctx context.Context) error {
	usecase.searchMu.Lock()
	if usecase.searching || !usecase.hasMore || usecase.keyword == "" {
		usecase.searchMu.Unlock()
		return nil
	}
	usecase.searching = true
	keyword := usecase.keyword
	skip := usecase.skip
	generation := usecase.searchGeneration
	usecase.searchMu.Unlock()

	take := constant.CHAT_SEARCH_TAKE
	results, err := usecase.ChatRepository.SearchChatMatches(ctx, keyword, skip, take)

	usecase.searchMu.Lock()
	defer usecase.searchMu.Unlock()

	if generation != usecase.searchGeneration {
		return nil
	}
	usecase.searching = false

	if err != nil {
		usecase.Log.Warn("failed to search chat", zap.String("keyword", keyword), zap.Int("skip", skip), zap.Error(err))
		return err
	}

	usecase.results = append(usecase.results, results...)
	usecase.skip = skip + len(results)
	usecase.hasMore = len(results) == take

	return nil
}

func (usecase *ChatUsecase) Results() []model.ChatSearchResult {
	usecase.searchMu.Lock()
	defer usecase.searchMu.Unlock()

	return append([]model.ChatSearchResult(nil), usecase.results...)
}

func (usecase *ChatUsecase) HasMoreResults() bool {
	usecase.searchMu.Lock()
	defer usecase.searchMu.Unlock()

	return usecase.hasMore
}

// HighlightResult splits the result's text around the current keyword,
// without its group tag.
func (usecase *ChatUsecase) HighlightResult(result model.ChatSearchResult) []util.Segment {
	usecase.searchMu.Lock()
	keyword := usecase.keyword
	usecase.searchMu.Unlock()

	return util.Highlight(util.CleanChatText(result.Text), keyword)
}

// Context fetches the lines around a match.
func (usecase *ChatUsecase) Context(ctx context.Context, group string, line int) (model.ChatContext, error) {
	chatContext, err := usecase.ChatRepository.GetChatContext(ctx, group, line, constant.CHAT_CONTEXT_LINES)
	if err != nil {
		return model.ChatContext{}, err
	}

	for i, snippet := range chatContext.Snippet {
		chatContext.Snippet[i] = util.CleanChatText(snippet)
	}

	return chatContext, nil
}
