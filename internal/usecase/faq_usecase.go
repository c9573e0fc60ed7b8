package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"

	"go.uber.org/zap"
)

type FaqUsecase struct {
	ContentRepository *repository.ContentRepository
	Log               *zap.Logger

	mu   sync.Mutex
	faqs []model.Faq
}

func NewFaqUsecase(contentRepository *repository.ContentRepository, zap *zap.Logger) *FaqUsecase {
	return &FaqUsecase{
		ContentRepository: contentRepository,
		Log:               zap,
	}
}

// Load keeps only active, undeleted entries.
func (usecase *FaqUsecase) Load(ctx context.Context) error {
	faqs, err := usecase.ContentRepository.GetFaqs(ctx)
	if err != nil {
		return err
	}

	visible := make([]model.Faq, 0, len(faqs))
	for _, faq := range faqs {
		if faq.Visible() {
			visible = append(visible, faq)
		}
	}

	usecase.mu.Lock()
	usecase.faqs = visible
	usecase.mu.Unlock()

	usecase.Log.Debug("faqs loaded", zap.Int("total", len(faqs)), zap.Int("visible", len(visible)))
	return nil
}

// Filter matches query case-insensitively against question and answer.
// A nil faqType matches every type.
func (usecase *FaqUsecase) Filter(query string, faqType *int) []model.Faq {
	usecase.mu.Lock()
	defer usecase.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]model.Faq, 0, len(usecase.faqs))
	for _, faq := range usecase.faqs {
		if faqType != nil && faq.FaqType != *faqType {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(faq.Question), query) &&
			!strings.Contains(strings.ToLower(faq.Answer), query) {
			continue
		}

		matched = append(matched, faq)
	}

	return matched
}
