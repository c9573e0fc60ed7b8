package repository

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/model"
)

// ContentRepository reads the admin-managed lists: post categories and
// FAQ entries.
type ContentRepository struct {
	Log *zap.Logger
	API *APIClient
}

func NewContentRepository(zap *zap.Logger, api *APIClient) *ContentRepository {
	return &ContentRepository{
		Log: zap,
		API: api,
	}
}

func (repository *ContentRepository) GetPostCategories(ctx context.Context) ([]model.PostCategory, error) {
	return callEnvelope[[]model.PostCategory](ctx, repository.API, apiRequest{
		op:     "category.list",
		method: fiber.MethodGet,
		path:   "/PostCategory/GetAll",
	})
}

func (repository *ContentRepository) GetFaqs(ctx context.Context) ([]model.Faq, error) {
	return callEnvelope[[]model.Faq](ctx, repository.API, apiRequest{
		op:     "faq.list",
		method: fiber.MethodGet,
		path:   "/Faq/GetAll",
	})
}
