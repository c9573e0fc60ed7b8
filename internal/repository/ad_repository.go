package repository

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/model"
)

type AdRepository struct {
	Log *zap.Logger
	API *APIClient
}

func NewAdRepository(zap *zap.Logger, api *APIClient) *AdRepository {
	return &AdRepository{
		Log: zap,
		API: api,
	}
}

func (repository *AdRepository) GetAds(ctx context.Context, pageNumber int, pageSize int) (model.PageResult[model.Ad], error) {
	page, err := callEnvelope[*model.AdPageResponse](ctx, repository.API, apiRequest{
		op:     "ad.list",
		method: fiber.MethodGet,
		path:   "/Ad/GetAds",
		query:  queryOf("pageNumber", strconv.Itoa(pageNumber), "pageSize", strconv.Itoa(pageSize)),
	})
	if err != nil || page == nil {
		return model.PageResult[model.Ad]{}, err
	}

	ads := make([]model.Ad, 0, len(page.Items))
	for _, item := range page.Items {
		ads = append(ads, item.ToAd())
	}

	return model.PageResult[model.Ad]{Items: ads, TotalCount: page.TotalCount}, nil
}

func (repository *AdRepository) DeleteAd(ctx context.Context, id int64) error {
	_, err := callEnvelope[any](ctx, repository.API, apiRequest{
		op:     "ad.delete",
		method: fiber.MethodPost,
		path:   "/Ad/Delete",
		query:  queryOf("id", itoa(id)),
	})

	return err
}
