package usecase

import (
	"context"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"

	"go.uber.org/zap"
)

// AdsScreen lists ads and rewards page by page.
type AdsScreen struct {
	AdRepository *repository.AdRepository
	Cache        *cache.Session
	Mutator      *Mutator
	Selection    *SelectionController
	Log          *zap.Logger

	ads *Paginator[model.Ad]
}

func NewAdsScreen(adRepository *repository.AdRepository, cache *cache.Session, mutator *Mutator, selection *SelectionController, pageSize int, zap *zap.Logger) *AdsScreen {
	return &AdsScreen{
		AdRepository: adRepository,
		Cache:        cache,
		Mutator:      mutator,
		Selection:    selection,
		Log:          zap,
		ads:          NewPaginator("ads", cache.Ads, adRepository.GetAds, zap, WithPageSize[model.Ad](pageSize)),
	}
}

func (screen *AdsScreen) Load(ctx context.Context) error {
	return screen.ads.LoadPage(ctx, 1, true)
}

func (screen *AdsScreen) LoadMore(ctx context.Context) error {
	return screen.ads.LoadMore(ctx)
}

func (screen *AdsScreen) Ads() []model.Ad {
	return screen.ads.Items()
}

func (screen *AdsScreen) Paginator() *Paginator[model.Ad] {
	return screen.ads
}

// Detail reads the ad from the cache; the detail view never refetches.
func (screen *AdsScreen) Detail(adId int64) (model.Ad, error) {
	return screen.Cache.Ads.MustGet(adId)
}

func (screen *AdsScreen) RequestDelete(adId int64) error {
	return screen.Selection.RequestAdDelete(adId)
}

// ConfirmDelete removes the ad at once and puts it back at the same index
// when the server refuses.
func (screen *AdsScreen) ConfirmDelete(ctx context.Context) error {
	adId, err := screen.Selection.takePendingDelete(DeleteTargetAd)
	if err != nil {
		return err
	}

	if !screen.Selection.Identity.IsAdmin {
		return forbidden("Only admins can delete ads", "adId")
	}

	return screen.Mutator.Run(ctx, Mutation{
		EntityID: adId,
		Kind:     MutationDeleteAd,
		Apply: func() (func(), bool) {
			return detach(screen.Cache.Ads, adId, []PositionalList{screen.ads})
		},
		Commit: func(ctx context.Context) error {
			return screen.AdRepository.DeleteAd(ctx, adId)
		},
	})
}

func (screen *AdsScreen) CancelDelete() {
	screen.Selection.ClearPendingDelete()
}

func (screen *AdsScreen) Close() {
	screen.ads.Close()
}
