package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/events"
	"github.com/made-to-scale/scaleops/internal/service/mappers"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/webhooks"
)

type AdsService struct {
	store    store.Store
	pipeline *webhooks.Client
	producer *events.EventProducer
}

func NewAdsService(store store.Store, pipeline *webhooks.Client, producer *events.EventProducer) *AdsService {
	return &AdsService{store: store, pipeline: pipeline, producer: producer}
}

func (s *AdsService) ListAds(ctx context.Context, projectID uuid.UUID) ([]api.AdCreation, error) {
	ads, err := s.store.Ads().List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]api.AdCreation, 0, len(ads))
	for i := range ads {
		result = append(result, mappers.AdToApi(&ads[i]))
	}
	return result, nil
}

// GenerateAd records a queued creative row and hands the request to the
// pipeline. The row is rolled back when the pipeline cannot be reached, so a
// failed request never leaves a ghost "queued" creative behind.
func (s *AdsService) GenerateAd(ctx context.Context, projectID uuid.UUID, request *api.AdGenerateRequest) (*api.AdCreation, error) {
	avatar, err := s.store.Avatar().Get(ctx, request.AvatarID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrAvatarNotFound(request.AvatarID)
		}
		return nil, err
	}
	if avatar.ProjectID != projectID {
		return nil, NewErrAvatarNotFound(request.AvatarID)
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	ad, err := s.store.Ads().Create(ctx, mappers.AdFromApi(uuid.New(), projectID, request))
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	creation := webhooks.AdCreation{
		ProjectID:   projectID,
		AvatarID:    request.AvatarID,
		FunnelStage: request.FunnelStage,
		Format:      request.Format,
		ScriptType:  request.ScriptType,
		Angle:       request.Angle,
		AngleIdea:   request.Angle,
	}
	// Angle sources named after the dynamic funnel columns ("Estrategia ...")
	// break the creative workflow, so those are sent as absent.
	if request.AngleSource != "" && !strings.HasPrefix(request.AngleSource, "Estrategia ") {
		creation.AngleSource = &request.AngleSource
	}
	creation.VideoDurationSeconds = ad.VideoDurationSeconds
	creation.CarouselSlides = ad.CarouselSlides
	if err := s.pipeline.CreateAd(ctx, creation); err != nil {
		_, _ = store.Rollback(ctx)
		return nil, NewErrPipelineUnavailable("creacion-anuncios", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	if err := s.producer.Emit(ctx, events.AdMessageKind, events.AdRequestedEvent{
		ProjectID:   projectID,
		AdID:        ad.ID,
		AvatarID:    request.AvatarID,
		Format:      request.Format,
		FunnelStage: request.FunnelStage,
	}); err != nil {
		zap.S().Named("ads_service").Warnf("failed to emit ad requested event: %s", err)
	}

	result := mappers.AdToApi(ad)
	return &result, nil
}

func (s *AdsService) DeleteAd(ctx context.Context, projectID, id uuid.UUID) error {
	ad, err := s.store.Ads().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrAdNotFound(id)
		}
		return err
	}
	if ad.ProjectID != projectID {
		return NewErrAdNotFound(id)
	}
	return s.store.Ads().Delete(ctx, id)
}
