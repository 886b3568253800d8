package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/events"
	"github.com/made-to-scale/scaleops/internal/normalize"
	"github.com/made-to-scale/scaleops/internal/service/mappers"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/webhooks"
)

type CompetitorService struct {
	store    store.Store
	pipeline *webhooks.Client
	producer *events.EventProducer
}

func NewCompetitorService(store store.Store, pipeline *webhooks.Client, producer *events.EventProducer) *CompetitorService {
	return &CompetitorService{store: store, pipeline: pipeline, producer: producer}
}

func (s *CompetitorService) ListCompetitors(ctx context.Context, projectID uuid.UUID) ([]api.Competitor, error) {
	competitors, err := s.store.Competitor().List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]api.Competitor, 0, len(competitors))
	for i := range competitors {
		result = append(result, mappers.CompetitorToApi(&competitors[i]))
	}
	return result, nil
}

// GetStrategy returns the newest consolidated strategic analysis, or nil when
// the pipeline has not delivered one yet.
func (s *CompetitorService) GetStrategy(ctx context.Context, projectID uuid.UUID) (*api.CompetitorStrategy, error) {
	strategy, err := s.store.Competitor().LatestStrategy(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	result := normalize.Strategy(*strategy)
	return &result, nil
}

// ListAds returns the scraped tactical creatives with competitor names
// resolved, plus the consolidated ads commentary when present.
func (s *CompetitorService) ListAds(ctx context.Context, projectID uuid.UUID) ([]api.CompetitorAd, string, error) {
	ads, err := s.store.Competitor().ListAds(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	competitors, err := s.store.Competitor().List(ctx, projectID)
	if err != nil {
		return nil, "", err
	}

	analysisText := ""
	if strategy, err := s.store.Competitor().LatestStrategy(ctx, projectID); err == nil {
		analysisText = normalize.AdsAnalysisText(strategy.AnalisisFinalAnuncios)
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, "", err
	}

	return mappers.CompetitorAdsToApi(ads, competitors), analysisText, nil
}

// RequestAdsAnalysis asks the pipeline to scrape the given ad libraries.
// Results arrive asynchronously as competitor_ads_tactical rows.
func (s *CompetitorService) RequestAdsAnalysis(ctx context.Context, projectID uuid.UUID, request *api.AdsAnalysisRequest) error {
	if _, err := s.store.Project().Get(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrProjectNotFound(projectID)
		}
		return err
	}

	analysis := webhooks.AdsAnalysis{ProjectID: projectID}
	for _, competitor := range request.Competitors {
		analysis.Competitors = append(analysis.Competitors, webhooks.AdsAnalysisCompetitor{
			Name:          competitor.Name,
			AdsLibraryURL: competitor.AdsLibraryURL,
		})
	}
	if err := s.pipeline.AnalyzeAds(ctx, analysis); err != nil {
		return NewErrPipelineUnavailable("analisisanuncios", err)
	}

	if err := s.producer.Emit(ctx, events.AdsAnalysisMessageKind, events.AdsAnalysisRequestedEvent{
		ProjectID:   projectID,
		Competitors: len(request.Competitors),
	}); err != nil {
		zap.S().Named("competitor_service").Warnf("failed to emit ads analysis event: %s", err)
	}
	return nil
}
