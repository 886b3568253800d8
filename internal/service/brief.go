package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/events"
	"github.com/made-to-scale/scaleops/internal/handlers/validator"
	"github.com/made-to-scale/scaleops/internal/service/mappers"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/webhooks"
)

type BriefService struct {
	store    store.Store
	pipeline *webhooks.Client
	producer *events.EventProducer
}

func NewBriefService(store store.Store, pipeline *webhooks.Client, producer *events.EventProducer) *BriefService {
	return &BriefService{store: store, pipeline: pipeline, producer: producer}
}

func (s *BriefService) GetBrief(ctx context.Context, projectID uuid.UUID) (*api.Brief, error) {
	found, err := s.store.Brief().Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrBriefNotFound(projectID)
		}
		return nil, err
	}
	brief := mappers.BriefToApi(found)
	return &brief, nil
}

// SaveBrief upserts the questionnaire. Incomplete payloads are stored too,
// flagged invalid with their missing fields, so users can save drafts.
func (s *BriefService) SaveBrief(ctx context.Context, projectID uuid.UUID, payload *api.BriefPayload) (*api.Brief, error) {
	if _, err := s.store.Project().Get(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProjectNotFound(projectID)
		}
		return nil, err
	}

	validation := validator.ValidateBriefPayload(payload)

	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Brief().Upsert(ctx, mappers.BriefFromApi(uuid.New(), projectID, payload, validation.OK, validation.Missing))
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	if err := s.producer.Emit(ctx, events.BriefMessageKind, events.BriefSavedEvent{
		ProjectID: projectID,
		BriefID:   saved.ID,
		Version:   saved.Version,
		IsValid:   saved.IsValid,
	}); err != nil {
		zap.S().Named("brief_service").Warnf("failed to emit brief event: %s", err)
	}

	brief := mappers.BriefToApi(saved)
	return &brief, nil
}

// GenerateAvatars kicks off the buyer-persona pipeline for a complete brief.
func (s *BriefService) GenerateAvatars(ctx context.Context, projectID uuid.UUID, userID string) error {
	found, err := s.store.Brief().Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrBriefNotFound(projectID)
		}
		return err
	}

	if !found.IsValid {
		missing := []string{}
		if found.MissingFields != nil {
			missing = found.MissingFields.Data
		}
		return NewErrBriefIncomplete(missing)
	}

	request := webhooks.BuyerGeneration{
		ProjectID:    projectID,
		BriefID:      found.ID,
		UserID:       userID,
		BriefVersion: found.Version,
	}
	if err := s.pipeline.GenerateBuyers(ctx, request); err != nil {
		return NewErrPipelineUnavailable("buyer-parte1", err)
	}

	if err := s.producer.Emit(ctx, events.GenerationMessageKind, events.GenerationRequestedEvent{
		ProjectID: projectID,
		BriefID:   found.ID,
		UserID:    userID,
	}); err != nil {
		zap.S().Named("brief_service").Warnf("failed to emit generation event: %s", err)
	}
	return nil
}
