package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/normalize"
	"github.com/made-to-scale/scaleops/internal/store"
)

type NarrativeService struct {
	store store.Store
}

func NewNarrativeService(store store.Store) *NarrativeService {
	return &NarrativeService{store: store}
}

// GetNarrative returns the brand narrative assembled from the pipeline's
// narrative columns, decoded at the read boundary.
func (s *NarrativeService) GetNarrative(ctx context.Context, projectID uuid.UUID) (*api.Narrative, error) {
	narrative, err := s.store.Narrative().Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrNarrativeNotFound(projectID)
		}
		return nil, err
	}
	result := normalize.Narrative(*narrative)
	return &result, nil
}
