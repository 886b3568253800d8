package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/normalize"
	"github.com/made-to-scale/scaleops/internal/service/mappers"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/store/model"
)

type ProjectService struct {
	store store.Store
}

func NewProjectService(store store.Store) *ProjectService {
	return &ProjectService{store: store}
}

type ProjectFilter struct {
	UserID string
}

func (s *ProjectService) ListProjects(ctx context.Context, filter *ProjectFilter) ([]api.Project, error) {
	storeFilter := store.NewProjectQueryFilter()
	if filter != nil && filter.UserID != "" {
		storeFilter = storeFilter.ByUserID(filter.UserID)
	}

	projects, err := s.store.Project().List(ctx, storeFilter)
	if err != nil {
		return nil, err
	}
	return mappers.ProjectListToApi(projects), nil
}

func (s *ProjectService) CreateProject(ctx context.Context, resource *api.ProjectCreate) (*api.Project, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Project().Create(ctx, mappers.ProjectFromApi(uuid.New(), resource))
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	project := mappers.ProjectToApi(created)
	return &project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*api.Project, error) {
	found, err := s.store.Project().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProjectNotFound(id)
		}
		return nil, err
	}
	project := mappers.ProjectToApi(found)
	return &project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProject(ctx, id); err != nil {
		return err
	}
	return s.store.Project().Delete(ctx, id)
}

func (s *ProjectService) GetProjectStats(ctx context.Context, id uuid.UUID) (*api.ProjectStats, error) {
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Project().Stats(ctx, id)
}

// GetProjectContexts returns the normalized research and social listening
// contexts. A kind the pipeline has not delivered yet is simply absent.
func (s *ProjectService) GetProjectContexts(ctx context.Context, id uuid.UUID) (*api.ProjectContexts, error) {
	if _, err := s.GetProject(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.store.Project().Contexts(ctx, id)
	if err != nil {
		return nil, err
	}

	contexts := api.ProjectContexts{}
	for _, row := range rows {
		switch row.Kind {
		case model.ContextKindMarket:
			contexts.Market = normalize.MarketContext(row.Content)
		case model.ContextKindSocial:
			contexts.Social = normalize.SocialContext(row.Content)
		}
	}
	return &contexts, nil
}
