package progress

import (
	"context"

	"github.com/made-to-scale/scaleops/internal/store"

	"github.com/google/uuid"
)

// StoreReader adapts the data store to the Reader interface.
type StoreReader struct {
	store store.Store
}

var _ Reader = (*StoreReader)(nil)

func NewStoreReader(s store.Store) *StoreReader {
	return &StoreReader{store: s}
}

func (r *StoreReader) JobSections(ctx context.Context, projectID uuid.UUID) ([]SectionRow, error) {
	outputs, err := r.store.Analysis().ListOutputs(ctx, store.NewOutputQueryFilter().ByProjectID(projectID))
	if err != nil {
		return nil, err
	}
	rows := make([]SectionRow, 0, len(outputs))
	for _, output := range outputs {
		rows = append(rows, SectionRow{OwnerID: output.JobID, Section: output.Section})
	}
	return rows, nil
}

func (r *StoreReader) MasterSections(ctx context.Context, projectID uuid.UUID, avatarID *uuid.UUID) ([]SectionRow, error) {
	filter := store.NewOutputQueryFilter().ByProjectID(projectID)
	if avatarID != nil {
		filter = filter.ByAvatarID(*avatarID)
	}
	outputs, err := r.store.Analysis().ListMasterOutputs(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]SectionRow, 0, len(outputs))
	for _, output := range outputs {
		rows = append(rows, SectionRow{OwnerID: output.AvatarID, Section: output.Section})
	}
	return rows, nil
}
