package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	api "github.com/made-to-scale/scaleops/api/v1"
	"github.com/made-to-scale/scaleops/internal/normalize"
	"github.com/made-to-scale/scaleops/internal/store"
	"github.com/made-to-scale/scaleops/internal/webhooks"
)

type AvatarService struct {
	store    store.Store
	pipeline *webhooks.Client
}

func NewAvatarService(store store.Store, pipeline *webhooks.Client) *AvatarService {
	return &AvatarService{store: store, pipeline: pipeline}
}

func (s *AvatarService) ListAvatars(ctx context.Context, projectID uuid.UUID) ([]api.Avatar, error) {
	avatars, err := s.store.Avatar().List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]api.Avatar, 0, len(avatars))
	for _, avatar := range avatars {
		result = append(result, normalize.Avatar(avatar))
	}
	return result, nil
}

func (s *AvatarService) GetAvatar(ctx context.Context, id uuid.UUID) (*api.Avatar, error) {
	found, err := s.store.Avatar().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrAvatarNotFound(id)
		}
		return nil, err
	}
	avatar := normalize.Avatar(*found)
	return &avatar, nil
}

// DownloadReport streams the avatar's PDF dossier from the pipeline. The
// caller must close the reader.
func (s *AvatarService) DownloadReport(ctx context.Context, projectID, avatarID uuid.UUID) (io.ReadCloser, string, error) {
	avatar, err := s.GetAvatar(ctx, avatarID)
	if err != nil {
		return nil, "", err
	}

	body, err := s.pipeline.DownloadReport(ctx, projectID, avatarID)
	if err != nil {
		return nil, "", NewErrPipelineUnavailable("descargar-doc", err)
	}
	return body, reportFileName(avatar.Name), nil
}

var reportNameAllowed = regexp.MustCompile(`[^a-zA-Z0-9áéíóúñÁÉÍÓÚÑ\s-]`)

func reportFileName(avatarName string) string {
	safe := strings.TrimSpace(reportNameAllowed.ReplaceAllString(avatarName, ""))
	if safe == "" {
		safe = "avatar"
	}
	return fmt.Sprintf("Informe-%s.pdf", safe)
}
