package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrProjectNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "project")
}

func NewErrAvatarNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "avatar")
}

func NewErrAdNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "ad")
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "analysis job")
}

type ErrBriefNotFound struct {
	error
}

func NewErrBriefNotFound(projectID uuid.UUID) *ErrBriefNotFound {
	return &ErrBriefNotFound{fmt.Errorf("project %s has no brief", projectID)}
}

type ErrNarrativeNotFound struct {
	error
}

func NewErrNarrativeNotFound(projectID uuid.UUID) *ErrNarrativeNotFound {
	return &ErrNarrativeNotFound{fmt.Errorf("project %s has no narrative yet", projectID)}
}

// ErrBriefIncomplete blocks generation until the questionnaire is complete.
type ErrBriefIncomplete struct {
	error
	Missing []string
}

func NewErrBriefIncomplete(missing []string) *ErrBriefIncomplete {
	return &ErrBriefIncomplete{
		error:   fmt.Errorf("brief is incomplete, missing fields: %v", missing),
		Missing: missing,
	}
}

// ErrPipelineUnavailable wraps a failed webhook call.
type ErrPipelineUnavailable struct {
	error
}

func NewErrPipelineUnavailable(endpoint string, err error) *ErrPipelineUnavailable {
	return &ErrPipelineUnavailable{fmt.Errorf("generation pipeline call %s failed: %w", endpoint, err)}
}
