package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

var validate = validator.New()

var ErrNotOwner = errors.New("project does not belong to user")

type ProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

func ValidateProjectRequest(req *ProjectRequest) error {
	return validate.Struct(req)
}

func CreateProject(ctx context.Context, projectRepo storage.ProjectRepository, user *internal.User, req *ProjectRequest) (*internal.Project, error) {
	project := &internal.Project{
		ProjectID: uuid.NewString(),
		UserID:    user.ID,
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := projectRepo.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

type LinkRequest struct {
	RawHours float64 `json:"raw_hours" validate:"gte=0"`
}

func ValidateLinkRequest(req *LinkRequest) error {
	return validate.Struct(req)
}

// AttachLink adds a time-tracking entry to one of the user's own projects.
// New links start unreviewed: they carry tracked hours but no override.
func AttachLink(ctx context.Context, projectRepo storage.ProjectRepository, user *internal.User, projectID string, req *LinkRequest) (*internal.Project, error) {
	project, err := projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != user.ID {
		return nil, ErrNotOwner
	}

	project.HackatimeLinks = append(project.HackatimeLinks, internal.HackatimeLink{
		ID:       uuid.NewString(),
		RawHours: req.RawHours,
	})
	if err := projectRepo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
