package service

import (
	"context"
	"errors"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

var ErrLinkNotFound = errors.New("link not found on project")

type OverrideRequest struct {
	LinkID string `json:"link_id"`
	// Hours nil clears the override (back to not-reviewed); an explicit 0
	// approves the entry for zero hours.
	Hours *float64 `json:"hours"`
}

func ValidateOverrideRequest(req *OverrideRequest) error {
	if req.Hours != nil && *req.Hours < 0 {
		return errors.New("override hours cannot be negative")
	}
	return nil
}

// SetHoursOverride records a reviewer's hour certification on a project.
// With a link ID it targets that link; without one it sets the legacy
// project-level override used by pre-link records.
func SetHoursOverride(ctx context.Context, projectRepo storage.ProjectRepository, projectID string, req *OverrideRequest) (*internal.Project, error) {
	project, err := projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.LinkID == "" {
		project.HoursOverride = req.Hours
	} else {
		found := false
		for i := range project.HackatimeLinks {
			if project.HackatimeLinks[i].ID == req.LinkID {
				project.HackatimeLinks[i].HoursOverride = req.Hours
				found = true
				break
			}
		}
		if !found {
			return nil, ErrLinkNotFound
		}
	}

	if err := projectRepo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

type StatusRequest struct {
	Shipped *bool `json:"shipped"`
	Viral   *bool `json:"viral"`
}

// SetProjectStatus flips the review-workflow flags. Only the provided
// fields change.
func SetProjectStatus(ctx context.Context, projectRepo storage.ProjectRepository, projectID string, req *StatusRequest) (*internal.Project, error) {
	project, err := projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if req.Shipped != nil {
		project.Shipped = *req.Shipped
	}
	if req.Viral != nil {
		project.Viral = *req.Viral
	}
	if err := projectRepo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

type AdjustmentRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Delta  int    `json:"delta" validate:"required"`
}

func ValidateAdjustmentRequest(req *AdjustmentRequest) error {
	return validate.Struct(req)
}

// AdjustShells applies a manual shell correction to a user's balance. The
// audit trail for the change is the caller's responsibility.
func AdjustShells(ctx context.Context, userRepo storage.UserRepository, req *AdjustmentRequest) (*internal.User, error) {
	user, err := userRepo.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	user.AdminShellAdjustment += req.Delta
	if err := userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
