package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hackclub/shipwrecked-sub000/internal/service"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

func PutHoursOverride(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.OverrideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateOverrideRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		project, err := service.SetHoursOverride(c.Request.Context(), app.ProjectRepo(), c.Param("id"), &req)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				HandleError(c, app.Logger(), err, 404, "Project not found")
			case errors.Is(err, service.ErrLinkNotFound):
				HandleError(c, app.Logger(), err, 404, "Link not found")
			default:
				HandleError(c, app.Logger(), err, 500, "Failed to set override")
			}
			return
		}

		HandleSuccess(c, app.Logger(), project, nil)
	}
}

func PutProjectStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		project, err := service.SetProjectStatus(c.Request.Context(), app.ProjectRepo(), c.Param("id"), &req)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Project not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to update status")
			return
		}

		HandleSuccess(c, app.Logger(), project, nil)
	}
}

func PostShellAdjustment(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AdjustmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateAdjustmentRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.AdjustShells(c.Request.Context(), app.UserRepo(), &req)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "User not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to adjust shells")
			return
		}

		HandleSuccess(c, app.Logger(), user, nil)
	}
}
