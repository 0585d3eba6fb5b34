package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hackclub/shipwrecked-sub000/internal/service"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

func PostProject(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.ProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateProjectRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		project, err := service.CreateProject(c.Request.Context(), app.ProjectRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save project")
			return
		}

		HandleSuccess(c, app.Logger(), project, nil)
	}
}

func GetProjects(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		projects, err := app.ProjectRepo().ListProjects(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch projects")
			return
		}

		HandleSuccess(c, app.Logger(), projects, nil)
	}
}

func PostProjectLink(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.LinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateLinkRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		project, err := service.AttachLink(c.Request.Context(), app.ProjectRepo(), user, c.Param("id"), &req)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				HandleError(c, app.Logger(), err, 404, "Project not found")
			case errors.Is(err, service.ErrNotOwner):
				HandleError(c, app.Logger(), err, 404, "Project not found")
			default:
				HandleError(c, app.Logger(), err, 500, "Failed to attach link")
			}
			return
		}

		HandleSuccess(c, app.Logger(), project, nil)
	}
}
