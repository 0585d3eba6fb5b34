package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hackclub/shipwrecked-sub000/internal/service"
)

// GetProgress returns the full metrics record for the authenticated user.
// This is the single read path for hours, percentages and shells; UI callers
// derive everything else from these fields.
func GetProgress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		metrics, err := service.UserMetrics(c.Request.Context(), app.ProjectRepo(), user)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute progress")
			return
		}

		HandleSuccess(c, app.Logger(), metrics, nil)
	}
}

func GetLeaderboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := service.Leaderboard(c.Request.Context(), app.UserRepo(), app.ProjectRepo())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to build leaderboard")
			return
		}

		HandleSuccess(c, app.Logger(), entries, map[string]any{"count": len(entries)})
	}
}
