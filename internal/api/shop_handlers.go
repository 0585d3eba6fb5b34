package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hackclub/shipwrecked-sub000/internal/service"
)

func PostOrder(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateOrderRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		order, err := service.PlaceOrder(c.Request.Context(), app.ProjectRepo(), app.UserRepo(), app.OrderRepo(), user, &req)
		if err != nil {
			if errors.Is(err, service.ErrInsufficientShells) {
				HandleError(c, app.Logger(), err, 402, "Order rejected")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to place order")
			return
		}

		HandleSuccess(c, app.Logger(), order, nil)
	}
}

func GetOrders(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		orders, err := app.OrderRepo().ListOrders(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch orders")
			return
		}

		HandleSuccess(c, app.Logger(), orders, nil)
	}
}
