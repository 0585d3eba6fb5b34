package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

var ErrInsufficientShells = errors.New("not enough shells for this order")

type OrderRequest struct {
	ItemName      string  `json:"item_name" validate:"required"`
	ShellCost     int     `json:"shell_cost" validate:"gte=1"`
	ProgressHours float64 `json:"progress_hours" validate:"gte=0"`
}

func ValidateOrderRequest(req *OrderRequest) error {
	return validate.Struct(req)
}

// PlaceOrder spends shells on a shop item. Eligibility is checked against
// the engine's available balance for a snapshot of the user's projects.
// The shell debit and any purchased progress hours land on the user record
// immediately, while the order itself starts out pending.
func PlaceOrder(ctx context.Context, projectRepo storage.ProjectRepository, userRepo storage.UserRepository, orderRepo storage.OrderRepository, user *internal.User, req *OrderRequest) (*internal.ShopOrder, error) {
	metrics, err := UserMetrics(ctx, projectRepo, user)
	if err != nil {
		return nil, err
	}
	if req.ShellCost > metrics.AvailableShells {
		return nil, ErrInsufficientShells
	}

	order := &internal.ShopOrder{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		ItemName:      req.ItemName,
		ShellCost:     req.ShellCost,
		ProgressHours: req.ProgressHours,
		Status:        "pending",
		CreatedAt:     time.Now(),
	}
	if err := orderRepo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	user.TotalShellsSpent += req.ShellCost
	user.PurchasedProgressHours += req.ProgressHours
	if err := userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return order, nil
}
