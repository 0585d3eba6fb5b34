package storage

import (
	"context"

	"github.com/hackclub/shipwrecked-sub000/internal"
)

type ProjectRepository interface {
	SaveProject(ctx context.Context, project *internal.Project) error
	UpdateProject(ctx context.Context, project *internal.Project) error
	GetProject(ctx context.Context, projectID string) (*internal.Project, error)
	ListProjects(ctx context.Context, userID string) ([]internal.Project, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*internal.User, error)
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
	ListUsers(ctx context.Context) ([]internal.User, error)
	UpdateUser(ctx context.Context, user *internal.User) error
}

type OrderRepository interface {
	SaveOrder(ctx context.Context, order *internal.ShopOrder) error
	ListOrders(ctx context.Context, userID string) ([]internal.ShopOrder, error)
}
