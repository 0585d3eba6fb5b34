package api

import (
	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

type App interface {
	Logger() internal.Logger
	ProjectRepo() storage.ProjectRepository
	UserRepo() storage.UserRepository
	OrderRepo() storage.OrderRepository
}
