package storage

import "github.com/hackclub/shipwrecked-sub000/internal"

func NewFileRepositories(usersFile, projectsFile, ordersFile string, logger internal.Logger) (ProjectRepository, UserRepository, OrderRepository, error) {
	storage, err := NewFileStorage(usersFile, projectsFile, ordersFile, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (ProjectRepository, UserRepository, OrderRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}
