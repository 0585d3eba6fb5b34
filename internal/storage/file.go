package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/hackclub/shipwrecked-sub000/internal"
)

var ErrNotFound = errors.New("storage: not found")

type FileStorage struct {
	users            map[string]*internal.User      // id -> User
	userTokenIndex   map[string]*internal.User      // token -> User
	projects         map[string]*internal.Project   // projectID -> Project
	userProjectIndex map[string][]*internal.Project // userID -> projects (newest first)
	orders           map[string]*internal.ShopOrder // id -> ShopOrder
	userOrderIndex   map[string][]*internal.ShopOrder
	mu               sync.RWMutex
	usersFile        string
	projectsFile     string
	ordersFile       string
	saveUsersChan    chan struct{}
	saveProjectsChan chan struct{}
	saveOrdersChan   chan struct{}
	shutdownChan     chan struct{}
	saveDelay        time.Duration
	logger           internal.Logger
}

func NewFileStorage(usersFile, projectsFile, ordersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:            make(map[string]*internal.User),
		userTokenIndex:   make(map[string]*internal.User),
		projects:         make(map[string]*internal.Project),
		userProjectIndex: make(map[string][]*internal.Project),
		orders:           make(map[string]*internal.ShopOrder),
		userOrderIndex:   make(map[string][]*internal.ShopOrder),
		usersFile:        usersFile,
		projectsFile:     projectsFile,
		ordersFile:       ordersFile,
		saveUsersChan:    make(chan struct{}, 1),
		saveProjectsChan: make(chan struct{}, 1),
		saveOrdersChan:   make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveDelay:        500 * time.Millisecond,
		logger:           logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadProjects(); err != nil {
		logger.Errorf("storage: failed to load projects: %v", err)
		return nil, err
	}
	if err := s.loadOrders(); err != nil {
		logger.Errorf("storage: failed to load orders: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers, "users")
	go s.saveWorker(s.saveProjectsChan, s.saveProjects, "projects")
	go s.saveWorker(s.saveOrdersChan, s.saveOrders, "orders")

	return s, nil
}

func decodeJSONFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	var users []*internal.User
	if err := decodeJSONFile(s.usersFile, &users); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
		if u.Token != "" {
			s.userTokenIndex[u.Token] = u
		}
	}
	return nil
}

func (s *FileStorage) loadProjects() error {
	var projects []*internal.Project
	if err := decodeJSONFile(s.projectsFile, &projects); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range projects {
		s.projects[p.ProjectID] = p
		s.userProjectIndex[p.UserID] = append(s.userProjectIndex[p.UserID], p)
	}

	// Keep each user's projects newest first
	for userID := range s.userProjectIndex {
		sort.SliceStable(s.userProjectIndex[userID], func(i, j int) bool {
			return s.userProjectIndex[userID][i].CreatedAt.After(s.userProjectIndex[userID][j].CreatedAt)
		})
	}
	return nil
}

func (s *FileStorage) loadOrders() error {
	var orders []*internal.ShopOrder
	if err := decodeJSONFile(s.ordersFile, &orders); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		s.orders[o.ID] = o
		s.userOrderIndex[o.UserID] = append(s.userOrderIndex[o.UserID], o)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveProjects() error {
	s.mu.RLock()
	projects := make([]*internal.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.projectsFile, projects)
}

func (s *FileStorage) saveOrders() error {
	s.mu.RLock()
	orders := make([]*internal.ShopOrder, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.ordersFile, orders)
}

func (s *FileStorage) saveWorker(signal chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close storage and stop background workers, flushing pending data.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	if err := s.saveProjects(); err != nil {
		return err
	}
	return s.saveOrders()
}

// --- ProjectRepository ---
func (s *FileStorage) SaveProject(ctx context.Context, project *internal.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[project.ProjectID] = project
	projects := s.userProjectIndex[project.UserID]
	inserted := false
	for i, existing := range projects {
		if existing.CreatedAt.Before(project.CreatedAt) {
			projects = append(projects[:i], append([]*internal.Project{project}, projects[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		projects = append(projects, project)
	}
	s.userProjectIndex[project.UserID] = projects

	signalSave(s.saveProjectsChan)
	return nil
}

func (s *FileStorage) UpdateProject(ctx context.Context, project *internal.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[project.ProjectID]
	if !ok {
		return ErrNotFound
	}
	*existing = *project

	signalSave(s.saveProjectsChan)
	return nil
}

func (s *FileStorage) GetProject(ctx context.Context, projectID string) (*internal.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *FileStorage) ListProjects(ctx context.Context, userID string) ([]internal.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projectsPtr, ok := s.userProjectIndex[userID]
	if !ok {
		return []internal.Project{}, nil
	}
	projects := make([]internal.Project, len(projectsPtr))
	for i, p := range projectsPtr {
		projects[i] = *p
	}
	return projects, nil
}

// --- UserRepository ---
func (s *FileStorage) GetUser(ctx context.Context, userID string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *FileStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.userTokenIndex[token]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *FileStorage) UpdateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Token != user.Token {
		delete(s.userTokenIndex, existing.Token)
		if user.Token != "" {
			s.userTokenIndex[user.Token] = existing
		}
	}
	*existing = *user

	signalSave(s.saveUsersChan)
	return nil
}

// --- OrderRepository ---
func (s *FileStorage) SaveOrder(ctx context.Context, order *internal.ShopOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = order
	s.userOrderIndex[order.UserID] = append(s.userOrderIndex[order.UserID], order)

	signalSave(s.saveOrdersChan)
	return nil
}

func (s *FileStorage) ListOrders(ctx context.Context, userID string) ([]internal.ShopOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordersPtr, ok := s.userOrderIndex[userID]
	if !ok {
		return []internal.ShopOrder{}, nil
	}
	orders := make([]internal.ShopOrder, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, nil
}

// --- Compile-time assertions ---
var _ ProjectRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
var _ OrderRepository = (*FileStorage)(nil)
