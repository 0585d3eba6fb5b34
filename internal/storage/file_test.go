package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

func setupTestStorage(t *testing.T) *storage.FileStorage {
	testDir := "testdata"
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		_ = os.MkdirAll(testDir, 0755)
	}
	usersFile := testDir + "/test_users.json"
	projectsFile := testDir + "/test_projects.json"
	ordersFile := testDir + "/test_orders.json"
	os.Remove(usersFile)
	os.Remove(projectsFile)
	os.Remove(ordersFile)
	os.WriteFile(usersFile, []byte(`[{"id":"u1","token":"MOCK-TOKEN","name":"Test User","role":"user"}]`), 0644)

	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := storage.NewFileStorage(usersFile, projectsFile, ordersFile, logger)
	assert.NoError(t, err)
	return s
}

func TestSaveAndListProjects(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	project := &internal.Project{
		ProjectID: "p1",
		UserID:    "u1",
		Name:      "Raft",
		HackatimeLinks: []internal.HackatimeLink{
			{ID: "l1", RawHours: 12},
		},
		CreatedAt: time.Now(),
	}
	assert.NoError(t, s.SaveProject(ctx, project))

	projects, err := s.ListProjects(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, "Raft", projects[0].Name)
	assert.Len(t, projects[0].HackatimeLinks, 1)

	projects, err = s.ListProjects(ctx, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, projects)
}

func TestListProjects_NewestFirst(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	for i, id := range []string{"old", "mid", "new"} {
		assert.NoError(t, s.SaveProject(ctx, &internal.Project{
			ProjectID: id,
			UserID:    "u1",
			Name:      id,
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
		}))
	}

	projects, err := s.ListProjects(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "new", projects[0].ProjectID)
	assert.Equal(t, "old", projects[2].ProjectID)
}

func TestUpdateProject(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	project := &internal.Project{ProjectID: "p1", UserID: "u1", Name: "Raft", CreatedAt: time.Now()}
	assert.NoError(t, s.SaveProject(ctx, project))

	project.Shipped = true
	hours := 9.0
	project.HackatimeLinks = []internal.HackatimeLink{{ID: "l1", RawHours: 10, HoursOverride: &hours}}
	assert.NoError(t, s.UpdateProject(ctx, project))

	got, err := s.GetProject(ctx, "p1")
	assert.NoError(t, err)
	assert.True(t, got.Shipped)
	assert.Equal(t, 9.0, *got.HackatimeLinks[0].HoursOverride)

	err = s.UpdateProject(ctx, &internal.Project{ProjectID: "missing"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserLookupAndUpdate(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	user, err := s.GetUserByToken(ctx, "MOCK-TOKEN")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = s.GetUserByToken(ctx, "WRONG")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	user.TotalShellsSpent = 42
	user.PurchasedProgressHours = 3
	assert.NoError(t, s.UpdateUser(ctx, user))

	got, err := s.GetUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 42, got.TotalShellsSpent)
	assert.Equal(t, 3.0, got.PurchasedProgressHours)
}

func TestSaveAndListOrders(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	order := &internal.ShopOrder{
		ID:        "o1",
		UserID:    "u1",
		ItemName:  "sticker pack",
		ShellCost: 16,
		Status:    "pending",
		CreatedAt: time.Now(),
	}
	assert.NoError(t, s.SaveOrder(ctx, order))

	orders, err := s.ListOrders(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 16, orders[0].ShellCost)
}

func TestCloseFlushesPendingWrites(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	assert.NoError(t, s.SaveProject(ctx, &internal.Project{ProjectID: "p1", UserID: "u1", Name: "Raft", CreatedAt: time.Now()}))
	assert.NoError(t, s.Close())

	info, err := os.Stat("testdata/test_projects.json")
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)

	// A fresh storage over the same files sees the flushed data.
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	reopened, err := storage.NewFileStorage("testdata/test_users.json", "testdata/test_projects.json", "testdata/test_orders.json", logger)
	assert.NoError(t, err)
	projects, err := reopened.ListProjects(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
}
