package service_test

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/progress"
	"github.com/hackclub/shipwrecked-sub000/internal/service"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

func setupRepos(t *testing.T, usersJSON string) (*storage.FileStorage, context.Context) {
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
	os.WriteFile(usersFile, []byte(usersJSON), 0644)

	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := storage.NewFileStorage(usersFile, projectsFile, ordersFile, logger)
	assert.NoError(t, err)
	return s, context.Background()
}

const twoUsers = `[
  {"id":"u1","token":"TOKEN-1","name":"Ahoy","role":"user"},
  {"id":"u2","token":"TOKEN-2","name":"Matey","role":"user"}
]`

func TestCreateProjectAndAttachLink(t *testing.T) {
	s, ctx := setupRepos(t, twoUsers)
	user, _ := s.GetUser(ctx, "u1")

	project, err := service.CreateProject(ctx, s, user, &service.ProjectRequest{Name: "Lighthouse"})
	assert.NoError(t, err)
	assert.NotEmpty(t, project.ProjectID)

	updated, err := service.AttachLink(ctx, s, user, project.ProjectID, &service.LinkRequest{RawHours: 12})
	assert.NoError(t, err)
	assert.Len(t, updated.HackatimeLinks, 1)
	assert.Equal(t, 12.0, updated.HackatimeLinks[0].RawHours)
	assert.Nil(t, updated.HackatimeLinks[0].HoursOverride)

	// Another user cannot attach to it
	other, _ := s.GetUser(ctx, "u2")
	_, err = service.AttachLink(ctx, s, other, project.ProjectID, &service.LinkRequest{RawHours: 1})
	assert.ErrorIs(t, err, service.ErrNotOwner)
}

func TestValidation(t *testing.T) {
	assert.Error(t, service.ValidateProjectRequest(&service.ProjectRequest{}))
	assert.Error(t, service.ValidateLinkRequest(&service.LinkRequest{RawHours: -1}))
	assert.Error(t, service.ValidateOrderRequest(&service.OrderRequest{ItemName: "x", ShellCost: 0}))
	assert.Error(t, service.ValidateAdjustmentRequest(&service.AdjustmentRequest{UserID: "u1"}))

	neg := -2.0
	assert.Error(t, service.ValidateOverrideRequest(&service.OverrideRequest{Hours: &neg}))
	zero := 0.0
	assert.NoError(t, service.ValidateOverrideRequest(&service.OverrideRequest{Hours: &zero}))
	assert.NoError(t, service.ValidateOverrideRequest(&service.OverrideRequest{Hours: nil}))
}

// Walks a project through the review flow and checks the engine output at
// each stage: tracked-only, shipped-but-unapproved, then approved.
func TestReviewFlowChangesMetrics(t *testing.T) {
	s, ctx := setupRepos(t, twoUsers)
	user, _ := s.GetUser(ctx, "u1")

	project, err := service.CreateProject(ctx, s, user, &service.ProjectRequest{Name: "Lighthouse"})
	assert.NoError(t, err)
	project, err = service.AttachLink(ctx, s, user, project.ProjectID, &service.LinkRequest{RawHours: 20})
	assert.NoError(t, err)

	m, err := service.UserMetrics(ctx, s, user)
	assert.NoError(t, err)
	assert.Equal(t, 14.75, m.OtherHours)
	assert.Equal(t, 0, m.Shells)

	shipped := true
	_, err = service.SetProjectStatus(ctx, s, project.ProjectID, &service.StatusRequest{Shipped: &shipped})
	assert.NoError(t, err)

	// Shipped without approval still scores as uncertified work.
	m, err = service.UserMetrics(ctx, s, user)
	assert.NoError(t, err)
	assert.Equal(t, 14.75, m.OtherHours)
	assert.Equal(t, 0.0, m.ShippedHours)
	assert.Equal(t, 0, m.Shells)

	hours := 20.0
	_, err = service.SetHoursOverride(ctx, s, project.ProjectID, &service.OverrideRequest{
		LinkID: project.HackatimeLinks[0].ID,
		Hours:  &hours,
	})
	assert.NoError(t, err)

	m, err = service.UserMetrics(ctx, s, user)
	assert.NoError(t, err)
	assert.Equal(t, 15.0, m.ShippedHours)
	assert.Equal(t, int(math.Floor(5*progress.ShellsPerHour)), m.Shells)
}

func TestSetHoursOverride_UnknownLink(t *testing.T) {
	s, ctx := setupRepos(t, twoUsers)
	user, _ := s.GetUser(ctx, "u1")

	project, _ := service.CreateProject(ctx, s, user, &service.ProjectRequest{Name: "Buoy"})
	hours := 5.0
	_, err := service.SetHoursOverride(ctx, s, project.ProjectID, &service.OverrideRequest{LinkID: "nope", Hours: &hours})
	assert.ErrorIs(t, err, service.ErrLinkNotFound)
}

func TestPlaceOrder(t *testing.T) {
	s, ctx := setupRepos(t, twoUsers)
	user, _ := s.GetUser(ctx, "u1")

	// Shipped project approved for 25 hours, alone in the top four: 10
	// hours beyond the cap mint shells.
	project, _ := service.CreateProject(ctx, s, user, &service.ProjectRequest{Name: "Lighthouse"})
	project, _ = service.AttachLink(ctx, s, user, project.ProjectID, &service.LinkRequest{RawHours: 25})
	shipped := true
	_, err := service.SetProjectStatus(ctx, s, project.ProjectID, &service.StatusRequest{Shipped: &shipped})
	assert.NoError(t, err)
	hours := 25.0
	_, err = service.SetHoursOverride(ctx, s, project.ProjectID, &service.OverrideRequest{LinkID: project.HackatimeLinks[0].ID, Hours: &hours})
	assert.NoError(t, err)

	m, _ := service.UserMetrics(ctx, s, user)
	assert.Equal(t, int(math.Floor(10*progress.ShellsPerHour)), m.AvailableShells)

	order, err := service.PlaceOrder(ctx, s, s, s, user, &service.OrderRequest{
		ItemName:      "progress hour",
		ShellCost:     100,
		ProgressHours: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "pending", order.Status)

	// Debit and credit both landed on the user record.
	after, _ := s.GetUser(ctx, "u1")
	assert.Equal(t, 100, after.TotalShellsSpent)
	assert.Equal(t, 1.0, after.PurchasedProgressHours)

	m, _ = service.UserMetrics(ctx, s, after)
	assert.Equal(t, int(math.Floor(10*progress.ShellsPerHour))-100, m.AvailableShells)
	assert.Equal(t, 16.0, m.TotalProgressWithPurchased) // 15 capped + 1 purchased

	// A second identical order exceeds the remaining balance.
	_, err = service.PlaceOrder(ctx, s, s, s, after, &service.OrderRequest{ItemName: "progress hour", ShellCost: 100})
	assert.ErrorIs(t, err, service.ErrInsufficientShells)
}

func TestAdjustShells(t *testing.T) {
	s, ctx := setupRepos(t, twoUsers)

	user, err := service.AdjustShells(ctx, s, &service.AdjustmentRequest{UserID: "u1", Delta: -10})
	assert.NoError(t, err)
	assert.Equal(t, -10, user.AdminShellAdjustment)

	m, err := service.UserMetrics(ctx, s, user)
	assert.NoError(t, err)
	assert.Equal(t, 0, m.AvailableShells) // no earnings; floor at zero

	_, err = service.AdjustShells(ctx, s, &service.AdjustmentRequest{UserID: "ghost", Delta: 5})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLeaderboardOrdering(t *testing.T) {
	s, ctx := setupRepos(t, twoUsers)
	u1, _ := s.GetUser(ctx, "u1")
	u2, _ := s.GetUser(ctx, "u2")

	// u2 outranks u1 on progress.
	p1, _ := service.CreateProject(ctx, s, u1, &service.ProjectRequest{Name: "Dinghy"})
	_, err := service.AttachLink(ctx, s, u1, p1.ProjectID, &service.LinkRequest{RawHours: 5})
	assert.NoError(t, err)

	p2, _ := service.CreateProject(ctx, s, u2, &service.ProjectRequest{Name: "Galleon"})
	_, err = service.AttachLink(ctx, s, u2, p2.ProjectID, &service.LinkRequest{RawHours: 12})
	assert.NoError(t, err)

	entries, err := service.Leaderboard(ctx, s, s)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "u2", entries[0].UserID)
	assert.Equal(t, "u1", entries[1].UserID)
	assert.Greater(t, entries[0].Percentage, entries[1].Percentage)
}
