package service

import (
	"context"
	"sort"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/progress"
	"github.com/hackclub/shipwrecked-sub000/internal/storage"
)

// UserMetrics snapshots a user's projects and runs the progress engine over
// them. Every read path that needs hours, percentages or shells goes through
// here; nothing else in the service re-derives those numbers.
func UserMetrics(ctx context.Context, projectRepo storage.ProjectRepository, user *internal.User) (progress.Metrics, error) {
	projects, err := projectRepo.ListProjects(ctx, user.ID)
	if err != nil {
		return progress.Metrics{}, err
	}
	return progress.ComputeMetricsForAccount(projects, progress.AccountInputs{
		PurchasedProgressHours: user.PurchasedProgressHours,
		TotalShellsSpent:       user.TotalShellsSpent,
		AdminShellAdjustment:   user.AdminShellAdjustment,
	}), nil
}

type LeaderboardEntry struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	RawHours   float64 `json:"raw_hours"`
	Shells     int     `json:"shells"`
}

// Leaderboard ranks every user by purchased-inclusive progress, shells
// breaking ties. Registration order breaks remaining ties.
func Leaderboard(ctx context.Context, userRepo storage.UserRepository, projectRepo storage.ProjectRepository) ([]LeaderboardEntry, error) {
	users, err := userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i := range users {
		m, err := UserMetrics(ctx, projectRepo, &users[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			UserID:     users[i].ID,
			Name:       users[i].Name,
			Percentage: m.TotalPercentageWithPurchased,
			RawHours:   m.RawHours,
			Shells:     m.Shells,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		return entries[i].Shells > entries[j].Shells
	})
	return entries, nil
}
