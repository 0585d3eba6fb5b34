package progress

import (
	"math"

	"github.com/hackclub/shipwrecked-sub000/internal"
)

const (
	// TotalHoursCap is the aggregate goal: roughly 15 hours across 4
	// certified projects. The per-project and aggregate caps are applied
	// independently, so one exceptional project can compensate for a
	// weaker one without dominating the total.
	TotalHoursCap = 60.0
	// ShellsPerHour converts eligible approved hours to shells.
	ShellsPerHour = math.Phi * 10
)

// Metrics is the engine's sole output. Every field is derived from scratch
// on every call; nothing is cached or persisted.
type Metrics struct {
	ShippedHours    float64 `json:"shipped_hours"`
	ViralHours      float64 `json:"viral_hours"`
	OtherHours      float64 `json:"other_hours"`
	TotalHours      float64 `json:"total_hours"`
	TotalPercentage float64 `json:"total_percentage"`
	// RawHours is the rounded sum of effective hours over all projects,
	// not just the top four.
	RawHours float64 `json:"raw_hours"`
	// Shells earned from approved hours over all projects.
	Shells int `json:"shells"`

	PurchasedProgressHours       float64 `json:"purchased_progress_hours"`
	TotalProgressWithPurchased   float64 `json:"total_progress_with_purchased"`
	TotalPercentageWithPurchased float64 `json:"total_percentage_with_purchased"`
	AvailableShells              int     `json:"available_shells"`
}

// AccountInputs carries the user-level aggregates owned by the shop and
// admin flows. The zero value is valid and means "no purchases, no spend,
// no adjustment".
type AccountInputs struct {
	PurchasedProgressHours float64
	TotalShellsSpent       int
	AdminShellAdjustment   int
}

// ComputeMetrics computes progress and currency for a user with no shop or
// admin activity. Callers with purchase/spend state use
// ComputeMetricsForAccount.
func ComputeMetrics(projects []internal.Project) Metrics {
	return ComputeMetricsForAccount(projects, AccountInputs{})
}

// ComputeMetricsForAccount is the single entry point for progress and shell
// numbers. Dashboards, leaderboards, shop eligibility checks and review
// heuristics all derive from this result rather than recomputing any part
// of it. Nil or empty input yields the zero Metrics.
func ComputeMetricsForAccount(projects []internal.Project, acct AccountInputs) Metrics {
	var m Metrics
	if len(projects) > 0 {
		evals := evaluate(projects)
		topIDs := topIDSet(projects, TopProjectCount)

		var rawSum float64
		for _, e := range evals {
			rawSum += e.hours.Raw
			if _, ok := topIDs[e.id]; ok {
				switch e.class.Bucket {
				case BucketViral:
					m.ViralHours += e.class.CappedHours
				case BucketShipped:
					m.ShippedHours += e.class.CappedHours
				default:
					m.OtherHours += e.class.CappedHours
				}
			}
		}

		m.TotalHours = math.Min(m.ShippedHours+m.ViralHours+m.OtherHours, TotalHoursCap)
		m.TotalPercentage = math.Min(m.TotalHours/TotalHoursCap*100, 100)
		m.RawHours = math.Round(rawSum)
		m.Shells = mintShells(evals, topIDs)
	}

	purchased := sanitizeHours(acct.PurchasedProgressHours)
	m.PurchasedProgressHours = purchased
	m.TotalProgressWithPurchased = math.Min(m.TotalHours+purchased, TotalHoursCap)
	m.TotalPercentageWithPurchased = math.Min(m.TotalProgressWithPurchased/TotalHoursCap*100, 100)

	available := m.Shells - acct.TotalShellsSpent + acct.AdminShellAdjustment
	if available < 0 {
		available = 0
	}
	m.AvailableShells = available
	return m
}

// projectEval pairs a project's id with its resolved hours and
// classification, in input order.
type projectEval struct {
	id    string
	hours ResolvedHours
	class Classification
}

func evaluate(projects []internal.Project) []projectEval {
	evals := make([]projectEval, len(projects))
	for i := range projects {
		hours := ResolveHours(&projects[i])
		evals[i] = projectEval{
			id:    projects[i].ProjectID,
			hours: hours,
			class: Classify(&projects[i], hours),
		}
	}
	return evals
}

func topIDSet(projects []internal.Project, k int) map[string]struct{} {
	top := SelectTop(projects, k)
	ids := make(map[string]struct{}, len(top))
	for i := range top {
		ids[top[i].ProjectID] = struct{}{}
	}
	return ids
}

// mintShells runs the currency ledger over every eligible project. Hours
// inside the top-4 set already paid toward the progress percentage, so only
// the portion beyond the per-project cap mints; outside the set every
// approved hour mints. A single floor at the end keeps the result an
// integer without compounding rounding.
func mintShells(evals []projectEval, topIDs map[string]struct{}) int {
	var total float64
	for _, e := range evals {
		if !e.class.MintsShells {
			continue
		}
		if _, ok := topIDs[e.id]; ok {
			total += math.Max(0, e.class.MintableHours-PerProjectCap) * ShellsPerHour
		} else {
			total += e.class.MintableHours * ShellsPerHour
		}
	}
	return int(math.Floor(total))
}
