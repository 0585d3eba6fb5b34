package progress

import (
	"sort"

	"github.com/hackclub/shipwrecked-sub000/internal"
)

// TopProjectCount is how many projects count toward the progress percentage.
// Projects outside this set still influence currency.
const TopProjectCount = 4

// SelectTop returns the k projects with the highest resolved raw hours,
// descending. Ties keep input order; the sort must stay stable so two calls
// on the same snapshot rank identically.
func SelectTop(projects []internal.Project, k int) []internal.Project {
	if k <= 0 || len(projects) == 0 {
		return nil
	}

	type ranked struct {
		project internal.Project
		raw     float64
	}
	entries := make([]ranked, len(projects))
	for i := range projects {
		entries[i] = ranked{project: projects[i], raw: ResolveHours(&projects[i]).Raw}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].raw > entries[j].raw
	})

	if k > len(entries) {
		k = len(entries)
	}
	top := make([]internal.Project, k)
	for i := range top {
		top[i] = entries[i].project
	}
	return top
}
