package progress_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/progress"
)

func hoursPtr(v float64) *float64 {
	return &v
}

func TestResolveHours_UnreviewedLinkKeepsRawHours(t *testing.T) {
	p := &internal.Project{
		ProjectID: "p1",
		HackatimeLinks: []internal.HackatimeLink{
			{ID: "l1", RawHours: 10, HoursOverride: nil},
		},
	}
	resolved := progress.ResolveHours(p)
	assert.Equal(t, 10.0, resolved.Raw)
	assert.Equal(t, 0.0, resolved.Approved)
}

func TestResolveHours_ZeroOverrideDoesNotFallBack(t *testing.T) {
	// An explicit zero override means "reviewed, approved for zero hours".
	// It replaces the tracked hours entirely.
	p := &internal.Project{
		ProjectID: "p1",
		HackatimeLinks: []internal.HackatimeLink{
			{ID: "l1", RawHours: 10, HoursOverride: hoursPtr(0)},
		},
	}
	resolved := progress.ResolveHours(p)
	assert.Equal(t, 0.0, resolved.Raw)
	assert.Equal(t, 0.0, resolved.Approved)
}

func TestResolveHours_MixedLinks(t *testing.T) {
	p := &internal.Project{
		ProjectID: "p1",
		HackatimeLinks: []internal.HackatimeLink{
			{ID: "l1", RawHours: 4, HoursOverride: nil},
			{ID: "l2", RawHours: 6, HoursOverride: hoursPtr(5)},
			{ID: "l3", RawHours: 2, HoursOverride: hoursPtr(0)},
		},
	}
	resolved := progress.ResolveHours(p)
	assert.Equal(t, 9.0, resolved.Raw)      // 4 tracked + 5 override + 0 override
	assert.Equal(t, 5.0, resolved.Approved) // overrides only
}

func TestResolveHours_LegacyScalarFallback(t *testing.T) {
	p := &internal.Project{ProjectID: "p1", RawHours: 7.5}
	resolved := progress.ResolveHours(p)
	assert.Equal(t, 7.5, resolved.Raw)
	assert.Equal(t, 0.0, resolved.Approved)

	p.HoursOverride = hoursPtr(6)
	resolved = progress.ResolveHours(p)
	assert.Equal(t, 6.0, resolved.Approved)
}

func TestResolveHours_MalformedValuesDegradeToZero(t *testing.T) {
	p := &internal.Project{
		ProjectID: "p1",
		HackatimeLinks: []internal.HackatimeLink{
			{ID: "l1", RawHours: -3},
			{ID: "l2", RawHours: math.NaN()},
			{ID: "l3", RawHours: math.Inf(1)},
			{ID: "l4", RawHours: 2, HoursOverride: hoursPtr(-4)},
		},
	}
	resolved := progress.ResolveHours(p)
	assert.Equal(t, 0.0, resolved.Raw)
	assert.Equal(t, 0.0, resolved.Approved)

	assert.Equal(t, progress.ResolvedHours{}, progress.ResolveHours(nil))
}

func TestApproval_TriState(t *testing.T) {
	assert.False(t, progress.NotReviewed().Reviewed())
	assert.Equal(t, 0.0, progress.NotReviewed().Hours())

	zero := progress.ApprovalFromOverride(hoursPtr(0))
	assert.True(t, zero.Reviewed())
	assert.Equal(t, 0.0, zero.Hours())

	some := progress.ApprovalFromOverride(hoursPtr(3.5))
	assert.True(t, some.Reviewed())
	assert.Equal(t, 3.5, some.Hours())

	assert.False(t, progress.ApprovalFromOverride(nil).Reviewed())
}
