package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackclub/shipwrecked-sub000/internal"
	"github.com/hackclub/shipwrecked-sub000/internal/progress"
)

func TestClassify_ViralTakesPrecedence(t *testing.T) {
	p := &internal.Project{ProjectID: "p1", Shipped: true, Viral: true}
	c := progress.Classify(p, progress.ResolvedHours{Raw: 20, Approved: 12})
	assert.Equal(t, progress.BucketViral, c.Bucket)
	assert.Equal(t, 15.0, c.CappedHours)
}

func TestClassify_ViralDoesNotNeedApproval(t *testing.T) {
	p := &internal.Project{ProjectID: "p1", Viral: true}
	c := progress.Classify(p, progress.ResolvedHours{Raw: 10, Approved: 0})
	assert.Equal(t, progress.BucketViral, c.Bucket)
	assert.Equal(t, 10.0, c.CappedHours)
	assert.False(t, c.MintsShells) // not shipped, so no currency
}

func TestClassify_ShippedRequiresApprovedHours(t *testing.T) {
	p := &internal.Project{ProjectID: "p1", Shipped: true}

	c := progress.Classify(p, progress.ResolvedHours{Raw: 20, Approved: 8})
	assert.Equal(t, progress.BucketShipped, c.Bucket)
	assert.Equal(t, 15.0, c.CappedHours)
	assert.True(t, c.MintsShells)
	assert.Equal(t, 8.0, c.MintableHours)

	// Shipped but never approved falls through to the uncertified bucket.
	c = progress.Classify(p, progress.ResolvedHours{Raw: 20, Approved: 0})
	assert.Equal(t, progress.BucketOther, c.Bucket)
	assert.Equal(t, 14.75, c.CappedHours)
	assert.False(t, c.MintsShells)
}

func TestClassify_UncertifiedCap(t *testing.T) {
	p := &internal.Project{ProjectID: "p1"}
	c := progress.Classify(p, progress.ResolvedHours{Raw: 20, Approved: 0})
	assert.Equal(t, progress.BucketOther, c.Bucket)
	assert.Equal(t, 14.75, c.CappedHours)

	c = progress.Classify(p, progress.ResolvedHours{Raw: 3, Approved: 0})
	assert.Equal(t, 3.0, c.CappedHours)
}
