package progress

import (
	"math"

	"github.com/hackclub/shipwrecked-sub000/internal"
)

// Bucket is the scoring classification of a project. Exactly one applies;
// viral takes precedence over shipped.
type Bucket string

const (
	BucketViral   Bucket = "viral"
	BucketShipped Bucket = "shipped"
	BucketOther   Bucket = "other"
)

const (
	// PerProjectCap bounds a single certified (viral or shipped) project's
	// contribution to the progress aggregate.
	PerProjectCap = 15.0
	// UncertifiedProjectCap is the slightly lower bound for unshipped or
	// shipped-but-unapproved work, so uncertified hours alone can never
	// reach the per-project maximum.
	UncertifiedProjectCap = 14.75
)

// Classification is the scoring and minting verdict for one project.
type Classification struct {
	Bucket      Bucket
	CappedHours float64
	// MintsShells reports whether the project earns currency at all.
	// Only shipped projects with approved hours mint; viral status alone
	// does not. MintableHours is uncapped here — the ledger applies the
	// top-4 membership rule.
	MintsShells   bool
	MintableHours float64
}

// Classify buckets a project for the progress aggregate and decides its
// currency eligibility.
func Classify(p *internal.Project, hours ResolvedHours) Classification {
	c := Classification{
		MintsShells:   p != nil && p.Shipped && hours.Approved > 0,
		MintableHours: hours.Approved,
	}

	switch {
	case p != nil && p.Viral:
		// Viral certification honors tracked hours directly; it does not
		// require reviewer-approved hours.
		c.Bucket = BucketViral
		c.CappedHours = math.Min(hours.Raw, PerProjectCap)
	case p != nil && p.Shipped && hours.Approved > 0:
		c.Bucket = BucketShipped
		c.CappedHours = math.Min(hours.Raw, PerProjectCap)
	default:
		c.Bucket = BucketOther
		c.CappedHours = math.Min(hours.Raw, UncertifiedProjectCap)
	}
	return c
}
