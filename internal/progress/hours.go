// Package progress computes island-eligibility progress and the shell
// currency balance from a user's project records. Every function here is a
// pure function of its arguments: no I/O, no shared state, and no error
// returns — malformed numeric input degrades to a zero contribution instead
// of failing, because these numbers feed dashboards that must always render.
package progress

import (
	"math"

	"github.com/hackclub/shipwrecked-sub000/internal"
)

// Approval is the reviewed state of a time-tracking entry. The wire format
// crams three states into a nullable number (nil = not reviewed, 0 = approved
// for zero hours, N = approved for N hours); this type keeps the distinction
// explicit so approved-as-zero can never fall back to the tracked hours.
type Approval struct {
	reviewed bool
	hours    float64
}

func NotReviewed() Approval {
	return Approval{}
}

func ApprovedFor(hours float64) Approval {
	return Approval{reviewed: true, hours: sanitizeHours(hours)}
}

// ApprovalFromOverride converts the nullable wire representation. This is
// the only place the *float64 form is interpreted.
func ApprovalFromOverride(override *float64) Approval {
	if override == nil {
		return NotReviewed()
	}
	return ApprovedFor(*override)
}

func (a Approval) Reviewed() bool {
	return a.reviewed
}

// Hours returns the certified hours, 0 when not reviewed.
func (a Approval) Hours() float64 {
	if !a.reviewed {
		return 0
	}
	return a.hours
}

// ResolvedHours is the per-project output of hour resolution.
type ResolvedHours struct {
	// Raw is the tracked time: per link, the override when reviewed
	// (including a zero override), else the tracked hours.
	Raw float64
	// Approved is the reviewer-certified time only. Unreviewed links
	// contribute nothing here regardless of tracked hours.
	Approved float64
}

// ResolveHours resolves a project's raw and approved hours from its links,
// falling back to the project's legacy scalar fields when it has none.
func ResolveHours(p *internal.Project) ResolvedHours {
	if p == nil {
		return ResolvedHours{}
	}

	if len(p.HackatimeLinks) == 0 {
		return ResolvedHours{
			Raw:      sanitizeHours(p.RawHours),
			Approved: ApprovalFromOverride(p.HoursOverride).Hours(),
		}
	}

	var resolved ResolvedHours
	for _, link := range p.HackatimeLinks {
		approval := ApprovalFromOverride(link.HoursOverride)
		if approval.Reviewed() {
			resolved.Raw += approval.Hours()
			resolved.Approved += approval.Hours()
			continue
		}
		resolved.Raw += sanitizeHours(link.RawHours)
	}
	return resolved
}

// sanitizeHours clamps malformed hour values to zero. Negative, NaN and
// infinite values all degrade to no contribution.
func sanitizeHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}
