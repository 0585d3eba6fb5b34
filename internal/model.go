package internal

import "time"

type User struct {
	ID                     string    `json:"id"`
	Token                  string    `json:"token"`
	Name                   string    `json:"name"`
	Role                   string    `json:"role"` // user, admin
	PurchasedProgressHours float64   `json:"purchased_progress_hours"`
	TotalShellsSpent       int       `json:"total_shells_spent"`
	AdminShellAdjustment   int       `json:"admin_shell_adjustment"`
	CreatedAt              time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// HackatimeLink is one time-tracking entry attached to a project.
// HoursOverride is nullable on the wire: nil means the link has not been
// reviewed, while an explicit 0 means a reviewer approved zero hours.
type HackatimeLink struct {
	ID            string   `json:"id"`
	RawHours      float64  `json:"raw_hours"`
	HoursOverride *float64 `json:"hours_override,omitempty"`
}

type Project struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Shipped   bool   `json:"shipped"`
	Viral     bool   `json:"viral"`
	// Legacy scalar hours, read only when the project carries no links.
	// Pre-link records still store their tracked time here.
	RawHours       float64         `json:"raw_hours,omitempty"`
	HoursOverride  *float64        `json:"hours_override,omitempty"`
	HackatimeLinks []HackatimeLink `json:"hackatime_links,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ShopOrder struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ItemName      string    `json:"item_name"`
	ShellCost     int       `json:"shell_cost"`
	ProgressHours float64   `json:"progress_hours,omitempty"` // progress-type items only
	Status        string    `json:"status"`                   // pending, fulfilled
	CreatedAt     time.Time `json:"created_at"`
}
