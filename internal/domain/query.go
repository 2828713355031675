package domain

import "time"

// TalentPageSize is the fixed directory page size.
const TalentPageSize = 10

// TalentQuery holds the independently-optional directory filters. Zero values
// mean "no filter"; filters combine with AND. The date-of-birth interval is
// derived from the requested age bucket before the query reaches the store.
type TalentQuery struct {
	Foot     string
	Position string
	Search   string
	MinDOB   *time.Time
	MaxDOB   *time.Time
	Page     int
}

// Offset returns the slice offset for the fixed page size.
func (q TalentQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * TalentPageSize
}

// TalentPage is one page of directory results plus the independently-computed
// total. Count and slice run as separate queries with no snapshot isolation;
// under concurrent inserts TotalPages may briefly disagree with the slice.
type TalentPage struct {
	Talents    []TalentEntry `json:"talents"`
	Total      int           `json:"total"`
	Page       int           `json:"current_page"`
	TotalPages int           `json:"total_pages"`
}

// TalentEntry is a registration record as surfaced in the directory.
type TalentEntry struct {
	Identity
	Age int `json:"age"`
}

// DashboardStats are the admin dashboard counters. Cosmetic, not authoritative.
type DashboardStats struct {
	TotalUsers   int `json:"total_users"`
	TotalCoaches int `json:"total_coaches"`
	TotalAdmins  int `json:"total_admins"`
	RecentUsers  int `json:"recent_users"`
}
