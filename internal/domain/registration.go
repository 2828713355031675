package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

// Step is a registration checkpoint. The wizard advances 1 → 3 → 4; there is
// no step 2 in the normal flow (the second screen never writes on its own),
// so the value is modeled as named states rather than a free-running counter.
type Step int

const (
	StepCreated      Step = 1
	StepPositionsSet Step = 3
	StepMediaSet     Step = 4
)

// Valid reports whether s is one of the named checkpoint states.
func (s Step) Valid() bool {
	return s == StepCreated || s == StepPositionsSet || s == StepMediaSet
}

// Socials holds the optional social media links on a profile.
type Socials struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

// Registration is the single persistent entity: one user/player across the
// wizard and thereafter. Step is nil for admin-created accounts, which never
// entered the wizard.
type Registration struct {
	ID                    uuid.UUID  `json:"id"`
	Email                 string     `json:"email"`
	PasswordHash          string     `json:"-"`
	FullName              string     `json:"full_name"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	Nickname              string     `json:"nickname,omitempty"`
	PhoneNumber           string     `json:"phone_number,omitempty"`
	Country               string     `json:"country,omitempty"`
	StateRegion           string     `json:"state_region,omitempty"`
	Club                  string     `json:"club,omitempty"`
	Foot                  string     `json:"foot,omitempty"`
	Position              string     `json:"position,omitempty"`
	Role                  string     `json:"role"`
	SelectedPositions     []string   `json:"selected_positions,omitempty"`
	UploadedImageURL      string     `json:"uploaded_image_url,omitempty"`
	UploadedImagePublicID string     `json:"uploaded_image_public_id,omitempty"`
	UploadedFileName      string     `json:"uploaded_file_name,omitempty"`
	Socials               Socials    `json:"socials"`
	IsProfileComplete     bool       `json:"is_profile_complete"`
	IsScoutApproved       bool       `json:"is_scout_approved"`
	IsContracted          bool       `json:"is_contracted"`
	Step                  *Step      `json:"step,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Identity is the non-secret projection of a registration record. It is what
// authentication returns and what the session token carries; it has no
// password field at all, so it cannot leak one.
type Identity struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	FullName          string     `json:"full_name"`
	Nickname          string     `json:"nickname,omitempty"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	Country           string     `json:"country,omitempty"`
	Club              string     `json:"club,omitempty"`
	Foot              string     `json:"foot,omitempty"`
	Position          string     `json:"position,omitempty"`
	Role              string     `json:"role"`
	SelectedPositions []string   `json:"selected_positions,omitempty"`
	UploadedImageURL  string     `json:"uploaded_image_url,omitempty"`
	Socials           Socials    `json:"socials"`
	IsProfileComplete bool       `json:"is_profile_complete"`
	Step              *Step      `json:"step,omitempty"`
}

// Identity returns the record stripped of its credential secret.
func (r *Registration) Identity() Identity {
	return Identity{
		ID:                r.ID,
		Email:             r.Email,
		FullName:          r.FullName,
		Nickname:          r.Nickname,
		DateOfBirth:       r.DateOfBirth,
		Country:           r.Country,
		Club:              r.Club,
		Foot:              r.Foot,
		Position:          r.Position,
		Role:              r.Role,
		SelectedPositions: r.SelectedPositions,
		UploadedImageURL:  r.UploadedImageURL,
		Socials:           r.Socials,
		IsProfileComplete: r.IsProfileComplete,
		Step:              r.Step,
	}
}

// PlayerStatus derives the scouting status shown on public profiles.
func (r *Registration) PlayerStatus() string {
	switch {
	case !r.IsProfileComplete:
		return "Incomplete"
	case r.IsContracted:
		return "Contracted"
	case r.IsScoutApproved:
		return "Available"
	default:
		return "Pending"
	}
}

// Age returns the whole-year age at now, or 0 if the birth date is unknown.
func (r *Registration) Age(now time.Time) int {
	if r.DateOfBirth == nil {
		return 0
	}
	dob := *r.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Positions is the fixed 21-code pitch position enumeration.
var Positions = []string{
	"GK", "LB", "LCB", "CB", "RB", "RCB", "RWB",
	"LM", "LWB", "CM", "CDM", "RM", "CAM", "RAM",
	"LAM", "LW", "LWF", "RWF", "RW", "CF", "SS",
}

var positionSet = func() map[string]bool {
	m := make(map[string]bool, len(Positions))
	for _, p := range Positions {
		m[p] = true
	}
	return m
}()

// IsPosition reports whether code is one of the 21 known position codes.
func IsPosition(code string) bool {
	return positionSet[code]
}
