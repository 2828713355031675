package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Validator Tests ---

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
		errMsg  string
	}{
		{"valid email", "user@example.com", false, ""},
		{"valid email with dots", "first.last@example.co.uk", false, ""},
		{"valid email with plus", "user+tag@example.com", false, ""},
		{"empty string", "", true, "email is required"},
		{"no at sign", "userexample.com", true, "invalid email format"},
		{"no domain", "user@", true, "invalid email format"},
		{"no user", "@example.com", true, "invalid email format"},
		{"no tld", "user@example", true, "invalid email format"},
		{"single char tld", "user@example.c", true, "invalid email format"},
		{"spaces", "user @example.com", true, "invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateSelectedPositions(t *testing.T) {
	tests := []struct {
		name    string
		codes   []string
		wantErr bool
		errMsg  string
	}{
		{"four distinct codes", []string{"GK", "CB", "CM", "CF"}, false, ""},
		{"another valid pick", []string{"LM", "CB", "RB", "GK"}, false, ""},
		{"wing backs and wingers", []string{"LWB", "RWB", "LWF", "RWF"}, false, ""},
		{"three codes", []string{"LM", "CB", "RB"}, true, "exactly 4 positions"},
		{"five codes", []string{"GK", "CB", "CM", "CF", "SS"}, true, "exactly 4 positions"},
		{"empty", nil, true, "exactly 4 positions"},
		{"duplicate code", []string{"LM", "LM", "CB", "RB"}, true, "duplicate position code"},
		{"unknown code", []string{"GK", "CB", "CM", "ST"}, true, "unknown position code"},
		{"lowercase rejected", []string{"gk", "CB", "CM", "CF"}, true, "unknown position code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelectedPositions(tt.codes)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPositionEnumHas21Codes(t *testing.T) {
	assert.Len(t, Positions, 21)
	seen := map[string]bool{}
	for _, p := range Positions {
		assert.False(t, seen[p], "duplicate code %s", p)
		seen[p] = true
		assert.True(t, IsPosition(p))
	}
	assert.False(t, IsPosition("ST"))
	assert.False(t, IsPosition(""))
}

func TestValidateRole(t *testing.T) {
	require.NoError(t, ValidateRole(RoleUser))
	require.NoError(t, ValidateRole(RoleAdmin))
	require.NoError(t, ValidateRole(RoleCoach))
	assert.Error(t, ValidateRole("superuser"))
	assert.Error(t, ValidateRole(""))
}

func TestValidateSocialURL(t *testing.T) {
	require.NoError(t, ValidateSocialURL("", "Instagram"))
	require.NoError(t, ValidateSocialURL("https://instagram.com/p1", "Instagram"))
	require.NoError(t, ValidateSocialURL("http://x.com/p1", "Twitter"))
	err := ValidateSocialURL("instagram.com/p1", "Instagram")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Instagram")
}

func TestParseDateOfBirth(t *testing.T) {
	dob, err := ParseDateOfBirth("2004-07-21")
	require.NoError(t, err)
	assert.Equal(t, 2004, dob.Year())

	_, err = ParseDateOfBirth("")
	assert.Error(t, err)
	_, err = ParseDateOfBirth("21/07/2004")
	assert.Error(t, err)
	_, err = ParseDateOfBirth(time.Now().AddDate(1, 0, 0).Format("2006-01-02"))
	assert.Error(t, err)
}

// --- Step Tests ---

func TestStepStates(t *testing.T) {
	assert.True(t, StepCreated.Valid())
	assert.True(t, StepPositionsSet.Valid())
	assert.True(t, StepMediaSet.Valid())

	// Step 2 is reserved: the second wizard screen never writes on its own.
	assert.False(t, Step(2).Valid())
	assert.False(t, Step(0).Valid())
	assert.False(t, Step(5).Valid())
}

// --- Registration Tests ---

func TestIdentityStripsPasswordHash(t *testing.T) {
	step := StepMediaSet
	dob := time.Date(2004, 7, 21, 0, 0, 0, 0, time.UTC)
	r := Registration{
		ID:                uuid.New(),
		Email:             "a@x.com",
		PasswordHash:      "$2a$10$secret",
		FullName:          "Ada Okafor",
		Role:              RoleUser,
		DateOfBirth:       &dob,
		SelectedPositions: []string{"GK", "CB", "CM", "CF"},
		Step:              &step,
	}

	id := r.Identity()
	assert.Equal(t, r.Email, id.Email)
	assert.Equal(t, r.SelectedPositions, id.SelectedPositions)

	raw, err := json.Marshal(id)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")
}

func TestRegistrationJSONNeverContainsHash(t *testing.T) {
	r := Registration{Email: "a@x.com", PasswordHash: "$2a$10$secret", Role: RoleUser}
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func TestPlayerStatus(t *testing.T) {
	tests := []struct {
		name string
		r    Registration
		want string
	}{
		{"incomplete profile", Registration{}, "Incomplete"},
		{"contracted wins", Registration{IsProfileComplete: true, IsContracted: true, IsScoutApproved: true}, "Contracted"},
		{"scout approved", Registration{IsProfileComplete: true, IsScoutApproved: true}, "Available"},
		{"complete only", Registration{IsProfileComplete: true}, "Pending"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.PlayerStatus())
		})
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	bday := func(y, m, d int) *time.Time {
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name string
		dob  *time.Time
		want int
	}{
		{"birthday passed this year", bday(2004, 2, 1), 22},
		{"birthday later this year", bday(2004, 12, 1), 21},
		{"birthday today", bday(2004, 8, 31), 22},
		{"birthday tomorrow", bday(2004, 9, 1), 21},
		{"unknown dob", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Registration{DateOfBirth: tt.dob}
			assert.Equal(t, tt.want, r.Age(now))
		})
	}
}

// --- Error Tests ---

func TestAppErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{ErrNotFound("registration", "abc"), 404, "NOT_FOUND"},
		{ErrConflict("email already exists"), 409, "CONFLICT"},
		{ErrValidation("bad input"), 400, "VALIDATION_ERROR"},
		{ErrUnauthorized("invalid credentials"), 401, "UNAUTHORIZED"},
		{ErrForbidden("admin access required"), 403, "FORBIDDEN"},
		{ErrUpstream("image store", assert.AnError), 502, "UPSTREAM_ERROR"},
		{ErrAccountLocked("too many attempts"), 429, "ACCOUNT_LOCKED"},
		{ErrInternal("oops", assert.AnError), 500, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := ErrInternal("wrapped", assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
}

func TestUpstreamErrorHidesCause(t *testing.T) {
	err := ErrUpstream("image store", assert.AnError)
	raw, jerr := json.Marshal(err)
	require.NoError(t, jerr)
	assert.NotContains(t, string(raw), assert.AnError.Error())
	assert.Contains(t, err.Message, "please retry")
}

// --- Outbox Tests ---

func TestNewOutboxDraft(t *testing.T) {
	id := uuid.New()
	draft := NewOutboxDraft(AggregateRegistration, EventRegistrationStarted, id, json.RawMessage(`{"step":1}`))

	assert.NotEqual(t, uuid.Nil, draft.EventID)
	assert.Equal(t, id.String(), draft.AggregateID)
	assert.Equal(t, id.String(), draft.PartitionKey)
	assert.Equal(t, EventRegistrationStarted, draft.EventType)
	assert.WithinDuration(t, time.Now(), draft.OccurredAt, time.Minute)
}
