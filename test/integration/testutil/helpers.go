//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// POST sends a JSON POST request. token, when non-empty, is sent as a bearer header.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		env.t.Fatalf("POST %s: marshal: %v", path, err)
	}

	req, err := http.NewRequest(http.MethodPost, env.Server.URL+path, bytes.NewReader(raw))
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// GET sends a GET request. token, when non-empty, is sent as a bearer header.
func (env *TestEnv) GET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest(http.MethodGet, env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// Step1Payload returns a valid step-1 body with the given email and nickname.
func Step1Payload(email, nickname string) map[string]string {
	return map[string]string{
		"fullName":    "Test Player",
		"dateOfBirth": "2004-03-15",
		"nickname":    nickname,
		"phoneNumber": "+2348012345678",
		"country":     "Nigeria",
		"stateRegion": "Lagos",
		"email":       email,
		"club":        "Eagles FC",
		"foot":        "right",
		"position":    "midfielder",
		"password":    "s3cret-pass",
	}
}

// BeginRegistration runs step 1 and returns the new registration id.
func (env *TestEnv) BeginRegistration(email, nickname string) string {
	env.t.Helper()
	resp := env.POST("/api/registration/step1", Step1Payload(email, nickname), "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("BeginRegistration: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("BeginRegistration: decode: %v", err)
	}
	return result.ID
}

// Login authenticates and returns the session token.
func (env *TestEnv) Login(email, password string) string {
	env.t.Helper()
	resp := env.POST("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("Login: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("Login: decode: %v", err)
	}
	return result.Token
}

// CreateAdmin inserts an admin account directly and returns its token.
func (env *TestEnv) CreateAdmin(email string) string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	if err != nil {
		env.t.Fatalf("CreateAdmin: hash: %v", err)
	}

	_, err = env.Pool.Exec(ctx, `
		INSERT INTO registrations (id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, 'Test Admin', 'admin')`,
		uuid.New(), email, string(hash))
	if err != nil {
		env.t.Fatalf("CreateAdmin: insert: %v", err)
	}

	return env.Login(email, "admin-pass")
}

// SeedTalent inserts a completed talent record for directory tests.
func (env *TestEnv) SeedTalent(email, fullName, country, foot, position string, dateOfBirth time.Time) {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := env.Pool.Exec(ctx, `
		INSERT INTO registrations
		  (id, email, password_hash, full_name, date_of_birth, nickname, country,
		   foot, position, role, is_profile_complete, step)
		VALUES ($1, $2, 'x', $3, $4, $5, $6, $7, $8, 'user', TRUE, 4)`,
		uuid.New(), email, fullName, dateOfBirth, email, country, foot, position)
	if err != nil {
		env.t.Fatalf("SeedTalent: insert: %v", err)
	}
}
