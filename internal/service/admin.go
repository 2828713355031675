package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminService backs the admin dashboard: user management and counters.
type AdminService struct {
	db     repository.DBTX
	regs   repository.RegistrationRepository
	outbox repository.OutboxRepository
	logger *slog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(db repository.DBTX, regs repository.RegistrationRepository, outbox repository.OutboxRepository, logger *slog.Logger) *AdminService {
	return &AdminService{db: db, regs: regs, outbox: outbox, logger: logger}
}

// AddUserInput holds the admin add-user form fields.
type AddUserInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AddUser creates an account outside the wizard. The email doubles as the
// initial password and the record carries no wizard step at all.
func (s *AdminService) AddUser(ctx context.Context, input AddUserInput) (uuid.UUID, error) {
	if input.FullName == "" || input.Email == "" || input.Role == "" {
		return uuid.Nil, domain.ErrValidation("fullName, email and role are required")
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return uuid.Nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateRole(input.Role); err != nil {
		return uuid.Nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.regs.FindByEmail(ctx, s.db, input.Email)
	if err != nil {
		return uuid.Nil, domain.ErrInternal("find registration", err)
	}
	if existing != nil {
		return uuid.Nil, domain.ErrConflict("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Email), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, domain.ErrInternal("hash password", err)
	}

	r := &domain.Registration{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         input.Role,
	}
	if err := s.regs.Create(ctx, s.db, r); err != nil {
		return uuid.Nil, domain.ErrInternal("create user", err)
	}

	payload, _ := json.Marshal(map[string]any{"email": r.Email, "role": r.Role})
	draft := domain.NewOutboxDraft(domain.AggregateUser, domain.EventUserCreated, r.ID, payload)
	if err := s.outbox.Insert(ctx, s.db, draft); err != nil {
		s.logger.Error("outbox insert failed", "event_type", domain.EventUserCreated, "user_id", r.ID, "error", err)
	}

	return r.ID, nil
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.Identity, error) {
	regs, err := s.regs.ListAll(ctx, s.db)
	if err != nil {
		return nil, domain.ErrInternal("list users", err)
	}
	out := make([]domain.Identity, 0, len(regs))
	for i := range regs {
		out = append(out, regs[i].Identity())
	}
	return out, nil
}

// RecentPlayers returns the newest player accounts for the dashboard.
func (s *AdminService) RecentPlayers(ctx context.Context, limit int) ([]domain.TalentEntry, error) {
	if limit < 1 {
		limit = 6
	}
	regs, err := s.regs.RecentPlayers(ctx, s.db, limit)
	if err != nil {
		return nil, domain.ErrInternal("recent players", err)
	}
	now := time.Now()
	out := make([]domain.TalentEntry, 0, len(regs))
	for i := range regs {
		out = append(out, domain.TalentEntry{Identity: regs[i].Identity(), Age: regs[i].Age(now)})
	}
	return out, nil
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	stats, err := s.regs.Stats(ctx, s.db)
	if err != nil {
		return domain.DashboardStats{}, domain.ErrInternal("dashboard stats", err)
	}
	return stats, nil
}
