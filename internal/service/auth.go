package service

import (
	"context"
	"log/slog"

	"github.com/gospives/platform/internal/auth"
	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/guard"
	"github.com/gospives/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates credentials and issues session tokens. It also
// implements auth.IdentityResolver so guarded requests see profile changes
// made after the token was issued.
type AuthService struct {
	db     repository.DBTX
	regs   repository.RegistrationRepository
	issuer *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(db repository.DBTX, regs repository.RegistrationRepository, issuer *auth.TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{db: db, regs: regs, issuer: issuer, logger: logger}
}

// LoginInput holds the credential pair.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a successful authentication: the signed token and the
// identity it carries.
type AuthResult struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// Login verifies the credential pair against the stored hash. Unknown email
// and wrong password return the same generic error; the distinction is kept
// server-side in the attempt log only.
func (s *AuthService) Login(ctx context.Context, input LoginInput, ip string) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrValidation("email and password are required")
	}

	if err := guard.CheckLocked(ctx, s.db, input.Email); err != nil {
		return nil, err
	}

	r, err := s.regs.FindByEmail(ctx, s.db, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find registration", err)
	}
	if r == nil {
		guard.RecordAttempt(ctx, s.db, input.Email, ip, "unknown email", false)
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.db, input.Email, ip, "bad credential", false)
		return nil, domain.ErrUnauthorized("invalid credentials")
	}
	guard.RecordAttempt(ctx, s.db, input.Email, ip, "", true)

	identity := r.Identity()
	token, err := s.issuer.Issue(identity)
	if err != nil {
		return nil, domain.ErrInternal("issue token", err)
	}

	return &AuthResult{Token: token, User: identity}, nil
}

// Resolve re-reads the identity behind a valid token so long-lived sessions
// observe later profile edits. When the read fails or the record is gone the
// token snapshot is served instead; a valid token keeps working.
func (s *AuthService) Resolve(ctx context.Context, snapshot domain.Identity) domain.Identity {
	r, err := s.regs.FindByEmail(ctx, s.db, snapshot.Email)
	if err != nil {
		s.logger.Warn("identity refresh failed, serving token snapshot", "error", err)
		return snapshot
	}
	if r == nil {
		return snapshot
	}
	return r.Identity()
}
