package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationService drives the 4-step registration wizard. Each step is a
// single-row write keyed by the registration id, so a crash between steps
// leaves a durable, resumable checkpoint rather than a torn write. There is
// no cross-row transaction anywhere in this flow.
type RegistrationService struct {
	db     repository.DBTX
	regs   repository.RegistrationRepository
	outbox repository.OutboxRepository
	logger *slog.Logger
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	db repository.DBTX,
	regs repository.RegistrationRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		db:     db,
		regs:   regs,
		outbox: outbox,
		logger: logger,
	}
}

// BeginInput holds the step-1 request fields. Every field is required.
type BeginInput struct {
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Nickname    string `json:"nickname"`
	PhoneNumber string `json:"phoneNumber"`
	Country     string `json:"country"`
	StateRegion string `json:"stateRegion"`
	Email       string `json:"email"`
	Club        string `json:"club"`
	Foot        string `json:"foot"`
	Position    string `json:"position"`
	Password    string `json:"password"`
}

func (in BeginInput) missingFields() []string {
	var missing []string
	for name, v := range map[string]string{
		"fullName": in.FullName, "dateOfBirth": in.DateOfBirth, "nickname": in.Nickname,
		"phoneNumber": in.PhoneNumber, "country": in.Country, "stateRegion": in.StateRegion,
		"email": in.Email, "club": in.Club, "foot": in.Foot, "position": in.Position,
		"password": in.Password,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Begin validates the step-1 payload and creates the registration record at
// the first checkpoint. This is the only operation that creates a wizard
// record; every later step references the returned id.
func (s *RegistrationService) Begin(ctx context.Context, input BeginInput) (uuid.UUID, error) {
	if missing := input.missingFields(); len(missing) > 0 {
		return uuid.Nil, domain.ErrValidation("required fields are missing: " + strings.Join(missing, ", "))
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return uuid.Nil, domain.ErrValidation(err.Error())
	}
	dob, err := domain.ParseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return uuid.Nil, domain.ErrValidation(err.Error())
	}

	// Uniqueness check before any write.
	existing, err := s.regs.FindByEmail(ctx, s.db, input.Email)
	if err != nil {
		return uuid.Nil, domain.ErrInternal("find registration", err)
	}
	if existing != nil {
		return uuid.Nil, domain.ErrConflict("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, domain.ErrInternal("hash password", err)
	}

	step := domain.StepCreated
	r := &domain.Registration{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		DateOfBirth:  &dob,
		Nickname:     input.Nickname,
		PhoneNumber:  input.PhoneNumber,
		Country:      input.Country,
		StateRegion:  input.StateRegion,
		Club:         input.Club,
		Foot:         input.Foot,
		Position:     input.Position,
		Role:         domain.RoleUser,
		Step:         &step,
	}
	if err := s.regs.Create(ctx, s.db, r); err != nil {
		return uuid.Nil, domain.ErrInternal("create registration", err)
	}

	s.emit(ctx, domain.EventRegistrationStarted, r.ID, map[string]any{
		"email": r.Email, "country": r.Country, "step": int(step),
	})

	return r.ID, nil
}

// SetPositionsInput holds the step-3 request fields.
type SetPositionsInput struct {
	ID                string   `json:"id"`
	SelectedPositions []string `json:"selectedPositions"`
}

// SetPositions stores the four selected position codes and advances the
// record to the positions checkpoint. Resubmitting the same positions is a
// state-wise no-op; resubmitting different ones overwrites unconditionally,
// even after the final step.
func (s *RegistrationService) SetPositions(ctx context.Context, input SetPositionsInput) (uuid.UUID, error) {
	if input.ID == "" {
		return uuid.Nil, domain.ErrValidation("id is required")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return uuid.Nil, domain.ErrValidation("invalid registration id")
	}
	if err := domain.ValidateSelectedPositions(input.SelectedPositions); err != nil {
		return uuid.Nil, domain.ErrValidation(err.Error())
	}

	if err := s.regs.SetPositions(ctx, s.db, id, input.SelectedPositions); err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return uuid.Nil, appErr
		}
		return uuid.Nil, domain.ErrInternal("set positions", err)
	}

	s.emit(ctx, domain.EventPositionsSelected, id, map[string]any{
		"selected_positions": input.SelectedPositions, "step": int(domain.StepPositionsSet),
	})

	return id, nil
}

// SetMediaInput holds the step-4 request fields. The image and file
// references are individually optional; a user may skip either.
type SetMediaInput struct {
	ID                    string `json:"id"`
	UploadedImageURL      string `json:"uploadedImageUrl"`
	UploadedImagePublicID string `json:"uploadedImagePublicId"`
	UploadedFileName      string `json:"uploadedFileName"`
}

// SetMedia attaches the uploaded media references and advances the record to
// the final checkpoint. Only supplied fields are written, so the operation is
// idempotent per field and safe to retry after an upload failure.
func (s *RegistrationService) SetMedia(ctx context.Context, input SetMediaInput) (*domain.Registration, error) {
	if input.ID == "" {
		return nil, domain.ErrValidation("id is required")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, domain.ErrValidation("invalid registration id")
	}

	if err := s.regs.SetMedia(ctx, s.db, id, input.UploadedImageURL, input.UploadedImagePublicID, input.UploadedFileName); err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return nil, appErr
		}
		return nil, domain.ErrInternal("set media", err)
	}

	r, err := s.regs.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, domain.ErrInternal("reload registration", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound("registration", id.String())
	}

	s.emit(ctx, domain.EventRegistrationCompleted, id, map[string]any{
		"email": r.Email, "step": int(domain.StepMediaSet),
	})

	return r, nil
}

// UpdateSocials replaces the social links on the record with this email.
func (s *RegistrationService) UpdateSocials(ctx context.Context, email string, socials domain.Socials) error {
	for _, link := range []struct{ url, platform string }{
		{socials.Instagram, "Instagram"},
		{socials.Twitter, "Twitter"},
		{socials.Facebook, "Facebook"},
		{socials.LinkedIn, "LinkedIn"},
		{socials.TikTok, "TikTok"},
	} {
		if err := domain.ValidateSocialURL(link.url, link.platform); err != nil {
			return domain.ErrValidation(err.Error())
		}
	}

	if err := s.regs.UpdateSocials(ctx, s.db, email, socials); err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return appErr
		}
		return domain.ErrInternal("update socials", err)
	}
	return nil
}

// emit writes an outbox event. Event loss is tolerable here; the record write
// already succeeded and events are a downstream convenience.
func (s *RegistrationService) emit(ctx context.Context, eventType domain.EventType, id uuid.UUID, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(fmt.Sprintf(`{"marshal_error":%q}`, err.Error()))
	}
	draft := domain.NewOutboxDraft(domain.AggregateRegistration, eventType, id, raw)
	if err := s.outbox.Insert(ctx, s.db, draft); err != nil {
		s.logger.Error("outbox insert failed", "event_type", eventType, "registration_id", id, "error", err)
	}
}
