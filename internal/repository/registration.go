package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gospives/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

// PgRegistrationRepository implements RegistrationRepository using pgx.
type PgRegistrationRepository struct{}

// NewPgRegistrationRepository creates a new PgRegistrationRepository.
func NewPgRegistrationRepository() *PgRegistrationRepository {
	return &PgRegistrationRepository{}
}

const registrationColumns = `id, email, password_hash, full_name, date_of_birth, nickname,
	phone_number, country, state_region, club, foot, position, role,
	selected_positions, uploaded_image_url, uploaded_image_public_id,
	uploaded_file_name, socials, is_profile_complete, is_scout_approved,
	is_contracted, step, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	r := &domain.Registration{}
	var socialsRaw []byte
	var step *int

	err := row.Scan(
		&r.ID, &r.Email, &r.PasswordHash, &r.FullName, &r.DateOfBirth, &r.Nickname,
		&r.PhoneNumber, &r.Country, &r.StateRegion, &r.Club, &r.Foot, &r.Position, &r.Role,
		&r.SelectedPositions, &r.UploadedImageURL, &r.UploadedImagePublicID,
		&r.UploadedFileName, &socialsRaw, &r.IsProfileComplete, &r.IsScoutApproved,
		&r.IsContracted, &step, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(socialsRaw) > 0 {
		if err := json.Unmarshal(socialsRaw, &r.Socials); err != nil {
			return nil, err
		}
	}
	if step != nil {
		s := domain.Step(*step)
		r.Step = &s
	}
	return r, nil
}

// Create inserts a new registration row.
func (repo *PgRegistrationRepository) Create(ctx context.Context, db DBTX, r *domain.Registration) error {
	socialsRaw, err := json.Marshal(r.Socials)
	if err != nil {
		return err
	}
	var step *int
	if r.Step != nil {
		s := int(*r.Step)
		step = &s
	}

	_, err = db.Exec(ctx, `
		INSERT INTO registrations
		  (id, email, password_hash, full_name, date_of_birth, nickname,
		   phone_number, country, state_region, club, foot, position, role,
		   selected_positions, uploaded_image_url, uploaded_image_public_id,
		   uploaded_file_name, socials, is_profile_complete, is_scout_approved,
		   is_contracted, step)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		r.ID, r.Email, r.PasswordHash, r.FullName, r.DateOfBirth, r.Nickname,
		r.PhoneNumber, r.Country, r.StateRegion, r.Club, r.Foot, r.Position, r.Role,
		r.SelectedPositions, r.UploadedImageURL, r.UploadedImagePublicID,
		r.UploadedFileName, socialsRaw, r.IsProfileComplete, r.IsScoutApproved,
		r.IsContracted, step)
	return err
}

// FindByEmail returns a registration by email, or nil if not found.
func (repo *PgRegistrationRepository) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Registration, error) {
	row := db.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE email = $1`, email)
	return scanRegistration(row)
}

// FindByID returns a registration by id, or nil if not found.
func (repo *PgRegistrationRepository) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Registration, error) {
	row := db.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id)
	return scanRegistration(row)
}

// FindByNickname returns a registration by nickname, or nil if not found.
func (repo *PgRegistrationRepository) FindByNickname(ctx context.Context, db DBTX, nickname string) (*domain.Registration, error) {
	row := db.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE nickname = $1`, nickname)
	return scanRegistration(row)
}

// SetPositions stores the selected positions and advances to the positions
// checkpoint. Step only moves forward through this path; nothing ever writes
// a lower value back.
func (repo *PgRegistrationRepository) SetPositions(ctx context.Context, db DBTX, id uuid.UUID, positions []string) error {
	tag, err := db.Exec(ctx, `
		UPDATE registrations
		SET selected_positions = $2, step = $3, updated_at = now()
		WHERE id = $1`,
		id, positions, int(domain.StepPositionsSet))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("registration", id.String())
	}
	return nil
}

// SetMedia stores supplied media references, leaving omitted ones untouched,
// and advances to the final checkpoint. Resubmitting the same references is a
// no-op state-wise.
func (repo *PgRegistrationRepository) SetMedia(ctx context.Context, db DBTX, id uuid.UUID, imageURL, imagePublicID, fileName string) error {
	tag, err := db.Exec(ctx, `
		UPDATE registrations
		SET uploaded_image_url       = COALESCE(NULLIF($2, ''), uploaded_image_url),
		    uploaded_image_public_id = COALESCE(NULLIF($3, ''), uploaded_image_public_id),
		    uploaded_file_name       = COALESCE(NULLIF($4, ''), uploaded_file_name),
		    step = $5, is_profile_complete = TRUE, updated_at = now()
		WHERE id = $1`,
		id, imageURL, imagePublicID, fileName, int(domain.StepMediaSet))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("registration", id.String())
	}
	return nil
}

// UpdateSocials replaces the social links for the record with this email.
func (repo *PgRegistrationRepository) UpdateSocials(ctx context.Context, db DBTX, email string, socials domain.Socials) error {
	socialsRaw, err := json.Marshal(socials)
	if err != nil {
		return err
	}
	tag, err := db.Exec(ctx, `
		UPDATE registrations SET socials = $2, updated_at = now() WHERE email = $1`,
		email, socialsRaw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user", email)
	}
	return nil
}

const talentFilterClause = `
	role IN ('user', 'admin')
	AND ($1 = '' OR foot = $1)
	AND ($2 = '' OR position = $2)
	AND ($3 = '' OR full_name ILIKE '%' || $3 || '%'
	              OR club      ILIKE '%' || $3 || '%'
	              OR country   ILIKE '%' || $3 || '%')
	AND ($4::date IS NULL OR date_of_birth >= $4)
	AND ($5::date IS NULL OR date_of_birth <= $5)`

// SearchTalents returns one page of directory entries, newest first.
func (repo *PgRegistrationRepository) SearchTalents(ctx context.Context, db DBTX, q domain.TalentQuery) ([]domain.Registration, error) {
	rows, err := db.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE`+talentFilterClause+`
		 ORDER BY created_at DESC LIMIT $6 OFFSET $7`,
		q.Foot, q.Position, q.Search, q.MinDOB, q.MaxDOB, domain.TalentPageSize, q.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

// CountTalents returns the total matching the query.
func (repo *PgRegistrationRepository) CountTalents(ctx context.Context, db DBTX, q domain.TalentQuery) (int, error) {
	var total int
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE`+talentFilterClause,
		q.Foot, q.Position, q.Search, q.MinDOB, q.MaxDOB).Scan(&total)
	return total, err
}

// ListAll returns every registration, newest first.
func (repo *PgRegistrationRepository) ListAll(ctx context.Context, db DBTX) ([]domain.Registration, error) {
	rows, err := db.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

// RecentPlayers returns the newest player records, capped at limit.
func (repo *PgRegistrationRepository) RecentPlayers(ctx context.Context, db DBTX, limit int) ([]domain.Registration, error) {
	rows, err := db.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE role NOT IN ('admin', 'coach')
		 ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

// Stats returns the admin dashboard counters in a single pass.
func (repo *PgRegistrationRepository) Stats(ctx context.Context, db DBTX) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE role = 'coach'),
		       COUNT(*) FILTER (WHERE role = 'admin'),
		       COUNT(*) FILTER (WHERE created_at > $1)
		FROM registrations`,
		time.Now().Add(-7*24*time.Hour)).Scan(
		&s.TotalUsers, &s.TotalCoaches, &s.TotalAdmins, &s.RecentUsers)
	return s, err
}

func collectRegistrations(rows pgx.Rows) ([]domain.Registration, error) {
	var out []domain.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
