package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gospives/platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// RegistrationRepository provides access to the registrations table, the sole
// persistent entity. Single-row updates are the only atomicity the wizard
// relies on.
type RegistrationRepository interface {
	// Create inserts a new registration. Step is nil for admin-created accounts.
	Create(ctx context.Context, db DBTX, r *domain.Registration) error

	// FindByEmail returns a registration by email, or nil if not found.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Registration, error)

	// FindByID returns a registration by id, or nil if not found.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Registration, error)

	// FindByNickname returns a registration by nickname, or nil if not found.
	FindByNickname(ctx context.Context, db DBTX, nickname string) (*domain.Registration, error)

	// SetPositions stores the four selected position codes and advances the
	// record to the positions checkpoint. ErrNotFound if no row matches.
	SetPositions(ctx context.Context, db DBTX, id uuid.UUID, positions []string) error

	// SetMedia stores the media references that were supplied (empty strings
	// leave the stored value untouched) and advances the record to the final
	// checkpoint. ErrNotFound if no row matches.
	SetMedia(ctx context.Context, db DBTX, id uuid.UUID, imageURL, imagePublicID, fileName string) error

	// UpdateSocials replaces the social links for the record with this email.
	// ErrNotFound if no row matches.
	UpdateSocials(ctx context.Context, db DBTX, email string, socials domain.Socials) error

	// SearchTalents returns one directory page matching the query, newest first.
	SearchTalents(ctx context.Context, db DBTX, q domain.TalentQuery) ([]domain.Registration, error)

	// CountTalents returns the total matching the query, computed independently
	// of the page slice.
	CountTalents(ctx context.Context, db DBTX, q domain.TalentQuery) (int, error)

	// ListAll returns every registration, newest first. Admin views only.
	ListAll(ctx context.Context, db DBTX) ([]domain.Registration, error)

	// RecentPlayers returns the newest records whose role is neither admin nor
	// coach, capped at limit.
	RecentPlayers(ctx context.Context, db DBTX, limit int) ([]domain.Registration, error)

	// Stats returns the admin dashboard counters.
	Stats(ctx context.Context, db DBTX) (domain.DashboardStats, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events with their row ids, oldest first.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished removes published events.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}

// OutboxRow pairs an outbox draft with its sequence id for acknowledgment.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}
