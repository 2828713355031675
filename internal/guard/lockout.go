package guard

import (
	"context"
	"time"

	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/repository"
)

const (
	MaxAttempts   = 5
	LockoutWindow = 15 * time.Minute
)

// RecordAttempt inserts a login attempt row. The reason distinguishes unknown
// email from bad credential for server-side logging; the client never sees it.
func RecordAttempt(ctx context.Context, db repository.DBTX, email, ip, reason string, success bool) {
	_, _ = db.Exec(ctx, `
		INSERT INTO login_attempts (email, ip_address, reason, success)
		VALUES ($1, $2, $3, $4)`,
		email, ip, reason, success)
}

// CheckLocked returns ErrAccountLocked if the email has >= MaxAttempts failed
// logins within the lockout window.
func CheckLocked(ctx context.Context, db repository.DBTX, email string) error {
	var count int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM login_attempts
		WHERE email = $1 AND success = false
		  AND created_at > $2`,
		email, time.Now().Add(-LockoutWindow)).Scan(&count)
	if err != nil {
		return nil // fail open on DB error, never block login on infrastructure
	}
	if count >= MaxAttempts {
		return domain.ErrAccountLocked("too many failed login attempts, try again later")
	}
	return nil
}
