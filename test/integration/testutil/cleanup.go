//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates all tables so each test starts from an empty store.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"login_attempts",
		"event_outbox",
		"registrations",
	}

	for _, table := range tables {
		if _, err := env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			env.t.Logf("truncate %s: %v", table, err)
		}
	}
}
