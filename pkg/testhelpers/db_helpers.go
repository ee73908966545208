package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// CreateTestUser inserts a minimal valid user row with the given role and
// returns its uuid.
func CreateTestUser(t *testing.T, db *pgxpool.Pool, role string) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	name := fmt.Sprintf("test-user-%d", suffix)
	email := fmt.Sprintf("%s@example.com", name)
	uid := uuid.New().String()

	_, err := db.Exec(ctx,
		"INSERT INTO users (uuid, name, email, role, password_hash) VALUES ($1, $2, $3, $4, $5)",
		uid, name, email, role, "hash")
	require.NoError(t, err)
	return uid
}

// CreateTestStartup inserts a published startup for the given founder and
// returns its ID.
func CreateTestStartup(t *testing.T, db *pgxpool.Pool, founderUUID string) int64 {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	name := fmt.Sprintf("test-startup-%d", suffix)

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO startups (founder_id, name, description, industry, funding_stage, location, is_published)
		 SELECT id, $2, 'test description', 'Technology', 'Seed', 'San Francisco', TRUE
		 FROM users WHERE uuid = $1
		 RETURNING id`,
		founderUUID, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestInvestorProfile inserts an investor profile for the given user
// and returns its ID.
func CreateTestInvestorProfile(t *testing.T, db *pgxpool.Pool, userUUID string) int64 {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	firm := fmt.Sprintf("test-firm-%d", suffix)

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO investor_profiles (user_id, firm_name, location, investment_focus, preferred_stages)
		 SELECT id, $2, 'San Francisco', ARRAY['Technology'], ARRAY['Seed']
		 FROM users WHERE uuid = $1
		 RETURNING id`,
		userUUID, firm).Scan(&id)
	require.NoError(t, err)
	return id
}
