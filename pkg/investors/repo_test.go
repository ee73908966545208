package investors

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"venturelink/pkg/startups"
	"venturelink/pkg/testhelpers"
)

func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping repository tests")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresInvestorRepository_CreateProfile(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewPostgresInvestorRepository(pool)
	ctx := context.Background()

	userUUID := testhelpers.CreateTestUser(t, pool, "investor")

	created, err := repo.CreateProfile(ctx, InvestorProfile{
		UserUUID:        userUUID,
		FirmName:        "Acme Ventures",
		Location:        "San Francisco",
		InvestmentFocus: []startups.Industry{startups.IndustryFintech, startups.IndustryTechnology},
		PreferredStages: []startups.FundingStage{startups.StageSeed},
	})

	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, userUUID, created.UserUUID)
	require.Equal(t, []startups.Industry{startups.IndustryFintech, startups.IndustryTechnology}, created.InvestmentFocus)
	require.Equal(t, []startups.FundingStage{startups.StageSeed}, created.PreferredStages)
}

func TestPostgresInvestorRepository_CreateProfile_UnknownUser(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewPostgresInvestorRepository(pool)

	_, err := repo.CreateProfile(context.Background(), InvestorProfile{
		UserUUID: "00000000-0000-0000-0000-000000000000",
		FirmName: "Ghost Capital",
	})

	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostgresInvestorRepository_GetProfileByUser(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewPostgresInvestorRepository(pool)
	ctx := context.Background()

	userUUID := testhelpers.CreateTestUser(t, pool, "investor")
	id := testhelpers.CreateTestInvestorProfile(t, pool, userUUID)

	found, err := repo.GetProfileByUser(ctx, userUUID)
	require.NoError(t, err)
	require.Equal(t, id, found.ID)
	require.Equal(t, userUUID, found.UserUUID)

	_, err = repo.GetProfileByUser(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPostgresInvestorRepository_ListProfilesWithUsers(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewPostgresInvestorRepository(pool)
	ctx := context.Background()

	userUUID := testhelpers.CreateTestUser(t, pool, "investor")
	testhelpers.CreateTestInvestorProfile(t, pool, userUUID)

	pairs, err := repo.ListProfilesWithUsers(ctx, 0, 1000)
	require.NoError(t, err)
	require.NotEmpty(t, pairs)

	var seen bool
	for _, pair := range pairs {
		require.NotEmpty(t, pair.Name)
		require.NotEmpty(t, pair.Email)
		if pair.Profile.UserUUID == userUUID {
			seen = true
		}
	}
	require.True(t, seen)
}

func TestPostgresInvestorRepository_DeleteProfile(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewPostgresInvestorRepository(pool)
	ctx := context.Background()

	userUUID := testhelpers.CreateTestUser(t, pool, "investor")
	id := testhelpers.CreateTestInvestorProfile(t, pool, userUUID)

	require.NoError(t, repo.DeleteProfile(ctx, id))
	require.ErrorIs(t, repo.DeleteProfile(ctx, id), ErrProfileNotFound)
}
