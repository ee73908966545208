package pitch

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"venturelink/pkg/testhelpers"
)

// newTestPool connects to a real Postgres instance for integration tests.
// Skips if DATABASE_URL_FOR_TEST is not set to keep CI deterministic.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, using environment variables")
	}
	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping integration tests")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.MaxConns = 4

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestSavePitch_PersistsFields(t *testing.T) {
	pool := newTestPool(t)
	store := NewPostgresPitchStore(pool)

	sender := testhelpers.CreateTestUser(t, pool, "founder")
	receiver := testhelpers.CreateTestUser(t, pool, "investor")
	sentAt := time.Now().Unix()

	id, err := store.SavePitch(context.Background(), sender, receiver, "our seed pitch", "https://deck.example.com", sentAt)
	require.NoError(t, err)
	require.NotZero(t, id)

	row := pool.QueryRow(context.Background(), `
		SELECT s.uuid, r.uuid, m.content, m.deck_url, m.status, m.sent_at
		FROM pitch_messages m
		JOIN users s ON m.sender_id = s.id
		JOIN users r ON m.receiver_id = r.id
		WHERE m.id = $1
	`, id)
	var sUUID, rUUID, content, deckURL, status string
	var storedAt int64
	require.NoError(t, row.Scan(&sUUID, &rUUID, &content, &deckURL, &status, &storedAt))
	require.Equal(t, sender, sUUID)
	require.Equal(t, receiver, rUUID)
	require.Equal(t, "our seed pitch", content)
	require.Equal(t, "https://deck.example.com", deckURL)
	require.Equal(t, StatusSent, status)
	require.Equal(t, sentAt, storedAt)
}

func TestUpdateStatus_AdvancesAndReportsSenders(t *testing.T) {
	pool := newTestPool(t)
	store := NewPostgresPitchStore(pool)
	ctx := context.Background()

	sender := testhelpers.CreateTestUser(t, pool, "founder")
	receiver := testhelpers.CreateTestUser(t, pool, "investor")

	id, err := store.SavePitch(ctx, sender, receiver, "pitch", "", time.Now().Unix())
	require.NoError(t, err)

	senders, err := store.UpdateStatus(ctx, receiver, StatusViewed, []string{fmt.Sprintf("%d", id)})
	require.NoError(t, err)
	require.Equal(t, []string{sender}, senders)

	var status string
	require.NoError(t, pool.QueryRow(ctx, "SELECT status FROM pitch_messages WHERE id = $1", id).Scan(&status))
	require.Equal(t, StatusViewed, status)
}

func TestUpdateStatus_ArchivedIsFinal(t *testing.T) {
	pool := newTestPool(t)
	store := NewPostgresPitchStore(pool)
	ctx := context.Background()

	sender := testhelpers.CreateTestUser(t, pool, "founder")
	receiver := testhelpers.CreateTestUser(t, pool, "investor")

	id, err := store.SavePitch(ctx, sender, receiver, "pitch", "", time.Now().Unix())
	require.NoError(t, err)

	idStr := fmt.Sprintf("%d", id)

	_, err = store.UpdateStatus(ctx, receiver, StatusArchived, []string{idStr})
	require.NoError(t, err)

	// Archived pitches never advance again, so no senders to notify.
	senders, err := store.UpdateStatus(ctx, receiver, StatusViewed, []string{idStr})
	require.NoError(t, err)
	require.Empty(t, senders)

	var status string
	require.NoError(t, pool.QueryRow(ctx, "SELECT status FROM pitch_messages WHERE id = $1", id).Scan(&status))
	require.Equal(t, StatusArchived, status)
}

func TestUpdateStatus_OnlyReceiverCanAdvance(t *testing.T) {
	pool := newTestPool(t)
	store := NewPostgresPitchStore(pool)
	ctx := context.Background()

	sender := testhelpers.CreateTestUser(t, pool, "founder")
	receiver := testhelpers.CreateTestUser(t, pool, "investor")

	id, err := store.SavePitch(ctx, sender, receiver, "pitch", "", time.Now().Unix())
	require.NoError(t, err)

	// The sender cannot advance a pitch addressed to someone else.
	senders, err := store.UpdateStatus(ctx, sender, StatusViewed, []string{fmt.Sprintf("%d", id)})
	require.NoError(t, err)
	require.Empty(t, senders)

	var status string
	require.NoError(t, pool.QueryRow(ctx, "SELECT status FROM pitch_messages WHERE id = $1", id).Scan(&status))
	require.Equal(t, StatusSent, status)
}

func TestGetThread_ReturnsConversation(t *testing.T) {
	pool := newTestPool(t)
	store := NewPostgresPitchStore(pool)
	ctx := context.Background()

	founder := testhelpers.CreateTestUser(t, pool, "founder")
	investor := testhelpers.CreateTestUser(t, pool, "investor")
	other := testhelpers.CreateTestUser(t, pool, "investor")

	base := time.Now().Unix()
	_, err := store.SavePitch(ctx, founder, investor, "first", "", base-20)
	require.NoError(t, err)
	_, err = store.SavePitch(ctx, investor, founder, "reply", "", base-10)
	require.NoError(t, err)
	_, err = store.SavePitch(ctx, founder, other, "unrelated", "", base-5)
	require.NoError(t, err)

	items, err := store.GetThread(ctx, founder, investor, 50, base+1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "first", items[0].Content)
	require.Equal(t, "reply", items[1].Content)
	require.Equal(t, founder, items[0].SenderID)
	require.Equal(t, investor, items[1].SenderID)
}

func TestGetUserContact(t *testing.T) {
	pool := newTestPool(t)
	store := NewPostgresPitchStore(pool)
	ctx := context.Background()

	userUUID := testhelpers.CreateTestUser(t, pool, "investor")

	name, email, err := store.GetUserContact(ctx, userUUID)
	require.NoError(t, err)
	require.NotEmpty(t, name)
	require.Contains(t, email, "@example.com")
}
