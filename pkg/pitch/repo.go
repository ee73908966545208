package pitch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PitchStore interface {
	SavePitch(ctx context.Context, senderUUID, receiverUUID, content, deckURL string, sentAt int64) (int64, error)
	UpdateStatus(ctx context.Context, receiverUUID, status string, messageIDs []string) ([]string, error)
	GetThread(ctx context.Context, userUUID, peerUUID string, limit int, beforeEpoch int64) ([]ThreadItem, error)
	GetUserContact(ctx context.Context, userUUID string) (name, email string, err error)
}

type PostgresPitchStore struct {
	pool *pgxpool.Pool
}

func NewPostgresPitchStore(pool *pgxpool.Pool) *PostgresPitchStore {
	return &PostgresPitchStore{pool: pool}
}

// SavePitch inserts a pitch message, resolving sender and receiver rows by
// their UUIDs. New pitches always start in the "sent" status.
func (r *PostgresPitchStore) SavePitch(ctx context.Context, senderUUID, receiverUUID, content, deckURL string, sentAt int64) (int64, error) {
	if r.pool == nil {
		return 0, errors.New("db pool is nil")
	}

	const insertSQL = `
		INSERT INTO pitch_messages (sender_id, receiver_id, content, deck_url, status, sent_at)
		SELECT s.id, rcv.id, $3, $4, 'sent', $5
		FROM users s, users rcv
		WHERE s.uuid = $1 AND rcv.uuid = $2
		RETURNING id
	`

	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dbID int64
	row := r.pool.QueryRow(ctxTimeout, insertSQL, senderUUID, receiverUUID, content, deckURL, sentAt)
	if err := row.Scan(&dbID); err != nil {
		return 0, fmt.Errorf("insert pitch: %w", err)
	}
	return dbID, nil
}

// UpdateStatus advances pitches addressed to receiverUUID to the given
// status and returns the distinct sender UUIDs to notify. Archived pitches
// are final and are never advanced again.
func (r *PostgresPitchStore) UpdateStatus(ctx context.Context, receiverUUID, status string, messageIDs []string) ([]string, error) {
	if r.pool == nil {
		return nil, errors.New("db pool is nil")
	}
	if !validStatusTransition(status) {
		return nil, fmt.Errorf("invalid pitch status: %s", status)
	}
	if len(messageIDs) == 0 {
		return nil, nil
	}

	const updateSQL = `
		UPDATE pitch_messages m
		SET status = $2
		FROM users u
		WHERE m.receiver_id = u.id
		  AND u.uuid = $1
		  AND m.id = ANY($3)
		  AND m.status <> 'archived'
		  AND m.status <> $2
		RETURNING (SELECT s.uuid FROM users s WHERE s.id = m.sender_id) AS sender_uuid
	`

	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ids := make([]int64, 0, len(messageIDs))
	for _, idStr := range messageIDs {
		var id int64
		if _, err := fmt.Sscanf(idStr, "%d", &id); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctxTimeout, updateSQL, receiverUUID, status, ids)
	if err != nil {
		return nil, fmt.Errorf("update pitch status: %w", err)
	}
	defer rows.Close()

	senderUUIDs := make([]string, 0)
	seen := make(map[string]bool)
	for rows.Next() {
		var senderUUID string
		if err := rows.Scan(&senderUUID); err != nil {
			return nil, fmt.Errorf("scan sender uuid: %w", err)
		}
		if !seen[senderUUID] {
			senderUUIDs = append(senderUUIDs, senderUUID)
			seen[senderUUID] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return senderUUIDs, nil
}

// GetThread fetches the pitch thread between two users, oldest first.
func (r *PostgresPitchStore) GetThread(ctx context.Context, userUUID, peerUUID string, limit int, beforeEpoch int64) ([]ThreadItem, error) {
	if r.pool == nil {
		return nil, errors.New("db pool is nil")
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	const querySQL = `
		SELECT
			s.uuid AS sender_uuid,
			rcv.uuid AS receiver_uuid,
			m.content,
			m.deck_url,
			m.status,
			m.sent_at
		FROM pitch_messages m
		JOIN users s ON m.sender_id = s.id
		JOIN users rcv ON m.receiver_id = rcv.id
		WHERE (
			(s.uuid = $1 AND rcv.uuid = $2)
			OR
			(s.uuid = $2 AND rcv.uuid = $1)
		)
		AND m.sent_at < $3
		ORDER BY m.sent_at ASC
		LIMIT $4
	`

	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctxTimeout, querySQL, userUUID, peerUUID, beforeEpoch, limit)
	if err != nil {
		return nil, fmt.Errorf("query pitch thread: %w", err)
	}
	defer rows.Close()

	result := make([]ThreadItem, 0, limit)
	for rows.Next() {
		var item ThreadItem
		if err := rows.Scan(&item.SenderID, &item.ReceiverID, &item.Content, &item.DeckURL, &item.Status, &item.SentAt); err != nil {
			return nil, fmt.Errorf("scan pitch: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}

// GetUserContact resolves a user's display name and email for offline
// notification delivery.
func (r *PostgresPitchStore) GetUserContact(ctx context.Context, userUUID string) (string, string, error) {
	if r.pool == nil {
		return "", "", errors.New("db pool is nil")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var name, email string
	row := r.pool.QueryRow(ctxTimeout, "SELECT name, email FROM users WHERE uuid = $1", userUUID)
	if err := row.Scan(&name, &email); err != nil {
		return "", "", fmt.Errorf("resolve user contact: %w", err)
	}
	return name, email, nil
}
