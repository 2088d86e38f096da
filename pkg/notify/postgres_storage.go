package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propstack/notifykit/pkg/pg"
)

// PostgresStorage is a pgx-backed implementation of the Storage interface.
// The schema lives in pkg/pg/migrations.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed notification storage over an
// established connection pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Create(ctx context.Context, notif Notification) error {
	if notif.ID == "" {
		return fmt.Errorf("%w: notification ID is required", ErrInvalidNotification)
	}
	if notif.UserID == "" {
		return fmt.Errorf("%w: user ID is required", ErrInvalidNotification)
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	var metadata []byte
	if notif.Metadata != nil {
		var err error
		if metadata, err = json.Marshal(notif.Metadata); err != nil {
			return fmt.Errorf("%w: metadata is not serializable: %v", ErrInvalidNotification, err)
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, event_type, title, message, metadata, read, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message,
		metadata, notif.Read, notif.ReadAt, notif.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func (s *PostgresStorage) FindByID(ctx context.Context, notifID string) (*Notification, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, event_type, title, message, metadata, read, read_at, created_at
		FROM notifications
		WHERE id = $1`,
		notifID,
	)
	return scanNotification(row)
}

func (s *PostgresStorage) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	query := `
		SELECT id, user_id, event_type, title, message, metadata, read, read_at, created_at
		FROM notifications
		WHERE user_id = $1`
	if !opts.IncludeRead {
		query += ` AND NOT read`
	}
	query += ` ORDER BY created_at DESC`

	args := []any{userID}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		notif, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notif)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *PostgresStorage) MarkRead(ctx context.Context, notifID, userID string) (*Notification, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE notifications
		SET read = TRUE, read_at = COALESCE(read_at, now())
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, event_type, title, message, metadata, read, read_at, created_at`,
		notifID, userID,
	)
	return scanNotification(row)
}

func (s *PostgresStorage) MarkAllRead(ctx context.Context, userID string) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE notifications
		SET read = TRUE, read_at = now()
		WHERE user_id = $1 AND NOT read`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func scanNotification(row pgx.Row) (*Notification, error) {
	var notif Notification
	var metadata []byte

	err := row.Scan(
		&notif.ID, &notif.UserID, &notif.Type, &notif.Title, &notif.Message,
		&metadata, &notif.Read, &notif.ReadAt, &notif.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &notif.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode notification metadata: %w", err)
		}
	}
	return &notif, nil
}
