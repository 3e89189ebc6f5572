package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for the notification
// inbox.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// ListLatestNotifications retrieves up to limit notifications, newest first.
func (r *PgxNotificationRepository) ListLatestNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, type, head, content, transaction_id, is_read, timestamp
		FROM notifications WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var n domain.Notification
		err := row.Scan(&n.NotificationID, &n.UserID, &n.Type, &n.Head, &n.Content, &n.TransactionID, &n.IsRead, &n.Timestamp)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}
	return notifications, nil
}

// SaveNotification persists a new notification.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, type, head, content, transaction_id, is_read, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		notification.NotificationID, notification.UserID, notification.Type,
		notification.Head, notification.Content, notification.TransactionID,
		notification.IsRead, notification.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// MarkAllRead flips every unread notification for the user and reports how
// many changed.
func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE;`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

type PgxStoryRepository struct {
	BaseRepository
}

// newPgxStoryRepository creates a new repository for money stories and
// monthly summaries.
func newPgxStoryRepository(pool *pgxpool.Pool) portsrepo.StoryRepositoryFacade {
	return &PgxStoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StoryRepositoryFacade = (*PgxStoryRepository)(nil)

// FindLatestStory retrieves the newest story for a user.
func (r *PgxStoryRepository) FindLatestStory(ctx context.Context, userID string) (*domain.MoneyStory, error) {
	query := `
		SELECT story_id, user_id, month, monthly_summ_head, monthly_summ_content,
		       earning_head, earning_content, spike_header, spike_content,
		       smart_header, smart_content, timestamp
		FROM money_stories WHERE user_id = $1 ORDER BY timestamp DESC LIMIT 1;`
	var s domain.MoneyStory
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&s.StoryID, &s.UserID, &s.Month, &s.MonthlySummHead, &s.MonthlySummContent,
		&s.EarningHead, &s.EarningContent, &s.SpikeHeader, &s.SpikeContent,
		&s.SmartHeader, &s.SmartContent, &s.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest story: %w", err)
	}
	return &s, nil
}

// FindMonthlySummary retrieves the aggregate for a calendar month.
func (r *PgxStoryRepository) FindMonthlySummary(ctx context.Context, userID string, year, month int) (*domain.MonthlySummary, error) {
	query := `
		SELECT user_id, year, month, total_income_paise, total_expense_paise, biggest_spike
		FROM monthly_summaries WHERE user_id = $1 AND year = $2 AND month = $3;`
	var s domain.MonthlySummary
	err := r.Pool.QueryRow(ctx, query, userID, year, month).Scan(
		&s.UserID, &s.Year, &s.Month, &s.TotalIncomePaise, &s.TotalExpensePaise, &s.BiggestSpike,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find monthly summary: %w", err)
	}
	return &s, nil
}

// SaveStory persists a story written by the analytics pipeline.
func (r *PgxStoryRepository) SaveStory(ctx context.Context, story domain.MoneyStory) error {
	query := `
		INSERT INTO money_stories (
			story_id, user_id, month, monthly_summ_head, monthly_summ_content,
			earning_head, earning_content, spike_header, spike_content,
			smart_header, smart_content, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		story.StoryID, story.UserID, story.Month, story.MonthlySummHead, story.MonthlySummContent,
		story.EarningHead, story.EarningContent, story.SpikeHeader, story.SpikeContent,
		story.SmartHeader, story.SmartContent, story.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save story: %w", err)
	}
	return nil
}

// UpsertMonthlySummary stores the aggregate for a calendar month.
func (r *PgxStoryRepository) UpsertMonthlySummary(ctx context.Context, summary domain.MonthlySummary) error {
	query := `
		INSERT INTO monthly_summaries (user_id, year, month, total_income_paise, total_expense_paise, biggest_spike)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, year, month) DO UPDATE SET
			total_income_paise = EXCLUDED.total_income_paise,
			total_expense_paise = EXCLUDED.total_expense_paise,
			biggest_spike = EXCLUDED.biggest_spike;
	`
	_, err := r.Pool.Exec(ctx, query,
		summary.UserID, summary.Year, summary.Month,
		summary.TotalIncomePaise, summary.TotalExpensePaise, summary.BiggestSpike,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert monthly summary: %w", err)
	}
	return nil
}

type PgxInboundMessageRepository struct {
	BaseRepository
}

// newPgxInboundMessageRepository creates a new repository for captured
// inbound messages.
func newPgxInboundMessageRepository(pool *pgxpool.Pool) portsrepo.InboundMessageRepositoryFacade {
	return &PgxInboundMessageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InboundMessageRepositoryFacade = (*PgxInboundMessageRepository)(nil)

const inboundMessageColumns = `message_id, user_id, sender, body, timestamp, category, amount_paise, metadata, created_at, last_updated_at`

func scanInboundMessage(row pgx.Row) (domain.InboundMessage, error) {
	var m domain.InboundMessage
	err := row.Scan(
		&m.MessageID, &m.UserID, &m.Sender, &m.Body, &m.Timestamp,
		&m.Category, &m.AmountPaise, &m.Metadata, &m.CreatedAt, &m.LastUpdatedAt,
	)
	return m, err
}

// FindInboundMessageByID retrieves a user's captured message.
func (r *PgxInboundMessageRepository) FindInboundMessageByID(ctx context.Context, userID, messageID string) (*domain.InboundMessage, error) {
	query := `SELECT ` + inboundMessageColumns + ` FROM inbound_messages WHERE user_id = $1 AND message_id = $2;`
	message, err := scanInboundMessage(r.Pool.QueryRow(ctx, query, userID, messageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inbound message: %w", err)
	}
	return &message, nil
}

// ListInboundMessagesByUser retrieves a page of captured messages, newest
// first.
func (r *PgxInboundMessageRepository) ListInboundMessagesByUser(ctx context.Context, userID string, limit, offset int) ([]domain.InboundMessage, error) {
	query := `SELECT ` + inboundMessageColumns + ` FROM inbound_messages WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query inbound messages: %w", err)
	}
	defer rows.Close()

	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InboundMessage, error) {
		return scanInboundMessage(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan inbound messages: %w", err)
	}
	return messages, nil
}

// SaveInboundMessage persists a captured message.
func (r *PgxInboundMessageRepository) SaveInboundMessage(ctx context.Context, message domain.InboundMessage) error {
	query := `
		INSERT INTO inbound_messages (message_id, user_id, sender, body, timestamp, category, amount_paise, metadata, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		message.MessageID, message.UserID, message.Sender, message.Body, message.Timestamp,
		message.Category, message.AmountPaise, message.Metadata, message.CreatedAt, message.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save inbound message: %w", err)
	}
	return nil
}

// UpdateInboundMessage persists reclassification changes.
func (r *PgxInboundMessageRepository) UpdateInboundMessage(ctx context.Context, message domain.InboundMessage) error {
	query := `
		UPDATE inbound_messages
		SET category = $1, amount_paise = $2, metadata = $3, last_updated_at = $4
		WHERE user_id = $5 AND message_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		message.Category, message.AmountPaise, message.Metadata, message.LastUpdatedAt,
		message.UserID, message.MessageID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inbound message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInboundMessage removes a captured message.
func (r *PgxInboundMessageRepository) DeleteInboundMessage(ctx context.Context, userID, messageID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM inbound_messages WHERE user_id = $1 AND message_id = $2;`, userID, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete inbound message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
