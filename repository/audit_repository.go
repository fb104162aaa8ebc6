package repository

import (
	"context"
	"database/sql"

	"bankist/logger"
	"bankist/model"

	"github.com/sirupsen/logrus"
)

// IAuditRepository defines the contract for audit trail database operations.
type IAuditRepository interface {
	Record(ctx context.Context, record *model.AuditRecord) error
	ListByUsername(ctx context.Context, username string, limit int) ([]*model.AuditRecord, error)
}

// AuditRepository implements IAuditRepository on Postgres.
type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

// Record inserts one audit row and fills in its ID and creation time.
func (r *AuditRepository) Record(ctx context.Context, record *model.AuditRecord) error {
	log := logger.Log.WithFields(logrus.Fields{
		"event_type": record.EventType,
		"username":   record.Username,
	})
	log.Debug("Executing query to record audit event")

	var amount sql.NullString
	if record.Amount != nil {
		amount = sql.NullString{String: *record.Amount, Valid: true}
	}

	query := `INSERT INTO audit_events (event_type, username, session_id, amount, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		record.EventType, record.Username, record.SessionID, amount, record.Reason, record.OccurredAt,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute record audit event query")
		return err
	}
	return nil
}

// ListByUsername returns the newest audit rows for a username, newest first.
func (r *AuditRepository) ListByUsername(ctx context.Context, username string, limit int) ([]*model.AuditRecord, error) {
	log := logger.Log.WithField("username", username)
	log.Debug("Executing query to list audit events by username")

	query := `
		SELECT id, event_type, username, session_id, amount, reason, occurred_at, created_at
		FROM audit_events
		WHERE username = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, username, limit)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for audit events by username")
		return nil, err
	}
	defer rows.Close()

	var records []*model.AuditRecord
	for rows.Next() {
		var rec model.AuditRecord
		var amount sql.NullString
		if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Username, &rec.SessionID, &amount, &rec.Reason, &rec.OccurredAt, &rec.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan audit event row")
			return nil, err
		}
		if amount.Valid {
			v := amount.String
			rec.Amount = &v
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
