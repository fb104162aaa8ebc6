package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bankist/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepository_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditRepository(db)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	created := at.Add(time.Millisecond)
	amount := "-100.00"

	rec := &model.AuditRecord{
		EventType:  "account.updated",
		Username:   "af",
		SessionID:  "sid-1",
		Amount:     &amount,
		Reason:     "transfer",
		OccurredAt: at,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO audit_events")).
		WithArgs("account.updated", "af", "sid-1", "-100.00", "transfer", at).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))

	require.NoError(t, repo.Record(context.Background(), rec))
	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, created, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_RecordWithoutAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditRepository(db)
	rec := &model.AuditRecord{EventType: "login.failed", Username: "zz"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO audit_events")).
		WithArgs("login.failed", "zz", "", nil, "", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	assert.Error(t, repo.Record(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_ListByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditRepository(db)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "event_type", "username", "session_id", "amount", "reason", "occurred_at", "created_at"}).
		AddRow(2, "loan.applied", "af", "sid-1", "1000.00", "", at.Add(time.Second), at.Add(time.Second)).
		AddRow(1, "session.started", "af", "sid-1", nil, "", at, at)

	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_events")).
		WithArgs("af", 10).
		WillReturnRows(rows)

	records, err := repo.ListByUsername(context.Background(), "af", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Amount)
	assert.Equal(t, "1000.00", *records[0].Amount)
	assert.Nil(t, records[1].Amount)
	assert.Equal(t, "session.started", records[1].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
