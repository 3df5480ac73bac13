package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graficaerp/backend/internal/domain/billing"
	"github.com/graficaerp/backend/internal/domain/shared"
)

func TestGormWebhookEventRepository_Insert(t *testing.T) {
	t.Run("inserts a new event", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWebhookEventRepository(gormDB)

		event, err := billing.NewWebhookEvent("evt_123", "invoice.paid", `{"id":"evt_123"}`)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "webhook_events"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Insert(context.Background(), event)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a duplicate event id to ErrAlreadyExists", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWebhookEventRepository(gormDB)

		event, err := billing.NewWebhookEvent("evt_123", "invoice.paid", `{"id":"evt_123"}`)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "webhook_events"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_webhook_events_event_id"})

		err = repo.Insert(context.Background(), event)

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
