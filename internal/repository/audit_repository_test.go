package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bccodingclub/notice-board-api/internal/models"
)

func newAuditRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAuditRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	id := "notice-1"
	log := &models.AuditLog{
		Action:     models.AuditActionNoticeCreate,
		Resource:   "notice",
		ResourceID: &id,
		IPAddress:  "127.0.0.1",
	}
	require.NoError(t, repo.CreateAuditLog(context.Background(), log))
	assert.NotEmpty(t, log.ID, "id is assigned before insert")
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListRecent(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "action", "resource", "resource_id", "new_values", "ip_address", "user_agent", "created_at"}).
		AddRow("a1", models.AuditActionNoticeDelete, "notice", nil, []byte(`{}`), "127.0.0.1", "test", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, action, resource, resource_id, new_values, ip_address, user_agent, created_at FROM audit_logs ORDER BY created_at DESC LIMIT 50")).
		WillReturnRows(rows)

	logs, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionNoticeDelete, logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
