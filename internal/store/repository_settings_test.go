package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
)

func TestGetSetting_Found(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM settings WHERE name = ?")).
		WithArgs("lwd.serveruri").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("https://lightd-main.zcashfr.io:443"))

	value, err := repo.GetSetting(context.Background(), "lwd.serveruri")

	require.NoError(t, err)
	assert.Equal(t, "https://lightd-main.zcashfr.io:443", value)
}

func TestGetSetting_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("lwd.serveruri").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.GetSetting(context.Background(), "lwd.serveruri")

	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestGetSetting_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT value FROM settings").WillReturnError(sql.ErrConnDone)

	_, err := repo.GetSetting(context.Background(), "lwd.serveruri")

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSetSetting_Upserts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings (name,value) VALUES (?,?) ON CONFLICT(name)")).
		WithArgs("lwd.serveruri", "https://lwdv3.zecwallet.co").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SetSetting(context.Background(), "lwd.serveruri", "https://lwdv3.zecwallet.co")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSetting_CancelledContext(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSettingsRepository(db, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	mock.ExpectExec("INSERT INTO settings").WillReturnError(busyError())
	cancel()

	err := repo.SetSetting(ctx, "k", "v")

	require.Error(t, err)
}
