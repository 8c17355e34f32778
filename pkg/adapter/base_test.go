package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSQLStore_Close(t *testing.T) {
	tests := []struct {
		name    string
		setupDB bool
	}{
		{name: "close with nil DB", setupDB: false},
		{name: "close with open DB", setupDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLStore{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			require.NoError(t, base.Close())
			assert.False(t, base.IsConnected())
		})
	}
}

func TestBaseSQLStore_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		args      []any
		expectErr bool
		errMsg    string
	}{
		{
			name:      "exec without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "exec success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM ExemploPratico WHERE ObjetoFoco").
					WithArgs("View").
					WillReturnResult(sqlmock.NewResult(0, 3))
			},
			sql:  "DELETE FROM ExemploPratico WHERE ObjetoFoco = $1",
			args: []any{"View"},
		},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLStore{}
			var mock sqlmock.Sqlmock

			if tt.setupDB {
				db, m, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				base.DB = db
				mock = m
				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
			}

			err := base.Exec(context.Background(), tt.sql, tt.args...)
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}

			if mock != nil {
				assert.NoError(t, mock.ExpectationsWereMet())
			}
		})
	}
}

func TestBaseSQLStore_ExecNotConnected(t *testing.T) {
	base := &BaseSQLStore{}
	assert.ErrorIs(t, base.Exec(context.Background(), "SELECT 1"), ErrNotConnected)
	assert.ErrorIs(t, base.DeleteAll(context.Background()), ErrNotConnected)
}

func TestBaseSQLStore_DeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM ExemploPratico").WillReturnResult(sqlmock.NewResult(0, 12))

	base := &BaseSQLStore{DB: db}
	require.NoError(t, base.DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "category", "identifier", "compliant", "explanation", "distance"}).
		AddRow(int64(1), "View", "vwUsuarioProcesso", true, "Compliant: standard view format.", 0.125).
		AddRow(int64(2), "Tabela", "Tabela_Errada", false, nil, 0.5)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	r, err := db.QueryContext(context.Background(), "SELECT")
	require.NoError(t, err)

	matches, err := ScanMatches(r)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, int64(1), matches[0].ID)
	assert.Equal(t, "vwUsuarioProcesso", matches[0].Identifier)
	assert.True(t, matches[0].Compliant)
	assert.InDelta(t, 0.125, matches[0].Distance, 1e-9)

	assert.False(t, matches[1].Compliant)
	assert.Empty(t, matches[1].Explanation)
}

func TestScanMatches_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "category", "identifier", "compliant", "explanation", "distance"}).
		AddRow(int64(1), "View", "vwA", true, "ok", 0.1).
		RowError(0, assert.AnError)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	r, err := db.QueryContext(context.Background(), "SELECT")
	require.NoError(t, err)

	_, err = ScanMatches(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error iterating examples")
}
