package db

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminalPaymentStatus(t *testing.T) {
	cases := []struct {
		name     string
		statusID int
		terminal bool
	}{
		{"created", ConstPaymentStatuses.Created.ID, false},
		{"processing", ConstPaymentStatuses.Processing.ID, false},
		{"approved", ConstPaymentStatuses.Approved.ID, true},
		{"rejected", ConstPaymentStatuses.Rejected.ID, false},
		{"abandoned", ConstPaymentStatuses.Abandoned.ID, false},
		{"reversed", ConstPaymentStatuses.Reversed.ID, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.terminal, IsTerminalPaymentStatus(c.statusID))
		})
	}
}

func TestUpdatePaymentStatus_TransitionsOpenPayment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+status_id\s+FROM\s+payment`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"status_id"}).
			AddRow(ConstPaymentStatuses.Created.ID))
	mock.ExpectPrepare(`UPDATE\s+payment`).
		ExpectExec().
		WithArgs(ConstPaymentStatuses.Approved.ID, "trx-1", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.UpdatePaymentStatus(10, ConstPaymentStatuses.Approved.ID, "trx-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A late rejection notification must not move an approved payment. No
// UPDATE is expected at all.
func TestUpdatePaymentStatus_KeepsTerminalStatus(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+status_id\s+FROM\s+payment`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"status_id"}).
			AddRow(ConstPaymentStatuses.Approved.ID))
	mock.ExpectCommit()

	err := db.UpdatePaymentStatus(10, ConstPaymentStatuses.Rejected.ID, "trx-2")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatus_KeepsReversedStatus(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+status_id\s+FROM\s+payment`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"status_id"}).
			AddRow(ConstPaymentStatuses.Reversed.ID))
	mock.ExpectCommit()

	err := db.UpdatePaymentStatus(10, ConstPaymentStatuses.Approved.ID, "trx-3")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatus_UnknownPayment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+status_id\s+FROM\s+payment`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"status_id"}))
	mock.ExpectRollback()

	err := db.UpdatePaymentStatus(99, ConstPaymentStatuses.Approved.ID, "trx-4")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
