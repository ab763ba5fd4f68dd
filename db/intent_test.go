package db

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderIntent_Roundtrip(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT\s+payload\s+FROM\s+order_intent`).
		WithArgs("cart-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).
			AddRow(`{"order_id":7,"order_number":"FL-abc123","total":15900,"payment_id":3}`))

	intent, err := db.GetOrderIntent("cart-1")

	require.NoError(t, err)
	require.NotNil(t, intent)
	assert.Equal(t, 7, intent.OrderID)
	assert.Equal(t, "FL-abc123", intent.OrderNumber)
	assert.Equal(t, 15900, intent.Total)
	assert.Equal(t, 3, intent.PaymentID)
}

func TestGetOrderIntent_Missing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT\s+payload\s+FROM\s+order_intent`).
		WithArgs("cart-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	intent, err := db.GetOrderIntent("cart-1")

	require.NoError(t, err)
	assert.Nil(t, intent)
}

// A corrupt payload means no payment in flight, never an error.
func TestGetOrderIntent_UnparsablePayload(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT\s+payload\s+FROM\s+order_intent`).
		WithArgs("cart-1").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).
			AddRow(`{"order_id":`))

	intent, err := db.GetOrderIntent("cart-1")

	require.NoError(t, err)
	assert.Nil(t, intent)
}

func TestClearOrderIntent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE\s+FROM\s+order_intent`).
		WithArgs("cart-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := db.ClearOrderIntent("cart-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearOrderIntentsByOrder(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE\s+FROM\s+order_intent`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := db.ClearOrderIntentsByOrder(7)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
