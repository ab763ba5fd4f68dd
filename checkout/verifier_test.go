package checkout

import (
	"testing"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/db"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPaymentReader struct {
	payment *models.Payment
	err     error
	calls   int
}

func (s *stubPaymentReader) GetPaymentByID(paymentID int) (*models.Payment, error) {
	s.calls++
	return s.payment, s.err
}

func TestVerifier_Verify_Approved(t *testing.T) {
	reader := &stubPaymentReader{
		payment: &models.Payment{
			ID:            7,
			OrderNumber:   "FL-abc123",
			TransactionID: "tx-1",
			Status:        &db.ConstPaymentStatuses.Approved,
		},
	}
	v := Verifier{Payments: reader}

	verification, err := v.Verify(7)

	require.NoError(t, err)
	assert.True(t, verification.IsCompleted)
	assert.Equal(t, "Aprobado", verification.Status)
	assert.Equal(t, "tx-1", verification.TransactionID)
	assert.Equal(t, "FL-abc123", verification.OrderNumber)
}

func TestVerifier_Verify_Pending(t *testing.T) {
	reader := &stubPaymentReader{
		payment: &models.Payment{
			ID:     7,
			Status: &db.ConstPaymentStatuses.Processing,
		},
	}
	v := Verifier{Payments: reader}

	verification, err := v.Verify(7)

	require.NoError(t, err)
	assert.False(t, verification.IsCompleted)
	assert.Equal(t, "Procesando", verification.Status)
}

func TestVerifier_Verify_NotFound(t *testing.T) {
	v := Verifier{Payments: &stubPaymentReader{}}

	verification, err := v.Verify(99)

	require.NoError(t, err)
	assert.Nil(t, verification)
}

func TestVerifier_Verify_StorageError(t *testing.T) {
	v := Verifier{Payments: &stubPaymentReader{err: errors.New("boom")}}

	_, err := v.Verify(7)

	assert.Error(t, err)
}

func TestVerifier_Verify_IsRepeatable(t *testing.T) {
	reader := &stubPaymentReader{
		payment: &models.Payment{
			ID:     7,
			Status: &db.ConstPaymentStatuses.Approved,
		},
	}
	v := Verifier{Payments: reader}

	first, err := v.Verify(7)
	require.NoError(t, err)
	second, err := v.Verify(7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, reader.calls)
}
