package checkout

import (
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/db"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/pkg/errors"
)

// PaymentReader is the slice of storage the verifier needs.
type PaymentReader interface {
	GetPaymentByID(paymentID int) (*models.Payment, error)
}

// Verifier answers the authoritative payment status. The IPN-driven store
// is the only writer; verification is a repeatable read and never
// transitions state itself.
type Verifier struct {
	Payments PaymentReader
}

// Verify returns the current status for a payment, or nil when the
// payment does not exist.
func (v *Verifier) Verify(paymentID int) (*models.PaymentVerification, error) {
	payment, err := v.Payments.GetPaymentByID(paymentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed getting payment")
	}

	if payment == nil {
		return nil, nil
	}

	verification := models.PaymentVerification{
		TransactionID: payment.TransactionID,
		OrderNumber:   payment.OrderNumber,
	}

	if payment.Status != nil {
		verification.Status = payment.Status.Name
		verification.IsCompleted = payment.Status.ID == db.ConstPaymentStatuses.Approved.ID
	}

	return &verification, nil
}
