package db

import (
	"database/sql"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/pkg/errors"
)

var ConstPaymentStatuses = struct {
	Created    models.PaymentStatus
	Processing models.PaymentStatus
	Approved   models.PaymentStatus
	Rejected   models.PaymentStatus
	Abandoned  models.PaymentStatus
	Reversed   models.PaymentStatus
}{
	Created: models.PaymentStatus{
		ID:   1,
		Name: "Creado",
	},
	Processing: models.PaymentStatus{
		ID:   2,
		Name: "Procesando",
	},
	Approved: models.PaymentStatus{
		ID:   3,
		Name: "Aprobado",
	},
	Rejected: models.PaymentStatus{
		ID:   4,
		Name: "Rechazado",
	},
	Abandoned: models.PaymentStatus{
		ID:   5,
		Name: "Abandonado",
	},
	Reversed: models.PaymentStatus{
		ID:   6,
		Name: "Reversado",
	},
}

var ConstPaymentMethods = struct {
	Izipay        models.PaymentMethod
	Transferencia models.PaymentMethod
}{
	Izipay: models.PaymentMethod{
		ID:   1,
		Name: "Izipay",
	},
	Transferencia: models.PaymentMethod{
		ID:   2,
		Name: "Transferencia",
	},
}

// IsTerminalPaymentStatus reports whether a status never regresses. IPN
// retries and late browser returns must not move a payment out of these.
func IsTerminalPaymentStatus(statusID int) bool {
	return statusID == ConstPaymentStatuses.Approved.ID ||
		statusID == ConstPaymentStatuses.Reversed.ID
}

// GatewayPaymentStatuses maps the gateway's order statuses to local ones.
var GatewayPaymentStatuses = map[string]models.PaymentStatus{
	"PAID":      ConstPaymentStatuses.Approved,
	"UNPAID":    ConstPaymentStatuses.Rejected,
	"ABANDONED": ConstPaymentStatuses.Abandoned,
	"RUNNING":   ConstPaymentStatuses.Processing,
}

type PaymentStorage interface {
	InsertPayment(*InsertPaymentOpts) (int, error)
	GetPaymentByID(paymentID int) (*models.Payment, error)
	UpdatePaymentStatus(paymentID int, statusID int, transactionID string) error
}

type InsertPaymentOpts struct {
	MethodID      int    `json:"method_id"`
	Amount        int    `json:"amount"`
	OrderID       int    `json:"order_id"`
	StatusID      int    `json:"status_id"`
	TransactionID string `json:"transaction_id"`
}

const (
	insertPayment = `
	INSERT
		payment
	SET
		method_id = :method_id,
		amount = :amount,
		order_id = :order_id,
		status_id = :status_id,
		transaction_id = :transaction_id
	`

	getPaymentByID = `
	SELECT
		payment.id,
		payment.amount,
		payment.order_id,
		payment.status_id,
		payment.method_id,
		payment.transaction_id,
		orders.number
	FROM
		payment
	INNER JOIN
		orders ON (orders.id = payment.order_id)
	WHERE
		payment.active = true AND
		payment.id = ?
	`

	getPaymentStatusID = `
	SELECT
		status_id
	FROM
		payment
	WHERE
		active = true AND
		id = ?
	`

	updatePaymentStatus = `
	UPDATE
		payment
	SET
		status_id = :status_id,
		transaction_id = :transaction_id,
		updated = current_timestamp()
	WHERE
		id = :payment_id
	`
)

func (db *DB) InsertPayment(opts *InsertPaymentOpts) (int, error) {
	tx, err := db.NewTx()
	if err != nil {
		return 0, errors.Wrap(err, "failed to start transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}

		tx.Commit()
	}()

	id, newErr := db.insertPaymentTx(tx, opts)
	if newErr != nil {
		err = newErr
		return 0, err
	}

	return id, nil
}

func (db *DB) insertPaymentTx(tx Tx, opts *InsertPaymentOpts) (int, error) {
	stmt, err := tx.PrepareNamed(insertPayment)
	if err != nil {
		return 0, err
	}

	args := map[string]interface{}{
		"method_id":      opts.MethodID,
		"amount":         opts.Amount,
		"order_id":       opts.OrderID,
		"status_id":      opts.StatusID,
		"transaction_id": opts.TransactionID,
	}

	result, err := stmt.Exec(args)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if int(rowsAffected) != 1 {
		return 0, errors.Errorf("expected %d and inserted %d", 1, rowsAffected)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

func (db *DB) GetPaymentByID(paymentID int) (*models.Payment, error) {
	var (
		payment  models.Payment
		statusID int
		methodID int
	)

	row := db.QueryRow(db.Rebind(getPaymentByID), paymentID)
	if err := row.Scan(
		&payment.ID,
		&payment.Amount,
		&payment.OrderID,
		&statusID,
		&methodID,
		&payment.TransactionID,
		&payment.OrderNumber,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	payment.Status = paymentStatusByID(statusID)
	payment.Method = paymentMethodByID(methodID)

	return &payment, nil
}

// UpdatePaymentStatus transitions a payment unless it already reached a
// terminal status.
func (db *DB) UpdatePaymentStatus(paymentID int, statusID int, transactionID string) error {
	tx, err := db.NewTx()
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}

		tx.Commit()
	}()

	var currentStatusID int
	row := tx.QueryRow(tx.Rebind(getPaymentStatusID), paymentID)
	if newErr := row.Scan(&currentStatusID); newErr != nil {
		if newErr == sql.ErrNoRows {
			err = errors.Errorf("payment %d not found", paymentID)
			return err
		}

		err = newErr
		return err
	}

	if IsTerminalPaymentStatus(currentStatusID) {
		return nil
	}

	err = updatePaymentStatusTx(tx, paymentID, statusID, transactionID)
	if err != nil {
		return err
	}

	return nil
}

func updatePaymentStatusTx(tx Tx, paymentID int, statusID int, transactionID string) error {
	stmt, err := tx.PrepareNamed(updatePaymentStatus)
	if err != nil {
		return err
	}

	args := map[string]interface{}{
		"status_id":      statusID,
		"transaction_id": transactionID,
		"payment_id":     paymentID,
	}

	result, err := stmt.Exec(args)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if int(rowsAffected) != 1 {
		return errors.Errorf("expected %d and updated %d", 1, rowsAffected)
	}

	return nil
}

func paymentStatusByID(statusID int) *models.PaymentStatus {
	statuses := []models.PaymentStatus{
		ConstPaymentStatuses.Created,
		ConstPaymentStatuses.Processing,
		ConstPaymentStatuses.Approved,
		ConstPaymentStatuses.Rejected,
		ConstPaymentStatuses.Abandoned,
		ConstPaymentStatuses.Reversed,
	}
	for _, status := range statuses {
		if status.ID == statusID {
			s := status
			return &s
		}
	}
	return nil
}

func paymentMethodByID(methodID int) *models.PaymentMethod {
	methods := []models.PaymentMethod{
		ConstPaymentMethods.Izipay,
		ConstPaymentMethods.Transferencia,
	}
	for _, method := range methods {
		if method.ID == methodID {
			m := method
			return &m
		}
	}
	return nil
}
