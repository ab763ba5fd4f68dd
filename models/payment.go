package models

import (
	"time"

	"github.com/thedevsaddam/govalidator"
)

type Payment struct {
	ID            int            `json:"id,omitempty"`
	Method        *PaymentMethod `json:"method,omitempty"`
	Amount        int            `json:"amount,omitempty"`
	OrderID       int            `json:"order_id,omitempty"`
	OrderNumber   string         `json:"order_number,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Status        *PaymentStatus `json:"status,omitempty"`
	Created       time.Time      `json:"created"`
	Updated       time.Time      `json:"updated"`
}

type PaymentMethod struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type PaymentStatus struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// OrderIntent is the pending order recorded while the buyer is on the
// provider's hosted form. Absence means no payment is in flight.
type OrderIntent struct {
	OrderID     int    `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Total       int    `json:"total"`
	PaymentID   int    `json:"payment_id"`
}

// PaymentSession binds one form token to one checkout attempt. The token
// is single use and must never be reused across orders.
type PaymentSession struct {
	FormToken     string `json:"form_token"`
	PublicKey     string `json:"public_key"`
	PaymentID     int    `json:"payment_id"`
	TransactionID string `json:"transaction_id,omitempty"`
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
}

type OutcomeStatus string

const (
	OutcomePaid      OutcomeStatus = "PAID"
	OutcomeRefused   OutcomeStatus = "REFUSED"
	OutcomeCancelled OutcomeStatus = "CANCELLED"
	OutcomeAbandoned OutcomeStatus = "ABANDONED"
	OutcomePending   OutcomeStatus = "PENDING"
	OutcomeUnknown   OutcomeStatus = "UNKNOWN"
)

type PaymentOutcome struct {
	Status       OutcomeStatus `json:"status"`
	OrderID      int           `json:"order_id,omitempty"`
	OrderNumber  string        `json:"order_number,omitempty"`
	ErrorCode    string        `json:"error_code,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type PaymentVerification struct {
	Status        string `json:"status"`
	IsCompleted   bool   `json:"is_completed"`
	TransactionID string `json:"transaction_id,omitempty"`
	OrderNumber   string `json:"order_number,omitempty"`
}

type CreatePaymentSessionOpts struct {
	OrderID int `json:"order_id"`
}

var CreatePaymentSessionRules = govalidator.MapData{
	"order_id": []string{"required", "numeric"},
}
