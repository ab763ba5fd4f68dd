// Package checkout resolves what happened to a payment after the buyer
// comes back from the hosted form, and provides the supporting pieces of
// that flow: form presentation, error mapping and status verification.
package checkout

import (
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/izipay"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
)

type State string

const (
	StateLoading State = "LOADING"
	StateSuccess State = "SUCCESS"
	StateFailed  State = "FAILED"
	StatePending State = "PENDING"
)

// ReturnParams carries the raw query or form parameters the gateway
// appended to the return redirect.
type ReturnParams struct {
	KrAnswer string
	KrHash   string
}

// Resolution is the terminal result for one return-page lifecycle.
type Resolution struct {
	State   State
	Outcome models.PaymentOutcome
	// ClearIntent tells the caller to drop the stored intent and any
	// cached cart totals. Set only on terminal success.
	ClearIntent bool
}

type Interpreter struct {
	Gateway *izipay.Client
}

// Resolve maps the gateway's signed answer, falling back to the stored
// intent when the buyer arrived without answer parameters. The returned
// state is terminal.
func (in *Interpreter) Resolve(params ReturnParams, intent *models.OrderIntent) Resolution {
	if params.KrAnswer == "" && params.KrHash == "" {
		return resolveWithoutAnswer(intent)
	}

	if !in.Gateway.ValidateReturnHash(params.KrAnswer, params.KrHash) {
		return failed(intent, models.OutcomeUnknown, "", "")
	}

	answer, err := izipay.ParseAnswer(params.KrAnswer)
	if err != nil {
		return failed(intent, models.OutcomeUnknown, "", "")
	}

	switch answer.OrderStatus {
	case izipay.OrderStatusPaid:
		resolution := Resolution{
			State:       StateSuccess,
			ClearIntent: true,
			Outcome: models.PaymentOutcome{
				Status: models.OutcomePaid,
			},
		}
		fillOrder(&resolution.Outcome, intent)
		return resolution
	case izipay.OrderStatusUnpaid, izipay.OrderStatusAbandoned:
		status, code, message := refusalDetail(answer)
		return failed(intent, status, code, message)
	default:
		resolution := Resolution{
			State: StatePending,
			Outcome: models.PaymentOutcome{
				Status: models.OutcomePending,
			},
		}
		fillOrder(&resolution.Outcome, intent)
		return resolution
	}
}

func resolveWithoutAnswer(intent *models.OrderIntent) Resolution {
	if intent == nil {
		return Resolution{
			State: StateFailed,
			Outcome: models.PaymentOutcome{
				Status: models.OutcomeUnknown,
			},
		}
	}

	resolution := Resolution{
		State: StatePending,
		Outcome: models.PaymentOutcome{
			Status: models.OutcomePending,
		},
	}
	fillOrder(&resolution.Outcome, intent)
	return resolution
}

// refusalDetail picks the terminal detail for an unpaid order out of the
// last transaction the gateway reports.
func refusalDetail(answer *izipay.Answer) (models.OutcomeStatus, string, string) {
	if answer.OrderStatus == izipay.OrderStatusAbandoned {
		return models.OutcomeAbandoned, "", ""
	}

	if len(answer.Transactions) == 0 {
		return models.OutcomeRefused, "", ""
	}

	transaction := answer.Transactions[len(answer.Transactions)-1]
	switch transaction.DetailedStatus {
	case "CANCELLED":
		return models.OutcomeCancelled, transaction.ErrorCode, transaction.ErrorMessage
	case "ABANDONED", "EXPIRED":
		return models.OutcomeAbandoned, transaction.ErrorCode, transaction.ErrorMessage
	default:
		return models.OutcomeRefused, transaction.ErrorCode, transaction.ErrorMessage
	}
}

func failed(intent *models.OrderIntent, status models.OutcomeStatus, code string, message string) Resolution {
	resolution := Resolution{
		State: StateFailed,
		Outcome: models.PaymentOutcome{
			Status:       status,
			ErrorCode:    code,
			ErrorMessage: message,
		},
	}
	// The intent stays put on failure so the buyer can retry the same
	// order without walking through checkout again.
	fillOrder(&resolution.Outcome, intent)
	return resolution
}

func fillOrder(outcome *models.PaymentOutcome, intent *models.OrderIntent) {
	if intent == nil {
		return
	}
	outcome.OrderID = intent.OrderID
	outcome.OrderNumber = intent.OrderNumber
}
