package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/izipay"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/stretchr/testify/assert"
)

const testReturnKey = "test-return-key"

func testGateway() *izipay.Client {
	return &izipay.Client{
		HMACSHA256Key: testReturnKey,
		Password:      "test-password",
	}
}

func sign(payload string, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func signedParams(payload string) ReturnParams {
	return ReturnParams{
		KrAnswer: payload,
		KrHash:   sign(payload, testReturnKey),
	}
}

func testIntent() *models.OrderIntent {
	return &models.OrderIntent{
		OrderID:     42,
		OrderNumber: "FL-abc123",
		Total:       15900,
		PaymentID:   7,
	}
}

func TestInterpreter_Resolve_Paid(t *testing.T) {
	in := Interpreter{Gateway: testGateway()}

	payload := `{"orderStatus":"PAID","orderDetails":{"orderId":"FL-abc123","orderTotalAmount":15900,"orderCurrency":"PEN"}}`
	resolution := in.Resolve(signedParams(payload), testIntent())

	assert.Equal(t, StateSuccess, resolution.State)
	assert.Equal(t, models.OutcomePaid, resolution.Outcome.Status)
	assert.Equal(t, 42, resolution.Outcome.OrderID)
	assert.Equal(t, "FL-abc123", resolution.Outcome.OrderNumber)
	assert.True(t, resolution.ClearIntent, "a paid order must clear the stored intent")
}

func TestInterpreter_Resolve_Unpaid(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		expectedStatus models.OutcomeStatus
	}{
		{
			name:           "refused transaction",
			payload:        `{"orderStatus":"UNPAID","transactions":[{"uuid":"tx-1","detailedStatus":"REFUSED","errorCode":"ACQ_001","errorMessage":"insufficient funds"}]}`,
			expectedStatus: models.OutcomeRefused,
		},
		{
			name:           "cancelled transaction",
			payload:        `{"orderStatus":"UNPAID","transactions":[{"uuid":"tx-1","detailedStatus":"CANCELLED"}]}`,
			expectedStatus: models.OutcomeCancelled,
		},
		{
			name:           "expired transaction",
			payload:        `{"orderStatus":"UNPAID","transactions":[{"uuid":"tx-1","detailedStatus":"EXPIRED"}]}`,
			expectedStatus: models.OutcomeAbandoned,
		},
		{
			name:           "abandoned order",
			payload:        `{"orderStatus":"ABANDONED"}`,
			expectedStatus: models.OutcomeAbandoned,
		},
		{
			name:           "unpaid without transactions",
			payload:        `{"orderStatus":"UNPAID"}`,
			expectedStatus: models.OutcomeRefused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Interpreter{Gateway: testGateway()}

			resolution := in.Resolve(signedParams(tt.payload), testIntent())

			assert.Equal(t, StateFailed, resolution.State)
			assert.Equal(t, tt.expectedStatus, resolution.Outcome.Status)
			assert.False(t, resolution.ClearIntent, "a failed payment keeps the intent for retry")
			assert.Equal(t, 42, resolution.Outcome.OrderID)
		})
	}
}

func TestInterpreter_Resolve_RefusalDetail(t *testing.T) {
	in := Interpreter{Gateway: testGateway()}

	payload := `{"orderStatus":"UNPAID","transactions":[{"uuid":"tx-1","detailedStatus":"REFUSED","errorCode":"ACQ_001","errorMessage":"insufficient funds"}]}`
	resolution := in.Resolve(signedParams(payload), testIntent())

	assert.Equal(t, "ACQ_001", resolution.Outcome.ErrorCode)
	assert.Equal(t, "insufficient funds", resolution.Outcome.ErrorMessage)
}

func TestInterpreter_Resolve_UnknownStatusIsPending(t *testing.T) {
	in := Interpreter{Gateway: testGateway()}

	for _, payload := range []string{
		`{"orderStatus":"RUNNING"}`,
		`{"orderStatus":"PARTIALLY_PAID"}`,
		`{}`,
	} {
		resolution := in.Resolve(signedParams(payload), testIntent())

		assert.Equal(t, StatePending, resolution.State, payload)
		assert.Equal(t, models.OutcomePending, resolution.Outcome.Status, payload)
		assert.False(t, resolution.ClearIntent, payload)
	}
}

func TestInterpreter_Resolve_BadAnswer(t *testing.T) {
	in := Interpreter{Gateway: testGateway()}

	t.Run("tampered hash", func(t *testing.T) {
		payload := `{"orderStatus":"PAID"}`
		resolution := in.Resolve(ReturnParams{
			KrAnswer: payload,
			KrHash:   sign(payload, "wrong-key"),
		}, testIntent())

		assert.Equal(t, StateFailed, resolution.State)
		assert.False(t, resolution.ClearIntent)
	})

	t.Run("unparsable answer", func(t *testing.T) {
		payload := `{"orderStatus":`
		resolution := in.Resolve(signedParams(payload), testIntent())

		assert.Equal(t, StateFailed, resolution.State)
	})

	t.Run("hash without answer", func(t *testing.T) {
		resolution := in.Resolve(ReturnParams{KrHash: "deadbeef"}, testIntent())

		assert.Equal(t, StateFailed, resolution.State)
	})
}

func TestInterpreter_Resolve_NoAnswerParams(t *testing.T) {
	in := Interpreter{Gateway: testGateway()}

	t.Run("intent present means payment may be in flight", func(t *testing.T) {
		resolution := in.Resolve(ReturnParams{}, testIntent())

		assert.Equal(t, StatePending, resolution.State)
		assert.Equal(t, 42, resolution.Outcome.OrderID)
	})

	t.Run("no intent means nothing to show", func(t *testing.T) {
		resolution := in.Resolve(ReturnParams{}, nil)

		assert.Equal(t, StateFailed, resolution.State)
		assert.Zero(t, resolution.Outcome.OrderID)
	})
}
