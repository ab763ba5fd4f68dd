package izipay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		BaseURL:       baseURL,
		Username:      "12345678",
		Password:      "testpassword_abc",
		PublicKey:     "12345678:publickey_xyz",
		HMACSHA256Key: "hmackey_123",
		Timeout:       5,
	}
}

func TestClient_CreateFormToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathCreatePayment, r.URL.Path)

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "12345678", username)
		assert.Equal(t, "testpassword_abc", password)

		var opts CreateFormTokenOpts
		require.NoError(t, json.NewDecoder(r.Body).Decode(&opts))
		assert.Equal(t, 15900, opts.Amount)
		assert.Equal(t, "PEN", opts.Currency)
		assert.Equal(t, "FL-abc123", opts.OrderID)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"SUCCESS","answer":{"formToken":"tok-123"}}`))
	}))
	defer server.Close()

	iz := newTestClient(server.URL)

	opts := CreateFormTokenOpts{
		Amount:   15900,
		Currency: "PEN",
		OrderID:  "FL-abc123",
	}
	opts.Customer.Email = "cliente@example.com"

	response, err := iz.CreateFormToken(&opts)

	require.NoError(t, err)
	assert.Equal(t, "tok-123", response.FormToken)
}

func TestClient_CreateFormToken_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ERROR","answer":{"errorCode":"INT_030","errorMessage":"amount invalid"}}`))
	}))
	defer server.Close()

	iz := newTestClient(server.URL)

	_, err := iz.CreateFormToken(&CreateFormTokenOpts{Amount: -1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INT_030")
	assert.Contains(t, err.Error(), "amount invalid")
}

func TestClient_CreateFormToken_BadStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	iz := newTestClient(server.URL)

	_, err := iz.CreateFormToken(&CreateFormTokenOpts{Amount: 100})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad response 500")
}

func TestClient_CreateFormToken_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"SUCCESS","answer":{}}`))
	}))
	defer server.Close()

	iz := newTestClient(server.URL)

	_, err := iz.CreateFormToken(&CreateFormTokenOpts{Amount: 100})

	assert.Error(t, err)
}

func TestClient_GetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathGetOrder, r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "FL-abc123", body["orderId"])

		w.Write([]byte(`{"status":"SUCCESS","answer":{"orderStatus":"PAID","transactions":[{"uuid":"tx-1","status":"PAID"}]}}`))
	}))
	defer server.Close()

	iz := newTestClient(server.URL)

	response, err := iz.GetOrder("FL-abc123")

	require.NoError(t, err)
	assert.Equal(t, "PAID", response.OrderStatus)
	require.Len(t, response.Transactions, 1)
	assert.Equal(t, "tx-1", response.Transactions[0].UUID)
}

func signWith(payload string, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestClient_ValidateHashes(t *testing.T) {
	iz := newTestClient("")
	payload := `{"orderStatus":"PAID"}`

	t.Run("return hash uses the hmac key", func(t *testing.T) {
		assert.True(t, iz.ValidateReturnHash(payload, signWith(payload, iz.HMACSHA256Key)))
		assert.False(t, iz.ValidateReturnHash(payload, signWith(payload, iz.Password)))
	})

	t.Run("ipn hash uses the password", func(t *testing.T) {
		assert.True(t, iz.ValidateIPNHash(payload, signWith(payload, iz.Password)))
		assert.False(t, iz.ValidateIPNHash(payload, signWith(payload, iz.HMACSHA256Key)))
	})

	t.Run("empty inputs never validate", func(t *testing.T) {
		assert.False(t, iz.ValidateReturnHash("", signWith("", iz.HMACSHA256Key)))
		assert.False(t, iz.ValidateReturnHash(payload, ""))
	})
}

func TestParseAnswer(t *testing.T) {
	answer, err := ParseAnswer(`{"orderStatus":"UNPAID","orderDetails":{"orderId":"FL-abc123","orderTotalAmount":15900},"transactions":[{"uuid":"tx-1","detailedStatus":"REFUSED","errorCode":"ACQ_001"}]}`)

	require.NoError(t, err)
	assert.Equal(t, "UNPAID", answer.OrderStatus)
	assert.Equal(t, "FL-abc123", answer.OrderDetails.OrderID)
	assert.Equal(t, 15900, answer.OrderDetails.OrderTotalAmount)
	require.Len(t, answer.Transactions, 1)
	assert.Equal(t, "ACQ_001", answer.Transactions[0].ErrorCode)
}

func TestParseAnswer_Invalid(t *testing.T) {
	_, err := ParseAnswer("")
	assert.Error(t, err)

	_, err = ParseAnswer(`{"orderStatus":`)
	assert.Error(t, err)
}
