package izipay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	io "io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	izContentType = `application/json`

	pathCreatePayment = `/api-payment/V4/Charge/CreatePayment`
	pathGetOrder      = `/api-payment/V4/Order/Get`
)

// Order statuses reported inside a signed answer.
const (
	OrderStatusPaid      = "PAID"
	OrderStatusUnpaid    = "UNPAID"
	OrderStatusRunning   = "RUNNING"
	OrderStatusAbandoned = "ABANDONED"
)

type Client struct {
	BaseURL string
	// Username and Password authenticate REST calls. The password also
	// signs IPN answers.
	Username string
	Password string
	// PublicKey configures the embedded form on the client side.
	PublicKey string
	// HMACSHA256Key signs browser-return answers.
	HMACSHA256Key string
	// JSBaseURL serves the embedded form script.
	JSBaseURL string
	Timeout   int
}

type CreateFormTokenOpts struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"orderId"`
	Customer struct {
		Email          string          `json:"email"`
		Reference      string          `json:"reference,omitempty"`
		BillingDetails *BillingDetails `json:"billingDetails,omitempty"`
	} `json:"customer"`
	IpnTargetURL string `json:"ipnTargetUrl,omitempty"`
}

type BillingDetails struct {
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	IdentityType string `json:"identityType,omitempty"`
	IdentityCode string `json:"identityCode,omitempty"`
}

type envelope struct {
	Status string          `json:"status"`
	Answer json.RawMessage `json:"answer"`
}

type errorAnswer struct {
	ErrorCode            string `json:"errorCode"`
	ErrorMessage         string `json:"errorMessage"`
	DetailedErrorCode    string `json:"detailedErrorCode,omitempty"`
	DetailedErrorMessage string `json:"detailedErrorMessage,omitempty"`
}

type CreateFormTokenResponse struct {
	FormToken string `json:"formToken"`
}

// Answer is the signed payload the gateway posts back from the hosted form
// and to the IPN endpoint.
type Answer struct {
	ShopID       string        `json:"shopId"`
	OrderCycle   string        `json:"orderCycle"`
	OrderStatus  string        `json:"orderStatus"`
	OrderDetails OrderDetails  `json:"orderDetails"`
	Transactions []Transaction `json:"transactions"`
}

type OrderDetails struct {
	OrderID          string `json:"orderId"`
	OrderTotalAmount int    `json:"orderTotalAmount"`
	OrderCurrency    string `json:"orderCurrency"`
}

type Transaction struct {
	UUID                 string `json:"uuid"`
	Status               string `json:"status"`
	DetailedStatus       string `json:"detailedStatus"`
	ErrorCode            string `json:"errorCode,omitempty"`
	ErrorMessage         string `json:"errorMessage,omitempty"`
	DetailedErrorCode    string `json:"detailedErrorCode,omitempty"`
	DetailedErrorMessage string `json:"detailedErrorMessage,omitempty"`
}

type GetOrderResponse struct {
	OrderStatus  string        `json:"orderStatus"`
	Transactions []Transaction `json:"transactions"`
}

func (iz *Client) CreateFormToken(opts *CreateFormTokenOpts) (*CreateFormTokenResponse, error) {
	responseBody, err := iz.post(iz.BaseURL+pathCreatePayment, opts)
	if err != nil {
		return nil, err
	}

	if responseBody == nil {
		return nil, errors.New("failed creating form token in Izipay")
	}

	var response CreateFormTokenResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, err
	}

	if response.FormToken == "" {
		return nil, errors.New("empty form token from Izipay")
	}

	return &response, nil
}

func (iz *Client) GetOrder(orderID string) (*GetOrderResponse, error) {
	responseBody, err := iz.post(iz.BaseURL+pathGetOrder, map[string]interface{}{
		"orderId": orderID,
	})
	if err != nil {
		return nil, err
	}

	if responseBody == nil {
		return nil, errors.New("failed getting order from Izipay")
	}

	var response GetOrderResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// FetchScriptURL confirms the form script is reachable and returns its URL.
// The caller bounds the wait through ctx.
func (iz *Client) FetchScriptURL(ctx context.Context) (string, error) {
	scriptURL := iz.JSBaseURL + "/static/js/krypton-client/V4.0/stable/kr-payment-form.min.js"

	request, err := http.NewRequestWithContext(ctx, http.MethodHead, scriptURL, nil)
	if err != nil {
		return "", err
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", errors.Errorf("bad response %d", response.StatusCode)
	}

	return scriptURL, nil
}

// ValidateReturnHash checks the kr-hash of a browser-return answer.
func (iz *Client) ValidateReturnHash(krAnswer string, krHash string) bool {
	return validateHash(krAnswer, krHash, iz.HMACSHA256Key)
}

// ValidateIPNHash checks the kr-hash of a server-to-server answer, which
// the gateway signs with the merchant password instead of the return key.
func (iz *Client) ValidateIPNHash(krAnswer string, krHash string) bool {
	return validateHash(krAnswer, krHash, iz.Password)
}

func validateHash(krAnswer string, krHash string, key string) bool {
	if krAnswer == "" || krHash == "" || key == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(krAnswer))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(krHash), []byte(expected))
}

// ParseAnswer decodes the raw kr-answer JSON.
func ParseAnswer(krAnswer string) (*Answer, error) {
	if krAnswer == "" {
		return nil, errors.New("empty answer")
	}

	var answer Answer
	if err := json.Unmarshal([]byte(krAnswer), &answer); err != nil {
		return nil, errors.Wrap(err, "failed parsing answer")
	}

	return &answer, nil
}

func (iz *Client) post(url string, body interface{}) ([]byte, error) {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", izContentType)
	request.SetBasicAuth(iz.Username, iz.Password)

	client := http.Client{Timeout: time.Duration(iz.Timeout) * time.Second}
	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		return nil, errors.Errorf("bad response %d", response.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(responseBody, &env); err != nil {
		return nil, err
	}

	if env.Status != "SUCCESS" {
		var answer errorAnswer
		if err := json.Unmarshal(env.Answer, &answer); err == nil && answer.ErrorMessage != "" {
			return nil, errors.Errorf("%s: %s", answer.ErrorCode, answer.ErrorMessage)
		}
		return nil, errors.Errorf("error response from Izipay")
	}

	return env.Answer, nil
}
