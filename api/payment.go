package api

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/checkout"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/config"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/db"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/helpers"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/izipay"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/middlewares"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/thedevsaddam/govalidator"
)

const cartSessionHeader = "X-Cart-Session"

var (
	presenterOnce sync.Once
	presenter     *checkout.Presenter
)

func getPresenter(ctx *config.AppContext) *checkout.Presenter {
	presenterOnce.Do(func() {
		presenter = &checkout.Presenter{
			Gateway:         ctx.Izipay,
			Mode:            ctx.Config.Izipay.Mode,
			RedirectBaseURL: ctx.Config.Izipay.RedirectURL,
			ScriptTimeout:   time.Duration(ctx.Config.Izipay.ScriptTimeout) * time.Second,
		}
	})
	return presenter
}

type createPaymentSessionResponse struct {
	SessionKey string                 `json:"session_key"`
	Session    *models.PaymentSession `json:"session"`
	Form       *checkout.FormConfig   `json:"form"`
}

// CreatePaymentSession exchanges an order for a single-use form token and
// records the order intent for the coming redirect round-trip.
func CreatePaymentSession(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.GetRequestLanguage(r)

	// The header identifies the browsing context across the redirect
	// round-trip. A first-time caller gets a fresh key back with the
	// session and must send it on the return leg.
	sessionKey := r.Header.Get(cartSessionHeader)
	if sessionKey == "" {
		sessionKey = uuid.NewString()
	}

	var opts models.CreatePaymentSessionOpts
	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   models.CreatePaymentSessionRules,
		Data:    &opts,
	}
	v := govalidator.New(validatorOpts)
	errs := v.ValidateJSON()
	if len(errs) > 0 {
		w.Write(http.StatusBadRequest, errs, nil, middlewares.Responses.FailedValidations)
		return
	}

	order, err := ctx.DB.GetOrderByID(opts.OrderID)
	if err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	if order == nil {
		w.Write(http.StatusNotFound, nil, nil, middlewares.Responses.OrderNotFound)
		return
	}

	if order.Payment != nil && order.Payment.Status != nil {
		if order.Payment.Status.ID == db.ConstPaymentStatuses.Approved.ID {
			w.Write(http.StatusBadRequest, nil, nil, middlewares.Responses.OrderAlreadyPaid)
			return
		}
	}

	tokenOpts := izipay.CreateFormTokenOpts{
		// The stored total is the only amount ever sent to the gateway.
		Amount:       order.Total,
		Currency:     "PEN",
		OrderID:      order.Number,
		IpnTargetURL: ctx.Config.BaseURL + ctx.Config.Izipay.IPNPath,
	}
	if order.Customer != nil {
		tokenOpts.Customer.Email = order.Customer.Email
		details := izipay.BillingDetails{
			FirstName:   order.Customer.Firstname,
			LastName:    order.Customer.Lastname,
			PhoneNumber: order.Customer.Phone,
		}
		if order.Customer.Document != nil {
			details.IdentityType = order.Customer.Document.Type
			details.IdentityCode = order.Customer.Document.Value
		}
		tokenOpts.Customer.BillingDetails = &details
	}

	response, err := ctx.Izipay.CreateFormToken(&tokenOpts)
	if err != nil {
		// Surface the gateway's message; the buyer decides whether to
		// retry, nothing is retried automatically.
		w.Write(http.StatusBadGateway, map[string]interface{}{
			"error": err.Error(),
		}, err, middlewares.Responses.PaymentGatewayError)
		return
	}

	paymentID, err := ctx.DB.InsertPayment(&db.InsertPaymentOpts{
		MethodID: db.ConstPaymentMethods.Izipay.ID,
		Amount:   order.Total,
		OrderID:  order.ID,
		StatusID: db.ConstPaymentStatuses.Created.ID,
	})
	if err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	intent := models.OrderIntent{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Total:       order.Total,
		PaymentID:   paymentID,
	}
	if err := ctx.DB.SaveOrderIntent(sessionKey, &intent); err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	session := models.PaymentSession{
		FormToken: response.FormToken,
		PublicKey: ctx.Config.Izipay.PublicKey,
		PaymentID: paymentID,
		Amount:    order.Total,
		Currency:  "PEN",
	}

	form, err := getPresenter(ctx).Present(r.Context(), &session)
	if err != nil {
		if err == checkout.ErrSDKLoadTimeout {
			w.WriteJSON(http.StatusGatewayTimeout, map[string]interface{}{
				"error": "payment form script load timed out",
			}, err, "sdk load timeout")
			return
		}
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	w.WriteJSON(http.StatusOK, createPaymentSessionResponse{
		SessionKey: sessionKey,
		Session:    &session,
		Form:       form,
	}, nil, "")
}

type checkoutResultResponse struct {
	State   checkout.State        `json:"state"`
	Outcome models.PaymentOutcome `json:"outcome"`
}

// CheckoutResult resolves the gateway's return parameters into a terminal
// state for the result page.
func CheckoutResult(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.GetRequestLanguage(r)

	if err := r.ParseForm(); err != nil {
		w.Write(http.StatusBadRequest, nil, err, middlewares.Responses.FailedValidations)
		return
	}

	sessionKey := r.Header.Get(cartSessionHeader)

	var intent *models.OrderIntent
	if sessionKey != "" {
		var err error
		intent, err = ctx.DB.GetOrderIntent(sessionKey)
		if err != nil {
			w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
			return
		}
	}

	interpreter := checkout.Interpreter{Gateway: ctx.Izipay}
	resolution := interpreter.Resolve(checkout.ReturnParams{
		KrAnswer: r.Form.Get("kr-answer"),
		KrHash:   r.Form.Get("kr-hash"),
	}, intent)

	if resolution.ClearIntent && sessionKey != "" {
		if err := ctx.DB.ClearOrderIntent(sessionKey); err != nil {
			w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
			return
		}
	}

	w.WriteJSON(http.StatusOK, checkoutResultResponse{
		State:   resolution.State,
		Outcome: resolution.Outcome,
	}, nil, "")
}

type checkoutErrorResponse struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message,omitempty"`
	Guidance     string `json:"guidance"`
}

// CheckoutError maps the discrete error code the gateway redirects with
// to buyer guidance. Every code maps to something.
func CheckoutError(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.GetRequestLanguage(r)

	code := r.URL.Query().Get("errorCode")
	message := r.URL.Query().Get("errorMessage")

	w.WriteJSON(http.StatusOK, checkoutErrorResponse{
		ErrorCode:    code,
		ErrorMessage: message,
		Guidance:     checkout.MapPaymentError(code),
	}, nil, "")
}

// GetPaymentStatus is the authoritative fallback when client signals are
// inconclusive. Read only; the IPN flow is the sole transition authority.
func GetPaymentStatus(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.GetRequestLanguage(r)

	vars := mux.Vars(r)
	paymentID, err := strconv.Atoi(vars["payment_id"])
	if err != nil {
		w.Write(http.StatusBadRequest, nil, err, middlewares.Responses.FailedValidations)
		return
	}

	verifier := checkout.Verifier{Payments: ctx.DB}
	verification, err := verifier.Verify(paymentID)
	if err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	if verification == nil {
		w.Write(http.StatusNotFound, nil, nil, middlewares.Responses.PaymentNotFound)
		return
	}

	w.WriteJSON(http.StatusOK, verification, nil, "")
}

// IzipayIPN receives the server-to-server notification. It always answers
// 200 so the gateway stops retrying; conditions are reported through logs.
func IzipayIPN(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.StartLogger("IzipayIPN")

	if err := r.ParseForm(); err != nil {
		w.LogError(err, "failed parsing form")
		return
	}

	krAnswer := r.Form.Get("kr-answer")
	krHash := r.Form.Get("kr-hash")

	if !ctx.Izipay.ValidateIPNHash(krAnswer, krHash) {
		w.LogError(nil, "invalid ipn hash")
		return
	}

	answer, err := izipay.ParseAnswer(krAnswer)
	if err != nil {
		w.LogError(err, "failed parsing answer")
		return
	}

	status, ok := db.GatewayPaymentStatuses[answer.OrderStatus]
	if !ok {
		w.LogError(nil, fmt.Sprintf("unknown order status %s", answer.OrderStatus))
		return
	}

	order, err := ctx.DB.GetOrderByNumber(answer.OrderDetails.OrderID)
	if err != nil {
		w.LogError(err, "failed getting order")
		return
	}

	if order == nil || order.Payment == nil {
		w.LogError(nil, "order or payment not found")
		return
	}

	transactionID := ""
	if len(answer.Transactions) > 0 {
		transactionID = answer.Transactions[len(answer.Transactions)-1].UUID
	}

	if err := ctx.DB.UpdatePaymentStatus(order.Payment.ID, status.ID, transactionID); err != nil {
		w.LogError(err, "failed updating payment")
		return
	}

	if status.ID == db.ConstPaymentStatuses.Approved.ID {
		// The buyer may never reach the result page, so the pending
		// intent gets dropped here too. Non-fatal: a stale row only
		// survives until the buyer's own return clears it.
		if err := ctx.DB.ClearOrderIntentsByOrder(order.ID); err != nil {
			log.WithField("order", order.Number).Error(err)
		}

		go sendPaymentSuccessEmail(ctx, order)
	}

	w.LogInfo(map[string]interface{}{
		"order_number": order.Number,
		"status":       status.Name,
	}, "success")
}

func sendPaymentSuccessEmail(ctx *config.AppContext, order *models.Order) {
	logger := config.GetLogger()
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	pdfBuffer, err := helpers.GenerateReceiptPDF(order)
	if err != nil {
		logger.WithField("order", order.Number).Error(err)
		return
	}

	receiptURL, err := helpers.AddFileToS3(ctx, pdfBuffer, fmt.Sprintf("%s/%s.pdf", ctx.Config.AwsS3.S3PathReceipt, order.Number))
	if err != nil {
		logger.WithField("order", order.Number).Error(err)
		return
	}

	ed := &helpers.EmailData{
		EmailTo:      order.Customer.Email,
		NameTo:       order.Customer.Firstname,
		EmailFrom:    ctx.Config.Mail.EmailFrom,
		NameFrom:     ctx.Config.Mail.NameFrom,
		Subject:      ctx.Config.Mail.PaymentSuccess.Subject,
		TemplatePath: fmt.Sprintf("%s%s/%s", ctx.Config.Mail.Folder, ctx.Config.Mail.Path, ctx.Config.Mail.PaymentSuccess.Template),
		FileName:     ctx.Config.Mail.PaymentSuccess.FileName,
		FileContent:  pdfBuffer.Bytes(),
		SMTP:         ctx.AwsSMTP,
	}

	err = ed.SendEmail(models.PaymentSuccessHTML{
		Number:        order.Number,
		Firstname:     order.Customer.Firstname,
		Lastname:      order.Customer.Lastname,
		PaymentMethod: db.ConstPaymentMethods.Izipay.Name,
		Total:         helpers.FormatAmount(order.Total),
		ReceiptURL:    receiptURL,
	})
	if err != nil {
		logger.WithField("order", order.Number).Error(err)
		return
	}

	logger.WithField("order", order.Number).Info("success sending email")
}
