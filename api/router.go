package api

import (
	"net/http"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/config"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/middlewares"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/server"
)

// HealthcheckHandler indicates the service's healthy
func HealthcheckHandler(_ *config.AppContext, w *middlewares.ResponseWriter, _ *http.Request) {
	w.String(http.StatusOK, "OK")
}

// GetRoutes ...
func GetRoutes() []*server.Route {
	return []*server.Route{
		{Path: "/healthcheck", Methods: []string{"GET", "HEAD"}, Handler: HealthcheckHandler, IsProtected: false},

		// Auth
		{Path: "/auth/login", Methods: []string{"POST", "HEAD"}, Handler: Login, IsProtected: false},

		// Order
		{Path: "/order", Methods: []string{"POST", "HEAD"}, Handler: InsertOrder, IsProtected: false},
		{Path: "/order", Methods: []string{"GET", "HEAD"}, Handler: GetOrders, IsProtected: true},

		// Payment
		{Path: "/payment/session", Methods: []string{"POST", "HEAD"}, Handler: CreatePaymentSession, IsProtected: false},
		{Path: "/payment/izipay/ipn", Methods: []string{"POST", "HEAD"}, Handler: IzipayIPN, IsProtected: false},
		{Path: "/payment/{payment_id}/status", Methods: []string{"GET", "HEAD"}, Handler: GetPaymentStatus, IsProtected: false},

		// Checkout
		{Path: "/checkout/result", Methods: []string{"GET", "POST", "HEAD"}, Handler: CheckoutResult, IsProtected: false},
		{Path: "/checkout/error", Methods: []string{"GET", "HEAD"}, Handler: CheckoutError, IsProtected: false},
	}
}
