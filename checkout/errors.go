package checkout

// Guidance shown to the buyer when the gateway redirects to the error page
// with a discrete code instead of a signed answer.
var paymentErrorMessages = map[string]string{
	"ACQ_001":    "Tu banco rechazó el pago. Verifica que tu tarjeta tenga fondos suficientes e inténtalo nuevamente.",
	"ACQ_999":    "Tu banco no pudo procesar el pago. Inténtalo con otra tarjeta o contacta a tu banco.",
	"PSP_010":    "Ocurrió un problema al procesar el pago. Por favor inténtalo nuevamente en unos minutos.",
	"PSP_099":    "La operación tardó demasiado y fue cancelada. Vuelve a intentar el pago desde tu carrito.",
	"PSP_539":    "Hay un problema de configuración con la pasarela de pago. Por favor contáctanos para ayudarte.",
	"CLIENT_101": "El pago fue cancelado. Puedes volver a intentarlo cuando quieras.",
	"CLIENT_304": "La sesión de pago expiró. Vuelve a iniciar el pago desde tu carrito.",
}

const genericPaymentErrorMessage = "No pudimos completar tu pago. Por favor inténtalo nuevamente desde tu carrito."

// MapPaymentError is total: every code maps to some guidance, unknown
// codes fall back to the generic retry message.
func MapPaymentError(code string) string {
	if message, ok := paymentErrorMessages[code]; ok {
		return message
	}
	return genericPaymentErrorMessage
}
