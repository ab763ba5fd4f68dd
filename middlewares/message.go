package middlewares

var Responses = struct {
	FailedValidations   *NewRM
	InternalServerError *NewRM
	InvalidRoles        *NewRM
	OrderNotFound       *NewRM
	OrderAlreadyPaid    *NewRM
	PaymentProcessing   *NewRM
	PaymentNotFound     *NewRM
	ProductsNotFound    *NewRM
	InvalidDocument     *NewRM
	PaymentGatewayError *NewRM
	InvalidCredentials  *NewRM
}{
	FailedValidations: &NewRM{
		Language.English: "Failed field validations",
		Language.Spanish: "Las validaciones de los campos fallaron",
	},
	InternalServerError: &NewRM{
		Language.English: "Internal server error",
		Language.Spanish: "Problemas con el servidor",
	},
	InvalidRoles: &NewRM{
		Language.English: "Invalid roles",
		Language.Spanish: "No tienes permiso para realizar esta acción",
	},
	OrderNotFound: &NewRM{
		Language.English: "Order not found",
		Language.Spanish: "No se encontró el pedido",
	},
	OrderAlreadyPaid: &NewRM{
		Language.English: "Order already paid",
		Language.Spanish: "El pedido ya fue pagado",
	},
	PaymentProcessing: &NewRM{
		Language.English: "A payment is already being processed for this order",
		Language.Spanish: "Ya hay un pago en proceso para este pedido",
	},
	PaymentNotFound: &NewRM{
		Language.English: "Payment not found",
		Language.Spanish: "No se encontró el pago",
	},
	ProductsNotFound: &NewRM{
		Language.English: "Not all products were found",
		Language.Spanish: "Algunos productos ya no están disponibles",
	},
	InvalidDocument: &NewRM{
		Language.English: "Invalid identity document",
		Language.Spanish: "El documento de identidad no es válido",
	},
	PaymentGatewayError: &NewRM{
		Language.English: "Problems with the payment gateway",
		Language.Spanish: "No pudimos iniciar el pago, inténtalo nuevamente",
	},
	InvalidCredentials: &NewRM{
		Language.English: "Invalid credentials",
		Language.Spanish: "Correo o contraseña incorrectos",
	},
}

type NewRM map[string]string

var Language = struct {
	English string
	Spanish string
}{
	English: "en",
	Spanish: "es",
}

var LanguageMap = map[string]string{
	Language.Spanish: "Spanish",
	Language.English: "English",
}
