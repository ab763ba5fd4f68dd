package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/config"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/helpers"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/dgrijalva/jwt-go"
	jwtmiddleware "github.com/mfuentesg/go-jwtmiddleware"
	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"

	"github.com/urfave/negroni"
)

func jwtErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	r := NewResponseWriter(w)
	if err.Error() == "Token is expired" {
		r.Error(http.StatusUnauthorized, "unauthorized", WithErrorScope("token"), WithErrorType(1))
		return
	}
	if err != nil {
		r.Error(http.StatusUnauthorized, "unauthorized", WithErrorScope("token"))
	}
}

func NewJWTMiddleware(secret []byte) *jwtmiddleware.Middleware {
	return jwtmiddleware.New(
		jwtmiddleware.WithErrorHandler(jwtErrorHandler),
		jwtmiddleware.WithSigningMethod(jwt.SigningMethodHS256),
		jwtmiddleware.WithSignKey(secret),
		jwtmiddleware.WithUserProperty("_jwt-token"),
	)
}

func LoggerRequest(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	requestLogger := log.WithFields(log.Fields{"request_id": r.Header.Get("X-Request-ID"), "query": r.URL.Query(), "host": r.Host, "url": r.URL.Path})
	requestLogger.Info("logger_request")
	config.SetLogger(requestLogger)
	next(rw, r)
}

// UserMiddleware decodes the bearer token relayed from the accounts API
// into the request context. The token is parsed unverified here; protected
// routes verify the signature through the JWT middleware.
func UserMiddleware() negroni.HandlerFunc {
	return negroni.HandlerFunc(func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		authorization := r.Header.Get("Authorization")
		if len(authorization) == 0 {
			authorization = r.URL.Query().Get("token")
			r.Header.Set("Authorization", authorization)
		}
		token := strings.Split(authorization, " ")
		if len(token) == 2 {
			tokenString := token[1]
			claims, ok := helpers.ParserTokenUnverified(tokenString)
			if ok {
				tokenParse, ok := claims["u"].(map[string]interface{})
				if ok {
					userInfo := models.InfoUser{}
					mapstructure.Decode(map[string]interface{}{
						"ID":    tokenParse["i"],
						"Email": tokenParse["email"],
						"Roles": tokenParse["r"],
						"Read":  tokenParse["read"],
					}, &userInfo)

					userInfo.IsAdmin = helpers.Contains(userInfo.Roles, 1)
					userInfo.IsClient = helpers.Contains(userInfo.Roles, 2)
					userInfo.IsAPI = helpers.Contains(userInfo.Roles, 3)

					if r.Method != "GET" && userInfo.Read {
						a := NewResponseWriter(rw)
						a.Error(http.StatusUnauthorized, "unauthorized", WithErrorScope("token"))
						return
					}

					data := map[string]interface{}{
						"ID":       userInfo.ID,
						"Email":    userInfo.Email,
						"Roles":    userInfo.Roles,
						"Read":     userInfo.Read,
						"IsAdmin":  userInfo.IsAdmin,
						"IsClient": userInfo.IsClient,
						"IsAPI":    userInfo.IsAPI,
					}
					ctx := context.WithValue(r.Context(), string("user"), data)
					next(rw, r.WithContext(ctx))
					return
				}
			}
		}
		next(rw, r)
	})
}
