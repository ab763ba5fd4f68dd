package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ResponseWriter struct {
	Writer   http.ResponseWriter
	Language string
	logger   *log.Entry
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		Writer:   w,
		Language: Language.Spanish,
	}
}

type generalResponse struct {
	Errors  []*errorResponse `json:"errors"`
	Success bool             `json:"success"`
	Data    interface{}      `json:"data"`
}

type errorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Scope   string      `json:"scope"`
	Type    int         `json:"type"`
	Data    interface{} `json:"data"`
}

type ErrOption func(*errorResponse)

func WithErrorType(errType int) ErrOption {
	return func(err *errorResponse) {
		err.Type = errType
	}
}

func WithErrorScope(scope string) ErrOption {
	return func(err *errorResponse) {
		err.Scope = scope
	}
}

// GetRequestLanguage picks the response language from the Accept-Language
// header, defaulting to Spanish.
func (r *ResponseWriter) GetRequestLanguage(req *http.Request) {
	language := req.Header.Get("Accept-Language")
	if _, ok := LanguageMap[language]; ok {
		r.Language = language
		return
	}
	r.Language = Language.Spanish
}

func (r *ResponseWriter) writeJSONResponse(code int, errors []*errorResponse, data interface{}) {
	r.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	response := &generalResponse{Errors: errors, Success: errors == nil, Data: data}
	b, err := json.Marshal(response)
	if err != nil {
		r.Writer.WriteHeader(http.StatusInternalServerError)
		r.Writer.Write([]byte(fmt.Sprintf("unexpected error: %v", err)))
	}
	r.Writer.WriteHeader(code)
	if code, err := r.Writer.Write(b); err != nil {
		_ = fmt.Sprintf("could not response - code: %d", code)
	}
}

func (r *ResponseWriter) writePlainJSONResponse(statusCode int, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		r.Writer.WriteHeader(http.StatusInternalServerError)
		r.Writer.Write([]byte(fmt.Sprintf("unexpected error: %v", err)))
	}

	r.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	r.Writer.WriteHeader(statusCode)

	if code, err := r.Writer.Write(b); err != nil {
		_ = fmt.Sprintf("could not response - code: %d", code)
	}
}

func (r *ResponseWriter) WriteJSON(statusCode int, data interface{}, err error, message string) {
	logger := r.requestLogger()
	fields := make(log.Fields)
	fields["status_code"] = statusCode
	if statusCode >= 200 && statusCode <= 299 {
		logger.WithFields(fields).Info("success")
	}
	if statusCode >= 300 {
		if data == nil {
			data = map[string]interface{}{
				"error": message,
			}
		}
		if err == nil {
			err = errors.Errorf(message)
		}
		fields["errors"] = data
		logger.WithFields(fields).Error(err)
	}
	r.writePlainJSONResponse(statusCode, data)
}

// Write responds with the localized variant of a response message.
func (r *ResponseWriter) Write(statusCode int, data interface{}, err error, message *NewRM) {
	localized := ""
	if message != nil {
		localized = (*message)[r.Language]
	}
	r.WriteJSON(statusCode, data, err, localized)
}

func (r *ResponseWriter) JSON(code int, data interface{}) {
	r.writeJSONResponse(code, nil, data)
}

func (r *ResponseWriter) String(code int, msg string) {
	r.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	r.Writer.WriteHeader(code)
	if code, err := r.Writer.Write([]byte(msg)); err != nil {
		_ = fmt.Sprintf("could not response - code: %d", code)
	}
}

func (r *ResponseWriter) Error(code int, msg string, opts ...ErrOption) {
	err := &errorResponse{Code: code, Message: msg}
	for _, With := range opts {
		With(err)
	}
	r.writeJSONResponse(code, []*errorResponse{err}, nil)
}

// StartLogger names the flow for webhook-style handlers that always
// answer 200 and report conditions through logs only.
func (r *ResponseWriter) StartLogger(name string) {
	r.logger = r.requestLogger().WithField("flow", name)
}

func (r *ResponseWriter) LogError(err error, message string) {
	logger := r.requestLogger()
	if err == nil {
		err = errors.Errorf(message)
	}
	logger.WithField("message", message).Error(err)
	r.writePlainJSONResponse(http.StatusOK, map[string]interface{}{"received": true})
}

func (r *ResponseWriter) LogInfo(data interface{}, message string) {
	logger := r.requestLogger()
	fields := log.Fields{"message": message}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Info(message)
	r.writePlainJSONResponse(http.StatusOK, map[string]interface{}{"received": true})
}

func (r *ResponseWriter) requestLogger() *log.Entry {
	if r.logger != nil {
		return r.logger
	}
	if logger := config.GetLogger(); logger != nil {
		return logger
	}
	return log.NewEntry(log.StandardLogger())
}
