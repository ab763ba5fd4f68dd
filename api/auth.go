package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/config"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/middlewares"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/thedevsaddam/govalidator"
)

// Login relays credentials to the accounts API and hands the bearer token
// back to the storefront. No credentials are stored here.
func Login(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.GetRequestLanguage(r)

	var opts models.LoginOpts
	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   models.LoginRules,
		Data:    &opts,
	}
	v := govalidator.New(validatorOpts)
	errs := v.ValidateJSON()
	if len(errs) > 0 {
		w.Write(http.StatusBadRequest, errs, nil, middlewares.Responses.FailedValidations)
		return
	}

	body, err := json.Marshal(opts)
	if err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	client := http.Client{Timeout: time.Duration(ctx.Config.Accounts.Timeout) * time.Second}
	response, err := client.Post(ctx.Config.Accounts.BaseURL+ctx.Config.Accounts.LoginPath, "application/json", bytes.NewBuffer(body))
	if err != nil {
		w.Write(http.StatusBadGateway, nil, err, middlewares.Responses.InternalServerError)
		return
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusNotFound {
		w.Write(http.StatusUnauthorized, nil, nil, middlewares.Responses.InvalidCredentials)
		return
	}

	if response.StatusCode != http.StatusOK {
		w.Write(http.StatusBadGateway, nil, nil, middlewares.Responses.InternalServerError)
		return
	}

	var session models.AccountSession
	if err := json.NewDecoder(response.Body).Decode(&session); err != nil {
		w.Write(http.StatusBadGateway, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	w.WriteJSON(http.StatusOK, session, nil, "")
}
