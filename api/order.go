package api

import (
	"net/http"
	"time"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/config"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/db"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/middlewares"
	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/gorilla/schema"
	shortuuid "github.com/lithammer/shortuuid/v3"
	"github.com/mitchellh/mapstructure"
	"github.com/thedevsaddam/govalidator"
)

// InsertOrder takes the checkout form, prices it from the stored catalog
// snapshots and creates the order the payment session will reference.
func InsertOrder(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.GetRequestLanguage(r)

	var opts models.InsertOrderOpts
	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   models.InsertOrderRules,
		Data:    &opts,
	}
	v := govalidator.New(validatorOpts)
	errs := v.ValidateJSON()
	if len(errs) > 0 {
		w.Write(http.StatusBadRequest, errs, nil, middlewares.Responses.FailedValidations)
		return
	}

	if len(opts.Items) == 0 {
		w.Write(http.StatusBadRequest, nil, nil, middlewares.Responses.FailedValidations)
		return
	}

	document := models.IdentityDocument{
		Type:  opts.DocumentType,
		Value: opts.DocumentNumber,
	}
	if !document.Validate() {
		w.Write(http.StatusBadRequest, nil, nil, middlewares.Responses.InvalidDocument)
		return
	}

	deliveryDate, err := time.Parse(db.ConstLayoutDate, opts.DeliveryDate)
	if err != nil {
		w.Write(http.StatusBadRequest, nil, err, middlewares.Responses.FailedValidations)
		return
	}
	if deliveryDate.Before(time.Now().Truncate(24 * time.Hour)) {
		w.WriteJSON(http.StatusBadRequest, nil, nil, "delivery date can't be in the past")
		return
	}

	quantityByProductID := make(map[int]int)
	var productIDs []int
	for _, item := range opts.Items {
		if item.Quantity <= 0 {
			w.Write(http.StatusBadRequest, nil, nil, middlewares.Responses.FailedValidations)
			return
		}
		if _, ok := quantityByProductID[item.ProductID]; !ok {
			productIDs = append(productIDs, item.ProductID)
		}
		quantityByProductID[item.ProductID] += item.Quantity
	}

	products, err := ctx.DB.GetProductsByIDs(productIDs)
	if err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	if len(products) != len(productIDs) {
		w.Write(http.StatusNotFound, nil, nil, middlewares.Responses.ProductsNotFound)
		return
	}

	var (
		items []models.OrderItem
		total int
	)
	for _, product := range products {
		quantity := quantityByProductID[product.ID]
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
		total += quantity * product.Price
	}

	order, err := ctx.DB.InsertOrder(&db.InsertOrderOpts{
		Number:           "FL-" + shortuuid.New(),
		Items:            items,
		DeliveryDistrict: opts.DeliveryDistrict,
		DeliveryDate:     opts.DeliveryDate,
		Dedication:       opts.Dedication,
		Firstname:        opts.Firstname,
		Lastname:         opts.Lastname,
		Email:            opts.Email,
		Phone:            opts.Phone,
		DocumentType:     opts.DocumentType,
		DocumentNumber:   opts.DocumentNumber,
		Total:            total,
	})
	if err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	w.WriteJSON(http.StatusOK, order, nil, "")
}

func GetOrders(ctx *config.AppContext, w *middlewares.ResponseWriter, r *http.Request) {
	w.GetRequestLanguage(r)

	userInfo := models.InfoUser{}
	mapstructure.Decode(r.Context().Value("user"), &userInfo)

	if !userInfo.IsAdmin && !userInfo.IsAPI {
		w.Write(http.StatusForbidden, nil, nil, middlewares.Responses.InvalidRoles)
		return
	}

	validatorOpts := govalidator.Options{
		Request: r,
		Rules:   models.GetOrdersRules,
	}
	v := govalidator.New(validatorOpts)
	errs := v.Validate()
	if len(errs) > 0 {
		w.Write(http.StatusBadRequest, errs, nil, middlewares.Responses.FailedValidations)
		return
	}

	var opts models.GetOrdersOpts
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&opts, r.URL.Query()); err != nil {
		w.Write(http.StatusBadRequest, nil, err, middlewares.Responses.FailedValidations)
		return
	}

	orders, err := ctx.DB.GetOrders(&opts)
	if err != nil {
		w.Write(http.StatusInternalServerError, nil, err, middlewares.Responses.InternalServerError)
		return
	}

	w.WriteJSON(http.StatusOK, orders, nil, "")
}
