package models

import (
	"time"

	"github.com/thedevsaddam/govalidator"
)

type InsertOrderOpts struct {
	Items            []InsertOrderItemOpts `json:"items"`
	DeliveryDistrict string                `json:"delivery_district"`
	DeliveryDate     string                `json:"delivery_date"`
	Dedication       string                `json:"dedication"`
	Firstname        string                `json:"firstname"`
	Lastname         string                `json:"lastname"`
	Email            string                `json:"email"`
	Phone            string                `json:"phone"`
	DocumentType     string                `json:"document_type"`
	DocumentNumber   string                `json:"document_number"`
}

type InsertOrderItemOpts struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

var InsertOrderRules = govalidator.MapData{
	"items":             []string{"required"},
	"delivery_district": []string{"required"},
	"delivery_date":     []string{"required", "date_ISO8601"},
	"dedication":        []string{"max:500"},
	"firstname":         []string{"required"},
	"lastname":          []string{"required"},
	"email":             []string{"required", "email"},
	"phone":             []string{"required"},
	"document_type":     []string{"required", "document_type"},
	"document_number":   []string{"required"},
}

type GetOrdersOpts struct {
	CreatedFrom      string   `schema:"created_from"`
	CreatedTo        string   `schema:"created_to"`
	DeliveryFrom     string   `schema:"delivery_from"`
	DeliveryTo       string   `schema:"delivery_to"`
	OrderNumbers     []string `schema:"order_numbers"`
	PaymentStatusIDs []int    `schema:"payment_status_ids"`
	LimitFrom        int      `schema:"limit_from"`
	LimitTo          int      `schema:"limit_to"`
}

var GetOrdersRules = govalidator.MapData{
	"created_from":       []string{"date_ISO8601"},
	"created_to":         []string{"date_ISO8601"},
	"delivery_from":      []string{"date_ISO8601"},
	"delivery_to":        []string{"date_ISO8601"},
	"order_numbers":      []string{"array_string"},
	"payment_status_ids": []string{"array_int"},
	"limit_from":         []string{"numeric"},
	"limit_to":           []string{"numeric"},
}

type Order struct {
	ID               int         `json:"id,omitempty"`
	Number           string      `json:"number,omitempty"`
	Items            []OrderItem `json:"items,omitempty"`
	Customer         *Customer   `json:"customer,omitempty"`
	DeliveryDistrict string      `json:"delivery_district,omitempty"`
	DeliveryDate     time.Time   `json:"delivery_date,omitempty"`
	Dedication       string      `json:"dedication,omitempty"`
	// Total holds céntimos computed from the stored item prices,
	// never a client-sent value.
	Total   int       `json:"total"`
	Payment *Payment  `json:"payment,omitempty"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

type OrderItem struct {
	ID        int    `json:"id,omitempty"`
	ProductID int    `json:"product_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

type Customer struct {
	Firstname string            `json:"firstname,omitempty"`
	Lastname  string            `json:"lastname,omitempty"`
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Document  *IdentityDocument `json:"document,omitempty"`
}

type Product struct {
	ID     int    `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Price  int    `json:"price"`
	Active bool   `json:"active,omitempty"`
}

type GetOrdersStruct struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

type OrderReceiptHTML struct {
	Number           string
	Firstname        string
	Lastname         string
	DeliveryDistrict string
	DeliveryDate     string
	Items            []OrderItem
	Total            string
	QR               string
}

type PaymentSuccessHTML struct {
	Number        string
	Firstname     string
	Lastname      string
	PaymentMethod string
	Total         string
	ReceiptURL    string
}
