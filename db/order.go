package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/pkg/errors"
)

type OrderStorage interface {
	InsertOrder(opts *InsertOrderOpts) (*models.Order, error)
	GetOrderByID(orderID int) (*models.Order, error)
	GetOrderByNumber(number string) (*models.Order, error)
	GetOrders(opts *models.GetOrdersOpts) (*models.GetOrdersStruct, error)
}

type InsertOrderOpts struct {
	Number           string
	Items            []models.OrderItem
	DeliveryDistrict string
	DeliveryDate     string
	Dedication       string
	Firstname        string
	Lastname         string
	Email            string
	Phone            string
	DocumentType     string
	DocumentNumber   string
	Total            int
}

const (
	insertOrder = `
	INSERT
		orders
	SET
		number = :number,
		delivery_district = :delivery_district,
		delivery_date = :delivery_date,
		dedication = :dedication,
		firstname = :firstname,
		lastname = :lastname,
		email = :email,
		phone = :phone,
		document_type = :document_type,
		document_number = :document_number,
		total = :total
	`

	insertOrderItem = `
	INSERT
		order_item
	SET
		order_id = :order_id,
		product_id = :product_id,
		name = :name,
		quantity = :quantity,
		unit_price = :unit_price
	`

	getOrderBase = `
	SELECT
		orders.id,
		orders.number,
		orders.delivery_district,
		orders.delivery_date,
		orders.dedication,
		orders.firstname,
		orders.lastname,
		orders.email,
		orders.phone,
		orders.document_type,
		orders.document_number,
		orders.total,
		orders.created,
		orders.updated
	FROM
		orders
	WHERE
		orders.active = true
	`

	getOrderItems = `
	SELECT
		order_item.id,
		order_item.product_id,
		order_item.name,
		order_item.quantity,
		order_item.unit_price
	FROM
		order_item
	WHERE
		order_item.order_id = ?
	`

	getLatestOrderPayment = `
	SELECT
		payment.id,
		payment.amount,
		payment.status_id,
		payment.method_id,
		payment.transaction_id
	FROM
		payment
	WHERE
		payment.active = true AND
		payment.order_id = ?
	ORDER BY
		payment.id DESC
	LIMIT 1
	`
)

func (db *DB) InsertOrder(opts *InsertOrderOpts) (*models.Order, error) {
	tx, err := db.NewTx()
	if err != nil {
		return nil, errors.Wrap(err, "failed to start transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}

		tx.Commit()
	}()

	order, newErr := insertOrderTx(tx, opts)
	if newErr != nil {
		err = newErr
		return nil, err
	}

	return order, nil
}

func insertOrderTx(tx Tx, opts *InsertOrderOpts) (*models.Order, error) {
	stmt, err := tx.PrepareNamed(insertOrder)
	if err != nil {
		return nil, err
	}

	args := map[string]interface{}{
		"number":            opts.Number,
		"delivery_district": opts.DeliveryDistrict,
		"delivery_date":     opts.DeliveryDate,
		"dedication":        opts.Dedication,
		"firstname":         opts.Firstname,
		"lastname":          opts.Lastname,
		"email":             opts.Email,
		"phone":             opts.Phone,
		"document_type":     opts.DocumentType,
		"document_number":   opts.DocumentNumber,
		"total":             opts.Total,
	}

	result, err := stmt.Exec(args)
	if err != nil {
		return nil, err
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	itemStmt, err := tx.PrepareNamed(insertOrderItem)
	if err != nil {
		return nil, err
	}

	for _, item := range opts.Items {
		itemArgs := map[string]interface{}{
			"order_id":   orderID,
			"product_id": item.ProductID,
			"name":       item.Name,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		}

		itemResult, err := itemStmt.Exec(itemArgs)
		if err != nil {
			return nil, err
		}

		rowsAffected, err := itemResult.RowsAffected()
		if err != nil {
			return nil, err
		}

		if int(rowsAffected) != 1 {
			return nil, errors.Errorf("expected %d and inserted %d", 1, rowsAffected)
		}
	}

	deliveryDate, _ := time.Parse(ConstLayoutDate, opts.DeliveryDate)

	order := models.Order{
		ID:               int(orderID),
		Number:           opts.Number,
		DeliveryDate:     deliveryDate,
		Items:            opts.Items,
		DeliveryDistrict: opts.DeliveryDistrict,
		Dedication:       opts.Dedication,
		Total:            opts.Total,
		Customer: &models.Customer{
			Firstname: opts.Firstname,
			Lastname:  opts.Lastname,
			Email:     opts.Email,
			Phone:     opts.Phone,
			Document: &models.IdentityDocument{
				Type:  opts.DocumentType,
				Value: opts.DocumentNumber,
			},
		},
	}

	return &order, nil
}

func (db *DB) GetOrderByID(orderID int) (*models.Order, error) {
	query := getOrderBase + ` AND orders.id = ?`
	return db.getOrder(query, orderID)
}

func (db *DB) GetOrderByNumber(number string) (*models.Order, error) {
	query := getOrderBase + ` AND orders.number = ?`
	return db.getOrder(query, number)
}

func (db *DB) getOrder(query string, arg interface{}) (*models.Order, error) {
	var (
		order    models.Order
		customer models.Customer
		document models.IdentityDocument
	)

	row := db.QueryRow(db.Rebind(query), arg)
	if err := row.Scan(
		&order.ID,
		&order.Number,
		&order.DeliveryDistrict,
		&order.DeliveryDate,
		&order.Dedication,
		&customer.Firstname,
		&customer.Lastname,
		&customer.Email,
		&customer.Phone,
		&document.Type,
		&document.Value,
		&order.Total,
		&order.Created,
		&order.Updated,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	customer.Document = &document
	order.Customer = &customer

	items, err := db.getOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	payment, err := db.getLatestPayment(order.ID)
	if err != nil {
		return nil, err
	}
	order.Payment = payment

	return &order, nil
}

func (db *DB) getOrderItems(orderID int) ([]models.OrderItem, error) {
	rows, err := db.Query(db.Rebind(getOrderItems), orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (db *DB) getLatestPayment(orderID int) (*models.Payment, error) {
	var (
		payment  models.Payment
		statusID int
		methodID int
	)

	row := db.QueryRow(db.Rebind(getLatestOrderPayment), orderID)
	if err := row.Scan(
		&payment.ID,
		&payment.Amount,
		&statusID,
		&methodID,
		&payment.TransactionID,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	payment.OrderID = orderID
	payment.Status = paymentStatusByID(statusID)
	payment.Method = paymentMethodByID(methodID)

	return &payment, nil
}

func (db *DB) GetOrders(opts *models.GetOrdersOpts) (*models.GetOrdersStruct, error) {
	query := getOrderBase
	var args []interface{}

	if opts.CreatedFrom != "" {
		query += ` AND orders.created >= ?`
		args = append(args, opts.CreatedFrom)
	}
	if opts.CreatedTo != "" {
		query += ` AND orders.created <= ?`
		args = append(args, opts.CreatedTo)
	}
	if opts.DeliveryFrom != "" {
		query += ` AND orders.delivery_date >= ?`
		args = append(args, opts.DeliveryFrom)
	}
	if opts.DeliveryTo != "" {
		query += ` AND orders.delivery_date <= ?`
		args = append(args, opts.DeliveryTo)
	}
	if len(opts.OrderNumbers) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(opts.OrderNumbers)), ",")
		query += fmt.Sprintf(` AND orders.number IN (%s)`, placeholders)
		for _, number := range opts.OrderNumbers {
			args = append(args, number)
		}
	}
	if len(opts.PaymentStatusIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(opts.PaymentStatusIDs)), ",")
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM payment
			WHERE payment.order_id = orders.id AND
				payment.active = true AND
				payment.status_id IN (%s)
		)`, placeholders)
		for _, statusID := range opts.PaymentStatusIDs {
			args = append(args, statusID)
		}
	}

	query += ` ORDER BY orders.id DESC`

	if opts.LimitTo > 0 {
		query += ` LIMIT ?, ?`
		args = append(args, opts.LimitFrom, opts.LimitTo)
	}

	rows, err := db.Query(db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	response := models.GetOrdersStruct{}
	for rows.Next() {
		var (
			order    models.Order
			customer models.Customer
			document models.IdentityDocument
		)
		if err := rows.Scan(
			&order.ID,
			&order.Number,
			&order.DeliveryDistrict,
			&order.DeliveryDate,
			&order.Dedication,
			&customer.Firstname,
			&customer.Lastname,
			&customer.Email,
			&customer.Phone,
			&document.Type,
			&document.Value,
			&order.Total,
			&order.Created,
			&order.Updated,
		); err != nil {
			return nil, err
		}

		customer.Document = &document
		order.Customer = &customer
		response.Orders = append(response.Orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	response.Total = len(response.Orders)

	return &response, nil
}
