package db

import (
	"fmt"
	"strings"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
)

type ProductStorage interface {
	GetProductsByIDs(productIDs []int) ([]models.Product, error)
}

const getProductsByIDs = `
	SELECT
		product.id,
		product.name,
		product.price
	FROM
		product
	WHERE
		product.active = true AND
		product.id IN (%s)
	`

// GetProductsByIDs returns the price snapshots synced from the catalog.
// Order totals are always computed from these rows, never from the client.
func (db *DB) GetProductsByIDs(productIDs []int) ([]models.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(productIDs)), ",")
	query := fmt.Sprintf(getProductsByIDs, placeholders)

	args := make([]interface{}, 0, len(productIDs))
	for _, id := range productIDs {
		args = append(args, id)
	}

	rows, err := db.Query(db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}
