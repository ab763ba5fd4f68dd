package db

import (
	"database/sql"
	"encoding/json"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// IntentStorage records which order a browsing context left pending while
// the buyer is on the provider's hosted form. One row per session key;
// saving overwrites, loading never fails hard, clearing is idempotent.
type IntentStorage interface {
	SaveOrderIntent(sessionKey string, intent *models.OrderIntent) error
	GetOrderIntent(sessionKey string) (*models.OrderIntent, error)
	ClearOrderIntent(sessionKey string) error
	ClearOrderIntentsByOrder(orderID int) error
}

const (
	saveOrderIntent = `
	REPLACE
		order_intent
	SET
		session_key = :session_key,
		payload = :payload
	`

	getOrderIntent = `
	SELECT
		payload
	FROM
		order_intent
	WHERE
		session_key = ?
	`

	clearOrderIntent = `
	DELETE FROM
		order_intent
	WHERE
		session_key = ?
	`

	clearOrderIntentsByOrder = `
	DELETE FROM
		order_intent
	WHERE
		JSON_EXTRACT(payload, '$.order_id') = ?
	`
)

func (db *DB) SaveOrderIntent(sessionKey string, intent *models.OrderIntent) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return errors.Wrap(err, "failed marshaling intent")
	}

	stmt, err := db.PrepareNamed(saveOrderIntent)
	if err != nil {
		return err
	}

	args := map[string]interface{}{
		"session_key": sessionKey,
		"payload":     string(payload),
	}

	if _, err := stmt.Exec(args); err != nil {
		return err
	}

	return nil
}

// GetOrderIntent returns nil for a missing or unparsable intent. A corrupt
// payload means no payment is in flight as far as the caller is concerned.
func (db *DB) GetOrderIntent(sessionKey string) (*models.OrderIntent, error) {
	var payload string

	row := db.QueryRow(db.Rebind(getOrderIntent), sessionKey)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	var intent models.OrderIntent
	if err := json.Unmarshal([]byte(payload), &intent); err != nil {
		log.WithFields(log.Fields{
			"session_key": sessionKey,
		}).Warn("discarding unparsable order intent")
		return nil, nil
	}

	return &intent, nil
}

func (db *DB) ClearOrderIntent(sessionKey string) error {
	if _, err := db.Exec(db.Rebind(clearOrderIntent), sessionKey); err != nil {
		return err
	}

	return nil
}

// ClearOrderIntentsByOrder drops every pending intent for an order. Used
// when the payment confirmation arrives server-to-server and the buyer's
// browsing context may never come back to clear its own row.
func (db *DB) ClearOrderIntentsByOrder(orderID int) error {
	if _, err := db.Exec(db.Rebind(clearOrderIntentsByOrder), orderID); err != nil {
		return err
	}

	return nil
}
