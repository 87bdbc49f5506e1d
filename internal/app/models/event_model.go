package models

import "time"

type EventType string

const (
	EventFuelTransactionCreated EventType = "FUEL_TRANSACTION_CREATED"
	EventFuelTransactionUpdated EventType = "FUEL_TRANSACTION_UPDATED"
	EventAlertCreated           EventType = "ALERT_CREATED"
	EventAlertResolved          EventType = "ALERT_RESOLVED"
	EventFuelPriceUpdated       EventType = "FUEL_PRICE_UPDATED"
)

// Event is the fire-and-forget payload published to the realtime
// relay. Consumers treat it as a UI refresh hint, not a durability
// boundary.
type Event struct {
	EventID   string         `json:"event_id"`
	EventType EventType      `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}
