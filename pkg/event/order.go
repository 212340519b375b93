package event

import "time"

const (
	// LedgerTopic delivers change notifications for the shared order ledger.
	// Every mutation (create, patch, delete) publishes here; stations react
	// by re-reading the full ledger snapshot, never by applying diffs.
	LedgerTopic = "ledger.orders"

	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// OrderEventMetadata is the envelope shared by all ledger events. Payloads
// carry just enough to log and route; the authoritative state always comes
// from a fresh ledger read.
type OrderEventMetadata struct {
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	OrderID      string    `json:"order_id"`
	Kind         string    `json:"kind"`
	BusinessDate string    `json:"business_date"`
	Station      string    `json:"station,omitempty"`
}

type OrderCreatedEvent struct {
	OrderEventMetadata
	DailySeq   int    `json:"daily_seq"`
	ClientName string `json:"client_name"`
	Route      string `json:"route,omitempty"`
}

type OrderUpdatedEvent struct {
	OrderEventMetadata
	Fields []string `json:"fields,omitempty"`
}

type OrderDeletedEvent struct {
	OrderEventMetadata
}
