package board

import (
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/appetiteclub/comanda/pkg/enums/orderstatus"
	"github.com/appetiteclub/comanda/pkg/enums/route"
)

const (
	// KindDelivery is a plain delivery order worked by the kitchen and
	// dispatch stations.
	KindDelivery = "delivery"
	// KindRoute is a route-planning order; same lifecycle, but numbered by
	// the per-date atomic counter and ordered manually within a route.
	KindRoute = "route"
)

// BusinessDateLayout is the ledger's date partition key format.
const BusinessDateLayout = "2006-01-02"

// Order is the single tagged ledger entity. Delivery and route orders share
// the whole lifecycle; Kind only selects how the daily number is allocated
// and whether the route fields mean anything.
type Order struct {
	ID   uuid.UUID `json:"id" bson:"_id"`
	Kind string    `json:"kind" bson:"kind"`

	// DailySeq is the human-facing per-date number. For delivery orders it
	// is staff-chosen and advisory (collisions accepted); for route orders
	// it comes from the atomic per-date counter and never repeats.
	DailySeq     int    `json:"daily_seq" bson:"daily_seq"`
	BusinessDate string `json:"business_date" bson:"business_date"`

	// Snapshot of the resolved directory entry at creation time. Directory
	// edits never propagate back into existing orders.
	ClientName    string `json:"client_name" bson:"client_name"`
	ClientCode    string `json:"client_code,omitempty" bson:"client_code,omitempty"`
	ClientAddress string `json:"client_address,omitempty" bson:"client_address,omitempty"`

	ItemsText string `json:"items_text" bson:"items_text"`

	Status  string `json:"status" bson:"status"`
	Cook    string `json:"cook,omitempty" bson:"cook,omitempty"`
	Courier string `json:"courier,omitempty" bson:"courier,omitempty"`

	// Lifecycle entry times, each set at most once. Revisiting a state
	// after an undo never rewrites its timestamp.
	QueuedAt     *time.Time `json:"queued_at,omitempty" bson:"queued_at,omitempty"`
	PreparingAt  *time.Time `json:"preparing_at,omitempty" bson:"preparing_at,omitempty"`
	ReadyAt      *time.Time `json:"ready_at,omitempty" bson:"ready_at,omitempty"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty" bson:"dispatched_at,omitempty"`

	// JustCreated gates the one-shot station cue; the cue consumer clears
	// it after firing so replayed snapshots stay silent.
	JustCreated bool `json:"just_created" bson:"just_created"`

	// Route fields, meaningful only for KindRoute.
	Route         string `json:"route,omitempty" bson:"route,omitempty"`
	RoutePosition int    `json:"route_position,omitempty" bson:"route_position,omitempty"`
	RouteNotes    string `json:"route_notes,omitempty" bson:"route_notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	ModelVersion int `json:"model_version" bson:"model_version"`
}

// Clone returns an independent copy of the order, lifecycle timestamps
// included. Snapshot readers mutate their copies freely; the cached
// originals stay untouched.
func (o *Order) Clone() *Order {
	cp := *o
	cp.QueuedAt = cloneTime(o.QueuedAt)
	cp.PreparingAt = cloneTime(o.PreparingAt)
	cp.ReadyAt = cloneTime(o.ReadyAt)
	cp.DispatchedAt = cloneTime(o.DispatchedAt)
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
	o.ModelVersion = 1
}

// IsToday reports whether the order belongs to the given business date.
func (o *Order) IsToday(today string) bool {
	return o.BusinessDate == today
}

// RouteOrNone normalizes the route field; legacy rows without one fall into
// the unassigned bucket.
func (o *Order) RouteOrNone() route.Route {
	if r := route.ByName(o.Route); r != nil {
		return *r
	}
	return route.Routes.Unassigned
}

// NewDeliveryOrder creates an intake order snapshotting the resolved
// directory entry. dailySeq is whatever the operator settled on; it is a
// label, not an allocation.
func NewDeliveryOrder(client Client, itemsText string, dailySeq int, now time.Time) (*Order, error) {
	if strings.TrimSpace(client.Name) == "" {
		return nil, ErrMissingClient
	}
	if strings.TrimSpace(itemsText) == "" {
		return nil, ErrEmptyItems
	}
	queued := now
	o := &Order{
		Kind:          KindDelivery,
		DailySeq:      dailySeq,
		BusinessDate:  now.Format(BusinessDateLayout),
		ClientName:    client.Name,
		ClientCode:    client.Code,
		ClientAddress: client.Address,
		ItemsText:     strings.TrimSpace(itemsText),
		Status:        orderstatus.Statuses.Pending.Name,
		QueuedAt:      &queued,
		JustCreated:   true,
	}
	o.BeforeCreate()
	return o, nil
}

// NewRouteOrder creates a route order. dailySeq must come from the atomic
// per-date counter; businessDate is operator-chosen (route sheets are often
// prepared a day ahead) and defaults to today when empty.
func NewRouteOrder(client Client, itemsText string, dailySeq int, rt route.Route, position int, businessDate string, now time.Time) (*Order, error) {
	if strings.TrimSpace(client.Name) == "" {
		return nil, ErrMissingClient
	}
	if strings.TrimSpace(itemsText) == "" {
		return nil, ErrEmptyItems
	}
	if businessDate == "" {
		businessDate = now.Format(BusinessDateLayout)
	}
	if !rt.Assigned() {
		position = 0
	}
	queued := now
	o := &Order{
		Kind:          KindRoute,
		DailySeq:      dailySeq,
		BusinessDate:  businessDate,
		ClientName:    client.Name,
		ClientCode:    client.Code,
		ClientAddress: client.Address,
		ItemsText:     strings.TrimSpace(itemsText),
		Status:        orderstatus.Statuses.Pending.Name,
		QueuedAt:      &queued,
		JustCreated:   true,
		Route:         rt.Name,
		RoutePosition: position,
	}
	o.BeforeCreate()
	return o, nil
}
