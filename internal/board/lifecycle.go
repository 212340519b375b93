package board

import (
	"strings"
	"time"

	"github.com/appetiteclub/comanda/pkg/enums/orderstatus"
)

// Action is an operator-triggered lifecycle intent. There are no timed or
// automatic transitions on this board.
type Action string

const (
	ActionAssignCook    Action = "assign-cook"
	ActionMarkReady     Action = "mark-ready"
	ActionAssignCourier Action = "assign-courier"
	ActionUnready       Action = "unready"
	ActionCancel        Action = "cancel"
	ActionRestore       Action = "restore"
)

// Patch is a partial field update with merge semantics: only the named
// fields change, concurrent patches to different fields both persist, and
// concurrent writes to the same field resolve last-write-wins at the store.
type Patch map[string]any

// Apply validates a lifecycle action against the transition table, mutates
// the in-memory order, and returns the field patch to persist. An action
// whose target state already holds returns an empty patch (idempotent
// no-op, nothing written). Lifecycle entry timestamps are set exactly once;
// undo round-trips keep the original times.
func Apply(o *Order, action Action, actor string, now time.Time) (Patch, error) {
	switch action {
	case ActionAssignCook:
		return assignCook(o, actor, now)
	case ActionMarkReady:
		return markReady(o, now)
	case ActionAssignCourier:
		return assignCourier(o, actor, now)
	case ActionUnready:
		return unready(o)
	case ActionCancel:
		return cancel(o)
	case ActionRestore:
		return restore(o)
	default:
		return nil, ErrIllegalTransition
	}
}

func assignCook(o *Order, cook string, now time.Time) (Patch, error) {
	if strings.TrimSpace(cook) == "" {
		return nil, ErrIllegalTransition
	}
	if o.Status != orderstatus.Statuses.Pending.Name {
		return nil, ErrIllegalTransition
	}
	o.Status = orderstatus.Statuses.InPreparation.Name
	o.Cook = cook
	patch := Patch{
		"status": o.Status,
		"cook":   o.Cook,
	}
	if o.PreparingAt == nil {
		t := now
		o.PreparingAt = &t
		patch["preparing_at"] = t
	}
	return patch, nil
}

func markReady(o *Order, now time.Time) (Patch, error) {
	if o.Status == orderstatus.Statuses.Ready.Name {
		return Patch{}, nil
	}
	if o.Status != orderstatus.Statuses.InPreparation.Name {
		return nil, ErrIllegalTransition
	}
	o.Status = orderstatus.Statuses.Ready.Name
	patch := Patch{"status": o.Status}
	if o.ReadyAt == nil {
		t := now
		o.ReadyAt = &t
		patch["ready_at"] = t
	}
	return patch, nil
}

func assignCourier(o *Order, courier string, now time.Time) (Patch, error) {
	if strings.TrimSpace(courier) == "" {
		return nil, ErrIllegalTransition
	}
	if o.Status != orderstatus.Statuses.Ready.Name {
		return nil, ErrIllegalTransition
	}
	o.Status = orderstatus.Statuses.Dispatched.Name
	o.Courier = courier
	patch := Patch{
		"status":  o.Status,
		"courier": o.Courier,
	}
	if o.DispatchedAt == nil {
		t := now
		o.DispatchedAt = &t
		patch["dispatched_at"] = t
	}
	return patch, nil
}

// unready undoes a "ready" marking. State reverts, history stays: ready_at
// keeps its original value.
func unready(o *Order) (Patch, error) {
	if o.Status == orderstatus.Statuses.Pending.Name {
		return Patch{}, nil
	}
	if o.Status != orderstatus.Statuses.Ready.Name {
		return nil, ErrIllegalTransition
	}
	o.Status = orderstatus.Statuses.Pending.Name
	return Patch{"status": o.Status}, nil
}

func cancel(o *Order) (Patch, error) {
	switch o.Status {
	case orderstatus.Statuses.Cancelled.Name:
		return Patch{}, nil
	case orderstatus.Statuses.Dispatched.Name:
		return nil, ErrIllegalTransition
	case orderstatus.Statuses.Pending.Name,
		orderstatus.Statuses.InPreparation.Name,
		orderstatus.Statuses.Ready.Name:
		o.Status = orderstatus.Statuses.Cancelled.Name
		return Patch{"status": o.Status}, nil
	default:
		return nil, ErrUnknownStatus
	}
}

// restore undoes a cancellation. The order always lands on pending, even if
// it was ready when cancelled; the intermediate progress is deliberately
// lost and must be re-earned on the board.
func restore(o *Order) (Patch, error) {
	switch o.Status {
	case orderstatus.Statuses.Pending.Name:
		return Patch{}, nil
	case orderstatus.Statuses.Cancelled.Name:
		o.Status = orderstatus.Statuses.Pending.Name
		return Patch{"status": o.Status}, nil
	default:
		return nil, ErrIllegalTransition
	}
}

// EditItems rewrites the free-form items text. Allowed in any state except
// dispatched; editing never touches the status.
func EditItems(o *Order, itemsText string) (Patch, error) {
	if o.Status == orderstatus.Statuses.Dispatched.Name {
		return nil, ErrOrderDispatched
	}
	itemsText = strings.TrimSpace(itemsText)
	if itemsText == "" {
		return nil, ErrEmptyItems
	}
	o.ItemsText = itemsText
	return Patch{"items_text": itemsText}, nil
}

// EditRouteNotes rewrites the route notes, independent of lifecycle state.
func EditRouteNotes(o *Order, notes string) (Patch, error) {
	if o.Kind != KindRoute {
		return nil, ErrWrongKind
	}
	o.RouteNotes = notes
	return Patch{"route_notes": notes}, nil
}

// ClearCue acknowledges the one-shot creation cue. Clearing an already
// clear flag is a no-op, which keeps replayed snapshot deliveries silent.
func ClearCue(o *Order) Patch {
	if !o.JustCreated {
		return Patch{}
	}
	o.JustCreated = false
	return Patch{"just_created": false}
}
