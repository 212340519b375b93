package board

import (
	"github.com/google/uuid"

	"github.com/appetiteclub/comanda/pkg/enums/route"
)

// Route ordering maintains a manual total order per route via integer
// positions, independent of creation order. Reordering swaps positions with
// a neighbor through two independent field patches; there is no transaction
// around the pair. Two stations reordering the same route at once can
// interleave and leave a transient duplicate position — accepted eventual
// consistency, self-healing because panels sort by (position, daily seq).
// Deleting an order never compacts the remaining positions; gaps are fine.

// PatchRef targets a patch at a specific ledger key.
type PatchRef struct {
	ID     uuid.UUID
	Fields Patch
}

// NextPosition computes the position for an order about to join a route:
// 0 for the unassigned bucket, otherwise max over the route's members of
// that date, plus one.
func NextPosition(orders []*Order, rt route.Route, businessDate string) int {
	if !rt.Assigned() {
		return 0
	}
	max := 0
	for _, o := range routeMembers(orders, rt, businessDate) {
		if o.RoutePosition > max {
			max = o.RoutePosition
		}
	}
	return max + 1
}

// Reorder moves the order one step up (-1) or down (+1) within its route by
// swapping positions with its neighbor. At the edge of the panel it is a
// no-op. Exactly the two swapped orders are patched, nothing else moves.
func Reorder(orders []*Order, target *Order, delta int) ([]PatchRef, error) {
	if target.Kind != KindRoute {
		return nil, ErrWrongKind
	}
	rt := target.RouteOrNone()
	if !rt.Assigned() {
		return nil, ErrRouteUnassigned
	}
	members := routeMembers(orders, rt, target.BusinessDate)
	sortByRoutePosition(members)

	idx := -1
	for i, o := range members {
		if o.ID == target.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}
	j := idx + delta
	if j < 0 || j >= len(members) {
		return nil, nil
	}

	a, b := members[idx], members[j]
	pa, pb := a.RoutePosition, b.RoutePosition
	a.RoutePosition, b.RoutePosition = pb, pa
	return []PatchRef{
		{ID: a.ID, Fields: Patch{"route_position": pb}},
		{ID: b.ID, Fields: Patch{"route_position": pa}},
	}, nil
}

// MoveToRoute reassigns the order's route. Moving into the unassigned
// bucket resets the position to 0; moving between ordered routes keeps the
// existing position, defaulting to 1 when the order never had one.
func MoveToRoute(o *Order, rt route.Route) (Patch, error) {
	if o.Kind != KindRoute {
		return nil, ErrWrongKind
	}
	position := o.RoutePosition
	if !rt.Assigned() {
		position = 0
	} else if position == 0 {
		position = 1
	}
	o.Route = rt.Name
	o.RoutePosition = position
	return Patch{
		"route":          rt.Name,
		"route_position": position,
	}, nil
}

func routeMembers(orders []*Order, rt route.Route, businessDate string) []*Order {
	var members []*Order
	for _, o := range orders {
		if o.Kind != KindRoute || o.BusinessDate != businessDate {
			continue
		}
		if o.RouteOrNone().Name != rt.Name {
			continue
		}
		members = append(members, o)
	}
	return members
}
