package board

import (
	"errors"
	"testing"

	"github.com/appetiteclub/comanda/pkg/enums/route"
)

func TestNextPosition(t *testing.T) {
	a := newTestRouteOrder(t, 1, 1, route.Routes.Route1, testToday)
	b := newTestRouteOrder(t, 2, 4, route.Routes.Route1, testToday)
	other := newTestRouteOrder(t, 3, 9, route.Routes.Route2, testToday)

	tests := []struct {
		name string
		rt   route.Route
		date string
		want int
	}{
		{name: "appendsAfterMax", rt: route.Routes.Route1, date: testToday, want: 5},
		{name: "ignoresOtherRoutes", rt: route.Routes.Route2, date: testToday, want: 10},
		{name: "emptyRouteStartsAtOne", rt: route.Routes.Route1, date: "2026-08-21", want: 1},
		{name: "unassignedStaysZero", rt: route.Routes.Unassigned, date: testToday, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPosition([]*Order{a, b, other}, tt.rt, tt.date); got != tt.want {
				t.Errorf("NextPosition() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReorderSwapsNeighbors(t *testing.T) {
	first := newTestRouteOrder(t, 1, 1, route.Routes.Route1, testToday)
	second := newTestRouteOrder(t, 2, 2, route.Routes.Route1, testToday)
	third := newTestRouteOrder(t, 3, 3, route.Routes.Route1, testToday)
	snapshot := []*Order{first, second, third}

	patches, err := Reorder(snapshot, second, -1)
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if len(patches) != 2 {
		t.Fatalf("patches = %d, want exactly the two swapped orders", len(patches))
	}
	if second.RoutePosition != 1 || first.RoutePosition != 2 {
		t.Errorf("positions = %d/%d, want swapped 1/2", second.RoutePosition, first.RoutePosition)
	}
	if third.RoutePosition != 3 {
		t.Error("uninvolved order moved")
	}

	// The position multiset is preserved by a swap.
	got := map[int]bool{first.RoutePosition: true, second.RoutePosition: true, third.RoutePosition: true}
	for _, want := range []int{1, 2, 3} {
		if !got[want] {
			t.Errorf("position %d lost after swap", want)
		}
	}
}

func TestReorderEdges(t *testing.T) {
	first := newTestRouteOrder(t, 1, 1, route.Routes.Route1, testToday)
	second := newTestRouteOrder(t, 2, 2, route.Routes.Route1, testToday)
	snapshot := []*Order{first, second}

	tests := []struct {
		name   string
		target *Order
		delta  int
	}{
		{name: "upAtTop", target: first, delta: -1},
		{name: "downAtBottom", target: second, delta: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, err := Reorder(snapshot, tt.target, tt.delta)
			if err != nil {
				t.Fatalf("Reorder() error = %v", err)
			}
			if patches != nil {
				t.Errorf("Reorder() at edge = %v, want nil no-op", patches)
			}
		})
	}
}

func TestReorderRejections(t *testing.T) {
	delivery := newTestDelivery(t, 1)
	if _, err := Reorder([]*Order{delivery}, delivery, 1); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Reorder() on delivery error = %v, want ErrWrongKind", err)
	}

	loose := newTestRouteOrder(t, 1, 0, route.Routes.Unassigned, testToday)
	if _, err := Reorder([]*Order{loose}, loose, 1); !errors.Is(err, ErrRouteUnassigned) {
		t.Errorf("Reorder() on unassigned error = %v, want ErrRouteUnassigned", err)
	}
}

func TestReorderMissingTarget(t *testing.T) {
	member := newTestRouteOrder(t, 1, 1, route.Routes.Route1, testToday)
	ghost := newTestRouteOrder(t, 2, 2, route.Routes.Route1, testToday)

	patches, err := Reorder([]*Order{member}, ghost, -1)
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if patches != nil {
		t.Errorf("Reorder() with target absent from snapshot = %v, want nil", patches)
	}
}

func TestMoveToRoute(t *testing.T) {
	tests := []struct {
		name         string
		position     int
		rt           route.Route
		wantPosition int
	}{
		{name: "keepsPosition", position: 3, rt: route.Routes.Route2, wantPosition: 3},
		{name: "defaultsToOne", position: 0, rt: route.Routes.Route1, wantPosition: 1},
		{name: "unassignedResets", position: 5, rt: route.Routes.Unassigned, wantPosition: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestRouteOrder(t, 1, tt.position, route.Routes.Route1, testToday)
			o.RoutePosition = tt.position
			patch, err := MoveToRoute(o, tt.rt)
			if err != nil {
				t.Fatalf("MoveToRoute() error = %v", err)
			}
			if o.Route != tt.rt.Name {
				t.Errorf("Route = %q, want %q", o.Route, tt.rt.Name)
			}
			if o.RoutePosition != tt.wantPosition {
				t.Errorf("RoutePosition = %d, want %d", o.RoutePosition, tt.wantPosition)
			}
			if patch["route"] != tt.rt.Name || patch["route_position"] != tt.wantPosition {
				t.Errorf("patch = %v", patch)
			}
		})
	}

	delivery := newTestDelivery(t, 1)
	if _, err := MoveToRoute(delivery, route.Routes.Route1); !errors.Is(err, ErrWrongKind) {
		t.Errorf("MoveToRoute() on delivery error = %v, want ErrWrongKind", err)
	}
}
