package board

import (
	"sort"

	"github.com/appetiteclub/comanda/pkg/enums/orderstatus"
	"github.com/appetiteclub/comanda/pkg/enums/route"
)

// Projections are pure functions of a ledger snapshot: inputs are never
// mutated, and the same snapshot always yields the same output. Stations
// recompute them from scratch on every change notification.

// BoardView bundles the live, actionable views for today's date.
type BoardView struct {
	KitchenQueue []*Order `json:"kitchen_queue"`
	DispatchList []*Order `json:"dispatch_list"`
}

// HistoricalRow pairs an order with its display sequence. The stored daily
// seq wins; rows predating the numbering scheme fall back to their position
// within their date's group.
type HistoricalRow struct {
	Order      *Order `json:"order"`
	DisplaySeq int    `json:"display_seq"`
}

// Project derives today's kitchen queue and dispatch list from a snapshot.
func Project(orders []*Order, today string) BoardView {
	var kitchen, dispatch []*Order
	for _, o := range orders {
		if !o.IsToday(today) {
			continue
		}
		dispatch = append(dispatch, o)
		if o.Status != orderstatus.Statuses.Dispatched.Name {
			kitchen = append(kitchen, o)
		}
	}
	sortByDailySeq(kitchen)
	sortByDailySeq(dispatch)
	return BoardView{KitchenQueue: kitchen, DispatchList: dispatch}
}

// Historical lists past (non-today) orders, cancelled ones excluded, most
// recent date first. from/to are inclusive business-date bounds; empty
// bounds are open.
func Historical(orders []*Order, today, from, to string) []HistoricalRow {
	var past []*Order
	for _, o := range orders {
		if o.IsToday(today) || o.Status == orderstatus.Statuses.Cancelled.Name {
			continue
		}
		if from != "" && o.BusinessDate < from {
			continue
		}
		if to != "" && o.BusinessDate > to {
			continue
		}
		past = append(past, o)
	}
	sort.SliceStable(past, func(i, j int) bool {
		if past[i].BusinessDate != past[j].BusinessDate {
			return past[i].BusinessDate > past[j].BusinessDate
		}
		return past[i].DailySeq < past[j].DailySeq
	})
	rows := make([]HistoricalRow, 0, len(past))
	pos := 0
	prevDate := ""
	for _, o := range past {
		if o.BusinessDate != prevDate {
			prevDate = o.BusinessDate
			pos = 0
		}
		pos++
		seq := o.DailySeq
		if seq == 0 {
			seq = pos
		}
		rows = append(rows, HistoricalRow{Order: o, DisplaySeq: seq})
	}
	return rows
}

// RoutePanels groups the date's route orders per route, each panel sorted
// by (position, daily seq). The daily-seq tie-break keeps panels stable
// when positions transiently collide after a racing swap.
func RoutePanels(orders []*Order, businessDate string) map[string][]*Order {
	panels := make(map[string][]*Order, len(route.All))
	for _, r := range route.All {
		panels[r.Name] = nil
	}
	for _, o := range orders {
		if o.Kind != KindRoute || o.BusinessDate != businessDate {
			continue
		}
		name := o.RouteOrNone().Name
		panels[name] = append(panels[name], o)
	}
	for _, members := range panels {
		sortByRoutePosition(members)
	}
	return panels
}

func sortByDailySeq(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].DailySeq != orders[j].DailySeq {
			return orders[i].DailySeq < orders[j].DailySeq
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}

func sortByRoutePosition(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].RoutePosition != orders[j].RoutePosition {
			return orders[i].RoutePosition < orders[j].RoutePosition
		}
		return orders[i].DailySeq < orders[j].DailySeq
	})
}
