package board

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/appetiteclub/comanda/pkg/event"
	"github.com/appetiteclub/comanda/pkg/enums/route"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
	ledger    LedgerRepo
	counters  CounterRepo
	directory DirectoryRepo
	cache     *BoardCache
	publisher events.Publisher
	station   string
	now       func() time.Time
}

type HandlerDeps struct {
	Ledger    LedgerRepo
	Counters  CounterRepo
	Directory DirectoryRepo
	Cache     *BoardCache
	Publisher events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if config == nil {
		config = apt.NewConfig()
	}
	station := config.GetStringOrDef("station.name", "station")
	return &Handler{
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
		ledger:    hd.Ledger,
		counters:  hd.Counters,
		directory: hd.Directory,
		cache:     hd.Cache,
		publisher: hd.Publisher,
		station:   station,
		now:       time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/next-seq", h.NextDailySeq)
		r.Get("/{id}", h.GetOrder)
		r.Delete("/{id}", h.DeleteOrder)
		r.Patch("/{id}/assign-cook", h.AssignCook)
		r.Patch("/{id}/ready", h.MarkReady)
		r.Patch("/{id}/assign-courier", h.AssignCourier)
		r.Patch("/{id}/unready", h.Unready)
		r.Patch("/{id}/cancel", h.CancelOrder)
		r.Patch("/{id}/restore", h.RestoreOrder)
		r.Put("/{id}/items", h.EditItemsText)
		r.Patch("/{id}/route", h.MoveOrderToRoute)
		r.Patch("/{id}/position", h.ReorderOnRoute)
		r.Put("/{id}/route-notes", h.EditRouteNotesText)
	})

	r.Post("/route-orders", h.CreateRouteOrder)

	r.Route("/board", func(r chi.Router) {
		r.Get("/kitchen", h.KitchenBoard)
		r.Get("/dispatch", h.DispatchBoard)
		r.Get("/routes", h.RoutesBoard)
		r.Get("/history", h.HistoryBoard)
		r.Get("/history/export", h.ExportHistory)
	})

	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.CreateClient)
		r.Get("/", h.SearchClients)
		r.Put("/{id}", h.UpdateClient)
		r.Post("/import", h.ImportClients)
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

// Order intake

type createOrderPayload struct {
	ClientID  string `json:"client_id"`
	ItemsText string `json:"items_text"`
	DailySeq  int    `json:"daily_seq,omitempty"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload createOrderPayload
	if !h.decode(w, r, &payload) {
		return
	}

	client, ok := h.resolveClient(w, r, payload.ClientID)
	if !ok {
		return
	}

	now := h.now()
	seq := payload.DailySeq
	if seq == 0 {
		// Advisory only: the suggestion is a convenience, never a
		// uniqueness guarantee.
		seq = SuggestDailySeq(h.cache.Snapshot(), now.Format(BusinessDateLayout))
	}

	o, err := NewDeliveryOrder(*client, payload.ItemsText, seq, now)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.Create(ctx, o); err != nil {
		log.Errorf("cannot create order: %v", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	h.publishCreated(r, o)
	apt.Respond(w, http.StatusCreated, o, nil)
}

type createRouteOrderPayload struct {
	ClientID     string `json:"client_id"`
	ItemsText    string `json:"items_text"`
	Route        string `json:"route"`
	BusinessDate string `json:"business_date,omitempty"`
}

func (h *Handler) CreateRouteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateRouteOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload createRouteOrderPayload
	if !h.decode(w, r, &payload) {
		return
	}

	client, ok := h.resolveClient(w, r, payload.ClientID)
	if !ok {
		return
	}

	rt := route.ByName(payload.Route)
	if rt == nil {
		apt.RespondError(w, http.StatusBadRequest, ErrUnknownRoute.Error())
		return
	}

	now := h.now()
	businessDate := payload.BusinessDate
	if businessDate == "" {
		businessDate = now.Format(BusinessDateLayout)
	}

	// The one place the board needs true atomicity: the per-date counter
	// hands out each value exactly once, across any number of stations.
	seq, err := h.counters.NextSequence(ctx, businessDate)
	if err != nil {
		log.Errorf("cannot allocate route sequence for %s: %v", businessDate, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not allocate daily sequence")
		return
	}

	position := NextPosition(h.cache.Snapshot(), *rt, businessDate)
	o, err := NewRouteOrder(*client, payload.ItemsText, seq, *rt, position, businessDate, now)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.Create(ctx, o); err != nil {
		log.Errorf("cannot create route order: %v", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create route order")
		return
	}

	h.publishCreated(r, o)
	apt.Respond(w, http.StatusCreated, o, nil)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		orders []*Order
		err    error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		orders, err = h.ledger.ListByDate(ctx, date)
	} else {
		orders, err = h.ledger.List(ctx)
	}
	if err != nil {
		log.Errorf("cannot list orders: %v", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not list orders")
		return
	}

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
	}, nil)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	apt.Respond(w, http.StatusOK, o, nil)
}

func (h *Handler) NextDailySeq(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.NextDailySeq")
	defer finish()

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.now().Format(BusinessDateLayout)
	}
	seq := SuggestDailySeq(h.cache.Snapshot(), date)
	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"business_date": date,
		"daily_seq":     seq,
	}, nil)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	if o.Kind != KindRoute {
		apt.RespondError(w, http.StatusConflict, ErrWrongKind.Error())
		return
	}

	if err := h.ledger.Delete(ctx, o.ID); err != nil {
		log.Errorf("cannot delete order %s: %v", o.ID, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete order")
		return
	}

	h.publishEvent(r, event.EventOrderDeleted, o, nil)
	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"deleted": o.ID,
	}, nil)
}

// Lifecycle

type assignCookPayload struct {
	Cook string `json:"cook"`
}

func (h *Handler) AssignCook(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AssignCook")
	defer finish()

	var payload assignCookPayload
	if !h.decode(w, r, &payload) {
		return
	}
	h.applyAction(w, r, ActionAssignCook, payload.Cook)
}

func (h *Handler) MarkReady(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MarkReady")
	defer finish()
	h.applyAction(w, r, ActionMarkReady, "")
}

type assignCourierPayload struct {
	Courier string `json:"courier"`
}

func (h *Handler) AssignCourier(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AssignCourier")
	defer finish()

	var payload assignCourierPayload
	if !h.decode(w, r, &payload) {
		return
	}
	h.applyAction(w, r, ActionAssignCourier, payload.Courier)
}

func (h *Handler) Unready(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Unready")
	defer finish()
	h.applyAction(w, r, ActionUnready, "")
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CancelOrder")
	defer finish()
	h.applyAction(w, r, ActionCancel, "")
}

func (h *Handler) RestoreOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RestoreOrder")
	defer finish()
	h.applyAction(w, r, ActionRestore, "")
}

func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request, action Action, actor string) {
	log := h.log(r)
	ctx := r.Context()

	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	patch, err := Apply(o, action, actor, h.now())
	if err != nil {
		apt.RespondError(w, http.StatusConflict, err.Error())
		return
	}
	if len(patch) == 0 {
		// Already in the target state; nothing written, nothing published.
		apt.Respond(w, http.StatusOK, o, nil)
		return
	}

	if err := h.ledger.Patch(ctx, o.ID, patch); err != nil {
		log.Errorf("cannot apply %s to order %s: %v", action, o.ID, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	h.publishEvent(r, event.EventOrderUpdated, o, patch)
	apt.Respond(w, http.StatusOK, o, nil)
}

type itemsPayload struct {
	ItemsText string `json:"items_text"`
}

func (h *Handler) EditItemsText(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.EditItemsText")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload itemsPayload
	if !h.decode(w, r, &payload) {
		return
	}

	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	patch, err := EditItems(o, payload.ItemsText)
	if err != nil {
		apt.RespondError(w, http.StatusConflict, err.Error())
		return
	}

	if err := h.ledger.Patch(ctx, o.ID, patch); err != nil {
		log.Errorf("cannot edit items on order %s: %v", o.ID, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	h.publishEvent(r, event.EventOrderUpdated, o, patch)
	apt.Respond(w, http.StatusOK, o, nil)
}

// Route planning

type moveRoutePayload struct {
	Route string `json:"route"`
}

func (h *Handler) MoveOrderToRoute(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MoveOrderToRoute")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload moveRoutePayload
	if !h.decode(w, r, &payload) {
		return
	}

	rt := route.ByName(payload.Route)
	if rt == nil {
		apt.RespondError(w, http.StatusBadRequest, ErrUnknownRoute.Error())
		return
	}

	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	patch, err := MoveToRoute(o, *rt)
	if err != nil {
		apt.RespondError(w, http.StatusConflict, err.Error())
		return
	}

	if err := h.ledger.Patch(ctx, o.ID, patch); err != nil {
		log.Errorf("cannot move order %s to route %s: %v", o.ID, rt.Name, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	h.publishEvent(r, event.EventOrderUpdated, o, patch)
	apt.Respond(w, http.StatusOK, o, nil)
}

type reorderPayload struct {
	Direction string `json:"direction"`
}

func (h *Handler) ReorderOnRoute(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ReorderOnRoute")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload reorderPayload
	if !h.decode(w, r, &payload) {
		return
	}

	var delta int
	switch payload.Direction {
	case "up":
		delta = -1
	case "down":
		delta = 1
	default:
		apt.RespondError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}

	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	// The swap works over this station's snapshot, like every other view.
	// A racing reorder elsewhere may interleave; the panel sort absorbs it.
	snapshot := h.cache.Snapshot()
	target := findOrder(snapshot, o.ID)
	if target == nil {
		snapshot = append(snapshot, o)
		target = o
	}

	patches, err := Reorder(snapshot, target, delta)
	if err != nil {
		apt.RespondError(w, http.StatusConflict, err.Error())
		return
	}
	if len(patches) == 0 {
		apt.Respond(w, http.StatusOK, target, nil)
		return
	}

	for _, p := range patches {
		if err := h.ledger.Patch(ctx, p.ID, p.Fields); err != nil {
			log.Errorf("cannot reorder order %s: %v", p.ID, err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not reorder route")
			return
		}
	}

	h.publishEvent(r, event.EventOrderUpdated, target, Patch{"route_position": target.RoutePosition})
	apt.Respond(w, http.StatusOK, target, nil)
}

type routeNotesPayload struct {
	Notes string `json:"notes"`
}

func (h *Handler) EditRouteNotesText(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.EditRouteNotesText")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload routeNotesPayload
	if !h.decode(w, r, &payload) {
		return
	}

	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	patch, err := EditRouteNotes(o, payload.Notes)
	if err != nil {
		apt.RespondError(w, http.StatusConflict, err.Error())
		return
	}

	if err := h.ledger.Patch(ctx, o.ID, patch); err != nil {
		log.Errorf("cannot edit route notes on order %s: %v", o.ID, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	h.publishEvent(r, event.EventOrderUpdated, o, patch)
	apt.Respond(w, http.StatusOK, o, nil)
}

// Projections

func (h *Handler) KitchenBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.KitchenBoard")
	defer finish()

	view := Project(h.cache.Snapshot(), h.now().Format(BusinessDateLayout))
	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"kitchen_queue": view.KitchenQueue,
	}, nil)
}

func (h *Handler) DispatchBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DispatchBoard")
	defer finish()

	view := Project(h.cache.Snapshot(), h.now().Format(BusinessDateLayout))
	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"dispatch_list": view.DispatchList,
	}, nil)
}

func (h *Handler) RoutesBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RoutesBoard")
	defer finish()

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.now().Format(BusinessDateLayout)
	}
	panels := RoutePanels(h.cache.Snapshot(), date)
	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"business_date": date,
		"panels":        panels,
	}, nil)
}

func (h *Handler) HistoryBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.HistoryBoard")
	defer finish()

	q := r.URL.Query()
	rows := Historical(h.cache.Snapshot(), h.now().Format(BusinessDateLayout), q.Get("from"), q.Get("to"))
	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"rows": rows,
	}, nil)
}

func (h *Handler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ExportHistory")
	defer finish()
	log := h.log(r)

	q := r.URL.Query()
	rows := Historical(h.cache.Snapshot(), h.now().Format(BusinessDateLayout), q.Get("from"), q.Get("to"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := ExportCSV(w, rows); err != nil {
		log.Errorf("cannot export history: %v", err)
	}
}

// Client directory

type clientPayload struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateClient")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var payload clientPayload
	if !h.decode(w, r, &payload) {
		return
	}

	c, err := NewClient(payload.Name, payload.Code, payload.Address)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.directory.Create(ctx, c); err != nil {
		log.Errorf("cannot create client: %v", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create client")
		return
	}

	apt.Respond(w, http.StatusCreated, c, nil)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateClient")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	var payload clientPayload
	if !h.decode(w, r, &payload) {
		return
	}

	c, err := h.directory.Get(ctx, id)
	if err != nil {
		log.Errorf("cannot find client %s: %v", id, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not load client")
		return
	}
	if c == nil {
		apt.RespondError(w, http.StatusNotFound, "Client not found")
		return
	}

	if payload.Name != "" {
		c.Name = payload.Name
	}
	c.Code = payload.Code
	c.Address = payload.Address
	c.BeforeUpdate()

	if err := h.directory.Save(ctx, c); err != nil {
		log.Errorf("cannot update client %s: %v", id, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update client")
		return
	}

	apt.Respond(w, http.StatusOK, c, nil)
}

func (h *Handler) SearchClients(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SearchClients")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	clients, err := h.directory.List(ctx)
	if err != nil {
		log.Errorf("cannot list clients: %v", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not search clients")
		return
	}

	q := r.URL.Query()
	scope := ScopeQuick
	if q.Get("scope") == string(ScopeRoute) {
		scope = ScopeRoute
	}
	matches := Search(clients, q.Get("q"), scope)

	apt.Respond(w, http.StatusOK, map[string]interface{}{
		"clients": matches,
		"total":   len(clients),
	}, nil)
}

func (h *Handler) ImportClients(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ImportClients")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	clients, err := ImportClientsCSV(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(clients) == 0 {
		apt.RespondError(w, http.StatusBadRequest, "No importable rows")
		return
	}

	if err := h.directory.CreateMany(ctx, clients); err != nil {
		log.Errorf("cannot import clients: %v", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not import clients")
		return
	}

	apt.Respond(w, http.StatusCreated, map[string]interface{}{
		"imported": len(clients),
	}, nil)
}

// Helpers

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func (h *Handler) loadOrder(w http.ResponseWriter, r *http.Request) (*Order, bool) {
	log := h.log(r)
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return nil, false
	}
	o, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		log.Errorf("cannot load order %s: %v", id, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not load order")
		return nil, false
	}
	if o == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return o, true
}

func (h *Handler) resolveClient(w http.ResponseWriter, r *http.Request, rawID string) (*Client, bool) {
	log := h.log(r)
	if rawID == "" {
		apt.RespondError(w, http.StatusBadRequest, ErrMissingClient.Error())
		return nil, false
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid client ID")
		return nil, false
	}
	c, err := h.directory.Get(r.Context(), id)
	if err != nil {
		log.Errorf("cannot resolve client %s: %v", id, err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not resolve client")
		return nil, false
	}
	if c == nil {
		apt.RespondError(w, http.StatusBadRequest, ErrMissingClient.Error())
		return nil, false
	}
	return c, true
}

func (h *Handler) publishCreated(r *http.Request, o *Order) {
	evt := event.OrderCreatedEvent{
		OrderEventMetadata: h.metadata(event.EventOrderCreated, o),
		DailySeq:           o.DailySeq,
		ClientName:         o.ClientName,
		Route:              o.Route,
	}
	h.publish(r, evt)
}

func (h *Handler) publishEvent(r *http.Request, eventType string, o *Order, patch Patch) {
	if eventType == event.EventOrderDeleted {
		h.publish(r, event.OrderDeletedEvent{OrderEventMetadata: h.metadata(eventType, o)})
		return
	}
	fields := make([]string, 0, len(patch))
	for k := range patch {
		fields = append(fields, k)
	}
	h.publish(r, event.OrderUpdatedEvent{
		OrderEventMetadata: h.metadata(eventType, o),
		Fields:             fields,
	})
}

func (h *Handler) metadata(eventType string, o *Order) event.OrderEventMetadata {
	return event.OrderEventMetadata{
		EventType:    eventType,
		OccurredAt:   h.now(),
		OrderID:      o.ID.String(),
		Kind:         o.Kind,
		BusinessDate: o.BusinessDate,
		Station:      h.station,
	}
}

// publish is best effort: a station that cannot notify still persisted the
// write, and every other station heals on its next snapshot reload.
func (h *Handler) publish(r *http.Request, evt interface{}) {
	if h.publisher == nil {
		return
	}
	body, err := json.Marshal(evt)
	if err != nil {
		h.log(r).Errorf("cannot marshal ledger event: %v", err)
		return
	}
	if err := h.publisher.Publish(r.Context(), event.LedgerTopic, body); err != nil {
		h.log(r).Errorf("cannot publish ledger event: %v", err)
	}
}

func findOrder(orders []*Order, id uuid.UUID) *Order {
	for _, o := range orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}
