package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/orders/internal/domain"
	"github.com/nikolayk812/orders/internal/port"
	"github.com/samber/lo"
)

var errInvalidID = errors.New("invalid id")

// Handler maps HTTP requests onto the order service.
type Handler struct {
	svc    port.OrderService
	logger *slog.Logger
}

func NewHandler(svc port.OrderService, logger *slog.Logger) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("service is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{svc: svc, logger: logger}, nil
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// ListOrders applies at most one of the customer_id, date and status filters.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := parseOrderFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(orders, func(o domain.Order, _ int) map[string]any {
		return o.Serialize()
	}))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	input, err := domain.DecodeOrder(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}

	w.Header().Set("Location", orderLocation(order.ID))
	writeJSON(w, http.StatusCreated, order.Serialize())
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, orderNotFound(orderID))
		return
	}

	writeJSON(w, http.StatusOK, order.Serialize())
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	input, err := domain.DecodeOrder(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.UpdateOrder(r.Context(), orderID, input)
	if err != nil {
		h.writeServiceError(w, r, err, orderNotFound(orderID))
		return
	}

	writeJSON(w, http.StatusOK, order.Serialize())
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteOrder(r.Context(), orderID); err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.CancelOrder(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, orderNotFound(orderID))
		return
	}

	writeJSON(w, http.StatusOK, order.Serialize())
}

func (h *Handler) RepeatOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.RepeatOrder(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, orderNotFound(orderID))
		return
	}

	w.Header().Set("Location", orderLocation(order.ID))
	writeJSON(w, http.StatusCreated, order.Serialize())
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	items, err := h.svc.ListItems(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, r, err, orderNotFound(orderID))
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(items, func(i domain.Item, _ int) map[string]any {
		return i.Serialize()
	}))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	input, err := domain.DecodeItem(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.AddItem(r.Context(), orderID, input)
	if err != nil {
		h.writeServiceError(w, r, err, orderNotFound(orderID))
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/items/%d", orderLocation(orderID), item.ID))
	writeJSON(w, http.StatusCreated, item.Serialize())
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), orderID, itemID)
	if err != nil {
		h.writeServiceError(w, r, err, itemNotFound(itemID))
		return
	}

	writeJSON(w, http.StatusOK, item.Serialize())
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.itemID(w, r)
	if !ok {
		return
	}

	input, err := domain.DecodeItem(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), orderID, itemID, input)
	if err != nil {
		h.writeServiceError(w, r, err, itemNotFound(itemID))
		return
	}

	writeJSON(w, http.StatusOK, item.Serialize())
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), orderID, itemID); err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// orderID writes 404 for ids that cannot name a stored order.
func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "order_id")

	id, err := parseID(raw)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Order with id '%s' was not found.", raw))
		return 0, false
	}

	return id, true
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return 0, 0, false
	}

	raw := chi.URLParam(r, "item_id")

	itemID, err := parseID(raw)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Item with id '%s' was not found.", raw))
		return 0, 0, false
	}

	return orderID, itemID, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		if notFoundMsg == "" {
			notFoundMsg = "resource not found"
		}
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseOrderFilter parses only the winning key, customer_id then date then
// status, so an ignored key can never fail the request.
func parseOrderFilter(query url.Values) (domain.OrderFilter, error) {
	var filter domain.OrderFilter

	if raw := strings.TrimSpace(query.Get("customer_id")); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("customer_id must be an integer: %s", raw)
		}
		filter.CustomerID = &customerID
		return filter, nil
	}

	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("date must be YYYY-MM-DD: %s", raw)
		}
		filter.Date = &date
		return filter, nil
	}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := domain.ToOrderStatus(raw)
		if err != nil {
			return filter, fmt.Errorf("status: %w", err)
		}
		filter.Status = &status
	}

	return filter, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func orderLocation(orderID int64) string {
	return fmt.Sprintf("/orders/%d", orderID)
}

func orderNotFound(orderID int64) string {
	return fmt.Sprintf("Order with id '%d' was not found.", orderID)
}

func itemNotFound(itemID int64) string {
	return fmt.Sprintf("Item with id '%d' was not found.", itemID)
}
