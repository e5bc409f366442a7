package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cafeteria-orders/order-svc/internal/domain"
	"cafeteria-orders/order-svc/internal/logging"
	"cafeteria-orders/order-svc/internal/mailer"
	"cafeteria-orders/order-svc/internal/pricing"
	"cafeteria-orders/order-svc/internal/report"
	"cafeteria-orders/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Secrets struct {
	Admin string
	Cron  string
}

type Handler struct {
	Menu          service.MenuServiceInterface
	Orders        service.OrderServiceInterface
	Notifications service.NotificationServiceInterface
	Reports       service.ReportServiceInterface
	Analytics     service.AnalyticsServiceInterface
	Secrets       Secrets
}

func NewHandler(
	menu service.MenuServiceInterface,
	orders service.OrderServiceInterface,
	notifications service.NotificationServiceInterface,
	reports service.ReportServiceInterface,
	analytics service.AnalyticsServiceInterface,
	secrets Secrets,
) *Handler {
	return &Handler{
		Menu:          menu,
		Orders:        orders,
		Notifications: notifications,
		Reports:       reports,
		Analytics:     analytics,
		Secrets:       secrets,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")

	admin := r.NewRoute().Subrouter()
	admin.Use(requireAdmin(h.Secrets.Admin))
	admin.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	// Static paths before /api/orders/{id}.
	admin.HandleFunc("/api/orders/download", h.downloadOrders).Methods("GET")
	admin.HandleFunc("/api/orders/send-confirmation", h.sendConfirmation).Methods("POST")
	admin.HandleFunc("/api/orders/send-arrival-notification", h.sendArrival).Methods("POST")
	admin.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	admin.HandleFunc("/api/orders/{id}", h.updateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/api/orders/{id}", h.deleteOrder).Methods("DELETE")
	admin.HandleFunc("/api/analytics/popular", h.getPopular).Methods("GET")

	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	cron := r.NewRoute().Subrouter()
	cron.Use(requireBearer(h.Secrets.Cron))
	cron.HandleFunc("/api/cron/daily-report", h.dailyReport).Methods("GET")
}

// maxBodyBytes bounds every JSON request body. A full cart fits well inside.
const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serverError logs the cause and hides it from the client.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromCtx(r.Context()).Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Menu.List(r.Context()))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var cart pricing.Cart
	if err := decodeJSON(w, r, &cart); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Orders.Place(r.Context(), cart)
	if err != nil {
		if reason := pricing.Reason(err); reason != "" {
			writeError(w, http.StatusBadRequest, reason)
			return
		}
		serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orderId": order.ID,
		"total":   json.Number(order.TotalAmount.StringFixed(2)),
	})
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := decodeJSON(w, r, &payload); err != nil || !payload.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], payload.Status); err != nil {
		h.orderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.orderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(qr)
}

func (h *Handler) sendConfirmation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OrderID string `json:"orderId"`
	}
	if err := decodeJSON(w, r, &payload); err != nil || payload.OrderID == "" {
		writeError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	sent, err := h.Notifications.SendConfirmation(r.Context(), payload.OrderID)
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	if !sent {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "No email provided, skipping email"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) sendArrival(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(w, r, &payload); err != nil || payload.Date == "" {
		writeError(w, http.StatusBadRequest, "Date is required")
		return
	}

	result, err := h.Notifications.SendArrival(r.Context(), payload.Date)
	if errors.Is(err, service.ErrWeekendDelivery) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   false,
			"message":   "Cannot send arrival emails on Friday or Saturday",
			"sentCount": 0,
		})
		return
	}
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"sentCount":        result.Sent,
		"failedCount":      result.Failed,
		"errors":           result.Errors,
		"supplierNotified": result.SupplierNotified,
	})
}

func (h *Handler) downloadOrders(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid format")
		return
	}

	file, err := h.Reports.Download(r.Context(), r.URL.Query().Get("date"), format)
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Write(file.Data)
}

func (h *Handler) dailyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.Reports.SendDaily(r.Context())
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getPopular(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Analytics.Popular(r.Context(), r.URL.Query().Get("date"), limit)
	if err != nil {
		h.orderError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.PopularItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) orderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, service.ErrNoOrders):
		writeError(w, http.StatusNotFound, "No orders found")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, service.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStatusTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, mailer.ErrDisabled), errors.Is(err, service.ErrNoSupplierAddress):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		serverError(w, r, err)
	}
}
