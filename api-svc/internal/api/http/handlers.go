package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/api-svc/internal/service"
	"bistro-booking/auth"

	"github.com/gorilla/mux"
)

type Handler struct {
	Users        service.UserServiceInterface
	Menu         service.MenuServiceInterface
	Cart         service.CartServiceInterface
	Checkout     service.CheckoutServiceInterface
	Reservations service.ReservationServiceInterface
	Orders       service.OrderServiceInterface
	Analytics    service.AnalyticsServiceInterface
	Auth         *auth.Middleware
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	user := func(f http.HandlerFunc) http.Handler { return h.Auth.RequireUser(f) }
	admin := func(f http.HandlerFunc) http.Handler { return h.Auth.RequireAdmin(f) }

	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/checkAdmin", h.checkAdmin).Methods("GET")
	r.Handle("/api/auth/admins", admin(h.listAdmins)).Methods("GET")
	r.Handle("/api/auth/create-admin", admin(h.createAdmin)).Methods("POST")
	r.Handle("/api/user", user(h.me)).Methods("GET")

	r.Handle("/api/menu/create", admin(h.createMenuItem)).Methods("POST")
	r.HandleFunc("/api/menu/getAll", h.listMenuItems).Methods("GET")
	r.HandleFunc("/api/menu/get/{id:[0-9]+}", h.getMenuItem).Methods("GET")
	r.Handle("/api/menu/update/{id:[0-9]+}", admin(h.updateMenuItem)).Methods("PUT")
	r.Handle("/api/menu/delete/{id:[0-9]+}", admin(h.deleteMenuItem)).Methods("DELETE")

	r.Handle("/api/cart/add", user(h.addToCart)).Methods("POST")
	r.Handle("/api/cart/remove/{menuItemId:[0-9]+}", user(h.removeFromCart)).Methods("DELETE")
	r.Handle("/api/cart", user(h.getCart)).Methods("GET")

	r.Handle("/api/checkout/create-checkout-session", user(h.createCheckoutSession)).Methods("POST")
	r.HandleFunc("/api/checkout/success", h.checkoutSuccess).Methods("GET")
	r.HandleFunc("/api/checkout/cancel/order", h.cancelPendingOrder).Methods("DELETE")

	r.Handle("/api/reservations/create", user(h.createReservation)).Methods("POST")
	r.HandleFunc("/api/reservations/booked", h.bookedTables).Methods("GET")
	r.Handle("/api/reservations/create-checkout-session", user(h.createReservationCheckoutSession)).Methods("POST")
	r.HandleFunc("/api/reservations/success", h.reservationSuccess).Methods("GET")
	r.Handle("/api/reservations/user", user(h.userReservations)).Methods("GET")
	r.Handle("/api/reservations/all", admin(h.allReservations)).Methods("GET")
	r.Handle("/api/reservations/delete/{id:[0-9]+}", user(h.cancelReservation)).Methods("DELETE")
	r.Handle("/api/reservations/complete/{id:[0-9]+}", admin(h.completeReservation)).Methods("PUT")
	r.Handle("/api/reservations/{id:[0-9]+}/qrcode", user(h.reservationQRCode)).Methods("GET")
	r.Handle("/api/reservations/{id:[0-9]+}", user(h.updateReservation)).Methods("PUT")

	r.Handle("/api/order/all", admin(h.allOrders)).Methods("GET")
	r.Handle("/api/order/export", admin(h.exportOrders)).Methods("GET")
	r.Handle("/api/order/user", user(h.userOrders)).Methods("GET")
	r.Handle("/api/order/{id:[0-9]+}", user(h.getOrder)).Methods("GET")
	r.Handle("/api/order/{id:[0-9]+}/cancel", user(h.cancelOrder)).Methods("PATCH")
	r.Handle("/api/order/{id:[0-9]+}/status", admin(h.updateOrderStatus)).Methods("PATCH")
	r.Handle("/api/order/{id:[0-9]+}", user(h.deleteOrder)).Methods("DELETE")

	r.Handle("/api/analytics/top-today", admin(h.topToday)).Methods("GET")
	r.Handle("/api/analytics/top-alltime", admin(h.topAllTime)).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "api-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

func statusFor(err error) int {
	var validation domain.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrTableAlreadyReserved),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrMissingSessionID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: %v", err)
	}
	writeMessage(w, code, err.Error())
}

// writePaymentError reports confirmation failures as 500 so the client retries the success URL.
func writePaymentError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrMissingSessionID) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("ERROR: payment confirmation: %v", err)
	writeMessage(w, http.StatusInternalServerError, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}

func (h *Handler) actor(r *http.Request) (domain.Actor, error) {
	userID, _ := auth.UserID(r.Context())
	isAdmin, err := h.Users.IsAdmin(r.Context(), userID)
	if err != nil && !errors.Is(err, auth.ErrUnknownUser) {
		return domain.Actor{}, err
	}
	return domain.Actor{UserID: userID, IsAdmin: isAdmin}, nil
}
