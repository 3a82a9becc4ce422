package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"bistro-booking/auth"
	"bistro-booking/notify-svc/internal/domain"
	"bistro-booking/notify-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

var testNotification = domain.Notification{Title: "Test Notification", Body: "This is a test notification"}

type Handler struct {
	Subscriptions service.SubscriptionServiceInterface
	Dispatcher    service.Sender
	Auth          *auth.Middleware
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/api/notifications/subscribe", h.Auth.RequireAdmin(http.HandlerFunc(h.subscribe))).Methods("POST")
	r.Handle("/api/notifications/test", h.Auth.RequireAdmin(http.HandlerFunc(h.sendTest))).Methods("POST")
}

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", auth.HeaderName},
	}).Handler(r)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "notify-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subscription *domain.PushSubscription `json:"subscription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Subscription == nil {
		writeMessage(w, http.StatusBadRequest, domain.ErrInvalidSubscription.Error())
		return
	}

	userID, _ := auth.UserID(r.Context())
	sub, err := h.Subscriptions.Subscribe(r.Context(), userID, *req.Subscription)
	if errors.Is(err, domain.ErrInvalidSubscription) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("ERROR: save subscription for admin %d: %v", userID, err)
		writeMessage(w, http.StatusInternalServerError, "Failed to save subscription.")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Subscription added successfully.",
		"subscription": sub,
	})
}

func (h *Handler) sendTest(w http.ResponseWriter, r *http.Request) {
	summary := h.Dispatcher.Send(r.Context(), testNotification)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Test notification sent",
		"attempted": summary.Attempted,
		"delivered": summary.Delivered,
		"pruned":    summary.Pruned,
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
