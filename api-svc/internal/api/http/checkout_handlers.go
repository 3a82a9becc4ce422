package httpapi

import (
	"net/http"

	"bistro-booking/auth"
)

type cartRequest struct {
	MenuItemID int `json:"menuItemId"`
	Quantity   int `json:"quantity"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	var req cartRequest
	if !decode(w, r, &req) {
		return
	}
	cart, err := h.Cart.Add(r.Context(), userID, req.MenuItemID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Item added to cart", "cart": cart})
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	var req cartRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	cart, err := h.Cart.Remove(r.Context(), userID, pathID(r, "menuItemId"), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Item removed from cart", "cart": cart})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	items, err := h.Cart.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": items})
}

func (h *Handler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	session, err := h.Checkout.CreateCheckoutSession(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": session.ID, "url": session.URL})
}

func (h *Handler) checkoutSuccess(w http.ResponseWriter, r *http.Request) {
	result, err := h.Checkout.HandleSuccessfulPayment(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		writePaymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Payment successful", "orderId": result.OrderID})
}

func (h *Handler) cancelPendingOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if req.SessionID == "" {
		req.SessionID = r.URL.Query().Get("session_id")
	}
	if err := h.Checkout.CancelPendingOrder(r.Context(), req.SessionID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Order deleted successfully")
}
