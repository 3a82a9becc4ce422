package httpapi

import (
	"net/http"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/auth"
)

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	var req domain.ReservationRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Reservations.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) bookedTables(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	list, err := h.Reservations.Booked(r.Context(), query.Get("date"), query.Get("time"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) createReservationCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	var req domain.ReservationRequest
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Checkout.CreateReservationCheckoutSession(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": session.ID, "url": session.URL})
}

func (h *Handler) reservationSuccess(w http.ResponseWriter, r *http.Request) {
	result, err := h.Checkout.HandleSuccessfulReservationPayment(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		writePaymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Reservation successful", "reservationId": result.ReservationID})
}

func (h *Handler) userReservations(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	list, err := h.Reservations.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) allReservations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Reservations.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req domain.ReservationRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Reservations.Update(r.Context(), actor, pathID(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Reservations.Cancel(r.Context(), actor, pathID(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reservation deleted successfully")
}

func (h *Handler) completeReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Reservations.Complete(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) reservationQRCode(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	png, err := h.Reservations.QRCode(r.Context(), actor, pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
