package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bistro-booking/api-svc/internal/domain"
)

// MinLeadTime is how far ahead of the booked slot a reservation must be made.
const MinLeadTime = 15 * time.Minute

type ReservationServiceInterface interface {
	Create(ctx context.Context, userID int, req domain.ReservationRequest) (*domain.Reservation, error)
	CheckAvailability(ctx context.Context, req domain.ReservationRequest) (domain.ReservationRequest, error)
	Booked(ctx context.Context, date, bookingTime string) ([]domain.Reservation, error)
	ListForUser(ctx context.Context, userID int) ([]domain.Reservation, error)
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	GetBySession(ctx context.Context, sessionID string) (*domain.Reservation, error)
	Update(ctx context.Context, actor domain.Actor, id int, req domain.ReservationRequest) (*domain.Reservation, error)
	Cancel(ctx context.Context, actor domain.Actor, id int) error
	Complete(ctx context.Context, id int) (*domain.Reservation, error)
	QRCode(ctx context.Context, actor domain.Actor, id int) ([]byte, error)
}

type ReservationService struct {
	repo     ReservationRepository
	notifier *Notifier
	qr       QRGenerator
	loc      *time.Location
	now      func() time.Time
}

func NewReservationService(repo ReservationRepository, notifier *Notifier, qr QRGenerator, loc *time.Location) *ReservationService {
	if loc == nil {
		loc = time.Local
	}
	return &ReservationService{repo: repo, notifier: notifier, qr: qr, loc: loc, now: time.Now}
}

// WithClock replaces the time source used for the lead-time rule.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// normalize validates req and returns it with date as YYYY-MM-DD and bookingTime as HH:MM.
func (s *ReservationService) normalize(req domain.ReservationRequest, requireLead bool) (domain.ReservationRequest, error) {
	if strings.TrimSpace(req.Date) == "" {
		return req, domain.ValidationError{Field: "date", Message: "Date is required"}
	}
	day, err := parseDay(req.Date, s.loc)
	if err != nil {
		return req, domain.ValidationError{Field: "date", Message: "Invalid date format"}
	}
	clock, err := time.Parse("15:04", strings.TrimSpace(req.BookingTime))
	if err != nil {
		return req, domain.ValidationError{Field: "bookingTime", Message: "Invalid booking time format, expected HH:MM"}
	}
	if req.TableNumber < domain.MinTableNumber || req.TableNumber > domain.MaxTableNumber {
		return req, domain.ValidationError{
			Field:   "tableNumber",
			Message: fmt.Sprintf("Table number must be between %d and %d", domain.MinTableNumber, domain.MaxTableNumber),
		}
	}
	if req.GuestCount < domain.MinGuestCount || req.GuestCount > domain.MaxGuestCount {
		return req, domain.ValidationError{
			Field:   "guestCount",
			Message: fmt.Sprintf("Guest count must be between %d and %d", domain.MinGuestCount, domain.MaxGuestCount),
		}
	}

	if requireLead {
		slot := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, s.loc)
		if slot.Sub(s.now()) < MinLeadTime {
			return req, domain.ValidationError{Field: "date", Message: "Reservation must be at least 15 minutes in the future"}
		}
	}

	req.Date = day.Format("2006-01-02")
	req.BookingTime = clock.Format("15:04")
	return req, nil
}

// parseDay accepts a plain calendar day or an RFC3339 timestamp and keeps the calendar day.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if day, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return day, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), nil
}

func (s *ReservationService) ensureFree(ctx context.Context, req domain.ReservationRequest, excludeID int) error {
	existing, err := s.repo.FindConfirmedReservation(ctx, req.TableNumber, req.Date, req.BookingTime, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrTableAlreadyReserved
	}
	return nil
}

func (s *ReservationService) CheckAvailability(ctx context.Context, req domain.ReservationRequest) (domain.ReservationRequest, error) {
	req, err := s.normalize(req, true)
	if err != nil {
		return req, err
	}
	return req, s.ensureFree(ctx, req, 0)
}

func (s *ReservationService) Create(ctx context.Context, userID int, req domain.ReservationRequest) (*domain.Reservation, error) {
	req, err := s.CheckAvailability(ctx, req)
	if err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, domain.ErrUnauthenticated
	}

	res := &domain.Reservation{
		UserID:          userID,
		TableNumber:     req.TableNumber,
		GuestCount:      req.GuestCount,
		Date:            req.Date,
		BookingTime:     req.BookingTime,
		Status:          domain.ReservationActive,
		StripeSessionID: req.StripeSessionID,
	}
	if err := s.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.EventReservationCreated, "New Reservation",
		fmt.Sprintf("Table %d booked for %s at %s (%d guests)", res.TableNumber, res.Date, res.BookingTime, res.GuestCount), res.ID)
	return res, nil
}

func (s *ReservationService) Booked(ctx context.Context, date, bookingTime string) ([]domain.Reservation, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(bookingTime) == "" {
		return nil, domain.ValidationError{Field: "date", Message: "Date and time are required"}
	}
	day, err := parseDay(date, s.loc)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Message: "Invalid date format"}
	}
	clock, err := time.Parse("15:04", strings.TrimSpace(bookingTime))
	if err != nil {
		return nil, domain.ValidationError{Field: "time", Message: "Invalid booking time format, expected HH:MM"}
	}
	return nonNil(s.repo.ListBookedTables(ctx, day.Format("2006-01-02"), clock.Format("15:04")))
}

func (s *ReservationService) ListForUser(ctx context.Context, userID int) ([]domain.Reservation, error) {
	return nonNil(s.repo.ListReservationsByUser(ctx, userID))
}

func (s *ReservationService) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	return nonNil(s.repo.ListReservations(ctx))
}

func nonNil(list []domain.Reservation, err error) ([]domain.Reservation, error) {
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Reservation{}
	}
	return list, nil
}

func (s *ReservationService) GetBySession(ctx context.Context, sessionID string) (*domain.Reservation, error) {
	return s.repo.GetReservationBySession(ctx, sessionID)
}

func (s *ReservationService) owned(ctx context.Context, actor domain.Actor, id int) (*domain.Reservation, error) {
	res, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(res.UserID) {
		return nil, domain.ErrForbidden
	}
	return res, nil
}

func (s *ReservationService) Update(ctx context.Context, actor domain.Actor, id int, req domain.ReservationRequest) (*domain.Reservation, error) {
	res, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationActive {
		return nil, domain.ErrInvalidTransition
	}
	req, err = s.normalize(req, false)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, req, res.ID); err != nil {
		return nil, err
	}

	res.TableNumber = req.TableNumber
	res.GuestCount = req.GuestCount
	res.Date = req.Date
	res.BookingTime = req.BookingTime
	if err := s.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.EventReservationUpdated, "Reservation Updated",
		fmt.Sprintf("Reservation %d moved to table %d on %s at %s", res.ID, res.TableNumber, res.Date, res.BookingTime), res.ID)
	return res, nil
}

func (s *ReservationService) Cancel(ctx context.Context, actor domain.Actor, id int) error {
	res, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if res.Status != domain.ReservationActive {
		return domain.ErrInvalidTransition
	}
	if err := s.repo.SetReservationStatus(ctx, id, domain.ReservationCancelled, nil); err != nil {
		return err
	}

	s.notifier.Notify(ctx, domain.EventReservationCancelled, "Reservation Cancelled",
		fmt.Sprintf("Reservation %d for table %d on %s at %s was cancelled", res.ID, res.TableNumber, res.Date, res.BookingTime), res.ID)
	return nil
}

func (s *ReservationService) Complete(ctx context.Context, id int) (*domain.Reservation, error) {
	res, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationActive {
		return nil, domain.ErrInvalidTransition
	}
	completedAt := s.now().UTC()
	if err := s.repo.SetReservationStatus(ctx, id, domain.ReservationCompleted, &completedAt); err != nil {
		return nil, err
	}
	res.Status = domain.ReservationCompleted
	res.CompletedAt = &completedAt

	s.notifier.Notify(ctx, domain.EventReservationCompleted, "Reservation Completed",
		fmt.Sprintf("Reservation %d for table %d was completed", res.ID, res.TableNumber), res.ID)
	return res, nil
}

func (s *ReservationService) QRCode(ctx context.Context, actor domain.Actor, id int) ([]byte, error) {
	res, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.qr == nil {
		return nil, fmt.Errorf("qr generator not configured")
	}
	png, err := s.qr.Generate(res.ID)
	if err != nil {
		log.Printf("ERROR: qr code for reservation %d: %v", res.ID, err)
		return nil, err
	}
	return png, nil
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
