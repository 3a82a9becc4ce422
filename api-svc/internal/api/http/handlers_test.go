package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/api-svc/internal/mocks"
	"bistro-booking/api-svc/internal/service"
	"bistro-booking/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	adminID    = 1
	customerID = 7
)

type apiFixture struct {
	users        *mocks.UserRepository
	menu         *mocks.MenuRepository
	orders       *mocks.OrderRepository
	reservations *mocks.ReservationRepository
	qr           *mocks.QRGenerator
	tokens       *auth.TokenManager
	router       http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		users:        mocks.NewUserRepository(t),
		menu:         mocks.NewMenuRepository(t),
		orders:       mocks.NewOrderRepository(t),
		reservations: mocks.NewReservationRepository(t),
		qr:           &mocks.QRGenerator{},
		tokens:       auth.NewTokenManager("test-secret"),
	}
	f.users.On("GetUser", mock.Anything, adminID).Return(&domain.User{ID: adminID, IsAdmin: true}, nil).Maybe()
	f.users.On("GetUser", mock.Anything, customerID).Return(&domain.User{ID: customerID, Name: "Ana", Email: "ana@example.com", Cart: []int{}}, nil).Maybe()

	users := service.NewUserService(f.users, f.tokens)
	reservations := service.NewReservationService(f.reservations, nil, f.qr, time.UTC)
	handler := &Handler{
		Users:        users,
		Menu:         service.NewMenuService(f.menu),
		Cart:         service.NewCartService(f.users, f.menu),
		Checkout:     service.NewCheckoutService(service.CheckoutDeps{Users: f.users, Menu: f.menu, Orders: f.orders, Reservations: reservations}, service.CheckoutConfig{}),
		Reservations: reservations,
		Orders:       service.NewOrderService(f.orders, nil),
		Analytics:    service.NewAnalyticsService(nil, f.orders, f.menu, time.UTC),
		Auth:         auth.NewMiddleware(f.tokens, users),
	}
	f.router = NewRouter(handler)
	return f
}

func (f *apiFixture) token(t *testing.T, userID int) string {
	t.Helper()
	token, err := f.tokens.Issue(userID, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.HeaderName, token)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(v))
}

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture(t)

	rr := f.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	decodeBody(t, rr, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-svc", body["service"])
}

func TestCreateMenuItem_Access(t *testing.T) {
	f := newAPIFixture(t)
	item := domain.MenuItem{Category: "Soups", Title: "Borscht", Image: "b.png", Price: 6.5}
	f.menu.On("CreateMenuItem", mock.Anything, mock.AnythingOfType("*domain.MenuItem")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.MenuItem).ID = 3 }).
		Return(nil).Maybe()

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{name: "anonymous", wantCode: http.StatusUnauthorized},
		{name: "bad token", token: "garbage", wantCode: http.StatusUnauthorized},
		{name: "customer", token: f.token(t, customerID), wantCode: http.StatusForbidden},
		{name: "admin", token: f.token(t, adminID), wantCode: http.StatusCreated},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rr := f.do(http.MethodPost, "/api/menu/create", testCase.token, item)
			assert.Equal(t, testCase.wantCode, rr.Code)
		})
	}
}

func TestCreateMenuItem_Validation(t *testing.T) {
	f := newAPIFixture(t)

	rr := f.do(http.MethodPost, "/api/menu/create", f.token(t, adminID), domain.MenuItem{Category: "Soups", Title: "Borscht", Image: "b.png"})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var body map[string]string
	decodeBody(t, rr, &body)
	assert.Equal(t, "Price must be at least 1", body["message"])
}

func TestListMenuItems_EmptyArray(t *testing.T) {
	f := newAPIFixture(t)
	f.menu.On("ListMenuItems", mock.Anything).Return(nil, nil).Once()

	rr := f.do(http.MethodGet, "/api/menu/getAll", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestGetMenuItem_NotFound(t *testing.T) {
	f := newAPIFixture(t)
	f.menu.On("GetMenuItem", mock.Anything, 42).Return(nil, domain.ErrMenuItemNotFound).Once()

	rr := f.do(http.MethodGet, "/api/menu/get/42", "", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAuthRoutes(t *testing.T) {
	t.Run("register returns token", func(t *testing.T) {
		f := newAPIFixture(t)
		f.users.On("GetUserByEmail", mock.Anything, "bo@example.com").Return(nil, domain.ErrUserNotFound).Once()
		f.users.On("CreateUser", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 9 }).
			Return(nil).Once()

		rr := f.do(http.MethodPost, "/api/auth/register", "", credentials{Username: "Bo", Email: "bo@example.com", Password: "pw"})

		require.Equal(t, http.StatusCreated, rr.Code)
		var body map[string]string
		decodeBody(t, rr, &body)
		userID, err := f.tokens.Verify(body["token"])
		require.NoError(t, err)
		assert.Equal(t, 9, userID)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		f := newAPIFixture(t)
		hash, _ := auth.HashPassword("pw")
		f.users.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: customerID, PasswordHash: hash}, nil).Once()

		rr := f.do(http.MethodPost, "/api/auth/login", "", credentials{Email: "ana@example.com", Password: "nope"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("checkAdmin", func(t *testing.T) {
		f := newAPIFixture(t)
		cases := map[string]bool{"": false, f.token(t, customerID): false, f.token(t, adminID): true}
		for token, want := range cases {
			rr := f.do(http.MethodGet, "/api/auth/checkAdmin", token, nil)
			require.Equal(t, http.StatusOK, rr.Code)
			var body map[string]bool
			decodeBody(t, rr, &body)
			assert.Equal(t, want, body["isAdmin"])
		}
	})

	t.Run("me", func(t *testing.T) {
		f := newAPIFixture(t)

		rr := f.do(http.MethodGet, "/api/user", f.token(t, customerID), nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"userId":7,"email":"ana@example.com","name":"Ana"}`, rr.Body.String())
	})
}

func TestCartRoutes(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t, customerID)
	f.menu.On("GetMenuItem", mock.Anything, 2).Return(&domain.MenuItem{ID: 2}, nil).Once()
	f.users.On("SaveCart", mock.Anything, customerID, []int{2, 2}).Return(nil).Once()

	rr := f.do(http.MethodPost, "/api/cart/add", token, cartRequest{MenuItemID: 2, Quantity: 2})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Item added to cart","cart":[2,2]}`, rr.Body.String())
}

func TestCheckoutSuccess_MissingSession(t *testing.T) {
	f := newAPIFixture(t)

	rr := f.do(http.MethodGet, "/api/checkout/success", "", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCancelPendingOrder_QuerySession(t *testing.T) {
	f := newAPIFixture(t)
	f.orders.On("GetOrderBySession", mock.Anything, "cs_1").Return(&domain.Order{ID: 4, Status: domain.OrderPending}, nil).Once()
	f.orders.On("DeleteOrder", mock.Anything, 4).Return(nil).Once()

	rr := f.do(http.MethodDelete, "/api/checkout/cancel/order?session_id=cs_1", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBookedTables(t *testing.T) {
	f := newAPIFixture(t)
	f.reservations.On("ListBookedTables", mock.Anything, "2025-03-02", "19:00").
		Return([]domain.Reservation{{ID: 11, TableNumber: 5}}, nil).Once()

	rr := f.do(http.MethodGet, "/api/reservations/booked?date=2025-03-02&time=19:00", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Reservation
	decodeBody(t, rr, &list)
	assert.Len(t, list, 1)

	rr = f.do(http.MethodGet, "/api/reservations/booked?time=19:00", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateReservationIgnoresClientSessionID(t *testing.T) {
	f := newAPIFixture(t)
	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	f.reservations.On("FindConfirmedReservation", mock.Anything, 5, date, "19:00", 0).Return(nil, nil).Once()
	f.reservations.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.UserID == customerID && r.StripeSessionID == ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Reservation).ID = 21
	}).Return(nil).Once()

	rr := f.do(http.MethodPost, "/api/reservations/create", f.token(t, customerID), map[string]interface{}{
		"tableNumber": 5, "date": date, "bookingTime": "19:00", "guestCount": 2, "stripeSessionId": "cs_victim",
	})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "cs_victim")
}

func TestReservationQRCode(t *testing.T) {
	f := newAPIFixture(t)
	f.reservations.On("GetReservation", mock.Anything, 11).Return(&domain.Reservation{ID: 11, UserID: customerID}, nil).Twice()
	f.qr.On("Generate", 11).Return([]byte("\x89PNG"), nil).Once()

	rr := f.do(http.MethodGet, "/api/reservations/11/qrcode", f.token(t, customerID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	f.users.On("GetUser", mock.Anything, 8).Return(&domain.User{ID: 8}, nil).Once()
	rr = f.do(http.MethodGet, "/api/reservations/11/qrcode", f.token(t, 8), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestOrderRoutes(t *testing.T) {
	t.Run("owner reads order", func(t *testing.T) {
		f := newAPIFixture(t)
		f.orders.On("GetOrder", mock.Anything, 4).Return(&domain.Order{ID: 4, UserID: customerID, Status: domain.OrderPaid}, nil).Once()

		rr := f.do(http.MethodGet, "/api/order/4", f.token(t, customerID), nil)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid status change", func(t *testing.T) {
		f := newAPIFixture(t)
		f.orders.On("GetOrder", mock.Anything, 4).Return(&domain.Order{ID: 4, Status: domain.OrderCompleted}, nil).Once()

		rr := f.do(http.MethodPatch, "/api/order/4/status", f.token(t, adminID), map[string]string{"status": "paid"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("export", func(t *testing.T) {
		f := newAPIFixture(t)
		f.orders.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()

		rr := f.do(http.MethodGet, "/api/order/export", f.token(t, adminID), nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
		assert.NotZero(t, rr.Body.Len())
	})
}

func TestAnalyticsLimitParam(t *testing.T) {
	f := newAPIFixture(t)
	f.orders.On("TopSellingItems", mock.Anything, (*time.Time)(nil), 3).Return([]domain.SalesStat{}, nil).Once()

	rr := f.do(http.MethodGet, "/api/analytics/top-alltime?limit=3", f.token(t, adminID), nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	f := newAPIFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "x-auth-token")
	rr := httptest.NewRecorder()

	f.router.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
